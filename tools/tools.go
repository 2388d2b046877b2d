// Package tools assembles the desktop capabilities of the assistant into one tool set.
package tools

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/tools/apps"
	"github.com/m-mizutani/hark/tools/files"
	"github.com/m-mizutani/hark/tools/input"
	"github.com/m-mizutani/hark/tools/memory"
	"github.com/m-mizutani/hark/tools/proc"
	"github.com/m-mizutani/hark/tools/sysinfo"
	"github.com/m-mizutani/hark/tools/system"
	"github.com/m-mizutani/hark/tools/web"
)

// Config holds the locations and collaborators of the tools. Zero values select defaults.
type Config struct {
	// MemoryPath is the SQLite database of long-term memory.
	MemoryPath string

	// AppCachePath is the JSON cache of scanned applications.
	AppCachePath string
	AppDirs      []string

	SearchEndpoint string

	Runner proc.Runner
	Now    func() time.Time
}

// Set owns the tools and the memory database behind them.
type Set struct {
	tools  []hark.Tool
	memory *memory.Store
}

// New builds every tool of the enumeration.
func New(ctx context.Context, cfg Config) (*Set, error) {
	logger := ctxlog.From(ctx)

	if cfg.Runner == nil {
		cfg.Runner = proc.Exec{}
	}
	if cfg.AppCachePath == "" {
		cfg.AppCachePath = apps.DefaultCachePath()
	}
	if cfg.AppDirs == nil {
		cfg.AppDirs = apps.DefaultDirs()
	}
	if cfg.MemoryPath == "" {
		return nil, goerr.New("memory database path is required")
	}

	registry, err := apps.Load(ctx, cfg.AppCachePath, cfg.AppDirs)
	if err != nil {
		logger.Warn("application cache is unusable, rescanning", "path", cfg.AppCachePath, "error", err)
		registry = apps.NewRegistry(apps.Scan(ctx, cfg.AppDirs))
		if err := registry.Save(cfg.AppCachePath); err != nil {
			logger.Warn("failed to rewrite application cache", "error", err)
		}
	}

	store, err := memory.Open(ctx, cfg.MemoryPath)
	if err != nil {
		return nil, err
	}

	var searchOpts []web.SearchOption
	if cfg.SearchEndpoint != "" {
		searchOpts = append(searchOpts, web.WithEndpoint(cfg.SearchEndpoint))
	}

	return &Set{
		memory: store,
		tools: []hark.Tool{
			apps.NewOpenApp(registry, cfg.Runner),
			system.NewSetVolume(cfg.Runner),
			system.NewMute(cfg.Runner),
			system.NewUnmute(cfg.Runner),
			files.NewListFiles(),
			files.NewReadFile(),
			web.NewOpenURL(cfg.Runner),
			web.NewSearchWeb(searchOpts...),
			sysinfo.NewGetTime(cfg.Now),
			sysinfo.NewSystemStatus(),
			input.NewTypeText(cfg.Runner),
			input.NewPressKey(cfg.Runner),
			input.NewHotkey(cfg.Runner),
			memory.NewStoreMemory(store),
			memory.NewRetrieveMemory(store),
		},
	}, nil
}

// Tools returns the tools in enumeration order.
func (x *Set) Tools() []hark.Tool {
	return x.tools
}

// Registry registers the tools.
func (x *Set) Registry() (*hark.Registry, error) {
	return hark.NewRegistry(x.tools...)
}

// Close releases the memory database.
func (x *Set) Close() error {
	return x.memory.Close()
}
