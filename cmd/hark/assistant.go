package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/tools"
	"github.com/m-mizutani/hark/trace"
	traceLogger "github.com/m-mizutani/hark/trace/logger"
	"github.com/urfave/cli/v3"
)

func toolFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "memory-db",
			Value:   defaultMemoryPath(),
			Sources: cli.EnvVars("HARK_MEMORY_DB"),
			Usage:   "SQLite database of long-term memory",
		},
		&cli.StringFlag{
			Name:    "app-cache",
			Sources: cli.EnvVars("HARK_APP_CACHE"),
			Usage:   "JSON cache of installed applications, the user cache directory if empty",
		},
		&cli.StringFlag{
			Name:    "search-url",
			Sources: cli.EnvVars("HARK_SEARCH_URL"),
			Usage:   "DuckDuckGo HTML endpoint for web search",
		},
	}
}

func defaultMemoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "hark-memory.db"
	}
	return filepath.Join(dir, "hark", "memory.db")
}

func openTools(ctx context.Context, cmd *cli.Command) (*tools.Set, error) {
	return tools.New(ctx, tools.Config{
		MemoryPath:     cmd.String("memory-db"),
		AppCachePath:   cmd.String("app-cache"),
		SearchEndpoint: cmd.String("search-url"),
	})
}

func assistantFlags() []cli.Flag {
	flags := llmFlags()
	flags = append(flags, toolFlags()...)
	flags = append(flags, traceStoreFlags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:    "trace-log",
		Sources: cli.EnvVars("HARK_TRACE_LOG"),
		Usage:   "Log utterance traces through the logger",
	})
	return flags
}

// assistant holds everything behind the orchestrator except the speech collaborators.
type assistant struct {
	tools      *tools.Set
	dispatcher *hark.ToolDispatcher
	planner    *hark.Planner
	executor   *hark.PlanExecutor
	tracer     trace.Handler
	closers    []func() error
}

func newAssistant(ctx context.Context, cmd *cli.Command, speaker hark.Speaker) (_ *assistant, err error) {
	x := &assistant{}
	defer func() {
		if err != nil {
			_ = x.Close()
		}
	}()

	cfg := llmConfigFrom(cmd)
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	x.tools, err = openTools(ctx, cmd)
	if err != nil {
		return nil, err
	}
	x.closers = append(x.closers, x.tools.Close)

	registry, err := x.tools.Registry()
	if err != nil {
		return nil, err
	}
	x.dispatcher = hark.NewToolDispatcher(registry)

	x.planner, err = hark.NewPlanner(client, registry)
	if err != nil {
		return nil, err
	}
	x.executor = hark.NewPlanExecutor(x.dispatcher, x.planner, hark.NewResponseSynthesizer(client), speaker)

	store, closeStore, err := openTraceStore(ctx, cmd)
	if err != nil {
		return nil, err
	}
	x.closers = append(x.closers, closeStore)

	var handlers []trace.Handler
	if store != nil {
		handlers = append(handlers, trace.New(
			trace.WithRepository(store),
			trace.WithMetadata(trace.TraceMetadata{
				Backend: cfg.Backend,
				Model:   cfg.modelName(),
			}),
		))
	}
	if cmd.Bool("trace-log") {
		handlers = append(handlers, traceLogger.New())
	}
	switch len(handlers) {
	case 0:
	case 1:
		x.tracer = handlers[0]
	default:
		x.tracer = trace.Multi(handlers...)
	}

	return x, nil
}

func (x *assistant) orchestrator(runtime *hark.Runtime, recorder hark.Recorder, speaker hark.Speaker, opts ...hark.OrchestratorOption) *hark.Orchestrator {
	if x.tracer != nil {
		opts = append(opts, hark.WithTrace(x.tracer))
	}
	return hark.NewOrchestrator(runtime, recorder, speaker, x.planner, x.executor, opts...)
}

func (x *assistant) Close() error {
	var errs []error
	for i := len(x.closers) - 1; i >= 0; i-- {
		if err := x.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
