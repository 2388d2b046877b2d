// Package sysinfo reports the clock and the machine state. CPU and memory figures come from
// gopsutil, the battery level from the power supply class in sysfs.
package sysinfo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
	"github.com/shirou/gopsutil/v4/common"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// TimeLayout renders e.g. "Monday, January 02, 2006 at 03:04 PM".
const TimeLayout = "Monday, January 02, 2006 at 03:04 PM"

// GetTime returns the current local date and time.
type GetTime struct {
	now func() time.Time
}

func NewGetTime(now func() time.Time) *GetTime {
	if now == nil {
		now = time.Now
	}
	return &GetTime{now: now}
}

func (x *GetTime) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolGetTime,
		Description: "Returns the current date and time.",
	}
}

func (x *GetTime) Run(ctx context.Context, args map[string]any) (any, error) {
	return x.now().Format(TimeLayout), nil
}

// SystemStatus reports CPU usage, memory usage and battery level.
type SystemStatus struct {
	procRoot string
	sysRoot  string
	interval time.Duration
}

// StatusOption configures SystemStatus.
type StatusOption func(*SystemStatus)

// WithRoots replaces "/proc" and "/sys".
func WithRoots(procRoot, sysRoot string) StatusOption {
	return func(x *SystemStatus) {
		x.procRoot = procRoot
		x.sysRoot = sysRoot
	}
}

// WithSampleInterval sets the CPU sampling window.
func WithSampleInterval(d time.Duration) StatusOption {
	return func(x *SystemStatus) {
		x.interval = d
	}
}

const minSampleInterval = 10 * time.Millisecond

func NewSystemStatus(options ...StatusOption) *SystemStatus {
	x := &SystemStatus{
		procRoot: "/proc",
		sysRoot:  "/sys",
		interval: 100 * time.Millisecond,
	}
	for _, opt := range options {
		opt(x)
	}
	// gopsutil compares against its previous call when the interval is zero
	x.interval = max(x.interval, minSampleInterval)
	return x
}

func (x *SystemStatus) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolSystemStatus,
		Description: "Returns CPU usage, memory usage and battery level.",
	}
}

func (x *SystemStatus) Run(ctx context.Context, args map[string]any) (any, error) {
	ctx = context.WithValue(ctx, common.EnvKey, common.EnvMap{
		common.HostProcEnvKey: x.procRoot,
		common.HostSysEnvKey:  x.sysRoot,
	})

	percents, err := cpu.PercentWithContext(ctx, x.interval, false)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to sample cpu usage", goerr.V("proc", x.procRoot))
	}
	if len(percents) == 0 {
		return nil, goerr.New("no aggregate cpu usage", goerr.V("proc", x.procRoot))
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read memory usage", goerr.V("proc", x.procRoot))
	}
	if vm.Total == 0 || vm.Available > vm.Total {
		return nil, goerr.New("malformed memory info", goerr.V("proc", x.procRoot))
	}
	used := vm.Total - vm.Available

	battery := "N/A"
	if level, ok := x.battery(); ok {
		battery = fmt.Sprintf("%d%%", level)
	}

	return fmt.Sprintf("CPU Usage: %.1f%%\nMemory Usage: %.1f%% (%dMB / %dMB)\nBattery: %s",
		percents[0],
		100*float64(used)/float64(vm.Total),
		used/(1024*1024),
		vm.Total/(1024*1024),
		battery), nil
}

// battery returns the capacity of the first battery found. gopsutil has no battery reading.
func (x *SystemStatus) battery() (int, bool) {
	matches, _ := filepath.Glob(filepath.Join(x.sysRoot, "class", "power_supply", "BAT*", "capacity"))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		level, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			continue
		}
		return level, true
	}
	return 0, false
}
