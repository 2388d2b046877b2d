// Package system controls the audio output through pactl, which works with both PulseAudio and
// PipeWire.
package system

import (
	"context"
	"fmt"
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/tools/proc"
)

const (
	pactl       = "pactl"
	defaultSink = "@DEFAULT_SINK@"
)

// SetVolume sets the default sink volume in percent. Levels outside 0-100 are clamped.
type SetVolume struct {
	runner proc.Runner
}

func NewSetVolume(runner proc.Runner) *SetVolume {
	return &SetVolume{runner: runner}
}

func (x *SetVolume) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolSetVolume,
		Description: "Sets the system volume to a percentage.",
		Parameters: map[string]*hark.Parameter{
			"level": {
				Type:        hark.TypeNumber,
				Description: "Volume level from 0 to 100",
			},
		},
		Required: []string{"level"},
	}
}

func (x *SetVolume) Run(ctx context.Context, args map[string]any) (any, error) {
	level, ok := hark.AsNumber(args["level"])
	if !ok {
		return nil, goerr.New("level must be a number", goerr.V("level", args["level"]))
	}
	percent := int(math.Round(math.Max(0, math.Min(100, level))))

	if err := x.runner.Run(ctx, pactl, "set-sink-volume", defaultSink, fmt.Sprintf("%d%%", percent)); err != nil {
		return nil, goerr.Wrap(err, "failed to set volume", goerr.V("level", percent))
	}
	return true, nil
}

// Mute mutes the default sink.
type Mute struct {
	runner proc.Runner
}

func NewMute(runner proc.Runner) *Mute {
	return &Mute{runner: runner}
}

func (x *Mute) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolMute,
		Description: "Mutes the system volume.",
	}
}

func (x *Mute) Run(ctx context.Context, args map[string]any) (any, error) {
	return setMute(ctx, x.runner, true)
}

// Unmute unmutes the default sink.
type Unmute struct {
	runner proc.Runner
}

func NewUnmute(runner proc.Runner) *Unmute {
	return &Unmute{runner: runner}
}

func (x *Unmute) Spec() hark.ToolSpec {
	return hark.ToolSpec{
		Name:        hark.ToolUnmute,
		Description: "Unmutes the system volume.",
	}
}

func (x *Unmute) Run(ctx context.Context, args map[string]any) (any, error) {
	return setMute(ctx, x.runner, false)
}

func setMute(ctx context.Context, runner proc.Runner, mute bool) (any, error) {
	flag := "0"
	if mute {
		flag = "1"
	}
	if err := runner.Run(ctx, pactl, "set-sink-mute", defaultSink, flag); err != nil {
		return nil, goerr.Wrap(err, "failed to change mute state", goerr.V("mute", mute))
	}
	return true, nil
}
