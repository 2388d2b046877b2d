// Package proc starts the external programs that desktop tools drive, such as pactl,
// xdg-open and xdotool.
package proc

//go:generate go tool moq -out ../../mock/runner_gen.go -pkg mock . Runner

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Runner runs programs by argument vector. No shell is involved.
type Runner interface {
	// Run waits for the program and fails on a non-zero exit.
	Run(ctx context.Context, name string, args ...string) error

	// Start launches the program in its own session and returns without waiting, so that it
	// outlives the assistant.
	Start(ctx context.Context, name string, args ...string) error
}

// Exec is the Runner backed by os/exec.
type Exec struct{}

var _ Runner = Exec{}

func (Exec) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	ctxlog.From(ctx).Debug("running command", "name", name, "args", args)
	if err := cmd.Run(); err != nil {
		return goerr.Wrap(err, "command failed",
			goerr.V("name", name),
			goerr.V("args", args),
			goerr.V("stderr", strings.TrimSpace(stderr.String())))
	}
	return nil
}

func (Exec) Start(ctx context.Context, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	ctxlog.From(ctx).Debug("starting command", "name", name, "args", args)
	if err := cmd.Start(); err != nil {
		return goerr.Wrap(err, "failed to start command", goerr.V("name", name), goerr.V("args", args))
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
