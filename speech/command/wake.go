package command

import (
	"bufio"
	"context"
	"os/exec"
	"strings"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
)

// WakeDetector runs a long-lived detector process. Every non-empty line the process writes to
// stdout is one detection. Detections that arrive while nobody is waiting are discarded, so a
// wake phrase spoken during an active session does not start the next one.
type WakeDetector struct {
	argv []string
	cmd  *exec.Cmd

	detected chan string
	exited   chan struct{}
	exitErr  error

	closeOnce sync.Once
}

var _ hark.WakeDetector = &WakeDetector{}

// OpenWakeDetector starts the detector process. The process lives until Close.
func OpenWakeDetector(ctx context.Context, argv []string) (*WakeDetector, error) {
	cmd, err := newCmd(argv)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid wake detector command")
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open wake detector output", goerr.V("argv", argv))
	}
	if err := cmd.Start(); err != nil {
		return nil, goerr.Wrap(err, "failed to start wake detector", goerr.V("argv", argv))
	}

	x := &WakeDetector{
		argv:     argv,
		cmd:      cmd,
		detected: make(chan string),
		exited:   make(chan struct{}),
	}

	logger := ctxlog.From(ctx)
	go func() {
		defer close(x.exited)

		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case x.detected <- line:
			default:
				logger.Debug("wake detection discarded outside of waiting", "line", line)
			}
		}
		x.exitErr = cmd.Wait()
	}()

	logger.Info("wake detector started", "argv", argv, "pid", cmd.Process.Pid)
	return x, nil
}

// Wait blocks until the next detection. It fails when the detector process has exited.
func (x *WakeDetector) Wait(ctx context.Context) error {
	select {
	case line := <-x.detected:
		ctxlog.From(ctx).Debug("wake word detected", "line", line)
		return nil
	case <-x.exited:
		return goerr.Wrap(x.exitErrOrEOF(), "wake detector exited", goerr.V("argv", x.argv))
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (x *WakeDetector) exitErrOrEOF() error {
	if x.exitErr != nil {
		return x.exitErr
	}
	return goerr.New("detector output closed")
}

// Close kills the detector process and waits for it to be reaped.
func (x *WakeDetector) Close() error {
	x.closeOnce.Do(func() {
		select {
		case <-x.exited:
			return
		default:
		}
		kill(x.cmd)
		<-x.exited
	})
	return nil
}
