package hark

import (
	"errors"
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

// Runtime owns the long-lived handles of the process: the wake engine and the transcription
// model. It is created once at startup and closed exactly once on every exit path.
type Runtime struct {
	wake        WakeDetector
	transcriber Transcriber

	closeOnce sync.Once
	closeErr  error
}

// NewRuntime takes ownership of the handles.
func NewRuntime(wake WakeDetector, transcriber Transcriber) (*Runtime, error) {
	if wake == nil {
		return nil, goerr.New("wake detector is required")
	}
	if transcriber == nil {
		return nil, goerr.New("transcriber is required")
	}
	return &Runtime{wake: wake, transcriber: transcriber}, nil
}

// Wake returns the wake engine handle.
func (x *Runtime) Wake() WakeDetector {
	return x.wake
}

// Transcriber returns the transcription model handle.
func (x *Runtime) Transcriber() Transcriber {
	return x.transcriber
}

// Close releases both handles. Subsequent calls return the result of the first one.
func (x *Runtime) Close() error {
	x.closeOnce.Do(func() {
		var errs []error
		if err := x.wake.Close(); err != nil {
			errs = append(errs, goerr.Wrap(err, "failed to release wake detector"))
		}
		if err := x.transcriber.Close(); err != nil {
			errs = append(errs, goerr.Wrap(err, "failed to release transcriber"))
		}
		x.closeErr = errors.Join(errs...)
	})
	return x.closeErr
}
