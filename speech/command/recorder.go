package command

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
)

const (
	DefaultSampleRate       = 16000
	DefaultSilenceThreshold = 200
	DefaultTrailingSilence  = time.Second
	DefaultMaxUtterance     = 15 * time.Second

	frameLength   = 100 * time.Millisecond
	preRollFrames = 3
)

// Recorder starts the capture command once per utterance and reads raw signed 16 bit little
// endian mono samples from its stdout, e.g. "arecord -q -f S16_LE -r 16000 -c 1 -t raw".
//
// Audio is examined in 100ms frames. Speech starts with the first frame whose RMS energy
// reaches the threshold and ends after the trailing silence or the maximum utterance length.
// Elapsed time is counted in captured audio, not wall clock.
type Recorder struct {
	argv            []string
	sampleRate      int
	threshold       float64
	trailingSilence time.Duration
	maxUtterance    time.Duration
}

var _ hark.Recorder = &Recorder{}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithSampleRate must match the rate the capture command produces.
func WithSampleRate(rate int) RecorderOption {
	return func(x *Recorder) {
		x.sampleRate = rate
	}
}

// WithSilenceThreshold sets the RMS energy below which a frame is silence.
func WithSilenceThreshold(rms float64) RecorderOption {
	return func(x *Recorder) {
		x.threshold = rms
	}
}

// WithTrailingSilence sets how much silence ends an utterance.
func WithTrailingSilence(d time.Duration) RecorderOption {
	return func(x *Recorder) {
		x.trailingSilence = d
	}
}

// WithMaxUtterance caps the length of one utterance.
func WithMaxUtterance(d time.Duration) RecorderOption {
	return func(x *Recorder) {
		x.maxUtterance = d
	}
}

// NewRecorder creates a Recorder for the capture command.
func NewRecorder(argv []string, options ...RecorderOption) (*Recorder, error) {
	if len(argv) == 0 {
		return nil, goerr.New("capture command is empty")
	}
	x := &Recorder{
		argv:            argv,
		sampleRate:      DefaultSampleRate,
		threshold:       DefaultSilenceThreshold,
		trailingSilence: DefaultTrailingSilence,
		maxUtterance:    DefaultMaxUtterance,
	}
	for _, opt := range options {
		opt(x)
	}
	if x.sampleRate <= 0 {
		return nil, goerr.New("sample rate must be positive", goerr.V("sample_rate", x.sampleRate))
	}
	return x, nil
}

// Record captures one utterance. It returns hark.ErrCaptureTimeout when no frame reached the
// threshold within timeout.
func (x *Recorder) Record(ctx context.Context, timeout time.Duration) (*hark.Audio, error) {
	cmd, err := newCmd(x.argv)
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open capture output", goerr.V("argv", x.argv))
	}
	if err := cmd.Start(); err != nil {
		return nil, goerr.Wrap(err, "failed to start capture command", goerr.V("argv", x.argv))
	}
	defer func() {
		kill(cmd)
		_ = cmd.Wait()
	}()

	return x.capture(ctx, stdout, timeout)
}

func (x *Recorder) capture(ctx context.Context, r io.Reader, timeout time.Duration) (*hark.Audio, error) {
	frameSamples := int(int64(x.sampleRate) * int64(frameLength) / int64(time.Second))
	buf := make([]byte, frameSamples*2)

	var (
		elapsed  time.Duration
		silent   time.Duration
		started  bool
		preRoll  [][]int16
		samples  []int16
		received bool
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := io.ReadFull(r, buf)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			if !errors.Is(err, io.EOF) {
				return nil, goerr.Wrap(err, "failed to read captured audio")
			}
			break
		}
		received = true

		frame := make([]int16, n/2)
		for i := range frame {
			frame[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
		}
		elapsed += frameLength
		loud := hark.RMS(frame) >= x.threshold

		if !started {
			if !loud {
				preRoll = append(preRoll, frame)
				if len(preRoll) > preRollFrames {
					preRoll = preRoll[1:]
				}
				if elapsed >= timeout {
					return nil, goerr.Wrap(hark.ErrCaptureTimeout, "no speech", goerr.V("timeout", timeout))
				}
				continue
			}

			started = true
			elapsed = frameLength
			for _, f := range preRoll {
				samples = append(samples, f...)
			}
		}

		samples = append(samples, frame...)
		if loud {
			silent = 0
		} else {
			silent += frameLength
		}

		if silent >= x.trailingSilence || elapsed >= x.maxUtterance || n < len(buf) {
			break
		}
	}

	if !started {
		if !received {
			return nil, goerr.New("capture command produced no audio", goerr.V("argv", x.argv))
		}
		return nil, goerr.Wrap(hark.ErrCaptureTimeout, "capture ended before speech")
	}

	audio := &hark.Audio{Samples: samples, SampleRate: x.sampleRate}
	ctxlog.From(ctx).Debug("captured utterance", "duration", audio.Duration(), "rms", audio.RMS())
	return audio, nil
}
