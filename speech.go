package hark

import (
	"context"
	"math"
	"time"
)

// Audio is captured mono PCM16 audio.
type Audio struct {
	Samples    []int16
	SampleRate int
}

// Duration returns the playback length of the audio.
func (x *Audio) Duration() time.Duration {
	if x == nil || x.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(x.Samples)) * time.Second / time.Duration(x.SampleRate)
}

// RMS returns the root mean square energy of the samples. Silence in a quiet room is well
// under a few hundred.
func (x *Audio) RMS() float64 {
	if x == nil {
		return 0
	}
	return RMS(x.Samples)
}

// RMS returns the root mean square energy of PCM16 samples.
func RMS(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// WakeDetector blocks until the wake phrase is heard. It is a long-lived handle released by
// Close exactly once.
type WakeDetector interface {
	Wait(ctx context.Context) error
	Close() error
}

// Recorder captures one utterance. It returns ErrCaptureTimeout when no speech started within
// timeout.
type Recorder interface {
	Record(ctx context.Context, timeout time.Duration) (*Audio, error)
}

// Transcriber converts audio into recognized segments. It is a long-lived handle released by
// Close exactly once.
type Transcriber interface {
	Transcribe(ctx context.Context, audio *Audio) (*Transcription, error)
	Close() error
}

// Speaker plays text as speech and blocks until playback completes.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}
