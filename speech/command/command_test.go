package command_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/internal"
	"github.com/m-mizutani/hark/speech/command"
)

func requireCommands(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("%s is not available", name)
		}
	}
}

func TestSplit(t *testing.T) {
	gt.Equal(t, command.Split("  arecord -q  -f S16_LE "), []string{"arecord", "-q", "-f", "S16_LE"})
	gt.A(t, command.Split("")).Length(0)
}

// pcm renders frames of 100ms at 16kHz. Each value is the constant amplitude of one frame.
func pcm(amplitudes ...int16) []byte {
	var buf bytes.Buffer
	for _, amp := range amplitudes {
		frame := make([]int16, 1600)
		for i := range frame {
			if i%2 == 0 {
				frame[i] = amp
			} else {
				frame[i] = -amp
			}
		}
		_ = binary.Write(&buf, binary.LittleEndian, frame)
	}
	return buf.Bytes()
}

func repeat(amp int16, n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = amp
	}
	return out
}

func TestRecorderCapture(t *testing.T) {
	ctx := internal.TestContext()
	rec, err := command.NewRecorder([]string{"arecord"},
		command.WithTrailingSilence(300*time.Millisecond),
		command.WithMaxUtterance(time.Second),
	)
	gt.NoError(t, err)

	t.Run("speech followed by silence", func(t *testing.T) {
		var frames []int16
		frames = append(frames, repeat(10, 5)...)
		frames = append(frames, repeat(1000, 4)...)
		frames = append(frames, repeat(10, 10)...)

		audio, err := rec.Capture(ctx, bytes.NewReader(pcm(frames...)), 5*time.Second)
		gt.NoError(t, err)
		gt.Equal(t, audio.SampleRate, 16000)
		// 3 frames of pre-roll, 4 of speech and 3 of trailing silence
		gt.Equal(t, audio.Duration(), time.Second)
	})

	t.Run("silence until timeout", func(t *testing.T) {
		audio, err := rec.Capture(ctx, bytes.NewReader(pcm(repeat(50, 30)...)), time.Second)
		gt.Nil(t, audio)
		gt.True(t, errors.Is(err, hark.ErrCaptureTimeout))
	})

	t.Run("speech is capped", func(t *testing.T) {
		audio, err := rec.Capture(ctx, bytes.NewReader(pcm(repeat(5000, 30)...)), time.Second)
		gt.NoError(t, err)
		gt.Equal(t, audio.Duration(), time.Second)
	})

	t.Run("stream ends during speech", func(t *testing.T) {
		data := pcm(1000, 1000)
		data = append(data, pcm(1000)[:800]...)

		audio, err := rec.Capture(ctx, bytes.NewReader(data), time.Second)
		gt.NoError(t, err)
		gt.Equal(t, len(audio.Samples), 1600*2+400)
	})

	t.Run("stream ends before speech", func(t *testing.T) {
		_, err := rec.Capture(ctx, bytes.NewReader(pcm(10, 10)), 5*time.Second)
		gt.True(t, errors.Is(err, hark.ErrCaptureTimeout))
	})

	t.Run("no audio at all", func(t *testing.T) {
		_, err := rec.Capture(ctx, bytes.NewReader(nil), 5*time.Second)
		gt.Error(t, err)
		gt.False(t, errors.Is(err, hark.ErrCaptureTimeout))
	})

	t.Run("canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := rec.Capture(canceled, bytes.NewReader(pcm(1000)), 5*time.Second)
		gt.True(t, errors.Is(err, context.Canceled))
	})
}

func TestRecorderRecord(t *testing.T) {
	requireCommands(t, "cat")
	ctx := internal.TestContext()

	path := filepath.Join(t.TempDir(), "capture.raw")
	gt.NoError(t, os.WriteFile(path, pcm(10, 2000, 2000, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10), 0600))

	rec, err := command.NewRecorder([]string{"cat", path})
	gt.NoError(t, err)

	audio, err := rec.Record(ctx, time.Second)
	gt.NoError(t, err)
	// one frame of pre-roll, two of speech, one second of trailing silence
	gt.Equal(t, audio.Duration(), 1300*time.Millisecond)
}

func TestNewRecorder(t *testing.T) {
	_, err := command.NewRecorder(nil)
	gt.Error(t, err)

	_, err = command.NewRecorder([]string{"arecord"}, command.WithSampleRate(0))
	gt.Error(t, err)
}

func TestSpeaker(t *testing.T) {
	requireCommands(t, "cat", "tee")
	ctx := internal.TestContext()

	t.Run("synthesizer piped into player", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "played.txt")
		speaker, err := command.NewSpeaker([]string{"cat"}, []string{"tee", out})
		gt.NoError(t, err)

		gt.NoError(t, speaker.Speak(ctx, "It's noon.\n  Anything else? $(whoami)"))

		played, err := os.ReadFile(out)
		gt.NoError(t, err)
		gt.Equal(t, string(played), "It's noon. Anything else? $(whoami)\n")
	})

	t.Run("synthesizer only", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "spoken.txt")
		speaker, err := command.NewSpeaker([]string{"tee", out}, nil)
		gt.NoError(t, err)

		gt.NoError(t, speaker.Speak(ctx, "Done."))
		spoken, err := os.ReadFile(out)
		gt.NoError(t, err)
		gt.Equal(t, string(spoken), "Done.\n")
	})

	t.Run("blank text is not spoken", func(t *testing.T) {
		speaker, err := command.NewSpeaker([]string{"/nonexistent/synth"}, nil)
		gt.NoError(t, err)
		gt.NoError(t, speaker.Speak(ctx, " \n "))
	})

	t.Run("missing synthesizer", func(t *testing.T) {
		speaker, err := command.NewSpeaker([]string{"/nonexistent/synth"}, []string{"cat"})
		gt.NoError(t, err)
		gt.Error(t, speaker.Speak(ctx, "hello"))
	})

	t.Run("empty synthesizer", func(t *testing.T) {
		_, err := command.NewSpeaker(nil, nil)
		gt.Error(t, err)
	})
}

func TestWakeDetector(t *testing.T) {
	requireCommands(t, "sh")
	ctx := internal.TestContext()

	t.Run("detection while waiting", func(t *testing.T) {
		wake, err := command.OpenWakeDetector(ctx, []string{"sh", "-c", "sleep 0.3; echo detected; sleep 30"})
		gt.NoError(t, err)
		defer func() { gt.NoError(t, wake.Close()) }()

		waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		gt.NoError(t, wake.Wait(waitCtx))
	})

	t.Run("exited detector fails the wait", func(t *testing.T) {
		wake, err := command.OpenWakeDetector(ctx, []string{"sh", "-c", "exit 3"})
		gt.NoError(t, err)
		defer func() { gt.NoError(t, wake.Close()) }()

		waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		err = wake.Wait(waitCtx)
		gt.Error(t, err)
		gt.False(t, errors.Is(err, context.DeadlineExceeded))
	})

	t.Run("canceled wait", func(t *testing.T) {
		wake, err := command.OpenWakeDetector(ctx, []string{"sh", "-c", "sleep 30"})
		gt.NoError(t, err)

		waitCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		defer cancel()
		gt.True(t, errors.Is(wake.Wait(waitCtx), context.DeadlineExceeded))

		gt.NoError(t, wake.Close())
		gt.NoError(t, wake.Close())
	})

	t.Run("missing program", func(t *testing.T) {
		_, err := command.OpenWakeDetector(ctx, []string{"/nonexistent/detector"})
		gt.Error(t, err)

		_, err = command.OpenWakeDetector(ctx, nil)
		gt.Error(t, err)
	})
}
