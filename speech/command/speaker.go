package command

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
)

// Speaker writes the text to the stdin of a synthesizer and pipes the synthesized audio into a
// player, e.g. "piper --model en_US-lessac-medium.onnx --output_raw" into
// "aplay -r 22050 -f S16_LE -t raw -". Without a player the synthesizer is expected to play the
// audio itself, as "espeak-ng --stdin" does.
type Speaker struct {
	synth  []string
	player []string
}

var _ hark.Speaker = &Speaker{}

// NewSpeaker creates a Speaker. player may be empty.
func NewSpeaker(synth, player []string) (*Speaker, error) {
	if len(synth) == 0 {
		return nil, goerr.New("synthesizer command is empty")
	}
	return &Speaker{synth: synth, player: player}, nil
}

// Speak blocks until the player exits.
func (x *Speaker) Speak(ctx context.Context, text string) error {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}
	ctxlog.From(ctx).Debug("speaking", "text", text)

	synth := exec.CommandContext(ctx, x.synth[0], x.synth[1:]...)
	synth.Stdin = strings.NewReader(text + "\n")
	var synthErr bytes.Buffer
	synth.Stderr = &synthErr

	if len(x.player) == 0 {
		if err := synth.Run(); err != nil {
			return goerr.Wrap(err, "synthesizer failed",
				goerr.V("argv", x.synth),
				goerr.V("stderr", synthErr.String()))
		}
		return nil
	}

	player := exec.CommandContext(ctx, x.player[0], x.player[1:]...)
	var playerErr bytes.Buffer
	player.Stderr = &playerErr

	r, w, err := os.Pipe()
	if err != nil {
		return goerr.Wrap(err, "failed to create audio pipe")
	}
	synth.Stdout = w
	player.Stdin = r

	if err := player.Start(); err != nil {
		_ = r.Close()
		_ = w.Close()
		return goerr.Wrap(err, "failed to start player", goerr.V("argv", x.player))
	}
	if err := synth.Start(); err != nil {
		_ = r.Close()
		_ = w.Close()
		kill(player)
		_ = player.Wait()
		return goerr.Wrap(err, "failed to start synthesizer", goerr.V("argv", x.synth))
	}

	// Both ends now belong to the children; the player sees EOF once the synthesizer exits.
	_ = r.Close()
	_ = w.Close()

	synthRunErr := synth.Wait()
	playerRunErr := player.Wait()

	if synthRunErr != nil {
		return goerr.Wrap(synthRunErr, "synthesizer failed",
			goerr.V("argv", x.synth),
			goerr.V("stderr", synthErr.String()))
	}
	if playerRunErr != nil {
		return goerr.Wrap(playerRunErr, "player failed",
			goerr.V("argv", x.player),
			goerr.V("stderr", playerErr.String()))
	}
	return nil
}
