// Package console replaces the microphone and the voice with a terminal. Lines typed on stdin
// are handed to the orchestrator as fully confident transcripts and speech is printed.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark"
)

const (
	assistantPrefix = "Jarvis: "
	userPrompt      = "> "
)

// TextHandler receives typed lines. *hark.Orchestrator implements it.
type TextHandler interface {
	HandleText(ctx context.Context, text string, confidence float64) bool
}

// Speaker prints speech lines.
type Speaker struct {
	w     io.Writer
	mutex sync.Mutex
}

var _ hark.Speaker = &Speaker{}

// NewSpeaker creates a Speaker printing to w.
func NewSpeaker(w io.Writer) *Speaker {
	return &Speaker{w: w}
}

// Speak prints one line.
func (x *Speaker) Speak(ctx context.Context, text string) error {
	x.mutex.Lock()
	defer x.mutex.Unlock()
	if _, err := fmt.Fprintln(x.w, assistantPrefix+strings.TrimSpace(text)); err != nil {
		return goerr.Wrap(err, "failed to print speech")
	}
	return nil
}

// Run reads r line by line until EOF, "exit", "quit" or cancellation of ctx. Blank lines are
// skipped. The prompt is written to w before each line.
func Run(ctx context.Context, r io.Reader, w io.Writer, handler TextHandler) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(w, userPrompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return nil

		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(w)
				select {
				case err := <-readErr:
					if err != nil {
						return goerr.Wrap(err, "failed to read input")
					}
				default:
				}
				return nil
			}

			line = strings.TrimSpace(line)
			switch strings.ToLower(line) {
			case "":
				continue
			case "exit", "quit":
				return nil
			}
			handler.HandleText(ctx, line, 1.0)
		}
	}
}
