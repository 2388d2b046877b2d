// Package command implements the speech collaborators on top of external processes: a wake
// word detector that prints one line per detection, a capture command that streams raw PCM16
// mono audio, and a synthesizer piped into an audio player.
//
// Commands are given as argument vectors and started directly. Nothing is interpreted by a
// shell, in particular not the text handed to the synthesizer.
package command

import (
	"os/exec"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Split turns a command line from configuration into an argument vector. Quoting is not
// supported; arguments are separated by white space.
func Split(cmdline string) []string {
	return strings.Fields(cmdline)
}

func newCmd(argv []string) (*exec.Cmd, error) {
	if len(argv) == 0 {
		return nil, goerr.New("command is empty")
	}
	return exec.Command(argv[0], argv[1:]...), nil
}

func kill(cmd *exec.Cmd) {
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}
