package main

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/hark/speech/console"
	"github.com/urfave/cli/v3"
)

func chatCommand() *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Talk to the assistant by typing; replies are printed",
		Flags: assistantFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			speaker := console.NewSpeaker(os.Stdout)

			asst, err := newAssistant(ctx, cmd, speaker)
			if err != nil {
				return err
			}
			defer func() {
				if err := asst.Close(); err != nil {
					ctxlog.From(ctx).Warn("failed to close assistant", "error", err)
				}
			}()

			return console.Run(ctx, os.Stdin, os.Stdout, asst.orchestrator(nil, nil, speaker))
		},
	}
}
