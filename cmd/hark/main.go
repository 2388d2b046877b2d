package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "hark",
		Usage: "Voice driven desktop assistant",
		Flags: loggerFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return configureLogger(ctx, cmd)
		},
		Commands: []*cli.Command{
			runCommand(),
			chatCommand(),
			toolsCommand(),
			mcpCommand(),
			appsCommand(),
			tracesCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
