package main

import (
	"context"
	"os"

	"github.com/m-mizutani/hark"
	"github.com/m-mizutani/hark/mcp"
	"github.com/urfave/cli/v3"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the tools to MCP clients over stdio",
		Flags: toolFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			set, err := openTools(ctx, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = set.Close() }()

			registry, err := set.Registry()
			if err != nil {
				return err
			}
			srv, err := mcp.NewServer(hark.NewToolDispatcher(registry))
			if err != nil {
				return err
			}
			return srv.ServeStdio(ctx, os.Stdin, os.Stdout)
		},
	}
}
