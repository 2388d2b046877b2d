package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/m-mizutani/hark"
	"github.com/urfave/cli/v3"
)

func toolsCommand() *cli.Command {
	return &cli.Command{
		Name:  "tools",
		Usage: "List the tools available to the planner",
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
			return printTools(os.Stdout, registry)
		},
	}
}

func printTools(w io.Writer, registry *hark.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDATA\tDESCRIPTION")
	for _, spec := range registry.Specs() {
		data := "-"
		if spec.Name.IsDataProducing() {
			data = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", spec.Name, data, spec.Description)
	}
	return tw.Flush()
}
