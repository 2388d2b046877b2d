package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/hark/trace"
	"github.com/urfave/cli/v3"
)

func traceStoreFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "trace-dir",
			Sources: cli.EnvVars("HARK_TRACE_DIR"),
			Usage:   "Local directory of utterance trace JSON files",
		},
		&cli.StringFlag{
			Name:    "trace-bucket",
			Sources: cli.EnvVars("HARK_TRACE_BUCKET"),
			Usage:   "Google Cloud Storage bucket of utterance traces",
		},
		&cli.StringFlag{
			Name:    "trace-prefix",
			Sources: cli.EnvVars("HARK_TRACE_PREFIX"),
			Usage:   "Google Cloud Storage object prefix",
		},
	}
}

type traceStore interface {
	trace.Repository
	trace.Source
}

// openTraceStore returns a nil store when neither a directory nor a bucket is configured.
func openTraceStore(ctx context.Context, cmd *cli.Command) (traceStore, func() error, error) {
	nop := func() error { return nil }
	dir := cmd.String("trace-dir")
	bucket := cmd.String("trace-bucket")

	switch {
	case dir != "" && bucket != "":
		return nil, nop, goerr.New("--trace-dir and --trace-bucket are mutually exclusive")
	case dir != "":
		return trace.NewFileRepository(dir), nop, nil
	case bucket != "":
		repo, err := trace.NewCSRepository(ctx, bucket, cmd.String("trace-prefix"))
		if err != nil {
			return nil, nop, goerr.Wrap(err, "failed to create Cloud Storage repository")
		}
		return repo, repo.Close, nil
	default:
		return nil, nop, nil
	}
}

func requireTraceStore(ctx context.Context, cmd *cli.Command) (traceStore, func() error, error) {
	store, closer, err := openTraceStore(ctx, cmd)
	if err != nil {
		return nil, closer, err
	}
	if store == nil {
		return nil, closer, goerr.New("either --trace-dir or --trace-bucket must be specified")
	}
	return store, closer, nil
}

func tracesCommand() *cli.Command {
	return &cli.Command{
		Name:  "traces",
		Usage: "Browse saved utterance traces",
		Flags: traceStoreFlags(),
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List traces in chronological order",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "Number of traces to show",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, closer, err := requireTraceStore(ctx, cmd)
					defer func() { _ = closer() }()
					if err != nil {
						return err
					}
					return listTraces(ctx, os.Stdout, store, int(cmd.Int("limit")))
				},
			},
			{
				Name:      "show",
				Usage:     "Print one trace as JSON",
				ArgsUsage: "<trace-id>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return goerr.New("exactly one trace ID is required")
					}
					store, closer, err := requireTraceStore(ctx, cmd)
					defer func() { _ = closer() }()
					if err != nil {
						return err
					}
					return showTrace(ctx, os.Stdout, store, cmd.Args().First())
				},
			},
			{
				Name:  "serve",
				Usage: "Serve traces as a JSON API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Value:   "127.0.0.1:18900",
						Sources: cli.EnvVars("HARK_TRACES_ADDR"),
						Usage:   "Server listen address",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					store, closer, err := requireTraceStore(ctx, cmd)
					defer func() { _ = closer() }()
					if err != nil {
						return err
					}
					s := newServer(withAddr(cmd.String("addr")), withSource(store))
					return s.start(ctx)
				},
			},
		},
	}
}

func listTraces(ctx context.Context, w io.Writer, src trace.Source, limit int) error {
	resp, err := src.List(ctx, trace.ListRequest{PageSize: limit})
	if err != nil {
		return goerr.Wrap(err, "failed to list traces")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TRACE ID\tUPDATED\tSIZE")
	for _, s := range resp.Traces {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", s.TraceID, s.UpdatedAt.Local().Format("2006-01-02 15:04:05"), s.Size)
	}
	return tw.Flush()
}

func showTrace(ctx context.Context, w io.Writer, src trace.Source, id string) error {
	t, err := src.Get(ctx, id)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}
