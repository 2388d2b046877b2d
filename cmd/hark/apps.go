package main

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/hark/tools/apps"
	"github.com/urfave/cli/v3"
)

func appsCommand() *cli.Command {
	return &cli.Command{
		Name:  "apps",
		Usage: "Manage the application registry used by open_app",
		Commands: []*cli.Command{
			{
				Name:  "scan",
				Usage: "Rescan desktop entries and rewrite the cache",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "app-cache",
						Value:   apps.DefaultCachePath(),
						Sources: cli.EnvVars("HARK_APP_CACHE"),
						Usage:   "JSON cache of installed applications",
					},
					&cli.StringSliceFlag{
						Name:    "dir",
						Value:   apps.DefaultDirs(),
						Sources: cli.EnvVars("HARK_APP_DIRS"),
						Usage:   "Directories of .desktop files",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.String("app-cache")
					registry := apps.NewRegistry(apps.Scan(ctx, cmd.StringSlice("dir")))
					if err := registry.Save(path); err != nil {
						return err
					}
					ctxlog.From(ctx).Info("application cache written", "path", path, "apps", len(registry.Apps()))
					fmt.Printf("%d applications cached in %s\n", len(registry.Apps()), path)
					return nil
				},
			},
		},
	}
}
