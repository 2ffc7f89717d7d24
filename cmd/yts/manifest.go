package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/sonnes/ytscribe/manifest"
	"github.com/sonnes/ytscribe/store"
)

func manifestCmd() *cli.Command {
	return &cli.Command{
		Name:  "manifest",
		Usage: "Manage the transcript manifest",
		Commands: []*cli.Command{
			manifestRepairCmd(),
		},
	}
}

func manifestRepairCmd() *cli.Command {
	return &cli.Command{
		Name:  "repair",
		Usage: "Rebuild manifest.json by scanning the data directory",
		Description: `Scans <dir>/<format>/*.<format> for saved transcripts and rebuilds the
manifest. Metadata already in the manifest is kept; videos missing from it
are recovered from their JSON files. Entries with no files left are dropped.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Data root containing manifest.json",
				Value:   store.DefaultRoot,
				Sources: cli.EnvVars("YTS_OUT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("dir")

			m, err := manifest.Repair(dir)
			if err != nil {
				return fmt.Errorf("repair manifest: %w", err)
			}
			if err := m.WriteFile(manifest.Path(dir)); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}

			fmt.Fprintf(cmd.Root().Writer, "Repaired manifest: %d entries\n", len(m.Entries))
			return nil
		},
	}
}
