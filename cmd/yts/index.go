package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/sonnes/ytscribe/manifest"
	htmlrender "github.com/sonnes/ytscribe/render/html"
	"github.com/sonnes/ytscribe/store"
)

func indexCmd() *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "Generate an index page from the manifest",
		Description: `Reads manifest.json from the data root and writes index.html alongside
it, linking each video to its HTML page or, failing that, its JSON file.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Data root containing manifest.json (writes index.html there)",
				Value:   store.DefaultRoot,
				Sources: cli.EnvVars("YTS_OUT"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("dir")

			m, err := manifest.ReadFile(manifest.Path(dir))
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}

			var buf bytes.Buffer
			if err := htmlrender.New().RenderIndex(&buf, m.Entries); err != nil {
				return fmt.Errorf("render index: %w", err)
			}

			outPath := filepath.Join(dir, "index.html")
			if err := store.WriteAtomic(outPath, buf.Bytes()); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.Root().Writer, "Wrote %s (%d entries)\n", outPath, len(m.Entries))
			return nil
		},
	}
}
