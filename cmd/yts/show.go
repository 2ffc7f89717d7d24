package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/sonnes/ytscribe/core"
	"github.com/sonnes/ytscribe/reader"
)

func showCmd(a *app) *cli.Command {
	flags := append(append(transcriptFlags(), renderFlags()...),
		&cli.StringFlag{
			Name:    "o",
			Aliases: []string{"output"},
			Usage:   "Output format: terminal, json, txt, srt, vtt, html",
			Value:   "terminal",
		},
	)

	return &cli.Command{
		Name:      "show",
		Usage:     "Fetch a transcript and print it without saving",
		ArgsUsage: "<video-id-or-url>",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("exactly one video id or url is required")
			}
			id, err := reader.ParseVideoID(cmd.Args().First())
			if err != nil {
				return err
			}

			rnd, err := a.renderer(cmd.String("o"), renderOptionsFrom(cmd))
			if err != nil {
				return err
			}

			f, err := newFetcher(a, cmd)
			if err != nil {
				return err
			}
			t, err := f.fetch(ctx, id)
			if err != nil {
				return err
			}
			if err := core.Chain(t, newCleaner(cmd)); err != nil {
				return fmt.Errorf("transform: %w", err)
			}

			if err := rnd.Render(cmd.Root().Writer, t); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
}
