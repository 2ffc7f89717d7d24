package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v3"

	"github.com/sonnes/ytscribe/reader"
)

func tracksCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:      "tracks",
		Usage:     "List the caption tracks available for a video",
		ArgsUsage: "<video-id-or-url>",
		Flags:     providerFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("exactly one video id or url is required")
			}
			id, err := reader.ParseVideoID(cmd.Args().First())
			if err != nil {
				return err
			}

			f, err := newFetcher(a, cmd)
			if err != nil {
				return err
			}
			tracks, err := f.tracks(ctx, id)
			if err != nil {
				return err
			}
			if len(tracks) == 0 {
				return fmt.Errorf("%s: %w", id, reader.ErrTranscriptsDisabled)
			}

			tbl := table.New().
				Border(lipgloss.HiddenBorder()).
				Headers("CODE", "KIND", "TRANSLATABLE", "NAME")
			for _, t := range tracks {
				kind := "manual"
				if t.IsGenerated {
					kind = "auto"
				}
				translatable := "no"
				if t.IsTranslatable {
					translatable = "yes"
				}
				tbl.Row(t.LanguageCode, kind, translatable, t.Language)
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, tbl.Render())
			return err
		},
	}
}
