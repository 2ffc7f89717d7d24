package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/sonnes/ytscribe/reader"
	"github.com/sonnes/ytscribe/render"
	jsonrender "github.com/sonnes/ytscribe/render/json"
	"github.com/sonnes/ytscribe/render/text"
	"github.com/sonnes/ytscribe/store"
)

func fetchCmd(a *app) *cli.Command {
	flags := append(append(transcriptFlags(), renderFlags()...),
		&cli.StringSliceFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Formats to write: " + strings.Join(a.formats(), ", "),
			Value:   []string{jsonrender.Ext, text.Ext},
			Sources: cli.EnvVars("YTS_FORMAT"),
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Data root; files go to <out>/<format>/<video-id>.<format>",
			Value:   store.DefaultRoot,
			Sources: cli.EnvVars("YTS_OUT"),
		},
		&cli.BoolFlag{
			Name:  "skip-existing",
			Usage: "Skip videos whose requested formats are all saved already",
		},
		&cli.BoolFlag{
			Name:  "no-manifest",
			Usage: "Do not update manifest.json",
		},
	)

	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch transcripts and save them to disk",
		ArgsUsage: "<video-id-or-url>...",
		Description: `Fetches the transcript of each video, cleans caption markup, renders
every requested format and writes it atomically. One failing video does
not stop the others; the command exits non-zero if any failed.`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("at least one video id or url is required")
			}

			s, err := newSaver(a, cmd)
			if err != nil {
				return err
			}

			args := cmd.Args().Slice()
			var errs []error
			for _, arg := range args {
				id, err := reader.ParseVideoID(arg)
				if err != nil {
					log.Error("fetch failed", "input", arg, "err", err)
					errs = append(errs, err)
					continue
				}

				res, err := s.save(ctx, id)
				if err != nil {
					log.Error("fetch failed", "video", id, "err", err)
					errs = append(errs, fmt.Errorf("%s: %w", id, err))
					continue
				}
				if res.Skipped {
					fmt.Fprintf(cmd.Root().Writer, "%s skipped\n", id)
					continue
				}
				for _, format := range s.formats {
					fmt.Fprintf(cmd.Root().Writer, "%s %s\n", id, res.Files[format])
				}
			}

			if len(errs) > 0 {
				return fmt.Errorf("%d of %d videos failed: %w", len(errs), len(args), errors.Join(errs...))
			}
			return nil
		},
	}
}

func newSaver(a *app, cmd *cli.Command) (*saver, error) {
	f, err := newFetcher(a, cmd)
	if err != nil {
		return nil, err
	}

	formats := dedupe(cmd.StringSlice("format"))
	if len(formats) == 0 {
		return nil, fmt.Errorf("at least one --format is required")
	}
	opts := renderOptionsFrom(cmd)
	renderers := make(map[string]render.Renderer, len(formats))
	for _, format := range formats {
		if format == "terminal" {
			return nil, fmt.Errorf("terminal is not a file format; use the show command")
		}
		r, err := a.renderer(format, opts)
		if err != nil {
			return nil, err
		}
		renderers[format] = r
	}

	return &saver{
		fetcher:      f,
		transform:    newCleaner(cmd),
		store:        store.New(cmd.String("out")),
		formats:      formats,
		renderers:    renderers,
		allFormats:   a.formats(),
		skipExisting: cmd.Bool("skip-existing"),
		noManifest:   cmd.Bool("no-manifest"),
	}, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
