package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/sonnes/ytscribe/clean"
	"github.com/sonnes/ytscribe/reader"
	"github.com/sonnes/ytscribe/reader/innertube"
	"github.com/sonnes/ytscribe/reader/youtube"
	"github.com/sonnes/ytscribe/render"
	htmlrender "github.com/sonnes/ytscribe/render/html"
	jsonrender "github.com/sonnes/ytscribe/render/json"
	"github.com/sonnes/ytscribe/render/srt"
	"github.com/sonnes/ytscribe/render/terminal"
	"github.com/sonnes/ytscribe/render/text"
	"github.com/sonnes/ytscribe/render/webvtt"
)

// app holds reader and renderer registries used by CLI commands.
type app struct {
	readers   map[string]func() reader.Reader
	renderers map[string]func(renderOptions) render.Renderer
}

// renderOptions carries CLI switches that tune individual renderers.
type renderOptions struct {
	Timestamps   bool
	JSONMetadata bool
}

func renderOptionsFrom(cmd *cli.Command) renderOptions {
	return renderOptions{
		Timestamps:   cmd.Bool("timestamps"),
		JSONMetadata: cmd.Bool("json-metadata"),
	}
}

func newApp() *app {
	return &app{
		readers: map[string]func() reader.Reader{
			youtube.Provider:   func() reader.Reader { return youtube.New() },
			innertube.Provider: func() reader.Reader { return innertube.New() },
		},
		renderers: map[string]func(renderOptions) render.Renderer{
			jsonrender.Ext: func(o renderOptions) render.Renderer {
				r := jsonrender.New()
				r.Metadata = o.JSONMetadata
				return r
			},
			text.Ext: func(o renderOptions) render.Renderer {
				r := text.New()
				r.Timestamps = o.Timestamps
				return r
			},
			srt.Ext:        func(renderOptions) render.Renderer { return srt.New() },
			webvtt.Ext:     func(renderOptions) render.Renderer { return webvtt.New() },
			htmlrender.Ext: func(renderOptions) render.Renderer { return htmlrender.New() },
		},
	}
}

func (a *app) reader(name string) (reader.Reader, error) {
	fn, ok := a.readers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", name)
	}
	return fn(), nil
}

func (a *app) renderer(name string, opts renderOptions) (render.Renderer, error) {
	if name == "terminal" {
		return terminal.New(), nil
	}
	fn, ok := a.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return fn(opts), nil
}

// formats returns the registered file formats in a stable order.
func (a *app) formats() []string {
	return slices.Sorted(maps.Keys(a.renderers))
}

// providerFlags are shared by every command that talks to YouTube.
func providerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "provider",
			Usage:   "Transcript provider: youtube, innertube",
			Value:   youtube.Provider,
			Sources: cli.EnvVars("YTS_PROVIDER"),
		},
		&cli.BoolFlag{
			Name:    "fallback",
			Usage:   "Try the other provider when the first fails for reasons other than the video itself",
			Sources: cli.EnvVars("YTS_FALLBACK"),
		},
		&cli.DurationFlag{
			Name:    "retry-timeout",
			Usage:   "Total time to retry transient failures; 0 disables retries",
			Value:   reader.DefaultRetryConfig.MaxElapsedTime,
			Sources: cli.EnvVars("YTS_RETRY_TIMEOUT"),
		},
		&cli.DurationFlag{
			Name:    "attempt-timeout",
			Usage:   "Time limit for a single request to a provider; 0 disables it",
			Value:   reader.DefaultRetryConfig.AttemptTimeout,
			Sources: cli.EnvVars("YTS_ATTEMPT_TIMEOUT"),
		},
	}
}

// renderFlags tune renderers for commands that produce transcript output.
func renderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "timestamps",
			Usage: "Prefix each line of txt output with its start time",
		},
		&cli.BoolFlag{
			Name:  "json-metadata",
			Usage: "Wrap json output in an object carrying video metadata",
		},
	}
}

// transcriptFlags are shared by commands that fetch a transcript.
func transcriptFlags() []cli.Flag {
	return append(providerFlags(),
		&cli.StringSliceFlag{
			Name:    "lang",
			Aliases: []string{"l"},
			Usage:   "Language codes in order of preference",
			Value:   []string{"en-US", "en"},
			Sources: cli.EnvVars("YTS_LANG"),
		},
		&cli.BoolFlag{
			Name:  "keep-formatting",
			Usage: "Keep inline formatting tags such as <i> and <b>",
		},
		&cli.BoolFlag{
			Name:  "drop-cues",
			Usage: "Remove sound cues such as [Music] and [Applause]",
		},
	)
}

// newFetcher builds the provider chain from CLI flags: the chosen provider,
// wrapped in retries, plus the other provider as a fallback when requested.
func newFetcher(a *app, cmd *cli.Command) (*fetcher, error) {
	name := cmd.String("provider")
	primary, err := a.reader(name)
	if err != nil {
		return nil, err
	}

	retry := reader.RetryConfig{
		MaxElapsedTime: cmd.Duration("retry-timeout"),
		AttemptTimeout: cmd.Duration("attempt-timeout"),
	}
	f := &fetcher{
		primary: reader.Retry(primary, retry),
		name:    name,
		langs:   cmd.StringSlice("lang"),
	}

	if cmd.Bool("fallback") {
		for _, other := range slices.Sorted(maps.Keys(a.readers)) {
			if other == name {
				continue
			}
			r, err := a.reader(other)
			if err != nil {
				return nil, err
			}
			f.fallback = reader.Retry(r, retry)
			f.fallbackName = other
			break
		}
	}
	return f, nil
}

func newCleaner(cmd *cli.Command) *clean.Cleaner {
	return clean.New(clean.Config{
		KeepFormatting: cmd.Bool("keep-formatting"),
		DropCues:       cmd.Bool("drop-cues"),
	})
}
