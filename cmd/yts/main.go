package main

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("load .env", "err", err)
	}

	if err := rootCmd(newApp()).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func rootCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:  "yts",
		Usage: "Fetch YouTube transcripts and save them as JSON, text and subtitles",
		Description: `
           _
  _  _ __ | |_ ___
 | || |\ \|  _(_-<
  \_, |/_/ \__/__/
  |__/

 Transcripts are written to <out>/<format>/<video-id>.<format>.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log",
				Usage:   "Log level: debug, info, warn, error",
				Value:   "warn",
				Sources: cli.EnvVars("YTS_LOG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			fetchCmd(a),
			showCmd(a),
			tracksCmd(a),
			manifestCmd(),
			indexCmd(),
		},
	}
}
