package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/sonnes/ytscribe/core"
	"github.com/sonnes/ytscribe/manifest"
	"github.com/sonnes/ytscribe/reader"
	"github.com/sonnes/ytscribe/render"
	"github.com/sonnes/ytscribe/store"
)

// fetcher asks the primary provider for a transcript and, when configured,
// the fallback provider if the primary failed for a transport reason.
type fetcher struct {
	primary      reader.Reader
	name         string
	fallback     reader.Reader
	fallbackName string
	langs        []string
}

func (f *fetcher) fetch(ctx context.Context, videoID string) (*core.Transcript, error) {
	t, err := f.primary.Fetch(ctx, videoID, f.langs)
	if err == nil {
		return t, nil
	}
	if f.fallback == nil || reader.IsDefinitive(err) || ctx.Err() != nil {
		return nil, err
	}

	log.Warn("provider failed, trying fallback", "video", videoID, "provider", f.name, "fallback", f.fallbackName, "err", err)
	t, ferr := f.fallback.Fetch(ctx, videoID, f.langs)
	if ferr != nil {
		return nil, errors.Join(
			fmt.Errorf("%s: %w", f.name, err),
			fmt.Errorf("%s: %w", f.fallbackName, ferr),
		)
	}
	return t, nil
}

func (f *fetcher) tracks(ctx context.Context, videoID string) ([]core.Track, error) {
	tracks, err := f.primary.Tracks(ctx, videoID)
	if err == nil || f.fallback == nil || reader.IsDefinitive(err) || ctx.Err() != nil {
		return tracks, err
	}
	log.Warn("provider failed, trying fallback", "video", videoID, "provider", f.name, "fallback", f.fallbackName, "err", err)
	return f.fallback.Tracks(ctx, videoID)
}

// saver turns one video into files on disk: fetch, transform, render every
// format, save, and record the result in the manifest.
type saver struct {
	fetcher      *fetcher
	transform    core.Transformer
	store        *store.Store
	formats      []string
	renderers    map[string]render.Renderer
	allFormats   []string
	skipExisting bool
	noManifest   bool
}

// result describes what save did for one video.
type result struct {
	VideoID string
	Skipped bool
	Files   map[string]string
}

func (s *saver) save(ctx context.Context, videoID string) (*result, error) {
	if s.skipExisting && s.allExist(videoID) {
		log.Info("skipping, already saved", "video", videoID)
		return &result{VideoID: videoID, Skipped: true}, nil
	}

	t, err := s.fetcher.fetch(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if err := core.Chain(t, s.transform); err != nil {
		return nil, fmt.Errorf("transform %s: %w", videoID, err)
	}

	// Render everything before writing anything so that a renderer error
	// leaves no new files behind.
	payloads := make(map[string][]byte, len(s.formats))
	for _, format := range s.formats {
		var buf bytes.Buffer
		if err := s.renderers[format].Render(&buf, t); err != nil {
			return nil, fmt.Errorf("render %s %s: %w", videoID, format, err)
		}
		payloads[format] = buf.Bytes()
	}

	res := &result{VideoID: videoID, Files: map[string]string{}}
	for _, format := range s.formats {
		path, err := s.store.Save(videoID, format, payloads[format])
		if err != nil {
			return nil, err
		}
		rel, _ := s.store.Rel(videoID, format)
		res.Files[format] = rel
		log.Info("saved", "video", videoID, "format", format, "path", path)
	}

	if s.noManifest {
		return res, nil
	}
	entry := core.NewManifestEntry(t, s.filesOnDisk(videoID))
	if err := manifest.Update(s.store.Root(), entry); err != nil {
		return nil, fmt.Errorf("update manifest: %w", err)
	}
	return res, nil
}

func (s *saver) allExist(videoID string) bool {
	for _, format := range s.formats {
		if !s.store.Exists(videoID, format) {
			return false
		}
	}
	return true
}

// filesOnDisk lists every known format saved for videoID, including ones
// written by earlier runs with different --format values.
func (s *saver) filesOnDisk(videoID string) map[string]string {
	files := make(map[string]string)
	for _, format := range s.allFormats {
		if !s.store.Exists(videoID, format) {
			continue
		}
		if rel, err := s.store.Rel(videoID, format); err == nil {
			files[format] = rel
		}
	}
	return files
}
