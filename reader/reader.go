// Package reader defines the interface for fetching YouTube caption tracks
// into the normalized transcript format.
package reader

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/sonnes/ytscribe/core"
)

// Reader fetches transcripts for a video from a single provider.
type Reader interface {
	// Fetch returns the transcript in the first of langs that the video has,
	// preferring manually created tracks over auto-generated ones.
	Fetch(ctx context.Context, videoID string, langs []string) (*core.Transcript, error)

	// Tracks lists the caption tracks available for a video.
	Tracks(ctx context.Context, videoID string) ([]core.Track, error)
}

// videoIDRE matches the 11-character base64url IDs YouTube assigns.
var videoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ParseVideoID accepts a bare video ID or a youtube.com / youtu.be URL and
// returns the video ID.
func ParseVideoID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidVideoID)
	}
	id, err := youtube.ExtractVideoID(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidVideoID, s, err)
	}
	if !videoIDRE.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoID, s)
	}
	return id, nil
}
