// Package youtube reads transcripts through the github.com/kkdai/youtube/v2
// client. The client owns the player request; the chosen caption track is
// downloaded from its own timedtext URL.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	yt "github.com/kkdai/youtube/v2"

	"github.com/sonnes/ytscribe/core"
	"github.com/sonnes/ytscribe/reader"
)

// Provider is the name recorded in Transcript.Provider.
const Provider = "youtube"

const maxBody = 8 << 20

// Reader fetches transcripts via the kkdai/youtube client.
type Reader struct {
	// HTTPClient overrides the client used for all requests. Nil uses
	// reader.DefaultHTTPClient.
	HTTPClient *http.Client

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a Reader with the default HTTP client.
func New() *Reader {
	return &Reader{}
}

func (r *Reader) httpClient() *http.Client {
	return reader.HTTPClient(r.HTTPClient)
}

func (r *Reader) client() *yt.Client {
	return &yt.Client{HTTPClient: r.httpClient()}
}

// Fetch loads video metadata, picks a caption track for langs, and downloads
// that exact track in json3 format.
func (r *Reader) Fetch(ctx context.Context, videoID string, langs []string) (*core.Transcript, error) {
	video, err := r.client().GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("get video %s: %w", videoID, mapError(err))
	}
	if len(video.CaptionTracks) == 0 {
		return nil, fmt.Errorf("%s: %w", videoID, reader.ErrTranscriptsDisabled)
	}

	raw := usableTracks(video.CaptionTracks)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w", videoID, reader.ErrPoToken)
	}

	tracks := mapTracks(raw)
	idx, err := reader.SelectTrack(tracks, langs)
	if err != nil {
		return nil, reader.WithVideoID(err, videoID)
	}
	track := tracks[idx]

	entries, err := r.download(ctx, raw[idx].BaseURL)
	if err != nil {
		return nil, fmt.Errorf("get captions %s/%s: %w", videoID, track.LanguageCode, err)
	}

	return &core.Transcript{
		VideoID:      videoID,
		Title:        video.Title,
		Author:       video.Author,
		Language:     track.Language,
		LanguageCode: track.LanguageCode,
		IsGenerated:  track.IsGenerated,
		Provider:     Provider,
		FetchedAt:    r.clock(),
		Entries:      entries,
	}, nil
}

// Tracks lists the caption tracks announced in the video's player response,
// including ones Fetch cannot download without a po token.
func (r *Reader) Tracks(ctx context.Context, videoID string) ([]core.Track, error) {
	video, err := r.client().GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("get video %s: %w", videoID, mapError(err))
	}
	return mapTracks(video.CaptionTracks), nil
}

func (r *Reader) download(ctx context.Context, baseURL string) ([]core.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reader.JSON3URL(baseURL), nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if err := reader.CheckStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}
	return reader.ParseJSON3(body)
}

func (r *Reader) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now().UTC()
}

func usableTracks(raw []yt.CaptionTrack) []yt.CaptionTrack {
	out := make([]yt.CaptionTrack, 0, len(raw))
	for _, ct := range raw {
		if reader.NeedsPoToken(ct.BaseURL) {
			continue
		}
		out = append(out, ct)
	}
	return out
}

func mapTracks(raw []yt.CaptionTrack) []core.Track {
	tracks := make([]core.Track, 0, len(raw))
	for _, ct := range raw {
		tracks = append(tracks, core.Track{
			Language:       ct.Name.SimpleText,
			LanguageCode:   ct.LanguageCode,
			IsGenerated:    ct.Kind == "asr",
			IsTranslatable: ct.IsTranslatable,
		})
	}
	return tracks
}

// mapError classifies client errors onto reader sentinels. The original error
// stays in the chain so its message is not lost.
//
// The client reports every non-private LOGIN_REQUIRED status as
// ErrLoginRequired without the reason, so an age gate cannot be told apart
// from a bot check. It maps to reader.ErrLoginRequired, which stops retries
// but leaves the fallback provider eligible. ErrNotPlayableInEmbed only
// escapes the client after its embedded-player retry for a login wall.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, yt.ErrVideoPrivate):
		return fmt.Errorf("%w: %w", reader.ErrVideoUnavailable, err)
	case errors.Is(err, yt.ErrLoginRequired), errors.Is(err, yt.ErrNotPlayableInEmbed):
		return fmt.Errorf("%w: %w", reader.ErrLoginRequired, err)
	case errors.Is(err, yt.ErrTranscriptDisabled):
		return fmt.Errorf("%w: %w", reader.ErrTranscriptsDisabled, err)
	case errors.Is(err, yt.ErrInvalidCharactersInVideoID), errors.Is(err, yt.ErrVideoIDMinLength):
		return fmt.Errorf("%w: %w", reader.ErrInvalidVideoID, err)
	}

	var ps *yt.ErrPlayabiltyStatus
	if errors.As(err, &ps) {
		if kind := reader.PlayabilityKind(ps.Status, ps.Reason); kind != nil {
			return fmt.Errorf("%w: %w", kind, err)
		}
		return err
	}

	var code yt.ErrUnexpectedStatusCode
	if errors.As(err, &code) {
		if int(code) == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %w", reader.ErrRateLimited, err)
		}
		return fmt.Errorf("%w: %w", &reader.HTTPError{StatusCode: int(code)}, err)
	}

	if strings.Contains(strings.ToLower(err.Error()), "too many requests") {
		return fmt.Errorf("%w: %w", reader.ErrRateLimited, err)
	}
	return err
}
