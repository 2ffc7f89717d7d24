// Package innertube reads transcripts by calling YouTube's InnerTube player
// endpoint as the Android app and downloading json3 caption tracks.
package innertube

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	"github.com/sonnes/ytscribe/core"
	"github.com/sonnes/ytscribe/reader"
)

// Provider is the name recorded in Transcript.Provider.
const Provider = "innertube"

// DefaultBaseURL is the origin used when Reader.BaseURL is empty.
const DefaultBaseURL = "https://www.youtube.com"

const (
	playerPath     = "/youtubei/v1/player?prettyPrint=false"
	androidVersion = "20.10.38"
	androidUA      = "com.google.android.youtube/" + androidVersion + " (Linux; U; Android 11) gzip"
	maxBody        = 8 << 20
)

// Reader fetches transcripts from the InnerTube API.
type Reader struct {
	// BaseURL overrides DefaultBaseURL.
	BaseURL string
	// HTTPClient overrides reader.DefaultHTTPClient.
	HTTPClient *http.Client

	now func() time.Time
}

// New creates a Reader pointed at DefaultBaseURL.
func New() *Reader {
	return &Reader{}
}

type playerRequest struct {
	VideoID        string        `json:"videoId"`
	Context        playerContext `json:"context"`
	RacyCheckOk    bool          `json:"racyCheckOk"`
	ContentCheckOk bool          `json:"contentCheckOk"`
}

type playerContext struct {
	Client playerClient `json:"client"`
}

type playerClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion"`
	Hl                string `json:"hl"`
	Gl                string `json:"gl"`
}

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	VideoDetails struct {
		Title  string `json:"title"`
		Author string `json:"author"`
	} `json:"videoDetails"`
	Captions *struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL        string    `json:"baseUrl"`
	Name           trackName `json:"name"`
	LanguageCode   string    `json:"languageCode"`
	Kind           string    `json:"kind"`
	IsTranslatable bool      `json:"isTranslatable"`
}

// trackName is either {"simpleText": "..."} or {"runs": [{"text": "..."}]}
// depending on the client.
type trackName struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (n trackName) String() string {
	if n.SimpleText != "" {
		return n.SimpleText
	}
	var sb strings.Builder
	for _, r := range n.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Fetch requests the player response, picks a track for langs, and downloads
// it in json3 format.
func (r *Reader) Fetch(ctx context.Context, videoID string, langs []string) (*core.Transcript, error) {
	pr, err := r.player(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if pr.Captions == nil || len(pr.Captions.Renderer.CaptionTracks) == 0 {
		return nil, fmt.Errorf("%s: %w", videoID, reader.ErrTranscriptsDisabled)
	}

	raw := usableTracks(pr.Captions.Renderer.CaptionTracks)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w", videoID, reader.ErrPoToken)
	}

	tracks := mapTracks(raw)
	idx, err := reader.SelectTrack(tracks, langs)
	if err != nil {
		return nil, reader.WithVideoID(err, videoID)
	}

	body, err := r.get(ctx, reader.JSON3URL(raw[idx].BaseURL))
	if err != nil {
		return nil, fmt.Errorf("get captions %s/%s: %w", videoID, tracks[idx].LanguageCode, err)
	}
	entries, err := reader.ParseJSON3(body)
	if err != nil {
		return nil, fmt.Errorf("parse captions %s: %w", videoID, err)
	}

	return &core.Transcript{
		VideoID:      videoID,
		Title:        pr.VideoDetails.Title,
		Author:       pr.VideoDetails.Author,
		Language:     tracks[idx].Language,
		LanguageCode: tracks[idx].LanguageCode,
		IsGenerated:  tracks[idx].IsGenerated,
		Provider:     Provider,
		FetchedAt:    r.clock(),
		Entries:      entries,
	}, nil
}

// Tracks lists every caption track in the player response, including ones
// Fetch cannot download without a po token.
func (r *Reader) Tracks(ctx context.Context, videoID string) ([]core.Track, error) {
	pr, err := r.player(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if pr.Captions == nil {
		return nil, nil
	}
	return mapTracks(pr.Captions.Renderer.CaptionTracks), nil
}

func (r *Reader) player(ctx context.Context, videoID string) (*playerResponse, error) {
	payload, err := json.Marshal(playerRequest{
		VideoID: videoID,
		Context: playerContext{Client: playerClient{
			ClientName:        "ANDROID",
			ClientVersion:     androidVersion,
			AndroidSdkVersion: 30,
			Hl:                "en",
			Gl:                "US",
		}},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL()+playerPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidVersion)

	body, err := r.do(req)
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", videoID, err)
	}

	var pr playerResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("decode player %s: %w", videoID, err)
	}
	if err := reader.Playability(pr.PlayabilityStatus.Status, pr.PlayabilityStatus.Reason); err != nil {
		return nil, fmt.Errorf("%s: %w", videoID, err)
	}
	return &pr, nil
}

func (r *Reader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return r.do(req)
}

// do sends req with the Android user agent and returns the decoded body.
// Accept-Encoding is set explicitly, so decompression is ours to do.
func (r *Reader) do(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", androidUA)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, br")

	resp, err := r.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := decodeBody(resp)
	if err != nil {
		return nil, err
	}

	if err := reader.CheckStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}
	return body, nil
}

func decodeBody(resp *http.Response) ([]byte, error) {
	var rd io.Reader = resp.Body
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip body: %w", err)
		}
		defer func() { _ = gz.Close() }()
		rd = gz
	case "br":
		rd = brotli.NewReader(resp.Body)
	}

	body, err := io.ReadAll(io.LimitReader(rd, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// usableTracks drops tracks that need a po token.
func usableTracks(tracks []captionTrack) []captionTrack {
	out := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if reader.NeedsPoToken(t.BaseURL) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func mapTracks(raw []captionTrack) []core.Track {
	tracks := make([]core.Track, 0, len(raw))
	for _, ct := range raw {
		tracks = append(tracks, core.Track{
			Language:       ct.Name.String(),
			LanguageCode:   ct.LanguageCode,
			IsGenerated:    ct.Kind == "asr",
			IsTranslatable: ct.IsTranslatable,
		})
	}
	return tracks
}

func (r *Reader) baseURL() string {
	if r.BaseURL != "" {
		return strings.TrimRight(r.BaseURL, "/")
	}
	return DefaultBaseURL
}

func (r *Reader) client() *http.Client {
	return reader.HTTPClient(r.HTTPClient)
}

func (r *Reader) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now().UTC()
}
