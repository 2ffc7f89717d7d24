package innertube

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonnes/ytscribe/reader"
)

const captionsJSON3 = `{
  "wireMagic": "pb3",
  "events": [
    {"tStartMs": 0, "dDurationMs": 5000, "id": 1, "wpWinPosId": 1},
    {"tStartMs": 1200, "dDurationMs": 2300, "segs": [{"utf8": "hello "}, {"utf8": "world"}]},
    {"tStartMs": 3500, "dDurationMs": 0, "aAppend": 1, "segs": [{"utf8": "\n"}]},
    {"tStartMs": 3500, "dDurationMs": 1500, "segs": [{"utf8": "second line"}]}
  ]
}`

type fakeYouTube struct {
	srv *httptest.Server

	playerStatus   int
	playerCalls    int
	delay          time.Duration
	playability    string
	reason         string
	tracks         []map[string]any
	encoding       string
	gotPlayerBody  playerRequest
	gotClientName  string
	captionQueries []string
}

func newFakeYouTube(t *testing.T) *fakeYouTube {
	t.Helper()
	f := &fakeYouTube{playerStatus: http.StatusOK, playability: "OK"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		f.playerCalls++
		if f.delay > 0 {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(f.delay):
			}
		}
		f.gotClientName = r.Header.Get("X-Youtube-Client-Name")
		_ = json.NewDecoder(r.Body).Decode(&f.gotPlayerBody)
		if f.playerStatus != http.StatusOK {
			http.Error(w, "nope", f.playerStatus)
			return
		}
		resp := map[string]any{
			"playabilityStatus": map[string]any{"status": f.playability, "reason": f.reason},
			"videoDetails":      map[string]any{"title": "A Talk", "author": "Someone"},
		}
		if f.tracks != nil {
			resp["captions"] = map[string]any{
				"playerCaptionsTracklistRenderer": map[string]any{"captionTracks": f.tracks},
			}
		}
		body, _ := json.Marshal(resp)
		f.write(w, body)
	})
	mux.HandleFunc("GET /api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		f.captionQueries = append(f.captionQueries, r.URL.RawQuery)
		f.write(w, []byte(captionsJSON3))
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeYouTube) write(w http.ResponseWriter, body []byte) {
	var out io.WriteCloser
	switch f.encoding {
	case "gzip":
		w.Header().Set("Content-Encoding", "gzip")
		out = gzip.NewWriter(w)
	case "br":
		w.Header().Set("Content-Encoding", "br")
		out = brotli.NewWriter(w)
	default:
		_, _ = w.Write(body)
		return
	}
	_, _ = out.Write(body)
	_ = out.Close()
}

func (f *fakeYouTube) track(lang, kind, extra string) map[string]any {
	return map[string]any{
		"baseUrl":        fmt.Sprintf("%s/api/timedtext?v=vid&lang=%s%s", f.srv.URL, lang, extra),
		"name":           map[string]any{"runs": []map[string]any{{"text": "Lang " + lang}}},
		"languageCode":   lang,
		"kind":           kind,
		"isTranslatable": true,
	}
}

func (f *fakeYouTube) reader() *Reader {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Reader{
		BaseURL:    f.srv.URL,
		HTTPClient: f.srv.Client(),
		now:        func() time.Time { return fixed },
	}
}

func TestFetch(t *testing.T) {
	for _, enc := range []string{"", "gzip", "br"} {
		t.Run("encoding="+enc, func(t *testing.T) {
			f := newFakeYouTube(t)
			f.encoding = enc
			f.tracks = []map[string]any{
				f.track("en", "asr", ""),
				f.track("en", "", ""),
			}

			tr, err := f.reader().Fetch(context.Background(), "vid", []string{"en"})
			require.NoError(t, err)

			assert.Equal(t, "3", f.gotClientName)
			assert.Equal(t, "ANDROID", f.gotPlayerBody.Context.Client.ClientName)
			assert.Equal(t, "vid", f.gotPlayerBody.VideoID)
			require.Len(t, f.captionQueries, 1)
			assert.Equal(t, "v=vid&lang=en&fmt=json3", f.captionQueries[0])

			assert.Equal(t, "vid", tr.VideoID)
			assert.Equal(t, "A Talk", tr.Title)
			assert.Equal(t, "Someone", tr.Author)
			assert.Equal(t, "Lang en", tr.Language)
			assert.False(t, tr.IsGenerated, "manual track preferred")
			assert.Equal(t, Provider, tr.Provider)
			assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), tr.FetchedAt)

			require.Len(t, tr.Entries, 2)
			assert.Equal(t, "hello world", tr.Entries[0].Text)
			assert.InDelta(t, 1.2, tr.Entries[0].Start, 1e-9)
			assert.InDelta(t, 2.3, tr.Entries[0].Duration, 1e-9)
			assert.Equal(t, "second line", tr.Entries[1].Text)
			assert.InDelta(t, 3.5, tr.Entries[1].Start, 1e-9)
		})
	}
}

func TestFetchPlayability(t *testing.T) {
	tests := []struct {
		status string
		reason string
		want   error
	}{
		{"ERROR", "Video unavailable", reader.ErrVideoUnavailable},
		{"ERROR", "Too many requests, try later", reader.ErrRateLimited},
		{"UNPLAYABLE", "Not available in your country", reader.ErrVideoUnavailable},
		{"LOGIN_REQUIRED", "Sign in to confirm your age", reader.ErrAgeRestricted},
		{"LOGIN_REQUIRED", "This video is private", reader.ErrVideoUnavailable},
		{"LOGIN_REQUIRED", "Sign in to confirm you're not a bot", reader.ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.status+"/"+tt.reason, func(t *testing.T) {
			f := newFakeYouTube(t)
			f.playability = tt.status
			f.reason = tt.reason

			_, err := f.reader().Fetch(context.Background(), "vid", []string{"en"})
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestFetchNoCaptions(t *testing.T) {
	f := newFakeYouTube(t)

	_, err := f.reader().Fetch(context.Background(), "vid", []string{"en"})
	assert.ErrorIs(t, err, reader.ErrTranscriptsDisabled)
	assert.True(t, reader.IsDefinitive(err))
}

func TestFetchNoMatchingLanguage(t *testing.T) {
	f := newFakeYouTube(t)
	f.tracks = []map[string]any{f.track("de", "", ""), f.track("fr", "asr", "")}

	_, err := f.reader().Fetch(context.Background(), "vid", []string{"en"})
	require.ErrorIs(t, err, reader.ErrNoTranscript)
	assert.Contains(t, err.Error(), "available: de, fr")
	assert.Empty(t, f.captionQueries)
}

func TestFetchSkipsPoTokenTracks(t *testing.T) {
	f := newFakeYouTube(t)
	f.tracks = []map[string]any{
		f.track("en", "", "&exp=xpe"),
		f.track("en", "asr", ""),
	}

	tr, err := f.reader().Fetch(context.Background(), "vid", []string{"en"})
	require.NoError(t, err)
	assert.True(t, tr.IsGenerated)
	require.Len(t, f.captionQueries, 1)
	assert.NotContains(t, f.captionQueries[0], "exp=xpe")
}

func TestFetchOnlyPoTokenTracks(t *testing.T) {
	f := newFakeYouTube(t)
	f.tracks = []map[string]any{f.track("en", "", "&exp=xpe")}

	r := reader.Retry(f.reader(), reader.RetryConfig{MaxElapsedTime: time.Second, InitialInterval: time.Millisecond})
	_, err := r.Fetch(context.Background(), "vid", []string{"en"})
	require.ErrorIs(t, err, reader.ErrPoToken)
	assert.False(t, reader.IsDefinitive(err))
	assert.Equal(t, 1, f.playerCalls, "not retried")
	assert.Empty(t, f.captionQueries)
}

func TestFetchHTTPStatus(t *testing.T) {
	f := newFakeYouTube(t)
	f.playerStatus = http.StatusTooManyRequests

	_, err := f.reader().Fetch(context.Background(), "vid", []string{"en"})
	assert.ErrorIs(t, err, reader.ErrRateLimited)

	f.playerStatus = http.StatusBadGateway
	_, err = f.reader().Fetch(context.Background(), "vid", []string{"en"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.False(t, reader.IsDefinitive(err))
	assert.False(t, reader.IsPermanent(err))
}

func TestFetchClientErrorIsNotRetried(t *testing.T) {
	f := newFakeYouTube(t)
	f.playerStatus = http.StatusForbidden

	r := reader.Retry(f.reader(), reader.RetryConfig{MaxElapsedTime: time.Second, InitialInterval: time.Millisecond})
	_, err := r.Fetch(context.Background(), "vid", []string{"en"})

	var he *reader.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.StatusCode)
	assert.Equal(t, 1, f.playerCalls)
	assert.False(t, reader.IsDefinitive(err))
}

func TestFetchAttemptTimeout(t *testing.T) {
	f := newFakeYouTube(t)
	f.delay = 5 * time.Second

	r := reader.Retry(f.reader(), reader.RetryConfig{AttemptTimeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := r.Fetch(context.Background(), "vid", []string{"en"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestDefaultClient(t *testing.T) {
	assert.Same(t, reader.DefaultHTTPClient, New().client())
	assert.NotZero(t, New().client().Timeout)
}

func TestTracks(t *testing.T) {
	f := newFakeYouTube(t)
	f.tracks = []map[string]any{
		f.track("en", "asr", "&exp=xpe"),
		f.track("de", "", ""),
	}

	tracks, err := f.reader().Tracks(context.Background(), "vid")
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "en", tracks[0].LanguageCode)
	assert.True(t, tracks[0].IsGenerated)
	assert.Equal(t, "Lang de", tracks[1].Language)
	assert.True(t, tracks[1].IsTranslatable)
}

func TestTrackName(t *testing.T) {
	var n trackName
	require.NoError(t, json.Unmarshal([]byte(`{"simpleText":"English"}`), &n))
	assert.Equal(t, "English", n.String())

	n = trackName{}
	require.NoError(t, json.Unmarshal([]byte(`{"runs":[{"text":"English "},{"text":"(auto)"}]}`), &n))
	assert.Equal(t, "English (auto)", n.String())
}
