package html

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonnes/ytscribe/core"
)

func buildTestTranscript() *core.Transcript {
	return &core.Transcript{
		VideoID:      "bhSlYfVtgww",
		Title:        "Fixing the <auth> bug",
		Author:       "Some Channel",
		Language:     "English (auto-generated)",
		LanguageCode: "en",
		IsGenerated:  true,
		Provider:     "youtube",
		FetchedAt:    time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC),
		Entries: []core.Entry{
			{Text: "hello and welcome", Start: 0, Duration: 2},
			{Text: "today we *fix* things", Start: 2, Duration: 3},
			{Text: "half a minute in", Start: 31.5, Duration: 2},
			{Text: "<script>alert(1)</script>", Start: 34, Duration: 2},
		},
	}
}

func TestRenderFullPage(t *testing.T) {
	tr := buildTestTranscript()
	var buf bytes.Buffer
	require.NoError(t, New().Render(&buf, tr))

	html := buf.String()

	t.Run("page structure", func(t *testing.T) {
		assert.Contains(t, html, "<!DOCTYPE html>")
		assert.Contains(t, html, "<html lang=\"en\">")
		assert.Contains(t, html, "</html>")
	})

	t.Run("tailwind CDN", func(t *testing.T) {
		assert.Contains(t, html, "@tailwindcss/browser@4")
	})

	t.Run("title is escaped", func(t *testing.T) {
		assert.Contains(t, html, "<title>Fixing the &lt;auth&gt; bug")
	})

	t.Run("header metadata", func(t *testing.T) {
		assert.Contains(t, html, "Some Channel")
		assert.Contains(t, html, "English (auto-generated)")
		assert.Contains(t, html, ">auto</span>")
		assert.Contains(t, html, "Mar 15, 2026 2:30 PM")
		assert.Contains(t, html, "36s")
	})

	t.Run("paragraphs with timestamp links", func(t *testing.T) {
		assert.Equal(t, 2, strings.Count(html, `class="prose`))
		assert.Contains(t, html, `<a href="https://www.youtube.com/watch?v=bhSlYfVtgww">0:00</a>`)
		assert.Contains(t, html, `<a href="https://www.youtube.com/watch?v=bhSlYfVtgww&amp;t=31s">0:31</a>`)
		assert.Contains(t, html, "hello and welcome today we *fix* things")
	})

	t.Run("caption markup is not executed", func(t *testing.T) {
		assert.NotContains(t, html, "<script>alert(1)</script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})

	t.Run("raw json block is highlighted", func(t *testing.T) {
		assert.Contains(t, html, "<summary")
		assert.Contains(t, html, "Raw JSON")
		assert.Contains(t, html, `style="`)
		assert.Contains(t, html, "half a minute in")
	})
}

func TestRenderMinimalTranscript(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Render(&buf, &core.Transcript{VideoID: "abcdefghijk"}))

	html := buf.String()
	assert.Contains(t, html, "<title>abcdefghijk")
	assert.Contains(t, html, "No captions.")
	assert.NotContains(t, html, "Fetched:")
}

func TestRenderParagraphSeconds(t *testing.T) {
	r := New()
	r.ParagraphSeconds = 1

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, buildTestTranscript()))
	assert.Equal(t, 4, strings.Count(buf.String(), `class="prose`))
}

func TestRenderIndex(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)
	entries := []core.ManifestEntry{
		{VideoID: "old", Title: "Old Video", FetchedAt: older, Duration: 3725, Files: map[string]string{"json": "json/old.json"}},
		{VideoID: "new", Title: "New Video", FetchedAt: newer, Duration: 65, Files: map[string]string{"html": "html/new.html", "json": "json/new.json"}},
		{VideoID: "bare", FetchedAt: older},
	}

	var buf bytes.Buffer
	require.NoError(t, New().RenderIndex(&buf, entries))
	html := buf.String()

	assert.Contains(t, html, "(3)")
	assert.Less(t, strings.Index(html, "New Video"), strings.Index(html, "Old Video"), "newest first")
	assert.Contains(t, html, `href="html/new.html"`)
	assert.Contains(t, html, `href="json/old.json"`)
	assert.Contains(t, html, ">bare<")
	assert.Contains(t, html, "1h 2m")
	assert.Contains(t, html, "1m 5s")
	assert.Equal(t, "old", entries[0].VideoID, "input order kept")
}

func TestRenderIndexEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().RenderIndex(&buf, nil))
	assert.Contains(t, buf.String(), "No transcripts yet.")
}

func TestFormatTimeFuncMap(t *testing.T) {
	assert.Equal(t, "Mar 15, 2026 2:30 PM", formatTime(time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "", formatTime(time.Time{}))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input  int
		expect string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-500, "-500"},
		{-1500, "-1,500"},
	}
	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, formatNumber(tt.input))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0s", formatDuration(0))
	assert.Equal(t, "42s", formatDuration(41.6))
	assert.Equal(t, "3m 5s", formatDuration(185))
	assert.Equal(t, "2h 0m", formatDuration(7200))
}
