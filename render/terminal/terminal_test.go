package terminal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonnes/ytscribe/core"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRenderHeader(t *testing.T) {
	fetched := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tr := &core.Transcript{
		VideoID:      "bhSlYfVtgww",
		Title:        "A Talk",
		Author:       "Some Channel",
		LanguageCode: "en",
		IsGenerated:  true,
		Provider:     "youtube",
		FetchedAt:    fetched,
		Entries: []core.Entry{
			{Text: "one two three", Start: 0, Duration: 2},
			{Text: "four", Start: 63, Duration: 2},
		},
	}

	r := &Renderer{Width: 100, now: fixedClock(fetched.Add(3 * time.Hour))}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tr))

	out := ansi.Strip(buf.String())

	assert.Contains(t, out, "A Talk")
	assert.Contains(t, out, "@Some Channel")
	assert.Contains(t, out, "bhSlYfVtgww")
	assert.Contains(t, out, "en (auto)")
	assert.Contains(t, out, "fetched 3h ago")
	assert.Contains(t, out, "via youtube")
	assert.Contains(t, out, "LINES")
	assert.Contains(t, out, "WORDS")
	assert.Contains(t, out, "LENGTH")
	assert.Contains(t, out, "1:05")
}

func TestRenderUntitled(t *testing.T) {
	r := &Renderer{Width: 80}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, &core.Transcript{VideoID: "abcdefghijk"}))

	out := ansi.Strip(buf.String())
	assert.Contains(t, out, "Video abcdefghijk")
	assert.Contains(t, out, "no captions")
	assert.NotContains(t, out, "fetched")
}

func TestRenderLines(t *testing.T) {
	tr := &core.Transcript{
		VideoID: "vid",
		Entries: []core.Entry{
			{Text: "hello there", Start: 5},
			{Text: "general kenobi", Start: 65},
			{Text: "much later", Start: 605},
		},
	}

	r := &Renderer{Width: 80}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tr))

	out := ansi.Strip(buf.String())
	assert.Contains(t, out, "   0:05   hello there\n")
	assert.Contains(t, out, "   1:05   general kenobi\n")
	assert.Contains(t, out, "  10:05   much later\n")
	assert.Less(t, strings.Index(out, "hello there"), strings.Index(out, "much later"))
}

func TestRenderWrapsLongLines(t *testing.T) {
	long := strings.Repeat("word ", 20)
	tr := &core.Transcript{VideoID: "vid", Entries: []core.Entry{{Text: strings.TrimSpace(long), Start: 1}}}

	r := &Renderer{Width: 40}
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, tr))

	out := ansi.Strip(buf.String())
	var captionLines []string
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "word") {
			captionLines = append(captionLines, l)
		}
	}
	require.Greater(t, len(captionLines), 1)
	assert.True(t, strings.HasPrefix(captionLines[0], "  0:01   word"))
	for _, l := range captionLines[1:] {
		assert.True(t, strings.HasPrefix(l, "         word"), "continuation aligned: %q", l)
		assert.LessOrEqual(t, len(l), 40)
	}
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
		{-1500, "-1,500"},
	}
	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, formatNumber(tt.input))
		})
	}
}
