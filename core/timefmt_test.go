package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds float64
		sep     string
		want    string
	}{
		{0, ",", "00:00:00,000"},
		{1.1, ",", "00:00:01,100"},
		{61.5, ".", "00:01:01.500"},
		{3723.042, ".", "01:02:03.042"},
		{-4, ",", "00:00:00,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.seconds, tt.sep), "FormatClock(%v, %q)", tt.seconds, tt.sep)
	}
}

func TestFormatShort(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{9.9, "0:09"},
		{75, "1:15"},
		{3600, "1:00:00"},
		{3725.4, "1:02:05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatShort(tt.seconds), "FormatShort(%v)", tt.seconds)
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"just now", 30 * time.Second, "just now"},
		{"future", -time.Hour, "just now"},
		{"minutes", 5 * time.Minute, "5m ago"},
		{"hours", 3 * time.Hour, "3h ago"},
		{"days", 2 * 24 * time.Hour, "2d ago"},
		{"weeks", 14 * 24 * time.Hour, "2w ago"},
		{"months", 60 * 24 * time.Hour, "2mo ago"},
		{"years", 400 * 24 * time.Hour, "1y ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(now.Add(-tt.ago), now))
		})
	}
}
