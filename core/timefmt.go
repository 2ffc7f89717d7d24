package core

import (
	"fmt"
	"math"
	"time"
)

// FormatClock renders seconds as HH:MM:SS<sep>mmm. SubRip uses "," as the
// millisecond separator and WebVTT uses ".".
func FormatClock(seconds float64, sep string) string {
	ms := toMillis(seconds)
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", h, m, s, sep, ms%1000)
}

// FormatShort renders seconds as M:SS, or H:MM:SS once past the hour.
func FormatShort(seconds float64) string {
	total := toMillis(seconds) / 1000
	h := total / 3600
	m := total / 60 % 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// toMillis rounds to the nearest millisecond so that 1.1s renders as 100ms
// instead of 099ms. Negative inputs clamp to zero.
func toMillis(seconds float64) int64 {
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0
	}
	return int64(math.Round(seconds * 1000))
}

// RelativeTime formats t relative to now, e.g. "5m ago" or "2w ago".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dw ago", int(d.Hours()/(24*7)))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(d.Hours()/(24*365)))
	}
}
