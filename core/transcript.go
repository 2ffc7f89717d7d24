// Package core defines the normalized transcript model that every reader
// produces and every renderer consumes.
package core

import (
	"strings"
	"time"
)

// Transcript is the caption track of a single video, in fetch order.
type Transcript struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title,omitempty"`
	Author       string    `json:"author,omitempty"`
	Language     string    `json:"language,omitempty"`      // human-readable track name, e.g. "English (auto-generated)"
	LanguageCode string    `json:"language_code,omitempty"` // BCP-47-ish code, e.g. "en-US"
	IsGenerated  bool      `json:"is_generated,omitempty"`  // true for ASR tracks
	Provider     string    `json:"provider,omitempty"`      // reader that produced the transcript
	FetchedAt    time.Time `json:"fetched_at"`
	Entries      []Entry   `json:"entries"`
}

// Entry is one caption line. Start and Duration are in seconds.
type Entry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End returns the time at which the entry stops being displayed.
func (e Entry) End() float64 {
	return e.Start + e.Duration
}

// Track describes a caption track available for a video.
type Track struct {
	Language       string `json:"language"`
	LanguageCode   string `json:"language_code"`
	IsGenerated    bool   `json:"is_generated"`
	IsTranslatable bool   `json:"is_translatable"`
}

// Duration returns the end time of the last entry, or 0 for an empty transcript.
func (t *Transcript) Duration() float64 {
	if len(t.Entries) == 0 {
		return 0
	}
	return t.Entries[len(t.Entries)-1].End()
}

// Text joins the text of every entry with sep.
func (t *Transcript) Text(sep string) string {
	parts := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		parts[i] = e.Text
	}
	return strings.Join(parts, sep)
}

// CueEnd returns the end of entry i for subtitle cues. Auto-generated tracks
// overlap consecutive entries, so the end is clipped to the next entry's start
// to keep one cue on screen at a time.
func (t *Transcript) CueEnd(i int) float64 {
	end := t.Entries[i].End()
	if i+1 < len(t.Entries) {
		next := t.Entries[i+1].Start
		if next < end && next > t.Entries[i].Start {
			return next
		}
	}
	return end
}
