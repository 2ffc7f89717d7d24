package core

import "time"

// ManifestEntry holds lightweight metadata for a saved transcript, used by the
// manifest file and the index page. It mirrors the fields of Transcript that
// the index needs, without carrying the entries themselves.
type ManifestEntry struct {
	VideoID      string            `json:"video_id"`
	Title        string            `json:"title,omitempty"`
	Author       string            `json:"author,omitempty"`
	Language     string            `json:"language,omitempty"`
	LanguageCode string            `json:"language_code,omitempty"`
	IsGenerated  bool              `json:"is_generated,omitempty"`
	Provider     string            `json:"provider,omitempty"`
	EntryCount   int               `json:"entry_count"`
	Duration     float64           `json:"duration"`
	Files        map[string]string `json:"files"` // format tag -> path relative to the data root
	FetchedAt    time.Time         `json:"fetched_at"`
}

// NewManifestEntry extracts metadata from a Transcript and pairs it with the
// files written for it, keyed by format tag.
func NewManifestEntry(t *Transcript, files map[string]string) ManifestEntry {
	return ManifestEntry{
		VideoID:      t.VideoID,
		Title:        t.Title,
		Author:       t.Author,
		Language:     t.Language,
		LanguageCode: t.LanguageCode,
		IsGenerated:  t.IsGenerated,
		Provider:     t.Provider,
		EntryCount:   len(t.Entries),
		Duration:     t.Duration(),
		Files:        files,
		FetchedAt:    t.FetchedAt,
	}
}
