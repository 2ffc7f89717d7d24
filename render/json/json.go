// Package json renders transcripts as JSON.
package json

import (
	"encoding/json"
	"io"

	"github.com/sonnes/ytscribe/core"
)

// Ext is the format tag and file extension for JSON output.
const Ext = "json"

// Renderer renders a transcript to JSON.
//
// By default the output is the bare array of entries, each an object with
// text, start and duration keys.
type Renderer struct {
	// Indent controls pretty-printing. When true, output is indented two spaces.
	Indent bool
	// Metadata wraps the entries in an object carrying the video metadata.
	Metadata bool
}

// New creates an indented entries-only Renderer.
func New() *Renderer {
	return &Renderer{Indent: true}
}

// Render implements render.Renderer.
func (r *Renderer) Render(w io.Writer, t *core.Transcript) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if r.Indent {
		enc.SetIndent("", "  ")
	}

	entries := t.Entries
	if entries == nil {
		entries = []core.Entry{}
	}

	if !r.Metadata {
		return enc.Encode(entries)
	}
	doc := *t
	doc.Entries = entries
	return enc.Encode(&doc)
}
