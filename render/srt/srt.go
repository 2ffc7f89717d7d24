// Package srt renders transcripts as SubRip subtitles.
package srt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sonnes/ytscribe/core"
)

// Ext is the format tag and file extension for SubRip output.
const Ext = "srt"

// Renderer renders a transcript as numbered SubRip cues.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render implements render.Renderer.
func (r *Renderer) Render(w io.Writer, t *core.Transcript) error {
	bw := bufio.NewWriter(w)
	for i, e := range t.Entries {
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n",
			i+1,
			core.FormatClock(e.Start, ","),
			core.FormatClock(t.CueEnd(i), ","),
			e.Text,
		)
	}
	return bw.Flush()
}
