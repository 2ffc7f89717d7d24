// Package webvtt renders transcripts as WebVTT subtitles.
package webvtt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sonnes/ytscribe/core"
)

// Ext is the format tag and file extension for WebVTT output.
const Ext = "vtt"

// Renderer renders a transcript as a WebVTT file.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render implements render.Renderer.
func (r *Renderer) Render(w io.Writer, t *core.Transcript) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("WEBVTT\n")
	if t.LanguageCode != "" {
		bw.WriteString("Language: " + t.LanguageCode + "\n")
	}
	bw.WriteString("\n")

	for i, e := range t.Entries {
		fmt.Fprintf(bw, "%s --> %s\n%s\n\n",
			core.FormatClock(e.Start, "."),
			core.FormatClock(t.CueEnd(i), "."),
			escape(e.Text),
		)
	}
	return bw.Flush()
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escape keeps ampersands and angle brackets in caption text from being read
// as cue markup, which also neutralizes a literal "-->".
func escape(s string) string {
	return escaper.Replace(s)
}
