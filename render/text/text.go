// Package text renders transcripts as plain text, one entry per line.
package text

import (
	"bufio"
	"io"

	"github.com/sonnes/ytscribe/core"
)

// Ext is the format tag and file extension for plain-text output.
const Ext = "txt"

// Renderer renders a transcript as plain text.
type Renderer struct {
	// Timestamps prefixes each line with its start time, e.g. "[1:05] ".
	Timestamps bool
}

// New creates a Renderer that writes bare entry text.
func New() *Renderer {
	return &Renderer{}
}

// Render writes entry texts separated by newlines. There is no trailing
// newline, so an empty transcript renders as an empty file.
func (r *Renderer) Render(w io.Writer, t *core.Transcript) error {
	bw := bufio.NewWriter(w)
	for i, e := range t.Entries {
		if i > 0 {
			bw.WriteByte('\n')
		}
		if r.Timestamps {
			bw.WriteString("[" + core.FormatShort(e.Start) + "] ")
		}
		bw.WriteString(e.Text)
	}
	return bw.Flush()
}
