// Package render defines the interface for rendering transcripts into output
// formats.
package render

import (
	"io"

	"github.com/sonnes/ytscribe/core"
)

// Renderer writes a transcript to the given writer in a specific format.
// Implementations must not modify t.
type Renderer interface {
	Render(w io.Writer, t *core.Transcript) error
}
