// Package clean provides a Transformer that normalizes caption text before
// rendering.
package clean

import (
	"html"
	"regexp"
	"strings"

	"github.com/sonnes/ytscribe/core"
)

// Config controls the clean transformer behavior.
type Config struct {
	// KeepFormatting keeps basic inline formatting tags such as <i> and <b>.
	KeepFormatting bool
	// DropCues removes bracketed sound cues like [Music].
	DropCues bool
}

// formattingRE matches the inline tags that survive when KeepFormatting is set.
var formattingRE = regexp.MustCompile(`(?i)^</?(strong|em|b|i|mark|small|del|ins|sub|sup)>$`)

// Cleaner strips markup from entries and drops the ones left empty.
type Cleaner struct {
	keepFormatting bool
	dropCues       bool
}

// New creates a Cleaner from the given config.
func New(cfg Config) *Cleaner {
	return &Cleaner{keepFormatting: cfg.KeepFormatting, dropCues: cfg.DropCues}
}

// Transform implements core.Transformer.
func (c *Cleaner) Transform(t *core.Transcript) error {
	out := t.Entries[:0]
	for _, e := range t.Entries {
		e.Text = c.text(e.Text)
		if e.Text == "" {
			continue
		}
		out = append(out, e)
	}
	t.Entries = out
	return nil
}

// text cleans one caption. With KeepFormatting the caption's own line
// breaks are kept alongside the inline tags.
func (c *Cleaner) text(s string) string {
	if c.keepFormatting {
		s = html.UnescapeString(stripUnformatted(s))
		if c.dropCues {
			s = core.CueRE.ReplaceAllString(s, "")
		}
		return core.CollapseLines(s)
	}

	s = core.CleanCaptionText(s)
	if c.dropCues {
		s = core.StripCues(s)
	}
	return s
}

func stripUnformatted(s string) string {
	return core.MarkupRE.ReplaceAllStringFunc(s, func(tag string) string {
		if formattingRE.MatchString(tag) {
			return strings.ToLower(tag)
		}
		return ""
	})
}
