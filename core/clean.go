package core

import (
	"html"
	"regexp"
	"strings"
)

// MarkupRE matches caption markup tags such as <i>, </b> or <font color="#E5E5E5">.
var MarkupRE = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(?:\s[^<>]*)?>`)

// CueRE matches bracketed sound cues like [Music] or [Applause].
var CueRE = regexp.MustCompile(`\[[^\[\]]*\]`)

// spaceRE matches any run of whitespace, including the newlines YouTube
// inserts to wrap long captions.
var spaceRE = regexp.MustCompile(`\s+`)

// inlineSpaceRE matches whitespace runs that contain no newline.
var inlineSpaceRE = regexp.MustCompile(`[^\S\n]+`)

// CleanCaptionText strips markup tags, decodes HTML entities and collapses
// whitespace into single spaces.
//
// Entities are decoded after tags are stripped so that escaped angle brackets
// in the caption ("&lt;3") survive as literal text.
func CleanCaptionText(s string) string {
	s = MarkupRE.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return CollapseSpace(s)
}

// CollapseSpace replaces every whitespace run with a single space and trims the ends.
func CollapseSpace(s string) string {
	return strings.TrimSpace(spaceRE.ReplaceAllString(s, " "))
}

// CollapseLines is CollapseSpace per line: line breaks survive, blank lines
// are dropped.
func CollapseLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(inlineSpaceRE.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// StripCues removes bracketed sound cues from s.
func StripCues(s string) string {
	return CollapseSpace(CueRE.ReplaceAllString(s, ""))
}
