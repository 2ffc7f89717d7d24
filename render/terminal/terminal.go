// Package terminal renders transcripts as ANSI-colored, timestamped lines.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"

	"github.com/sonnes/ytscribe/core"
)

const defaultWidth = 100

// Renderer pretty-prints a transcript to the terminal.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int

	now func() time.Time
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the header and the timestamped caption lines to w.
func (r *Renderer) Render(w io.Writer, t *core.Transcript) error {
	width := r.termWidth()

	r.writeHeader(w, t)
	writeSeparator(w, width)

	if len(t.Entries) == 0 {
		fmt.Fprintln(w, styleMeta.Render("  no captions"))
		return nil
	}

	stampWidth := len(core.FormatShort(t.Entries[len(t.Entries)-1].Start))
	textWidth := max(width-stampWidth-5, 20)
	indent := strings.Repeat(" ", stampWidth+5)

	for _, e := range t.Entries {
		stamp := fmt.Sprintf("%*s", stampWidth, core.FormatShort(e.Start))
		lines := strings.Split(ansi.Wordwrap(e.Text, textWidth, ""), "\n")
		fmt.Fprintln(w, "  "+styleTimestamp.Render(stamp)+"   "+lines[0])
		for _, l := range lines[1:] {
			fmt.Fprintln(w, indent+l)
		}
	}
	fmt.Fprintln(w)
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

func (r *Renderer) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

// writeHeader renders the video metadata block.
func (r *Renderer) writeHeader(w io.Writer, t *core.Transcript) {
	title := t.Title
	if title == "" {
		title = "Video " + t.VideoID
	}
	fmt.Fprintln(w, styleTitle.Render(title))

	// @author  video id  language  relative time  provider
	var parts []string
	if t.Author != "" {
		parts = append(parts, "@"+t.Author)
	}
	if t.Title != "" {
		parts = append(parts, t.VideoID)
	}
	if t.LanguageCode != "" {
		lang := t.LanguageCode
		if t.IsGenerated {
			lang += " " + styleAuto.Render("(auto)")
		}
		parts = append(parts, lang)
	}
	if !t.FetchedAt.IsZero() {
		parts = append(parts, "fetched "+core.RelativeTime(t.FetchedAt, r.clock()))
	}
	if t.Provider != "" {
		parts = append(parts, "via "+t.Provider)
	}
	if len(parts) > 0 {
		fmt.Fprintln(w, styleMeta.Render(strings.Join(parts, "  ")))
	}

	fmt.Fprintln(w)
	writeStats(w, t)
}

// writeStats renders counters in two rows: values then labels.
func writeStats(w io.Writer, t *core.Transcript) {
	type stat struct {
		value string
		label string
	}
	stats := []stat{
		{formatNumber(len(t.Entries)), "LINES"},
		{formatNumber(len(strings.Fields(t.Text(" ")))), "WORDS"},
		{core.FormatShort(t.Duration()), "LENGTH"},
	}

	var values, labels []string
	for _, s := range stats {
		colWidth := max(lipgloss.Width(s.value), len(s.label))
		values = append(values, fmt.Sprintf("%*s", colWidth, s.value))
		labels = append(labels, fmt.Sprintf("%-*s", colWidth, s.label))
	}

	fmt.Fprintln(w, "  "+styleStat.Render(strings.Join(values, "    ")))
	fmt.Fprintln(w, "  "+styleStatLabel.Render(strings.Join(labels, "    ")))
}

// writeSeparator renders a horizontal rule.
func writeSeparator(w io.Writer, width int) {
	n := min(width, 72)
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleSeparator.Render(strings.Repeat("─", n)))
	fmt.Fprintln(w)
}

func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}
