// Package html renders transcripts as standalone HTML pages styled with
// Tailwind CSS v4 (CDN) and syntax highlighting via goldmark + chroma.
package html

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"

	"github.com/sonnes/ytscribe/core"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// Ext is the format tag and file extension for HTML output.
const Ext = "html"

//go:embed templates/*.html
var content embed.FS

// Renderer renders a transcript to a standalone HTML page.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template

	// ParagraphSeconds is the span of captions grouped under one timestamp.
	// Zero uses DefaultParagraphSeconds.
	ParagraphSeconds float64
}

// DefaultParagraphSeconds groups roughly half a minute of captions per paragraph.
const DefaultParagraphSeconds = 30

// New creates an HTML Renderer with goldmark configured for GFM and syntax highlighting.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("dracula"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles for standalone pages
				),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(), // allow raw HTML in markdown
		),
	)

	tmpl := template.Must(
		template.New("page.html").
			Funcs(funcMap()).
			ParseFS(content, "templates/*.html"),
	)

	return &Renderer{md: md, tmpl: tmpl}
}

// pageData is the top-level template data passed to page.html.
type pageData struct {
	Transcript *core.Transcript
	WatchURL   string
	Duration   string
	Paragraphs []template.HTML
	RawJSON    template.HTML
}

// indexData is the template data passed to index.html.
type indexData struct {
	Entries []core.ManifestEntry
}

// RenderIndex writes an HTML index page listing the given manifest entries
// to w, newest first by FetchedAt.
func (r *Renderer) RenderIndex(w io.Writer, entries []core.ManifestEntry) error {
	sorted := make([]core.ManifestEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FetchedAt.After(sorted[j].FetchedAt)
	})
	return r.tmpl.ExecuteTemplate(w, "index.html", indexData{Entries: sorted})
}

// Render writes the transcript as a complete HTML page to w.
func (r *Renderer) Render(w io.Writer, t *core.Transcript) error {
	span := r.ParagraphSeconds
	if span <= 0 {
		span = DefaultParagraphSeconds
	}

	var paragraphs []template.HTML
	for _, p := range groupParagraphs(t.Entries, span) {
		h, err := r.renderParagraph(t.VideoID, p)
		if err != nil {
			return fmt.Errorf("render paragraph at %s: %w", core.FormatShort(p.Start), err)
		}
		paragraphs = append(paragraphs, h)
	}

	raw, err := r.renderRawJSON(t)
	if err != nil {
		return fmt.Errorf("render raw json: %w", err)
	}

	data := pageData{
		Transcript: t,
		WatchURL:   watchURL(t.VideoID, 0),
		Duration:   formatDuration(t.Duration()),
		Paragraphs: paragraphs,
		RawJSON:    raw,
	}
	return r.tmpl.ExecuteTemplate(w, "page.html", data)
}

func (r *Renderer) convert(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("goldmark convert: %w", err)
	}
	return buf.String(), nil
}
