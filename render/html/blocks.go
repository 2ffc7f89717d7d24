package html

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/sonnes/ytscribe/core"
)

// paragraph is a run of consecutive entries shown under one timestamp.
type paragraph struct {
	Start float64
	Texts []string
}

// groupParagraphs splits entries into paragraphs, starting a new one once
// the current paragraph spans at least span seconds.
func groupParagraphs(entries []core.Entry, span float64) []paragraph {
	var out []paragraph
	for _, e := range entries {
		if len(out) == 0 || e.Start-out[len(out)-1].Start >= span {
			out = append(out, paragraph{Start: e.Start})
		}
		p := &out[len(out)-1]
		p.Texts = append(p.Texts, e.Text)
	}
	return out
}

// renderParagraph renders a paragraph as markdown: a timestamp link into the
// video followed by the caption text with markdown syntax escaped.
func (r *Renderer) renderParagraph(videoID string, p paragraph) (template.HTML, error) {
	src := fmt.Sprintf("[%s](%s) %s",
		core.FormatShort(p.Start),
		watchURL(videoID, p.Start),
		escapeMarkdown(strings.Join(p.Texts, " ")),
	)
	h, err := r.convert(src)
	if err != nil {
		return "", err
	}
	return template.HTML(`<div class="prose dark:prose-invert max-w-none">` + h + `</div>`), nil
}

// renderRawJSON renders the entries as a highlighted JSON code block.
func (r *Renderer) renderRawJSON(t *core.Transcript) (template.HTML, error) {
	entries := t.Entries
	if entries == nil {
		entries = []core.Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return "", err
	}
	data := bytes.TrimSpace(buf.Bytes())
	fenced := "```json\n" + string(data) + "\n```"
	h, err := r.convert(fenced)
	if err != nil {
		return template.HTML(`<pre class="px-4 py-3 text-xs font-mono overflow-x-auto">` + template.HTMLEscapeString(string(data)) + `</pre>`), nil
	}
	return template.HTML(`<div class="px-4 py-3 text-xs overflow-x-auto">` + h + `</div>`), nil
}

var mdEscaper = func() *strings.Replacer {
	const special = "\\`*_{}[]()<>#+-.!|~&"
	pairs := make([]string, 0, 2*len(special))
	for _, c := range special {
		pairs = append(pairs, string(c), "\\"+string(c))
	}
	return strings.NewReplacer(pairs...)
}()

// escapeMarkdown backslash-escapes characters that markdown would interpret,
// so captions always render as literal text.
func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}

func watchURL(videoID string, at float64) string {
	u := "https://www.youtube.com/watch?v=" + videoID
	if at >= 1 {
		u += fmt.Sprintf("&t=%ds", int(at))
	}
	return u
}
