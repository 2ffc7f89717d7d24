package html

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"time"

	"github.com/sonnes/ytscribe/core"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatTime":     formatTime,
		"formatNumber":   formatNumber,
		"formatDuration": formatDuration,
		"formatShort":    core.FormatShort,
		"fileFor":        fileFor,
	}
}

// formatTime renders t as "Jan 2, 2006 3:04 PM", or nothing when t is zero.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 3:04 PM")
}

// formatNumber inserts thousands separators.
func formatNumber(n int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}

// formatDuration renders seconds as "1h 2m", "3m 5s" or "42s".
func formatDuration(seconds float64) string {
	total := int(math.Round(seconds))
	h, m, s := total/3600, total/60%60, total%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// fileFor picks the link target for an index row: the HTML page when one
// was written, otherwise the JSON file.
func fileFor(files map[string]string) string {
	for _, f := range []string{Ext, "json", "txt"} {
		if p, ok := files[f]; ok {
			return p
		}
	}
	return ""
}
