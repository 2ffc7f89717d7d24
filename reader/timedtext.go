package reader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sonnes/ytscribe/core"
)

// NeedsPoToken reports whether a caption track URL carries the experiment
// flag that makes the timedtext endpoint demand a po token.
func NeedsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// JSON3URL asks the timedtext endpoint behind baseURL for json3 output.
func JSON3URL(baseURL string) string {
	if strings.Contains(baseURL, "?") {
		return baseURL + "&fmt=json3"
	}
	return baseURL + "?fmt=json3"
}

type json3 struct {
	Events []struct {
		TStartMs    int64 `json:"tStartMs"`
		DDurationMs int64 `json:"dDurationMs"`
		Segs        []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// ParseJSON3 turns timedtext json3 events into entries. Events without text,
// such as window definitions and line-append markers, are skipped.
//
// The endpoint answers 200 with an empty body when it wants a po token, so
// an empty body is reported as ErrPoToken.
func ParseJSON3(body []byte) ([]core.Entry, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("empty caption response: %w", ErrPoToken)
	}

	var doc json3
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode json3: %w", err)
	}

	entries := make([]core.Entry, 0, len(doc.Events))
	for _, ev := range doc.Events {
		var sb strings.Builder
		for _, s := range ev.Segs {
			sb.WriteString(s.UTF8)
		}
		text := sb.String()
		if strings.TrimSpace(text) == "" {
			continue
		}
		entries = append(entries, core.Entry{
			Text:     text,
			Start:    float64(ev.TStartMs) / 1000,
			Duration: float64(ev.DDurationMs) / 1000,
		})
	}
	return entries, nil
}
