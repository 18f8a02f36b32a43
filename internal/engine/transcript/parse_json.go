package transcript

import (
	"encoding/json"
	"strings"
)

// json3Payload is the subset of the json3 caption format we read.
type json3Payload struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	TStartMs    int64       `json:"tStartMs"`
	DDurationMs int64       `json:"dDurationMs"`
	Segs        []json3Segs `json:"segs"`
}

type json3Segs struct {
	UTF8 string `json:"utf8"`
}

// ParseEventJSON parses the json3 event stream. Events without segs (window
// and style events) and events whose text is blank are skipped. Invalid
// JSON yields no segments.
func ParseEventJSON(raw string) []Segment {
	var p json3Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil
	}
	var out []Segment
	for _, ev := range p.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var sb strings.Builder
		for _, s := range ev.Segs {
			sb.WriteString(s.UTF8)
		}
		text := cleanText(sb.String())
		if text == "" {
			continue
		}
		start, dur := ev.TStartMs, ev.DDurationMs
		if start < 0 {
			continue
		}
		if dur < 0 {
			dur = 0
		}
		out = append(out, Segment{
			Text:     text,
			Start:    float64(start) / 1000,
			Duration: float64(dur) / 1000,
		})
	}
	return out
}
