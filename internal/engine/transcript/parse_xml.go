package transcript

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	xmlTextCueRe = regexp.MustCompile(`(?s)<text\b([^>]*?)(?:/>|>(.*?)</text>)`)
	srv3CueRe    = regexp.MustCompile(`(?s)<p\b([^>]*?)(?:/>|>(.*?)</p>)`)
	xmlAttrRe    = regexp.MustCompile(`([A-Za-z_:][-\w:.]*)\s*=\s*"([^"]*)"`)
	tagRe        = regexp.MustCompile(`<[^>]*>`)
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// xmlAttrs extracts name="value" pairs from the inside of an opening tag.
func xmlAttrs(s string) map[string]string {
	m := xmlAttrRe.FindAllStringSubmatch(s, -1)
	out := make(map[string]string, len(m))
	for _, a := range m {
		out[a[1]] = a[2]
	}
	return out
}

// ParseTagCueXML parses the legacy timedtext format:
//
//	<text start="1.23" dur="2.5">Hello &amp; welcome</text>
//
// start and dur are seconds.
func ParseTagCueXML(raw string) []Segment {
	var out []Segment
	for _, m := range xmlTextCueRe.FindAllStringSubmatch(raw, -1) {
		attrs := xmlAttrs(m[1])
		start, err := strconv.ParseFloat(attrs["start"], 64)
		if err != nil || !finite(start) || start < 0 {
			continue
		}
		dur, _ := strconv.ParseFloat(attrs["dur"], 64)
		if !finite(dur) || dur < 0 {
			dur = 0
		}
		text := cleanText(tagRe.ReplaceAllString(m[2], ""))
		if text == "" {
			continue
		}
		out = append(out, Segment{Text: text, Start: start, Duration: dur})
	}
	return out
}

// ParseStructuredCue parses the srv3 format, where each cue is a <p> with
// t and d attributes in milliseconds and the words may be split into
// <s> spans:
//
//	<p t="1230" d="2500"><s>Hello</s><s t="400"> world</s></p>
func ParseStructuredCue(raw string) []Segment {
	var out []Segment
	for _, m := range srv3CueRe.FindAllStringSubmatch(raw, -1) {
		attrs := xmlAttrs(m[1])
		t, err := strconv.ParseInt(strings.TrimSpace(attrs["t"]), 10, 64)
		if err != nil || t < 0 {
			continue
		}
		d, _ := strconv.ParseInt(strings.TrimSpace(attrs["d"]), 10, 64)
		if d < 0 {
			d = 0
		}
		text := cleanText(tagRe.ReplaceAllString(m[2], ""))
		if text == "" {
			continue
		}
		out = append(out, Segment{
			Text:     text,
			Start:    float64(t) / 1000,
			Duration: float64(d) / 1000,
		})
	}
	return out
}
