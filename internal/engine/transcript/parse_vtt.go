package transcript

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

// vttTimingRe matches "00:01:02.345 --> 00:01:04.000" with the hour part
// optional on either side and any cue settings trailing.
var vttTimingRe = regexp.MustCompile(`^\s*((?:\d+:)?\d{1,2}:\d{2}[.,]\d{1,3})\s+-->\s+((?:\d+:)?\d{1,2}:\d{2}[.,]\d{1,3})`)

// parseVTTTime converts [HH:]MM:SS.mmm to seconds.
func parseVTTTime(s string) (float64, bool) {
	s = strings.Replace(s, ",", ".", 1)
	parts := strings.Split(s, ":")
	var h, m float64
	var sec string
	switch len(parts) {
	case 2:
		sec = parts[1]
		mv, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, false
		}
		m = float64(mv)
	case 3:
		sec = parts[2]
		hv, err1 := strconv.Atoi(parts[0])
		mv, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return 0, false
		}
		h, m = float64(hv), float64(mv)
	default:
		return 0, false
	}
	sv, err := strconv.ParseFloat(sec, 64)
	if err != nil {
		return 0, false
	}
	return h*3600 + m*60 + sv, true
}

// ParseCueBlocks parses WebVTT-style cue blocks. Lines outside a cue
// (the WEBVTT header, Kind:/Language: metadata, NOTE blocks, numeric cue
// identifiers) are ignored. A cue runs from its timing line to the next
// blank line or end of input.
func ParseCueBlocks(raw string) []Segment {
	var (
		out   []Segment
		inCue bool
		start float64
		end   float64
		lines []string
	)
	flush := func() {
		if inCue {
			text := cleanText(tagRe.ReplaceAllString(strings.Join(lines, " "), ""))
			if text != "" {
				dur := end - start
				if dur < 0 {
					dur = 0
				}
				out = append(out, Segment{Text: text, Start: start, Duration: dur})
			}
		}
		inCue = false
		lines = lines[:0]
	}

	sc := bufio.NewScanner(strings.NewReader(raw))
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if m := vttTimingRe.FindStringSubmatch(line); m != nil {
			flush()
			s, ok1 := parseVTTTime(m[1])
			e, ok2 := parseVTTTime(m[2])
			if !ok1 || !ok2 {
				continue
			}
			start, end, inCue = s, e, true
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if inCue {
			lines = append(lines, line)
		}
	}
	flush()
	return out
}
