package transcript

import (
	"strings"
)

// Format identifies a caption wire format.
type Format int

const (
	FormatUnknown Format = iota
	FormatEventJSON
	FormatStructuredCue
	FormatTagCueXML
	FormatCueBlock
)

func (f Format) String() string {
	switch f {
	case FormatEventJSON:
		return "json3"
	case FormatStructuredCue:
		return "srv3"
	case FormatTagCueXML:
		return "xml"
	case FormatCueBlock:
		return "vtt"
	}
	return "unknown"
}

// fallbackOrder is the order in which every parser is tried when the
// sniffed one produces nothing.
var fallbackOrder = []Format{FormatEventJSON, FormatStructuredCue, FormatTagCueXML, FormatCueBlock}

// Parser returns the parse function for f, or nil for FormatUnknown.
func (f Format) Parser() func(string) []Segment {
	switch f {
	case FormatEventJSON:
		return ParseEventJSON
	case FormatStructuredCue:
		return ParseStructuredCue
	case FormatTagCueXML:
		return ParseTagCueXML
	case FormatCueBlock:
		return ParseCueBlocks
	}
	return nil
}

// Sniff guesses the format of raw from structural markers.
func Sniff(raw string) Format {
	trimmed := strings.TrimLeft(raw, " \t\r\n\ufeff")
	switch {
	case strings.HasPrefix(trimmed, "{"):
		return FormatEventJSON
	case strings.Contains(raw, `<p t="`):
		return FormatStructuredCue
	case strings.Contains(raw, "<text "):
		return FormatTagCueXML
	case strings.Contains(raw, "WEBVTT"):
		return FormatCueBlock
	}
	return FormatUnknown
}

// Parse converts raw into segments whatever its format. The sniffed
// parser runs first; if it yields nothing the remaining parsers are
// tried in fallbackOrder. It returns the format that produced the
// segments, or FormatUnknown with no segments.
func Parse(raw string) ([]Segment, Format) {
	if strings.TrimSpace(raw) == "" {
		return nil, FormatUnknown
	}
	guess := Sniff(raw)
	if guess != FormatUnknown {
		if segs := guess.Parser()(raw); len(segs) > 0 {
			return segs, guess
		}
	}
	for _, f := range fallbackOrder {
		if f == guess {
			continue
		}
		if segs := f.Parser()(raw); len(segs) > 0 {
			return segs, f
		}
	}
	return nil, FormatUnknown
}

// ParseInOrder tries every parser in fallbackOrder without sniffing and
// returns the first non-empty result.
func ParseInOrder(raw string) ([]Segment, Format) {
	if strings.TrimSpace(raw) == "" {
		return nil, FormatUnknown
	}
	for _, f := range fallbackOrder {
		if segs := f.Parser()(raw); len(segs) > 0 {
			return segs, f
		}
	}
	return nil, FormatUnknown
}
