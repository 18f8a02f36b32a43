package transcript

import (
	"strings"
)

// DefaultWindow is the consolidation window in seconds.
const DefaultWindow = 30.0

// Consolidate merges consecutive segments into chunks. A new chunk opens
// when the next segment starts window seconds or more after the current
// chunk's start; otherwise the segment's text is appended and the chunk
// extended to cover it. window <= 0 means DefaultWindow.
func Consolidate(segs []Segment, window float64) []Chunk {
	if window <= 0 {
		window = DefaultWindow
	}
	var (
		out  []Chunk
		cur  Chunk
		open bool
		sb   strings.Builder
	)
	closeChunk := func() {
		cur.Text = sb.String()
		out = append(out, cur)
		sb.Reset()
	}
	for _, s := range segs {
		if open && s.Start-cur.Start < window {
			sb.WriteByte(' ')
			sb.WriteString(s.Text)
			cur.Duration = s.Start + s.Duration - cur.Start
			continue
		}
		if open {
			closeChunk()
		}
		cur = Chunk{Start: s.Start, Duration: s.Duration}
		sb.WriteString(s.Text)
		open = true
	}
	if open {
		closeChunk()
	}
	return out
}

// Render formats chunks as "[M:SS] text" lines joined by newlines.
// Chunks whose text is blank after cleanup are dropped.
func Render(chunks []Chunk) string {
	lines := make([]string, 0, len(chunks))
	for _, c := range chunks {
		text := cleanText(c.Text)
		if text == "" {
			continue
		}
		lines = append(lines, "["+FormatTimestamp(c.Start)+"] "+text)
	}
	return strings.Join(lines, "\n")
}

// Build consolidates segs with the given window and renders the result.
func Build(segs []Segment, window float64) ([]Chunk, string) {
	chunks := Consolidate(segs, window)
	return chunks, Render(chunks)
}
