package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(start, dur float64, text string) Segment {
	return Segment{Text: text, Start: start, Duration: dur}
}

func TestConsolidateWindowBoundary(t *testing.T) {
	segs := []Segment{seg(0, 5, "a"), seg(5, 5, "b"), seg(35, 5, "c"), seg(40, 2, "d")}
	got := Consolidate(segs, 30)
	require.Len(t, got, 2)
	assert.Equal(t, Chunk{Text: "a b", Start: 0, Duration: 10}, got[0])
	assert.Equal(t, Chunk{Text: "c d", Start: 35, Duration: 7}, got[1])
}

func TestConsolidateExactWindowStartsNewChunk(t *testing.T) {
	got := Consolidate([]Segment{seg(0, 1, "a"), seg(29.999, 1, "b"), seg(30, 1, "c")}, 30)
	require.Len(t, got, 2)
	assert.Equal(t, "a b", got[0].Text)
	assert.Equal(t, "c", got[1].Text)
	assert.Equal(t, 30.0, got[1].Start)
}

func TestConsolidateChunksAreMonotonic(t *testing.T) {
	var segs []Segment
	for i := 0; i < 100; i++ {
		segs = append(segs, seg(float64(i)*4.5, 4, "w"))
	}
	chunks := Consolidate(segs, 30)
	require.NotEmpty(t, chunks)
	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		assert.GreaterOrEqual(t, cur.Start-prev.Start, 30.0)
		assert.LessOrEqual(t, prev.Start+prev.Duration, cur.Start+1e-9)
	}
}

func TestConsolidateEmpty(t *testing.T) {
	assert.Empty(t, Consolidate(nil, 30))
	assert.Equal(t, "", Render(nil))
}

func TestConsolidateDefaultWindow(t *testing.T) {
	got := Consolidate([]Segment{seg(0, 1, "a"), seg(29, 1, "b"), seg(31, 1, "c")}, 0)
	require.Len(t, got, 2)
}

func TestRender(t *testing.T) {
	chunks := []Chunk{
		{Text: "  Tom &amp; Jerry\n  again ", Start: 0},
		{Text: "   ", Start: 30},
		{Text: "late", Start: 3725},
	}
	assert.Equal(t, "[0:00] Tom & Jerry again\n[1:02:05] late", Render(chunks))
}

func TestBuildEndToEnd(t *testing.T) {
	raw := `<text start="0" dur="5">Hello world</text><text start="5.5" dur="3.2">This is a test</text>`
	segs, f := Parse(raw)
	require.Equal(t, FormatTagCueXML, f)
	chunks, text := Build(segs, 60)
	require.Len(t, chunks, 1)
	assert.InDelta(t, 8.7, chunks[0].Duration, 1e-9)
	assert.Equal(t, "[0:00] Hello world This is a test", text)
}
