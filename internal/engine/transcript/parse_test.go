package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsersEmptyAndInvalid(t *testing.T) {
	parsers := map[string]func(string) []Segment{
		"xml":  ParseTagCueXML,
		"srv3": ParseStructuredCue,
		"json": ParseEventJSON,
		"vtt":  ParseCueBlocks,
	}
	inputs := []string{"", "   ", "garbage", "{not json", "<text>", "<p t=\"x\">", "WEBVTT"}
	for name, parse := range parsers {
		for _, in := range inputs {
			assert.Empty(t, parse(in), "%s parser on %q", name, in)
		}
	}
}

func TestParseTagCueXML(t *testing.T) {
	raw := `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
		`<text start="0" dur="5">Tom &amp; Jerry</text>` +
		`<text start="5.5" dur="3.2">Line one
Line two</text>` +
		`<text start="9" dur="1">   </text>` +
		`<text dur="2" start="10.25">it&#39;s <font color="#fff">here</font></text>` +
		`</transcript>`
	got := ParseTagCueXML(raw)
	require.Len(t, got, 3)
	assert.Equal(t, Segment{Text: "Tom & Jerry", Start: 0, Duration: 5}, got[0])
	assert.Equal(t, Segment{Text: "Line one Line two", Start: 5.5, Duration: 3.2}, got[1])
	assert.Equal(t, Segment{Text: "it's here", Start: 10.25, Duration: 2}, got[2])
}

func TestParseTagCueXMLMissingDuration(t *testing.T) {
	got := ParseTagCueXML(`<text start="3">hi</text><text>no start</text>`)
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].Duration)
}

func TestParseStructuredCue(t *testing.T) {
	raw := `<?xml version="1.0" encoding="utf-8" ?><timedtext format="3">
<head><pen id="1" fc="#FEFEFE"/></head>
<body>
<p t="1230" d="2500" w="1"><s ac="0">Hello</s><s t="400" ac="0"> world</s></p>
<p t="4000" d="1000" w="1" a="1">
</p>
<p t="5000" d="1500">Tom &amp; Jerry
again</p>
</body></timedtext>`
	got := ParseStructuredCue(raw)
	require.Len(t, got, 2)
	assert.Equal(t, Segment{Text: "Hello world", Start: 1.23, Duration: 2.5}, got[0])
	assert.Equal(t, Segment{Text: "Tom & Jerry again", Start: 5, Duration: 1.5}, got[1])
}

func TestParseSelfClosingCues(t *testing.T) {
	got := ParseStructuredCue(`<p t="0" d="1000"/><p t="5000" d="1000">second</p>`)
	require.Len(t, got, 1)
	assert.Equal(t, Segment{Text: "second", Start: 5, Duration: 1}, got[0])

	got = ParseTagCueXML(`<text start="0" dur="1"/><text start="7" dur="2">later</text>`)
	require.Len(t, got, 1)
	assert.Equal(t, Segment{Text: "later", Start: 7, Duration: 2}, got[0])
}

func TestParseTagCueXMLNonFinite(t *testing.T) {
	got := ParseTagCueXML(`<text start="NaN" dur="1">a</text><text start="Inf">b</text><text start="2" dur="NaN">c</text>`)
	require.Len(t, got, 1)
	assert.Equal(t, Segment{Text: "c", Start: 2}, got[0])
}

func TestParseEventJSON(t *testing.T) {
	raw := `{"wireMagic":"pb3","events":[
		{"tStartMs":0,"dDurationMs":120000,"id":1,"wpWinPosId":1},
		{"tStartMs":1000,"dDurationMs":2000,"segs":[{"utf8":"Hello"},{"utf8":" world","tOffsetMs":400}]},
		{"tStartMs":3000,"dDurationMs":10,"aAppend":1,"segs":[{"utf8":"\n"}]},
		{"tStartMs":3500,"dDurationMs":1500,"segs":[{"utf8":"Tom &amp; Jerry\nagain"}]},
		{"tStartMs":6000,"segs":[]}
	]}`
	got := ParseEventJSON(raw)
	require.Len(t, got, 2)
	assert.Equal(t, Segment{Text: "Hello world", Start: 1, Duration: 2}, got[0])
	assert.Equal(t, Segment{Text: "Tom & Jerry again", Start: 3.5, Duration: 1.5}, got[1])
}

func TestParseEventJSONMalformed(t *testing.T) {
	assert.Empty(t, ParseEventJSON(`{"events":[{"tStartMs":1,`))
	assert.Empty(t, ParseEventJSON(`{"events":[]}`))
	assert.Empty(t, ParseEventJSON(`[]`))
}

func TestParseCueBlocks(t *testing.T) {
	raw := "WEBVTT\nKind: captions\nLanguage: en\n\n" +
		"1\n00:00:01.000 --> 00:00:03.500 align:start position:0%\n<c>Hello</c> &amp; welcome\nto the show\n\n" +
		"2\n01:05.250 --> 01:07.000\nshort form\n\n" +
		"01:00:00.000 --> 62:00.000\nmixed hours\n\n" +
		"00:02:00.000 --> 00:02:01.000\n<00:02:00.500><c> tagged</c>\n\n" +
		"00:03:00.000 --> 00:03:04.000\nno trailing blank line"
	got := ParseCueBlocks(raw)
	require.Len(t, got, 5)
	assert.Equal(t, Segment{Text: "Hello & welcome to the show", Start: 1, Duration: 2.5}, got[0])
	assert.Equal(t, "short form", got[1].Text)
	assert.InDelta(t, 65.25, got[1].Start, 1e-9)
	assert.InDelta(t, 1.75, got[1].Duration, 1e-9)
	assert.Equal(t, "mixed hours", got[2].Text)
	assert.InDelta(t, 3600, got[2].Start, 1e-9)
	assert.InDelta(t, 120, got[2].Duration, 1e-9)
	assert.Equal(t, "tagged", got[3].Text)
	assert.Equal(t, Segment{Text: "no trailing blank line", Start: 180, Duration: 4}, got[4])
}

func TestParseCueBlocksCRLF(t *testing.T) {
	raw := "WEBVTT\r\n\r\n00:00:01.000 --> 00:00:02.000\r\nfirst\r\n\r\n00:00:02.000 --> 00:00:03.000\r\nsecond\r\n"
	got := ParseCueBlocks(raw)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, "second", got[1].Text)
}

func TestSniff(t *testing.T) {
	tests := []struct {
		raw  string
		want Format
	}{
		{` {"events":[]}`, FormatEventJSON},
		{`<timedtext><body><p t="1" d="2">x</p></body></timedtext>`, FormatStructuredCue},
		{`<transcript><text start="1">x</text></transcript>`, FormatTagCueXML},
		{"WEBVTT\n\n00:01.000 --> 00:02.000\nx", FormatCueBlock},
		{"plain", FormatUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sniff(tt.raw), "sniff %q", tt.raw)
	}
}

func TestParseFallsBackWhenSniffMisfires(t *testing.T) {
	// Contains "<text " inside a cue so the XML parser is guessed first,
	// but only the cue-block parser can read it.
	raw := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nuse <text and brackets\n"
	segs, f := Parse(raw)
	require.Len(t, segs, 1)
	assert.Equal(t, FormatCueBlock, f)
	assert.Equal(t, "use <text and brackets", segs[0].Text)
}

func TestParseNoMarkers(t *testing.T) {
	// No WEBVTT header, but timing lines parse as cue blocks via fallback.
	segs, f := Parse("00:00:01.000 --> 00:00:02.000\nhello\n")
	require.Len(t, segs, 1)
	assert.Equal(t, FormatCueBlock, f)

	segs, f = Parse("nothing here")
	assert.Empty(t, segs)
	assert.Equal(t, FormatUnknown, f)
}

func TestParseInOrder(t *testing.T) {
	segs, f := ParseInOrder(`{"events":[{"tStartMs":1000,"dDurationMs":500,"segs":[{"utf8":"hi"}]}]}`)
	require.Len(t, segs, 1)
	assert.Equal(t, FormatEventJSON, f)

	segs, f = ParseInOrder(`<transcript><text start="2" dur="1">a &amp; b</text></transcript>`)
	require.Len(t, segs, 1)
	assert.Equal(t, FormatTagCueXML, f)
	assert.Equal(t, "a & b", segs[0].Text)

	segs, f = ParseInOrder("  ")
	assert.Empty(t, segs)
	assert.Equal(t, FormatUnknown, f)
}
