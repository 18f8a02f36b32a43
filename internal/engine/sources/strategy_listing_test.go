package sources

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

func TestParseTrackList(t *testing.T) {
	raw := `<?xml version="1.0" encoding="utf-8" ?>
<transcript_list docid="42">
<track id="0" name="" lang_code="en" lang_original="English" lang_translated="English" lang_default="true"/>
<track id="3" name="Director&apos;s cut" lang_code="fr" lang_original="Français" lang_translated="French"/>
<track id="9" name="" lang_code="" />
<track id="1" name="" lang_code="en" kind="asr"/>
</transcript_list>`
	tracks, err := parseTrackList([]byte(raw), "https://yt/api/timedtext", "VID")
	require.NoError(t, err)
	require.Len(t, tracks, 3)

	assert.Equal(t, transcript.CaptionTrack{
		Locator:      "https://yt/api/timedtext?lang=en&v=VID",
		LanguageCode: "en",
		Kind:         transcript.KindManual,
		TrackID:      "0",
	}, tracks[0])
	assert.Equal(t, "Director's cut", tracks[1].Name)
	assert.Equal(t, "https://yt/api/timedtext?lang=fr&name=Director%27s+cut&v=VID", tracks[1].Locator)
	assert.True(t, tracks[2].IsAuto())
	assert.Equal(t, "https://yt/api/timedtext?kind=asr&lang=en&v=VID", tracks[2].Locator)

	_, err = parseTrackList([]byte("<html>"), "b", "v")
	assert.Error(t, err)
}

func TestWithFormat(t *testing.T) {
	loc := "https://yt/api/timedtext?v=VID&lang=en&fmt=srv1"
	u, err := url.Parse(withFormat(loc, "json3"))
	require.NoError(t, err)
	assert.Equal(t, "json3", u.Query().Get("fmt"))
	assert.Equal(t, "VID", u.Query().Get("v"))

	u, err = url.Parse(withFormat(loc, ""))
	require.NoError(t, err)
	assert.False(t, u.Query().Has("fmt"))
}

func TestRebuiltLocator(t *testing.T) {
	got := rebuiltLocator("https://yt/tt", "VID", transcript.CaptionTrack{LanguageCode: "en", TrackID: "a.en"})
	assert.Equal(t, "https://yt/tt?kind=asr&lang=en&v=VID&vss_id=a.en", got)

	got = rebuiltLocator("https://yt/tt", "VID", transcript.CaptionTrack{LanguageCode: "de", TrackID: ".de", Kind: transcript.KindManual})
	assert.Equal(t, "https://yt/tt?lang=de&v=VID&vss_id=.de", got)
}
