package transcript

import (
	"strings"

	"golang.org/x/text/language"
)

// SameLanguage reports whether two BCP 47 codes share a base language,
// so "en", "en-US" and "en-GB" all match each other. Unparseable codes
// fall back to a case-insensitive comparison.
func SameLanguage(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}
	ta, errA := language.Parse(a)
	tb, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return false
	}
	ba, _ := ta.Base()
	bb, _ := tb.Base()
	return ba == bb
}

// PickTrack applies the track preference: a manual track in lang, else
// an auto-generated track in lang, else the first track offered.
// ok is false only when tracks is empty.
func PickTrack(tracks []CaptionTrack, lang string) (CaptionTrack, bool) {
	if len(tracks) == 0 {
		return CaptionTrack{}, false
	}
	for _, t := range tracks {
		if !t.IsAuto() && SameLanguage(t.LanguageCode, lang) {
			return t, true
		}
	}
	for _, t := range tracks {
		if t.IsAuto() && SameLanguage(t.LanguageCode, lang) {
			return t, true
		}
	}
	return tracks[0], true
}
