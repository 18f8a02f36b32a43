// Package transcript turns raw caption payloads into a canonical,
// time-aligned transcript.
//
// The pipeline is: a Chain of retrieval strategies yields raw caption
// text, Parse converts it into Segments whatever its wire format,
// Consolidate merges Segments into fixed-window Chunks and Render emits
// the "[M:SS] text" block handed to summarizers.
package transcript

import "errors"

// Segment is one caption unit after parsing and decoding.
// Text is never empty; Start is seconds from the beginning of the video;
// Duration is 0 when the source does not expose it.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End returns Start+Duration.
func (s Segment) End() float64 { return s.Start + s.Duration }

// Chunk is a Segment-shaped aggregate of consecutive segments that fall
// within one consolidation window.
type Chunk = Segment

// Kind distinguishes manually authored caption tracks from ASR ones.
type Kind string

const (
	KindUnknown Kind = ""
	KindManual  Kind = "manual"
	KindASR     Kind = "asr"
)

// CaptionTrack describes one caption stream offered for a video.
type CaptionTrack struct {
	Locator      string `json:"locator"`
	LanguageCode string `json:"language_code"`
	Name         string `json:"name,omitempty"`
	Kind         Kind   `json:"kind,omitempty"`
	TrackID      string `json:"track_id,omitempty"`
}

// IsAuto reports whether the track is auto-generated.
func (t CaptionTrack) IsAuto() bool { return t.Kind == KindASR }

// Result is a successfully acquired and rendered transcript.
type Result struct {
	VideoID  string    `json:"video_id"`
	Title    string    `json:"title,omitempty"`
	Language string    `json:"language,omitempty"`
	Strategy string    `json:"strategy"`
	Segments []Segment `json:"segments"`
	Chunks   []Chunk   `json:"chunks"`
	Text     string    `json:"transcript"`
}

var (
	// ErrTranscriptUnavailable is returned once every retrieval strategy
	// has been tried and none produced segments. The video most likely
	// has no captions.
	ErrTranscriptUnavailable = errors.New("no transcript available for this video")

	// ErrMalformedIdentifier is returned when no video id can be derived
	// from the caller's input. No strategy is attempted.
	ErrMalformedIdentifier = errors.New("cannot determine video id")
)
