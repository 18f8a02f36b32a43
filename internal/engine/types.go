package engine

import "github.com/anatolykoptev/go_transcript/internal/engine/transcript"

// TranscriptInput is the input of the youtube_transcript tool.
type TranscriptInput struct {
	URL      string `json:"url" jsonschema:"YouTube video URL or 11-character video id"`
	Language string `json:"language,omitempty" jsonschema:"Preferred caption language code (default from config, usually en)"`
	Segments bool   `json:"segments,omitempty" jsonschema:"Include the raw per-cue segments in the output"`
}

// TranscriptOutput is the output of the youtube_transcript tool.
type TranscriptOutput struct {
	VideoID    string               `json:"video_id"`
	Title      string               `json:"title,omitempty"`
	Language   string               `json:"language,omitempty"`
	Strategy   string               `json:"strategy"`
	Segments   []transcript.Segment `json:"segments,omitempty"`
	ChunkCount int                  `json:"chunk_count"`
	Transcript string               `json:"transcript"`
}

// SummarizeInput is the input of the youtube_summarize tool.
type SummarizeInput struct {
	URL      string `json:"url" jsonschema:"YouTube video URL or 11-character video id"`
	Language string `json:"language,omitempty" jsonschema:"Preferred caption language code"`
	Focus    string `json:"focus,omitempty" jsonschema:"Optional topic to emphasize in the summary"`
}

// SummarizeOutput is the output of the youtube_summarize tool.
type SummarizeOutput struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary"`
}

// SeekInput is the input of the youtube_seek tool.
type SeekInput struct {
	Timestamp string `json:"timestamp" jsonschema:"Display timestamp such as 4:05 or 1:02:03"`
	URL       string `json:"url,omitempty" jsonschema:"Optional video URL or id; when set a deep link is returned"`
}

// SeekOutput is the output of the youtube_seek tool.
type SeekOutput struct {
	Seconds float64 `json:"seconds"`
	Link    string  `json:"link,omitempty"`
}

// OutputFromResult converts an acquisition result to the tool output.
func OutputFromResult(r *transcript.Result, withSegments bool) TranscriptOutput {
	out := TranscriptOutput{
		VideoID:    r.VideoID,
		Title:      r.Title,
		Language:   r.Language,
		Strategy:   r.Strategy,
		ChunkCount: len(r.Chunks),
		Transcript: r.Text,
	}
	if withSegments {
		out.Segments = r.Segments
	}
	return out
}

// BatchTranscriptInput is the input of the youtube_transcript_batch tool.
type BatchTranscriptInput struct {
	URLs     []string `json:"urls" jsonschema:"YouTube video URLs or ids (at most 10)"`
	Language string   `json:"language,omitempty" jsonschema:"Preferred caption language code"`
	MaxChars int      `json:"max_chars,omitempty" jsonschema:"Truncate each transcript to this many characters (default 8000)"`
}

// BatchTranscriptItem is one video of a batch result. Error is set instead
// of Transcript when acquisition failed.
type BatchTranscriptItem struct {
	Input      string `json:"input"`
	VideoID    string `json:"video_id,omitempty"`
	Title      string `json:"title,omitempty"`
	Strategy   string `json:"strategy,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BatchTranscriptOutput is the output of the youtube_transcript_batch tool.
type BatchTranscriptOutput struct {
	Items []BatchTranscriptItem `json:"items"`
}

// TracksInput is the input of the youtube_tracks tool.
type TracksInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL or 11-character video id"`
}

// TrackInfo describes one caption track.
type TrackInfo struct {
	Language string `json:"language"`
	Name     string `json:"name,omitempty"`
	Auto     bool   `json:"auto"`
	ID       string `json:"id,omitempty"`
}

// TracksOutput is the output of the youtube_tracks tool.
type TracksOutput struct {
	VideoID string      `json:"video_id"`
	Tracks  []TrackInfo `json:"tracks"`
}

// TrackInfos converts caption tracks for output.
func TrackInfos(tracks []transcript.CaptionTrack) []TrackInfo {
	out := make([]TrackInfo, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, TrackInfo{Language: t.LanguageCode, Name: t.Name, Auto: t.IsAuto(), ID: t.TrackID})
	}
	return out
}
