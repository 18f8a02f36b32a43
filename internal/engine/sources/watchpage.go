package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr, escaped := false, false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

// playerResponseFromHTML decodes ytInitialPlayerResponse embedded in a
// watch page.
func playerResponseFromHTML(html string) (*innertubePlayerResp, error) {
	idx := strings.Index(html, ytInitialPlayerResponseMarker)
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	data := extractJSON([]byte(html[idx+len(ytInitialPlayerResponseMarker):]))
	if data == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}
	var resp innertubePlayerResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &resp, nil
}

// tracksFromHTML returns the caption tracks advertised by a watch page.
func tracksFromHTML(html string) ([]transcript.CaptionTrack, string, error) {
	resp, err := playerResponseFromHTML(html)
	if err != nil {
		return nil, "", err
	}
	return resp.tracks(), resp.title(), nil
}

// titleFromHTML reads the video title from the page metadata.
func titleFromHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	if t, ok := doc.Find(`meta[name="title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	t := strings.TrimSpace(doc.Find("title").First().Text())
	return strings.TrimSpace(strings.TrimSuffix(t, "- YouTube"))
}
