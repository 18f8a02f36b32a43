package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// StrategyPlayer is the name of the Innertube strategy.
const StrategyPlayer = "innertube_player"

// playerStrategy asks the Innertube /player endpoint, as the Android app,
// for the caption track list and fetches the chosen track. When the
// player exposes no fetchable track it falls back to the WEB client's
// engagement-panel transcript (/next → /get_transcript).
func playerStrategy(s *Session) transcript.Strategy {
	return transcript.Strategy{Name: StrategyPlayer, Run: func(ctx context.Context) ([]transcript.Segment, error) {
		segs, playerErr := fetchViaPlayer(ctx, s)
		if len(segs) > 0 {
			return segs, nil
		}
		s.Logger.Debug("youtube: player route empty, trying engagement panel", slog.Any("err", playerErr))

		segs, panelErr := fetchViaEngagementPanel(ctx, s)
		if len(segs) > 0 {
			return segs, nil
		}
		return nil, errors.Join(playerErr, panelErr)
	}}
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(locator string) bool {
	return strings.Contains(locator, "&exp=xpe")
}

// usableTracks drops tracks that cannot be fetched server-side.
func usableTracks(tracks []transcript.CaptionTrack) []transcript.CaptionTrack {
	out := make([]transcript.CaptionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.Locator) {
			out = append(out, t)
		}
	}
	return out
}

func fetchViaPlayer(ctx context.Context, s *Session) ([]transcript.Segment, error) {
	data, err := postInnerTube(ctx, s.Endpoints.Player, innertubeReq{
		VideoID: s.VideoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                s.Lang,
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	}, androidHeaders())
	if err != nil {
		return nil, fmt.Errorf("android player: %w", err)
	}

	var resp innertubePlayerResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	s.recordTitle(resp.title())

	tracks := resp.tracks()
	if len(tracks) == 0 {
		if resp.PlayabilityStatus != nil && resp.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", resp.PlayabilityStatus.Reason)
		}
		return nil, errors.New("no captions in player response")
	}
	s.recordTracks(tracks)

	track, ok := transcript.PickTrack(usableTracks(tracks), s.Lang)
	if !ok {
		return nil, errors.New("all caption tracks require PoToken")
	}
	raw, err := getText(ctx, track.Locator)
	if err != nil {
		return nil, fmt.Errorf("track payload: %w", err)
	}
	segs, _ := transcript.Parse(raw)
	if len(segs) == 0 {
		return nil, errors.New("track payload yielded no segments")
	}
	s.recordFetched(track)
	return segs, nil
}

// getTranscriptRE extracts the continuation token from a raw /next JSON response.
var getTranscriptRE = regexp.MustCompile(`"getTranscriptEndpoint":\{"params":"([^"]+)"`)

func extractTranscriptToken(data []byte) (string, error) {
	if m := getTranscriptRE.FindSubmatch(data); len(m) >= 2 {
		// The params value in the /next JSON response is URL-encoded.
		// /get_transcript expects the decoded (raw base64) form.
		decoded, err := url.QueryUnescape(string(m[1]))
		if err != nil {
			return string(m[1]), nil
		}
		return decoded, nil
	}
	return "", errors.New("getTranscriptEndpoint not found in engagement panels")
}

// segmentsFromTranscriptPanel converts /get_transcript segments. Each one
// carries startMs and endMs as decimal strings.
func segmentsFromTranscriptPanel(resp ytGetTranscriptResp) []transcript.Segment {
	var out []transcript.Segment
	for _, action := range resp.Actions {
		if action.UpdateEngagementPanelAction == nil {
			continue
		}
		segs := action.UpdateEngagementPanelAction.Content.
			TranscriptRenderer.Content.
			TranscriptSearchPanelRenderer.Body.
			TranscriptSegmentListRenderer.InitialSegments
		for _, seg := range segs {
			r := seg.TranscriptSegmentRenderer
			if r == nil {
				continue
			}
			var sb strings.Builder
			for _, run := range r.Snippet.Runs {
				sb.WriteString(run.Text)
			}
			text := transcript.Clean(sb.String())
			if text == "" {
				continue
			}
			start, err := strconv.ParseInt(r.StartMs, 10, 64)
			if err != nil || start < 0 {
				continue
			}
			end, _ := strconv.ParseInt(r.EndMs, 10, 64)
			dur := float64(end-start) / 1000
			if dur < 0 {
				dur = 0
			}
			out = append(out, transcript.Segment{Text: text, Start: float64(start) / 1000, Duration: dur})
		}
	}
	return out
}

// fetchViaEngagementPanel fetches a transcript via:
//  1. POST /next → get engagementPanels containing transcript continuation token
//  2. POST /get_transcript with the token → JSON segments
func fetchViaEngagementPanel(ctx context.Context, s *Session) ([]transcript.Segment, error) {
	visitorData := generateVisitorData()

	nextData, err := postInnerTube(ctx, s.Endpoints.Next, map[string]any{
		"videoId": s.VideoID,
		"context": ytWebContext(visitorData, s.Lang),
	}, webHeaders(visitorData))
	if err != nil {
		return nil, fmt.Errorf("/next: %w", err)
	}

	token, err := extractTranscriptToken(nextData)
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}

	transcriptData, err := postInnerTube(ctx, s.Endpoints.GetTranscript, map[string]any{
		"params":  token,
		"context": ytWebContext(visitorData, s.Lang),
	}, webHeaders(visitorData))
	if err != nil {
		return nil, fmt.Errorf("/get_transcript: %w", err)
	}

	var resp ytGetTranscriptResp
	if err := json.Unmarshal(transcriptData, &resp); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	segs := segmentsFromTranscriptPanel(resp)
	if len(segs) == 0 {
		return nil, errors.New("empty transcript segments")
	}
	return segs, nil
}
