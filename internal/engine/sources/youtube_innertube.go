package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// YouTube Innertube API: low-level constants, types, and request builders.
// Strategies live in the strategy_*.go files.

const (
	ytWebVersion     = "2.20250222.10.00"
	ytAndroidVersion = "20.10.38"
)

// Endpoints groups every upstream URL the strategies talk to, so tests can
// point them at a local server.
type Endpoints struct {
	Player        string // Innertube /player
	Next          string // Innertube /next
	GetTranscript string // Innertube /get_transcript
	Watch         string // watch page, video id appended as ?v=
	TimedText     string // public timedtext API
}

// DefaultEndpoints are the production YouTube URLs.
var DefaultEndpoints = Endpoints{
	Player:        "https://www.youtube.com/youtubei/v1/player",
	Next:          "https://www.youtube.com/youtubei/v1/next",
	GetTranscript: "https://www.youtube.com/youtubei/v1/get_transcript",
	Watch:         "https://www.youtube.com/watch",
	TimedText:     "https://www.youtube.com/api/timedtext",
}

// --- ANDROID client types (/player endpoint) ---

type innertubeReq struct {
	VideoID        string       `json:"videoId"`
	Context        innertubeCtx `json:"context"`
	RacyCheckOk    bool         `json:"racyCheckOk"`
	ContentCheckOk bool         `json:"contentCheckOk"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	VisitorData       string `json:"visitorData,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

type innertubePlayerResp struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	VideoDetails *struct {
		VideoID string `json:"videoId"`
		Title   string `json:"title"`
	} `json:"videoDetails"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
	VssID        string `json:"vssId"`
	Name         struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

func (t captionTrack) toTrack() transcript.CaptionTrack {
	kind := transcript.KindManual
	if t.Kind == "asr" {
		kind = transcript.KindASR
	}
	name := t.Name.SimpleText
	if name == "" && len(t.Name.Runs) > 0 {
		name = t.Name.Runs[0].Text
	}
	return transcript.CaptionTrack{
		Locator:      t.BaseURL,
		LanguageCode: t.LanguageCode,
		Name:         name,
		Kind:         kind,
		TrackID:      t.VssID,
	}
}

// tracks converts the player response's caption tracks, if any.
func (p *innertubePlayerResp) tracks() []transcript.CaptionTrack {
	if p.Captions == nil {
		return nil
	}
	raw := p.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	out := make([]transcript.CaptionTrack, 0, len(raw))
	for _, t := range raw {
		if t.BaseURL == "" {
			continue
		}
		out = append(out, t.toTrack())
	}
	return out
}

func (p *innertubePlayerResp) title() string {
	if p.VideoDetails == nil {
		return ""
	}
	return p.VideoDetails.Title
}

// --- WEB client types (/next and /get_transcript endpoints) ---

type ytWebClientCtx struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	VisitorData   string `json:"visitorData,omitempty"`
	Hl            string `json:"hl,omitempty"`
	Gl            string `json:"gl,omitempty"`
}

type ytWebUser struct {
	EnableSafetyMode bool `json:"enableSafetyMode"`
}

type ytWebReqCtx struct {
	UseSsl bool `json:"useSsl"`
}

// --- /get_transcript response ---

type ytGetTranscriptResp struct {
	Actions []struct {
		UpdateEngagementPanelAction *struct {
			Content struct {
				TranscriptRenderer struct {
					Content struct {
						TranscriptSearchPanelRenderer struct {
							Body struct {
								TranscriptSegmentListRenderer struct {
									InitialSegments []struct {
										TranscriptSegmentRenderer *struct {
											StartMs string `json:"startMs"`
											EndMs   string `json:"endMs"`
											Snippet struct {
												Runs []struct {
													Text string `json:"text"`
												} `json:"runs"`
											} `json:"snippet"`
										} `json:"transcriptSegmentRenderer"`
									} `json:"initialSegments"`
								} `json:"transcriptSegmentListRenderer"`
							} `json:"body"`
						} `json:"transcriptSearchPanelRenderer"`
					} `json:"content"`
				} `json:"transcriptRenderer"`
			} `json:"content"`
		} `json:"updateEngagementPanelAction"`
	} `json:"actions"`
}

// generateVisitorData creates a random 11-char visitor ID for Innertube requests.
func generateVisitorData() string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	b := make([]byte, 11)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))] //nolint:gosec // non-cryptographic use
	}
	return string(b)
}

// ytWebContext builds the standard WEB client context for Innertube payloads.
func ytWebContext(visitorData, hl string) map[string]any {
	return map[string]any{
		"client": ytWebClientCtx{
			ClientName:    "WEB",
			ClientVersion: ytWebVersion,
			VisitorData:   visitorData,
			Hl:            hl,
			Gl:            "US",
		},
		"user":    ytWebUser{EnableSafetyMode: false},
		"request": ytWebReqCtx{UseSsl: true},
	}
}

// webHeaders are the headers the WEB client sends to Innertube.
func webHeaders(visitorData string) map[string]string {
	return map[string]string{
		"content-type":             "application/json",
		"accept":                   "*/*",
		"user-agent":               engine.RandomUserAgent(),
		"x-youtube-client-name":    "1",
		"x-youtube-client-version": ytWebVersion,
		"x-goog-visitor-id":        visitorData,
		"origin":                   "https://www.youtube.com",
		"referer":                  "https://www.youtube.com/",
	}
}

// androidHeaders identify the request as the Android app.
func androidHeaders() map[string]string {
	return map[string]string{
		"content-type":             "application/json",
		"user-agent":               engine.UserAgentAndroid,
		"x-youtube-client-name":    "3",
		"x-youtube-client-version": ytAndroidVersion,
	}
}

// postInnerTube POSTs a JSON payload to an Innertube endpoint.
func postInnerTube(ctx context.Context, endpoint string, payload any, headers map[string]string) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	data, err := fetch(ctx, "POST", endpoint+"?prettyPrint=false", headers, body)
	if err != nil {
		return nil, fmt.Errorf("innertube [%s]: %w", endpoint, err)
	}
	return data, nil
}
