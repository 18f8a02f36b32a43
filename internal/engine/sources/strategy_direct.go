package sources

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// StrategyDirect is the name of the direct locator strategy.
const StrategyDirect = "direct_locator"

// directStrategy fetches a track locator discovered earlier in the call,
// or advertised by the watch page, trying each format variant against
// every parser in order. If the locator yields nothing and the track's
// id is known, a locator rebuilt from that id is tried the same way.
func directStrategy(s *Session) transcript.Strategy {
	return transcript.Strategy{Name: StrategyDirect, Run: func(ctx context.Context) ([]transcript.Segment, error) {
		tracks := s.Tracks()
		if len(tracks) == 0 {
			html, err := s.watchPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("watch page: %w", err)
			}
			found, title, err := tracksFromHTML(html)
			if err != nil {
				return nil, err
			}
			s.recordTitle(title)
			s.recordTracks(found)
			tracks = found
		}
		track, ok := transcript.PickTrack(tracks, s.Lang)
		if !ok {
			return nil, errors.New("no caption track locator known")
		}

		segs, err := fetchVariants(ctx, s, track.Locator, transcript.ParseInOrder)
		if len(segs) > 0 {
			s.recordFetched(track)
			return segs, nil
		}
		if track.TrackID == "" {
			return nil, err
		}
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		alt := rebuiltLocator(s.Endpoints.TimedText, s.VideoID, track)
		segs, altErr := fetchVariants(ctx, s, alt, transcript.ParseInOrder)
		if len(segs) > 0 {
			s.recordFetched(track)
			return segs, nil
		}
		return nil, errors.Join(err, altErr)
	}}
}

// rebuiltLocator addresses a track on the timedtext endpoint by its id.
func rebuiltLocator(base, videoID string, t transcript.CaptionTrack) string {
	q := url.Values{}
	q.Set("v", videoID)
	q.Set("lang", t.LanguageCode)
	q.Set("vss_id", t.TrackID)
	if t.IsAuto() || strings.HasPrefix(t.TrackID, "a.") {
		q.Set("kind", "asr")
	}
	return base + "?" + q.Encode()
}
