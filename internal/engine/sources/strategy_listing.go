package sources

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// StrategyListing is the name of the public track listing strategy.
const StrategyListing = "timedtext_list"

// formatVariants are the fmt= values tried against a track locator, in
// order. The empty value asks for the endpoint's default format.
var formatVariants = []string{"json3", "srv3", "vtt", ""}

// timedTextList is the ?type=list response of the timedtext API.
type timedTextList struct {
	XMLName xml.Name         `xml:"transcript_list"`
	Tracks  []timedTextTrack `xml:"track"`
}

type timedTextTrack struct {
	ID          string `xml:"id,attr"`
	Name        string `xml:"name,attr"`
	LangCode    string `xml:"lang_code,attr"`
	LangDefault bool   `xml:"lang_default,attr"`
	Kind        string `xml:"kind,attr"`
}

// parseTrackList decodes a listing into caption tracks whose locators
// point back at the timedtext endpoint.
func parseTrackList(raw []byte, base, videoID string) ([]transcript.CaptionTrack, error) {
	var list timedTextList
	if err := xml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode track list: %w", err)
	}
	out := make([]transcript.CaptionTrack, 0, len(list.Tracks))
	for _, t := range list.Tracks {
		if t.LangCode == "" {
			continue
		}
		kind := transcript.KindManual
		if t.Kind == "asr" {
			kind = transcript.KindASR
		}
		q := url.Values{}
		q.Set("v", videoID)
		q.Set("lang", t.LangCode)
		if t.Name != "" {
			q.Set("name", t.Name)
		}
		if kind == transcript.KindASR {
			q.Set("kind", "asr")
		}
		out = append(out, transcript.CaptionTrack{
			Locator:      base + "?" + q.Encode(),
			LanguageCode: t.LangCode,
			Name:         t.Name,
			Kind:         kind,
			TrackID:      t.ID,
		})
	}
	return out, nil
}

// withFormat returns locator with its fmt parameter set to f, or removed
// when f is empty.
func withFormat(locator, f string) string {
	u, err := url.Parse(locator)
	if err != nil {
		return locator
	}
	q := u.Query()
	if f == "" {
		q.Del("fmt")
	} else {
		q.Set("fmt", f)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// listTracks fetches the public track listing for the session's video.
func listTracks(ctx context.Context, s *Session) ([]transcript.CaptionTrack, error) {
	q := url.Values{}
	q.Set("type", "list")
	q.Set("v", s.VideoID)
	raw, err := getText(ctx, s.Endpoints.TimedText+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("track list: %w", err)
	}
	return parseTrackList([]byte(raw), s.Endpoints.TimedText, s.VideoID)
}

// listingStrategy picks a track from the public listing and tries each
// format variant of its locator, sniffing each payload.
func listingStrategy(s *Session) transcript.Strategy {
	return transcript.Strategy{Name: StrategyListing, Run: func(ctx context.Context) ([]transcript.Segment, error) {
		tracks, err := listTracks(ctx, s)
		if err != nil {
			return nil, err
		}
		track, ok := transcript.PickTrack(tracks, s.Lang)
		if !ok {
			return nil, errors.New("track list is empty")
		}
		s.recordTracks(tracks)
		segs, err := fetchVariants(ctx, s, track.Locator, transcript.Parse)
		if len(segs) > 0 {
			s.recordFetched(track)
		}
		return segs, err
	}}
}

// fetchVariants requests locator with each format variant in turn and
// returns the first payload that parse turns into segments.
func fetchVariants(ctx context.Context, s *Session, locator string, parse func(string) ([]transcript.Segment, transcript.Format)) ([]transcript.Segment, error) {
	var errs []error
	for _, v := range formatVariants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		target := withFormat(locator, v)
		raw, err := getText(ctx, target)
		if err != nil {
			errs = append(errs, fmt.Errorf("fmt=%q: %w", v, err))
			continue
		}
		segs, f := parse(raw)
		if len(segs) > 0 {
			s.Logger.Debug("youtube: caption variant parsed",
				slog.String("variant", v), slog.String("format", f.String()), slog.Int("segments", len(segs)))
			return segs, nil
		}
		errs = append(errs, fmt.Errorf("fmt=%q: no segments", v))
	}
	return nil, errors.Join(errs...)
}
