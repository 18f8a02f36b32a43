package sources

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// Session is the state shared by the strategies of one acquisition call.
// It is created per call and dropped with it.
type Session struct {
	ID        string
	VideoID   string
	Lang      string
	Endpoints Endpoints
	Logger    *slog.Logger

	// SettleWait bounds each wait for the document to render.
	SettleWait time.Duration

	tracks    []transcript.CaptionTrack
	fetched   *transcript.CaptionTrack
	title     string
	watchHTML string
	watchErr  error
	watched   bool
}

// NewSession prepares a session for videoID.
func NewSession(videoID, lang string, ep Endpoints, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &Session{
		ID:        id,
		VideoID:   videoID,
		Lang:      lang,
		Endpoints: ep,
		Logger:    logger.With(slog.String("acq", id), slog.String("video", videoID)),
	}
}

// Tracks returns the caption tracks discovered so far in this call.
func (s *Session) Tracks() []transcript.CaptionTrack { return s.tracks }

// FetchedTrack returns the track whose payload produced the transcript.
// It reports false when the winning route carried no track metadata.
func (s *Session) FetchedTrack() (transcript.CaptionTrack, bool) {
	if s.fetched == nil {
		return transcript.CaptionTrack{}, false
	}
	return *s.fetched, true
}

// Title returns the video title if any strategy saw it.
func (s *Session) Title() string { return s.title }

func (s *Session) recordTracks(tracks []transcript.CaptionTrack) {
	if len(tracks) > 0 && len(s.tracks) == 0 {
		s.tracks = tracks
	}
}

func (s *Session) recordFetched(t transcript.CaptionTrack) {
	s.fetched = &t
}

func (s *Session) recordTitle(title string) {
	if title != "" && s.title == "" {
		s.title = title
	}
}

// WatchURL is the watch page URL of the session's video.
func (s *Session) WatchURL() string {
	return s.Endpoints.Watch + "?v=" + url.QueryEscape(s.VideoID)
}

// watchPage fetches the watch page HTML once per session.
func (s *Session) watchPage(ctx context.Context) (string, error) {
	if !s.watched {
		s.watched = true
		s.watchHTML, s.watchErr = getHTML(ctx, s.WatchURL())
	}
	return s.watchHTML, s.watchErr
}
