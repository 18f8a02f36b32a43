package sources

// YouTube transcript acquisition is split across files by responsibility:
//   youtube_innertube.go - Innertube API types, constants, and request builders
//   strategy_*.go        - the four retrieval strategies, in chain order
//   session.go           - per-call state shared by the strategies
//   youtube.go           - chain wiring, batch fetching, and track listing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// Options tune one acquisition call. Zero values fall back to engine.Cfg
// and DefaultEndpoints.
type Options struct {
	Language     string
	Endpoints    *Endpoints
	Logger       *slog.Logger
	OpenDocument DocumentOpener
	Window       time.Duration
	SettleWait   time.Duration
}

func (o Options) withDefaults() Options {
	if o.Language == "" {
		o.Language = engine.Cfg.DefaultLanguage
	}
	if o.Endpoints == nil {
		ep := DefaultEndpoints
		o.Endpoints = &ep
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.OpenDocument == nil {
		o.OpenDocument = StaticDocumentOpener
	}
	if o.Window <= 0 {
		o.Window = engine.Cfg.ConsolidateWindow
	}
	if o.SettleWait <= 0 {
		o.SettleWait = engine.Cfg.SettleWait
	}
	return o
}

// strategies returns the chain for s in priority order.
func strategies(s *Session, open DocumentOpener) []transcript.Strategy {
	return []transcript.Strategy{
		playerStrategy(s),
		documentStrategy(s, open),
		listingStrategy(s),
		directStrategy(s),
	}
}

// FetchYouTubeTranscript acquires the transcript of the video named by
// input (an id or any YouTube URL). It returns an error wrapping
// transcript.ErrMalformedIdentifier when no id can be derived and
// transcript.ErrTranscriptUnavailable when every strategy came up empty.
func FetchYouTubeTranscript(ctx context.Context, input string, opts Options) (*transcript.Result, error) {
	opts = opts.withDefaults()
	engine.IncrTranscriptRequests()

	videoID, err := transcript.ExtractVideoID(input)
	if err != nil {
		engine.IncrMalformedIDs()
		return nil, err
	}

	s := NewSession(videoID, opts.Language, *opts.Endpoints, opts.Logger)
	s.SettleWait = opts.SettleWait

	chain := transcript.NewChain(s.Logger, strategies(s, opts.OpenDocument)...)
	chain.Observe = engine.ObserveStrategy
	out, err := chain.Run(ctx)
	if err != nil {
		if errors.Is(err, transcript.ErrTranscriptUnavailable) {
			engine.IncrTranscriptExhausted()
		}
		return nil, err
	}
	engine.IncrTranscriptSuccesses()

	chunks, text := transcript.Build(out.Segments, opts.Window.Seconds())
	res := &transcript.Result{
		VideoID:  videoID,
		Title:    s.Title(),
		Strategy: out.Strategy,
		Segments: out.Segments,
		Chunks:   chunks,
		Text:     text,
	}
	if track, ok := s.FetchedTrack(); ok {
		res.Language = track.LanguageCode
	}
	if res.Title == "" && s.watched && s.watchErr == nil {
		res.Title = titleFromHTML(s.watchHTML)
	}
	s.Logger.Info("youtube: transcript acquired",
		slog.String("strategy", out.Strategy),
		slog.Int("segments", len(out.Segments)),
		slog.Int("chunks", len(chunks)))
	return res, nil
}

// BatchItem is the outcome of one video in a batch fetch.
type BatchItem struct {
	Input  string
	Result *transcript.Result
	Err    error
}

// FetchTranscriptsParallel runs independent acquisitions for inputs, at
// most concurrency at a time, and returns their outcomes in input order.
func FetchTranscriptsParallel(ctx context.Context, inputs []string, concurrency int, opts Options) []BatchItem {
	if concurrency <= 0 {
		concurrency = 4
	}
	items := make([]BatchItem, len(inputs))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			res, err := FetchYouTubeTranscript(ctx, in, opts)
			if err != nil {
				opts.withDefaults().Logger.Debug("youtube: transcript failed",
					slog.String("input", in), slog.Any("err", err))
			}
			items[i] = BatchItem{Input: in, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return items
}

// ListTracks returns the caption tracks the public listing endpoint
// advertises for the video named by input.
func ListTracks(ctx context.Context, input string, ep *Endpoints) ([]transcript.CaptionTrack, error) {
	videoID, err := transcript.ExtractVideoID(input)
	if err != nil {
		return nil, err
	}
	if ep == nil {
		ep = &DefaultEndpoints
	}
	return listTracks(ctx, NewSession(videoID, "", *ep, nil))
}
