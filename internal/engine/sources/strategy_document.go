package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// StrategyDocument is the name of the rendered-page strategy.
const StrategyDocument = "document"

// DocumentOpener yields the Document for a session plus a release func.
type DocumentOpener func(ctx context.Context, s *Session) (Document, func(), error)

// segmentLayout is one known markup for rendered transcript rows.
type segmentLayout struct {
	row, timestamp, text string
}

// transcriptLayouts lists the transcript panel markups seen in the wild,
// newest first.
var transcriptLayouts = []segmentLayout{
	{"transcript-segment-view-model", ".ytwTranscriptSegmentViewModelTimestamp", "span.yt-core-attributed-string"},
	{"ytd-transcript-segment-renderer", ".segment-timestamp", ".segment-text"},
}

// Triggers that open the description and then the transcript panel.
var (
	expandDescriptionSelectors = []string{
		"tp-yt-paper-button#expand",
		"#description-inline-expander #expand",
	}
	showTranscriptSelectors = []string{
		"ytd-video-description-transcript-section-renderer button",
		`button[aria-label="Show transcript"]`,
	}
)

// StaticDocumentOpener opens the session's watch page HTML as a
// StaticDocument.
func StaticDocumentOpener(ctx context.Context, s *Session) (Document, func(), error) {
	html, err := s.watchPage(ctx)
	if err != nil {
		return nil, nil, err
	}
	doc, err := NewStaticDocument(html)
	if err != nil {
		return nil, nil, err
	}
	return doc, func() {}, nil
}

// documentStrategy reads transcript rows already rendered in the page.
// If none are present it opens the transcript panel and waits, bounded
// by the session's settle wait, for rows to appear. Only start times are
// exposed this way, so durations are 0.
func documentStrategy(s *Session, open DocumentOpener) transcript.Strategy {
	return transcript.Strategy{Name: StrategyDocument, Run: func(ctx context.Context) ([]transcript.Segment, error) {
		if open == nil {
			return nil, errors.New("no document available")
		}
		doc, release, err := open(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("open document: %w", err)
		}
		defer release()

		if segs := readRenderedTranscript(ctx, doc); len(segs) > 0 {
			return segs, nil
		}

		clickAny(ctx, doc, expandDescriptionSelectors)
		var segs []transcript.Segment
		Settle(ctx, s.SettleWait, 0,
			func(ctx context.Context) error {
				if !clickAny(ctx, doc, showTranscriptSelectors) {
					return errors.New("transcript button not found")
				}
				return nil
			},
			func(ctx context.Context) bool {
				segs = readRenderedTranscript(ctx, doc)
				return len(segs) > 0
			})
		if len(segs) == 0 {
			return nil, errors.New("transcript panel did not render")
		}
		s.Logger.Debug("youtube: transcript read from document", slog.Int("segments", len(segs)))
		return segs, nil
	}}
}

// clickAny clicks the first selector that matches.
func clickAny(ctx context.Context, doc Document, selectors []string) bool {
	for _, sel := range selectors {
		if ok, err := doc.Click(ctx, sel); err == nil && ok {
			return true
		}
	}
	return false
}

// readRenderedTranscript returns the rows of the first layout that yields
// any, converting display timestamps with the timestamp codec.
func readRenderedTranscript(ctx context.Context, doc Document) []transcript.Segment {
	for _, l := range transcriptLayouts {
		rows, err := doc.QueryRows(ctx, l.row, l.timestamp, l.text)
		if err != nil || len(rows) == 0 {
			continue
		}
		if segs := segmentsFromRows(rows); len(segs) > 0 {
			return segs
		}
	}
	return nil
}

// segmentsFromRows converts [timestamp, text] rows, skipping rows whose
// timestamp does not parse or whose text is blank.
func segmentsFromRows(rows [][]string) []transcript.Segment {
	var out []transcript.Segment
	for _, r := range rows {
		if len(r) < 2 {
			continue
		}
		start, err := transcript.ParseTimestamp(r[0])
		if err != nil {
			continue
		}
		text := transcript.Clean(r[1])
		if text == "" {
			continue
		}
		out = append(out, transcript.Segment{Text: text, Start: start})
	}
	return out
}
