package sources

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// fakeDocument renders its rows once the show-transcript button has been
// clicked clicksNeeded times.
type fakeDocument struct {
	mu           sync.Mutex
	rows         [][]string
	rowSelector  string
	clicksNeeded int
	clicks       map[string]int
	buttons      map[string]bool
}

func (d *fakeDocument) QueryRows(_ context.Context, rowSelector string, _ ...string) ([][]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if rowSelector != d.rowSelector {
		return nil, nil
	}
	if d.clicks[showTranscriptSelectors[0]] < d.clicksNeeded {
		return nil, nil
	}
	return d.rows, nil
}

func (d *fakeDocument) Click(_ context.Context, selector string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.buttons[selector] {
		return false, nil
	}
	if d.clicks == nil {
		d.clicks = map[string]int{}
	}
	d.clicks[selector]++
	return true, nil
}

func openFake(d Document) DocumentOpener {
	return func(context.Context, *Session) (Document, func(), error) {
		return d, func() {}, nil
	}
}

func TestDocumentStrategyOpensPanel(t *testing.T) {
	doc := &fakeDocument{
		rowSelector:  "transcript-segment-view-model",
		clicksNeeded: 1,
		rows:         [][]string{{"0:01", "one"}, {"bad", "skipped"}, {"0:09", "  "}, {"1:10", "two &amp; three"}},
		buttons: map[string]bool{
			expandDescriptionSelectors[1]: true,
			showTranscriptSelectors[0]:    true,
		},
	}
	f := newFakeYouTube(t)
	segs, err := documentStrategy(f.session(), openFake(doc)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []transcript.Segment{
		{Text: "one", Start: 1},
		{Text: "two & three", Start: 70},
	}, segs)
	assert.Equal(t, 1, doc.clicks[expandDescriptionSelectors[1]])
	assert.Equal(t, 1, doc.clicks[showTranscriptSelectors[0]])
}

func TestDocumentStrategyRetriesClickOnce(t *testing.T) {
	doc := &fakeDocument{
		rowSelector:  "ytd-transcript-segment-renderer",
		clicksNeeded: 2,
		rows:         [][]string{{"0:00", "late"}},
		buttons:      map[string]bool{showTranscriptSelectors[0]: true},
	}
	f := newFakeYouTube(t)
	segs, err := documentStrategy(f.session(), openFake(doc)).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, 2, doc.clicks[showTranscriptSelectors[0]])
}

func TestDocumentStrategyGivesUp(t *testing.T) {
	doc := &fakeDocument{
		rowSelector:  "ytd-transcript-segment-renderer",
		clicksNeeded: 3,
		rows:         [][]string{{"0:00", "never"}},
		buttons:      map[string]bool{showTranscriptSelectors[1]: true},
	}
	f := newFakeYouTube(t)
	segs, err := documentStrategy(f.session(), openFake(doc)).Run(context.Background())
	assert.Error(t, err)
	assert.Empty(t, segs)
	assert.Equal(t, 2, doc.clicks[showTranscriptSelectors[1]])
}

func TestDocumentStrategyOpenFails(t *testing.T) {
	f := newFakeYouTube(t)
	open := func(context.Context, *Session) (Document, func(), error) {
		return nil, nil, errors.New("browser unavailable")
	}
	_, err := documentStrategy(f.session(), open).Run(context.Background())
	assert.ErrorContains(t, err, "browser unavailable")

	_, err = documentStrategy(f.session(), nil).Run(context.Background())
	assert.Error(t, err)
}

func TestStaticDocumentQueryRows(t *testing.T) {
	doc, err := NewStaticDocument(`<div class="row"><b class="t"> 0:01 </b><i class="x">a</i></div>
<div class="row"><b class="t">0:02</b></div>`)
	require.NoError(t, err)
	rows, err := doc.QueryRows(context.Background(), "div.row", ".t", ".x")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"0:01", "a"}, {"0:02", ""}}, rows)

	ok, err := doc.Click(context.Background(), "div.row")
	assert.NoError(t, err)
	assert.False(t, ok)
}
