package sources

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is the page the document strategy reads from: a read-only
// query plus one-shot click triggers. A live browser page and a static
// HTML snapshot both satisfy it.
type Document interface {
	// QueryRows returns, for each element matching rowSelector, the
	// trimmed text of the first descendant matching each cell selector.
	// Missing cells are "".
	QueryRows(ctx context.Context, rowSelector string, cellSelectors ...string) ([][]string, error)

	// Click triggers the first element matching selector. It reports
	// false when nothing matched.
	Click(ctx context.Context, selector string) (bool, error)
}

// StaticDocument is a Document over a fixed HTML snapshot. Clicks never
// match since nothing can render in response.
type StaticDocument struct {
	doc *goquery.Document
}

// NewStaticDocument parses html into a StaticDocument.
func NewStaticDocument(html string) (*StaticDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return &StaticDocument{doc: doc}, nil
}

func (d *StaticDocument) QueryRows(_ context.Context, rowSelector string, cellSelectors ...string) ([][]string, error) {
	var rows [][]string
	d.doc.Find(rowSelector).Each(func(_ int, s *goquery.Selection) {
		cells := make([]string, len(cellSelectors))
		for i, sel := range cellSelectors {
			cells[i] = strings.TrimSpace(s.Find(sel).First().Text())
		}
		rows = append(rows, cells)
	})
	return rows, nil
}

func (d *StaticDocument) Click(context.Context, string) (bool, error) {
	return false, nil
}
