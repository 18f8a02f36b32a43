// Package browser provides a live, JavaScript-rendered Document backed by
// a headless Chromium driven through go-rod.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
)

// Browser is a headless Chromium shared by acquisitions. Each Open gets
// its own page, so concurrent acquisitions do not share document state.
type Browser struct {
	launcher *launcher.Launcher
	browser  *rod.Browser

	// PageTimeout bounds every operation on a page, navigation included.
	PageTimeout time.Duration

	mu     sync.Mutex
	closed bool
}

// Launch starts a headless browser and connects to it.
func Launch(pageTimeout time.Duration) (*Browser, error) {
	l := launcher.New().Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	if pageTimeout <= 0 {
		pageTimeout = 30 * time.Second
	}
	return &Browser{launcher: l, browser: b, PageTimeout: pageTimeout}, nil
}

// Close shuts the browser down. It is safe to call more than once.
func (b *Browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	if err := b.browser.Close(); err != nil {
		slog.Debug("browser: close", slog.Any("err", err))
	}
	b.launcher.Cleanup()
}

// Open navigates a fresh page to url and waits for it to load and for
// network activity to settle.
func (b *Browser) Open(ctx context.Context, url string) (*Page, error) {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("browser closed")
	}

	p, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("new page: %w", err)
	}
	page := p.Context(ctx).Timeout(b.PageTimeout)

	if err := page.Navigate(url); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("wait load: %w", err)
	}
	waitIdle := page.WaitRequestIdle(time.Second, []string{}, []string{}, nil)
	waitIdle()

	return &Page{page: page, raw: p}, nil
}

// Opener adapts the browser to the document strategy: every acquisition
// opens the video's watch page in its own tab, closed on release.
func (b *Browser) Opener() sources.DocumentOpener {
	return func(ctx context.Context, s *sources.Session) (sources.Document, func(), error) {
		p, err := b.Open(ctx, s.WatchURL())
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	}
}

// Page is one rendered tab. It satisfies sources.Document.
type Page struct {
	page *rod.Page // timeout-bound view used for queries
	raw  *rod.Page
}

// QueryRows reads the text of the cells of every matching row. It does
// not wait for rows to appear; callers poll.
func (p *Page) QueryRows(ctx context.Context, rowSelector string, cellSelectors ...string) ([][]string, error) {
	rows, err := p.page.Context(ctx).Elements(rowSelector)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", rowSelector, err)
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(cellSelectors))
		for i, sel := range cellSelectors {
			found, err := row.Elements(sel)
			if err != nil || len(found) == 0 {
				continue
			}
			text, err := found.First().Text()
			if err != nil {
				continue
			}
			cells[i] = strings.TrimSpace(text)
		}
		out = append(out, cells)
	}
	return out, nil
}

// Click clicks the first element matching selector through the DOM,
// which also reaches elements that are rendered but scrolled away.
func (p *Page) Click(ctx context.Context, selector string) (bool, error) {
	found, err := p.page.Context(ctx).Elements(selector)
	if err != nil {
		return false, fmt.Errorf("query %s: %w", selector, err)
	}
	if len(found) == 0 {
		return false, nil
	}
	if _, err := found.First().Eval(`() => this.click()`); err != nil {
		return false, fmt.Errorf("click %s: %w", selector, err)
	}
	return true, nil
}

// Close closes the tab.
func (p *Page) Close() {
	if err := p.raw.Close(); err != nil {
		slog.Debug("browser: close page", slog.Any("err", err))
	}
}

var _ sources.Document = (*Page)(nil)
