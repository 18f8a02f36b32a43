package sources

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// statusError is a non-2xx upstream response.
type statusError struct {
	Status  int
	Snippet string
}

func (e *statusError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Snippet)
}

// fetch performs one upstream request and returns the body of a 2xx
// response. There is no retry: a failed call is simply a strategy (or
// format variant) that contributed nothing.
func fetch(ctx context.Context, method, target string, headers map[string]string, body []byte) ([]byte, error) {
	if err := engine.WaitFetchSlot(ctx); err != nil {
		return nil, err
	}
	engine.IncrFetchRequests()

	data, status, err := doFetch(ctx, method, target, headers, body)
	if err != nil {
		engine.IncrFetchErrors()
		return nil, err
	}
	if status < 200 || status > 299 {
		engine.IncrFetchErrors()
		snippet := engine.TruncateRunes(string(bytes.TrimSpace(data)), 256, "...")
		return nil, &statusError{Status: status, Snippet: snippet}
	}
	return data, nil
}

func doFetch(ctx context.Context, method, target string, headers map[string]string, body []byte) ([]byte, int, error) {
	maxBytes := engine.Cfg.FetchMaxBytes

	if bc := engine.Cfg.BrowserClient; bc != nil {
		var r io.Reader
		if body != nil {
			r = bytes.NewReader(body)
		}
		merged := engine.ChromeHeaders()
		for k, v := range headers {
			merged[k] = v
		}
		var (
			data   []byte
			status int
		)
		err := awaitCtx(ctx, func() error {
			var doErr error
			data, _, status, doErr = bc.Do(method, target, merged, r)
			return doErr
		})
		if err != nil {
			return nil, 0, fmt.Errorf("stealth %s: %w", method, err)
		}
		if maxBytes > 0 && int64(len(data)) > maxBytes {
			data = data[:maxBytes]
		}
		return data, status, nil
	}

	ctx, cancel := context.WithTimeout(ctx, engine.Cfg.FetchTimeout)
	defer cancel()

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, r)
	if err != nil {
		return nil, 0, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := engine.Cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var rd io.Reader = resp.Body
	if maxBytes > 0 {
		rd = io.LimitReader(resp.Body, maxBytes)
	}
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return data, resp.StatusCode, nil
}

// awaitCtx runs fn, which cannot be cancelled, and returns early with the
// context error if ctx ends first. fn keeps running in the background
// until its own timeout; its results are dropped.
func awaitCtx(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// getText GETs target and returns the body as text.
func getText(ctx context.Context, target string) (string, error) {
	data, err := fetch(ctx, http.MethodGet, target, map[string]string{
		"accept":     "*/*",
		"user-agent": engine.RandomUserAgent(),
	}, nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// getHTML GETs a page with browser-like HTML headers.
func getHTML(ctx context.Context, target string) (string, error) {
	data, err := fetch(ctx, http.MethodGet, target, map[string]string{
		"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"accept-language": "en-US,en;q=0.9",
		"user-agent":      engine.RandomUserAgent(),
	}, nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
