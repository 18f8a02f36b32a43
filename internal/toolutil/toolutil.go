// Package toolutil provides shared helper functions for go_transcript MCP tools.
package toolutil

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// NormLang normalises a language field: empty string → configured default.
func NormLang(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return engine.Cfg.DefaultLanguage
	}
	return lang
}

// CacheLoadJSON tries to load a cached value of type T from the engine cache.
// Returns the decoded value and true on hit; zero value and false on miss or decode error.
func CacheLoadJSON[T any](ctx context.Context, key string) (T, bool) {
	var zero T
	cached, ok := engine.CacheGet(ctx, key)
	if !ok {
		return zero, false
	}
	var out T
	if err := json.Unmarshal(cached, &out); err != nil {
		return zero, false
	}
	return out, true
}

// CacheStoreJSON marshals v and stores it in the engine cache.
func CacheStoreJSON[T any](ctx context.Context, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	engine.CacheSet(ctx, key, data)
}

// UserMessage maps an acquisition error to the text shown to the caller.
// Missing captions and unusable input get actionable wording distinct from
// transport problems.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, transcript.ErrMalformedIdentifier):
		return "not a YouTube video URL or id: " + err.Error()
	case errors.Is(err, transcript.ErrTranscriptUnavailable):
		return "this video has no transcript available (no captions found by any method)"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "request timed out or was cancelled before a transcript was found; try again"
	}
	return "could not reach YouTube: " + err.Error()
}
