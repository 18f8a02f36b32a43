package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// ErrSummarizerDisabled is returned when no LLM client is configured.
var ErrSummarizerDisabled = errors.New("summarizer not configured (set LLM_API_KEY)")

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// BuildSummaryPrompt renders the summary prompt, truncating the transcript
// at a line boundary to maxChars runes.
func BuildSummaryPrompt(title, transcriptText, focus string, maxChars int) string {
	if maxChars > 0 {
		transcriptText = TruncateLines(transcriptText, maxChars)
	}
	if title == "" {
		title = "(untitled)"
	}
	focusSection := ""
	if focus = strings.TrimSpace(focus); focus != "" {
		focusSection = fmt.Sprintf(summaryFocusLine, focus)
	}
	return fmt.Sprintf(summaryPrompt, title, focusSection, transcriptText)
}

// Summarize hands the canonical transcript text and title to the LLM and
// returns its free-form answer. Transient failures are retried a few
// times; the transcript is never re-acquired here.
func Summarize(ctx context.Context, title, transcriptText, focus string) (string, error) {
	if cfg.LLMClient == nil {
		return "", ErrSummarizerDisabled
	}
	prompt := BuildSummaryPrompt(title, transcriptText, focus, cfg.SummaryMaxChars)

	operation := func() (string, error) {
		metrics.SummaryCalls.Add(1)
		out, err := cfg.LLMClient.Complete(ctx, summarySystemPrompt, prompt)
		if err != nil {
			metrics.SummaryErrors.Add(1)
			if ctx.Err() != nil {
				return "", backoff.Permanent(ctx.Err())
			}
			slog.Debug("summarize: llm call failed", slog.Any("error", err))
			return "", err
		}
		out = stripFences(out)
		if out == "" {
			return "", errors.New("empty summary")
		}
		return out, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 8 * time.Second

	summary, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(3), backoff.WithMaxElapsedTime(90*time.Second))
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return summary, nil
}
