package ytserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
)

func registerSummarize(server *mcp.Server, opts Options) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_summarize",
		Description: "Summarize a YouTube video from its transcript. Fetches the transcript the same way as youtube_transcript, then asks the configured LLM for a structured summary with timestamped key points. Optional focus narrows the summary to a topic.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.SummarizeInput) (*mcp.CallToolResult, engine.SummarizeOutput, error) {
		if input.URL == "" {
			return nil, engine.SummarizeOutput{}, errors.New("url is required")
		}
		videoID, err := transcript.ExtractVideoID(input.URL)
		if err != nil {
			return nil, engine.SummarizeOutput{}, errors.New(toolutil.UserMessage(err))
		}
		lang := toolutil.NormLang(input.Language)

		cacheKey := engine.CacheKey("youtube_summarize", videoID, lang, strings.TrimSpace(input.Focus))
		if out, ok := toolutil.CacheLoadJSON[engine.SummarizeOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		res, err := sources.FetchYouTubeTranscript(ctx, videoID, opts.fetchOptions(lang))
		if err != nil {
			return nil, engine.SummarizeOutput{}, errors.New(toolutil.UserMessage(err))
		}

		var summary string
		err = engine.TrackOperation(ctx, "youtube_summarize", func(ctx context.Context) error {
			var serr error
			summary, serr = engine.Summarize(ctx, res.Title, res.Text, input.Focus)
			return serr
		})
		if err != nil {
			slog.Warn("youtube_summarize: llm failed", slog.String("video", videoID), slog.Any("error", err))
			return nil, engine.SummarizeOutput{}, fmt.Errorf("transcript fetched but summarization failed: %w", err)
		}

		out := engine.SummarizeOutput{VideoID: res.VideoID, Title: res.Title, Summary: summary}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}
