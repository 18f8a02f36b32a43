package ytserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
)

const (
	batchMaxVideos      = 10
	batchDefaultMaxChar = 8000
	batchConcurrency    = 3
)

func registerTranscript(server *mcp.Server, opts Options) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript",
		Description: "Fetch the time-aligned transcript of a YouTube video. Tries the Innertube player, the rendered transcript panel, the public caption listing, and direct caption URLs in turn. Returns the transcript as [M:SS] lines merged into 30-second chunks, plus the video title, caption language, and which method succeeded.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.TranscriptInput) (*mcp.CallToolResult, engine.TranscriptOutput, error) {
		if input.URL == "" {
			return nil, engine.TranscriptOutput{}, errors.New("url is required")
		}
		res, err := sources.FetchYouTubeTranscript(ctx, input.URL, opts.fetchOptions(toolutil.NormLang(input.Language)))
		if err != nil {
			slog.Info("youtube_transcript: failed", slog.String("url", input.URL), slog.Any("error", err))
			return nil, engine.TranscriptOutput{}, errors.New(toolutil.UserMessage(err))
		}
		return nil, engine.OutputFromResult(res, input.Segments), nil
	})
}

func registerTranscriptBatch(server *mcp.Server, opts Options) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript_batch",
		Description: fmt.Sprintf("Fetch transcripts for up to %d YouTube videos at once. Each video is acquired independently; failures are reported per video without failing the batch. Transcripts are truncated to max_chars.", batchMaxVideos),
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.BatchTranscriptInput) (*mcp.CallToolResult, engine.BatchTranscriptOutput, error) {
		if len(input.URLs) == 0 {
			return nil, engine.BatchTranscriptOutput{}, errors.New("urls is required")
		}
		if len(input.URLs) > batchMaxVideos {
			return nil, engine.BatchTranscriptOutput{}, fmt.Errorf("at most %d urls per call", batchMaxVideos)
		}
		maxChars := input.MaxChars
		if maxChars <= 0 {
			maxChars = batchDefaultMaxChar
		}

		items := sources.FetchTranscriptsParallel(ctx, input.URLs, batchConcurrency, opts.fetchOptions(toolutil.NormLang(input.Language)))
		out := engine.BatchTranscriptOutput{Items: make([]engine.BatchTranscriptItem, len(items))}
		for i, it := range items {
			item := engine.BatchTranscriptItem{Input: it.Input}
			if it.Err != nil {
				item.Error = toolutil.UserMessage(it.Err)
			} else {
				item.VideoID = it.Result.VideoID
				item.Title = it.Result.Title
				item.Strategy = it.Result.Strategy
				item.Transcript = engine.TruncateLines(it.Result.Text, maxChars)
			}
			out.Items[i] = item
		}
		return nil, out, nil
	})
}

func registerTracks(server *mcp.Server, opts Options) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_tracks",
		Description: "List the caption tracks (language, name, auto-generated or not) that YouTube's public caption listing advertises for a video.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.TracksInput) (*mcp.CallToolResult, engine.TracksOutput, error) {
		if input.URL == "" {
			return nil, engine.TracksOutput{}, errors.New("url is required")
		}
		tracks, err := sources.ListTracks(ctx, input.URL, opts.Endpoints)
		if err != nil {
			return nil, engine.TracksOutput{}, errors.New(toolutil.UserMessage(err))
		}
		id, _ := transcript.ExtractVideoID(input.URL)
		return nil, engine.TracksOutput{VideoID: id, Tracks: engine.TrackInfos(tracks)}, nil
	})
}
