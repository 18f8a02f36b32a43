package ytserver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

func registerSeek(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_seek",
		Description: "Convert a transcript timestamp such as 4:05 or 1:02:03 to seconds. With a video url, also returns a link that starts playback at that moment.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, input engine.SeekInput) (*mcp.CallToolResult, engine.SeekOutput, error) {
		if input.Timestamp == "" {
			return nil, engine.SeekOutput{}, errors.New("timestamp is required")
		}
		out, err := seek(input.Timestamp, input.URL)
		if err != nil {
			return nil, engine.SeekOutput{}, err
		}
		return nil, out, nil
	})
}

// seek resolves a display timestamp and, when url names a video, a
// watch link starting at it.
func seek(timestamp, url string) (engine.SeekOutput, error) {
	secs, err := transcript.ParseTimestamp(timestamp)
	if err != nil {
		return engine.SeekOutput{}, err
	}
	out := engine.SeekOutput{Seconds: secs}
	if url == "" {
		return out, nil
	}
	id, err := transcript.ExtractVideoID(url)
	if err != nil {
		return engine.SeekOutput{}, err
	}
	out.Link = fmt.Sprintf("https://www.youtube.com/watch?v=%s&t=%ds", id, int64(math.Floor(secs)))
	return out, nil
}
