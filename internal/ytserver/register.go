package ytserver

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
)

// Options carry what the tools need beyond engine.Cfg.
type Options struct {
	// OpenDocument backs the document strategy. nil = static watch page.
	OpenDocument sources.DocumentOpener
	// Endpoints overrides the upstream URLs. nil = production.
	Endpoints *sources.Endpoints
	Logger    *slog.Logger
}

func (o Options) fetchOptions(lang string) sources.Options {
	return sources.Options{
		Language:     lang,
		Endpoints:    o.Endpoints,
		Logger:       o.Logger,
		OpenDocument: o.OpenDocument,
	}
}

// RegisterTools registers the YouTube transcript tools on the given MCP server:
// youtube_transcript, youtube_transcript_batch, youtube_tracks,
// youtube_summarize, youtube_seek.
func RegisterTools(server *mcp.Server, opts Options) {
	registerTranscript(server, opts)
	registerTranscriptBatch(server, opts)
	registerTracks(server, opts)
	registerSummarize(server, opts)
	registerSeek(server)
}
