// go_transcript: YouTube transcript MCP server.
//
// Exposes transcript acquisition, summarization and timestamp tools:
// youtube_transcript, youtube_transcript_batch, youtube_tracks,
// youtube_summarize, youtube_seek.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"log/slog"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/browser"
	"github.com/anatolykoptev/go_transcript/internal/ytserver"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	initEngine()

	slog.Info("starting go_transcript",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_transcript",
		Version: version,
	}, nil)

	var opts ytserver.Options
	if engine.Cfg.BrowserEnabled {
		b, err := browser.Launch(engine.Cfg.FetchTimeout * 2)
		if err != nil {
			slog.Warn("headless browser unavailable, document strategy reads static HTML", slog.Any("error", err))
		} else {
			defer b.Close()
			opts.OpenDocument = b.Opener()
			slog.Info("headless browser ready")
		}
	}

	ytserver.RegisterTools(server, opts)
	slog.Info("tools registered", slog.Int("count", 5))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_transcript",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 300 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	engine.Init(engine.ConfigFromEnv())

	cacheTTL := env.Duration("CACHE_TTL", 30*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, engine.Cfg.CacheMaxEntries, engine.Cfg.CacheCleanupInterval)
}
