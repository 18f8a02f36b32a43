package engine

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
)

// ConfigFromEnv reads the engine configuration from the environment and
// builds the outbound clients (stealth transport, LLM). Shared by the MCP
// server and the CLI.
func ConfigFromEnv() Config {
	c := Config{
		DefaultLanguage:      env.Str("TRANSCRIPT_LANG", "en"),
		ConsolidateWindow:    env.Duration("TRANSCRIPT_WINDOW", 30*time.Second),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 15*time.Second),
		FetchMaxBytes:        int64(env.Int("FETCH_MAX_BYTES", 4<<20)),
		FetchRPS:             env.Float("FETCH_RPS", 5),
		SettleWait:           env.Duration("SETTLE_WAIT", 2500*time.Millisecond),
		BrowserEnabled:       strings.EqualFold(env.Str("BROWSER_ENABLED", "false"), "true"),
		LLMAPIKey:            env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:   env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:           env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:             env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:       env.Float("LLM_TEMPERATURE", 0.1),
		LLMMaxTokens:         env.Int("LLM_MAX_TOKENS", 16384),
		SummaryMaxChars:      env.Int("SUMMARY_MAX_CHARS", 60000),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
	}
	c.HTTPClient = &http.Client{
		Timeout: c.FetchTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}

	if !strings.EqualFold(env.Str("STEALTH_ENABLED", "true"), "true") {
		slog.Info("stealth transport disabled, using plain http")
		c.LLMClient = newLLMClient(c)
		return c
	}

	var opts []stealth.ClientOption
	opts = append(opts, stealth.WithTimeout(stealthTimeout(c.FetchTimeout)))

	if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Error("stealth client init failed, using plain http", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
		slog.Info("stealth browser client initialized")
	}

	c.LLMClient = newLLMClient(c)
	return c
}

// stealthTimeout converts the fetch timeout to the whole seconds the
// stealth client takes, never below one.
func stealthTimeout(d time.Duration) int {
	if secs := int(d.Seconds()); secs > 1 {
		return secs
	}
	return 1
}

// newLLMClient returns nil when no API key is configured, which disables
// summarization.
func newLLMClient(c Config) *llm.Client {
	if c.LLMAPIKey == "" {
		return nil
	}
	return llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	)
}
