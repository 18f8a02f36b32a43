package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	// Transcript acquisition.
	DefaultLanguage   string
	ConsolidateWindow time.Duration
	FetchTimeout      time.Duration
	FetchMaxBytes     int64
	FetchRPS          float64
	SettleWait        time.Duration
	BrowserEnabled    bool

	// Summarization collaborator.
	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int
	SummaryMaxChars    int

	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	HTTPClient    *http.Client
	BrowserClient *BrowserClient // nil = plain net/http transport
	LLMClient     *llm.Client    // nil = summarization disabled
}

var cfg = Config{
	DefaultLanguage:   "en",
	ConsolidateWindow: 30 * time.Second,
	FetchTimeout:      15 * time.Second,
	FetchMaxBytes:     4 << 20,
	SettleWait:        2500 * time.Millisecond,
	SummaryMaxChars:   60000,
	HTTPClient:        &http.Client{Timeout: 15 * time.Second},
}

// Cfg exposes the engine configuration for sub-packages (sources, browser).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
// Zero fields keep their defaults.
func Init(c Config) {
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = cfg.DefaultLanguage
	}
	if c.ConsolidateWindow <= 0 {
		c.ConsolidateWindow = cfg.ConsolidateWindow
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = cfg.FetchTimeout
	}
	if c.FetchMaxBytes <= 0 {
		c.FetchMaxBytes = cfg.FetchMaxBytes
	}
	if c.SettleWait <= 0 {
		c.SettleWait = cfg.SettleWait
	}
	if c.SummaryMaxChars <= 0 {
		c.SummaryMaxChars = cfg.SummaryMaxChars
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.FetchTimeout}
	}
	cfg = c
	Cfg = &cfg
	initLimiter(c.FetchRPS)
}
