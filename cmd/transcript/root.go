package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/browser"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
)

// commandContext holds flags and lazily initialised state shared by
// subcommands.
type commandContext struct {
	upstream   string
	useBrowser bool
	verbose    bool

	initialised bool
	browser     documentBrowser
	// launch starts the headless browser; nil means browser.Launch.
	launch func(pageTimeout time.Duration) (documentBrowser, error)
}

// documentBrowser is the part of *browser.Browser the CLI drives.
type documentBrowser interface {
	Opener() sources.DocumentOpener
	Close()
}

func launchRod(pageTimeout time.Duration) (documentBrowser, error) {
	b, err := browser.Launch(pageTimeout)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (c *commandContext) ensureEngine() {
	if c.initialised {
		return
	}
	c.initialised = true
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	engine.Init(engine.ConfigFromEnv())
}

// fetchOptions builds acquisition options from the global flags.
func (c *commandContext) fetchOptions(lang string) (sources.Options, error) {
	opts := sources.Options{Language: lang, Endpoints: c.endpoints()}
	if c.useBrowser {
		if c.browser == nil {
			launch := c.launch
			if launch == nil {
				launch = launchRod
			}
			b, err := launch(engine.Cfg.FetchTimeout * 2)
			if err != nil {
				return sources.Options{}, err
			}
			c.browser = b
		}
		opts.OpenDocument = c.browser.Opener()
	}
	return opts, nil
}

// endpoints points every upstream at --upstream when set.
func (c *commandContext) endpoints() *sources.Endpoints {
	if c.upstream == "" {
		return nil
	}
	base := strings.TrimRight(c.upstream, "/")
	return &sources.Endpoints{
		Player:        base + "/youtubei/v1/player",
		Next:          base + "/youtubei/v1/next",
		GetTranscript: base + "/youtubei/v1/get_transcript",
		Watch:         base + "/watch",
		TimedText:     base + "/api/timedtext",
	}
}

func (c *commandContext) close() {
	if c.browser != nil {
		c.browser.Close()
		c.browser = nil
	}
}

// execute runs cmd and then closes the browser, whether or not the
// command failed.
func execute(ctx context.Context, cc *commandContext, cmd *cobra.Command) error {
	defer cc.close()
	return cmd.ExecuteContext(ctx)
}

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "transcript",
		Short:         "Fetch, list and summarize YouTube transcripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx.ensureEngine()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.upstream, "upstream", "", "Base URL replacing https://www.youtube.com (testing and mirrors)")
	rootCmd.PersistentFlags().BoolVar(&ctx.useBrowser, "browser", false, "Render the watch page in headless Chromium for the document strategy")
	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Log strategy attempts to stderr")
	_ = rootCmd.PersistentFlags().MarkHidden("upstream")

	rootCmd.AddCommand(newFetchCommand(ctx))
	rootCmd.AddCommand(newTracksCommand(ctx))
	rootCmd.AddCommand(newSummarizeCommand(ctx))
	rootCmd.AddCommand(newSeekCommand())

	return rootCmd
}
