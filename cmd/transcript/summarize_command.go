package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
)

func newSummarizeCommand(ctx *commandContext) *cobra.Command {
	var lang string
	var focus string

	cmd := &cobra.Command{
		Use:   "summarize <url-or-id>",
		Short: "Summarize a video's transcript with the configured LLM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := ctx.fetchOptions(toolutil.NormLang(lang))
			if err != nil {
				return err
			}
			res, err := sources.FetchYouTubeTranscript(cmd.Context(), args[0], opts)
			if err != nil {
				return fmt.Errorf("%s", toolutil.UserMessage(err))
			}
			summary, err := engine.Summarize(cmd.Context(), res.Title, res.Text, focus)
			if err != nil {
				return fmt.Errorf("transcript fetched but summarization failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Preferred caption language (default $TRANSCRIPT_LANG)")
	cmd.Flags().StringVar(&focus, "focus", "", "Topic to emphasize in the summary")
	return cmd
}
