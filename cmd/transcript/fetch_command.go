package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var lang string
	var output string

	cmd := &cobra.Command{
		Use:   "fetch <url-or-id>",
		Short: "Print the consolidated transcript of a video",
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
			out := cmd.OutOrStdout()

			switch strings.ToLower(output) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(engine.OutputFromResult(res, true))
			case "segments":
				fmt.Fprintln(out, renderSegments(res.Segments))
				return nil
			case "text", "":
				if res.Title != "" {
					fmt.Fprintf(out, "# %s\n", res.Title)
				}
				fmt.Fprintf(out, "# %s via %s (%s)\n\n", res.VideoID, res.Strategy, res.Language)
				fmt.Fprintln(out, res.Text)
				return nil
			}
			return fmt.Errorf("unknown output %q (want text, json or segments)", output)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Preferred caption language (default $TRANSCRIPT_LANG)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output: text, json or segments")
	return cmd
}

func renderSegments(segs []transcript.Segment) string {
	rows := make([][]string, 0, len(segs))
	for _, s := range segs {
		rows = append(rows, []string{
			transcript.FormatTimestamp(s.Start),
			fmt.Sprintf("%.2f", s.Duration),
			s.Text,
		})
	}
	return renderTable([]string{"Start", "Dur", "Text"}, rows, []columnAlignment{alignRight, alignRight, alignLeft})
}
