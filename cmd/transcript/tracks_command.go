package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tracks <url-or-id>",
		Short: "List caption tracks advertised for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracks, err := sources.ListTracks(cmd.Context(), args[0], ctx.endpoints())
			if err != nil {
				return fmt.Errorf("%s", toolutil.UserMessage(err))
			}
			if len(tracks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No caption tracks listed.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTracks(tracks))
			return nil
		},
	}
}

func renderTracks(tracks []transcript.CaptionTrack) string {
	rows := make([][]string, 0, len(tracks))
	for _, t := range tracks {
		kind := "manual"
		if t.IsAuto() {
			kind = "auto"
		}
		rows = append(rows, []string{t.LanguageCode, t.Name, kind, t.TrackID})
	}
	return renderTable([]string{"Lang", "Name", "Kind", "ID"}, rows, nil)
}
