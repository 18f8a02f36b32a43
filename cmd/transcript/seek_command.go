package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

func newSeekCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seek <timestamp> [url-or-id]",
		Short: "Convert a transcript timestamp to seconds, or to a deep link",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			secs, err := transcript.ParseTimestamp(args[0])
			if err != nil {
				return err
			}
			if len(args) == 1 {
				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(secs, 'f', -1, 64))
				return nil
			}
			id, err := transcript.ExtractVideoID(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "https://www.youtube.com/watch?v=%s&t=%ds\n", id, int64(secs))
			return nil
		},
	}
}
