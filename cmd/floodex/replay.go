package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"floodex/internal/missionlog"
)

var (
	replayInput     string
	replaySpeed     float64
	replaySQLite    string
	replayPrintOnly bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded mission log",
	Long:  "replay feeds mission log entries from a JSONL file back into the configured sinks or STDOUT.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		writer, _, _, cleanup, err := newWriters("replay", "", replaySQLite, replayPrintOnly)
		if err != nil {
			return err
		}
		defer cleanup()
		return missionlog.ReplayFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to mission log file (JSONL)")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().StringVar(&replaySQLite, "sqlite", "", "Path to a SQLite mission log database to replay into")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print entries to STDOUT instead of writing to DB")
	replayCmd.MarkFlagRequired("input")
}
