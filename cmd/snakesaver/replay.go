package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/brensch/snakesaver/store"
	"github.com/brensch/snakesaver/viewer"
)

func newReplayCmd() *cobra.Command {
	var (
		dir     string
		delay   time.Duration
		noColor bool
	)
	cmd := &cobra.Command{
		Use:   "replay <file.parquet | run-id>",
		Short: "Play back an exported run",
		Long: `Plays back a run exported with "run --export". The argument is either a
parquet file or a run ID recorded in the export directory given by --dir.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.Resolve(dir, args[0])
			if err != nil {
				return err
			}
			history, meta, err := store.LoadRun(path)
			if err != nil {
				return err
			}

			in, out := cmd.InOrStdin(), cmd.OutOrStdout()
			opts := viewer.Options{FrameDelay: delay, Outcome: meta.Outcome}
			if interactive(in, out) {
				opts.Colour = !noColor
				return viewer.Play(cmd.Context(), in, out, history, opts)
			}
			return viewer.PlayPlain(cmd.Context(), out, history, opts)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Export directory used to look up run IDs")
	cmd.Flags().DurationVar(&delay, "delay", 100*time.Millisecond, "Delay between frames")
	cmd.Flags().BoolVar(&noColor, "no-colour", false, "Disable colour in interactive playback")
	return cmd
}
