package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/brensch/snakesaver/config"
	"github.com/brensch/snakesaver/logging"
	"github.com/brensch/snakesaver/metrics"
	"github.com/brensch/snakesaver/selfplay"
	"github.com/brensch/snakesaver/store"
	"github.com/brensch/snakesaver/viewer"
)

type runFlags struct {
	configPath  string
	seed        int64
	sets        []string
	exportDir   string
	noPlayback  bool
	metricsFile string
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate one run and play it back",
		Long: `Simulates a run to completion, then plays it back, prints a summary and
optionally exports the history and metrics.

Settings come from defaults, then --config, then SNAKESAVER_* environment
variables, then --set key=value and the dedicated flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := append([]string(nil), f.sets...)
			flags := cmd.Flags()
			if flags.Changed("seed") {
				overrides = append(overrides, "seed="+strconv.FormatInt(f.seed, 10))
			}
			if flags.Changed("export") {
				overrides = append(overrides, "export.dir="+f.exportDir)
			}
			if flags.Changed("metrics-file") {
				overrides = append(overrides, "metrics.file="+f.metricsFile)
			}
			if f.noPlayback {
				overrides = append(overrides, "playback.enabled=false")
			}

			cfg, err := config.Load(f.configPath, overrides)
			if err != nil {
				return err
			}
			return runOnce(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	flags.Int64Var(&f.seed, "seed", 0, "Random seed, 0 picks one from the clock")
	flags.StringArrayVar(&f.sets, "set", nil, "Override a config key, e.g. --set board.dimensions.width=20")
	flags.StringVar(&f.exportDir, "export", "", "Directory to export the run history to as parquet")
	flags.BoolVar(&f.noPlayback, "no-playback", false, "Skip playback and only print the summary")
	flags.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics for the run to this textfile")
	return cmd
}

func runOnce(ctx context.Context, cfg config.Config, in io.Reader, out, errOut io.Writer) error {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, err := logging.New(errOut, cfg.Log.Format, level)
	if err != nil {
		return err
	}

	rng, seed := selfplay.NewRand(cfg.Seed)
	b, err := selfplay.NewGame(cfg.Board, rng)
	if err != nil {
		return err
	}
	logger.Info("board ready",
		"topology", cfg.Board.Topology,
		"cells", b.Len(),
		"seed", seed,
	)

	res, err := selfplay.Run(ctx, b, selfplay.Options{MaxSteps: cfg.MaxSteps, Logger: logger})
	if err != nil {
		return err
	}

	if cfg.Export.Dir != "" {
		path, err := store.ExportRun(cfg.Export.Dir, store.RunMeta{
			RunID:    res.RunID,
			Topology: cfg.Board.Topology,
			Outcome:  string(res.Outcome),
		}, res.History)
		if err != nil {
			return fmt.Errorf("export run: %w", err)
		}
		logger.Info("exported run", "path", path, "turns", len(res.History))
	}

	if cfg.Metrics.File != "" {
		rec := metrics.New()
		rec.ObserveRun(metrics.Run{
			Outcome:     string(res.Outcome),
			Turns:       res.Turns,
			FoodEaten:   res.FoodEaten,
			FinalLength: len(res.Final().Snake()),
			Duration:    res.Duration,
		})
		if err := rec.WriteTextfile(cfg.Metrics.File); err != nil {
			return err
		}
		logger.Debug("wrote metrics", "path", cfg.Metrics.File)
	}

	tty := interactive(in, out)
	if cfg.Playback.Enabled {
		opts := viewer.Options{
			FrameDelay: cfg.Playback.FrameDelay,
			Colour:     cfg.Playback.Colour && tty,
			Outcome:    string(res.Outcome),
		}
		if err := playback(ctx, logger, in, out, tty, res, opts); err != nil {
			return err
		}
	}

	summary, err := renderMarkdown(res.Markdown(), tty)
	if err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	_, err = io.WriteString(out, summary)
	return err
}

func playback(ctx context.Context, logger *slog.Logger, in io.Reader, out io.Writer, tty bool, res selfplay.Result, opts viewer.Options) error {
	if tty {
		return viewer.Play(ctx, in, out, res.History, opts)
	}
	logger.Debug("output is not a terminal, playing frames as text")
	return viewer.PlayPlain(ctx, out, res.History, opts)
}
