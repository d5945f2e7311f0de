// Package selfplay runs a board to completion and records every turn.
package selfplay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/brensch/snakesaver/game"
	"github.com/brensch/snakesaver/logging"
)

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeWon    Outcome = "won"
	OutcomeLost   Outcome = "lost"
	OutcomeCapped Outcome = "capped"
)

// Progress is reported after every successful step.
type Progress struct {
	Turn   int
	Head   game.CellID
	Length int
	Ate    bool
}

type Options struct {
	// RunID labels the result. A random UUID is used when empty.
	RunID string
	// MaxSteps bounds the number of Advance calls. Zero means DefaultMaxSteps.
	MaxSteps   int
	OnProgress func(Progress)
	Logger     *slog.Logger
}

// Result is the full output of one run. History[0] is the board before any
// move; History[i] is the board after turn i. The move that ends a run
// (trapped or board full) adds no snapshot.
type Result struct {
	RunID     string
	Outcome   Outcome
	Turns     int
	FoodEaten int
	History   []game.BoardState
	Duration  time.Duration
}

// Final returns the last recorded snapshot.
func (r Result) Final() game.BoardState {
	if len(r.History) == 0 {
		return game.BoardState{Head: game.NoCell}
	}
	return r.History[len(r.History)-1]
}

// DefaultMaxSteps allows a generous number of moves per cell so that a
// snake wandering without finding food still terminates.
func DefaultMaxSteps(cells int) int {
	return max(100, 25*cells)
}

// Run advances b until it is won, lost or capped, snapshotting after every
// step. Trapped and board-full are normal endings; any other Advance error
// is returned as is, wrapped with the turn it happened on.
func Run(ctx context.Context, b *game.Board, opts Options) (Result, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps(b.Len())
	}
	res := Result{RunID: opts.RunID}
	if res.RunID == "" {
		res.RunID = uuid.NewString()
	}
	log = log.With("run", res.RunID)

	start := time.Now()
	res.History = append(res.History, b.Freeze(0))
	log.Info("run started", "cells", b.Len(), "length", b.SnakeLength(), "max_steps", maxSteps)

	for turn := 1; res.Outcome == ""; turn++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if turn > maxSteps {
			res.Outcome = OutcomeCapped
			break
		}

		step, err := b.Advance()
		if step.Ate {
			res.FoodEaten++
		}
		switch {
		case errors.Is(err, game.ErrTrapped):
			res.Outcome = OutcomeLost
			log.Debug("head trapped", "turn", turn, "head", b.Head())
			continue
		case errors.Is(err, game.ErrBoardFull):
			res.Outcome = OutcomeWon
			continue
		case err != nil:
			return Result{}, fmt.Errorf("advance turn %d: %w", turn, err)
		}

		res.History = append(res.History, b.Freeze(turn))
		log.Debug("advanced", "turn", turn, "head", step.Head, "ate", step.Ate)
		if opts.OnProgress != nil {
			opts.OnProgress(Progress{Turn: turn, Head: step.Head, Length: b.SnakeLength(), Ate: step.Ate})
		}
	}

	res.Turns = len(res.History) - 1
	res.Duration = time.Since(start)
	log.Info("run finished",
		"outcome", res.Outcome,
		"turns", res.Turns,
		"food", res.FoodEaten,
		"length", b.SnakeLength(),
		"took", res.Duration,
	)
	return res, nil
}
