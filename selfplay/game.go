package selfplay

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brensch/snakesaver/config"
	"github.com/brensch/snakesaver/game"
	"github.com/brensch/snakesaver/topology"
)

// NewRand returns a source for seed. A zero seed is replaced by the current
// time; the seed actually used is returned so the run can be repeated.
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// NewGame builds the configured topology, places the initial snake and the
// first food. Any failure here is a setup error and no run should start.
func NewGame(cfg config.BoardConfig, rng game.Rand) (*game.Board, error) {
	g, err := topology.Build(cfg.Topology, cfg.Dimensions.Width, cfg.Dimensions.Height)
	if err != nil {
		return nil, fmt.Errorf("build topology: %w", err)
	}
	b, err := game.NewBoard(g, rng)
	if err != nil {
		return nil, err
	}
	if err := b.SetInitialSnake(cfg.InitialSnakeLength); err != nil {
		return nil, fmt.Errorf("place initial snake: %w", err)
	}
	if err := b.AssignFood(); err != nil {
		return nil, fmt.Errorf("place first food: %w", err)
	}
	return b, nil
}
