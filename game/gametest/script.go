// Package gametest provides helpers for driving a game.Board deterministically in tests.
package gametest

import (
	"fmt"
	"strings"

	"github.com/brensch/snakesaver/game"
)

// Script is a game.Rand that replays fixed picks. Once the picks run out it
// always returns 0.
type Script struct {
	picks []int
	calls []int
}

func NewScript(picks ...int) *Script {
	return &Script{picks: picks}
}

// Intn returns the next scripted pick. It panics if the pick does not fit n,
// which means the test expected a different set of options.
func (s *Script) Intn(n int) int {
	s.calls = append(s.calls, n)
	if len(s.picks) == 0 {
		return 0
	}
	v := s.picks[0]
	s.picks = s.picks[1:]
	if v < 0 || v >= n {
		panic(fmt.Sprintf("gametest: scripted pick %d out of range for Intn(%d)", v, n))
	}
	return v
}

// Calls returns the n passed to each Intn call so far.
func (s *Script) Calls() []int {
	out := make([]int, len(s.calls))
	copy(out, s.calls)
	return out
}

// Remaining reports how many scripted picks have not been consumed.
func (s *Script) Remaining() int { return len(s.picks) }

// Dump draws a snapshot for t.Logf: H head, S snake, F food, . empty.
func Dump(state game.BoardState) string {
	w, h := state.Bounds()
	grid := make([][]byte, h)
	for y := range grid {
		grid[y] = []byte(strings.Repeat(".", int(w)))
	}
	for _, c := range state.Cells {
		switch {
		case c.ID == state.Head:
			grid[c.Coord.Y][c.Coord.X] = 'H'
		case c.IsFood && c.IsSnake:
			grid[c.Coord.Y][c.Coord.X] = '*'
		case c.IsFood:
			grid[c.Coord.Y][c.Coord.X] = 'F'
		case c.IsSnake:
			grid[c.Coord.Y][c.Coord.X] = 'S'
		}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Turn=%d Head=%d Food=%d\n", state.Turn, state.Head, state.Food())
	for _, row := range grid {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}
