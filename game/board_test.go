package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/snakesaver/game"
	"github.com/brensch/snakesaver/game/gametest"
	"github.com/brensch/snakesaver/topology"
)

func newBoard(t *testing.T, g game.Graph, err error, rng game.Rand) *game.Board {
	t.Helper()
	require.NoError(t, err)
	b, err := game.NewBoard(g, rng)
	require.NoError(t, err)
	return b
}

func ringBoard(t *testing.T, n int, rng game.Rand) *game.Board {
	t.Helper()
	g, err := topology.Ring(n)
	return newBoard(t, g, err, rng)
}

func rectBoard(t *testing.T, w, h int, rng game.Rand) *game.Board {
	t.Helper()
	g, err := topology.Rect(w, h)
	return newBoard(t, g, err, rng)
}

func TestNewBoard_RejectsMalformedGraphs(t *testing.T) {
	tests := []struct {
		name string
		g    game.Graph
	}{
		{"empty", game.Graph{}},
		{"length mismatch", game.Graph{
			Coords:      []game.Point{{X: 0}, {X: 1}},
			Connections: [][]game.Connection{nil},
		}},
		{"one way edge", game.Graph{
			Coords: []game.Point{{X: 0}, {X: 1}},
			Connections: [][]game.Connection{
				{{Neighbour: 1, Continuation: game.NoCell}},
				nil,
			},
		}},
		{"self loop", game.Graph{
			Coords:      []game.Point{{X: 0}},
			Connections: [][]game.Connection{{{Neighbour: 0, Continuation: game.NoCell}}},
		}},
		{"continuation not a neighbour", game.Graph{
			Coords: []game.Point{{X: 0}, {X: 1}, {X: 2}},
			Connections: [][]game.Connection{
				{{Neighbour: 1, Continuation: 2}},
				{{Neighbour: 0, Continuation: game.NoCell}, {Neighbour: 2, Continuation: game.NoCell}},
				{{Neighbour: 1, Continuation: game.NoCell}},
			},
		}},
		{"continuation out of range", game.Graph{
			Coords: []game.Point{{X: 0}, {X: 1}},
			Connections: [][]game.Connection{
				{{Neighbour: 1, Continuation: 7}},
				{{Neighbour: 0, Continuation: game.NoCell}},
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := game.NewBoard(tt.g, nil)
			assert.ErrorIs(t, err, game.ErrInvalidGraph)
		})
	}
}

func TestChooseCell(t *testing.T) {
	rng := gametest.NewScript(2)
	b := ringBoard(t, 5, rng)

	id, err := b.ChooseCell(func(c *game.Cell) bool { return c.ID%2 == 0 })
	require.NoError(t, err)
	assert.Equal(t, game.CellID(4), id)
	assert.Equal(t, []int{3}, rng.Calls())

	_, err = b.ChooseCell(func(*game.Cell) bool { return false })
	assert.ErrorIs(t, err, game.ErrNoCandidate)
}

func TestSetInitialSnake_Scripted(t *testing.T) {
	// head = cell 0, then the second of its neighbours (1, 4)
	rng := gametest.NewScript(0, 1)
	b := ringBoard(t, 5, rng)

	require.NoError(t, b.SetInitialSnake(1))

	chain, err := b.Chain()
	require.NoError(t, err)
	assert.Equal(t, []game.CellID{0, 4}, chain)
	assert.Equal(t, game.CellID(0), b.Head())
	assert.Equal(t, 1, b.SnakeLength())
	assert.Equal(t, []int{5, 2}, rng.Calls())
}

func TestSetInitialSnake_LongerChainSkipsSnakeCells(t *testing.T) {
	rng := gametest.NewScript(2, 0, 0, 0)
	b := ringBoard(t, 6, rng)

	require.NoError(t, b.SetInitialSnake(3))

	chain, err := b.Chain()
	require.NoError(t, err)
	assert.Equal(t, []game.CellID{2, 3, 4, 5}, chain)
	// after the head only one neighbour is ever free
	assert.Equal(t, []int{6, 2, 1, 1}, rng.Calls())
}

func TestSetInitialSnake_TooSparseFails(t *testing.T) {
	b := rectBoard(t, 2, 1, gametest.NewScript())

	err := b.SetInitialSnake(2)
	assert.ErrorIs(t, err, game.ErrNoCandidate)
}

func TestSetInitialSnake_RejectsZeroLength(t *testing.T) {
	b := ringBoard(t, 5, gametest.NewScript())
	assert.ErrorIs(t, b.SetInitialSnake(0), game.ErrLogic)
}

func TestPlaceSnake_Validates(t *testing.T) {
	b := rectBoard(t, 3, 3, nil)

	assert.ErrorIs(t, b.PlaceSnake(4), game.ErrLogic, "single cell")
	assert.ErrorIs(t, b.PlaceSnake(0, 4), game.ErrLogic, "diagonal")
	assert.ErrorIs(t, b.PlaceSnake(0, 1, 0), game.ErrLogic, "repeat")
	assert.ErrorIs(t, b.PlaceSnake(0, 9), game.ErrLogic, "out of range")

	require.NoError(t, b.PlaceFood(2))
	assert.ErrorIs(t, b.PlaceSnake(0, 1, 2), game.ErrLogic, "onto food")

	require.NoError(t, b.PlaceSnake(0, 1, 4))
	assert.ErrorIs(t, b.PlaceSnake(6, 7), game.ErrLogic, "already placed")
}

func TestFoodAndSnakeAreExclusive(t *testing.T) {
	b := ringBoard(t, 5, nil)
	require.NoError(t, b.PlaceSnake(0, 1, 2))

	err := b.PlaceFood(1)
	assert.ErrorIs(t, err, game.ErrLogic)
	assert.Equal(t, game.NoCell, b.Food())

	// tail cell carries no link, so it is not a snake cell
	c, ok := b.Cell(2)
	require.True(t, ok)
	assert.False(t, c.IsSnake())
}

func TestPlaceFood_RejectsLastChainCell(t *testing.T) {
	b := ringBoard(t, 5, gametest.NewScript())
	require.NoError(t, b.PlaceSnake(0, 1))
	require.NoError(t, b.PlaceFood(3))

	// cell 1 carries no link but is still on the chain
	err := b.PlaceFood(1)
	assert.ErrorIs(t, err, game.ErrLogic)
	assert.Equal(t, game.CellID(3), b.Food(), "rejected placement leaves the old food")

	_, err = b.Advance()
	require.NoError(t, err)
	c, err := b.Chain()
	require.NoError(t, err)
	assert.Len(t, c, 2)
}

func TestPlaceFood_MovesExistingFood(t *testing.T) {
	b := ringBoard(t, 5, nil)
	require.NoError(t, b.PlaceFood(1))
	require.NoError(t, b.PlaceFood(3))

	assert.Equal(t, game.CellID(3), b.Food())
	c, _ := b.Cell(1)
	assert.False(t, c.IsFood())
}

func TestAssignFood_SkipsWholeChain(t *testing.T) {
	rng := gametest.NewScript(2)
	b := ringBoard(t, 5, rng)
	require.NoError(t, b.PlaceSnake(0, 4))

	require.NoError(t, b.AssignFood())

	// options are 1, 2, 3: cell 4 is the tail
	assert.Equal(t, []int{3}, rng.Calls())
	assert.Equal(t, game.CellID(3), b.Food())
}

func TestAssignFood_FullBoard(t *testing.T) {
	b := ringBoard(t, 3, gametest.NewScript())
	require.NoError(t, b.PlaceSnake(0, 1, 2))

	assert.ErrorIs(t, b.AssignFood(), game.ErrBoardFull)
}

func TestAdvance_WithoutSnake(t *testing.T) {
	b := ringBoard(t, 5, nil)
	_, err := b.Advance()
	assert.ErrorIs(t, err, game.ErrLogic)
}

func TestCell_OutOfRange(t *testing.T) {
	b := ringBoard(t, 5, nil)
	_, ok := b.Cell(5)
	assert.False(t, ok)
	_, ok = b.Cell(game.NoCell)
	assert.False(t, ok)
}
