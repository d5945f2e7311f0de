package game_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/snakesaver/game"
	"github.com/brensch/snakesaver/game/gametest"
)

func logAdvance(t *testing.T, label string, before game.BoardState, b *game.Board) {
	t.Helper()
	t.Logf("=== %s ===\nBefore:\n%sAfter:\n%s", label, gametest.Dump(before), gametest.Dump(b.Freeze(before.Turn+1)))
}

func chain(t *testing.T, b *game.Board) []game.CellID {
	t.Helper()
	c, err := b.Chain()
	require.NoError(t, err)
	return c
}

// 5x5 grid ids:
//
//	 0  1  2  3  4
//	 5  6  7  8  9
//	10 11 12 13 14
//	15 16 17 18 19
//	20 21 22 23 24

func TestAdvance_AdjacentFoodIsTaken(t *testing.T) {
	rng := gametest.NewScript(0)
	b := rectBoard(t, 5, 5, rng)
	require.NoError(t, b.PlaceSnake(12, 13, 14))
	require.NoError(t, b.PlaceFood(7))
	before := b.Freeze(0)

	res, err := b.Advance()
	require.NoError(t, err)
	logAdvance(t, "adjacent food", before, b)

	assert.Equal(t, game.StepResult{Head: 7, Ate: true}, res)
	assert.Equal(t, []game.CellID{7, 12, 13, 14}, chain(t, b))
	assert.Equal(t, 3, b.SnakeLength())
	// the only random call is the new food placement
	assert.Len(t, rng.Calls(), 1)
}

func TestAdvance_AdjacentFoodBeatsWrappingCorridor(t *testing.T) {
	// Going through 1 wraps round 2, 3 and reaches the food at 4, but 4 is
	// directly adjacent and must be taken instead.
	b := ringBoard(t, 5, gametest.NewScript(0))
	require.NoError(t, b.PlaceSnake(0, 1))
	require.NoError(t, b.PlaceFood(4))

	res, err := b.Advance()
	require.NoError(t, err)

	assert.Equal(t, game.StepResult{Head: 4, Ate: true}, res)
	assert.Equal(t, []game.CellID{4, 0, 1}, chain(t, b))
	assert.Equal(t, game.CellID(2), b.Food())
}

func TestAdvance_CorridorSeeking(t *testing.T) {
	rng := gametest.NewScript(0)
	b := rectBoard(t, 5, 5, rng)
	// moving up, food two cells to the left
	require.NoError(t, b.PlaceSnake(12, 17, 22))
	require.NoError(t, b.PlaceFood(10))
	before := b.Freeze(0)

	res, err := b.Advance()
	require.NoError(t, err)
	logAdvance(t, "corridor", before, b)

	assert.Equal(t, game.StepResult{Head: 11, Ate: false}, res)
	assert.Equal(t, []game.CellID{11, 12, 17}, chain(t, b))
	assert.Equal(t, 2, b.SnakeLength())
	assert.Equal(t, game.CellID(10), b.Food(), "food stays put until reached")
	assert.Empty(t, rng.Calls())

	res, err = b.Advance()
	require.NoError(t, err)
	assert.Equal(t, game.StepResult{Head: 10, Ate: true}, res)
	assert.Equal(t, []game.CellID{10, 11, 12, 17}, chain(t, b))
	assert.Equal(t, game.CellID(0), b.Food())
}

func TestAdvance_CorridorBlockedBySnake(t *testing.T) {
	rng := gametest.NewScript()
	b := rectBoard(t, 5, 5, rng)
	// head 14 came down from 9; body cell 12 sits between 13 and the food at 11
	require.NoError(t, b.PlaceSnake(14, 9, 8, 7, 12, 17))
	require.NoError(t, b.PlaceFood(11))
	before := b.Freeze(0)

	res, err := b.Advance()
	require.NoError(t, err)
	logAdvance(t, "blocked corridor", before, b)

	// no visible food, so the head carries straight on down
	assert.Equal(t, game.StepResult{Head: 19}, res)
	assert.Empty(t, rng.Calls())
}

func TestAdvance_GoesForwardWithoutFoodInSight(t *testing.T) {
	rng := gametest.NewScript()
	b := rectBoard(t, 5, 5, rng)
	require.NoError(t, b.PlaceSnake(12, 17, 22))
	require.NoError(t, b.PlaceFood(0))

	res, err := b.Advance()
	require.NoError(t, err)

	assert.Equal(t, game.StepResult{Head: 7}, res)
	assert.Equal(t, []game.CellID{7, 12, 17}, chain(t, b))
	assert.Empty(t, rng.Calls())
}

func TestAdvance_RandomNeighbourWhenForwardBlocked(t *testing.T) {
	rng := gametest.NewScript(1)
	b := rectBoard(t, 5, 5, rng)
	// moving up into the top edge
	require.NoError(t, b.PlaceSnake(2, 7, 12))
	require.NoError(t, b.PlaceFood(24))

	res, err := b.Advance()
	require.NoError(t, err)

	// options in neighbour order: 3 (right), 1 (left)
	assert.Equal(t, []int{2}, rng.Calls())
	assert.Equal(t, game.CellID(1), res.Head)
	assert.Equal(t, []game.CellID{1, 2, 7}, chain(t, b))
}

func TestAdvance_Trapped(t *testing.T) {
	// 4x3 grid:
	//
	//	0  1  2  3
	//	4  5  6  7
	//	8  9 10 11
	b := rectBoard(t, 4, 3, gametest.NewScript())
	require.NoError(t, b.PlaceSnake(5, 1, 0, 4, 8, 9, 10, 6, 2))
	require.NoError(t, b.PlaceFood(11))
	before := b.Freeze(0)

	_, err := b.Advance()
	assert.ErrorIs(t, err, game.ErrTrapped)
	assert.Equal(t, game.CellID(5), b.Head())
	assert.Equal(t, before, b.Freeze(0), "a trapped move must not mutate the board")
}

func TestAdvance_WinWhenChainCoversBoard(t *testing.T) {
	b := ringBoard(t, 4, gametest.NewScript())
	require.NoError(t, b.PlaceSnake(1, 0, 3))
	require.NoError(t, b.PlaceFood(2))

	res, err := b.Advance()
	assert.ErrorIs(t, err, game.ErrBoardFull)
	assert.Equal(t, game.StepResult{Head: 2, Ate: true}, res)
	assert.Equal(t, []game.CellID{2, 1, 0, 3}, chain(t, b))
	assert.Equal(t, game.NoCell, b.Food())
}

func TestAdvance_HeadMayFollowIntoTail(t *testing.T) {
	// 2x2 grid, snake circles round its own tail
	//
	//	0 1
	//	2 3
	b := rectBoard(t, 2, 2, gametest.NewScript(0))
	require.NoError(t, b.PlaceSnake(0, 1, 3, 2))

	for i := 0; i < 8; i++ {
		_, err := b.Advance()
		require.NoError(t, err)
		assert.Equal(t, 3, b.SnakeLength())
		assert.Len(t, chain(t, b), 4)
	}
}

func TestRingEndToEnd(t *testing.T) {
	// head 0, tail 4 (second neighbour of 0), food on 2, then food on 4
	rng := gametest.NewScript(0, 1, 1, 1)
	b := ringBoard(t, 5, rng)
	require.NoError(t, b.SetInitialSnake(1))
	require.NoError(t, b.AssignFood())

	s0 := b.Freeze(0)
	require.Equal(t, game.CellID(2), s0.Food())
	require.Equal(t, []game.CellID{0}, s0.Snake())

	res, err := b.Advance()
	require.NoError(t, err)
	assert.Equal(t, game.StepResult{Head: 1}, res)
	s1 := b.Freeze(1)
	assert.Equal(t, []game.CellID{1}, s1.Snake())
	assert.Equal(t, game.CellID(2), s1.Food())

	res, err = b.Advance()
	require.NoError(t, err)
	assert.Equal(t, game.StepResult{Head: 2, Ate: true}, res)
	s2 := b.Freeze(2)
	t.Logf("after eating:\n%s", gametest.Dump(s2))

	assert.Equal(t, 2, b.SnakeLength())
	assert.Equal(t, []game.CellID{1, 2}, s2.Snake())
	assert.Contains(t, []game.CellID{3, 4}, s2.Food())
	assert.Equal(t, game.CellID(4), s2.Food())
	// food options were exactly 3 and 4
	assert.Equal(t, []int{5, 2, 3, 2}, rng.Calls())
	assert.Zero(t, rng.Remaining())
}

func TestInvariantsHoldOverRandomRuns(t *testing.T) {
	const initial = 3
	for seed := int64(1); seed <= 25; seed++ {
		b := rectBoard(t, 6, 6, rand.New(rand.NewSource(seed)))
		require.NoError(t, b.SetInitialSnake(initial))
		require.NoError(t, b.AssignFood())

		eaten := 0
		for step := 0; step < 2000; step++ {
			res, err := b.Advance()
			if res.Ate {
				eaten++
			}
			if errors.Is(err, game.ErrTrapped) || errors.Is(err, game.ErrBoardFull) {
				break
			}
			require.NoError(t, err, "seed %d step %d", seed, step)

			c := chain(t, b)
			seen := make(map[game.CellID]bool, len(c))
			for _, id := range c {
				require.False(t, seen[id], "seed %d step %d: cell %d repeated in chain", seed, step, id)
				seen[id] = true
			}
			require.Equal(t, initial+eaten, b.SnakeLength(), "seed %d step %d", seed, step)
			require.Len(t, c, initial+eaten+1)

			for _, cs := range b.Freeze(step).Cells {
				require.False(t, cs.IsSnake && cs.IsFood, "seed %d step %d: cell %d", seed, step, cs.ID)
			}
			food := b.Food()
			require.NotEqual(t, game.NoCell, food)
			require.False(t, seen[food], "food on the chain")
		}
	}
}
