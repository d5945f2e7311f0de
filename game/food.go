package game

import (
	"errors"
	"fmt"
)

// AssignFood drops food on a random cell off the snake chain. The tail cell
// counts as on the chain even though it carries no link. When every cell is
// covered the board is full and ErrBoardFull is returned.
func (b *Board) AssignFood() error {
	chain, err := b.Chain()
	if err != nil {
		return err
	}
	occupied := make(map[CellID]bool, len(chain))
	for _, id := range chain {
		occupied[id] = true
	}

	food, err := b.ChooseCell(func(c *Cell) bool {
		return !occupied[c.ID] && !c.IsSnake()
	})
	if err != nil {
		if errors.Is(err, ErrNoCandidate) {
			return ErrBoardFull
		}
		return err
	}
	return b.cells[food].setFood(true)
}

// PlaceFood moves the food to id, clearing any existing food first. Cells on
// the snake chain, the last cell included, are rejected with ErrLogic.
func (b *Board) PlaceFood(id CellID) error {
	if !b.valid(id) {
		return fmt.Errorf("%w: cell %d out of range", ErrLogic, id)
	}
	chain, err := b.Chain()
	if err != nil {
		return err
	}
	for _, c := range chain {
		if c == id {
			return fmt.Errorf("%w: cell %d is on the snake chain, cannot also be food", ErrLogic, id)
		}
	}
	if old := b.Food(); old != NoCell {
		b.cells[old].food = false
	}
	return b.cells[id].setFood(true)
}
