// Package game implements the cell graph, the snake movement heuristic and
// the board that drives one simulation.
//
// Cells live in an arena owned by the Board and refer to each other by
// CellID, so the snake chain and the adjacency table never hold pointers
// into the arena. BoardState is a frozen copy of occupancy that outlives
// further mutation of the Board.
package game

// CellState is the frozen occupancy of one cell.
type CellState struct {
	ID      CellID
	Coord   Point
	IsSnake bool
	IsFood  bool
}

// BoardState is an immutable snapshot of every cell at one turn, ordered by ID.
type BoardState struct {
	Turn  int
	Head  CellID
	Cells []CellState
}

// Freeze captures the board. It does not mutate the board.
func (b *Board) Freeze(turn int) BoardState {
	out := BoardState{
		Turn:  turn,
		Head:  b.head,
		Cells: make([]CellState, len(b.cells)),
	}
	for i := range b.cells {
		c := &b.cells[i]
		out.Cells[i] = CellState{
			ID:      c.ID,
			Coord:   c.Coord,
			IsSnake: c.IsSnake(),
			IsFood:  c.food,
		}
	}
	return out
}

// Snake returns the IDs of linked cells in ID order.
func (s BoardState) Snake() []CellID {
	var out []CellID
	for _, c := range s.Cells {
		if c.IsSnake {
			out = append(out, c.ID)
		}
	}
	return out
}

// Food returns the food cell, or NoCell.
func (s BoardState) Food() CellID {
	for _, c := range s.Cells {
		if c.IsFood {
			return c.ID
		}
	}
	return NoCell
}

// Bounds returns one past the largest X and Y coordinate.
func (s BoardState) Bounds() (width, height int32) {
	for _, c := range s.Cells {
		if c.Coord.X+1 > width {
			width = c.Coord.X + 1
		}
		if c.Coord.Y+1 > height {
			height = c.Coord.Y + 1
		}
	}
	return width, height
}

// Clone performs a deep copy of the snapshot.
func (s *BoardState) Clone() *BoardState {
	if s == nil {
		return nil
	}
	out := &BoardState{Turn: s.Turn, Head: s.Head}
	if len(s.Cells) > 0 {
		out.Cells = make([]CellState, len(s.Cells))
		copy(out.Cells, s.Cells)
	}
	return out
}
