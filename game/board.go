package game

import (
	"fmt"
	"math/rand"
	"time"
)

// Rand is the only source of non-determinism on a Board.
// *rand.Rand satisfies it; tests substitute a scripted source.
type Rand interface {
	Intn(n int) int
}

// Graph describes a board topology. Index i of Coords and Connections
// belongs to CellID(i).
type Graph struct {
	Coords      []Point
	Connections [][]Connection
}

// Board owns every cell, the snake head and the random source for one run.
// It is not safe for concurrent use.
type Board struct {
	cells []Cell
	head  CellID
	rng   Rand
}

// StepResult reports what a single Advance did.
type StepResult struct {
	Head CellID
	Ate  bool
}

// NewBoard validates g and builds an empty board from it. A nil rng falls
// back to a time-seeded *rand.Rand.
func NewBoard(g Graph, rng Rand) (*Board, error) {
	if err := validateGraph(g); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cells := make([]Cell, len(g.Coords))
	for i := range cells {
		conns := make([]Connection, len(g.Connections[i]))
		copy(conns, g.Connections[i])
		cells[i] = Cell{
			ID:          CellID(i),
			Coord:       g.Coords[i],
			connections: conns,
			next:        NoCell,
		}
	}
	return &Board{cells: cells, head: NoCell, rng: rng}, nil
}

func validateGraph(g Graph) error {
	n := len(g.Coords)
	if n == 0 {
		return fmt.Errorf("%w: no cells", ErrInvalidGraph)
	}
	if len(g.Connections) != n {
		return fmt.Errorf("%w: %d coordinates but %d connection lists", ErrInvalidGraph, n, len(g.Connections))
	}
	inRange := func(id CellID) bool { return id >= 0 && int(id) < n }

	for i, conns := range g.Connections {
		seen := make(map[CellID]bool, len(conns))
		for _, c := range conns {
			switch {
			case !inRange(c.Neighbour):
				return fmt.Errorf("%w: cell %d has neighbour %d out of range", ErrInvalidGraph, i, c.Neighbour)
			case c.Neighbour == CellID(i):
				return fmt.Errorf("%w: cell %d is its own neighbour", ErrInvalidGraph, i)
			case seen[c.Neighbour]:
				return fmt.Errorf("%w: cell %d lists neighbour %d twice", ErrInvalidGraph, i, c.Neighbour)
			case c.Continuation != NoCell && !inRange(c.Continuation):
				return fmt.Errorf("%w: cell %d has continuation %d out of range", ErrInvalidGraph, i, c.Continuation)
			case c.Continuation != NoCell && !isNeighbourIn(conns, c.Continuation):
				return fmt.Errorf("%w: cell %d has continuation %d that is not its neighbour", ErrInvalidGraph, i, c.Continuation)
			}
			seen[c.Neighbour] = true

			back := false
			for _, r := range g.Connections[c.Neighbour] {
				if r.Neighbour == CellID(i) {
					back = true
					break
				}
			}
			if !back {
				return fmt.Errorf("%w: edge %d->%d has no reverse edge", ErrInvalidGraph, i, c.Neighbour)
			}
		}
	}
	return nil
}

func isNeighbourIn(conns []Connection, id CellID) bool {
	for _, c := range conns {
		if c.Neighbour == id {
			return true
		}
	}
	return false
}

func (b *Board) Len() int { return len(b.cells) }

// Cell returns a copy of the cell with the given ID.
func (b *Board) Cell(id CellID) (Cell, bool) {
	if !b.valid(id) {
		return Cell{}, false
	}
	return b.cells[id], true
}

// Head returns the current head, or NoCell before a snake is placed.
func (b *Board) Head() CellID { return b.head }

// Food returns the cell holding food, or NoCell.
func (b *Board) Food() CellID {
	for i := range b.cells {
		if b.cells[i].food {
			return b.cells[i].ID
		}
	}
	return NoCell
}

// SnakeLength counts linked cells, i.e. every chain cell except the tail.
func (b *Board) SnakeLength() int {
	n := 0
	for i := range b.cells {
		if b.cells[i].IsSnake() {
			n++
		}
	}
	return n
}

// Chain walks from the head to the tail, inclusive of both.
func (b *Board) Chain() ([]CellID, error) {
	if b.head == NoCell {
		return nil, nil
	}
	out := make([]CellID, 0, b.SnakeLength()+1)
	for id := b.head; id != NoCell; id = b.cells[id].next {
		if len(out) == len(b.cells) {
			return nil, fmt.Errorf("%w: snake chain from %d does not terminate", ErrLogic, b.head)
		}
		out = append(out, id)
	}
	return out, nil
}

func (b *Board) valid(id CellID) bool {
	return id >= 0 && int(id) < len(b.cells)
}

// ChooseCell picks uniformly among all cells matching pred, in ID order.
// A nil pred matches every cell.
func (b *Board) ChooseCell(pred func(*Cell) bool) (CellID, error) {
	ids := make([]CellID, len(b.cells))
	for i := range b.cells {
		ids[i] = b.cells[i].ID
	}
	return b.chooseFrom(ids, pred)
}

func (b *Board) chooseFrom(ids []CellID, pred func(*Cell) bool) (CellID, error) {
	options := make([]CellID, 0, len(ids))
	for _, id := range ids {
		if pred == nil || pred(&b.cells[id]) {
			options = append(options, id)
		}
	}
	if len(options) == 0 {
		return NoCell, ErrNoCandidate
	}
	return options[b.rng.Intn(len(options))], nil
}

// SetInitialSnake picks a random head then extends the chain tail-ward
// length times through random free neighbours. Sparse graphs can make this
// fail with ErrNoCandidate; the board is left partially placed in that case.
func (b *Board) SetInitialSnake(length int) error {
	if length < 1 {
		return fmt.Errorf("%w: initial snake length %d, want at least 1", ErrLogic, length)
	}
	if b.head != NoCell {
		return fmt.Errorf("%w: snake already placed", ErrLogic)
	}

	head, err := b.ChooseCell(nil)
	if err != nil {
		return fmt.Errorf("choose head: %w", err)
	}
	b.head = head

	prev := head
	for i := 0; i < length; i++ {
		next, err := b.chooseFrom(b.cells[prev].Neighbours(), func(c *Cell) bool {
			return !c.IsSnake() && !c.food
		})
		if err != nil {
			return fmt.Errorf("extend snake from cell %d (segment %d): %w", prev, i+1, err)
		}
		if err := b.cells[prev].setNext(next); err != nil {
			return err
		}
		prev = next
	}
	return nil
}

// PlaceSnake lays an explicit chain, head first. Consecutive cells must be
// adjacent and the chain needs at least two cells.
func (b *Board) PlaceSnake(chain ...CellID) error {
	if b.head != NoCell {
		return fmt.Errorf("%w: snake already placed", ErrLogic)
	}
	if len(chain) < 2 {
		return fmt.Errorf("%w: chain needs a head and a tail, got %d cells", ErrLogic, len(chain))
	}
	seen := make(map[CellID]bool, len(chain))
	for i, id := range chain {
		if !b.valid(id) {
			return fmt.Errorf("%w: cell %d out of range", ErrLogic, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: cell %d repeated in chain", ErrLogic, id)
		}
		seen[id] = true
		if b.cells[id].food {
			return fmt.Errorf("%w: cell %d is food, cannot also be snake", ErrLogic, id)
		}
		if i > 0 && !b.cells[chain[i-1]].isNeighbour(id) {
			return fmt.Errorf("%w: cells %d and %d are not adjacent", ErrLogic, chain[i-1], id)
		}
	}
	for i := 0; i < len(chain)-1; i++ {
		if err := b.cells[chain[i]].setNext(chain[i+1]); err != nil {
			return err
		}
	}
	b.head = chain[0]
	return nil
}

// Advance moves the snake one step and places new food if it ate.
// ErrTrapped and ErrBoardFull end the game; the StepResult of a winning
// move is still returned alongside ErrBoardFull.
func (b *Board) Advance() (StepResult, error) {
	if b.head == NoCell {
		return StepResult{}, fmt.Errorf("%w: no snake on board", ErrLogic)
	}
	head, ate, err := b.moveHead()
	if err != nil {
		return StepResult{}, err
	}
	b.head = head

	res := StepResult{Head: head, Ate: ate}
	if ate {
		if err := b.AssignFood(); err != nil {
			return res, err
		}
	}
	return res, nil
}
