package game

import "fmt"

// moveHead picks the next head, applies growth or truncation and links the
// new head to the old one. It reports whether food was eaten.
func (b *Board) moveHead() (CellID, bool, error) {
	old := b.head
	if !b.cells[old].IsSnake() {
		return NoCell, false, fmt.Errorf("%w: head %d has no successor", ErrLogic, old)
	}

	next, err := b.findNextHead()
	if err != nil {
		return NoCell, false, err
	}

	cand := &b.cells[next]
	ate := cand.food
	if ate {
		cand.food = false
	} else if err := b.truncate(old); err != nil {
		return NoCell, false, err
	}

	if err := cand.setNext(old); err != nil {
		return NoCell, false, err
	}
	return next, ate, nil
}

// findNextHead chooses where the head goes, in order of preference:
//  1. an adjacent food cell
//  2. a free neighbour whose straight corridor leads to food
//  3. straight ahead, if passable
//  4. any free neighbour at random
//
// With none of those available the head is trapped.
func (b *Board) findNextHead() (CellID, error) {
	head := &b.cells[b.head]

	// Adjacent food wins even when an earlier neighbour's corridor wraps
	// around to the same cell, as it can on a ring or torus.
	for _, conn := range head.connections {
		if b.cells[conn.Neighbour].food {
			return conn.Neighbour, nil
		}
	}
	for _, conn := range head.connections {
		if b.cells[conn.Neighbour].IsSnake() {
			continue
		}
		if b.corridorHasFood(head.ID, conn.Neighbour) {
			return conn.Neighbour, nil
		}
	}

	if forward := head.continuation(head.next); b.passable(forward) {
		return forward, nil
	}

	options := make([]CellID, 0, len(head.connections))
	for _, conn := range head.connections {
		if !b.cells[conn.Neighbour].IsSnake() {
			options = append(options, conn.Neighbour)
		}
	}
	if len(options) == 0 {
		return NoCell, fmt.Errorf("%w at cell %d", ErrTrapped, head.ID)
	}
	return options[b.rng.Intn(len(options))], nil
}

// corridorHasFood walks straight from `from` through `to` while cells are
// passable and reports whether it reaches food before stopping. The walk
// stops on the first revisited cell, so wrapping topologies terminate.
func (b *Board) corridorHasFood(from, to CellID) bool {
	seen := map[CellID]bool{from: true, to: true}
	prev, cur := from, to
	next := b.cells[cur].continuation(prev)
	for b.passable(next) {
		if seen[next] {
			return false
		}
		seen[next] = true
		if b.cells[next].food {
			return true
		}
		prev, cur = cur, next
		next = b.cells[cur].continuation(prev)
	}
	return false
}

func (b *Board) passable(id CellID) bool {
	return id != NoCell && !b.cells[id].IsSnake()
}

// truncate drops the last link of the chain starting at from, so the cell
// before the old tail becomes the new tail.
func (b *Board) truncate(from CellID) error {
	cur := from
	for range b.cells {
		next := b.cells[cur].next
		if next == NoCell {
			return fmt.Errorf("%w: cell %d has no successor to truncate", ErrLogic, cur)
		}
		if b.cells[next].next == NoCell {
			b.cells[cur].next = NoCell
			return nil
		}
		cur = next
	}
	return fmt.Errorf("%w: snake chain from %d does not terminate", ErrLogic, from)
}
