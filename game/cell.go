package game

import "fmt"

// CellID is a stable handle into a Board's cell arena.
type CellID int

// NoCell marks an absent cell: no chain successor, or no continuation past a boundary.
const NoCell CellID = -1

// Point is a cell's position, used for rendering only.
type Point struct {
	X int32
	Y int32
}

// Connection is one edge out of a cell.
//
// Continuation is the cell reached by entering this cell from Neighbour and
// carrying straight on out the far side. It is NoCell where the graph has no
// straight line through (e.g. the edge of a grid).
type Connection struct {
	Neighbour    CellID
	Continuation CellID
}

// Cell is a node of the board graph together with its occupancy.
type Cell struct {
	ID    CellID
	Coord Point

	connections []Connection
	next        CellID
	food        bool
}

// IsSnake reports whether the cell links onward to another snake cell.
// The last cell of the chain has no link and so is not a snake cell.
func (c *Cell) IsSnake() bool { return c.next != NoCell }

func (c *Cell) IsFood() bool { return c.food }

// Next returns the cell continuing the chain toward the tail, or NoCell.
func (c *Cell) Next() CellID { return c.next }

// Neighbours returns neighbour IDs in iteration order.
func (c *Cell) Neighbours() []CellID {
	out := make([]CellID, len(c.connections))
	for i, conn := range c.connections {
		out[i] = conn.Neighbour
	}
	return out
}

func (c *Cell) Connections() []Connection {
	out := make([]Connection, len(c.connections))
	copy(out, c.connections)
	return out
}

// continuation returns where a path entering c from `from` goes next.
func (c *Cell) continuation(from CellID) CellID {
	for _, conn := range c.connections {
		if conn.Neighbour == from {
			return conn.Continuation
		}
	}
	return NoCell
}

func (c *Cell) isNeighbour(id CellID) bool {
	for _, conn := range c.connections {
		if conn.Neighbour == id {
			return true
		}
	}
	return false
}

func (c *Cell) setNext(id CellID) error {
	if c.food && id != NoCell {
		return fmt.Errorf("%w: cell %d is food, cannot also be snake", ErrLogic, c.ID)
	}
	c.next = id
	return nil
}

func (c *Cell) setFood(v bool) error {
	if c.IsSnake() && v {
		return fmt.Errorf("%w: cell %d is snake, cannot also be food", ErrLogic, c.ID)
	}
	c.food = v
	return nil
}
