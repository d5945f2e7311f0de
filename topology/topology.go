// Package topology builds the graphs a game.Board is played on.
//
// Every builder fills in, for each neighbour of a cell, the continuation
// cell reached by going straight through: on a grid that is the cell on
// the opposite side, on a ring the next cell around.
package topology

import (
	"fmt"

	"github.com/brensch/snakesaver/game"
)

// Kinds accepted by Build.
const (
	KindRect  = "rect"
	KindTorus = "torus"
	KindRing  = "ring"
)

// Kinds lists every supported topology name.
var Kinds = []string{KindRect, KindTorus, KindRing}

// Build dispatches on kind. A ring uses width as its length and ignores height.
func Build(kind string, width, height int) (game.Graph, error) {
	switch kind {
	case KindRect:
		return Rect(width, height)
	case KindTorus:
		return Torus(width, height)
	case KindRing:
		return Ring(width)
	default:
		return game.Graph{}, fmt.Errorf("unknown topology %q", kind)
	}
}

// CellCount returns how many cells Build(kind, width, height) would produce.
func CellCount(kind string, width, height int) int {
	if kind == KindRing {
		return width
	}
	return width * height
}

// Rect is a width x height grid with 4-neighbour adjacency. Cell IDs run
// row by row from (0,0). Neighbours are listed right, left, down, up; a
// straight line off the grid has no continuation.
func Rect(width, height int) (game.Graph, error) {
	if width < 1 || height < 1 || width*height < 2 {
		return game.Graph{}, fmt.Errorf("rect %dx%d: need at least two cells", width, height)
	}
	return grid(width, height, false), nil
}

// Torus is a grid whose edges wrap, so every straight line continues.
// Both dimensions must be at least 3 so that opposite neighbours differ.
func Torus(width, height int) (game.Graph, error) {
	if width < 3 || height < 3 {
		return game.Graph{}, fmt.Errorf("torus %dx%d: both dimensions must be at least 3", width, height)
	}
	return grid(width, height, true), nil
}

func grid(width, height int, wrap bool) game.Graph {
	n := width * height
	g := game.Graph{
		Coords:      make([]game.Point, n),
		Connections: make([][]game.Connection, n),
	}
	id := func(x, y int) game.CellID {
		if wrap {
			x = (x + width) % width
			y = (y + height) % height
		} else if x < 0 || x >= width || y < 0 || y >= height {
			return game.NoCell
		}
		return game.CellID(y*width + x)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			g.Coords[i] = game.Point{X: int32(x), Y: int32(y)}

			conns := make([]game.Connection, 0, 4)
			for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nb := id(x+d[0], y+d[1])
				if nb == game.NoCell {
					continue
				}
				conns = append(conns, game.Connection{
					Neighbour:    nb,
					Continuation: id(x-d[0], y-d[1]),
				})
			}
			g.Connections[i] = conns
		}
	}
	return g
}

// Ring is a cycle of n cells laid out on one row. Cell i neighbours i+1
// then i-1, and going straight always continues around the ring.
func Ring(n int) (game.Graph, error) {
	if n < 3 {
		return game.Graph{}, fmt.Errorf("ring of %d: need at least 3 cells", n)
	}
	g := game.Graph{
		Coords:      make([]game.Point, n),
		Connections: make([][]game.Connection, n),
	}
	for i := 0; i < n; i++ {
		next := game.CellID((i + 1) % n)
		prev := game.CellID((i - 1 + n) % n)
		g.Coords[i] = game.Point{X: int32(i)}
		g.Connections[i] = []game.Connection{
			{Neighbour: next, Continuation: prev},
			{Neighbour: prev, Continuation: next},
		}
	}
	return g, nil
}
