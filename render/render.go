// Package render draws frozen board states for a terminal.
//
// Cells are laid out by coordinate, row by row from Y=0, with one space
// between columns. Graphs without a second dimension draw as one row.
package render

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/snakesaver/game"
)

// Glyphs used for each cell kind.
const (
	GlyphEmpty = "."
	GlyphFood  = "F"
	GlyphSnake = "S"
	GlyphHead  = "H"
)

// Text renders state without colour.
func Text(state game.BoardState) string {
	return draw(state, func(g string) string { return g })
}

// Styles colours each glyph.
type Styles struct {
	Empty lipgloss.Style
	Food  lipgloss.Style
	Snake lipgloss.Style
	Head  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Empty: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Food:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Snake: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Head:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	}
}

// Styled renders state with s.
func Styled(state game.BoardState, s Styles) string {
	return draw(state, func(g string) string {
		switch g {
		case GlyphFood:
			return s.Food.Render(g)
		case GlyphSnake:
			return s.Snake.Render(g)
		case GlyphHead:
			return s.Head.Render(g)
		default:
			return s.Empty.Render(g)
		}
	})
}

// Glyph picks the character for one cell. The tail cell carries no link
// and draws as empty, matching IsSnake.
func Glyph(c game.CellState, head game.CellID) string {
	switch {
	case c.IsFood:
		return GlyphFood
	case c.ID == head && c.IsSnake:
		return GlyphHead
	case c.IsSnake:
		return GlyphSnake
	default:
		return GlyphEmpty
	}
}

func draw(state game.BoardState, paint func(string) string) string {
	rows := map[int32][]game.CellState{}
	for _, c := range state.Cells {
		rows[c.Coord.Y] = append(rows[c.Coord.Y], c)
	}
	ys := make([]int32, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Slice(ys, func(i, j int) bool { return ys[i] < ys[j] })

	var sb strings.Builder
	for _, y := range ys {
		row := rows[y]
		sort.Slice(row, func(i, j int) bool { return row[i].Coord.X < row[j].Coord.X })
		for i, c := range row {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(paint(Glyph(c, state.Head)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
