package board

import (
	"strconv"
	"strings"
)

const linesPerTile = 5

// labelWidth is the widest edge label on the board, at least one.
func (g *GameBoard) labelWidth() int {
	w := 1
	for _, sq := range g.squares {
		if !sq.occupied {
			continue
		}
		for _, e := range sq.tile {
			if l := len(strconv.Itoa(e)); l > w {
				w = l
			}
		}
	}
	return w
}

// tileBlock renders one square as five lines of equal width:
//
//	+-----+
//	|  1  |
//	|4   2|
//	|  3  |
//	+-----+
//
// Empty squares keep their border with blanks for the labels.
func (s Square) tileBlock(w int) [linesPerTile]string {
	label := func(e int) string {
		if !s.occupied {
			return strings.Repeat(" ", w)
		}
		l := strconv.Itoa(e)
		return strings.Repeat(" ", w-len(l)) + l
	}
	border := "+" + strings.Repeat("-", 2*w+3) + "+"
	vert := func(e int) string {
		return "|" + strings.Repeat(" ", w+1) + label(e) + "  |"
	}
	return [linesPerTile]string{
		border,
		vert(s.tile[0]),
		"|" + label(s.tile[3]) + "   " + label(s.tile[1]) + "|",
		vert(s.tile[2]),
		border,
	}
}

// ToDisplayText renders the board for diagnostics, five text lines per
// board row, tiles separated by a space.
func (g *GameBoard) ToDisplayText() string {
	w := g.labelWidth()
	var sb strings.Builder
	for row := 0; row < g.rows; row++ {
		blocks := make([][linesPerTile]string, g.cols)
		for col := 0; col < g.cols; col++ {
			blocks[col] = g.squares[g.idx(row, col)].tileBlock(w)
		}
		for line := 0; line < linesPerTile; line++ {
			for col := 0; col < g.cols; col++ {
				if col > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(blocks[col][line])
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
