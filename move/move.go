// Package move describes a single tile placement.
package move

import (
	"fmt"

	"github.com/domino14/quatrominos/board"
	"github.com/domino14/quatrominos/tile"
)

// Move places one tile from the mover's hand onto the board. source is the
// tile as held in the hand; placed is the same tile after rotation.
type Move struct {
	row      int
	col      int
	source   tile.Tile
	rotation int
	placed   tile.Tile
}

// NewPlacementMove creates a move that rotates source clockwise by rotation
// quarter turns and places it at (row, col).
func NewPlacementMove(row, col int, source tile.Tile, rotation int) Move {
	rotation = ((rotation % tile.NumEdges) + tile.NumEdges) % tile.NumEdges
	return Move{
		row:      row,
		col:      col,
		source:   source,
		rotation: rotation,
		placed:   tile.Rotate(source, rotation),
	}
}

func (m Move) Row() int {
	return m.row
}

func (m Move) Col() int {
	return m.col
}

func (m Move) Location() board.Location {
	return board.Location{Row: m.row, Col: m.col}
}

// Tile is the tile in the orientation it is placed in.
func (m Move) Tile() tile.Tile {
	return m.placed
}

// Source is the tile as it is held in the hand.
func (m Move) Source() tile.Tile {
	return m.source
}

func (m Move) Rotation() int {
	return m.rotation
}

// Equals ignores the rotation count; two rotations of a symmetric tile that
// land on the same orientation are the same placement.
func (m Move) Equals(o Move) bool {
	return m.row == o.row && m.col == o.col && m.placed == o.placed && m.source == o.source
}

// ShortDescription is e.g. "0,1 (2,2,2,2)".
func (m Move) ShortDescription() string {
	return fmt.Sprintf("%d,%d (%v)", m.row, m.col, m.placed)
}

// String provides a string just for debugging purposes.
func (m Move) String() string {
	return fmt.Sprintf("<place %v at %d,%d from %v rot %d>",
		m.placed, m.row, m.col, m.source, m.rotation)
}
