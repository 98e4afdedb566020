package board

import (
	"fmt"

	"github.com/domino14/quatrominos/tile"
)

// A Square is a single cell of the board. It either holds a tile in a fixed
// orientation or is empty.
type Square struct {
	tile     tile.Tile
	occupied bool
}

func (s Square) String() string {
	if !s.occupied {
		return "<empty>"
	}
	return fmt.Sprintf("<(%v)>", s.tile)
}

func (s *Square) copyFrom(s2 *Square) {
	s.tile = s2.tile
	s.occupied = s2.occupied
}

func (s *Square) equals(s2 *Square) bool {
	if s.occupied != s2.occupied {
		return false
	}
	return !s.occupied || s.tile == s2.tile
}

// Tile returns the tile on this square. It is only meaningful if the
// square is occupied.
func (s *Square) Tile() tile.Tile {
	return s.tile
}

func (s *Square) IsEmpty() bool {
	return !s.occupied
}
