// Package movegen enumerates the legal placements for a hand on a board.
package movegen

import (
	"github.com/domino14/quatrominos/board"
	"github.com/domino14/quatrominos/hand"
	"github.com/domino14/quatrominos/move"
	"github.com/domino14/quatrominos/tile"
)

// MoveGenerator generates placements against the board it was built with.
type MoveGenerator interface {
	GenAll(h *hand.Hand) ([]move.Move, error)
	CountAvailableMoves(h *hand.Hand) (int, error)
}

// TileGenerator is the one MoveGenerator. It reads the board on every call,
// so it always sees the current position.
type TileGenerator struct {
	board *board.GameBoard
}

func NewTileGenerator(b *board.GameBoard) *TileGenerator {
	return &TileGenerator{board: b}
}

// visit calls fn for every legal placement, cells in adjacency order, then
// hand tiles in sorted order, then rotations 0 through 3. Different
// rotations count as different moves, even if they land on the same
// orientation. It stops early if fn returns false.
func (gen *TileGenerator) visit(h *hand.Hand, fn func(loc board.Location, t tile.Tile, rot int) bool) error {
	if h.IsEmpty() {
		return nil
	}
	locs, err := gen.board.AdjacentLocations()
	if err != nil {
		return err
	}
	tiles := h.Distinct()
	for _, loc := range locs {
		for _, t := range tiles {
			for rot := 0; rot < tile.NumEdges; rot++ {
				if !gen.board.CanPlace(loc.Row, loc.Col, tile.Rotate(t, rot)) {
					continue
				}
				if !fn(loc, t, rot) {
					return nil
				}
			}
		}
	}
	return nil
}

// GenAll returns every legal placement for h.
func (gen *TileGenerator) GenAll(h *hand.Hand) ([]move.Move, error) {
	plays := []move.Move{}
	err := gen.visit(h, func(loc board.Location, t tile.Tile, rot int) bool {
		plays = append(plays, move.NewPlacementMove(loc.Row, loc.Col, t, rot))
		return true
	})
	return plays, err
}

// CountAvailableMoves counts the (cell, rotation) pairs that are legal for
// some tile in h. Copies of one tile value count once, not once per copy.
// When a hand holds copies this changes which move the greedy player picks.
func (gen *TileGenerator) CountAvailableMoves(h *hand.Hand) (int, error) {
	n := 0
	err := gen.visit(h, func(board.Location, tile.Tile, int) bool {
		n++
		return true
	})
	return n, err
}

// HasMove is a cheaper CountAvailableMoves(h) > 0.
func (gen *TileGenerator) HasMove(h *hand.Hand) (bool, error) {
	found := false
	err := gen.visit(h, func(board.Location, tile.Tile, int) bool {
		found = true
		return false
	})
	return found, err
}
