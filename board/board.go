// Package board contains the playing grid, the locator for cells where a
// tile may go next, and the edge-matching placement validator.
package board

import (
	"errors"
	"fmt"

	"github.com/domino14/quatrominos/tile"
)

// ErrInvalidConfiguration is returned for boards whose shape does not allow
// an operation, e.g. an empty board with an even dimension has no center.
var ErrInvalidConfiguration = errors.New("invalid board configuration")

// A Location is a (row, column) coordinate on the board.
type Location struct {
	Row int
	Col int
}

func (l Location) String() string {
	return fmt.Sprintf("%d,%d", l.Row, l.Col)
}

type direction struct {
	dr, dc int
	// edge of the neighbor that touches us, and our edge that touches it.
	theirs, ours int
}

// Neighbors, in the order north, south, west, east.
var directions = [4]direction{
	{-1, 0, tile.South, tile.North},
	{1, 0, tile.North, tile.South},
	{0, -1, tile.East, tile.West},
	{0, 1, tile.West, tile.East},
}

// A GameBoard is a fixed-size grid of Squares.
type GameBoard struct {
	rows        int
	cols        int
	squares     []Square
	tilesPlayed int
}

// MakeBoard creates an empty board with the given dimensions.
func MakeBoard(rows, cols int) (*GameBoard, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidConfiguration, rows, cols)
	}
	return &GameBoard{
		rows:    rows,
		cols:    cols,
		squares: make([]Square, rows*cols),
	}, nil
}

func (g *GameBoard) Rows() int {
	return g.rows
}

func (g *GameBoard) Cols() int {
	return g.cols
}

func (g *GameBoard) idx(row, col int) int {
	return row*g.cols + col
}

// OnBoard returns true if the coordinates are inside the grid.
func (g *GameBoard) OnBoard(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *GameBoard) GetSquare(row, col int) *Square {
	return &g.squares[g.idx(row, col)]
}

// At returns the tile at the given cell and whether the cell is occupied.
func (g *GameBoard) At(row, col int) (tile.Tile, bool) {
	sq := g.squares[g.idx(row, col)]
	return sq.tile, sq.occupied
}

// Occupied is false for empty and off-board cells.
func (g *GameBoard) Occupied(row, col int) bool {
	return g.OnBoard(row, col) && g.squares[g.idx(row, col)].occupied
}

// Place puts t on the given cell, in the orientation given. It does not
// validate the placement; see CanPlace.
func (g *GameBoard) Place(row, col int, t tile.Tile) {
	sq := &g.squares[g.idx(row, col)]
	if !sq.occupied {
		g.tilesPlayed++
	}
	sq.tile = t
	sq.occupied = true
}

// Remove clears the given cell. It is only used for undoing a placement.
func (g *GameBoard) Remove(row, col int) {
	sq := &g.squares[g.idx(row, col)]
	if sq.occupied {
		g.tilesPlayed--
	}
	sq.tile = tile.Tile{}
	sq.occupied = false
}

// TilesPlayed is the number of occupied cells.
func (g *GameBoard) TilesPlayed() int {
	return g.tilesPlayed
}

// IsEmpty is true iff no cell holds a tile.
func (g *GameBoard) IsEmpty() bool {
	return g.tilesPlayed == 0
}

// Center returns the middle cell. Both dimensions must be odd.
func (g *GameBoard) Center() (Location, error) {
	if g.rows%2 == 0 || g.cols%2 == 0 {
		return Location{}, fmt.Errorf("%w: %dx%d board has no center cell",
			ErrInvalidConfiguration, g.rows, g.cols)
	}
	return Location{Row: (g.rows - 1) / 2, Col: (g.cols - 1) / 2}, nil
}

// AdjacentLocations returns the vacant cells that touch at least one
// occupied cell, in row-major order. On an empty board it returns only the
// center cell. A full board has no adjacent locations.
func (g *GameBoard) AdjacentLocations() ([]Location, error) {
	if g.IsEmpty() {
		c, err := g.Center()
		if err != nil {
			return nil, err
		}
		return []Location{c}, nil
	}
	locs := []Location{}
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if g.isAnchor(row, col) {
				locs = append(locs, Location{row, col})
			}
		}
	}
	return locs, nil
}

// isAnchor is true for an empty on-board cell with an occupied neighbor.
func (g *GameBoard) isAnchor(row, col int) bool {
	if !g.OnBoard(row, col) || g.squares[g.idx(row, col)].occupied {
		return false
	}
	for _, d := range directions {
		if g.Occupied(row+d.dr, col+d.dc) {
			return true
		}
	}
	return false
}

// CanPlace checks whether t, in its current orientation, may be placed on
// the given cell. On an empty board any cell accepts any tile. Otherwise the
// cell must be an adjacent location, and every occupied neighbor's touching
// edge must equal ours.
func (g *GameBoard) CanPlace(row, col int, t tile.Tile) bool {
	if g.IsEmpty() {
		return g.OnBoard(row, col)
	}
	if !g.isAnchor(row, col) {
		return false
	}
	for _, d := range directions {
		nr, nc := row+d.dr, col+d.dc
		if !g.Occupied(nr, nc) {
			continue
		}
		if g.squares[g.idx(nr, nc)].tile[d.theirs] != t[d.ours] {
			return false
		}
	}
	return true
}

// Clear empties every cell.
func (g *GameBoard) Clear() {
	for i := range g.squares {
		g.squares[i] = Square{}
	}
	g.tilesPlayed = 0
}

// Copy returns a deep copy of this board.
func (g *GameBoard) Copy() *GameBoard {
	c := &GameBoard{
		rows:        g.rows,
		cols:        g.cols,
		squares:     make([]Square, len(g.squares)),
		tilesPlayed: g.tilesPlayed,
	}
	copy(c.squares, g.squares)
	return c
}

// CopyFrom copies the squares of a same-sized board into this one.
func (g *GameBoard) CopyFrom(other *GameBoard) {
	if g.rows != other.rows || g.cols != other.cols {
		g.rows, g.cols = other.rows, other.cols
		g.squares = make([]Square, len(other.squares))
	}
	for i := range other.squares {
		g.squares[i].copyFrom(&other.squares[i])
	}
	g.tilesPlayed = other.tilesPlayed
}

func (g *GameBoard) Equals(g2 *GameBoard) bool {
	if g.rows != g2.rows || g.cols != g2.cols {
		return false
	}
	for i := range g.squares {
		if !g.squares[i].equals(&g2.squares[i]) {
			return false
		}
	}
	return true
}
