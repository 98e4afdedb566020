// Package position reads and writes positions in a one-line text notation:
//
//	<rows>x<cols> <cells> <hand0> <hand1> <onturn>
//
// cells is a semicolon-separated list of r,c=n,e,s,w entries, and each hand
// is a semicolon-separated list of n,e,s,w tiles. An empty list is written
// as "-". For example:
//
//	3x3 1,0=4,1,2,1;1,1=2,3,0,1;1,2=3,3,3,3 1,1,1,4;2,2,2,2 1,4,1,4;5,3,1,5 0
package position

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"

	"github.com/domino14/quatrominos/board"
	"github.com/domino14/quatrominos/game"
	"github.com/domino14/quatrominos/hand"
	"github.com/domino14/quatrominos/tile"
)

const emptyList = "-"

var ErrBadPosition = errors.New("bad position")

func parseDims(s string) (int, int, error) {
	dims := strings.Split(strings.ToLower(s), "x")
	if len(dims) != 2 {
		return 0, 0, fmt.Errorf("%w: dimensions must look like 5x5, got %q", ErrBadPosition, s)
	}
	rows, err := strconv.Atoi(dims[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: rows: %v", ErrBadPosition, err)
	}
	cols, err := strconv.Atoi(dims[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: cols: %v", ErrBadPosition, err)
	}
	return rows, cols, nil
}

// ParseBoardDims reads "RxC".
func ParseBoardDims(s string) (int, int, error) {
	return parseDims(s)
}

func parseCells(b *board.GameBoard, s string) error {
	if s == emptyList {
		return nil
	}
	for _, cell := range strings.Split(s, ";") {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		locAndTile := strings.SplitN(cell, "=", 2)
		if len(locAndTile) != 2 {
			return fmt.Errorf("%w: cell %q must look like r,c=n,e,s,w", ErrBadPosition, cell)
		}
		loc := strings.Split(locAndTile[0], ",")
		if len(loc) != 2 {
			return fmt.Errorf("%w: cell location %q", ErrBadPosition, locAndTile[0])
		}
		row, err := strconv.Atoi(strings.TrimSpace(loc[0]))
		if err != nil {
			return fmt.Errorf("%w: cell row: %v", ErrBadPosition, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(loc[1]))
		if err != nil {
			return fmt.Errorf("%w: cell col: %v", ErrBadPosition, err)
		}
		if !b.OnBoard(row, col) {
			return fmt.Errorf("%w: cell %d,%d is off the %dx%d board", ErrBadPosition,
				row, col, b.Rows(), b.Cols())
		}
		if b.Occupied(row, col) {
			return fmt.Errorf("%w: cell %d,%d given twice", ErrBadPosition, row, col)
		}
		t, err := tile.Parse(locAndTile[1])
		if err != nil {
			return err
		}
		b.Place(row, col, t)
	}
	return nil
}

// ParseTiles reads a semicolon-separated tile list, or "-".
func ParseTiles(s string) ([]tile.Tile, error) {
	if s == emptyList {
		return nil, nil
	}
	tiles := []tile.Tile{}
	for _, ts := range strings.Split(s, ";") {
		if strings.TrimSpace(ts) == "" {
			continue
		}
		t, err := tile.Parse(ts)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

// Parse returns a game set up as described by s. If collapse is true the
// hands keep at most one tile of each value.
func Parse(s string, collapse bool) (*game.Game, error) {
	fields := strings.Fields(s)
	if len(fields) != 5 {
		return nil, fmt.Errorf("%w: need 5 space-separated fields, got %d", ErrBadPosition, len(fields))
	}
	rows, cols, err := parseDims(fields[0])
	if err != nil {
		return nil, err
	}
	b, err := board.MakeBoard(rows, cols)
	if err != nil {
		return nil, err
	}
	if err = parseCells(b, fields[1]); err != nil {
		return nil, err
	}
	var hands [game.NumPlayers]*hand.Hand
	for i := range hands {
		tiles, err := ParseTiles(fields[2+i])
		if err != nil {
			return nil, err
		}
		hands[i] = hand.FromTiles(tiles, collapse)
	}
	onturn, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("%w: player on turn: %v", ErrBadPosition, err)
	}
	g, err := game.NewGame(b, hands[0], hands[1], onturn)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("rows", rows).Int("cols", cols).Int("tiles-played", b.TilesPlayed()).
		Msg("parsed-position")
	return g, nil
}

// String writes g in position notation. Cells are row-major and hand tiles
// sorted, so equal positions give equal strings.
func String(g *game.Game) string {
	b := g.Board()
	cells := []string{}
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			if t, ok := b.At(r, c); ok {
				cells = append(cells, fmt.Sprintf("%d,%d=%v", r, c, t))
			}
		}
	}
	cellStr := emptyList
	if len(cells) > 0 {
		cellStr = strings.Join(cells, ";")
	}
	return fmt.Sprintf("%dx%d %s %s %s %d", b.Rows(), b.Cols(), cellStr,
		g.HandFor(0).String(), g.HandFor(1).String(), g.PlayerOnTurn())
}

// Fingerprint is a stable 64-bit digest of the position, suitable for
// naming or comparing positions across runs. Unlike a zobrist key it does
// not depend on random tables.
func Fingerprint(g *game.Game) uint64 {
	return xxhash.Sum64String(String(g))
}
