package board

// This file contains some sample filled boards, used solely for testing.

import (
	"fmt"

	"github.com/domino14/quatrominos/tile"
)

// VsWho names a sample board.
type VsWho string

const (
	// VsGreedyTrap is the 3x3 middle-row position where the greedy move
	// loses and a quieter move wins.
	VsGreedyTrap VsWho = "greedy-trap"
	// VsFourFours has a lone (4,4,4,4) in the middle of a 5x5 board.
	VsFourFours VsWho = "four-fours"
	// VsTwos has a lone (2,2,2,2) in the middle of a 3x3 board.
	VsTwos VsWho = "twos"
	// VsOpeningPair is a 5x5 board after one move by each player.
	VsOpeningPair VsWho = "opening-pair"
)

type placement struct {
	row, col int
	t        tile.Tile
}

var sampleBoards = map[VsWho]struct {
	rows, cols int
	tiles      []placement
}{
	VsGreedyTrap: {3, 3, []placement{
		{1, 0, tile.New(4, 1, 2, 1)},
		{1, 1, tile.New(2, 3, 0, 1)},
		{1, 2, tile.New(3, 3, 3, 3)},
	}},
	VsFourFours: {5, 5, []placement{
		{2, 2, tile.New(4, 4, 4, 4)},
	}},
	VsTwos: {3, 3, []placement{
		{1, 1, tile.New(2, 2, 2, 2)},
	}},
	VsOpeningPair: {5, 5, []placement{
		{2, 2, tile.New(1, 2, 2, 1)},
		{1, 2, tile.New(2, 4, 1, 1)},
	}},
}

// MakeSampleBoard builds one of the sample boards above.
func MakeSampleBoard(v VsWho) (*GameBoard, error) {
	sb, ok := sampleBoards[v]
	if !ok {
		return nil, fmt.Errorf("no sample board named %q", v)
	}
	b, err := MakeBoard(sb.rows, sb.cols)
	if err != nil {
		return nil, err
	}
	for _, p := range sb.tiles {
		b.Place(p.row, p.col, p.t)
	}
	return b, nil
}
