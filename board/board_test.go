package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/quatrominos/tile"
)

func TestMakeBoardBadDims(t *testing.T) {
	is := is.New(t)
	_, err := MakeBoard(0, 3)
	is.True(errors.Is(err, ErrInvalidConfiguration))
	_, err = MakeBoard(3, -1)
	is.True(errors.Is(err, ErrInvalidConfiguration))
}

func TestAdjacentLocationsEmptyBoard(t *testing.T) {
	is := is.New(t)
	b, err := MakeBoard(5, 5)
	is.NoErr(err)
	is.True(b.IsEmpty())
	locs, err := b.AdjacentLocations()
	is.NoErr(err)
	is.Equal(locs, []Location{{2, 2}})

	b, err = MakeBoard(3, 7)
	is.NoErr(err)
	locs, err = b.AdjacentLocations()
	is.NoErr(err)
	is.Equal(locs, []Location{{1, 3}})
}

func TestAdjacentLocationsEvenBoard(t *testing.T) {
	is := is.New(t)
	for _, dims := range [][2]int{{4, 4}, {4, 5}, {5, 4}} {
		b, err := MakeBoard(dims[0], dims[1])
		is.NoErr(err)
		_, err = b.AdjacentLocations()
		is.True(errors.Is(err, ErrInvalidConfiguration))
	}
	// Once a tile is down, even boards are fine.
	b, err := MakeBoard(4, 4)
	is.NoErr(err)
	b.Place(0, 0, tile.New(1, 1, 1, 1))
	locs, err := b.AdjacentLocations()
	is.NoErr(err)
	is.Equal(locs, []Location{{0, 1}, {1, 0}})
}

func TestAdjacentLocationsGreedyTrap(t *testing.T) {
	is := is.New(t)
	b, err := MakeSampleBoard(VsGreedyTrap)
	is.NoErr(err)
	locs, err := b.AdjacentLocations()
	is.NoErr(err)
	is.Equal(locs, []Location{{0, 0}, {0, 1}, {0, 2}, {2, 0}, {2, 1}, {2, 2}})
	for _, l := range locs {
		is.True(!b.Occupied(l.Row, l.Col))
		hasNeighbor := b.Occupied(l.Row-1, l.Col) || b.Occupied(l.Row+1, l.Col) ||
			b.Occupied(l.Row, l.Col-1) || b.Occupied(l.Row, l.Col+1)
		is.True(hasNeighbor)
	}
}

func TestAdjacentLocationsFullBoard(t *testing.T) {
	is := is.New(t)
	b, err := MakeBoard(1, 3)
	is.NoErr(err)
	for c := 0; c < 3; c++ {
		b.Place(0, c, tile.New(2, 2, 2, 2))
	}
	locs, err := b.AdjacentLocations()
	is.NoErr(err)
	is.Equal(len(locs), 0)
}

func TestCanPlace(t *testing.T) {
	is := is.New(t)
	b, err := MakeSampleBoard(VsGreedyTrap)
	is.NoErr(err)

	cases := []struct {
		row, col int
		t        tile.Tile
		ok       bool
	}{
		// south neighbor (4,1,2,1) has north 4
		{0, 0, tile.New(1, 1, 4, 1), true},
		{0, 0, tile.New(1, 1, 1, 4), false},
		// north neighbor has south 2
		{2, 0, tile.New(2, 2, 2, 2), true},
		{2, 0, tile.New(1, 4, 1, 4), false},
		// north neighbor (2,3,0,1) has south 0
		{2, 1, tile.New(0, 9, 9, 9), true},
		{2, 1, tile.New(2, 2, 2, 2), false},
		{0, 2, tile.New(5, 5, 3, 1), true},
		{2, 2, tile.New(3, 1, 5, 5), true},
		// occupied
		{1, 1, tile.New(2, 3, 0, 1), false},
		// off-board
		{-1, 0, tile.New(1, 1, 4, 1), false},
		{0, 3, tile.New(1, 1, 1, 1), false},
	}
	for _, c := range cases {
		is.Equal(b.CanPlace(c.row, c.col, c.t), c.ok)
	}

	// a tile at (0,1) constrains (0,0) from the east too.
	b.Place(0, 1, tile.New(2, 2, 2, 2))
	is.True(!b.CanPlace(0, 0, tile.New(1, 1, 4, 1)))
	is.True(b.CanPlace(0, 0, tile.New(1, 2, 4, 1)))
}

func TestCanPlaceEmptyBoard(t *testing.T) {
	is := is.New(t)
	b, err := MakeBoard(3, 3)
	is.NoErr(err)
	is.True(b.CanPlace(0, 0, tile.New(1, 2, 3, 4)))
	is.True(b.CanPlace(1, 1, tile.New(9, 9, 9, 9)))
	is.True(!b.CanPlace(3, 0, tile.New(9, 9, 9, 9)))
}

func TestCanPlaceNotAdjacent(t *testing.T) {
	is := is.New(t)
	b, err := MakeSampleBoard(VsFourFours)
	is.NoErr(err)
	// matching labels don't matter if the cell is not touching anything.
	is.True(!b.CanPlace(0, 0, tile.New(4, 4, 4, 4)))
	is.True(b.CanPlace(1, 2, tile.New(4, 4, 4, 4)))
}

func TestEdgeMatchingIsSymmetric(t *testing.T) {
	is := is.New(t)
	a := tile.New(1, 7, 2, 3)
	bt := tile.New(5, 6, 4, 7)

	// a first, b to its east.
	b1, err := MakeBoard(1, 3)
	is.NoErr(err)
	b1.Place(0, 1, a)
	is.True(b1.CanPlace(0, 2, bt))

	// b first, a to its west.
	b2, err := MakeBoard(1, 3)
	is.NoErr(err)
	b2.Place(0, 1, bt)
	is.True(b2.CanPlace(0, 0, a))

	// same for north/south.
	c := tile.New(0, 0, 8, 0)
	d := tile.New(8, 1, 1, 1)
	b3, err := MakeBoard(3, 1)
	is.NoErr(err)
	b3.Place(1, 0, c)
	is.True(b3.CanPlace(2, 0, d))
	b4, err := MakeBoard(3, 1)
	is.NoErr(err)
	b4.Place(1, 0, d)
	is.True(b4.CanPlace(0, 0, c))
}

func TestPlaceRemoveCopy(t *testing.T) {
	is := is.New(t)
	b, err := MakeBoard(3, 3)
	is.NoErr(err)
	b.Place(1, 1, tile.New(1, 2, 3, 4))
	is.Equal(b.TilesPlayed(), 1)
	c := b.Copy()
	is.True(c.Equals(b))
	c.Place(0, 1, tile.New(3, 3, 1, 3))
	is.True(!c.Equals(b))
	is.Equal(b.TilesPlayed(), 1)
	c.Remove(0, 1)
	is.True(c.Equals(b))
	c.Remove(1, 1)
	is.True(c.IsEmpty())
	c.CopyFrom(b)
	is.True(c.Equals(b))
	tl, ok := c.At(1, 1)
	is.True(ok)
	is.Equal(tl, tile.New(1, 2, 3, 4))
}

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	b, err := MakeBoard(1, 2)
	is.NoErr(err)
	b.Place(0, 0, tile.New(1, 2, 3, 4))
	expected := "" +
		"+-----+ +-----+\n" +
		"|  1  | |     |\n" +
		"|4   2| |     |\n" +
		"|  3  | |     |\n" +
		"+-----+ +-----+\n"
	is.Equal(b.ToDisplayText(), expected)
}

func TestToDisplayTextWideLabels(t *testing.T) {
	is := is.New(t)
	b, err := MakeBoard(1, 1)
	is.NoErr(err)
	b.Place(0, 0, tile.New(12, 3, 4, 5))
	expected := "" +
		"+-------+\n" +
		"|   12  |\n" +
		"| 5    3|\n" +
		"|    4  |\n" +
		"+-------+\n"
	is.Equal(b.ToDisplayText(), expected)
}
