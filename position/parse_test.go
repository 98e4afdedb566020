package position

import (
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/quatrominos/board"
	"github.com/domino14/quatrominos/tile"
)

const greedyTrap = "3x3 1,0=4,1,2,1;1,1=2,3,0,1;1,2=3,3,3,3 1,1,1,4;2,2,2,2 1,4,1,4;5,3,1,5 0"

func TestParse(t *testing.T) {
	is := is.New(t)
	g, err := Parse(greedyTrap, false)
	is.NoErr(err)
	is.Equal(g.Board().Rows(), 3)
	is.Equal(g.Board().Cols(), 3)
	is.Equal(g.Board().TilesPlayed(), 3)
	t10, ok := g.Board().At(1, 0)
	is.True(ok)
	is.Equal(t10, tile.New(4, 1, 2, 1))
	is.True(g.HandFor(0).Has(tile.New(2, 2, 2, 2)))
	is.True(g.HandFor(1).Has(tile.New(5, 3, 1, 5)))
	is.Equal(g.PlayerOnTurn(), 0)

	sample, err := board.MakeSampleBoard(board.VsGreedyTrap)
	is.NoErr(err)
	is.True(g.Board().Equals(sample))
}

func TestRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, pos := range []string{
		greedyTrap,
		"5x5 - 1,1,1,1;1,1,1,3;1,2,1,2;1,3,1,3 1,4,1,4;2,2,2,2;2,4,1,1;3,3,3,3 1",
		"3x3 1,1=2,2,2,2 2,2,2,2;2,2,2,2 - 0",
	} {
		g, err := Parse(pos, false)
		is.NoErr(err)
		is.Equal(String(g), pos)
	}
}

func TestStringNormalizes(t *testing.T) {
	is := is.New(t)
	// hand order and cell order don't matter.
	a, err := Parse("3x3 1,2=3,3,3,3;1,0=4,1,2,1;1,1=2,3,0,1 2,2,2,2;1,1,1,4 1,4,1,4;5,3,1,5 0", false)
	is.NoErr(err)
	b, err := Parse(greedyTrap, false)
	is.NoErr(err)
	is.Equal(String(a), String(b))
	is.Equal(Fingerprint(a), Fingerprint(b))

	is.NoErr(b.SetPlayerOnTurn(1))
	is.True(Fingerprint(a) != Fingerprint(b))
}

func TestCollapse(t *testing.T) {
	is := is.New(t)
	pos := "3x3 1,1=2,2,2,2 2,2,2,2;2,2,2,2;2,2,2,2 2,2,2,2 0"
	g, err := Parse(pos, false)
	is.NoErr(err)
	is.Equal(g.HandFor(0).NumTiles(), 3)
	g, err = Parse(pos, true)
	is.NoErr(err)
	is.Equal(g.HandFor(0).NumTiles(), 1)
}

func TestParseErrors(t *testing.T) {
	is := is.New(t)
	for _, tc := range []struct {
		pos    string
		target error
	}{
		{"3x3 - - -", ErrBadPosition},
		{"3by3 - - - 0", ErrBadPosition},
		{"3x3 1,1 - - 0", ErrBadPosition},
		{"3x3 5,5=1,1,1,1 - - 0", ErrBadPosition},
		{"3x3 1,1=1,1,1,1;1,1=2,2,2,2 - - 0", ErrBadPosition},
		{"3x3 1,1=1,1,1 - - 0", tile.ErrBadTile},
		{"3x3 - 1,1,x,1 - 0", tile.ErrBadTile},
		{"0x3 - - - 0", board.ErrInvalidConfiguration},
	} {
		_, err := Parse(tc.pos, false)
		is.True(errors.Is(err, tc.target))
	}
	_, err := Parse("3x3 - - - 2", false)
	is.True(err != nil)
}

func TestLoadScenarios(t *testing.T) {
	is := is.New(t)
	f, err := os.Open("testdata/scenarios.yaml")
	is.NoErr(err)
	defer f.Close()
	scenarios, err := LoadScenarios(f)
	is.NoErr(err)
	is.True(len(scenarios) >= 4)
	is.Equal(scenarios[0].Name, "greedy-trap")
	is.True(*scenarios[0].CanForceWin)
	is.Equal(scenarios[0].Moves, []int{9, 4})
	for _, s := range scenarios {
		g, err := s.Game()
		is.NoErr(err)
		is.Equal(s.Collapse, g.HandFor(0).Collapsed())
		if !s.Collapse {
			// fixtures are written the way String writes them.
			is.Equal(String(g), s.Position)
		}
	}
}
