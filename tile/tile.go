// Package tile holds the oriented four-edge tile used throughout the engine.
package tile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Edge indices into a Tile.
const (
	North = iota
	East
	South
	West
)

// NumEdges is the number of edges on every tile.
const NumEdges = 4

var ErrBadTile = errors.New("bad tile")

// A Tile is four edge labels, ordered north, east, south, west.
type Tile [NumEdges]int

// New creates a tile from its four edges.
func New(n, e, s, w int) Tile {
	return Tile{n, e, s, w}
}

func (t Tile) North() int { return t[North] }
func (t Tile) East() int  { return t[East] }
func (t Tile) South() int { return t[South] }
func (t Tile) West() int  { return t[West] }

// Rotate returns t turned clockwise by k quarter turns. k is taken modulo 4,
// so negative counts turn anti-clockwise.
func Rotate(t Tile, k int) Tile {
	k = ((k % NumEdges) + NumEdges) % NumEdges
	for ; k > 0; k-- {
		t = Tile{t[West], t[North], t[East], t[South]}
	}
	return t
}

// Orientations returns the distinct orientations of t, in rotation order.
// A tile with all-equal edges has one; a tile like (1,2,1,2) has two.
func (t Tile) Orientations() []Tile {
	out := make([]Tile, 0, NumEdges)
	for k := 0; k < NumEdges; k++ {
		r := Rotate(t, k)
		dupe := false
		for _, o := range out {
			if o == r {
				dupe = true
				break
			}
		}
		if !dupe {
			out = append(out, r)
		}
	}
	return out
}

// Symmetric is true if every rotation of t is identical to t.
func (t Tile) Symmetric() bool {
	return Rotate(t, 1) == t
}

// Equivalent returns true if some rotation of a yields b.
func Equivalent(a, b Tile) bool {
	for k := 0; k < NumEdges; k++ {
		if Rotate(a, k) == b {
			return true
		}
	}
	return false
}

// RotationTo returns the smallest k such that Rotate(a, k) == b, or -1.
func RotationTo(a, b Tile) int {
	for k := 0; k < NumEdges; k++ {
		if Rotate(a, k) == b {
			return k
		}
	}
	return -1
}

// Less orders tiles lexicographically by edge, north first.
func Less(a, b Tile) bool {
	for i := 0; i < NumEdges; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// String is the compact form, e.g. "1,2,1,2".
func (t Tile) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", t[North], t[East], t[South], t[West])
}

// Parse reads a tile in the form "n,e,s,w". Surrounding parentheses and
// spaces are tolerated, so "(1, 2, 1, 2)" parses as well.
func Parse(s string) (Tile, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	fields := strings.Split(s, ",")
	if len(fields) != NumEdges {
		return Tile{}, fmt.Errorf("%w: %q needs %d comma-separated edges", ErrBadTile, s, NumEdges)
	}
	var t Tile
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return Tile{}, fmt.Errorf("%w: edge %d of %q: %v", ErrBadTile, i, s, err)
		}
		t[i] = v
	}
	return t, nil
}

// MustParse is Parse for literals in tests and fixtures; it panics on error.
func MustParse(s string) Tile {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}
