// Package hand holds a player's unplaced tiles.
package hand

import (
	"errors"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/quatrominos/tile"
)

var ErrTileNotInHand = errors.New("tile not in hand")

// Hand is a multiset of tiles. Two physical tiles with the same four labels
// are kept as a count of two, unless the hand collapses duplicates, in which
// case every value is held at most once (the behavior of a plain set).
type Hand struct {
	counts    map[tile.Tile]int
	numTiles  int
	collapsed bool
}

// New creates a hand holding the given tiles.
func New(tiles ...tile.Tile) *Hand {
	h := &Hand{counts: make(map[tile.Tile]int)}
	for _, t := range tiles {
		h.Add(t)
	}
	return h
}

// NewCollapsed creates a hand that keeps one copy of each tile value.
func NewCollapsed(tiles ...tile.Tile) *Hand {
	h := &Hand{counts: make(map[tile.Tile]int), collapsed: true}
	for _, t := range tiles {
		h.Add(t)
	}
	return h
}

// FromTiles picks New or NewCollapsed.
func FromTiles(tiles []tile.Tile, collapse bool) *Hand {
	if collapse {
		return NewCollapsed(tiles...)
	}
	return New(tiles...)
}

func (h *Hand) Collapsed() bool {
	return h.collapsed
}

// Add puts a tile into the hand. In a collapsed hand, adding a value that is
// already held does nothing.
func (h *Hand) Add(t tile.Tile) {
	if h.collapsed && h.counts[t] > 0 {
		return
	}
	h.counts[t]++
	h.numTiles++
}

// Take removes one copy of t.
func (h *Hand) Take(t tile.Tile) error {
	ct := h.counts[t]
	if ct == 0 {
		return ErrTileNotInHand
	}
	if ct == 1 {
		delete(h.counts, t)
	} else {
		h.counts[t] = ct - 1
	}
	h.numTiles--
	return nil
}

func (h *Hand) Has(t tile.Tile) bool {
	return h.counts[t] > 0
}

func (h *Hand) Count(t tile.Tile) int {
	return h.counts[t]
}

// NumTiles counts duplicates.
func (h *Hand) NumTiles() int {
	return h.numTiles
}

func (h *Hand) IsEmpty() bool {
	return h.numTiles == 0
}

// Distinct returns each tile value held, sorted. Physical duplicates are
// interchangeable, so move generation only needs to consider one of each.
func (h *Hand) Distinct() []tile.Tile {
	ts := lo.Keys(h.counts)
	sort.Slice(ts, func(i, j int) bool { return tile.Less(ts[i], ts[j]) })
	return ts
}

// Tiles returns every tile in the hand, duplicates included, sorted.
func (h *Hand) Tiles() []tile.Tile {
	out := make([]tile.Tile, 0, h.numTiles)
	for _, t := range h.Distinct() {
		for i := 0; i < h.counts[t]; i++ {
			out = append(out, t)
		}
	}
	return out
}

// Copy returns a deep copy of this hand.
func (h *Hand) Copy() *Hand {
	c := &Hand{
		counts:    make(map[tile.Tile]int, len(h.counts)),
		numTiles:  h.numTiles,
		collapsed: h.collapsed,
	}
	for t, ct := range h.counts {
		c.counts[t] = ct
	}
	return c
}

func (h *Hand) Equals(other *Hand) bool {
	if h.numTiles != other.numTiles || len(h.counts) != len(other.counts) {
		return false
	}
	for t, ct := range h.counts {
		if other.counts[t] != ct {
			return false
		}
	}
	return true
}

// String lists the tiles separated by semicolons, or "-" for an empty hand.
func (h *Hand) String() string {
	if h.IsEmpty() {
		return "-"
	}
	return strings.Join(lo.Map(h.Tiles(), func(t tile.Tile, _ int) string {
		return t.String()
	}), ";")
}
