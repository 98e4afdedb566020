package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/quatrominos/game"
	"github.com/domino14/quatrominos/move"
	"github.com/domino14/quatrominos/tile"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for a tile-placement position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
// Edge labels are unbounded integers, so instead of one key per
// (square, label) we keep one key per square and mix the tile into it.
type Zobrist struct {
	theirTurn uint64

	posTable  []uint64
	handTable [game.NumPlayers]uint64
	tileSeed  uint64

	rows, cols int
}

func (z *Zobrist) Initialize(rows, cols int) {
	z.rows = rows
	z.cols = cols
	z.posTable = make([]uint64, rows*cols)
	for i := range z.posTable {
		z.posTable[i] = frand.Uint64n(bignum) + 1
	}
	for i := range z.handTable {
		z.handTable[i] = frand.Uint64n(bignum) + 1
	}
	z.tileSeed = frand.Uint64n(bignum) + 1
	z.theirTurn = frand.Uint64n(bignum) + 1
}

// Dims returns the board dimensions the tables were built for.
func (z *Zobrist) Dims() (int, int) {
	return z.rows, z.cols
}

// https://stackoverflow.com/a/12996028/1737333
func hashUint64(x uint64) uint64 {
	x = (x ^ (x >> 30)) * uint64(0xbf58476d1ce4e5b9)
	x = (x ^ (x >> 27)) * uint64(0x94d049bb133111eb)
	x = x ^ (x >> 31)
	return x
}

func (z *Zobrist) tileKey(t tile.Tile) uint64 {
	k := z.tileSeed
	for _, e := range t {
		k = hashUint64(k ^ uint64(int64(e)))
	}
	return k
}

func (z *Zobrist) squareKey(row, col int, t tile.Tile) uint64 {
	return hashUint64(z.posTable[row*z.cols+col] ^ z.tileKey(t))
}

func (z *Zobrist) handKey(player int, t tile.Tile, ct int) uint64 {
	if ct == 0 {
		return 0
	}
	return hashUint64(z.handTable[player] ^ z.tileKey(t) ^ hashUint64(uint64(ct)))
}

// Hash computes the key of the whole position from scratch.
func (z *Zobrist) Hash(g *game.Game) uint64 {
	key := uint64(0)
	b := g.Board()
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			if t, ok := b.At(r, c); ok {
				key ^= z.squareKey(r, c, t)
			}
		}
	}
	for p := 0; p < game.NumPlayers; p++ {
		h := g.HandFor(p)
		for _, t := range h.Distinct() {
			key ^= z.handKey(p, t, h.Count(t))
		}
	}
	if g.PlayerOnTurn() == 1 {
		key ^= z.theirTurn
	}
	return key
}

// AddMove updates key for m played by mover, who held ctBefore copies of
// the move's tile before playing it. Calling it again with the same
// arguments takes the move back out of the key.
func (z *Zobrist) AddMove(key uint64, m move.Move, mover int, ctBefore int) uint64 {
	key ^= z.squareKey(m.Row(), m.Col(), m.Tile())
	key ^= z.handKey(mover, m.Source(), ctBefore)
	key ^= z.handKey(mover, m.Source(), ctBefore-1)
	key ^= z.theirTurn
	return key
}
