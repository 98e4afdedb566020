// Package game encapsulates the mechanics of a two-player tile-placement
// game: whose turn it is, what each player holds, and how a placement is
// played and taken back.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/quatrominos/board"
	"github.com/domino14/quatrominos/hand"
	"github.com/domino14/quatrominos/move"
	"github.com/domino14/quatrominos/movegen"
)

const NumPlayers = 2

var (
	ErrInvalidPlayer     = errors.New("player index must be 0 or 1")
	ErrIllegalPlacement  = errors.New("tile cannot be placed there")
	ErrTileNotInHand     = hand.ErrTileNotInHand
	ErrNothingToUnplay   = errors.New("no move to unplay")
	ErrHandsNotAvailable = errors.New("both hands are required")
)

// Game is the full state of a game: the board, both hands and the player
// on turn. Played moves are kept on a stack so they can be taken back in
// reverse order; search and trial placements rely on this.
type Game struct {
	board  *board.GameBoard
	hands  [NumPlayers]*hand.Hand
	onturn int
	gen    *movegen.TileGenerator

	history []move.Move
}

func otherPlayer(idx int) int {
	return (idx + 1) % NumPlayers
}

// NewGame creates a game from a board, two hands, and the player to move.
// The game takes ownership of its arguments.
func NewGame(b *board.GameBoard, h0, h1 *hand.Hand, onturn int) (*Game, error) {
	if b == nil || h0 == nil || h1 == nil {
		return nil, ErrHandsNotAvailable
	}
	if onturn != 0 && onturn != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayer, onturn)
	}
	return &Game{
		board:  b,
		hands:  [NumPlayers]*hand.Hand{h0, h1},
		onturn: onturn,
		gen:    movegen.NewTileGenerator(b),
	}, nil
}

func (g *Game) Board() *board.GameBoard {
	return g.board
}

func (g *Game) HandFor(playerIdx int) *hand.Hand {
	return g.hands[playerIdx]
}

func (g *Game) PlayerOnTurn() int {
	return g.onturn
}

// Opponent is the player not on turn.
func (g *Game) Opponent() int {
	return otherPlayer(g.onturn)
}

func (g *Game) SetPlayerOnTurn(onturn int) error {
	if onturn != 0 && onturn != 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPlayer, onturn)
	}
	g.onturn = onturn
	return nil
}

// MoveGenerator returns the generator bound to this game's board.
func (g *Game) MoveGenerator() movegen.MoveGenerator {
	return g.gen
}

// History is the list of moves played since the game was created.
func (g *Game) History() []move.Move {
	return g.history
}

// ValidateMove checks that the player on turn holds the move's tile and that
// the oriented tile may go where the move says.
func (g *Game) ValidateMove(m move.Move) error {
	if !g.hands[g.onturn].Has(m.Source()) {
		return fmt.Errorf("%w: %v (player %d)", ErrTileNotInHand, m.Source(), g.onturn)
	}
	if !g.board.CanPlace(m.Row(), m.Col(), m.Tile()) {
		return fmt.Errorf("%w: %v at %d,%d", ErrIllegalPlacement, m.Tile(), m.Row(), m.Col())
	}
	return nil
}

// PlayMove takes the move's tile from the mover's hand, places it, and
// passes the turn. If validate is false the caller vouches for the move;
// the search does this for moves it just generated.
func (g *Game) PlayMove(m move.Move, validate bool) error {
	if validate {
		if err := g.ValidateMove(m); err != nil {
			return err
		}
	}
	if err := g.hands[g.onturn].Take(m.Source()); err != nil {
		return fmt.Errorf("%w: %v (player %d)", err, m.Source(), g.onturn)
	}
	g.board.Place(m.Row(), m.Col(), m.Tile())
	g.history = append(g.history, m)
	g.onturn = otherPlayer(g.onturn)
	return nil
}

// UnplayLastMove takes back the most recent move: the cell is cleared, the
// tile goes back to the hand it came from, and the turn goes back.
func (g *Game) UnplayLastMove() error {
	if len(g.history) == 0 {
		return ErrNothingToUnplay
	}
	m := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.onturn = otherPlayer(g.onturn)
	g.board.Remove(m.Row(), m.Col())
	g.hands[g.onturn].Add(m.Source())
	return nil
}

// Copy returns a deep copy of the game, history included.
func (g *Game) Copy() *Game {
	b := g.board.Copy()
	c := &Game{
		board:  b,
		hands:  [NumPlayers]*hand.Hand{g.hands[0].Copy(), g.hands[1].Copy()},
		onturn: g.onturn,
		gen:    movegen.NewTileGenerator(b),
	}
	c.history = make([]move.Move, len(g.history))
	copy(c.history, g.history)
	return c
}

// CountAvailableMoves counts the placements available to playerIdx on the
// current board.
func (g *Game) CountAvailableMoves(playerIdx int) (int, error) {
	return g.gen.CountAvailableMoves(g.hands[playerIdx])
}

// GenAllMoves generates every legal placement for the player on turn.
func (g *Game) GenAllMoves() ([]move.Move, error) {
	return g.gen.GenAll(g.hands[g.onturn])
}

// HasNoMoves is the first way to lose: the player on turn still holds
// tiles but none of them can go anywhere.
func (g *Game) HasNoMoves() (bool, error) {
	h := g.hands[g.onturn]
	if h.IsEmpty() {
		return false, nil
	}
	ok, err := g.gen.HasMove(h)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// OpponentEmptied is the second way to lose: the opponent has played out
// while the player on turn still holds tiles.
func (g *Game) OpponentEmptied() bool {
	return g.hands[g.Opponent()].IsEmpty() && !g.hands[g.onturn].IsEmpty()
}

// PlayerHasLost returns true if the player on turn has already lost.
func (g *Game) PlayerHasLost() (bool, error) {
	if g.OpponentEmptied() {
		return true, nil
	}
	stuck, err := g.HasNoMoves()
	if err != nil {
		return false, err
	}
	if stuck {
		log.Debug().Int("onturn", g.onturn).Msg("no-moves-left")
	}
	return stuck, nil
}
