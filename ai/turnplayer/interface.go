package turnplayer

import (
	"github.com/domino14/quatrominos/game"
	"github.com/domino14/quatrominos/move"
)

// AITurnPlayer picks a move for the player on turn. It must leave g as it
// found it; committing the move is up to the caller.
type AITurnPlayer interface {
	BestMove(g *game.Game) (move.Move, error)
	Name() string
}
