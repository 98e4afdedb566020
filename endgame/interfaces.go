package endgame

import (
	"context"

	"github.com/domino14/quatrominos/game"
	"github.com/domino14/quatrominos/move"
)

// Solver decides positions exactly. There is no score: the player on turn
// either can force a win or cannot.
type Solver interface {
	CanForceWin(ctx context.Context, g *game.Game) (bool, error)
	Solve(ctx context.Context, g *game.Game) (bool, []move.Move, error)
	Nodes() uint64
}
