package turnplayer

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/domino14/quatrominos/endgame"
	"github.com/domino14/quatrominos/game"
	"github.com/domino14/quatrominos/move"
)

// SolvingPlayer plays a winning move whenever the solver finds one. In a
// lost position, or when the solver runs out of budget, it plays greedily.
type SolvingPlayer struct {
	ctx    context.Context
	solver endgame.Solver
	greedy *GreedyPlayer
}

func NewSolvingPlayer(ctx context.Context, s endgame.Solver) *SolvingPlayer {
	return &SolvingPlayer{ctx: ctx, solver: s, greedy: NewGreedyPlayer()}
}

func (p *SolvingPlayer) Name() string {
	return "solver"
}

func (p *SolvingPlayer) BestMove(g *game.Game) (move.Move, error) {
	win, pv, err := p.solver.Solve(p.ctx, g)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return move.Move{}, err
		}
		log.Err(err).Msg("solver-failed-falling-back-to-greedy")
		return p.greedy.BestMove(g)
	}
	if win && len(pv) > 0 {
		return pv[0], nil
	}
	return p.greedy.BestMove(g)
}
