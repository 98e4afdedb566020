package turnplayer

import (
	"errors"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/domino14/quatrominos/game"
	"github.com/domino14/quatrominos/move"
)

var ErrNoMoves = errors.New("player on turn has no legal move")

// Evaluation is a candidate move and how many replies it leaves the
// opponent.
type Evaluation struct {
	Move          move.Move
	OpponentMoves int
}

// GreedyPlayer looks one ply ahead: it plays whatever leaves the opponent
// the fewest legal replies. This is fast, and not always right.
type GreedyPlayer struct{}

func NewGreedyPlayer() *GreedyPlayer {
	return &GreedyPlayer{}
}

func (p *GreedyPlayer) Name() string {
	return "greedy"
}

// trial plays m on g, counts the opponent's replies, and takes m back. The
// move is taken back however this returns.
func trial(g *game.Game, m move.Move) (int, error) {
	opp := g.Opponent()
	if err := g.PlayMove(m, false); err != nil {
		return 0, err
	}
	defer g.UnplayLastMove()
	return g.CountAvailableMoves(opp)
}

// Evaluate scores every legal move for the player on turn, in generation
// order (cells row-major, hand tiles sorted, rotations 0 through 3).
func (p *GreedyPlayer) Evaluate(g *game.Game) ([]Evaluation, error) {
	plays, err := g.GenAllMoves()
	if err != nil {
		return nil, err
	}
	evals := make([]Evaluation, 0, len(plays))
	for _, m := range plays {
		n, err := trial(g, m)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("move", m.ShortDescription()).Int("opp-moves", n).Msg("greedy-trial")
		evals = append(evals, Evaluation{Move: m, OpponentMoves: n})
	}
	return evals, nil
}

// BestMove returns the first move, in generation order, that leaves the
// opponent with the fewest replies.
func (p *GreedyPlayer) BestMove(g *game.Game) (move.Move, error) {
	evals, err := p.Evaluate(g)
	if err != nil {
		return move.Move{}, err
	}
	if len(evals) == 0 {
		return move.Move{}, ErrNoMoves
	}
	best := -1
	fewest := math.MaxInt
	for i, e := range evals {
		if e.OpponentMoves < fewest {
			fewest = e.OpponentMoves
			best = i
		}
	}
	log.Debug().Str("move", evals[best].Move.ShortDescription()).Int("opp-moves", fewest).
		Msg("greedy-best")
	return evals[best].Move, nil
}
