package turnplayer

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/quatrominos/endgame/negamax"
	"github.com/domino14/quatrominos/move"
	"github.com/domino14/quatrominos/position"
	"github.com/domino14/quatrominos/tile"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

const greedyTrap = "3x3 1,0=4,1,2,1;1,1=2,3,0,1;1,2=3,3,3,3 1,1,1,4;2,2,2,2 1,4,1,4;5,3,1,5 0"

func TestGreedyFallsIntoTrap(t *testing.T) {
	is := is.New(t)
	g, err := position.Parse(greedyTrap, false)
	is.NoErr(err)
	before := position.String(g)

	m, err := NewGreedyPlayer().BestMove(g)
	is.NoErr(err)
	is.True(m.Equals(move.NewPlacementMove(0, 1, tile.New(2, 2, 2, 2), 0)))
	// nothing was committed.
	is.Equal(position.String(g), before)
	is.Equal(len(g.History()), 0)

	// the optimal player wins from here...
	s := negamax.NewSolver()
	win, err := s.CanForceWin(context.Background(), g)
	is.NoErr(err)
	is.True(win)

	// ...but after the greedy move, player 1 does.
	is.NoErr(g.PlayMove(m, true))
	is.Equal(g.PlayerOnTurn(), 1)
	win, err = s.CanForceWin(context.Background(), g)
	is.NoErr(err)
	is.True(win)
}

func TestEvaluate(t *testing.T) {
	g, err := position.Parse(greedyTrap, false)
	assert.NoError(t, err)
	evals, err := NewGreedyPlayer().Evaluate(g)
	assert.NoError(t, err)
	assert.Len(t, evals, 9)

	counts := map[string]int{}
	for _, e := range evals {
		counts[e.Move.ShortDescription()] = e.OpponentMoves
	}
	assert.Equal(t, 1, counts["0,1 (2,2,2,2)"])
	assert.Less(t, 1, counts["0,0 (1,1,4,1)"])
	assert.Equal(t, greedyTrap, position.String(g))
}

func TestGreedyNoMoves(t *testing.T) {
	is := is.New(t)
	g, err := position.Parse(
		"5x5 2,2=4,4,4,4 1,1,1,1;1,1,1,2;1,2,1,2;2,2,1,1 1,1,1,1;2,2,2,2;1,1,1,3;3,3,3,3 0", false)
	is.NoErr(err)
	_, err = NewGreedyPlayer().BestMove(g)
	is.True(errors.Is(err, ErrNoMoves))
}

func TestSolvingPlayer(t *testing.T) {
	is := is.New(t)
	g, err := position.Parse(greedyTrap, false)
	is.NoErr(err)
	p := NewSolvingPlayer(context.Background(), negamax.NewSolver())
	m, err := p.BestMove(g)
	is.NoErr(err)
	is.True(m.Equals(move.NewPlacementMove(0, 0, tile.New(1, 1, 1, 4), 3)))
	is.Equal(position.String(g), greedyTrap)
}

func TestSolvingPlayerOutOfBudget(t *testing.T) {
	is := is.New(t)
	g, err := position.Parse(greedyTrap, false)
	is.NoErr(err)
	var p AITurnPlayer = NewSolvingPlayer(context.Background(), negamax.NewSolver(negamax.WithMaxNodes(1)))
	m, err := p.BestMove(g)
	is.NoErr(err)
	// falls back to the greedy choice.
	is.True(m.Equals(move.NewPlacementMove(0, 1, tile.New(2, 2, 2, 2), 0)))
}
