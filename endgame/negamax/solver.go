package negamax

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/quatrominos/config"
	"github.com/domino14/quatrominos/endgame"
	"github.com/domino14/quatrominos/game"
	"github.com/domino14/quatrominos/move"
	"github.com/domino14/quatrominos/tile"
	"github.com/domino14/quatrominos/zobrist"
)

// The search is a negamax with only two values: a position is a win for the
// player on turn if some move leads to a position that is not a win for the
// opponent.
/*
function canwin(node) is
    if node is lost for the player on turn then
        return false
    foreach child in children(node) do
        if not canwin(child) then
            return true
    return false
**/

// budgetCheckInterval is how many nodes go by between clock reads.
const budgetCheckInterval = 1024

var (
	ErrBudgetExceeded = errors.New("search budget exceeded")
	errKeyMismatch    = errors.New("incremental zobrist key does not match position")
)

// PVLine is a line of play found by the search: a winning move for the
// player on turn followed by the continuation, or, for a lost position, the
// first refuted try.
type PVLine struct {
	Moves []move.Move
	win   bool
}

// Clear the principal variation line.
func (pvLine *PVLine) Clear() {
	pvLine.Moves = nil
	pvLine.win = false
}

// Update the principal variation line with a new move, and the line of play
// after it.
func (pvLine *PVLine) Update(m move.Move, newPVLine PVLine, win bool) {
	pvLine.Clear()
	pvLine.Moves = append(pvLine.Moves, m)
	pvLine.Moves = append(pvLine.Moves, newPVLine.Moves...)
	pvLine.win = win
}

// Convert the principal variation line to a string.
func (pvLine PVLine) String() string {
	var s string
	s = fmt.Sprintf("PV; win %v\n", pvLine.win)
	for i := 0; i < len(pvLine.Moves); i++ {
		s += fmt.Sprintf("%d: %s\n", i+1, pvLine.Moves[i].ShortDescription())
	}
	return s
}

func (pvLine PVLine) NLBString() string {
	// no line breaks
	var s string
	s = fmt.Sprintf("PV; win %v; ", pvLine.win)
	for i := 0; i < len(pvLine.Moves); i++ {
		s += fmt.Sprintf("%d: %s; ", i+1, pvLine.Moves[i].ShortDescription())
	}
	return s
}

type Solver struct {
	zobrist *zobrist.Zobrist
	game    *game.Game

	solvingPlayer      int
	principalVariation PVLine

	maxNodes uint64
	maxTime  time.Duration
	deadline time.Time

	// rotationOrder is the order rotations of a tile are tried in. It
	// changes which branch is found first, never the answer.
	rotationOrder [tile.NumEdges]int

	nodes atomic.Uint64

	logStream io.Writer
	// checkKeys recomputes the zobrist key from scratch at every node and
	// compares it with the incrementally updated one.
	checkKeys bool
}

var _ endgame.Solver = (*Solver)(nil)

type SolverOption func(*Solver)

// WithMaxNodes stops the search with ErrBudgetExceeded after n nodes.
// 0 means no limit.
func WithMaxNodes(n uint64) SolverOption {
	return func(s *Solver) {
		s.maxNodes = n
	}
}

// WithMaxTime stops the search with ErrBudgetExceeded after d.
// 0 means no limit.
func WithMaxTime(d time.Duration) SolverOption {
	return func(s *Solver) {
		s.maxTime = d
	}
}

// WithLogStream writes a YAML-ish trace of the search tree to w. Only
// useful for tiny positions.
func WithLogStream(w io.Writer) SolverOption {
	return func(s *Solver) {
		s.logStream = w
	}
}

func withRotationOrder(order [tile.NumEdges]int) SolverOption {
	return func(s *Solver) {
		s.rotationOrder = order
	}
}

func withKeyCheck() SolverOption {
	return func(s *Solver) {
		s.checkKeys = true
	}
}

func NewSolver(opts ...SolverOption) *Solver {
	s := &Solver{
		zobrist:       &zobrist.Zobrist{},
		rotationOrder: [tile.NumEdges]int{0, 1, 2, 3},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSolverFromConfig reads the search budget from cfg.
func NewSolverFromConfig(cfg *config.Config, opts ...SolverOption) *Solver {
	maxNodes := cfg.GetInt(config.ConfigSolverMaxNodes)
	if maxNodes < 0 {
		maxNodes = 0
	}
	base := []SolverOption{
		WithMaxNodes(uint64(maxNodes)),
		WithMaxTime(cfg.GetDuration(config.ConfigSolverMaxTime)),
	}
	return NewSolver(append(base, opts...)...)
}

// Nodes is the number of positions visited by the last search.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

func (s *Solver) checkBudget(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	n := s.nodes.Load()
	if s.maxNodes > 0 && n > s.maxNodes {
		return fmt.Errorf("%w: more than %d nodes", ErrBudgetExceeded, s.maxNodes)
	}
	if s.maxTime > 0 && n%budgetCheckInterval == 0 && time.Now().After(s.deadline) {
		return fmt.Errorf("%w: more than %v", ErrBudgetExceeded, s.maxTime)
	}
	return nil
}

func (s *Solver) canWin(ctx context.Context, nodeKey uint64, depth int, pv *PVLine) (bool, error) {
	if err := s.checkBudget(ctx); err != nil {
		return false, err
	}
	g := s.game
	lost, err := g.PlayerHasLost()
	if err != nil {
		return false, err
	}
	if lost {
		return false, nil
	}
	onTurn := g.PlayerOnTurn()
	locs, err := g.Board().AdjacentLocations()
	if err != nil {
		return false, err
	}
	// Distinct allocates a fresh slice, so playing from the hand below
	// doesn't disturb the iteration.
	tiles := g.HandFor(onTurn).Distinct()

	indent := strings.Repeat(" ", 2*depth)
	if s.logStream != nil {
		fmt.Fprintf(s.logStream, "  %vplays:\n", indent)
	}
	childPV := PVLine{}
	refuted := false

	for _, loc := range locs {
		for _, t := range tiles {
			tried := make(map[tile.Tile]bool, tile.NumEdges)
			symmetric := t.Symmetric()
			for _, k := range s.rotationOrder {
				oriented := tile.Rotate(t, k)
				if tried[oriented] || !g.Board().CanPlace(loc.Row, loc.Col, oriented) {
					continue
				}
				tried[oriented] = true
				child := move.NewPlacementMove(loc.Row, loc.Col, t, k)
				ct := g.HandFor(onTurn).Count(t)
				childKey := s.zobrist.AddMove(nodeKey, child, onTurn, ct)
				if s.logStream != nil {
					fmt.Fprintf(s.logStream, "  %v- play: %v\n", indent, child.ShortDescription())
					fmt.Fprintf(s.logStream, "  %v  key: %016x\n", indent, childKey)
				}
				if err := g.PlayMove(child, false); err != nil {
					return false, err
				}
				s.nodes.Add(1)
				if err := s.verifyKey(childKey); err != nil {
					return false, err
				}
				oppWins, err := s.canWin(ctx, childKey, depth+1, &childPV)
				if uerr := g.UnplayLastMove(); uerr != nil {
					return false, uerr
				}
				if err != nil {
					return false, err
				}
				if err := s.verifyKey(nodeKey); err != nil {
					return false, err
				}
				if s.logStream != nil {
					fmt.Fprintf(s.logStream, "  %v  opponent-wins: %v\n", indent, oppWins)
				}
				if !oppWins {
					pv.Update(child, childPV, true)
					return true, nil
				}
				if !refuted {
					pv.Update(child, childPV, false)
					refuted = true
				}
				childPV.Clear()
				if symmetric {
					break
				}
			}
		}
	}
	return false, nil
}

func (s *Solver) verifyKey(key uint64) error {
	if !s.checkKeys {
		return nil
	}
	if actual := s.zobrist.Hash(s.game); actual != key {
		return fmt.Errorf("%w: have %016x, position is %016x", errKeyMismatch, key, actual)
	}
	return nil
}

// Solve decides whether the player on turn in g can force a win, and
// returns the line of play that shows it. g is not modified; the search
// runs on a private copy.
func (s *Solver) Solve(ctx context.Context, g *game.Game) (bool, []move.Move, error) {
	s.game = g.Copy()
	s.solvingPlayer = g.PlayerOnTurn()
	s.nodes.Store(0)
	s.principalVariation.Clear()
	tstart := time.Now()
	if s.maxTime > 0 {
		s.deadline = tstart.Add(s.maxTime)
	}

	b := s.game.Board()
	if rows, cols := s.zobrist.Dims(); rows != b.Rows() || cols != b.Cols() {
		s.zobrist.Initialize(b.Rows(), b.Cols())
	}
	rootKey := s.zobrist.Hash(s.game)
	log.Debug().
		Int("solving-player", s.solvingPlayer).
		Uint64("max-nodes", s.maxNodes).
		Dur("max-time", s.maxTime).
		Uint64("key", rootKey).
		Msg("can-force-win-config")

	win, err := s.canWin(ctx, rootKey, 0, &s.principalVariation)

	if err == nil {
		if after := s.zobrist.Hash(s.game); after != rootKey {
			log.Error().Uint64("before", rootKey).Uint64("after", after).Msg("search-did-not-restore-position")
		}
	}
	log.Info().
		Bool("win", win).
		Uint64("nodes", s.nodes.Load()).
		Str("pv", s.principalVariation.NLBString()).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	if err != nil {
		return false, nil, err
	}
	pv := make([]move.Move, len(s.principalVariation.Moves))
	copy(pv, s.principalVariation.Moves)
	return win, pv, nil
}

// CanForceWin is Solve without the line.
func (s *Solver) CanForceWin(ctx context.Context, g *game.Game) (bool, error) {
	win, _, err := s.Solve(ctx, g)
	return win, err
}

// Game is the solver's private copy of the last position solved.
func (s *Solver) Game() *game.Game {
	return s.game
}
