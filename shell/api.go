package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"

	"github.com/domino14/quatrominos/ai/turnplayer"
	"github.com/domino14/quatrominos/automatic"
	"github.com/domino14/quatrominos/board"
	"github.com/domino14/quatrominos/config"
	"github.com/domino14/quatrominos/endgame/negamax"
	"github.com/domino14/quatrominos/game"
	"github.com/domino14/quatrominos/hand"
	"github.com/domino14/quatrominos/move"
	"github.com/domino14/quatrominos/position"
	"github.com/domino14/quatrominos/tile"
)

const histogramBins = 10

func (sc *ShellController) requireGame() error {
	if sc.game == nil {
		return errNoGame
	}
	return nil
}

func (sc *ShellController) collapse() bool {
	return sc.config.GetBool(config.ConfigCollapseDuplicates)
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	rows := sc.config.GetInt(config.ConfigDefaultRows)
	cols := sc.config.GetInt(config.ConfigDefaultCols)
	if len(cmd.args) > 0 {
		var err error
		rows, cols, err = position.ParseBoardDims(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	b, err := board.MakeBoard(rows, cols)
	if err != nil {
		return nil, err
	}
	if _, err := b.Center(); err != nil {
		return nil, err
	}
	collapse := sc.collapse()
	g, err := game.NewGame(b, hand.FromTiles(nil, collapse), hand.FromTiles(nil, collapse), 0)
	if err != nil {
		return nil, err
	}
	sc.game = g
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: load <position>")
	}
	g, err := position.Parse(strings.Join(cmd.args, " "), sc.collapse())
	if err != nil {
		return nil, err
	}
	sc.game = g
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func parsePlayer(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil || (p != 0 && p != 1) {
		return 0, fmt.Errorf("%w: %q", game.ErrInvalidPlayer, s)
	}
	return p, nil
}

// hand replaces a player's hand. The board stays, but the move history
// starts over since the old moves no longer match the hands.
func (sc *ShellController) hand(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	if len(cmd.args) < 1 {
		return nil, errors.New("usage: hand <0|1> [tile ...]")
	}
	p, err := parsePlayer(cmd.args[0])
	if err != nil {
		return nil, err
	}
	tiles := []tile.Tile{}
	for _, a := range cmd.args[1:] {
		ts, err := position.ParseTiles(a)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, ts...)
	}
	hands := [game.NumPlayers]*hand.Hand{sc.game.HandFor(0).Copy(), sc.game.HandFor(1).Copy()}
	hands[p] = hand.FromTiles(tiles, sc.collapse())
	g, err := game.NewGame(sc.game.Board().Copy(), hands[0], hands[1], sc.game.PlayerOnTurn())
	if err != nil {
		return nil, err
	}
	sc.game = g
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	plays, err := sc.game.GenAllMoves()
	if err != nil {
		return nil, err
	}
	oppCount, err := sc.game.CountAvailableMoves(sc.game.Opponent())
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "player%d has %d moves (player%d has %d)\n",
		sc.game.PlayerOnTurn(), len(plays), sc.game.Opponent(), oppCount)
	for i, p := range plays {
		fmt.Fprintf(&sb, "%3d: %s  rot %d\n", i+1, p.ShortDescription(), p.Rotation())
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

// findPlacement turns "the tile as it should lie" into a move: it looks for
// a hand tile that rotates into it.
func (sc *ShellController) findPlacement(row, col int, oriented tile.Tile) (move.Move, error) {
	h := sc.game.HandFor(sc.game.PlayerOnTurn())
	source, ok := lo.Find(h.Distinct(), func(t tile.Tile) bool {
		return tile.Equivalent(t, oriented)
	})
	if !ok {
		return move.Move{}, fmt.Errorf("%w: no tile in hand turns into %v", game.ErrTileNotInHand, oriented)
	}
	return move.NewPlacementMove(row, col, source, tile.RotationTo(source, oriented)), nil
}

func (sc *ShellController) place(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	if len(cmd.args) != 3 {
		return nil, errors.New("usage: place <row> <col> <n,e,s,w>")
	}
	row, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	col, err := strconv.Atoi(cmd.args[1])
	if err != nil {
		return nil, err
	}
	oriented, err := tile.Parse(cmd.args[2])
	if err != nil {
		return nil, err
	}
	m, err := sc.findPlacement(row, col, oriented)
	if err != nil {
		return nil, err
	}
	return sc.commit(m)
}

func (sc *ShellController) commit(m move.Move) (*Response, error) {
	sc.showMessage("Committing move: " + m.ShortDescription())
	if err := sc.game.PlayMove(m, true); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	if err := sc.game.UnplayLastMove(); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) solverFor(cmd *shellcmd) (*negamax.Solver, error) {
	if len(cmd.options) == 0 {
		return sc.solver, nil
	}
	opts := []negamax.SolverOption{}
	if v, ok := cmd.options["maxnodes"]; ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		opts = append(opts, negamax.WithMaxNodes(n))
	}
	if v, ok := cmd.options["maxtime"]; ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, negamax.WithMaxTime(d))
	}
	return negamax.NewSolverFromConfig(sc.config, opts...), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	s, err := sc.solverFor(cmd)
	if err != nil {
		return nil, err
	}
	win, pv, err := s.Solve(context.Background(), sc.game)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	verdict := "cannot"
	if win {
		verdict = "can"
	}
	fmt.Fprintf(&sb, "player%d %s force a win (%d nodes)\n", sc.game.PlayerOnTurn(), verdict, s.Nodes())
	for i, m := range pv {
		fmt.Fprintf(&sb, "%d: player%d %s\n", i+1, (sc.game.PlayerOnTurn()+i)%game.NumPlayers,
			m.ShortDescription())
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) greedyMove(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	m, err := sc.greedy.BestMove(sc.game)
	if err != nil {
		return nil, err
	}
	out := "greedy move: " + m.ShortDescription()
	if strings.ToLower(cmd.options["hist"]) != "true" {
		return msg(out), nil
	}
	evals, err := sc.greedy.Evaluate(sc.game)
	if err != nil {
		return nil, err
	}
	hist, err := replyHistogram(evals)
	if err != nil {
		return nil, err
	}
	return msg(out + "\n\nopponent replies per candidate move:\n" + hist), nil
}

func replyHistogram(evals []turnplayer.Evaluation) (string, error) {
	counts := lo.Map(evals, func(e turnplayer.Evaluation, _ int) float64 {
		return float64(e.OpponentMoves)
	})
	if lo.Min(counts) == lo.Max(counts) {
		return fmt.Sprintf("all %d candidates leave %v replies", len(counts), counts[0]), nil
	}
	var sb strings.Builder
	err := histogram.Fprint(&sb, histogram.Hist(histogramBins, counts), histogram.Linear(40))
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	p, err := sc.aiPlayer(cmd.options["player"])
	if err != nil {
		return nil, err
	}
	m, err := p.BestMove(sc.game)
	if err != nil {
		return nil, err
	}
	sc.showMessage(p.Name() + " plays " + m.ShortDescription())
	return sc.commit(m)
}

func (sc *ShellController) aiPlayer(name string) (turnplayer.AITurnPlayer, error) {
	switch name {
	case "", "greedy":
		return sc.greedy, nil
	case "solver":
		return turnplayer.NewSolvingPlayer(context.Background(), sc.solver), nil
	}
	return nil, fmt.Errorf("unknown player %q; use greedy or solver", name)
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	games := 100
	if v, ok := cmd.options["games"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		games = n
	}
	var players [game.NumPlayers]turnplayer.AITurnPlayer
	for i := range players {
		p, err := sc.aiPlayer(cmd.options[fmt.Sprintf("p%d", i)])
		if err != nil {
			return nil, err
		}
		players[i] = p
	}
	seed := automatic.NewSeed()
	if v, ok := cmd.options["seed"]; ok {
		var err error
		seed, err = automatic.DecodeSeed(v)
		if err != nil {
			return nil, err
		}
	}
	r, err := automatic.NewGameRunner(sc.config, players[0], players[1], seed)
	if err != nil {
		return nil, err
	}
	m, err := r.PlayMatch(context.Background(), games, nil)
	if err != nil {
		return nil, err
	}
	return msg("seed: " + automatic.EncodeSeed(seed) + "\n" + m.String()), nil
}

func (sc *ShellController) lost(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	onturn := sc.game.PlayerOnTurn()
	if sc.game.OpponentEmptied() {
		return msg(fmt.Sprintf("player%d has lost: player%d played out", onturn, sc.game.Opponent())), nil
	}
	stuck, err := sc.game.HasNoMoves()
	if err != nil {
		return nil, err
	}
	if stuck {
		return msg(fmt.Sprintf("player%d has lost: no legal placement", onturn)), nil
	}
	return msg(fmt.Sprintf("player%d has not lost", onturn)), nil
}

func (sc *ShellController) position(cmd *shellcmd) (*Response, error) {
	if err := sc.requireGame(); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%s\nfingerprint: %016x", position.String(sc.game),
		position.Fingerprint(sc.game))), nil
}

var settable = []string{
	config.ConfigCollapseDuplicates,
	config.ConfigSolverMaxNodes,
	config.ConfigSolverMaxTime,
	config.ConfigDefaultRows,
	config.ConfigDefaultCols,
	config.ConfigAutoplayHandSize,
	config.ConfigAutoplayMaxLabel,
}

func (sc *ShellController) settingsText() string {
	keys := make([]string, len(settable))
	copy(keys, settable)
	sort.Strings(keys)
	out := strings.Builder{}
	out.WriteString("Settings:\n")
	for _, key := range keys {
		out.WriteString("  " + key + ": ")
		out.WriteString(fmt.Sprintf("%v\n", sc.config.Get(key)))
	}
	return strings.TrimRight(out.String(), "\n")
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.settingsText()), nil
	}
	key := cmd.args[0]
	if !lo.Contains(settable, key) {
		return nil, fmt.Errorf("cannot set %q; settable keys are %v", key, settable)
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%v", sc.config.Get(key))), nil
	}
	value := cmd.args[1]
	switch key {
	case config.ConfigCollapseDuplicates:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, err
		}
		sc.config.Set(key, v)
	case config.ConfigSolverMaxTime:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		sc.config.Set(key, d)
	default:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		sc.config.Set(key, n)
	}
	if key == config.ConfigSolverMaxNodes || key == config.ConfigSolverMaxTime {
		sc.solver = negamax.NewSolverFromConfig(sc.config)
	}
	return msg("set " + key + " to " + value), nil
}
