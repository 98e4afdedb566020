// Package automatic plays computer vs computer games from random deals, so
// the greedy player and the solver can be measured against each other.
package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/quatrominos/ai/turnplayer"
	"github.com/domino14/quatrominos/board"
	"github.com/domino14/quatrominos/config"
	"github.com/domino14/quatrominos/game"
	"github.com/domino14/quatrominos/hand"
	"github.com/domino14/quatrominos/tile"
)

var ErrBadDeal = errors.New("bad deal settings")

// GameResult summarizes one finished game.
type GameResult struct {
	ID     int
	First  int
	Winner int
	Turns  int
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game      *game.Game
	aiplayers [game.NumPlayers]turnplayer.AITurnPlayer
	rng       *frand.RNG

	rows     int
	cols     int
	handSize int
	maxLabel int
	collapse bool

	gameID  int
	turnlog *csv.Writer
}

// NewGameRunner sets up a runner whose deals are fully determined by seed.
// Board size, hand size, and tile labels come from cfg.
func NewGameRunner(cfg *config.Config, p0, p1 turnplayer.AITurnPlayer, seed [32]byte) (*GameRunner, error) {
	r := &GameRunner{
		aiplayers: [game.NumPlayers]turnplayer.AITurnPlayer{p0, p1},
		rng:       frand.NewCustom(seed[:], 1024, 12),
		rows:      cfg.GetInt(config.ConfigDefaultRows),
		cols:      cfg.GetInt(config.ConfigDefaultCols),
		handSize:  cfg.GetInt(config.ConfigAutoplayHandSize),
		maxLabel:  cfg.GetInt(config.ConfigAutoplayMaxLabel),
		collapse:  cfg.GetBool(config.ConfigCollapseDuplicates),
	}
	if r.handSize < 1 || r.maxLabel < 1 {
		return nil, fmt.Errorf("%w: hand size %d, max label %d", ErrBadDeal, r.handSize, r.maxLabel)
	}
	b, err := board.MakeBoard(r.rows, r.cols)
	if err != nil {
		return nil, err
	}
	if _, err := b.Center(); err != nil {
		return nil, err
	}
	return r, nil
}

// SetTurnLog makes the runner write one CSV row per placement to w.
func (r *GameRunner) SetTurnLog(w io.Writer) error {
	r.turnlog = csv.NewWriter(w)
	return r.writeTurnRow([]string{"gameID", "turn", "player", "name", "move", "tilesleft"})
}

func (r *GameRunner) writeTurnRow(row []string) error {
	if r.turnlog == nil {
		return nil
	}
	if err := r.turnlog.Write(row); err != nil {
		return err
	}
	r.turnlog.Flush()
	return r.turnlog.Error()
}

// Game is the game being played, or the last one finished.
func (r *GameRunner) Game() *game.Game {
	return r.game
}

func (r *GameRunner) randomTile() tile.Tile {
	label := func() int { return 1 + r.rng.Intn(r.maxLabel) }
	return tile.New(label(), label(), label(), label())
}

// Deal starts a new game on an empty board with freshly drawn hands.
func (r *GameRunner) Deal(first int) error {
	b, err := board.MakeBoard(r.rows, r.cols)
	if err != nil {
		return err
	}
	var hands [game.NumPlayers]*hand.Hand
	for i := range hands {
		tiles := make([]tile.Tile, r.handSize)
		for j := range tiles {
			tiles[j] = r.randomTile()
		}
		hands[i] = hand.FromTiles(tiles, r.collapse)
	}
	g, err := game.NewGame(b, hands[0], hands[1], first)
	if err != nil {
		return err
	}
	r.game = g
	r.gameID++
	log.Debug().Int("gameID", r.gameID).Str("hand0", hands[0].String()).
		Str("hand1", hands[1].String()).Int("first", first).Msg("dealt")
	return nil
}

// Play plays the dealt game out until somebody loses.
func (r *GameRunner) Play() (GameResult, error) {
	if r.game == nil {
		return GameResult{}, errors.New("nothing dealt")
	}
	res := GameResult{ID: r.gameID, First: r.game.PlayerOnTurn()}
	for {
		lost, err := r.game.PlayerHasLost()
		if err != nil {
			return res, err
		}
		if lost {
			res.Winner = r.game.Opponent()
			break
		}
		onturn := r.game.PlayerOnTurn()
		p := r.aiplayers[onturn]
		m, err := p.BestMove(r.game)
		if err != nil {
			return res, fmt.Errorf("%s: %w", p.Name(), err)
		}
		if err := r.game.PlayMove(m, true); err != nil {
			return res, fmt.Errorf("%s played %v: %w", p.Name(), m, err)
		}
		res.Turns++
		err = r.writeTurnRow([]string{
			strconv.Itoa(res.ID), strconv.Itoa(res.Turns), strconv.Itoa(onturn), p.Name(),
			m.ShortDescription(), strconv.Itoa(r.game.HandFor(onturn).NumTiles()),
		})
		if err != nil {
			return res, err
		}
	}
	log.Debug().Int("gameID", res.ID).Int("winner", res.Winner).Int("turns", res.Turns).Msg("game-over")
	return res, nil
}

// PlayGame deals a new game and plays it to the end.
func (r *GameRunner) PlayGame(first int) (GameResult, error) {
	if err := r.Deal(first); err != nil {
		return GameResult{}, err
	}
	return r.Play()
}
