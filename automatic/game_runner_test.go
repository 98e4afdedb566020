package automatic

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/quatrominos/ai/turnplayer"
	"github.com/domino14/quatrominos/board"
	"github.com/domino14/quatrominos/config"
	"github.com/domino14/quatrominos/endgame/negamax"
	"github.com/domino14/quatrominos/stats"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

var testSeed = [32]byte{1, 2, 3, 4}

func smallConfig(handSize, maxLabel int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDefaultRows, 3)
	cfg.Set(config.ConfigDefaultCols, 3)
	cfg.Set(config.ConfigAutoplayHandSize, handSize)
	cfg.Set(config.ConfigAutoplayMaxLabel, maxLabel)
	return cfg
}

func greedyRunner(t *testing.T, seed [32]byte) *GameRunner {
	r, err := NewGameRunner(smallConfig(2, 2), turnplayer.NewGreedyPlayer(),
		turnplayer.NewGreedyPlayer(), seed)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestBadSettings(t *testing.T) {
	is := is.New(t)
	g := turnplayer.NewGreedyPlayer()

	_, err := NewGameRunner(smallConfig(0, 2), g, g, testSeed)
	is.True(errors.Is(err, ErrBadDeal))

	cfg := smallConfig(2, 2)
	cfg.Set(config.ConfigDefaultRows, 4)
	_, err = NewGameRunner(cfg, g, g, testSeed)
	is.True(errors.Is(err, board.ErrInvalidConfiguration))
}

func TestDeal(t *testing.T) {
	is := is.New(t)
	r := greedyRunner(t, testSeed)
	is.NoErr(r.Deal(1))
	g := r.Game()
	is.Equal(g.PlayerOnTurn(), 1)
	is.True(g.Board().IsEmpty())
	for p := 0; p < 2; p++ {
		is.Equal(g.HandFor(p).NumTiles(), 2)
		for _, tl := range g.HandFor(p).Tiles() {
			for _, label := range tl {
				is.True(label == 1 || label == 2)
			}
		}
	}
}

func TestPlayGame(t *testing.T) {
	is := is.New(t)
	r := greedyRunner(t, testSeed)
	buf := &bytes.Buffer{}
	is.NoErr(r.SetTurnLog(buf))

	res, err := r.PlayGame(0)
	is.NoErr(err)
	is.Equal(res.ID, 1)
	is.Equal(res.First, 0)
	// the first tile always fits the empty center.
	is.True(res.Turns >= 1)
	is.Equal(len(r.Game().History()), res.Turns)

	lost, err := r.Game().PlayerHasLost()
	is.NoErr(err)
	is.True(lost)
	is.Equal(r.Game().Opponent(), res.Winner)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	is.Equal(len(lines), res.Turns+1)
	is.Equal(lines[0], "gameID,turn,player,name,move,tilesleft")
	// the move has commas in it, so it is quoted.
	is.True(strings.HasPrefix(lines[1], `1,1,0,greedy,"1,1 (`))
}

func TestDeterministic(t *testing.T) {
	is := is.New(t)
	logs := make([]string, 2)
	for i := range logs {
		buf := &bytes.Buffer{}
		_, err := greedyRunner(t, testSeed).PlayMatch(context.Background(), 10, buf)
		is.NoErr(err)
		logs[i] = buf.String()
	}
	is.Equal(logs[0], logs[1])
}

func TestAnalyzeGameLog(t *testing.T) {
	is := is.New(t)
	buf := &bytes.Buffer{}
	m, err := greedyRunner(t, testSeed).PlayMatch(context.Background(), 20, buf)
	is.NoErr(err)
	is.Equal(m.Games, 20)
	is.Equal(m.Wins[0]+m.Wins[1], 20)

	again, err := AnalyzeGameLog(buf)
	is.NoErr(err)
	is.Equal(again.Players, [2]string{"greedy", "greedy"})
	is.Equal(again.Games, m.Games)
	is.Equal(again.Wins, m.Wins)
	is.Equal(again.FirstMoverWins, m.FirstMoverWins)
	is.True(stats.FuzzyEqual(again.Turns.Mean(), m.Turns.Mean()))
	is.True(strings.HasPrefix(again.String(), "Games played: 20\nplayer0 (greedy) wins: "))

	_, err = AnalyzeGameLog(strings.NewReader("1,greedy,greedy,0,2,3\n"))
	is.True(err != nil)
}

func TestMatchCanceled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m, err := greedyRunner(t, testSeed).PlayMatch(ctx, 10, nil)
	is.True(errors.Is(err, context.Canceled))
	is.Equal(m.Games, 0)
}

// The solving player never throws away a won position, whichever side
// it plays.
func TestSolverKeepsWins(t *testing.T) {
	ctx := context.Background()
	sp := turnplayer.NewSolvingPlayer(ctx, negamax.NewSolver())
	r, err := NewGameRunner(smallConfig(3, 3), sp, turnplayer.NewGreedyPlayer(), testSeed)
	assert.NoError(t, err)
	for i := 0; i < 20; i++ {
		first := i % 2
		assert.NoError(t, r.Deal(first))
		win, err := negamax.NewSolver().CanForceWin(ctx, r.Game())
		assert.NoError(t, err)
		res, err := r.Play()
		assert.NoError(t, err)
		if (first == 0 && win) || (first == 1 && !win) {
			assert.Equal(t, 0, res.Winner, "game %d", res.ID)
		}
	}
}

func TestSeeds(t *testing.T) {
	is := is.New(t)
	seed := NewSeed()
	back, err := DecodeSeed(EncodeSeed(seed))
	is.NoErr(err)
	is.Equal(back, seed)

	_, err = DecodeSeed("AAAA")
	is.True(err != nil)
	_, err = DecodeSeed("not base64!")
	is.True(err != nil)
}
