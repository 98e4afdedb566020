package automatic

// Data collection for automatic games.

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/quatrominos/game"
	"github.com/domino14/quatrominos/stats"
)

var gameLogHeader = []string{"gameID", "player0", "player1", "first", "winner", "turns"}

// MatchResult tallies a series of games between the same two players.
type MatchResult struct {
	Players        [game.NumPlayers]string
	Games          int
	Wins           [game.NumPlayers]int
	FirstMoverWins int
	Turns          stats.Statistic
}

func (m *MatchResult) add(res GameResult) {
	m.Games++
	m.Wins[res.Winner]++
	if res.Winner == res.First {
		m.FirstMoverWins++
	}
	m.Turns.Push(float64(res.Turns))
}

func (m *MatchResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", m.Games)
	for i, name := range m.Players {
		p, margin := stats.WinRate(m.Wins[i], m.Games, 95)
		fmt.Fprintf(&sb, "player%d (%s) wins: %d (%.1f%% ± %.1f%%)\n",
			i, name, m.Wins[i], 100*p, 100*margin)
	}
	p, _ := stats.WinRate(m.FirstMoverWins, m.Games, 95)
	fmt.Fprintf(&sb, "First mover wins: %d (%.1f%%)\n", m.FirstMoverWins, 100*p)
	fmt.Fprintf(&sb, "Turns per game: %.2f ± %.2f", m.Turns.Mean(), m.Turns.Stdev())
	return sb.String()
}

// PlayMatch plays numGames games, alternating who goes first. If gamelog is
// not nil, one CSV row per game is written to it. On cancellation the
// result so far is returned along with the context's error.
func (r *GameRunner) PlayMatch(ctx context.Context, numGames int, gamelog io.Writer) (*MatchResult, error) {
	m := &MatchResult{}
	for i, p := range r.aiplayers {
		m.Players[i] = p.Name()
	}
	var w *csv.Writer
	if gamelog != nil {
		w = csv.NewWriter(gamelog)
		if err := w.Write(gameLogHeader); err != nil {
			return nil, err
		}
	}
	log.Debug().Msgf("Starting %v games", numGames)
	for i := 0; i < numGames; i++ {
		if err := ctx.Err(); err != nil {
			log.Info().Int("played", m.Games).Msg("Got stop signal, exiting early")
			return m, err
		}
		res, err := r.PlayGame(i % game.NumPlayers)
		if err != nil {
			return m, err
		}
		m.add(res)
		if w != nil {
			err = w.Write([]string{
				strconv.Itoa(res.ID), m.Players[0], m.Players[1],
				strconv.Itoa(res.First), strconv.Itoa(res.Winner), strconv.Itoa(res.Turns),
			})
			if err != nil {
				return m, err
			}
		}
		if (i+1)%1000 == 0 {
			log.Info().Msgf("Played %v games", i+1)
		}
	}
	if w != nil {
		w.Flush()
		if err := w.Error(); err != nil {
			return m, err
		}
	}
	log.Info().Int("games", m.Games).Ints("wins", m.Wins[:]).Msg("match-finished")
	return m, nil
}

// AnalyzeGameLog rebuilds a match summary from a log written by PlayMatch.
func AnalyzeGameLog(in io.Reader) (*MatchResult, error) {
	r := csv.NewReader(in)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	m := &MatchResult{}
	for _, record := range records {
		if record[0] == gameLogHeader[0] {
			// this is the header line
			continue
		}
		if len(record) != len(gameLogHeader) {
			return nil, fmt.Errorf("bad game log record %v", record)
		}
		m.Players[0], m.Players[1] = record[1], record[2]
		nums := make([]int, 0, 4)
		for _, field := range []string{record[0], record[3], record[4], record[5]} {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, err
			}
			nums = append(nums, n)
		}
		res := GameResult{ID: nums[0], First: nums[1], Winner: nums[2], Turns: nums[3]}
		if res.Winner < 0 || res.Winner >= game.NumPlayers {
			return nil, fmt.Errorf("bad winner %d in game %d", res.Winner, res.ID)
		}
		m.add(res)
	}
	return m, nil
}
