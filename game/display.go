package game

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

func addText(lines []string, row int, hpad int, text string) []string {
	for len(lines) <= row {
		lines = append(lines, "")
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
	return lines
}

func (g *Game) playerStateString(idx int) string {
	onturn := ""
	if g.onturn == idx {
		onturn = "-> "
	}
	return fmt.Sprintf("%splayer%d  %s (%d)", onturn, idx, g.hands[idx].String(),
		g.hands[idx].NumTiles())
}

// ToDisplayText turns the current state of the game into a displayable
// string.
func (g *Game) ToDisplayText() string {
	bt := strings.TrimRight(g.board.ToDisplayText(), "\n")
	bts := strings.Split(bt, "\n")
	// pad every board line to the same width so the side text lines up.
	width := 0
	for _, l := range bts {
		width = max(width, len(l))
	}
	for i, l := range bts {
		bts[i] = l + strings.Repeat(" ", width-len(l))
	}
	hpadding := 3
	vpadding := 1

	log.Debug().Int("onturn", g.onturn).Int("played", len(g.history)).Msg("todisplaytext")
	for pi := 0; pi < NumPlayers; pi++ {
		bts = addText(bts, vpadding+pi, hpadding, g.playerStateString(pi))
	}
	if len(g.history) > 0 {
		last := g.history[len(g.history)-1]
		bts = addText(bts, vpadding+3, hpadding, "Last play: "+last.ShortDescription())
	}
	return strings.Join(bts, "\n") + "\n"
}
