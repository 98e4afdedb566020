package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/quatrominos/config"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-maxnodes")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"solve": {
		Options: []string{"-maxnodes", "-maxtime"},
	},
	"greedy": {
		Options: []string{"-hist"},
	},
	"aiplay": {
		Options: []string{"-player"},
	},
	"autoplay": {
		Options: []string{"-games", "-p0", "-p1", "-seed"},
	},
	"new": {
		Args: []string{"3x3", "5x5", "7x7"},
	},
	"hand": {
		Args: []string{"0", "1"},
	},
	"help": {
		Args: []string{"solve", "position", "autoplay"},
	},
	"set": {
		Args: settable,
	},
}

// Common command names for command completion
var commandNames = []string{
	"help", "new", "load", "show", "hand", "moves", "place", "undo", "solve",
	"greedy", "aiplay", "autoplay", "lost", "position", "set", "script",
	"exit",
}

var boolValues = []string{"true", "false"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// If we can't parse, fall back to simple space splitting
		fields = strings.Fields(text)
	}

	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]

		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if strings.HasPrefix(lastCompleteField, "-") {
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "hist":
				completions = boolValues
			case "player", "p0", "p1":
				completions = []string{"greedy", "solver"}
			}
		}
		// set collapse-duplicates <bool>
		if cmdName == "set" && lastCompleteField == config.ConfigCollapseDuplicates {
			completions = boolValues
		}

		// place <row> <col> <tile>: offer every way the hand's tiles can lie.
		argIdx := len(fields) - 1
		if endsWithSpace {
			argIdx = len(fields)
		}
		if cmdName == "place" && argIdx == 3 && c.sc.game != nil {
			h := c.sc.game.HandFor(c.sc.game.PlayerOnTurn())
			for _, t := range h.Distinct() {
				for _, o := range t.Orientations() {
					completions = append(completions, o.String())
				}
			}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			suffix := completion[len(prefix):]
			matches = append(matches, []rune(suffix))
		}
	}

	return matches, len(prefix)
}
