package position

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/domino14/quatrominos/game"
)

// Scenario is a named position with known answers, read from YAML:
//
//	- name: greedy-trap
//	  position: "3x3 1,0=4,1,2,1;... 0"
//	  can_force_win: true
//	  moves: [9, 4]
type Scenario struct {
	Name        string `yaml:"name"`
	Position    string `yaml:"position"`
	Collapse    bool   `yaml:"collapse"`
	CanForceWin *bool  `yaml:"can_force_win,omitempty"`
	Moves       []int  `yaml:"moves,omitempty"`
	Slow        bool   `yaml:"slow,omitempty"`
}

// Game parses the scenario's position.
func (s Scenario) Game() (*game.Game, error) {
	g, err := Parse(s.Position, s.Collapse)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return g, nil
}

// LoadScenarios reads a YAML list of scenarios.
func LoadScenarios(r io.Reader) ([]Scenario, error) {
	var scenarios []Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&scenarios); err != nil {
		return nil, err
	}
	for i, s := range scenarios {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: scenario %d has no name", ErrBadPosition, i)
		}
	}
	return scenarios, nil
}
