package runner

import (
	"errors"
	"fmt"

	"github.com/domino14/lexistack/board"
)

// ParseSelection turns coordinates like "B1 C2" into positions.
func ParseSelection(fields []string) ([]board.Position, error) {
	if len(fields) == 0 {
		return nil, errors.New("need at least one coordinate, e.g. B1")
	}
	ps := make([]board.Position, 0, len(fields))
	for _, f := range fields {
		p, err := board.ParseCoords(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		if !p.InBounds() {
			return nil, fmt.Errorf("%s is off the board", f)
		}
		ps = append(ps, p)
	}
	return ps, nil
}

// SelectCoords toggles each of the given tiles in order, stopping at the
// first one the engine refuses.
func (g *GameRunner) SelectCoords(fields []string) error {
	ps, err := ParseSelection(fields)
	if err != nil {
		return err
	}
	for _, p := range ps {
		res := g.ToggleTile(p)
		if !res.Success {
			return fmt.Errorf("%s: %s", p.Coords(), res.Message)
		}
	}
	return nil
}
