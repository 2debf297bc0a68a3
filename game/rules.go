package game

import (
	"math"
	"time"
)

// Rules holds the tunable numbers of the game. The grid dimensions are
// fixed by the board package.
type Rules struct {
	// StartTime is the number of seconds on the clock at the start.
	StartTime float64
	// MinTimeBonus and MaxTimeBonus bound the seconds awarded per word.
	MinTimeBonus float64
	MaxTimeBonus float64

	ComboIncrease  float64
	ComboDecayStep float64
	MaxCombo       float64
	// ComboDecayDelay is how long after a valid word the combo starts to
	// decay.
	ComboDecayDelay time.Duration

	// MinSelection is the fewest tiles a submission may use.
	MinSelection int
}

func DefaultRules() Rules {
	return Rules{
		StartTime:       60,
		MinTimeBonus:    1,
		MaxTimeBonus:    3,
		ComboIncrease:   0.1,
		ComboDecayStep:  0.1,
		MaxCombo:        5,
		ComboDecayDelay: 5 * time.Second,
		MinSelection:    2,
	}
}

// TimeBonus is the seconds added for clearing a word of length n.
func (r Rules) TimeBonus(n int) float64 {
	return math.Min(r.MaxTimeBonus, r.MinTimeBonus+math.Floor(float64(n)/3))
}

// roundCombo keeps multipliers on tenths so repeated steps don't drift.
func roundCombo(m float64) float64 {
	return math.Round(m*10) / 10
}
