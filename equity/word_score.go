package equity

import (
	"math"

	"github.com/samber/lo"

	"github.com/domino14/lexistack/tilemapping"
)

// PointsPerValue scales summed letter values into displayed points.
const PointsPerValue = 10

// lengthBonus is added to the letter sum, indexed by word length. Words
// longer than the table get the last entry.
var lengthBonus = []int{0, 0, 0, 0, 2, 5, 9, 14, 20}

// WordScorer scores cleared words with a letter distribution's values.
type WordScorer struct {
	ld *tilemapping.LetterDistribution
}

func NewWordScorer(ld *tilemapping.LetterDistribution) *WordScorer {
	return &WordScorer{ld: ld}
}

// BaseValue is the unmultiplied value of a word: its letter values plus a
// bonus for length.
func (ws *WordScorer) BaseValue(letters []string) int {
	sum := lo.SumBy(letters, func(l string) int {
		v := 0
		for _, r := range l {
			v += ws.ld.Score(r)
		}
		return v
	})
	n := len(letters)
	if n >= len(lengthBonus) {
		n = len(lengthBonus) - 1
	}
	return sum + lengthBonus[n]
}

// ScoreWord returns the points for clearing letters at the given combo
// multiplier. It is non-decreasing in the multiplier.
func (ws *WordScorer) ScoreWord(letters []string, multiplier float64) int {
	if multiplier < 1 {
		multiplier = 1
	}
	return int(math.Round(float64(ws.BaseValue(letters)*PointsPerValue) * multiplier))
}
