package equity

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/lexistack/tilemapping"
)

func scorer(t *testing.T) *WordScorer {
	ld, err := tilemapping.EnglishLetterDistribution(nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewWordScorer(ld)
}

func split(w string) []string {
	return strings.Split(w, "")
}

func TestScoreWord(t *testing.T) {
	ws := scorer(t)
	cases := []struct {
		word string
		mult float64
		pts  int
	}{
		{"AT", 1, 20},
		{"CAT", 1, 50},
		{"CAT", 1.1, 55},
		{"CAT", 5, 250},
		{"QUIZ", 1, 240},
		{"EMBER", 1, 140},
		{"LANTERNS", 1, 280},
		// length bonus is capped at the 8-letter value
		{"EXTRAORDINARY", 1, 440},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.pts, ws.ScoreWord(split(tc.word), tc.mult), "%s x%v", tc.word, tc.mult)
	}
}

func TestScoreMonotonicInMultiplier(t *testing.T) {
	is := is.New(t)
	ws := scorer(t)
	letters := split("JAZZ")
	last := 0
	for m := 1.0; m <= 5.0; m += 0.1 {
		pts := ws.ScoreWord(letters, m)
		is.True(pts >= last)
		last = pts
	}
	// multipliers below 1 are treated as 1
	is.Equal(ws.ScoreWord(letters, 0.5), ws.ScoreWord(letters, 1))
}

func TestLongerWordsScoreMore(t *testing.T) {
	is := is.New(t)
	ws := scorer(t)
	is.True(ws.ScoreWord(split("TEA"), 1) < ws.ScoreWord(split("TEAS"), 1))
	is.True(ws.ScoreWord(split("TEAS"), 1) < ws.ScoreWord(split("TEASE"), 1))
}
