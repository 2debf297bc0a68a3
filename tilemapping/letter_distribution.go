package tilemapping

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// RandSource is the randomness a LetterDistribution draws from. Both
// *frand.RNG and *rand.Rand satisfy it.
type RandSource interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

// LetterDistribution is a weighted pool of tiles. The weight of a letter is
// roughly proportional to its frequency in the language; the score is its
// point value when cleared in a word.
type LetterDistribution struct {
	Name string

	letters    []rune
	weights    []int
	cumulative []int
	scores     [NumLetters]int
	vowels     [NumLetters]bool
	present    [NumLetters]bool
}

var errEmptyDistribution = errors.New("letter distribution has no letters")

// ScanLetterDistribution reads a distribution from CSV rows of the form
// letter,weight,score,vowel.
func ScanLetterDistribution(data io.Reader) (*LetterDistribution, error) {
	r := csv.NewReader(data)
	r.FieldsPerRecord = 4
	r.Comment = '#'

	ld := &LetterDistribution{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		letter, ok := parseLetter(record[0])
		if !ok {
			return nil, fmt.Errorf("invalid letter %q", record[0])
		}
		idx := letterIndex(letter)
		if ld.present[idx] {
			return nil, fmt.Errorf("duplicate letter %q", record[0])
		}
		w, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, err
		}
		if w <= 0 {
			return nil, fmt.Errorf("letter %c: weight must be positive, got %d", letter, w)
		}
		p, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, err
		}
		v, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil {
			return nil, err
		}
		ld.present[idx] = true
		ld.scores[idx] = p
		ld.vowels[idx] = v == 1
		ld.letters = append(ld.letters, letter)
		ld.weights = append(ld.weights, w)
	}
	if len(ld.letters) == 0 {
		return nil, errEmptyDistribution
	}
	ld.cumulative = make([]int, len(ld.weights))
	total := 0
	for i, w := range ld.weights {
		total += w
		ld.cumulative[i] = total
	}
	return ld, nil
}

// Draw picks a letter by cumulative-weight roulette: a uniform roll in
// [0, totalWeight) selects the first letter whose cumulative weight meets
// or exceeds it.
func (ld *LetterDistribution) Draw(src RandSource) rune {
	roll := src.Float64() * float64(ld.TotalWeight())
	idx := sort.Search(len(ld.cumulative), func(i int) bool {
		return float64(ld.cumulative[i]) >= roll
	})
	if idx == len(ld.cumulative) {
		// only reachable with a misbehaving source returning >= 1
		idx = len(ld.cumulative) - 1
	}
	return ld.letters[idx]
}

// TotalWeight is the sum of all letter weights.
func (ld *LetterDistribution) TotalWeight() int {
	return ld.cumulative[len(ld.cumulative)-1]
}

// Letters returns the support set of the distribution, in file order.
func (ld *LetterDistribution) Letters() []rune {
	return append([]rune(nil), ld.letters...)
}

// Contains reports whether the letter can be drawn from this distribution.
func (ld *LetterDistribution) Contains(letter rune) bool {
	idx := letterIndex(letter)
	return idx >= 0 && ld.present[idx]
}

// Weight returns the draw weight of a letter; 0 if it is not in the pool.
func (ld *LetterDistribution) Weight(letter rune) int {
	for i, l := range ld.letters {
		if l == letter {
			return ld.weights[i]
		}
	}
	return 0
}

// Score gives the point value of a letter. Lowercase letters score the same
// as uppercase ones; anything else scores 0.
func (ld *LetterDistribution) Score(letter rune) int {
	idx := letterIndex(toUpper(letter))
	if idx < 0 {
		return 0
	}
	return ld.scores[idx]
}

func (ld *LetterDistribution) IsVowel(letter rune) bool {
	idx := letterIndex(toUpper(letter))
	return idx >= 0 && ld.vowels[idx]
}
