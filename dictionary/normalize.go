package dictionary

import (
	_ "embed"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/domino14/lexistack/lexicon"
	"github.com/domino14/lexistack/tilemapping"
)

const (
	MinWordLength = 2
	MaxWordLength = 8
)

//go:embed fallback.txt
var fallbackText string

// NormalizeWord trims and uppercases a raw entry and reports whether it is
// playable: 2 to 8 letters, all of them unaccented A-Z. Entries with
// apostrophes or hyphens are never playable.
func NormalizeWord(caser cases.Caser, raw string) (string, bool) {
	w := caser.String(strings.TrimSpace(raw))
	if len(w) < MinWordLength || len(w) > MaxWordLength {
		return "", false
	}
	return w, tilemapping.IsPlayableWord(w)
}

// NormalizeWordList splits a newline-delimited word list and keeps the
// playable entries.
func NormalizeWordList(raw []byte) []string {
	caser := cases.Upper(language.Und)
	lines := strings.Split(string(raw), "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		if w, ok := NormalizeWord(caser, line); ok {
			words = append(words, w)
		}
	}
	return words
}

func fallbackWords() []string {
	caser := cases.Upper(language.Und)
	var words []string
	for _, line := range strings.Split(fallbackText, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		for _, f := range strings.Fields(line) {
			if w, ok := NormalizeWord(caser, f); ok {
				words = append(words, w)
			}
		}
	}
	return words
}

// FallbackLexicon is the small curated word set used in degraded mode.
func FallbackLexicon() *lexicon.WordSet {
	return lexicon.NewWordSet("fallback", fallbackWords())
}
