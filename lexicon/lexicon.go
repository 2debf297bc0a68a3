package lexicon

import "strings"

// Lexicon answers whether a word is playable. Words are compared
// case-insensitively.
type Lexicon interface {
	Name() string
	HasWord(word string) bool
}

type AcceptAll struct{}

func (lex AcceptAll) Name() string {
	return "AcceptAll"
}

func (lex AcceptAll) HasWord(word string) bool {
	return true
}

// WordSet is an immutable set of uppercase words.
type WordSet struct {
	name  string
	words map[string]struct{}
}

// NewWordSet builds a set from already-normalized uppercase words.
func NewWordSet(name string, words []string) *WordSet {
	ws := &WordSet{name: name, words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		ws.words[w] = struct{}{}
	}
	return ws
}

func (ws *WordSet) Name() string {
	return ws.name
}

func (ws *WordSet) HasWord(word string) bool {
	_, ok := ws.words[strings.ToUpper(word)]
	return ok
}

func (ws *WordSet) Size() int {
	return len(ws.words)
}
