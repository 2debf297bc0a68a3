package tilemapping

import (
	"strings"
	"unicode/utf8"
)

// NumLetters is the size of the playable alphabet, A through Z.
const NumLetters = 26

func letterIndex(r rune) int {
	if r < 'A' || r > 'Z' {
		return -1
	}
	return int(r - 'A')
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

// parseLetter accepts a single letter A-Z (case-insensitive, surrounding
// whitespace allowed) and returns it in uppercase.
func parseLetter(s string) (rune, bool) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	r = toUpper(r)
	return r, letterIndex(r) >= 0
}

// IsPlayableWord reports whether every rune of w is an uppercase A-Z letter.
func IsPlayableWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if letterIndex(r) < 0 {
			return false
		}
	}
	return true
}
