package lexicon

import (
	"testing"

	"github.com/matryer/is"
)

func TestWordSet(t *testing.T) {
	is := is.New(t)
	ws := NewWordSet("test", []string{"CAT", "DOG", "CAT"})
	is.Equal(ws.Name(), "test")
	is.Equal(ws.Size(), 2)
	is.True(ws.HasWord("CAT"))
	is.True(ws.HasWord("dog"))
	is.True(!ws.HasWord("CA"))
	is.True(!ws.HasWord("CATS"))
	is.True(!ws.HasWord(""))
}

func TestAcceptAll(t *testing.T) {
	is := is.New(t)
	var lex Lexicon = AcceptAll{}
	is.True(lex.HasWord("XQZJ"))
	is.Equal(lex.Name(), "AcceptAll")
}
