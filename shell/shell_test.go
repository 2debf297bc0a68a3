package shell

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/lexistack/board"
	"github.com/domino14/lexistack/config"
	"github.com/domino14/lexistack/dictionary"
	"github.com/domino14/lexistack/game"
	"github.com/domino14/lexistack/runner"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"summary -file /path/to/summary.yaml",
			&shellcmd{"summary", nil, map[string]string{"file": "/path/to/summary.yaml"}},
			nil},
		{"help sel",
			&shellcmd{"help", []string{"sel"}, map[string]string{}},
			nil},
		{"sel A1 B2 c3 ",
			&shellcmd{"sel",
				[]string{"A1", "B2", "c3"},
				map[string]string{}},
			nil,
		},
		{"summary -file 'my games/last.yaml'",
			&shellcmd{"summary", nil, map[string]string{"file": "my games/last.yaml"}},
			nil},
		{"summary -file",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

const testTower = `
EMBERXYZ
QUIZLANT
RNSTOPAE
DOGHIJKL
CATBEFGH`

func newTestShell(t *testing.T) *ShellController {
	wordFile := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(wordFile, []byte("cat\ndog\nzoo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	dict := dictionary.NewService(&dictionary.FileFetcher{Path: wordFile}, nil)
	cfg := config.DefaultConfig()
	g, err := runner.NewGameRunner(cfg, &runner.GameOptions{}, dict.IsValidWord,
		game.WithRandSource(rand.New(rand.NewSource(11))))
	if err != nil {
		t.Fatal(err)
	}
	grid, err := board.GridFromPlaintext(testTower)
	if err != nil {
		t.Fatal(err)
	}
	g.SetGrid(grid)
	return &ShellController{config: cfg, game: g, dict: dict}
}

func run(t *testing.T, sc *ShellController, line string) string {
	resp, err := sc.Execute(context.Background(), line)
	if err != nil {
		t.Fatalf("%s: %v", line, err)
	}
	if resp == nil {
		return ""
	}
	return resp.message
}

func TestPlayThroughShell(t *testing.T) {
	is := is.New(t)
	sc := newTestShell(t)

	out := run(t, sc, "sel A1 B1 C1")
	is.True(strings.Contains(out, " 1| c a t B E F G H |"))
	is.True(strings.Contains(out, "Word: CAT (50)"))

	out = run(t, sc, "submit")
	is.True(strings.HasPrefix(out, "Cleared CAT! +50 points\n"))
	is.True(strings.Contains(out, " 1| D O G B E F G H |"))

	out = run(t, sc, "sel d1 e1")
	is.True(strings.Contains(out, "Word: BE"))
	out = run(t, sc, "submit")
	is.Equal(out, "BE is not a valid word")

	run(t, sc, "undo")
	is.Equal(sc.game.CurrentWord(), "B")
	run(t, sc, "clear")
	is.Equal(sc.game.CurrentWord(), "")

	out = run(t, sc, "state")
	is.True(strings.Contains(out, "score: 50\n"))
	is.True(strings.Contains(out, "combo: 1\n"))
	is.True(strings.Contains(out, "longest_word: CAT\n"))
	is.True(strings.Contains(out, "tiles: 37\n"))
}

func TestSelectionErrors(t *testing.T) {
	is := is.New(t)
	sc := newTestShell(t)
	_, err := sc.Execute(context.Background(), "sel A1 C1")
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), game.MsgNotAdjacent))

	_, err = sc.Execute(context.Background(), "sel Z9")
	is.True(err != nil)
	_, err = sc.Execute(context.Background(), "sel")
	is.True(err != nil)
	_, err = sc.Execute(context.Background(), "frobnicate")
	is.Equal(err.Error(), `command "frobnicate" not found`)
}

func TestSummaryToFile(t *testing.T) {
	is := is.New(t)
	sc := newTestShell(t)
	run(t, sc, "sel A1 B1 C1")
	run(t, sc, "submit")

	out := run(t, sc, "summary")
	is.True(strings.Contains(out, "score: 50\n"))
	is.True(strings.Contains(out, "words_played: 1\n"))

	fn := filepath.Join(t.TempDir(), "summary.yaml")
	out = run(t, sc, "summary -file "+fn)
	is.Equal(out, "summary written to "+fn)
	dat, err := os.ReadFile(fn)
	is.NoErr(err)
	is.True(strings.Contains(string(dat), "longest_word: CAT\n"))
}

func TestNewAndRow(t *testing.T) {
	is := is.New(t)
	sc := newTestShell(t)
	run(t, sc, "sel A1 B1 C1")
	run(t, sc, "submit")

	run(t, sc, "new")
	st := sc.game.State()
	is.Equal(st.Score, 0)
	is.Equal(st.Grid.Height(), board.InitialRows)

	run(t, sc, "row")
	is.Equal(sc.game.State().Grid.Height(), board.InitialRows+1)

	sc.game.UpdateTimer(1000)
	_, err := sc.Execute(context.Background(), "row")
	is.True(err != nil)
	_, err = sc.Execute(context.Background(), "undo")
	is.Equal(err.Error(), game.MsgGameOver)
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc := newTestShell(t)
	is.True(strings.Contains(run(t, sc, "help"), "Commands:"))
	is.True(strings.Contains(run(t, sc, "help sel"), "column letter"))
	is.True(strings.Contains(run(t, sc, "help scoring"), "combo"))
	is.Equal(run(t, sc, "help nope"), "There is no help text for the topic nope\n")
}

func TestDictCommand(t *testing.T) {
	is := is.New(t)
	sc := newTestShell(t)
	is.True(sc.dict.IsValidWord(context.Background(), "zoo"))
	out := run(t, sc, "dict")
	is.True(strings.Contains(out, "source: http://localhost:3000/words.txt\n"))
	is.True(strings.Contains(out, "state: ready\n"))
	is.True(strings.Contains(out, "words: 3\n"))
	is.True(strings.Contains(out, "fallback: false"))
}

func TestGameOverMessage(t *testing.T) {
	is := is.New(t)
	is.Equal(gameOverMessage(game.Event{State: game.State{Score: 120, LongestWord: "ZOO"}}),
		"Time's up! Game over. Final score: 120, longest word: ZOO. Type `new` to play again.")
	is.Equal(gameOverMessage(game.Event{State: game.State{Score: 0, TimeRemaining: 12}}),
		"The tower overflowed! Game over. Final score: 0. Type `new` to play again.")
}
