package game

import (
	"context"
	"time"

	"github.com/domino14/lexistack/board"
	"github.com/domino14/lexistack/lexicon"
)

const (
	MsgGameOver             = "Game over"
	MsgInvalidPosition      = "Invalid position"
	MsgEmptyCell            = "Empty cell"
	MsgNotAdjacent          = "Tiles must be adjacent"
	MsgTooShort             = "Select at least 2 letters"
	MsgSubmissionInProgress = "Submission in progress"
	MsgGameReset            = "Game was reset"
	MsgSubmissionCancelled  = "Submission cancelled"
)

// SelectedTile is one link of the selection chain.
type SelectedTile struct {
	Letter   string         `json:"letter"`
	Position board.Position `json:"position"`
	ID       string         `json:"id"`
	// Index is the order of this tile in the selection.
	Index int `json:"index"`
}

// Result is returned by the selection mutators.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SubmissionResult is returned by SubmitWord. ClearedTiles lists the
// positions emptied by a successful submission, before gravity.
type SubmissionResult struct {
	Success      bool             `json:"success"`
	Word         string           `json:"word"`
	Score        int              `json:"score"`
	Message      string           `json:"message"`
	ClearedTiles []board.Position `json:"clearedTiles"`
}

// State is an immutable snapshot of the engine.
type State struct {
	Grid            board.Grid     `json:"grid"`
	Selection       []SelectedTile `json:"selection"`
	Score           int            `json:"score"`
	ComboMultiplier float64        `json:"comboMultiplier"`
	BestCombo       float64        `json:"bestCombo"`
	TimeRemaining   float64        `json:"timeRemaining"`
	Level           int            `json:"level"`
	IsGameOver      bool           `json:"isGameOver"`
	LongestWord     string         `json:"longestWord"`
	WordsPlayed     int            `json:"wordsPlayed"`
	CurrentWord     string         `json:"currentWord"`
	PotentialScore  int            `json:"potentialScore"`
	Submitting      bool           `json:"submitting"`
}

// Summary is the record of a game, suitable for a high score table.
type Summary struct {
	Score       int       `json:"score" yaml:"score"`
	BestCombo   float64   `json:"bestCombo" yaml:"best_combo"`
	LongestWord string    `json:"longestWord" yaml:"longest_word"`
	Level       int       `json:"level" yaml:"level"`
	WordsPlayed int       `json:"wordsPlayed" yaml:"words_played"`
	IsGameOver  bool      `json:"isGameOver" yaml:"game_over"`
	StartedAt   time.Time `json:"startedAt" yaml:"started_at"`
	FinishedAt  time.Time `json:"finishedAt,omitempty" yaml:"finished_at,omitempty"`
}

type EventType int

const (
	EventSelectionChanged EventType = iota
	EventWordCleared
	EventWordRejected
	EventRowAdded
	EventGameOver
	EventReset
	EventTick
)

func (t EventType) String() string {
	switch t {
	case EventSelectionChanged:
		return "selection"
	case EventWordCleared:
		return "word"
	case EventWordRejected:
		return "rejected"
	case EventRowAdded:
		return "row"
	case EventGameOver:
		return "gameover"
	case EventReset:
		return "reset"
	case EventTick:
		return "tick"
	}
	return "unknown"
}

// Event is delivered to listeners after a mutating call. Word, Points and
// Cleared are only set for word events, Summary only for game over.
type Event struct {
	Type    EventType
	Word    string
	Points  int
	Cleared []board.Position
	Summary *Summary
	State   State
}

// A Listener is notified after the engine changes. Listeners run outside
// the engine lock, so they may call back into the engine.
type Listener func(Event)

// WordValidator decides whether a candidate word is acceptable. It may
// block, e.g. while a dictionary loads.
type WordValidator func(ctx context.Context, word string) bool

// ValidatorFromLexicon adapts a Lexicon to a WordValidator.
func ValidatorFromLexicon(lex lexicon.Lexicon) WordValidator {
	return func(ctx context.Context, word string) bool {
		return lex.HasWord(word)
	}
}

// Scorer turns the selected letters and the combo multiplier into points.
type Scorer func(letters []string, multiplier float64) int

// Clock is the source of wall-clock time for combo decay.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
