// Package game encapsulates the rules of LexiStack: a tower of letter
// tiles that grows from the bottom, from which the player clears words by
// chaining adjacent tiles. The Engine doesn't care who plays it or how it
// is drawn; a shell, a runner or a test drive it through its mutators and
// read it back through snapshots.
package game

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/lexistack/board"
	"github.com/domino14/lexistack/equity"
	"github.com/domino14/lexistack/tilemapping"
)

// Engine is the game state plus the operations allowed on it. It is safe
// for concurrent use.
type Engine struct {
	mu sync.Mutex

	ld        *tilemapping.LetterDistribution
	rules     Rules
	clock     Clock
	rng       tilemapping.RandSource
	scorer    Scorer
	listeners []Listener

	grid          board.Grid
	selection     []SelectedTile
	score         int
	combo         float64
	bestCombo     float64
	timeRemaining float64
	level         int
	over          bool
	longestWord   string
	wordsPlayed   int
	lastValidWord time.Time
	comboDecay    float64

	// submitting is set while a validator runs outside the lock. epoch is
	// bumped by Reset so a pending submission can tell it is stale.
	submitting bool
	epoch      uint64

	startedAt  time.Time
	finishedAt time.Time
}

type EngineOption func(*Engine)

func WithClock(c Clock) EngineOption {
	return func(e *Engine) { e.clock = c }
}

func WithRandSource(src tilemapping.RandSource) EngineOption {
	return func(e *Engine) { e.rng = src }
}

func WithScorer(s Scorer) EngineOption {
	return func(e *Engine) { e.scorer = s }
}

func WithRules(r Rules) EngineOption {
	return func(e *Engine) { e.rules = r }
}

func WithListener(l Listener) EngineOption {
	return func(e *Engine) { e.listeners = append(e.listeners, l) }
}

// NewEngine creates an engine and deals the opening tower from ld.
func NewEngine(ld *tilemapping.LetterDistribution, opts ...EngineOption) *Engine {
	e := &Engine{
		ld:    ld,
		rules: DefaultRules(),
		clock: realClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = frand.New()
	}
	if e.scorer == nil {
		e.scorer = equity.NewWordScorer(ld).ScoreWord
	}
	e.start()
	return e
}

// start puts the engine in its initial state. The lock must be held, or
// the engine not yet shared.
func (e *Engine) start() {
	now := e.clock.Now()
	e.grid.Fill(board.InitialRows, e.draw)
	e.selection = nil
	e.score = 0
	e.combo = 1
	e.bestCombo = 1
	e.timeRemaining = e.rules.StartTime
	e.level = 1
	e.over = false
	e.longestWord = ""
	e.wordsPlayed = 0
	e.lastValidWord = now
	e.comboDecay = 0
	e.submitting = false
	e.startedAt = now
	e.finishedAt = time.Time{}
}

func (e *Engine) draw() rune {
	return e.ld.Draw(e.rng)
}

// AddListener registers l for every subsequent event.
func (e *Engine) AddListener(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// unlockAndNotify releases the lock and then, if evt is non-nil, delivers
// it with a fresh snapshot.
func (e *Engine) unlockAndNotify(evt *Event) {
	if evt == nil || len(e.listeners) == 0 {
		e.mu.Unlock()
		return
	}
	evt.State = e.snapshot()
	ls := slices.Clone(e.listeners)
	e.mu.Unlock()
	for _, l := range ls {
		l(*evt)
	}
}

func (e *Engine) endGame() *Event {
	e.over = true
	e.selection = nil
	e.finishedAt = e.clock.Now()
	log.Debug().Int("score", e.score).Int("words", e.wordsPlayed).Msg("game-over")
	s := e.summary()
	return &Event{Type: EventGameOver, Summary: &s}
}

// ToggleTile adds the tile at pos to the selection, or removes it if it is
// already selected.
func (e *Engine) ToggleTile(pos board.Position) Result {
	e.mu.Lock()
	res, evt := e.toggleTile(pos)
	e.unlockAndNotify(evt)
	return res
}

func (e *Engine) toggleTile(pos board.Position) (Result, *Event) {
	if res, ok := e.editable(); !ok {
		return res, nil
	}
	if !pos.InBounds() {
		return Result{Message: MsgInvalidPosition}, nil
	}
	cell := e.grid.At(pos)
	if cell.IsEmpty() {
		return Result{Message: MsgEmptyCell}, nil
	}
	if idx := slices.IndexFunc(e.selection, func(t SelectedTile) bool {
		return t.Position == pos
	}); idx >= 0 {
		e.selection = slices.Delete(e.selection, idx, idx+1)
		e.reindex()
		return Result{Success: true}, &Event{Type: EventSelectionChanged}
	}
	if n := len(e.selection); n > 0 && !board.Adjacent(e.selection[n-1].Position, pos) {
		return Result{Message: MsgNotAdjacent}, nil
	}
	e.selection = append(e.selection, SelectedTile{
		Letter:   cell.String(),
		Position: pos,
		ID:       pos.ID(),
		Index:    len(e.selection),
	})
	return Result{Success: true}, &Event{Type: EventSelectionChanged}
}

// editable reports whether the selection may be changed right now.
func (e *Engine) editable() (Result, bool) {
	if e.over {
		return Result{Message: MsgGameOver}, false
	}
	if e.submitting {
		return Result{Message: MsgSubmissionInProgress}, false
	}
	return Result{Success: true}, true
}

func (e *Engine) reindex() {
	for i := range e.selection {
		e.selection[i].Index = i
	}
}

// UndoLastSelection drops the most recently selected tile. It is a no-op
// on an empty selection.
func (e *Engine) UndoLastSelection() Result {
	e.mu.Lock()
	res, ok := e.editable()
	var evt *Event
	if ok && len(e.selection) > 0 {
		e.selection = e.selection[:len(e.selection)-1]
		e.reindex()
		evt = &Event{Type: EventSelectionChanged}
	}
	e.unlockAndNotify(evt)
	return res
}

func (e *Engine) ClearSelection() Result {
	e.mu.Lock()
	res, ok := e.editable()
	var evt *Event
	if ok && len(e.selection) > 0 {
		e.selection = nil
		evt = &Event{Type: EventSelectionChanged}
	}
	e.unlockAndNotify(evt)
	return res
}

// SubmitWord checks the selected word with validate and, if it is good,
// scores it and clears its tiles. validate runs without the engine lock
// held; meanwhile the selection is frozen, but the clock and the tower
// keep moving. If the game ends or is reset before validate returns, the
// outcome is discarded. A cancelled ctx discards it too, without the
// combo penalty of a rejected word.
func (e *Engine) SubmitWord(ctx context.Context, validate WordValidator) SubmissionResult {
	e.mu.Lock()
	if res, ok := e.editable(); !ok {
		e.mu.Unlock()
		return SubmissionResult{Message: res.Message}
	}
	if len(e.selection) < e.rules.MinSelection {
		e.mu.Unlock()
		return SubmissionResult{Message: MsgTooShort}
	}
	word := strings.ToUpper(e.currentWord())
	epoch := e.epoch
	e.submitting = true
	e.mu.Unlock()

	valid := validate(ctx, word)

	e.mu.Lock()
	if epoch == e.epoch {
		e.submitting = false
	}
	res, evt := e.finishSubmission(ctx, word, valid, epoch)
	e.unlockAndNotify(evt)
	return res
}

func (e *Engine) finishSubmission(ctx context.Context, word string, valid bool, epoch uint64) (SubmissionResult, *Event) {
	switch {
	case epoch != e.epoch:
		return SubmissionResult{Word: word, Message: MsgGameReset}, nil
	case e.over:
		return SubmissionResult{Word: word, Message: MsgGameOver}, nil
	case ctx.Err() != nil:
		return SubmissionResult{Word: word, Message: MsgSubmissionCancelled}, nil
	}

	if !valid {
		e.combo = 1
		e.comboDecay = 0
		log.Debug().Str("word", word).Msg("word-rejected")
		return SubmissionResult{
			Word:    word,
			Message: fmt.Sprintf("%s is not a valid word", word),
		}, &Event{Type: EventWordRejected, Word: word}
	}

	letters := e.letters()
	points := e.scorer(letters, e.combo)
	e.score += points
	if len(word) > len(e.longestWord) {
		e.longestWord = word
	}
	e.combo = roundCombo(min(e.rules.MaxCombo, e.combo+e.rules.ComboIncrease))
	e.bestCombo = max(e.bestCombo, e.combo)
	e.lastValidWord = e.clock.Now()
	e.comboDecay = 0
	e.timeRemaining += e.rules.TimeBonus(len(letters))
	e.wordsPlayed++

	cleared := lo.Map(e.selection, func(t SelectedTile, _ int) board.Position {
		return t.Position
	})
	for _, p := range cleared {
		e.grid.Set(p, board.EmptyCell)
	}
	e.grid.ApplyGravity()
	e.selection = nil

	log.Debug().Str("word", word).Int("points", points).Float64("combo", e.combo).Msg("word-cleared")
	res := SubmissionResult{
		Success:      true,
		Word:         word,
		Score:        points,
		Message:      fmt.Sprintf("Cleared %s! +%d points", word, points),
		ClearedTiles: cleared,
	}
	return res, &Event{
		Type:    EventWordCleared,
		Word:    word,
		Points:  points,
		Cleared: slices.Clone(cleared),
	}
}

// AddNewRow pushes a fresh row of letters onto the bottom of the tower.
// If the top row is already occupied the tower overflows, the game ends,
// and AddNewRow returns false.
func (e *Engine) AddNewRow() bool {
	e.mu.Lock()
	if e.over {
		e.mu.Unlock()
		return false
	}
	if !e.grid.PushRow(e.draw) {
		e.unlockAndNotify(e.endGame())
		return false
	}
	for i := range e.selection {
		e.selection[i].Position.Row++
		e.selection[i].ID = e.selection[i].Position.ID()
	}
	e.unlockAndNotify(&Event{Type: EventRowAdded})
	return true
}

// UpdateTimer advances the game clock by delta seconds. Negative and NaN
// deltas are ignored.
func (e *Engine) UpdateTimer(delta float64) {
	e.mu.Lock()
	if e.over || !(delta >= 0) {
		e.mu.Unlock()
		return
	}
	e.timeRemaining -= delta
	if e.timeRemaining <= 0 {
		e.timeRemaining = 0
		e.unlockAndNotify(e.endGame())
		return
	}
	if e.combo > 1 && e.clock.Now().Sub(e.lastValidWord) > e.rules.ComboDecayDelay {
		e.comboDecay += delta
		if e.comboDecay >= 1 {
			e.combo = roundCombo(max(1, e.combo-e.rules.ComboDecayStep))
			e.comboDecay = 0
		}
	}
	e.unlockAndNotify(&Event{Type: EventTick})
}

// Reset starts a new game. A submission pending across a Reset is
// discarded, and the new game is editable at once.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.epoch++
	e.start()
	e.unlockAndNotify(&Event{Type: EventReset})
}

// SetGrid replaces the tower, clearing the selection. It is meant for
// setting up positions.
func (e *Engine) SetGrid(g board.Grid) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.grid = g
	e.selection = nil
}

func (e *Engine) letters() []string {
	return lo.Map(e.selection, func(t SelectedTile, _ int) string {
		return t.Letter
	})
}

func (e *Engine) currentWord() string {
	return strings.Join(e.letters(), "")
}

func (e *Engine) potentialScore() int {
	if len(e.selection) < e.rules.MinSelection {
		return 0
	}
	return e.scorer(e.letters(), e.combo)
}

func (e *Engine) snapshot() State {
	return State{
		Grid:            e.grid,
		Selection:       slices.Clone(e.selection),
		Score:           e.score,
		ComboMultiplier: e.combo,
		BestCombo:       e.bestCombo,
		TimeRemaining:   e.timeRemaining,
		Level:           e.level,
		IsGameOver:      e.over,
		LongestWord:     e.longestWord,
		WordsPlayed:     e.wordsPlayed,
		CurrentWord:     e.currentWord(),
		PotentialScore:  e.potentialScore(),
		Submitting:      e.submitting,
	}
}

// State returns a snapshot of the whole game.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Engine) Grid() board.Grid {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid
}

func (e *Engine) Selection() []SelectedTile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.selection)
}

func (e *Engine) CurrentWord() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentWord()
}

// PotentialScore is what the current selection would earn if accepted now,
// or 0 if it is too short to submit.
func (e *Engine) PotentialScore() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.potentialScore()
}

func (e *Engine) IsGameOver() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.over
}

func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summary()
}

func (e *Engine) summary() Summary {
	return Summary{
		Score:       e.score,
		BestCombo:   e.bestCombo,
		LongestWord: e.longestWord,
		Level:       e.level,
		WordsPlayed: e.wordsPlayed,
		IsGameOver:  e.over,
		StartedAt:   e.startedAt,
		FinishedAt:  e.finishedAt,
	}
}
