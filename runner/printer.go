package runner

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/lexistack/board"
	"github.com/domino14/lexistack/game"
)

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

// DisplayState renders the tower with the selected tiles in lowercase and
// the game metrics alongside it.
func DisplayState(st game.State) string {
	selected := lo.SliceToMap(st.Selection, func(t game.SelectedTile) (board.Position, bool) {
		return t.Position, true
	})
	bt := st.Grid.ToDisplayText(func(p board.Position) bool {
		return selected[p]
	})
	lines := strings.Split(bt, "\n")
	hpadding := 3
	vpadding := 2

	status := []string{
		fmt.Sprintf("Score: %d", st.Score),
		fmt.Sprintf("Combo: x%.1f (best x%.1f)", st.ComboMultiplier, st.BestCombo),
		fmt.Sprintf("Time:  %.1fs", st.TimeRemaining),
		fmt.Sprintf("Level: %d", st.Level),
		fmt.Sprintf("Words: %d", st.WordsPlayed),
	}
	if st.LongestWord != "" {
		status = append(status, "Longest: "+st.LongestWord)
	}
	if st.CurrentWord != "" {
		status = append(status, "", fmt.Sprintf("Word: %s (%d)", st.CurrentWord, st.PotentialScore))
	}
	if st.IsGameOver {
		status = append(status, "", "GAME OVER")
	}
	for i, s := range status {
		addText(lines, vpadding+i, hpadding, s)
	}
	return strings.Join(lines, "\n")
}

func (g *GameRunner) ToDisplayText() string {
	return DisplayState(g.State())
}
