package board

import (
	"fmt"
	"strings"
	"unicode"
)

// ToDisplayText renders the grid top row first. Cells for which highlight
// returns true are shown in lowercase; highlight may be nil.
func (g Grid) ToDisplayText(highlight func(Position) bool) string {
	var sb strings.Builder
	sb.WriteString("    ")
	for c := 0; c < Cols; c++ {
		fmt.Fprintf(&sb, "%c ", 'A'+c)
	}
	sb.WriteString("\n")
	sb.WriteString("   " + strings.Repeat("-", Cols*2+1) + "\n")
	for r := VisibleRows - 1; r >= 0; r-- {
		fmt.Fprintf(&sb, "%2d| ", r+1)
		for c := 0; c < Cols; c++ {
			p := Position{Row: r, Col: c}
			cell := g.At(p)
			switch {
			case cell.IsEmpty():
				sb.WriteString(".")
			case highlight != nil && highlight(p):
				sb.WriteRune(unicode.ToLower(cell.Letter()))
			default:
				sb.WriteRune(cell.Letter())
			}
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", Cols*2+1) + "\n")
	return sb.String()
}

// GridFromPlaintext builds a grid from lines of letters drawn the way the
// tower is displayed: the first line is the highest row and the last line
// is row 0. '.' and ' ' are empty cells. Mostly used for tests.
func GridFromPlaintext(text string) (Grid, error) {
	var g Grid
	lines := strings.Split(strings.Trim(text, "\n"), "\n")
	if len(lines) > VisibleRows {
		return g, fmt.Errorf("too many rows: %d", len(lines))
	}
	for i, line := range lines {
		r := len(lines) - 1 - i
		runes := []rune(strings.TrimRight(line, " "))
		if len(runes) > Cols {
			return g, fmt.Errorf("row %d is too wide: %q", r+1, line)
		}
		for c, ch := range runes {
			switch {
			case ch == '.' || ch == ' ':
			case ch >= 'A' && ch <= 'Z':
				g[r][c] = Cell(ch)
			default:
				return g, fmt.Errorf("bad tile %q in row %d", ch, r+1)
			}
		}
	}
	return g, nil
}
