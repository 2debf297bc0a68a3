package board

const (
	// VisibleRows is the height of the tower. Row 0 is the floor and row
	// VisibleRows-1 is the overflow threshold.
	VisibleRows = 10
	// Cols is the width of the tower.
	Cols = 8
	// InitialRows is how many rows are filled at the start of a game.
	InitialRows = 5
)

// A Cell holds one uppercase letter, or nothing.
type Cell rune

const EmptyCell Cell = 0

func (c Cell) IsEmpty() bool {
	return c == EmptyCell
}

func (c Cell) Letter() rune {
	return rune(c)
}

func (c Cell) String() string {
	if c.IsEmpty() {
		return ""
	}
	return string(rune(c))
}

// Grid is the tower. It is a value type; copying it copies every cell.
type Grid [VisibleRows][Cols]Cell

func (g Grid) At(p Position) Cell {
	return g[p.Row][p.Col]
}

func (g *Grid) Set(p Position, c Cell) {
	g[p.Row][p.Col] = c
}

// Clear empties every cell.
func (g *Grid) Clear() {
	*g = Grid{}
}

// Fill clears the grid and populates the bottom n rows with letters from
// draw.
func (g *Grid) Fill(n int, draw func() rune) {
	g.Clear()
	for r := 0; r < n && r < VisibleRows; r++ {
		g.fillRow(r, draw)
	}
}

func (g *Grid) fillRow(r int, draw func() rune) {
	for c := 0; c < Cols; c++ {
		g[r][c] = Cell(draw())
	}
}

// RowOccupied reports whether any cell of row r holds a letter.
func (g Grid) RowOccupied(r int) bool {
	for c := 0; c < Cols; c++ {
		if !g[r][c].IsEmpty() {
			return true
		}
	}
	return false
}

// TopRowOccupied reports whether the tower has reached the overflow row.
func (g Grid) TopRowOccupied() bool {
	return g.RowOccupied(VisibleRows - 1)
}

// PushRow shifts every row up by one and fills row 0 with fresh letters.
// It refuses (returning false, leaving the grid untouched) if the top row
// is occupied.
func (g *Grid) PushRow(draw func() rune) bool {
	if g.TopRowOccupied() {
		return false
	}
	for r := VisibleRows - 1; r >= 1; r-- {
		g[r] = g[r-1]
	}
	g.fillRow(0, draw)
	return true
}

// ApplyGravity compacts every column downward, preserving the relative
// order of the letters in it.
func (g *Grid) ApplyGravity() {
	for c := 0; c < Cols; c++ {
		writeRow := 0
		for r := 0; r < VisibleRows; r++ {
			if g[r][c].IsEmpty() {
				continue
			}
			if r != writeRow {
				g[writeRow][c] = g[r][c]
				g[r][c] = EmptyCell
			}
			writeRow++
		}
	}
}

// IsSettled reports whether no column has an empty cell below a letter.
func (g Grid) IsSettled() bool {
	for c := 0; c < Cols; c++ {
		sawEmpty := false
		for r := 0; r < VisibleRows; r++ {
			if g[r][c].IsEmpty() {
				sawEmpty = true
			} else if sawEmpty {
				return false
			}
		}
	}
	return true
}

// TilesOnBoard counts the occupied cells.
func (g Grid) TilesOnBoard() int {
	n := 0
	for r := 0; r < VisibleRows; r++ {
		for c := 0; c < Cols; c++ {
			if !g[r][c].IsEmpty() {
				n++
			}
		}
	}
	return n
}

// Height is the number of rows up to and including the highest occupied
// one.
func (g Grid) Height() int {
	for r := VisibleRows - 1; r >= 0; r-- {
		if g.RowOccupied(r) {
			return r + 1
		}
	}
	return 0
}
