package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Position is a cell address. Rows count up from the floor.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < VisibleRows && p.Col >= 0 && p.Col < Cols
}

// ID is the stable identifier of the tile at this position, e.g. "3-5".
func (p Position) ID() string {
	return strconv.Itoa(p.Row) + "-" + strconv.Itoa(p.Col)
}

// Coords is the user-visible coordinate: column letter followed by the
// 1-based row, so Position{0, 1} is "B1".
func (p Position) Coords() string {
	return fmt.Sprintf("%c%d", 'A'+p.Col, p.Row+1)
}

func (p Position) String() string {
	return p.Coords()
}

// Adjacent reports whether a and b touch horizontally, vertically or
// diagonally. A position is not adjacent to itself.
func Adjacent(a, b Position) bool {
	if a == b {
		return false
	}
	return abs(a.Row-b.Row) <= 1 && abs(a.Col-b.Col) <= 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

var ErrBadCoords = errors.New("coordinates must look like B3: a column letter then a row number")

// ParseCoords turns a coordinate like "B3" (case-insensitive) into a
// Position. It does not check that the position is on the board.
func ParseCoords(s string) (Position, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Position{}, ErrBadCoords
	}
	col := s[0]
	if col < 'A' || col > 'Z' {
		return Position{}, ErrBadCoords
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return Position{}, ErrBadCoords
	}
	return Position{Row: row - 1, Col: int(col - 'A')}, nil
}
