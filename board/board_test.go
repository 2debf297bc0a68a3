package board

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func cycler(letters string) func() rune {
	i := 0
	return func() rune {
		r := rune(letters[i%len(letters)])
		i++
		return r
	}
}

func TestAdjacent(t *testing.T) {
	center := Position{Row: 4, Col: 4}
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			p := Position{Row: 4 + dr, Col: 4 + dc}
			exp := !(dr == 0 && dc == 0) && abs(dr) <= 1 && abs(dc) <= 1
			assert.Equal(t, exp, Adjacent(center, p), "%v vs %v", center, p)
			assert.Equal(t, exp, Adjacent(p, center), "symmetric %v vs %v", p, center)
		}
	}
}

func TestFill(t *testing.T) {
	is := is.New(t)
	var g Grid
	g.Fill(InitialRows, cycler("EAT"))
	for r := 0; r < VisibleRows; r++ {
		is.Equal(g.RowOccupied(r), r < InitialRows)
	}
	is.Equal(g.TilesOnBoard(), InitialRows*Cols)
	is.Equal(g.Height(), InitialRows)
	is.Equal(g.At(Position{0, 0}), Cell('E'))
	is.Equal(g.At(Position{0, 1}), Cell('A'))
}

// Snapshots hand out grids by value; reading them must not need an
// addressable copy.
func TestReadGridValue(t *testing.T) {
	is := is.New(t)
	filled := func() Grid {
		var g Grid
		g.Fill(InitialRows, cycler("EAT"))
		return g
	}
	is.Equal(filled().Height(), InitialRows)
	is.Equal(filled().TilesOnBoard(), InitialRows*Cols)
	is.True(!filled().TopRowOccupied())
	is.True(filled().RowOccupied(0))
	is.True(filled().IsSettled())
	is.Equal(filled().At(Position{0, 2}), Cell('T'))
	is.True(strings.Contains(filled().ToDisplayText(nil), " 1| E A T E A T E A |"))
}

func TestPushRow(t *testing.T) {
	is := is.New(t)
	g, err := GridFromPlaintext(`
..Q.....
ABCDEFGH`)
	is.NoErr(err)
	before := g
	is.True(g.PushRow(cycler("Z")))
	for c := 0; c < Cols; c++ {
		is.Equal(g[0][c], Cell('Z'))
		is.Equal(g[1][c], before[0][c])
		is.Equal(g[2][c], before[1][c])
	}
	is.Equal(g.Height(), 3)
}

func TestPushRowOverflow(t *testing.T) {
	is := is.New(t)
	var g Grid
	g.Fill(VisibleRows-1, cycler("A"))
	is.True(!g.TopRowOccupied())
	is.True(g.PushRow(cycler("B")))
	is.True(g.TopRowOccupied())
	after := g
	is.True(!g.PushRow(cycler("C")))
	is.Equal(g, after)
}

func TestApplyGravity(t *testing.T) {
	is := is.New(t)
	g, err := GridFromPlaintext(`
A.......
.B......
C.D.....
..E.....
.F.....G`)
	is.NoErr(err)
	is.True(!g.IsSettled())
	g.ApplyGravity()
	is.True(g.IsSettled())
	exp, err := GridFromPlaintext(`
ABD.....
CFE....G`)
	is.NoErr(err)
	is.Equal(g, exp)
	is.Equal(g.TilesOnBoard(), 7)
}

func TestApplyGravityPreservesOrder(t *testing.T) {
	is := is.New(t)
	g, err := GridFromPlaintext(`
D
.
C
.
B
.
A`)
	is.NoErr(err)
	g.ApplyGravity()
	is.Equal(string([]rune{g[0][0].Letter(), g[1][0].Letter(), g[2][0].Letter(), g[3][0].Letter()}), "ABCD")
	is.True(g[4][0].IsEmpty())
}

func TestParseCoords(t *testing.T) {
	cases := []struct {
		in  string
		pos Position
		err bool
	}{
		{"A1", Position{0, 0}, false},
		{"b3", Position{2, 1}, false},
		{" H10 ", Position{9, 7}, false},
		{"Z99", Position{98, 25}, false},
		{"1A", Position{}, true},
		{"A", Position{}, true},
		{"AB", Position{}, true},
		{"", Position{}, true},
	}
	for _, tc := range cases {
		p, err := ParseCoords(tc.in)
		if tc.err {
			assert.ErrorIs(t, err, ErrBadCoords, tc.in)
			continue
		}
		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.pos, p, tc.in)
	}
}

func TestCoordsRoundTrip(t *testing.T) {
	is := is.New(t)
	for r := 0; r < VisibleRows; r++ {
		for c := 0; c < Cols; c++ {
			p := Position{Row: r, Col: c}
			is.True(p.InBounds())
			q, err := ParseCoords(p.Coords())
			is.NoErr(err)
			is.Equal(p, q)
		}
	}
	is.Equal(Position{3, 5}.ID(), "3-5")
	is.True(!Position{VisibleRows, 0}.InBounds())
	is.True(!Position{0, -1}.InBounds())
}

func TestToDisplayText(t *testing.T) {
	is := is.New(t)
	g, err := GridFromPlaintext("CAT")
	is.NoErr(err)
	txt := g.ToDisplayText(func(p Position) bool { return p == Position{0, 1} })
	lines := strings.Split(strings.TrimRight(txt, "\n"), "\n")
	is.Equal(len(lines), VisibleRows+3)
	is.Equal(lines[0], "    A B C D E F G H ")
	is.Equal(lines[len(lines)-2], " 1| C a T . . . . . |")
	is.Equal(lines[2], "10| . . . . . . . . |")
}

func TestGridFromPlaintextErrors(t *testing.T) {
	_, err := GridFromPlaintext("ABCDEFGHI")
	assert.Error(t, err)
	_, err = GridFromPlaintext("ab")
	assert.Error(t, err)
	_, err = GridFromPlaintext(strings.Repeat("A\n", VisibleRows+1))
	assert.Error(t, err)
}
