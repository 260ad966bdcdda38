package chomp

import "fmt"

// Square on the board, Row is in [0, width) and Col in [0, height)
type Coord struct {
	Row int
	Col int
}

// The poisoned square, whoever eats it loses
var Poison = Coord{0, 0}

func NewCoord(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

func (c Coord) IsPoison() bool {
	return c == Poison
}

// Whether 'c' lies in the region removed by a move at 'anchor'
func (c Coord) DominatedBy(anchor Coord) bool {
	return c.Row >= anchor.Row && c.Col >= anchor.Col
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}
