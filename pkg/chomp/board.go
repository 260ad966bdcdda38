package chomp

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
)

// Chomp board, the shape is fixed at creation, only the set of remaining
// squares changes. Square (row, col) is stored at bit row*height+col, so
// iterating the set bits visits the squares in ascending row, then column order.
//
// The remaining squares always form a staircase: if (r, c) was eaten, then
// every (r', c') with r' >= r and c' >= c was eaten as well.
type Board struct {
	width     int
	height    int
	remaining *bitset.BitSet
}

// Create a full width x height board. Zero sizes are allowed and give
// an empty (already terminated) board.
func New(width, height int) *Board {
	if width < 0 || height < 0 || (height != 0 && width > math.MaxInt/height) {
		panic(fmt.Sprintf("chomp: invalid board size %dx%d", width, height))
	}

	size := uint(width * height)
	remaining := bitset.New(size)
	remaining.FlipRange(0, size)

	return &Board{
		width:     width,
		height:    height,
		remaining: remaining,
	}
}

// Number of rows
func (b *Board) Width() int {
	return b.width
}

// Number of columns
func (b *Board) Height() int {
	return b.height
}

func (b *Board) index(row, col int) uint {
	return uint(row*b.height + col)
}

func (b *Board) coord(idx uint) Coord {
	return Coord{Row: int(idx) / b.height, Col: int(idx) % b.height}
}

// Whether (row, col) lies on the board
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.width && col >= 0 && col < b.height
}

// Remove (row, col) and every square below and to the right of it.
// Removing an already eaten square is a no-op, since the whole region
// is eaten too. Panics on a coordinate outside the board, leaving the board untouched.
func (b *Board) Remove(row, col int) {
	if !b.InBounds(row, col) {
		panic(fmt.Sprintf("chomp: square (%d, %d) is outside of the %dx%d board", row, col, b.width, b.height))
	}

	if !b.remaining.Test(b.index(row, col)) {
		return
	}

	for r := row; r < b.width; r++ {
		for c := col; c < b.height; c++ {
			idx := b.index(r, c)
			// rows are prefixes, so the first eaten square ends this row
			if !b.remaining.Test(idx) {
				break
			}
			b.remaining.Clear(idx)
		}
	}
}

// Same as Remove, but with a Coord
func (b *Board) Chomp(c Coord) {
	b.Remove(c.Row, c.Col)
}

// Whether (row, col) is still on the board, false for coordinates outside the board
func (b *Board) IsOccupied(row, col int) bool {
	return b.InBounds(row, col) && b.remaining.Test(b.index(row, col))
}

// Number of squares not yet eaten
func (b *Board) RemainingCount() int {
	return int(b.remaining.Count())
}

// Whether only the poisoned square is left, the player to move must eat it
func (b *Board) OnlyPoisonLeft() bool {
	return b.RemainingCount() == 1 && b.IsOccupied(0, 0)
}

// Independent copy, changes to it won't affect this board
func (b *Board) Clone() *Board {
	return &Board{
		width:     b.width,
		height:    b.height,
		remaining: b.remaining.Clone(),
	}
}

func (b *Board) Equal(other *Board) bool {
	if other == nil {
		return false
	}
	return b.width == other.width && b.height == other.height && b.remaining.Equal(other.remaining)
}

// Remaining squares in ascending row, then column order
func (b *Board) Occupied() []Coord {
	squares := make([]Coord, 0, b.RemainingCount())
	for idx, ok := b.remaining.NextSet(0); ok; idx, ok = b.remaining.NextSet(idx + 1) {
		squares = append(squares, b.coord(idx))
	}
	return squares
}

// Calls 'f' for every remaining square in ascending row, then column order,
// stops when 'f' returns false
func (b *Board) EachOccupied(f func(Coord) bool) {
	for idx, ok := b.remaining.NextSet(0); ok; idx, ok = b.remaining.NextSet(idx + 1) {
		if !f(b.coord(idx)) {
			return
		}
	}
}

// Number of remaining squares in each row. For a board built with
// New and Remove these are prefix lengths and never increase.
func (b *Board) RowLengths() []int {
	lengths := make([]int, b.width)
	for r := range b.width {
		for c := 0; c < b.height && b.remaining.Test(b.index(r, c)); c++ {
			lengths[r]++
		}
	}
	return lengths
}

// Checks the staircase property directly on the square set
func (b *Board) IsStaircase() bool {
	for r := range b.width {
		for c := range b.height {
			if b.remaining.Test(b.index(r, c)) {
				continue
			}
			if (r+1 < b.width && b.remaining.Test(b.index(r+1, c))) ||
				(c+1 < b.height && b.remaining.Test(b.index(r, c+1))) {
				return false
			}
		}
	}
	return true
}

func (b *Board) String() string {
	return b.Notation()
}
