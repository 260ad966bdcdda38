package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/IlikeChooros/go-chomp/pkg/chomp"
)

// Board glyphs
const (
	SquareLeft  = "O"
	SquareEaten = "X"
)

// Draws boards as text, remaining squares are 'O' and eaten ones 'X',
// coloured when the output supports it
type Renderer struct {
	out       *termenv.Output
	Coords    bool
	poison    termenv.Color
	left      termenv.Color
	eaten     termenv.Color
	lastMove  termenv.Color
	lastChomp chomp.Coord
	markChomp bool
}

func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	out := termenv.NewOutput(w, opts...)
	return &Renderer{
		out:      out,
		Coords:   true,
		poison:   out.Color("1"),
		left:     out.Color("2"),
		eaten:    out.Color("8"),
		lastMove: out.Color("3"),
	}
}

// Highlight the square of the last chomp on the next renders
func (r *Renderer) MarkMove(c chomp.Coord) {
	r.lastChomp = c
	r.markChomp = true
}

func (r *Renderer) style(s string, color termenv.Color) termenv.Style {
	return r.out.String(s).Foreground(color)
}

// Board as a multi-line string, with row and column numbers if 'Coords' is set
func (r *Renderer) Render(board *chomp.Board) string {
	builder := strings.Builder{}

	if r.Coords && board.Height() > 0 {
		builder.WriteString("  ")
		for c := range board.Height() {
			builder.WriteString(strconv.Itoa(c % 10))
			builder.WriteByte(' ')
		}
		builder.WriteByte('\n')
	}

	for row := range board.Width() {
		if r.Coords {
			builder.WriteString(strconv.Itoa(row % 10))
			builder.WriteByte(' ')
		}

		for col := range board.Height() {
			square := chomp.NewCoord(row, col)
			var cell termenv.Style
			switch {
			case r.markChomp && square == r.lastChomp:
				cell = r.style(SquareEaten, r.lastMove).Bold()
			case !board.IsOccupied(row, col):
				cell = r.style(SquareEaten, r.eaten)
			case square.IsPoison():
				cell = r.style(SquareLeft, r.poison).Bold()
			default:
				cell = r.style(SquareLeft, r.left)
			}
			builder.WriteString(cell.String())
			builder.WriteByte(' ')
		}
		builder.WriteByte('\n')
	}

	return builder.String()
}

// Write the rendered board to the output
func (r *Renderer) Print(board *chomp.Board) error {
	_, err := fmt.Fprint(r.out, r.Render(board))
	return err
}

// Write a coloured status line
func (r *Renderer) Status(format string, args ...any) error {
	_, err := fmt.Fprintln(r.out, r.style(fmt.Sprintf(format, args...), r.lastMove).String())
	return err
}
