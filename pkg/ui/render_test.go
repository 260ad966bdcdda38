package ui

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-chomp/pkg/chomp"
)

func plainRenderer(buf *bytes.Buffer) *Renderer {
	return NewRenderer(buf, termenv.WithProfile(termenv.Ascii))
}

func TestRender(t *testing.T) {
	board := chomp.New(3, 3)
	board.Remove(1, 1)

	r := plainRenderer(&bytes.Buffer{})
	expected := "" +
		"  0 1 2 \n" +
		"0 O O O \n" +
		"1 O X X \n" +
		"2 O X X \n"
	assert.Equal(t, expected, r.Render(board))

	r.Coords = false
	assert.Equal(t, "O O O \nO X X \nO X X \n", r.Render(board))
}

func TestRenderMarksLastMove(t *testing.T) {
	board := chomp.New(2, 2)
	board.Remove(0, 1)

	r := plainRenderer(&bytes.Buffer{})
	r.Coords = false
	r.MarkMove(chomp.NewCoord(0, 1))

	// glyphs stay the same without colours
	assert.Equal(t, "O X \nO X \n", r.Render(board))
}

func TestPrintAndStatus(t *testing.T) {
	buf := &bytes.Buffer{}
	r := plainRenderer(buf)
	r.Coords = false

	require.NoError(t, r.Print(chomp.New(1, 2)))
	require.NoError(t, r.Status("A.I.'s move: %v", chomp.NewCoord(0, 1)))

	assert.Equal(t, "O O \nA.I.'s move: (0, 1)\n", buf.String())
}

func TestRenderColours(t *testing.T) {
	board := chomp.New(1, 2)
	r := NewRenderer(&bytes.Buffer{}, termenv.WithProfile(termenv.ANSI))

	out := r.Render(board)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, SquareLeft)
}
