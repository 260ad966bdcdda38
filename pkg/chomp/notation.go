package chomp

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidNotation = errors.New("chomp: invalid notation")

// String notation of the position, much like FEN for chess.
// Since every reachable position is a staircase, it's enough to store
// how many squares are left in each row:
//
//	<width>x<height> <row 0>/<row 1>/.../<row width-1>
//
// For example a 3x3 board after eating (1, 1):
//
//	3x3 3/1/1
//
// A board without rows is written as '<width>x<height> -'
func (b *Board) Notation() string {
	builder := strings.Builder{}
	builder.WriteString(strconv.Itoa(b.width))
	builder.WriteByte('x')
	builder.WriteString(strconv.Itoa(b.height))
	builder.WriteByte(' ')

	if b.width == 0 {
		builder.WriteByte('-')
		return builder.String()
	}

	for i, length := range b.RowLengths() {
		if i != 0 {
			builder.WriteByte('/')
		}
		builder.WriteString(strconv.Itoa(length))
	}

	return builder.String()
}

// Create the board from given notation string, see Board.Notation for the format
func ParseNotation(notation string) (*Board, error) {
	sections := strings.Fields(notation)
	if len(sections) != 2 {
		return nil, fmt.Errorf("%w: expected 2 sections separated by space, got %d", ErrInvalidNotation, len(sections))
	}

	width, height, err := parseSize(sections[0])
	if err != nil {
		return nil, err
	}
	if sections[1] == "-" {
		if width != 0 {
			return nil, fmt.Errorf("%w: missing rows for width %d", ErrInvalidNotation, width)
		}
		return New(width, height), nil
	}

	rows := strings.Split(sections[1], "/")
	if len(rows) != width {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidNotation, width, len(rows))
	}
	if height != 0 && width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: %dx%d board is too large", ErrInvalidNotation, width, height)
	}

	board := New(width, height)

	prev := height
	for r, token := range rows {
		length, err := strconv.Atoi(token)
		if err != nil || length < 0 {
			return nil, fmt.Errorf("%w: invalid length %q of row %d", ErrInvalidNotation, token, r)
		}

		// Longer row below a shorter one can't be reached by chomping
		if length > prev {
			return nil, fmt.Errorf("%w: row %d has %d squares, more than %d above it", ErrInvalidNotation, r, length, prev)
		}

		if length < height {
			board.Remove(r, length)
		}
		prev = length
	}

	return board, nil
}

// Board size of the notation, without building the board
func NotationSize(notation string) (width, height int, err error) {
	size, _, _ := strings.Cut(strings.TrimSpace(notation), " ")
	return parseSize(size)
}

func parseSize(token string) (int, int, error) {
	w, h, found := strings.Cut(token, "x")
	if !found {
		return 0, 0, fmt.Errorf("%w: size %q must look like <width>x<height>", ErrInvalidNotation, token)
	}

	width, err := strconv.Atoi(w)
	if err != nil || width < 0 {
		return 0, 0, fmt.Errorf("%w: invalid width %q", ErrInvalidNotation, w)
	}

	height, err := strconv.Atoi(h)
	if err != nil || height < 0 {
		return 0, 0, fmt.Errorf("%w: invalid height %q", ErrInvalidNotation, h)
	}

	return width, height, nil
}
