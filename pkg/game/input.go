package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/IlikeChooros/go-chomp/pkg/chomp"
)

var (
	ErrWrongArity  = errors.New("please enter exactly two numbers separated by a space")
	ErrNotANumber  = errors.New("invalid number")
	ErrInvalidSize = errors.New("invalid board size")
)

// Reads two whitespace separated non-negative integers, like "3 5"
func parsePair(line string) (int, int, error) {
	words := strings.Fields(line)
	if len(words) != 2 {
		return 0, 0, ErrWrongArity
	}

	var nums [2]int
	for i, word := range words {
		n, err := strconv.Atoi(word)
		if err != nil || n < 0 {
			return 0, 0, fmt.Errorf("%w for the %s number: %q", ErrNotANumber, ordinal(i), word)
		}
		nums[i] = n
	}

	return nums[0], nums[1], nil
}

func ordinal(i int) string {
	if i == 0 {
		return "first"
	}
	return "second"
}

// Parse the board size line, "<width> <height>", both have to be positive
func ParseSize(line string) (width, height int, err error) {
	width, height, err = parsePair(line)
	if err != nil {
		return 0, 0, err
	}

	if width == 0 || height == 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d board has no squares", ErrInvalidSize, width, height)
	}
	return width, height, nil
}

// Parse the move line, "<row> <col>"
func ParseMove(line string) (chomp.Coord, error) {
	row, col, err := parsePair(line)
	if err != nil {
		return chomp.Coord{}, err
	}
	return chomp.NewCoord(row, col), nil
}
