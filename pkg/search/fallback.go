package search

import "github.com/IlikeChooros/go-chomp/pkg/chomp"

// Move to play when there is no winning one: the last remaining square
// (highest row, then highest column), which eats as little as possible and
// drags the game on. Returns false when nothing but the poison is left.
func FallbackMove(board *chomp.Board) (chomp.Coord, bool) {
	if board.RemainingCount() <= 1 {
		return chomp.Coord{}, false
	}

	for r := board.Width() - 1; r >= 0; r-- {
		for c := board.Height() - 1; c >= 0; c-- {
			if board.IsOccupied(r, c) {
				return chomp.NewCoord(r, c), true
			}
		}
	}

	return chomp.Coord{}, false
}

// Engine's move policy: the winning move if there is one, otherwise
// the fallback move, and the poison only when it's the last square
func BestMove(board *chomp.Board) chomp.Coord {
	if move, ok := FindWinningMove(board); ok {
		return move
	}
	if move, ok := FallbackMove(board); ok {
		return move
	}
	return chomp.Poison
}
