package search

import "github.com/IlikeChooros/go-chomp/pkg/chomp"

// Finds a move that leaves the opponent in a losing position.
//
// Returns false if the player to move loses no matter what, including the case
// when only the poisoned square is left. The search is a plain win/loss minimax
// over the whole game tree, without any cache or pruning: moves are tried in
// ascending row, then column order, and the first one after which the opponent
// has no winning move is returned. Each recursive call works on its own copy of
// the board, 'board' itself is never modified.
//
// Runs in exponential time, meant for boards of a few tens of squares.
// Panics if the board is empty, there is no player 'to move' there.
func FindWinningMove(board *chomp.Board) (chomp.Coord, bool) {
	if board.RemainingCount() == 0 {
		panic("search: FindWinningMove called on an empty board")
	}
	return winningMove(board)
}

func winningMove(board *chomp.Board) (move chomp.Coord, found bool) {
	// Only the poison is left, the player to move has to eat it
	if board.RemainingCount() == 1 {
		return
	}

	board.EachOccupied(func(c chomp.Coord) bool {
		if c.IsPoison() {
			return true
		}

		next := board.Clone()
		next.Chomp(c)

		if _, ok := winningMove(next); !ok {
			move, found = c, true
			return false
		}
		return true
	})

	return
}

// Whether the player to move can force a win
func IsWinning(board *chomp.Board) bool {
	_, ok := FindWinningMove(board)
	return ok
}
