package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/IlikeChooros/go-chomp/pkg/chomp"
	"github.com/IlikeChooros/go-chomp/pkg/search"
)

var (
	ErrOutOfBounds  = errors.New("square is outside of the board")
	ErrAlreadyEaten = errors.New("square was already eaten")
	ErrGameOver     = errors.New("game is over")
	ErrTooLarge     = errors.New("board is too large")
)

type Player int8

const (
	First  Player = 0
	Second Player = 1
)

func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	switch p {
	case First:
		return "First"
	case Second:
		return "Second"
	}
	return ""
}

// One game of chomp, owns its board. The board is only changed through Play
// and EngineMove, which validate the moves the core takes for granted.
type Session struct {
	ID         uuid.UUID
	board      *chomp.Board
	searcher   *search.Searcher
	turn       Player
	engine     Player
	moves      []chomp.Coord
	loser      Player
	over       bool
	maxSquares int
}

func NewSession(width, height int, options ...Option) (*Session, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	s := &Session{
		ID:       uuid.New(),
		searcher: search.NewSearcher(),
		turn:     First,
		engine:   Second,
	}

	for _, option := range options {
		option(s)
	}

	if limit := s.maxSquares; limit > 0 && (width > limit || height > limit || width*height > limit) {
		return nil, fmt.Errorf("%w: %dx%d has more than %d squares", ErrTooLarge, width, height, s.maxSquares)
	}

	s.board = chomp.New(width, height)
	return s, nil
}

// Copy of the current board
func (s *Session) Board() *chomp.Board {
	return s.board.Clone()
}

// Player to move
func (s *Session) Turn() Player {
	return s.turn
}

// Side played by the engine
func (s *Session) Engine() Player {
	return s.engine
}

func (s *Session) EngineTurn() bool {
	return !s.over && s.turn == s.engine
}

// Moves played so far
func (s *Session) Moves() []chomp.Coord {
	return append([]chomp.Coord(nil), s.moves...)
}

func (s *Session) Over() bool {
	return s.over
}

// The player who ate, or has to eat, the poison. Valid when the game is over
func (s *Session) Loser() (Player, bool) {
	return s.loser, s.over
}

func (s *Session) Winner() (Player, bool) {
	return s.loser.Opponent(), s.over
}

// Check if 'c' can be played now
func (s *Session) Validate(c chomp.Coord) error {
	if s.over {
		return ErrGameOver
	}
	if !s.board.InBounds(c.Row, c.Col) {
		return fmt.Errorf("%w: %v on a %dx%d board", ErrOutOfBounds, c, s.board.Width(), s.board.Height())
	}
	if !s.board.IsOccupied(c.Row, c.Col) {
		return fmt.Errorf("%w: %v", ErrAlreadyEaten, c)
	}
	return nil
}

// Play 'c' for the player to move
func (s *Session) Play(ctx context.Context, c chomp.Coord) error {
	if err := s.Validate(c); err != nil {
		return err
	}

	mover := s.turn
	s.board.Chomp(c)
	s.moves = append(s.moves, c)
	s.turn = mover.Opponent()

	logger := logx.WithContext(ctx)
	logger.Debugw("move played",
		logx.Field("session", s.ID.String()),
		logx.Field("player", mover.String()),
		logx.Field("move", c.String()),
		logx.Field("position", s.board.Notation()),
	)

	switch s.board.RemainingCount() {
	case 0:
		// ate the poison
		s.finish(ctx, mover)
	case 1:
		// only the poison left, the opponent is forced to eat it
		s.finish(ctx, s.turn)
	}

	return nil
}

func (s *Session) finish(ctx context.Context, loser Player) {
	s.over = true
	s.loser = loser
	logx.WithContext(ctx).Infow("game over",
		logx.Field("session", s.ID.String()),
		logx.Field("winner", loser.Opponent().String()),
		logx.Field("moves", len(s.moves)),
	)
}

// Pick the engine's move for the current position without playing it:
// the winning move if there is one, otherwise the last remaining square.
// If the search hits its limits the last remaining square is used as well.
func (s *Session) Suggest(ctx context.Context) (chomp.Coord, search.Result, error) {
	if s.over {
		return chomp.Coord{}, search.Result{}, ErrGameOver
	}

	result, err := s.searcher.Search(ctx, s.board)
	if err != nil && !errors.Is(err, search.ErrSearchAborted) {
		return chomp.Coord{}, result, err
	}
	if err != nil {
		logx.WithContext(ctx).Infow("search aborted, using fallback move",
			logx.Field("session", s.ID.String()),
			logx.Field("reason", result.StopReason.String()),
			logx.Field("nodes", result.Nodes),
		)
	}

	if err == nil && result.Winning {
		return result.Move, result, nil
	}
	if move, ok := search.FallbackMove(s.board); ok {
		return move, result, nil
	}
	return chomp.Poison, result, nil
}

// Let the engine play for the player to move, returns the played move
func (s *Session) EngineMove(ctx context.Context) (chomp.Coord, error) {
	move, _, err := s.Suggest(ctx)
	if err != nil {
		return chomp.Coord{}, err
	}
	return move, s.Play(ctx, move)
}
