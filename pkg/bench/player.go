package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/IlikeChooros/go-chomp/pkg/chomp"
	"github.com/IlikeChooros/go-chomp/pkg/search"
)

var ErrUnknownPlayer = errors.New("unknown player kind")

// Arena participant. A player is used by one goroutine at a time,
// the arena gives every worker its own clone.
type Player interface {
	Name() string
	NextMove(ctx context.Context, board *chomp.Board) (chomp.Coord, error)
	Clone() Player
}

// Plays the winning move whenever there is one
type OraclePlayer struct {
	searcher *search.Searcher
	limits   search.Limits
}

func NewOraclePlayer(limits *search.Limits) *OraclePlayer {
	if limits == nil {
		limits = search.DefaultLimits()
	}
	p := &OraclePlayer{
		searcher: search.NewSearcher(),
		limits:   *limits,
	}
	p.searcher.SetLimits(&p.limits)
	return p
}

func (p *OraclePlayer) Name() string {
	return "oracle"
}

// Winning move, or the fallback move when the position is lost or the
// search ran out of its limits
func (p *OraclePlayer) NextMove(ctx context.Context, board *chomp.Board) (chomp.Coord, error) {
	result, err := p.searcher.Search(ctx, board)
	if err != nil {
		if !errors.Is(err, search.ErrSearchAborted) || ctx.Err() != nil {
			return chomp.Coord{}, err
		}
	} else if result.Winning {
		return result.Move, nil
	}

	if move, ok := search.FallbackMove(board); ok {
		return move, nil
	}
	return chomp.Poison, nil
}

func (p *OraclePlayer) Clone() Player {
	return NewOraclePlayer(&p.limits)
}

// Always eats the last remaining square
type FallbackPlayer struct{}

func (FallbackPlayer) Name() string {
	return "fallback"
}

func (FallbackPlayer) NextMove(ctx context.Context, board *chomp.Board) (chomp.Coord, error) {
	if move, ok := search.FallbackMove(board); ok {
		return move, nil
	}
	return chomp.Poison, nil
}

func (p FallbackPlayer) Clone() Player {
	return p
}

// Picks any remaining square but the poison, uniformly
type RandomPlayer struct {
	rand *rand.Rand
}

func NewRandomPlayer(seed int64) *RandomPlayer {
	return &RandomPlayer{rand: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) Name() string {
	return "random"
}

func (p *RandomPlayer) NextMove(ctx context.Context, board *chomp.Board) (chomp.Coord, error) {
	squares := board.Occupied()
	if len(squares) <= 1 {
		return chomp.Poison, nil
	}
	// squares[0] is the poison
	return squares[1+p.rand.Intn(len(squares)-1)], nil
}

func (p *RandomPlayer) Clone() Player {
	return NewRandomPlayer(p.rand.Int63())
}

// Create a player by its config name: "oracle", "fallback" or "random"
func NewPlayer(kind string, limits *search.Limits, seed int64) (Player, error) {
	switch kind {
	case "oracle":
		return NewOraclePlayer(limits), nil
	case "fallback":
		return FallbackPlayer{}, nil
	case "random":
		return NewRandomPlayer(seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, kind)
}
