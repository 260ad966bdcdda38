package game

import "github.com/IlikeChooros/go-chomp/pkg/search"

type Option func(*Session)

// Limits for the engine's search, by default it's unbounded
func WithLimits(limits *search.Limits) Option {
	return func(s *Session) {
		s.searcher.SetLimits(limits)
	}
}

// Largest board (in squares) the session accepts, 0 means any
func WithMaxSquares(maxSquares int) Option {
	return func(s *Session) {
		s.maxSquares = maxSquares
	}
}

// Engine moves first instead of the human
func WithEngineFirst() Option {
	return func(s *Session) {
		s.engine = First
	}
}
