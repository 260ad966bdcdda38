package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/IlikeChooros/go-chomp/pkg/chomp"
)

var (
	ErrEmptyBoard    = errors.New("search: board has no squares left")
	ErrSearchAborted = errors.New("search: aborted before the result was known")
)

// How many visited positions between limiter checks
const checkInterval = 256

type Result struct {
	Move chomp.Coord
	// false means the player to move is lost, Move is then meaningless
	Winning    bool
	Nodes      uint64
	TimeMs     int
	Nps        uint64
	StopReason StopReason
}

func (r Result) String() string {
	if !r.Winning {
		return fmt.Sprintf("Result={losing, nodes=%d, time=%dms}", r.Nodes, r.TimeMs)
	}
	return fmt.Sprintf("Result={move=%v, nodes=%d, time=%dms}", r.Move, r.Nodes, r.TimeMs)
}

// Bounded version of FindWinningMove. Gives exactly the same answer whenever the search
// finishes, but can be cancelled through the context or the limits, and can spread the
// root moves over several goroutines. Not safe for concurrent Search calls.
type Searcher struct {
	Limiter  LimiterLike
	listener *StatsListener
	nodes    atomic.Uint64
	mu       sync.Mutex
}

func NewSearcher() *Searcher {
	listener := NewStatsListener()
	return &Searcher{
		Limiter:  NewLimiter(),
		listener: &listener,
	}
}

func (s *Searcher) SetLimits(limits *Limits) {
	s.Limiter.SetLimits(limits)
}

func (s *Searcher) Limits() *Limits {
	return s.Limiter.Limits()
}

func (s *Searcher) SetListener(listener StatsListener) {
	*s.listener = listener
}

func (s *Searcher) StatsListener() *StatsListener {
	return s.listener
}

// Stop the running search
func (s *Searcher) Stop() {
	s.Limiter.SetStop(true)
}

// Number of positions visited by the last (or current) search
func (s *Searcher) Nodes() uint64 {
	return s.nodes.Load()
}

// Get the reason why the search was stopped, valid after search ends
func (s *Searcher) StopReason() StopReason {
	return s.Limiter.StopReason()
}

// Root move state
const (
	rootPending int32 = iota
	rootWins
	rootLoses
)

type rootSearch struct {
	root       *chomp.Board
	candidates []chomp.Coord
	outcomes   []atomic.Int32
	// lowest index of a winning root move found so far
	best     atomic.Int64
	next     atomic.Int64
	resolved atomic.Int32
	aborted  atomic.Bool
}

// Search the position, blocks until the answer is known or a limit is reached,
// in the latter case returns ErrSearchAborted
func (s *Searcher) Search(ctx context.Context, board *chomp.Board) (Result, error) {
	if board.RemainingCount() == 0 {
		return Result{}, ErrEmptyBoard
	}

	s.Limiter.SetContext(ctx)
	s.Limiter.Reset()
	// the root counts as a visited position
	s.nodes.Store(1)

	if err := ctx.Err(); err != nil {
		return s.abort()
	}

	rs := &rootSearch{root: board.Clone()}
	if board.RemainingCount() > 1 {
		rs.root.EachOccupied(func(c chomp.Coord) bool {
			if !c.IsPoison() {
				rs.candidates = append(rs.candidates, c)
			}
			return true
		})
	}
	rs.outcomes = make([]atomic.Int32, len(rs.candidates))
	rs.best.Store(int64(len(rs.candidates)))

	threads := min(max(1, s.Limiter.Limits().NThreads), max(1, len(rs.candidates)))
	wg := sync.WaitGroup{}
	for range threads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(rs)
		}()
	}
	wg.Wait()

	result, known := rs.result()
	if !known {
		return s.abort()
	}

	result.Nodes = s.nodes.Load()
	result.TimeMs = int(s.Limiter.Elapsed())
	result.Nps = result.Nodes * 1000 / uint64(result.TimeMs)
	s.invoke(s.listener.onStop, ListenerStats{
		Resolved:   int(rs.resolved.Load()),
		Candidates: len(rs.candidates),
		Nodes:      result.Nodes,
		TimeMs:     result.TimeMs,
		Nps:        result.Nps,
	})
	return result, nil
}

func (s *Searcher) abort() (Result, error) {
	nodes := s.nodes.Load()
	s.Limiter.EvaluateStopReason(nodes)
	reason := s.Limiter.StopReason()
	stats := ListenerStats{
		Nodes:      nodes,
		TimeMs:     int(s.Limiter.Elapsed()),
		StopReason: reason,
	}
	stats.Nps = nodes * 1000 / uint64(stats.TimeMs)
	s.invoke(s.listener.onStop, stats)

	return Result{Nodes: nodes, TimeMs: stats.TimeMs, Nps: stats.Nps, StopReason: reason},
		fmt.Errorf("%w (stop reason: %s)", ErrSearchAborted, reason)
}

func (s *Searcher) invoke(f ListenerFunc, stats ListenerStats) {
	if f == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f(stats)
}

// Takes root moves in order, until there are none left or a winning
// move with a lower index was already found
func (s *Searcher) worker(rs *rootSearch) {
	for !rs.aborted.Load() {
		i := rs.next.Add(1) - 1
		if i >= int64(len(rs.candidates)) || i > rs.best.Load() {
			return
		}

		child := rs.root.Clone()
		child.Chomp(rs.candidates[i])

		w := walker{
			limiter: s.Limiter,
			nodes:   &s.nodes,
			halt: func() bool {
				return rs.aborted.Load() || rs.best.Load() < i
			},
		}
		_, opponentWins := w.winningMove(child)

		if w.limited {
			rs.aborted.Store(true)
			return
		}
		if w.halted {
			// a better move was found (best < i, result() never looks at this index),
			// or another worker ran out of limits (left pending, result() reports unknown)
			continue
		}

		outcome := rootLoses
		if !opponentWins {
			outcome = rootWins
			for {
				best := rs.best.Load()
				if i >= best || rs.best.CompareAndSwap(best, i) {
					break
				}
			}
		}
		rs.outcomes[i].Store(outcome)
		resolved := rs.resolved.Add(1)

		if s.listener.onRootMove != nil {
			elapsed := int(s.Limiter.Elapsed())
			nodes := s.nodes.Load()
			s.invoke(s.listener.onRootMove, ListenerStats{
				Candidate:     rs.candidates[i],
				CandidateWins: outcome == rootWins,
				Resolved:      int(resolved),
				Candidates:    len(rs.candidates),
				Nodes:         nodes,
				TimeMs:        elapsed,
				Nps:           nodes * 1000 / uint64(elapsed),
			})
		}
	}
}

// The answer is known once every root move before the lowest winning one
// (or every root move, if none wins) is resolved as not winning
func (rs *rootSearch) result() (Result, bool) {
	best := int(rs.best.Load())
	for i := 0; i < best; i++ {
		if rs.outcomes[i].Load() != rootLoses {
			return Result{}, false
		}
	}

	if best == len(rs.candidates) {
		return Result{}, true
	}
	return Result{Move: rs.candidates[best], Winning: true}, true
}

// Single-goroutine recursive search below a root move, same algorithm as winningMove,
// with periodic limit checks
type walker struct {
	limiter LimiterLike
	nodes   *atomic.Uint64
	halt    func() bool
	limited bool
	halted  bool
}

func (w *walker) stopped() bool {
	if w.limited || w.halted {
		return true
	}

	n := w.nodes.Add(1)
	if n%checkInterval == 0 {
		if w.halt != nil && w.halt() {
			w.halted = true
		} else if !w.limiter.Ok(n) {
			w.limited = true
		}
	}
	return w.limited || w.halted
}

func (w *walker) winningMove(board *chomp.Board) (move chomp.Coord, found bool) {
	if w.stopped() || board.RemainingCount() == 1 {
		return
	}

	board.EachOccupied(func(c chomp.Coord) bool {
		if c.IsPoison() {
			return true
		}

		next := board.Clone()
		next.Chomp(c)

		_, ok := w.winningMove(next)
		if w.limited || w.halted {
			return false
		}
		if !ok {
			move, found = c, true
			return false
		}
		return true
	})

	return
}
