package search

import "github.com/IlikeChooros/go-chomp/pkg/chomp"

type ListenerStats struct {
	// Root move that was just resolved
	Candidate chomp.Coord
	// Whether 'Candidate' leaves the opponent in a losing position
	CandidateWins bool
	// Number of resolved root moves so far, and the total number of them
	Resolved   int
	Candidates int
	Nodes      uint64
	TimeMs     int
	Nps        uint64
	StopReason StopReason
}

// Listener function callback, will recieve current search statistics
type ListenerFunc func(ListenerStats)

type StatsListener struct {
	// called every time a root move gets resolved (as winning or not)
	onRootMove ListenerFunc

	// called when the search stops (either by finishing, limiter or 'stop' signal)
	onStop ListenerFunc
}

func NewStatsListener() StatsListener {
	return StatsListener{}
}

// Attach new 'root move resolved' callback. With more than one thread it may be called
// from different goroutines, but never concurrently
func (listener *StatsListener) OnRootMove(onRootMove ListenerFunc) *StatsListener {
	listener.onRootMove = onRootMove
	return listener
}

// Attach 'on search end' callback, called once,
// makes 'StopReason' available in the stats
func (listener *StatsListener) OnStop(onStop ListenerFunc) *StatsListener {
	listener.onStop = onStop
	return listener
}
