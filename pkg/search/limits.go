package search

import "github.com/bytedance/sonic"

// Bounds for the Searcher. The exhaustive search itself has no notion of
// a budget, these only decide when to give up and report ErrSearchAborted.
type Limits struct {
	Nodes    uint64
	Movetime int
	Infinite bool
	NThreads int
}

func (l Limits) String() string {
	str, _ := sonic.MarshalString(l)
	return str
}

const (
	DefaultNodeLimit     uint64 = 0
	DefaultMovetimeLimit int    = -1
)

func DefaultLimits() *Limits {
	return &Limits{
		Nodes:    DefaultNodeLimit,
		Movetime: DefaultMovetimeLimit,
		Infinite: true,
		NThreads: 1,
	}
}

// Set the maxiumum number of positions the search can visit, 0 means no limit
func (l *Limits) SetNodes(nodes uint64) *Limits {
	l.Nodes = nodes
	l.Infinite = nodes == DefaultNodeLimit && l.Movetime == DefaultMovetimeLimit
	return l
}

// Set the maximum time for the search in milliseconds, negative means no limit
func (l *Limits) SetMovetime(movetime int) *Limits {
	if movetime < 0 {
		movetime = DefaultMovetimeLimit
	}
	l.Movetime = movetime
	l.Infinite = l.Nodes == DefaultNodeLimit && movetime == DefaultMovetimeLimit
	return l
}

func (l *Limits) SetInfinite(infinite bool) *Limits {
	l.Infinite = infinite
	return l
}

// Number of goroutines evaluating the root moves
func (l *Limits) SetThreads(threads int) *Limits {
	l.NThreads = max(threads, 1)
	return l
}
