package bench

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/IlikeChooros/go-chomp/pkg/chomp"
	"github.com/IlikeChooros/go-chomp/pkg/search"
)

func TestMain(m *testing.M) {
	logx.Disable()
	os.Exit(m.Run())
}

type countingListener struct {
	NopListener
	mu        sync.Mutex
	started   int
	games     int
	moves     int
	workers   int
	summaries []VersusSummaryInfo
	ended     int
}

func (l *countingListener) OnStart(int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.started++
}

func (l *countingListener) OnMoveMade(VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.moves++
}

func (l *countingListener) OnFinishedGame(VersusWorkerInfo, GameRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.games++
}

func (l *countingListener) OnFinishedWork(VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.workers++
}

func (l *countingListener) Summary(s VersusSummaryInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.summaries = append(l.summaries, s)
}

func (l *countingListener) OnEnd() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ended++
}

func checkRecords(t *testing.T, arena *VersusArena) {
	t.Helper()

	for _, record := range arena.Records() {
		require.NotEmpty(t, record.Moves)
		assert.Equal(t, chomp.Poison, record.Moves[len(record.Moves)-1], "game %s", record)
		for _, move := range record.Moves[:len(record.Moves)-1] {
			assert.False(t, move.IsPoison(), "game %s", record)
		}

		// players alternate, so the parity of the game length tells who ate the poison
		loser := record.FirstMover
		if len(record.Moves)%2 == 0 {
			loser = 3 - record.FirstMover
		}
		assert.Equal(t, loser, record.Loser, "game %s", record)
	}
}

func TestOracleVersusRandom(t *testing.T) {
	arena := NewVersusArena(3, 4, NewOraclePlayer(nil), NewRandomPlayer(7)).Setup(20, 3)
	arena.Seed = 11
	listener := &countingListener{}

	require.NoError(t, arena.Run(listener))

	assert.Equal(t, 20, arena.Total())
	assert.Equal(t, 20, arena.FirstToMoveWins()+arena.SecondToMoveWins())
	assert.Len(t, arena.Records(), 20)
	checkRecords(t, arena)

	// full boards are first player wins, so the oracle never loses when it starts
	for _, record := range arena.Records() {
		if record.FirstMover == 1 {
			assert.Equal(t, 2, record.Loser, "game %s", record)
		}
	}

	assert.Equal(t, 1, listener.started)
	assert.Equal(t, 20, listener.games)
	assert.Equal(t, 3, listener.workers)
	assert.Equal(t, 1, listener.ended)
	require.Len(t, listener.summaries, 1)
	assert.Equal(t, arena.Summary(), listener.summaries[0])

	moves := 0
	for _, record := range arena.Records() {
		moves += len(record.Moves)
	}
	assert.Equal(t, moves, listener.moves)
}

func TestOracleVersusOracle(t *testing.T) {
	arena := NewVersusArena(2, 5, NewOraclePlayer(nil), NewOraclePlayer(nil)).Setup(10, 2)
	require.NoError(t, arena.Run(nil))

	assert.Equal(t, 10, arena.Total())
	assert.Equal(t, 10, arena.FirstToMoveWins())
	assert.Equal(t, 0, arena.SecondToMoveWins())
	checkRecords(t, arena)
}

func TestFallbackVersusFallback(t *testing.T) {
	// one square per move, 5 squares before the poison: the first mover eats the last one
	arena := NewVersusArena(2, 3, FallbackPlayer{}, FallbackPlayer{}).Setup(6, 4)
	require.NoError(t, arena.Run(NopListener{}))

	assert.Equal(t, 6, arena.Total())
	assert.Equal(t, 6, arena.FirstToMoveWins())
	for _, record := range arena.Records() {
		assert.Len(t, record.Moves, 6)
		assert.Equal(t, chomp.NewCoord(1, 2), record.Moves[0])
	}
}

func TestCancelledArena(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	arena := NewVersusArena(3, 3, FallbackPlayer{}, NewRandomPlayer(1)).Setup(10, 2).WithContext(ctx)
	err := arena.Run(nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, arena.Total())
}

func TestSummaryJSON(t *testing.T) {
	arena := NewVersusArena(2, 2, FallbackPlayer{}, NewRandomPlayer(3)).Setup(4, 1)
	require.NoError(t, arena.Run(nil))

	data, err := arena.Summary().JSON()
	require.NoError(t, err)

	var decoded VersusSummaryInfo
	require.NoError(t, sonic.Unmarshal(data, &decoded))
	assert.Equal(t, arena.Summary(), decoded)
	assert.Contains(t, string(data), `"total_games": 4`)
	assert.Contains(t, string(data), `"board": "2x2"`)

	record := arena.Records()[0]
	assert.Contains(t, record.String(), record.ID.String())
}

func TestProgressListener(t *testing.T) {
	out := &bytes.Buffer{}
	arena := NewVersusArena(2, 3, FallbackPlayer{}, NewRandomPlayer(5)).Setup(8, 2)
	require.NoError(t, arena.Run(NewProgressListener(out)))

	assert.Contains(t, out.String(), "Summary:")
	assert.Contains(t, out.String(), "fallback")
	assert.Contains(t, out.String(), "random")
}

func TestRandomPlayer(t *testing.T) {
	p := NewRandomPlayer(42)
	ctx := context.Background()

	board := chomp.New(3, 3)
	board.Remove(1, 1)
	for range 50 {
		move, err := p.NextMove(ctx, board)
		require.NoError(t, err)
		assert.True(t, board.IsOccupied(move.Row, move.Col))
		assert.False(t, move.IsPoison())
	}

	move, err := p.NextMove(ctx, chomp.New(1, 1))
	require.NoError(t, err)
	assert.Equal(t, chomp.Poison, move)
}

func TestOraclePlayer(t *testing.T) {
	ctx := context.Background()
	p := NewOraclePlayer(nil)

	move, err := p.NextMove(ctx, chomp.New(3, 3))
	require.NoError(t, err)
	assert.Equal(t, chomp.NewCoord(1, 1), move)

	// lost position, eats the last square
	lost, err := chomp.ParseNotation("3x3 3/1/1")
	require.NoError(t, err)
	move, err = p.NextMove(ctx, lost)
	require.NoError(t, err)
	assert.Equal(t, chomp.NewCoord(2, 0), move)

	// running out of nodes falls back as well
	limited := NewOraclePlayer(search.DefaultLimits().SetNodes(1))
	move, err = limited.Clone().NextMove(ctx, chomp.New(6, 7))
	require.NoError(t, err)
	assert.Equal(t, chomp.NewCoord(5, 6), move)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = p.NextMove(cancelled, chomp.New(3, 3))
	assert.True(t, errors.Is(err, search.ErrSearchAborted))
}

func TestNewPlayer(t *testing.T) {
	for _, kind := range []string{"oracle", "fallback", "random"} {
		p, err := NewPlayer(kind, nil, 1)
		require.NoError(t, err)
		assert.Equal(t, kind, p.Name())
	}

	_, err := NewPlayer("minimax", nil, 1)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
	assert.True(t, strings.Contains(err.Error(), "minimax"))
}
