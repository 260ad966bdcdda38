package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/IlikeChooros/go-chomp/pkg/chomp"
)

/*
Arena benchmark subpackage, plays a series of chomp games between two players
on the same starting board, the first mover of every game is picked at random.
*/

var ErrIllegalMove = errors.New("player made an illegal move")

type VersusArena struct {
	VersusArenaStats
	Player1  Player
	Player2  Player
	NGames   int
	NWorkers int
	Width    int
	Height   int
	// Seed for the first mover choice, 0 means time based
	Seed int64

	wg      sync.WaitGroup
	done    chan struct{}
	ctx     context.Context
	mu      sync.Mutex
	records []GameRecord
	err     error
}

func NewVersusArena(width, height int, player1, player2 Player) *VersusArena {
	return &VersusArena{
		Player1:  player1,
		Player2:  player2,
		NGames:   100,
		NWorkers: 2,
		Width:    width,
		Height:   height,
		ctx:      context.Background(),
	}
}

func (va *VersusArena) WithContext(ctx context.Context) *VersusArena {
	va.ctx = ctx
	return va
}

func (va *VersusArena) Setup(nGames, nWorkers int) *VersusArena {
	va.NGames = nGames
	va.NWorkers = max(nWorkers, 1)
	return va
}

// Start equally distributed work between the workers, returns immediately
func (va *VersusArena) Start(listener ListenerLike) {
	if listener == nil {
		listener = NopListener{}
	}

	va.done = make(chan struct{})
	va.records = make([]GameRecord, 0, va.NGames)
	va.err = nil

	seed := va.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	listener.OnStart(va.NGames)
	logx.Infof("arena: %d games of %s vs %s on %dx%d, %d workers",
		va.NGames, va.Player1.Name(), va.Player2.Name(), va.Width, va.Height, va.NWorkers)

	nWorkers := max(va.NWorkers, 1)
	nGames := va.NGames / nWorkers
	rest := va.NGames % nWorkers
	for i := range nWorkers {
		delta := 0
		if rest > 0 {
			delta = 1
			rest--
		}
		va.wg.Add(1)

		// every worker gets its own players, searchers are not shared
		p1 := va.Player1.Clone()
		p2 := va.Player2.Clone()
		r := rand.New(rand.NewSource(seed + int64(i)))
		go va.worker(i, nGames+delta, listener, p1, p2, r)
	}

	go func() {
		va.wg.Wait()
		listener.Summary(va.Summary())
		listener.OnEnd()
		close(va.done)
	}()
}

// Block until all of the games are played, or the context is cancelled.
// Returns the first error of the workers.
func (va *VersusArena) Wait() error {
	<-va.done
	va.mu.Lock()
	defer va.mu.Unlock()
	return va.err
}

func (va *VersusArena) Run(listener ListenerLike) error {
	va.Start(listener)
	return va.Wait()
}

func (va *VersusArena) Summary() VersusSummaryInfo {
	return VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Workers:          max(va.NWorkers, 1),
		P1Name:           va.Player1.Name(),
		P2Name:           va.Player2.Name(),
		Board:            fmt.Sprintf("%dx%d", va.Width, va.Height),
	}
}

// Finished games, in the order they ended
func (va *VersusArena) Records() []GameRecord {
	va.mu.Lock()
	defer va.mu.Unlock()
	return append([]GameRecord(nil), va.records...)
}

func (va *VersusArena) fail(err error) {
	va.mu.Lock()
	defer va.mu.Unlock()
	if va.err == nil {
		va.err = err
	}
}

func (va *VersusArena) worker(id, nGames int, listener ListenerLike, p1, p2 Player, r *rand.Rand) {
	defer va.wg.Done()
	finished := 0

	for range nGames {
		if err := va.ctx.Err(); err != nil {
			va.fail(err)
			break
		}

		first := 1 + r.Intn(2)
		record, err := va.playGame(id, first, p1, p2, listener)
		if err != nil {
			logx.Errorf("arena worker %d: %v", id, err)
			va.fail(err)
			break
		}

		va.add(toAgentResult(record.Loser), record.Winner() == first)
		finished++

		va.mu.Lock()
		va.records = append(va.records, record)
		va.mu.Unlock()

		info := va.info(id, nGames, record.Moves)
		info.FinishedGames = finished
		listener.OnFinishedGame(info, record)
	}

	info := va.info(id, nGames, nil)
	info.FinishedGames = finished
	listener.OnFinishedWork(info)
}

func (va *VersusArena) info(id, nGames int, moves []chomp.Coord) VersusWorkerInfo {
	return VersusWorkerInfo{
		WorkerID:         id,
		NGames:           nGames,
		GameMoveNum:      len(moves),
		Moves:            moves,
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		P1Name:           va.Player1.Name(),
		P2Name:           va.Player2.Name(),
	}
}

// Play a single game, 'first' is the number of the player to move first.
// The game ends when somebody eats the poison, when only the poison is left
// the player to move is made to eat it.
func (va *VersusArena) playGame(id, first int, p1, p2 Player, listener ListenerLike) (GameRecord, error) {
	board := chomp.New(va.Width, va.Height)
	players := [3]Player{nil, p1, p2}
	record := GameRecord{
		ID:         uuid.New(),
		Worker:     id,
		FirstMover: first,
		Moves:      make([]chomp.Coord, 0, board.RemainingCount()),
	}

	listener.OnGameStart(va.info(id, 0, nil))
	turn := first

	for {
		var move chomp.Coord
		if board.OnlyPoisonLeft() {
			move = chomp.Poison
		} else {
			var err error
			move, err = players[turn].NextMove(va.ctx, board)
			if err != nil {
				return record, err
			}
			if !board.IsOccupied(move.Row, move.Col) {
				return record, fmt.Errorf("%w: %s played %v on %s",
					ErrIllegalMove, players[turn].Name(), move, board.Notation())
			}
		}

		board.Chomp(move)
		record.Moves = append(record.Moves, move)
		listener.OnMoveMade(va.info(id, 0, record.Moves))

		if move.IsPoison() {
			record.Loser = turn
			return record, nil
		}
		turn = 3 - turn
	}
}
