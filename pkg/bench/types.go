package bench

import (
	"sync/atomic"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/IlikeChooros/go-chomp/pkg/chomp"
)

type VersusMatchResult int

// Chomp has no draws, somebody always eats the poison
const (
	VersusPl1Win VersusMatchResult = 1
	VersusPl2Win VersusMatchResult = -1
)

type VersusArenaStats struct {
	p1Wins           atomic.Uint32
	p2Wins           atomic.Uint32
	firstToMoveWins  atomic.Uint32
	secondToMoveWins atomic.Uint32
}

func (vas *VersusArenaStats) Total() int {
	return vas.P1Wins() + vas.P2Wins()
}

func (vas *VersusArenaStats) P1Wins() int {
	return int(vas.p1Wins.Load())
}

func (vas *VersusArenaStats) P2Wins() int {
	return int(vas.p2Wins.Load())
}

func (vas *VersusArenaStats) FirstToMoveWins() int {
	return int(vas.firstToMoveWins.Load())
}

func (vas *VersusArenaStats) SecondToMoveWins() int {
	return int(vas.secondToMoveWins.Load())
}

func (vas *VersusArenaStats) add(result VersusMatchResult, firstToMoveWon bool) {
	if result == VersusPl1Win {
		vas.p1Wins.Add(1)
	} else {
		vas.p2Wins.Add(1)
	}
	if firstToMoveWon {
		vas.firstToMoveWins.Add(1)
	} else {
		vas.secondToMoveWins.Add(1)
	}
}

type VersusWorkerInfo struct {
	WorkerID         int
	NGames           int
	FinishedGames    int
	GameMoveNum      int
	Moves            []chomp.Coord
	P1Wins           int
	P2Wins           int
	FirstToMoveWins  int
	SecondToMoveWins int
	P1Name           string
	P2Name           string
}

type VersusSummaryInfo struct {
	TotalGames       int    `json:"total_games"`
	P1Wins           int    `json:"player1_wins"`
	P2Wins           int    `json:"player2_wins"`
	FirstToMoveWins  int    `json:"first_to_move_wins"`
	SecondToMoveWins int    `json:"second_to_move_wins"`
	Workers          int    `json:"workers"`
	P1Name           string `json:"player1_name"`
	P2Name           string `json:"player2_name"`
	Board            string `json:"board"`
}

func (s VersusSummaryInfo) JSON() ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(s, "", "  ")
}

// One finished arena game. Players are numbered as in the arena (1 or 2).
type GameRecord struct {
	ID         uuid.UUID     `json:"id"`
	Worker     int           `json:"worker"`
	FirstMover int           `json:"first_mover"`
	Moves      []chomp.Coord `json:"moves"`
	Loser      int           `json:"loser"`
}

func (r GameRecord) Winner() int {
	return 3 - r.Loser
}

func (r GameRecord) String() string {
	str, _ := sonic.MarshalString(r)
	return str
}

// Game result from the arena players' perspective
func toAgentResult(loser int) VersusMatchResult {
	if loser == 2 {
		return VersusPl1Win
	}
	return VersusPl2Win
}
