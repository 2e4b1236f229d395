package bench

import (
	"sync/atomic"

	"github.com/IlikeChooros/go-alphabeta/pkg/alphabeta"
)

type VersusMatchResult int

const (
	VersusPl1Win VersusMatchResult = 1
	VersusPl2Win VersusMatchResult = -1
	VersusDraw   VersusMatchResult = 0
)

func (r VersusMatchResult) String() string {
	switch r {
	case VersusPl1Win:
		return "1-0"
	case VersusPl2Win:
		return "0-1"
	}
	return "1/2"
}

// Bot configuration taking part in the arena
type Contender struct {
	Name   string
	Limits alphabeta.Limits
}

type VersusArenaStats struct {
	p1Wins           uint32
	p2Wins           uint32
	draws            uint32
	firstToMoveWins  uint32
	secondToMoveWins uint32
}

func (vas *VersusArenaStats) Total() int {
	return vas.P1Wins() + vas.P2Wins() + vas.Draws()
}

func (vas *VersusArenaStats) P1Wins() int {
	return int(atomic.LoadUint32(&vas.p1Wins))
}

func (vas *VersusArenaStats) P2Wins() int {
	return int(atomic.LoadUint32(&vas.p2Wins))
}

func (vas *VersusArenaStats) Draws() int {
	return int(atomic.LoadUint32(&vas.draws))
}

func (vas *VersusArenaStats) FirstToMoveWins() int {
	return int(atomic.LoadUint32(&vas.firstToMoveWins))
}

func (vas *VersusArenaStats) SecondToMoveWins() int {
	return int(atomic.LoadUint32(&vas.secondToMoveWins))
}

func (vas *VersusArenaStats) add(result VersusMatchResult, outcome GameOutcome) {
	switch result {
	case VersusPl1Win:
		atomic.AddUint32(&vas.p1Wins, 1)
	case VersusPl2Win:
		atomic.AddUint32(&vas.p2Wins, 1)
	default:
		atomic.AddUint32(&vas.draws, 1)
	}

	if outcome.IsDraw {
		return
	}
	if outcome.FirstPlayerWon {
		atomic.AddUint32(&vas.firstToMoveWins, 1)
	} else {
		atomic.AddUint32(&vas.secondToMoveWins, 1)
	}
}

type VersusWorkerInfo[A alphabeta.MoveLike] struct {
	WorkerID      int
	NGames        int
	FinishedGames int
	GameMoveNum   int
	Moves         []A
	// only set in OnFinishedGame
	Result      VersusMatchResult
	P1WentFirst bool
	P1Wins      int
	P2Wins      int
	Draws       int
	P1Name      string
	P2Name      string
}

type VersusSummaryInfo struct {
	TotalGames       int    `json:"total_games"`
	P1Wins           int    `json:"player1_wins"`
	P2Wins           int    `json:"player2_wins"`
	FirstToMoveWins  int    `json:"first_to_move_wins"`
	SecondToMoveWins int    `json:"second_to_move_wins"`
	Draws            int    `json:"draws"`
	Workers          int    `json:"workers"`
	P1Name           string `json:"player1_name"`
	P2Name           string `json:"player2_name"`
	ElapsedMs        int64  `json:"elapsed_ms"`
}

// represents result from the first-player's perspective in a single game
type GameOutcome struct {
	FirstPlayerWon bool
	IsDraw         bool
}

// maps a game outcome to which agent won, given player assignments
func toAgentResult(outcome GameOutcome, p1WentFirst bool) VersusMatchResult {
	if outcome.IsDraw {
		return VersusDraw
	}

	if p1WentFirst == outcome.FirstPlayerWon {
		return VersusPl1Win
	}
	return VersusPl2Win
}

// Outcome from the fitness of the last move, seen by the player who made it.
// Games which aren't Bounded always end in a draw.
func computeOutcome[G any, P any, F alphabeta.FitnessLike](
	state G, lastMover P, fitness F, lastMoverIsFirst bool,
) GameOutcome {
	switch {
	case alphabeta.IsUpperBound(state, fitness, lastMover):
		return GameOutcome{FirstPlayerWon: lastMoverIsFirst}
	case alphabeta.IsLowerBound(state, fitness, lastMover):
		return GameOutcome{FirstPlayerWon: !lastMoverIsFirst}
	}
	return GameOutcome{IsDraw: true}
}
