package bench

/*
Arena benchmark subpackage, plays a series of games between two differently
configured alphabeta bots on the same starting position.
*/

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/IlikeChooros/go-alphabeta/pkg/alphabeta"
)

const DefaultMaxMoves = 200

type VersusArena[G alphabeta.Game[G, P, A, F], P any, A alphabeta.MoveLike, F alphabeta.FitnessLike] struct {
	VersusArenaStats
	Player1  Contender
	Player2  Contender
	NGames   int
	NWorkers int
	// Games longer than this are counted as draws
	MaxMoves int
	// Seed of the side assignment, each worker uses Seed+id
	Seed     uint64
	Position G
	// Players[0] moves first in Position
	Players  [2]P
	Logger   zerolog.Logger
	Recorder *RecordWriter
}

func NewVersusArena[G alphabeta.Game[G, P, A, F], P any, A alphabeta.MoveLike, F alphabeta.FitnessLike](
	position G, players [2]P, p1, p2 Contender,
) *VersusArena[G, P, A, F] {
	return &VersusArena[G, P, A, F]{
		Player1:  p1,
		Player2:  p2,
		NGames:   100,
		NWorkers: 2,
		MaxMoves: DefaultMaxMoves,
		Seed:     uint64(time.Now().UnixNano()),
		Position: position,
		Players:  players,
		Logger:   zerolog.Nop(),
	}
}

func (va *VersusArena[G, P, A, F]) Setup(nGames, nWorkers int) *VersusArena[G, P, A, F] {
	va.NGames = nGames
	va.NWorkers = nWorkers
	return va
}

// Plays all the games, returns once every worker is done or the context is cancelled
func (va *VersusArena[G, P, A, F]) Run(ctx context.Context, listener Listener[A]) (VersusSummaryInfo, error) {
	if va.NGames <= 0 || va.NWorkers <= 0 {
		return VersusSummaryInfo{}, errors.Errorf("invalid arena setup: %d games on %d workers", va.NGames, va.NWorkers)
	}
	if listener == nil {
		listener = NopListener[A]{}
	}

	start := time.Now()
	workers := min(va.NWorkers, va.NGames)
	nGames, rest := va.NGames/workers, va.NGames%workers

	g, gctx := errgroup.WithContext(ctx)
	for id := 0; id < workers; id++ {
		n := nGames
		if id < rest {
			n++
		}
		g.Go(func() error {
			return va.worker(gctx, id, n, listener)
		})
	}
	err := g.Wait()

	summary := VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Workers:          workers,
		P1Name:           va.Player1.Name,
		P2Name:           va.Player2.Name,
		ElapsedMs:        time.Since(start).Milliseconds(),
	}
	listener.Summary(summary)
	return summary, err
}

func (va *VersusArena[G, P, A, F]) worker(ctx context.Context, id, nGames int, listener Listener[A]) error {
	r := rand.New(rand.NewSource(va.Seed + uint64(id)))
	local := VersusArenaStats{}
	logger := va.Logger.With().Int("worker", id).Logger()

	for i := 0; i < nGames; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		p1WentFirst := r.Intn(2) == 0
		first, second := va.Player1, va.Player2
		if !p1WentFirst {
			first, second = second, first
		}

		g := &game[G, P, A, F]{
			arena:    va,
			ctx:      ctx,
			workerID: id,
			index:    i,
			nGames:   nGames,
			listener: listener,
			local:    &local,
		}
		outcome, err := g.play([2]Contender{first, second})
		if err != nil {
			return err
		}

		result := toAgentResult(outcome, p1WentFirst)
		va.add(result, outcome)
		local.add(result, outcome)

		logger.Info().
			Int("game", i+1).
			Str("first", first.Name).
			Str("second", second.Name).
			Stringer("result", result).
			Int("moves", len(g.moves)).
			Msg("game finished")

		info := va.info(id, nGames, i+1, g.moves, &local)
		info.Result = result
		info.P1WentFirst = p1WentFirst
		listener.OnFinishedGame(info)
	}

	listener.OnFinishedWork(va.info(id, nGames, nGames, nil, &local))
	return nil
}

func (va *VersusArena[G, P, A, F]) info(id, nGames, finished int, moves []A, stats *VersusArenaStats) VersusWorkerInfo[A] {
	return VersusWorkerInfo[A]{
		WorkerID:      id,
		NGames:        nGames,
		FinishedGames: finished,
		GameMoveNum:   len(moves),
		Moves:         moves,
		P1Wins:        stats.P1Wins(),
		P2Wins:        stats.P2Wins(),
		Draws:         stats.Draws(),
		P1Name:        va.Player1.Name,
		P2Name:        va.Player2.Name,
	}
}

// single game of a worker
type game[G alphabeta.Game[G, P, A, F], P any, A alphabeta.MoveLike, F alphabeta.FitnessLike] struct {
	arena    *VersusArena[G, P, A, F]
	ctx      context.Context
	workerID int
	index    int
	nGames   int
	listener Listener[A]
	local    *VersusArenaStats
	moves    []A
}

func (g *game[G, P, A, F]) play(contenders [2]Contender) (GameOutcome, error) {
	va := g.arena
	state := va.Position.Clone()

	var (
		bots     [2]*alphabeta.Bot[G, P, A, F]
		limiters [2]*alphabeta.Limiter
	)
	for i := range bots {
		bots[i] = alphabeta.NewBot[G, P, A, F](va.Players[i])
		limits := contenders[i].Limits
		limiters[i] = alphabeta.NewLimiter(&limits)
		limiters[i].SetContext(g.ctx)
	}

	g.moves = make([]A, 0, 16)
	for ply := 0; ply < va.MaxMoves; ply++ {
		turn := -1
		for i, player := range va.Players {
			if active, actions := state.Actions(player); active && len(actions) != 0 {
				turn = i
				break
			}
		}
		if turn == -1 {
			return GameOutcome{IsDraw: true}, nil
		}

		line, ok := bots[turn].DetailedSelect(state, limiters[turn])
		if err := g.ctx.Err(); err != nil {
			return GameOutcome{}, err
		}
		if !ok {
			return GameOutcome{}, errors.Errorf("%s has no move at ply %d", contenders[turn].Name, ply)
		}

		fitness := state.Execute(line.Action, va.Players[turn])
		g.moves = append(g.moves, line.Action)
		if err := g.record(contenders[turn].Name, ply, line, limiters[turn]); err != nil {
			return GameOutcome{}, err
		}
		g.listener.OnMoveMade(va.info(g.workerID, g.nGames, g.index, g.moves, g.local))

		if over, outcome := g.finished(state, turn, fitness); over {
			return outcome, nil
		}
	}

	va.Logger.Debug().Int("moves", len(g.moves)).Msg("move limit reached, counted as a draw")
	return GameOutcome{IsDraw: true}, nil
}

// The game ends once nobody can move, or the last move reached a bound
func (g *game[G, P, A, F]) finished(state G, turn int, fitness F) (bool, GameOutcome) {
	mover := g.arena.Players[turn]
	outcome := computeOutcome(state, mover, fitness, turn == 0)
	if !outcome.IsDraw {
		return true, outcome
	}

	for _, player := range g.arena.Players {
		if _, actions := state.Actions(player); len(actions) != 0 {
			return false, outcome
		}
	}
	return true, outcome
}

func (g *game[G, P, A, F]) record(name string, ply int, line alphabeta.SearchLine[A, F], limiter *alphabeta.Limiter) error {
	if g.arena.Recorder == nil {
		return nil
	}
	return g.arena.Recorder.Write(Record{
		Game:      g.index,
		Ply:       ply,
		Worker:    g.workerID,
		Contender: name,
		Move:      fmt.Sprint(line.Action),
		Fitness:   fmt.Sprint(line.Fitness),
		Depth:     limiter.ReachedDepth(),
		Steps:     uint64(limiter.Nodes()),
		ElapsedMs: int64(limiter.Elapsed()),
		Completed: limiter.StopReason() == alphabeta.StopNone,
	})
}
