package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/muesli/termenv"

	"github.com/IlikeChooros/go-alphabeta/pkg/alphabeta"
)

// Arena callbacks, called concurrently from the worker goroutines
type Listener[A alphabeta.MoveLike] interface {
	OnMoveMade(info VersusWorkerInfo[A])
	OnFinishedGame(info VersusWorkerInfo[A])
	OnFinishedWork(info VersusWorkerInfo[A])
	Summary(summary VersusSummaryInfo)
}

type NopListener[A alphabeta.MoveLike] struct{}

func (NopListener[A]) OnMoveMade(VersusWorkerInfo[A])     {}
func (NopListener[A]) OnFinishedGame(VersusWorkerInfo[A]) {}
func (NopListener[A]) OnFinishedWork(VersusWorkerInfo[A]) {}
func (NopListener[A]) Summary(VersusSummaryInfo)          {}

// Prints one line per finished game and the summary, colored if the output supports it
type TextListener[A alphabeta.MoveLike] struct {
	mu      sync.Mutex
	out     *termenv.Output
	Verbose bool // print every move as well
	JSON    bool // summary as json
}

func NewTextListener[A alphabeta.MoveLike](w io.Writer) *TextListener[A] {
	return &TextListener[A]{out: termenv.NewOutput(w)}
}

func (l *TextListener[A]) colored(result VersusMatchResult) string {
	style := l.out.String(result.String())
	switch result {
	case VersusPl1Win:
		return style.Foreground(l.out.Color("2")).String()
	case VersusPl2Win:
		return style.Foreground(l.out.Color("1")).String()
	}
	return style.Faint().String()
}

func (l *TextListener[A]) OnMoveMade(info VersusWorkerInfo[A]) {
	if !l.Verbose || len(info.Moves) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[worker %d] game %d/%d move %d: %v\n",
		info.WorkerID, info.FinishedGames+1, info.NGames, info.GameMoveNum, info.Moves[len(info.Moves)-1])
}

func (l *TextListener[A]) OnFinishedGame(info VersusWorkerInfo[A]) {
	l.mu.Lock()
	defer l.mu.Unlock()

	first, second := info.P1Name, info.P2Name
	if !info.P1WentFirst {
		first, second = second, first
	}
	fmt.Fprintf(l.out, "[worker %d] game %d/%d %s (first: %s, second: %s) after %d moves\n",
		info.WorkerID, info.FinishedGames, info.NGames, l.colored(info.Result), first, second, info.GameMoveNum)
}

func (l *TextListener[A]) OnFinishedWork(info VersusWorkerInfo[A]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[worker %d] done: %s %d, %s %d, draws %d\n",
		info.WorkerID, info.P1Name, info.P1Wins, info.P2Name, info.P2Wins, info.Draws)
}

func (l *TextListener[A]) Summary(summary VersusSummaryInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.JSON {
		enc := json.NewEncoder(l.out)
		enc.SetIndent("", "  ")
		_ = enc.Encode(summary)
		return
	}

	bold := func(s string) string { return l.out.String(s).Bold().String() }
	fmt.Fprintf(l.out, "%s vs %s: %d games on %d workers in %dms\n",
		bold(summary.P1Name), bold(summary.P2Name), summary.TotalGames, summary.Workers, summary.ElapsedMs)
	fmt.Fprintf(l.out, "  %s wins: %d\n  %s wins: %d\n  draws: %d\n  first to move wins: %d, second to move wins: %d\n",
		summary.P1Name, summary.P1Wins, summary.P2Name, summary.P2Wins, summary.Draws,
		summary.FirstToMoveWins, summary.SecondToMoveWins)
}
