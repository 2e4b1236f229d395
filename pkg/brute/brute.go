package brute

import (
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/IlikeChooros/go-alphabeta/pkg/alphabeta"
)

/*
Brute force minimax without any pruning, only meant as a reference in the tests:
it is exponential in the depth, and doesn't know anything about cancellation.
*/

type Brute[G alphabeta.Game[G, P, A, F], P any, A alphabeta.MoveLike, F alphabeta.FitnessLike] struct {
	player P
}

func New[G alphabeta.Game[G, P, A, F], P any, A alphabeta.MoveLike, F alphabeta.FitnessLike](player P) *Brute[G, P, A, F] {
	return &Brute[G, P, A, F]{player: player}
}

// Best action when searching 'depth' plies after it, the first one on ties
func (b *Brute[G, P, A, F]) Select(state G, depth uint32) (A, bool) {
	var best A
	active, actions := state.Actions(b.player)
	if !active || len(actions) == 0 {
		return best, false
	}

	best = actions[0]
	bestValue := b.Minimax(state, best, depth)
	for _, action := range actions[1:] {
		if value := b.Minimax(state, action, depth); value > bestValue {
			best, bestValue = action, value
		}
	}
	return best, true
}

// Whether no action is better than 'selected' at the given depth. If 'ok' is false,
// the selection is only correct if there are no actions (or the player is not active)
func (b *Brute[G, P, A, F]) CheckIfBest(state G, selected A, ok bool, depth uint32) bool {
	active, actions := state.Actions(b.player)
	if !active || len(actions) == 0 {
		return !ok
	}
	if !ok {
		return false
	}

	best := b.Minimax(state, selected, depth)
	for _, action := range actions {
		if b.Minimax(state, action, depth) > best {
			return false
		}
	}
	return true
}

// Actions a search interrupted at 'completedDepth' may return: every action which is
// at least as good at the next depth as the worst of the best actions of 'completedDepth'.
// Returns false if no action can be selected at all.
func (b *Brute[G, P, A, F]) AllowedActions(state G, completedDepth uint32) ([]A, bool) {
	active, actions := state.Actions(b.player)
	if !active || len(actions) == 0 {
		return nil, false
	}

	values := lo.Map(actions, func(action A, _ int) F {
		return b.Minimax(state, action, completedDepth)
	})
	bestValue := lo.Max(values)
	bestActions := lo.Filter(actions, func(_ A, i int) bool {
		return values[i] == bestValue
	})

	next := lo.Map(actions, func(action A, _ int) F {
		return b.Minimax(state, action, completedDepth+1)
	})
	worstAllowed := lo.Min(lo.Map(bestActions, func(action A, _ int) F {
		return b.Minimax(state, action, completedDepth+1)
	}))

	return lo.Filter(actions, func(_ A, i int) bool {
		return next[i] >= worstAllowed
	}), true
}

// Fitness of playing 'action', followed by 'depth' plies of plain minimax
func (b *Brute[G, P, A, F]) Minimax(state G, action A, depth uint32) F {
	if depth == 0 {
		return alphabeta.LookAhead[G, P, A, F](state, action, b.player)
	}

	next := state.Clone()
	fitness := next.Execute(action, b.player)
	active, actions := next.Actions(b.player)
	if len(actions) == 0 {
		return fitness
	}

	var value F
	for i, a := range actions {
		v := b.Minimax(next, a, depth-1)
		if i == 0 || (active && v > value) || (!active && v < value) {
			value = v
		}
		// nothing can be better than a proven win, or worse than a proven loss
		if (active && alphabeta.IsUpperBound(next, v, b.player)) ||
			(!active && alphabeta.IsLowerBound(next, v, b.player)) {
			break
		}
	}
	return value
}

// Write the best action and its fitness, useful when a test fails
func (b *Brute[G, P, A, F]) PrintBest(w io.Writer, state G, depth uint32) {
	best, ok := b.Select(state, depth)
	if !ok {
		fmt.Fprintln(w, "best: none")
		return
	}
	fmt.Fprintf(w, "best: %v, fitness: %v\n", best, b.Minimax(state, best, depth))
}
