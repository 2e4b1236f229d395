package alphabeta

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/pkg/errors"
)

// Returned through the whole recursion once the run condition says stop
var errCancelled = errors.New("alphabeta: search cancelled")

type child[G any, A MoveLike, F FitnessLike] struct {
	state   G
	action  A
	fitness F
}

// Execute every action on a clone of the state, sorted so that the most promising
// child for the player to move comes first
func (c *ctxt[G, P, A, F]) children(state G) (bool, []child[G, A, F]) {
	active, actions := state.Actions(c.player)
	children := make([]child[G, A, F], 0, len(actions))
	for _, action := range actions {
		next := state.Clone()
		fitness := next.Execute(action, c.player)
		children = append(children, child[G, A, F]{state: next, action: action, fitness: fitness})
	}

	if active {
		slices.SortStableFunc(children, func(a, b child[G, A, F]) int {
			return cmp.Compare(b.fitness, a.fitness)
		})
	} else {
		slices.SortStableFunc(children, func(a, b child[G, A, F]) int {
			return cmp.Compare(a.fitness, b.fitness)
		})
	}
	return active, children
}

// Prepend the action leading to this node, a dead end becomes an exact, solved leaf
func (c *ctxt[G, P, A, F]) with(m miniMax[A, F], action A, fitness F) miniMax[A, F] {
	if m.outcome == outcomeDeadEnd {
		path := append(c.newPath(), action)
		return miniMax[A, F]{outcome: outcomeTerminated, path: path, branch: equal(fitness)}
	}
	m.path = append(m.path, action)
	return m
}

func (c *ctxt[G, P, A, F]) minimax(state G, depth uint32, alpha, beta bound[F]) (miniMax[A, F], error) {
	if !c.step() {
		return miniMax[A, F]{}, errCancelled
	}

	if depth == 0 {
		return c.leaf(state), nil
	}

	active, children := c.children(state)
	if len(children) == 0 {
		return deadEnd[A, F](), nil
	}

	node := newNodeState[G, P, A, F](state, c.player, alpha, beta, active)
	for _, ch := range children {
		res, err := c.minimax(ch.state, depth-1, node.alpha, node.beta)
		if err != nil {
			return miniMax[A, F]{}, err
		}
		if cut, ok := node.bind(c, c.with(res, ch.action, ch.fitness)); ok {
			return cut, nil
		}
	}
	return node.consume(), nil
}

// Depth 0 evaluation, only the look-ahead of the actions
func (c *ctxt[G, P, A, F]) leaf(state G) miniMax[A, F] {
	active, actions := state.Actions(c.player)
	if len(actions) == 0 {
		return deadEnd[A, F]()
	}

	best := actions[0]
	bestFitness := LookAhead[G, P, A, F](state, best, c.player)
	for _, action := range actions[1:] {
		fitness := LookAhead[G, P, A, F](state, action, c.player)
		if (active && fitness >= bestFitness) || (!active && fitness < bestFitness) {
			best, bestFitness = action, fitness
		}
	}

	path := append(c.newPath(), best)
	return miniMax[A, F]{outcome: outcomeOpen, path: path, branch: equal(bestFitness)}
}

// Same as minimax, but the first visited child is the one given by the path
// (reversed stack, next action is the last element), the path is only read
func (c *ctxt[G, P, A, F]) minimaxWithPath(path []A, state G, depth uint32, alpha, beta bound[F]) (miniMax[A, F], error) {
	if len(path) == 0 {
		return c.minimax(state, depth, alpha, beta)
	}

	if !c.step() {
		return miniMax[A, F]{}, errCancelled
	}

	if depth == 0 {
		panic("alphabeta: principal variation goes past the search depth")
	}

	action := path[len(path)-1]
	path = path[:len(path)-1]

	active, children := c.children(state)
	idx := slices.IndexFunc(children, func(ch child[G, A, F]) bool {
		return ch.action == action
	})
	if idx == -1 {
		panic(fmt.Sprintf("alphabeta: path segment %v not found among the generated actions", action))
	}
	pv := children[idx]
	children = slices.Delete(children, idx, idx+1)

	node := newNodeState[G, P, A, F](state, c.player, alpha, beta, active)
	res, err := c.minimaxWithPath(path, pv.state, depth-1, node.alpha, node.beta)
	if err != nil {
		return miniMax[A, F]{}, err
	}
	if cut, ok := node.bind(c, c.with(res, pv.action, pv.fitness)); ok {
		return cut, nil
	}

	for _, ch := range children {
		res, err := c.minimax(ch.state, depth-1, node.alpha, node.beta)
		if err != nil {
			return miniMax[A, F]{}, err
		}
		if cut, ok := node.bind(c, c.with(res, ch.action, ch.fitness)); ok {
			return cut, nil
		}
	}
	return node.consume(), nil
}
