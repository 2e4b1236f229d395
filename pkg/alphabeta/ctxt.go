package alphabeta

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// Search context of a single Select call. Every root action is always in exactly one of:
// best, unfinished, terminated, partiallyTerminated, losingAction
// (or discarded, once it can't be chosen anymore)
type ctxt[G Game[G, P, A, F], P any, A MoveLike, F FitnessLike] struct {
	state  G
	player P
	cond   RunCondition

	// Best unfinished action of the current depth
	best *candidate[A, F]
	// Other actions, which are not yet solved
	unfinished []*candidate[A, F]
	// Best fully solved action
	terminated *candidate[A, F]
	// Actions cut off at the root, fitness is an upper bound, always greater than terminated's
	partiallyTerminated []*candidate[A, F]
	// Longest surviving provably lost action
	losingAction *candidate[A, F]

	pathCache [][]A

	steps     uint64
	depth     uint32
	cancelled bool
}

func newCtxt[G Game[G, P, A, F], P any, A MoveLike, F FitnessLike](state G, player P, cond RunCondition) *ctxt[G, P, A, F] {
	return &ctxt[G, P, A, F]{
		state:  state,
		player: player,
		cond:   cond,
	}
}

func (c *ctxt[G, P, A, F]) step() bool {
	c.steps++
	return c.cond.Step()
}

func (c *ctxt[G, P, A, F]) newPath() []A {
	if n := len(c.pathCache); n > 0 {
		path := c.pathCache[n-1]
		c.pathCache = c.pathCache[:n-1]
		return path
	}
	return make([]A, 0, 8)
}

// The path must not be used afterwards
func (c *ctxt[G, P, A, F]) discardPath(path []A) {
	if cap(path) != 0 {
		c.pathCache = append(c.pathCache, path[:0])
	}
}

// Iterative deepening over the root actions, onDepth is called after every completed depth
func (c *ctxt[G, P, A, F]) run(actions []A, onDepth func()) *candidate[A, F] {
	c.unfinished = make([]*candidate[A, F], 0, len(actions))
	for _, action := range actions {
		c.unfinished = append(c.unfinished, &candidate[A, F]{
			fitness: LookAhead[G, P, A, F](c.state, action, c.player),
			path:    []A{action},
		})
	}

	if len(c.unfinished) == 1 {
		return c.unfinished[0]
	}

	for depth := uint32(0); ; depth++ {
		c.depth = depth
		if !c.cond.Depth(depth) {
			c.cancelled = true
			return c.cancel()
		}

		if act := c.exhausted(); act != nil {
			return act
		}

		unfinished := c.unfinished
		c.unfinished = make([]*candidate[A, F], 0, len(unfinished))
		slices.SortStableFunc(unfinished, func(a, b *candidate[A, F]) int {
			return cmp.Compare(b.fitness, a.fitness)
		})

		if best := c.best; best != nil {
			c.best = nil
			if act, done := c.tryAction(best, depth, func(act *candidate[A, F]) *candidate[A, F] {
				return act
			}); done {
				return act
			}
		}

		for _, act := range unfinished {
			if res, done := c.tryAction(act, depth, func(act *candidate[A, F]) *candidate[A, F] {
				if len(c.unfinished) == 0 {
					c.unfinished = append(c.unfinished, act)
				}
				return c.cancel()
			}); done {
				return res
			}
		}

		for _, act := range c.relevantPartials() {
			if res, done := c.tryAction(act, depth, func(*candidate[A, F]) *candidate[A, F] {
				return c.cancel()
			}); done {
				return res
			}
		}

		if onDepth != nil {
			onDepth()
		}
	}
}

// Search the action one depth deeper, along its stored path. Returns true
// if the search should return the action given in the result
func (c *ctxt[G, P, A, F]) tryAction(
	act *candidate[A, F], depth uint32,
	onCancel func(*candidate[A, F]) *candidate[A, F],
) (*candidate[A, F], bool) {
	state := c.state.Clone()
	first := act.action()
	fitness := state.Execute(first, c.player)

	var alpha bound[F]
	if c.best != nil {
		alpha = some(c.best.fitness)
	} else if c.terminated != nil {
		alpha = some(c.terminated.fitness)
	}

	res, err := c.minimaxWithPath(act.path[:len(act.path)-1], state, depth, alpha, bound[F]{})
	if err != nil {
		c.cancelled = true
		return onCancel(act), true
	}

	if res.outcome == outcomeDeadEnd {
		act.fitness = fitness
		return c.solved(act)
	}

	c.discardPath(act.path)
	act.path = append(res.path, first)
	act.fitness = res.branch.fitness

	switch {
	case res.outcome == outcomeTerminated && res.branch.kind == branchEqual:
		return c.solved(act)
	case res.outcome == outcomeTerminated && res.branch.kind == branchWorse:
		c.addPartiallyTerminated(act)
	case res.outcome == outcomeOpen && res.branch.kind == branchWorse:
		c.unfinished = append(c.unfinished, act)
	case res.outcome == outcomeOpen && res.branch.kind == branchEqual:
		c.addBest(act)
	default:
		panic("alphabeta: beta cutoff at the root " + res.String())
	}
	return nil, false
}

// Exact fitness of the action is known
func (c *ctxt[G, P, A, F]) solved(act *candidate[A, F]) (*candidate[A, F], bool) {
	switch {
	case IsUpperBound(c.state, act.fitness, c.player):
		return act, true
	case IsLowerBound(c.state, act.fitness, c.player):
		c.addLosing(act)
	default:
		c.addTerminated(act)
	}
	return nil, false
}

// Best known action, in order: best, terminated, unfinished with the highest fitness, losing action
func (c *ctxt[G, P, A, F]) cancel() *candidate[A, F] {
	if act := c.peek(); act != nil {
		return act
	}
	panic("alphabeta: no candidate action left")
}

func (c *ctxt[G, P, A, F]) peek() *candidate[A, F] {
	switch {
	case c.best != nil:
		return c.best
	case c.terminated != nil:
		return c.terminated
	case len(c.unfinished) != 0:
		// last maximum on ties
		return lo.MaxBy(c.unfinished, func(a, b *candidate[A, F]) bool {
			return a.fitness >= b.fitness
		})
	default:
		return c.losingAction
	}
}

// Returns the final action if there is nothing left to search
func (c *ctxt[G, P, A, F]) exhausted() *candidate[A, F] {
	if c.best == nil && len(c.unfinished) == 0 {
		if len(c.partiallyTerminated) != 0 {
			panic("alphabeta: partially terminated actions without any unfinished one")
		}
		if c.terminated != nil {
			return c.terminated
		}
		if c.losingAction == nil {
			panic("alphabeta: every action was discarded")
		}
		return c.losingAction
	}

	// Every other action is proven lost
	if c.terminated == nil && len(c.partiallyTerminated) == 0 {
		switch {
		case c.best != nil && len(c.unfinished) == 0:
			return c.best
		case c.best == nil && len(c.unfinished) == 1:
			return c.unfinished[0]
		}
	}
	return nil
}

// Partially terminated actions which could still be better than the best one
func (c *ctxt[G, P, A, F]) relevantPartials() []*candidate[A, F] {
	slices.SortStableFunc(c.partiallyTerminated, func(a, b *candidate[A, F]) int {
		return cmp.Compare(a.fitness, b.fitness)
	})

	if c.best == nil {
		relevant := c.partiallyTerminated
		c.partiallyTerminated = nil
		return relevant
	}

	pos, _ := slices.BinarySearchFunc(c.partiallyTerminated, c.best.fitness, func(act *candidate[A, F], f F) int {
		if act.fitness <= f {
			return -1
		}
		return 1
	})
	relevant := slices.Clone(c.partiallyTerminated[pos:])
	clear(c.partiallyTerminated[pos:])
	c.partiallyTerminated = c.partiallyTerminated[:pos]
	return relevant
}

func (c *ctxt[G, P, A, F]) addTerminated(act *candidate[A, F]) {
	if c.terminated != nil && c.terminated.fitness >= act.fitness {
		c.discardPath(act.path)
		return
	}

	c.partiallyTerminated = slices.DeleteFunc(c.partiallyTerminated, func(p *candidate[A, F]) bool {
		if p.fitness <= act.fitness {
			c.discardPath(p.path)
			return true
		}
		return false
	})

	if c.best != nil && c.best.fitness <= act.fitness {
		c.unfinished = append(c.unfinished, c.best)
		c.best = nil
	}

	if c.terminated != nil {
		c.discardPath(c.terminated.path)
	}
	c.terminated = act
}

func (c *ctxt[G, P, A, F]) addPartiallyTerminated(act *candidate[A, F]) {
	if c.terminated == nil || c.terminated.fitness < act.fitness {
		c.partiallyTerminated = append(c.partiallyTerminated, act)
	} else {
		c.discardPath(act.path)
	}
}

func (c *ctxt[G, P, A, F]) addBest(act *candidate[A, F]) {
	current := c.best
	if current == nil {
		current = c.terminated
	}

	if current == nil || current.fitness < act.fitness {
		if c.best != nil {
			c.unfinished = append(c.unfinished, c.best)
		}
		c.best = act
	} else {
		c.unfinished = append(c.unfinished, act)
	}
}

func (c *ctxt[G, P, A, F]) addLosing(act *candidate[A, F]) {
	if c.losingAction == nil || len(c.losingAction.path) < len(act.path) {
		if c.losingAction != nil {
			c.discardPath(c.losingAction.path)
		}
		c.losingAction = act
	} else {
		c.discardPath(act.path)
	}
}
