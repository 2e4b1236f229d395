package alphabeta

// Alpha-beta accumulator of a single node, folds the results of the children
// one at a time with bind, then turns into the node's own result with consume
type nodeState[G Game[G, P, A, F], P any, A MoveLike, F FitnessLike] struct {
	state      G
	player     P
	alpha      bound[F]
	beta       bound[F]
	active     bool
	terminated bool
	best       branch[F]
	hasBest    bool
	path       []A
}

func newNodeState[G Game[G, P, A, F], P any, A MoveLike, F FitnessLike](
	state G, player P, alpha, beta bound[F], active bool,
) *nodeState[G, P, A, F] {
	return &nodeState[G, P, A, F]{
		state:      state,
		player:     player,
		alpha:      alpha,
		beta:       beta,
		active:     active,
		terminated: true,
	}
}

// Add the result of a child, returns the node's result if the remaining
// children don't have to be visited
func (s *nodeState[G, P, A, F]) bind(c *ctxt[G, P, A, F], value miniMax[A, F]) (miniMax[A, F], bool) {
	if value.outcome == outcomeDeadEnd {
		panic("alphabeta: dead end bound to a node state")
	}

	terminated := value.outcome == outcomeTerminated
	switch value.branch.kind {
	case branchEqual:
		s.bindEqual(c, value.path, value.branch.fitness, terminated)
	case branchBetter:
		s.bindBetter(c, value.path, value.branch.fitness, terminated)
	case branchWorse:
		s.bindWorse(c, value.path, value.branch.fitness, terminated)
	}

	var result branch[F]
	switch {
	case s.hasBest && s.active && s.best.kind != branchWorse &&
		IsUpperBound(s.state, s.best.fitness, s.player):
		result = equal(s.best.fitness)
	case s.hasBest && !s.active && s.best.kind != branchBetter &&
		IsLowerBound(s.state, s.best.fitness, s.player):
		result = equal(s.best.fitness)
	case s.alpha.set && s.beta.set && s.alpha.value >= s.beta.value:
		if s.active {
			result = better(s.alpha.value)
		} else {
			result = worse(s.beta.value)
		}
	default:
		return miniMax[A, F]{}, false
	}

	return s.result(result), true
}

func (s *nodeState[G, P, A, F]) result(b branch[F]) miniMax[A, F] {
	path := s.path
	s.path = nil
	if s.terminated {
		return miniMax[A, F]{outcome: outcomeTerminated, path: path, branch: b}
	}
	return miniMax[A, F]{outcome: outcomeOpen, path: path, branch: b}
}

// Replace the best line of this node
func (s *nodeState[G, P, A, F]) update(c *ctxt[G, P, A, F], path []A, b branch[F]) {
	if len(path) == 0 {
		panic("alphabeta: empty path bound to a node state")
	}
	c.discardPath(s.path)
	s.path = path
	s.best = b
	s.hasBest = true
}

func (s *nodeState[G, P, A, F]) bindEqual(c *ctxt[G, P, A, F], path []A, fitness F, terminated bool) {
	s.terminated = s.terminated && terminated

	if s.active {
		if terminated && IsUpperBound(s.state, fitness, s.player) {
			s.update(c, path, equal(fitness))
			s.terminated = true
			return
		}
		s.alpha = some(maxBound(s.alpha, fitness))
		if !s.hasBest || s.best.fitness <= fitness {
			s.update(c, path, equal(fitness))
		} else {
			c.discardPath(path)
		}
		return
	}

	if terminated && IsLowerBound(s.state, fitness, s.player) {
		s.update(c, path, equal(fitness))
		s.terminated = true
		return
	}
	s.beta = some(minBound(s.beta, fitness))
	if !s.hasBest || s.best.fitness >= fitness {
		s.update(c, path, equal(fitness))
	} else {
		c.discardPath(path)
	}
}

// The child is at least 'fitness'
func (s *nodeState[G, P, A, F]) bindBetter(c *ctxt[G, P, A, F], path []A, fitness F, terminated bool) {
	s.terminated = s.terminated && terminated

	if s.active {
		s.alpha = some(fitness)
		s.update(c, path, better(fitness))
	} else if !s.hasBest || s.best.fitness > fitness {
		s.update(c, path, better(fitness))
	} else {
		c.discardPath(path)
	}
}

// The child is at most 'fitness'
func (s *nodeState[G, P, A, F]) bindWorse(c *ctxt[G, P, A, F], path []A, fitness F, terminated bool) {
	s.terminated = s.terminated && terminated

	if !s.active {
		s.beta = some(fitness)
		s.update(c, path, worse(fitness))
	} else if !s.hasBest || s.best.fitness < fitness {
		s.update(c, path, worse(fitness))
	} else {
		c.discardPath(path)
	}
}

// Result of the node once every child was bound without a cutoff
func (s *nodeState[G, P, A, F]) consume() miniMax[A, F] {
	if !s.hasBest {
		panic("alphabeta: node state consumed without any child")
	}
	return s.result(s.best)
}

func maxBound[F FitnessLike](b bound[F], f F) F {
	if b.set {
		return max(b.value, f)
	}
	return f
}

func minBound[F FitnessLike](b bound[F], f F) F {
	if b.set {
		return min(b.value, f)
	}
	return f
}
