package alphabeta

import "cmp"

// Other types shared by the bot, the context and the per-node state

type MoveLike comparable

// Fitness of a game state from the searching player's perspective, must be totally ordered
type FitnessLike interface {
	cmp.Ordered
}

// The principal variation returned by DetailedSelect, Pv is in play order
// (Pv[0] == Action)
type SearchLine[A MoveLike, F FitnessLike] struct {
	Action  A
	Pv      []A
	Fitness F
}

// Root action record, path is a reversed stack: the action played at the root
// is the last element
type candidate[A MoveLike, F FitnessLike] struct {
	fitness F
	path    []A
}

// First action to play
func (c *candidate[A, F]) action() A {
	return c.path[len(c.path)-1]
}

// Convert to a search line, reversing the path into play order
func (c *candidate[A, F]) line() SearchLine[A, F] {
	pv := make([]A, len(c.path))
	for i, a := range c.path {
		pv[len(pv)-1-i] = a
	}
	return SearchLine[A, F]{Action: c.action(), Pv: pv, Fitness: c.fitness}
}

type branchKind uint8

const (
	// Exact fitness, no cutoff
	branchEqual branchKind = iota
	// Actual fitness is greater or equal, the active player cut off the siblings
	branchBetter
	// Actual fitness is less or equal, the opponent cut off the siblings
	branchWorse
)

type branch[F FitnessLike] struct {
	kind    branchKind
	fitness F
}

func equal[F FitnessLike](f F) branch[F] { return branch[F]{branchEqual, f} }
func better[F FitnessLike](f F) branch[F] { return branch[F]{branchBetter, f} }
func worse[F FitnessLike](f F) branch[F] { return branch[F]{branchWorse, f} }

type outcome uint8

const (
	// No actions available
	outcomeDeadEnd outcome = iota
	// Subtree was not fully explored
	outcomeOpen
	// Subtree explored up to the natural leaves or a provable bound
	outcomeTerminated
)

// Result of visiting a single node
type miniMax[A MoveLike, F FitnessLike] struct {
	outcome outcome
	path    []A
	branch  branch[F]
}

func deadEnd[A MoveLike, F FitnessLike]() miniMax[A, F] {
	return miniMax[A, F]{outcome: outcomeDeadEnd}
}

// Optional alpha or beta value, unset means unbounded
type bound[F FitnessLike] struct {
	value F
	set   bool
}

func some[F FitnessLike](f F) bound[F] {
	return bound[F]{value: f, set: true}
}
