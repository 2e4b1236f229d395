package alphabeta

// Game is the state of a deterministic game, as seen by the search.
//
// G is the implementing type itself (usually a pointer), so the search can
// clone it without boxing:
//
//	type Position struct{ ... }
//	func (p *Position) Clone() *Position { ... }
type Game[G any, P any, A MoveLike, F FitnessLike] interface {
	// List the legal actions, and whether 'player' is the one to move. If not active,
	// the node is treated as the opponent's (minimizing) node
	Actions(player P) (active bool, actions []A)
	// Play the action, returning the fitness of the resulting state from
	// the 'player' perspective, regardless of whose turn it was
	Execute(action A, player P) F
	// Deep copy, without any shared mutable memory
	Clone() G
}

// Cheap estimate used to order the actions, must return the same value as
// Clone().Execute(action, player)
type LookAheader[A MoveLike, P any, F FitnessLike] interface {
	LookAhead(action A, player P) F
}

// Declares fitness values as provably maximal (won) or minimal (lost), letting
// the search stop descending once such value is reached
type Bounded[P any, F FitnessLike] interface {
	IsUpperBound(fitness F, player P) bool
	IsLowerBound(fitness F, player P) bool
}

// Look-ahead of the action, falls back to executing it on a clone if the game
// doesn't implement LookAheader
func LookAhead[G Game[G, P, A, F], P any, A MoveLike, F FitnessLike](state G, action A, player P) F {
	if la, ok := any(state).(LookAheader[A, P, F]); ok {
		return la.LookAhead(action, player)
	}
	return state.Clone().Execute(action, player)
}

// Whether the fitness is a proven win for the player, false if the game isn't Bounded
func IsUpperBound[G any, P any, F FitnessLike](state G, fitness F, player P) bool {
	if b, ok := any(state).(Bounded[P, F]); ok {
		return b.IsUpperBound(fitness, player)
	}
	return false
}

// Whether the fitness is a proven loss for the player, false if the game isn't Bounded
func IsLowerBound[G any, P any, F FitnessLike](state G, fitness F, player P) bool {
	if b, ok := any(state).(Bounded[P, F]); ok {
		return b.IsLowerBound(fitness, player)
	}
	return false
}
