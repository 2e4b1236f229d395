package alphabeta

import (
	"time"

	"github.com/rs/zerolog"
)

/*
Iterative deepening alpha-beta search, usable with any deterministic game
implementing the Game interface.

The search is an anytime algorithm: it returns the proven best action if the
RunCondition lets it finish, and the best action found so far otherwise.
*/

type options struct {
	logger zerolog.Logger
}

type Option func(*options)

// Debug events are emitted after every completed depth and when the search stops
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

type Bot[G Game[G, P, A, F], P any, A MoveLike, F FitnessLike] struct {
	player   P
	logger   zerolog.Logger
	listener *Listener[A, F]
}

// Create a bot selecting the actions for 'player'
func NewBot[G Game[G, P, A, F], P any, A MoveLike, F FitnessLike](player P, opts ...Option) *Bot[G, P, A, F] {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Bot[G, P, A, F]{
		player: player,
		logger: o.logger,
	}
}

func (b *Bot[G, P, A, F]) Player() P {
	return b.player
}

func (b *Bot[G, P, A, F]) SetListener(listener *Listener[A, F]) {
	b.listener = listener
}

func (b *Bot[G, P, A, F]) Listener() *Listener[A, F] {
	return b.listener
}

// Select the best action for the bot's player, returns false if the player
// is not the one to move, or has no actions at all
func (b *Bot[G, P, A, F]) Select(state G, cond RunCondition) (A, bool) {
	act := b.search(state, cond)
	if act == nil {
		var none A
		return none, false
	}
	return act.action(), true
}

// Same as Select, but also returns the expected principal variation
// and its fitness at the searched depth
func (b *Bot[G, P, A, F]) DetailedSelect(state G, cond RunCondition) (SearchLine[A, F], bool) {
	act := b.search(state, cond)
	if act == nil {
		return SearchLine[A, F]{}, false
	}
	return act.line(), true
}

func (b *Bot[G, P, A, F]) search(state G, cond RunCondition) *candidate[A, F] {
	resetCondition(cond)
	start := time.Now()

	active, actions := state.Actions(b.player)
	if !active || len(actions) == 0 {
		finishCondition(cond)
		b.logger.Debug().Bool("active", active).Int("actions", len(actions)).Msg("nothing to select")
		return nil
	}

	c := newCtxt[G, P, A, F](state, b.player, cond)
	stats := func(act *candidate[A, F]) ListenerStats[A, F] {
		s := ListenerStats[A, F]{
			Depth:      c.depth,
			Steps:      c.steps,
			Elapsed:    time.Since(start),
			Completed:  !c.cancelled,
			StopReason: stopReason(cond),
		}
		if act != nil {
			s.Line = act.line()
			s.HasLine = true
		}
		return s
	}

	act := c.run(actions, func() {
		if e := b.logger.Debug(); e.Enabled() {
			e.Uint32("depth", c.depth).
				Uint64("steps", c.steps).
				Int("unfinished", len(c.unfinished)).
				Int("partial", len(c.partiallyTerminated)).
				Bool("terminated", c.terminated != nil).
				Msg("depth completed")
		}
		b.listener.invokeDepth(func() ListenerStats[A, F] {
			s := stats(c.peek())
			s.Completed = false
			return s
		})
	})
	finishCondition(cond)

	if e := b.logger.Debug(); e.Enabled() {
		e.Uint32("depth", c.depth).
			Uint64("steps", c.steps).
			Bool("completed", !c.cancelled).
			Interface("action", act.action()).
			Interface("fitness", act.fitness).
			Dur("elapsed", time.Since(start)).
			Msg("search stopped")
	}
	b.listener.invokeStop(func() ListenerStats[A, F] {
		return stats(act)
	})
	return act
}

func stopReason(cond RunCondition) StopReason {
	if l, ok := cond.(interface{ StopReason() StopReason }); ok {
		return l.StopReason()
	}
	return StopNone
}
