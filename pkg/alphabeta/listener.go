package alphabeta

import "time"

type ListenerStats[A MoveLike, F FitnessLike] struct {
	// Depth just completed (OnDepth) or the depth the search stopped at (OnStop)
	Depth   uint32
	Steps   uint64
	Elapsed time.Duration
	// Best known line, valid if HasLine is set
	Line    SearchLine[A, F]
	HasLine bool
	// Whether the search proved its result (only set in OnStop)
	Completed bool
	// Only available if the run condition is a Limiter
	StopReason StopReason
}

// Listener function callback, receives the current search statistics
type ListenerFunc[A MoveLike, F FitnessLike] func(ListenerStats[A, F])

type Listener[A MoveLike, F FitnessLike] struct {
	// called after each fully searched depth
	onDepth ListenerFunc[A, F]

	// called once, when the search returns
	onStop ListenerFunc[A, F]
}

func NewListener[A MoveLike, F FitnessLike]() *Listener[A, F] {
	return &Listener[A, F]{}
}

// Attach on depth completion callback, called synchronously by the searching goroutine
func (listener *Listener[A, F]) OnDepth(onDepth ListenerFunc[A, F]) *Listener[A, F] {
	listener.onDepth = onDepth
	return listener
}

// Attach 'on search end' callback
func (listener *Listener[A, F]) OnStop(onStop ListenerFunc[A, F]) *Listener[A, F] {
	listener.onStop = onStop
	return listener
}

func (listener *Listener[A, F]) invokeDepth(stats func() ListenerStats[A, F]) {
	if listener != nil && listener.onDepth != nil {
		listener.onDepth(stats())
	}
}

func (listener *Listener[A, F]) invokeStop(stats func() ListenerStats[A, F]) {
	if listener != nil && listener.onStop != nil {
		listener.onStop(stats())
	}
}
