package alphabeta

import (
	"context"
	"strings"
	"sync/atomic"
)

type StopReason int

const (
	StopNone      StopReason = 0
	StopInterrupt StopReason = 1 // Stopped by user, by calling .SetStop(true) or context cancellation
	StopMovetime  StopReason = 2 // Time limit reached
	StopDepth     StopReason = 4 // Depth limit reached
	StopNodes     StopReason = 8 // Node limit reached
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopDepth, "Depth"},
		{StopNodes, "Nodes"},
	}

	names := make([]string, 0, len(reasons))
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			names = append(names, r.name)
		}
	}
	return strings.Join(names, "|")
}

func toMask(val bool, reason StopReason) StopReason {
	if val {
		return reason
	}
	return StopNone
}

// Limiter is a RunCondition driven by Limits, it can also be stopped from
// another goroutine with SetStop or through its context
type Limiter struct {
	limits *Limits
	timer  *timer
	nodes  uint32
	depth  uint32
	stop   atomic.Bool
	reason StopReason
	ctx    context.Context
}

func NewLimiter(limits *Limits) *Limiter {
	if limits == nil {
		limits = DefaultLimits()
	}
	return &Limiter{
		limits: limits,
		timer:  newTimer(),
		ctx:    context.Background(),
	}
}

// Adds custom context to the limiter, enabling cancellation through it
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
//	defer cancel()
//
//	limiter := alphabeta.NewLimiter(alphabeta.DefaultLimits())
//	limiter.SetContext(ctx)
//	action, ok := bot.Select(state, limiter)
func (l *Limiter) SetContext(ctx context.Context) {
	l.ctx = ctx
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

// Set the stop signal, the search will return at the next poll
func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

// Get the stop signal, checks the context as well
func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

// Reset the counters and the stop signal, called by the bot on search setup
func (l *Limiter) Reset() {
	movetime := l.limits.Movetime
	if l.limits.Infinite {
		movetime = -1
	}
	l.timer.reset(msToDuration(movetime))
	l.stop.Store(false)
	l.nodes = 0
	l.depth = 0
	l.reason = StopNone
}

// Elapsed time in milliseconds since the last Reset
func (l *Limiter) Elapsed() uint32 {
	return uint32(l.timer.deltatime())
}

// Number of nodes visited since the last Reset
func (l *Limiter) Nodes() uint32 {
	return l.nodes
}

// Last depth polled since the last Reset
func (l *Limiter) ReachedDepth() uint32 {
	return l.depth
}

// Reason why the search was stopped, StopNone if it completed
func (l *Limiter) StopReason() StopReason {
	return l.reason
}

func (l *Limiter) limitMask(checkDepth bool) StopReason {
	mask := toMask(l.Stop(), StopInterrupt)
	if l.limits.Infinite {
		return mask
	}

	mask |= toMask(l.timer.expired(), StopMovetime)
	mask |= toMask(l.limits.Nodes <= l.nodes, StopNodes)
	if checkDepth {
		mask |= toMask(l.limits.Depth <= int(l.depth), StopDepth)
	}
	return mask
}

func (l *Limiter) Step() bool {
	l.nodes++
	mask := l.limitMask(false)
	l.reason |= mask
	return mask == StopNone
}

func (l *Limiter) Depth(depth uint32) bool {
	l.depth = depth
	mask := l.limitMask(true)
	l.reason |= mask
	return mask == StopNone
}
