package alphabeta

import (
	"context"
	"time"
)

// Decides whether the search should keep on running, polled by the bot
// on every visited node (Step) and before every iterative deepening depth (Depth).
// Returning false from either of them stops the search, and the bot
// returns the best action found so far.
type RunCondition interface {
	Step() bool
	Depth(depth uint32) bool
}

// Optional RunCondition hook, called once before the search starts
type Resetter interface {
	Reset()
}

// Optional RunCondition hook, called once when the search returns
type Finisher interface {
	Finish()
}

func resetCondition(cond RunCondition) {
	if r, ok := cond.(Resetter); ok {
		r.Reset()
	}
}

func finishCondition(cond RunCondition) {
	if f, ok := cond.(Finisher); ok {
		f.Finish()
	}
}

// Runs until the best action is proven, only use it for finite games
// with a reasonably small tree
type ToCompletion struct{}

func (ToCompletion) Step() bool { return true }
func (ToCompletion) Depth(_ uint32) bool { return true }

// Stops once the depth gets bigger than its value, DepthLimit(0) only uses
// the one-ply look-ahead of the root actions
type DepthLimit uint32

func (d DepthLimit) Step() bool { return true }

func (d DepthLimit) Depth(depth uint32) bool {
	return uint32(d) > depth
}

// Fixed budget of visited nodes
type StepLimit struct {
	limit uint32
	steps uint32
}

func Steps(limit uint32) *StepLimit {
	return &StepLimit{limit: limit}
}

func (s *StepLimit) Reset() {
	s.steps = 0
}

func (s *StepLimit) Step() bool {
	s.steps++
	return s.steps < s.limit
}

func (s *StepLimit) Depth(_ uint32) bool {
	return true
}

// Wall-clock budget, counted from the start of each search
type Timeout struct {
	budget time.Duration
	timer  *timer
}

func Within(budget time.Duration) *Timeout {
	t := &Timeout{budget: budget, timer: newTimer()}
	t.timer.reset(budget)
	return t
}

func (t *Timeout) Reset() {
	t.timer.reset(t.budget)
}

func (t *Timeout) Step() bool {
	return !t.timer.expired()
}

func (t *Timeout) Depth(_ uint32) bool {
	return !t.timer.expired()
}

// Fixed point in time, after which the search stops
type Deadline time.Time

func (d Deadline) Step() bool {
	return time.Now().Before(time.Time(d))
}

func (d Deadline) Depth(_ uint32) bool {
	return time.Now().Before(time.Time(d))
}

type contextCondition struct {
	ctx   context.Context
	inner RunCondition
}

// Stops the search once the context is done, or the inner condition says so
func WithContext(ctx context.Context, inner RunCondition) RunCondition {
	return &contextCondition{ctx: ctx, inner: inner}
}

func (c *contextCondition) done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

func (c *contextCondition) Reset() { resetCondition(c.inner) }
func (c *contextCondition) Finish() { finishCondition(c.inner) }

func (c *contextCondition) Step() bool {
	return !c.done() && c.inner.Step()
}

func (c *contextCondition) Depth(depth uint32) bool {
	return !c.done() && c.inner.Depth(depth)
}

// Logger forwards to the wrapped condition, recording statistics of the last search
//
// Example:
//
//	logger := alphabeta.NewLogger(alphabeta.ToCompletion{})
//	bot.Select(state, logger)
//	fmt.Println(logger.Steps(), logger.ReachedDepth(), logger.Duration())
type Logger struct {
	inner     RunCondition
	steps     uint32
	depth     uint32
	completed bool
	timer     *timer
	duration  time.Duration
}

func NewLogger(inner RunCondition) *Logger {
	return &Logger{inner: inner, completed: true, timer: newTimer()}
}

func (l *Logger) Reset() {
	l.steps = 0
	l.depth = 0
	l.completed = true
	l.duration = 0
	l.timer.reset(-1)
	resetCondition(l.inner)
}

func (l *Logger) Finish() {
	l.duration = l.timer.elapsed()
	finishCondition(l.inner)
}

func (l *Logger) Step() bool {
	l.steps++
	if l.inner.Step() {
		return true
	}
	l.completed = false
	return false
}

func (l *Logger) Depth(depth uint32) bool {
	l.depth = depth
	if l.inner.Depth(depth) {
		return true
	}
	l.completed = false
	return false
}

// Number of visited nodes during the last search
func (l *Logger) Steps() uint32 {
	return l.steps
}

// Last depth the search reached, the deepest fully searched one is
// ReachedDepth() - 1 if the search was cut short
func (l *Logger) ReachedDepth() uint32 {
	return l.depth
}

// Whether the last search ran until the best action was proven
func (l *Logger) Completed() bool {
	return l.completed
}

// Total duration of the last search
func (l *Logger) Duration() time.Duration {
	return l.duration
}

// The wrapped condition
func (l *Logger) Inner() RunCondition {
	return l.inner
}
