package alphabeta_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-alphabeta/pkg/alphabeta"
	"github.com/IlikeChooros/go-alphabeta/pkg/tree"
)

// Searches which get interrupted before the best action is proven

func TestNoBudgetStillSelects(t *testing.T) {
	root := tree.Root().WithChildren(
		tree.New(true, 0),
		tree.New(true, 0),
	)
	bot := newTreeBot()

	_, ok := bot.Select(root, alphabeta.Steps(0))
	assert.True(t, ok)

	_, ok = bot.Select(root, alphabeta.DepthLimit(0))
	assert.True(t, ok)

	_, ok = bot.Select(root, alphabeta.Within(0))
	assert.True(t, ok)

	_, ok = bot.Select(root, alphabeta.Deadline(time.Now().Add(-time.Second)))
	assert.True(t, ok)
}

func TestInterruptedKeepsBetterLine(t *testing.T) {
	// [0] is worse than [1] and [2] at lower depths
	root := tree.Root().WithChildren(
		tree.New(true, -1),
		tree.New(true, 65).WithChildren(
			tree.New(false, 0),
		),
		tree.New(true, 11),
	)

	action, ok := newTreeBot().Select(root, alphabeta.Steps(2))
	require.True(t, ok)
	assert.Contains(t, []int{1, 2}, action)
}

func TestInterruptedPrefersProvenDepth(t *testing.T) {
	root := tree.Root().WithChildren(
		tree.New(true, 0).WithChildren(
			tree.New(true, 127),
		),
		tree.New(true, -5).WithChildren(
			tree.New(false, 6),
		),
		tree.New(true, 0),
	)

	action, ok := newTreeBot().Select(root, alphabeta.Steps(7))
	require.True(t, ok)
	assert.Equal(t, 0, action)
}

// three actions, none of them decided after the first depth
func wideTree() *tree.Node {
	n := tree.New
	return tree.Root().WithChildren(
		n(false, 1).WithChildren(
			n(true, 2).WithChildren(n(false, 0), n(false, 3)),
			n(true, -1).WithChildren(n(false, 5)),
		),
		n(false, 2).WithChildren(
			n(true, 0).WithChildren(n(false, 1)),
			n(true, 4).WithChildren(n(false, -2), n(false, 6)),
		),
		n(false, 0).WithChildren(
			n(true, 1).WithChildren(n(false, 2)),
		),
	)
}

func TestStepLimitIsReset(t *testing.T) {
	root := tree.Random(randSource(3), 20)
	bot := newTreeBot()
	steps := alphabeta.Steps(5)

	first, ok := bot.Select(root, steps)
	require.True(t, ok)
	second, ok := bot.Select(root, steps)
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestContextCancellation(t *testing.T) {
	root := wideTree()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logger := alphabeta.NewLogger(alphabeta.WithContext(ctx, alphabeta.ToCompletion{}))
	_, ok := newTreeBot().Select(root, logger)
	require.True(t, ok)
	assert.False(t, logger.Completed())
	assert.Equal(t, uint32(0), logger.ReachedDepth())
}

func TestLimiterCondition(t *testing.T) {
	root := wideTree()
	bot := newTreeBot()

	limiter := alphabeta.NewLimiter(alphabeta.DefaultLimits().SetNodes(3))
	_, ok := bot.Select(root, limiter)
	require.True(t, ok)
	assert.Equal(t, alphabeta.StopNodes, limiter.StopReason()&alphabeta.StopNodes)
	assert.Equal(t, uint32(3), limiter.Nodes())

	limiter.SetLimits(alphabeta.DefaultLimits().SetDepth(1))
	_, ok = bot.Select(root, limiter)
	require.True(t, ok)
	assert.Equal(t, alphabeta.StopDepth, limiter.StopReason())

	// a stop set before the search is cleared by the reset
	limiter.SetLimits(alphabeta.DefaultLimits())
	limiter.SetStop(true)
	_, ok = bot.Select(root, limiter)
	require.True(t, ok)
	assert.Equal(t, alphabeta.StopNone, limiter.StopReason())
}
