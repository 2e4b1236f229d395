package alphabeta_test

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/IlikeChooros/go-alphabeta/pkg/alphabeta"
	"github.com/IlikeChooros/go-alphabeta/pkg/brute"
	"github.com/IlikeChooros/go-alphabeta/pkg/tree"
)

// Every search is checked against plain minimax

const (
	maxFuzzNodes = 48
	// fitness beyond +-fuzzBound is a proven win or loss in the bounded targets
	fuzzBound = 100
)

type treeBrute = brute.Brute[*tree.Node, bool, int, int8]

func newTreeBrute() *treeBrute {
	return brute.New[*tree.Node, bool, int, int8](true)
}

func failureInfo(b *treeBrute, root *tree.Node, depth uint32) string {
	var sb strings.Builder
	sb.WriteString(root.String())
	b.PrintBest(&sb, root, depth)
	return sb.String()
}

func checkComplete(t *testing.T, root *tree.Node) {
	t.Helper()
	b := newTreeBrute()
	selected, ok := newTreeBot().Select(root, alphabeta.ToCompletion{})
	require.True(t, b.CheckIfBest(root, selected, ok, math.MaxUint32),
		"selected %d (ok=%v)\n%s", selected, ok, failureInfo(b, root, math.MaxUint32))
}

func checkPartial(t *testing.T, root *tree.Node) {
	t.Helper()
	b := newTreeBrute()
	bot := newTreeBot()

	full := alphabeta.NewLogger(alphabeta.ToCompletion{})
	bot.Select(root, full)
	maxSteps, maxDepth := full.Steps(), full.ReachedDepth()

	for i := uint32(0); i < maxSteps; i++ {
		logger := alphabeta.NewLogger(alphabeta.Steps(i))
		selected, ok := bot.Select(root, logger)

		allowed, selectable := b.AllowedActions(root, logger.ReachedDepth())
		require.Equal(t, selectable, ok, "steps %d", i)
		if ok {
			require.True(t, slices.Contains(allowed, selected),
				"steps %d: selected %d, allowed %v\n%s", i, selected, allowed, root)
		}
	}

	for i := uint32(0); i < maxDepth; i++ {
		selected, ok := bot.Select(root, alphabeta.DepthLimit(i))
		require.True(t, b.CheckIfBest(root, selected, ok, i),
			"depth %d: selected %d\n%s", i, selected, failureInfo(b, root, i))
	}
}

func randSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func fuzzSeeds(f *testing.F) {
	f.Add([]byte{0, 0, 0, 0, 1, 2, 3})
	f.Add([]byte{0xde, 0xad, 0xbe, 0xef, 0x80, 0x7f, 0, 0x10, 0xf0, 3, 3, 3})
	f.Add([]byte{0, 0, 1, 0, 100, 90, 80, 70, 60, 50, 40, 30, 20, 10, 0})
	f.Add([]byte{1, 2, 3, 4, 0xff, 0xfe, 0xfd, 1, 1, 1, 0x81, 0x42, 7, 9, 0x33, 0x99, 0x5a})
}

func clampFuzzInput(data []byte) []byte {
	if len(data) > maxFuzzNodes+4 {
		return data[:maxFuzzNodes+4]
	}
	return data
}

func FuzzComplete(f *testing.F) {
	fuzzSeeds(f)
	f.Fuzz(func(t *testing.T, data []byte) {
		checkComplete(t, tree.FromBytes(clampFuzzInput(data)))
	})
}

func FuzzPartial(f *testing.F) {
	fuzzSeeds(f)
	f.Fuzz(func(t *testing.T, data []byte) {
		checkPartial(t, tree.FromBytes(clampFuzzInput(data)))
	})
}

func TestRandomTrees(t *testing.T) {
	r := randSource(7)
	n := 300
	if testing.Short() {
		n = 30
	}

	for i := 0; i < n; i++ {
		root := tree.Random(r, 1+r.Intn(24))
		checkComplete(t, root)
		checkPartial(t, root)
	}
}

func FuzzCompleteBounded(f *testing.F) {
	fuzzSeeds(f)
	f.Fuzz(func(t *testing.T, data []byte) {
		checkComplete(t, tree.FromBytes(clampFuzzInput(data)).Bounded(fuzzBound))
	})
}

func FuzzPartialBounded(f *testing.F) {
	fuzzSeeds(f)
	f.Fuzz(func(t *testing.T, data []byte) {
		checkPartial(t, tree.FromBytes(clampFuzzInput(data)).Bounded(fuzzBound))
	})
}

func TestRandomBoundedTrees(t *testing.T) {
	r := randSource(11)
	n := 300
	if testing.Short() {
		n = 30
	}

	for i := 0; i < n; i++ {
		limit := []int8{fuzzBound, 64, 16}[i%3]
		root := tree.Random(r, 1+r.Intn(24)).Bounded(limit)
		checkComplete(t, root)
		checkPartial(t, root)
	}
}

func TestBoundedTreeStopsAtWin(t *testing.T) {
	root := tree.Root().WithChildren(
		tree.New(false, 0).WithChildren(tree.New(true, 120), tree.New(true, -120)),
		tree.New(true, 110),
		tree.New(false, 3).WithChildren(tree.New(true, 4), tree.New(true, 2)),
	).Bounded(fuzzBound)

	logger := alphabeta.NewLogger(alphabeta.ToCompletion{})
	line, ok := newTreeBot().DetailedSelect(root, logger)
	require.True(t, ok)
	require.Equal(t, 1, line.Action)
	require.Equal(t, int8(math.MaxInt8), line.Fitness)
	require.True(t, logger.Completed())
	require.True(t, newTreeBrute().CheckIfBest(root, line.Action, ok, math.MaxUint32))
}

func TestBoundedTreeAvoidsLoss(t *testing.T) {
	// the opponent can force -120 after action 0
	root := tree.Root().WithChildren(
		tree.New(false, 50).WithChildren(tree.New(true, 90), tree.New(true, -120)),
		tree.New(false, -5).WithChildren(tree.New(true, -7), tree.New(true, 1)),
	).Bounded(fuzzBound)

	line, ok := newTreeBot().DetailedSelect(root, alphabeta.ToCompletion{})
	require.True(t, ok)
	require.Equal(t, 1, line.Action)
	require.Equal(t, int8(-7), line.Fitness)
	checkPartial(t, root)
}
