package alphabeta_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IlikeChooros/go-alphabeta/pkg/alphabeta"
	"github.com/IlikeChooros/go-alphabeta/pkg/tree"
)

// Subtraction game: remove 1 or 2 stones, whoever takes the last one wins.
// The player to move loses iff the pile is a multiple of 3.
type nim struct {
	pile int
	turn bool
}

func (n *nim) Actions(player bool) (bool, []int) {
	active := player == n.turn
	switch {
	case n.pile == 0:
		return active, nil
	case n.pile == 1:
		return active, []int{1}
	}
	return active, []int{1, 2}
}

func (n *nim) Execute(take int, player bool) int {
	n.pile -= take
	mover := n.turn
	n.turn = !n.turn
	if n.pile > 0 {
		return 0
	}
	if mover == player {
		return 1
	}
	return -1
}

func (n *nim) Clone() *nim {
	c := *n
	return &c
}

func (n *nim) IsUpperBound(fitness int, _ bool) bool { return fitness >= 1 }
func (n *nim) IsLowerBound(fitness int, _ bool) bool { return fitness <= -1 }

func TestBoundedGame(t *testing.T) {
	bot := alphabeta.NewBot[*nim, bool, int, int](true)

	for pile := 1; pile <= 14; pile++ {
		if pile%3 == 0 {
			continue
		}
		logger := alphabeta.NewLogger(alphabeta.ToCompletion{})
		line, ok := bot.DetailedSelect(&nim{pile: pile, turn: true}, logger)
		require.True(t, ok)
		assert.Equal(t, pile%3, line.Action, "pile %d", pile)
		assert.GreaterOrEqual(t, line.Fitness, 0, "pile %d", pile)
		assert.True(t, logger.Completed())
	}
}

func TestBoundedLosingPosition(t *testing.T) {
	bot := alphabeta.NewBot[*nim, bool, int, int](true)
	line, ok := bot.DetailedSelect(&nim{pile: 9, turn: true}, alphabeta.ToCompletion{})
	require.True(t, ok)
	assert.LessOrEqual(t, line.Fitness, 0)
	assert.Contains(t, []int{1, 2}, line.Action)
}

func TestBoundedOpponentToMove(t *testing.T) {
	bot := alphabeta.NewBot[*nim, bool, int, int](false)
	_, ok := bot.Select(&nim{pile: 5, turn: true}, alphabeta.ToCompletion{})
	assert.False(t, ok)
}

func TestLoggerCondition(t *testing.T) {
	logger := alphabeta.NewLogger(alphabeta.Steps(4))
	_, ok := newTreeBot().Select(wideTree(), logger)
	require.True(t, ok)

	assert.Equal(t, uint32(4), logger.Steps())
	assert.False(t, logger.Completed())
	assert.Less(t, logger.Duration(), time.Second)
	assert.IsType(t, &alphabeta.StepLimit{}, logger.Inner())

	_, ok = newTreeBot().Select(wideTree(), logger)
	require.True(t, ok)
	assert.Equal(t, uint32(4), logger.Steps(), "counters are reset between searches")
}

func TestTimeoutCondition(t *testing.T) {
	timeout := alphabeta.Within(time.Hour)
	assert.True(t, timeout.Step())
	assert.True(t, timeout.Depth(100))

	expired := alphabeta.Within(0)
	assert.False(t, expired.Step())

	assert.False(t, alphabeta.Deadline(time.Now().Add(-time.Millisecond)).Depth(0))
	assert.True(t, alphabeta.Deadline(time.Now().Add(time.Hour)).Step())
}

func TestListener(t *testing.T) {
	var depths []uint32
	var final alphabeta.ListenerStats[int, int8]
	stops := 0

	bot := newTreeBot()
	bot.SetListener(alphabeta.NewListener[int, int8]().
		OnDepth(func(stats alphabeta.ListenerStats[int, int8]) {
			depths = append(depths, stats.Depth)
			assert.True(t, stats.HasLine)
			assert.False(t, stats.Completed)
		}).
		OnStop(func(stats alphabeta.ListenerStats[int, int8]) {
			stops++
			final = stats
		}))

	action, ok := bot.Select(wideTree(), alphabeta.ToCompletion{})
	require.True(t, ok)

	assert.Equal(t, 1, stops)
	assert.NotEmpty(t, depths)
	for i, d := range depths {
		assert.Equal(t, uint32(i), d)
	}
	assert.True(t, final.Completed)
	assert.True(t, final.HasLine)
	assert.Equal(t, action, final.Line.Action)
	assert.Positive(t, final.Steps)
}

func TestListenerStopReason(t *testing.T) {
	var reason alphabeta.StopReason
	bot := newTreeBot()
	bot.SetListener(alphabeta.NewListener[int, int8]().OnStop(func(stats alphabeta.ListenerStats[int, int8]) {
		reason = stats.StopReason
	}))

	_, ok := bot.Select(wideTree(), alphabeta.NewLimiter(alphabeta.DefaultLimits().SetDepth(1)))
	require.True(t, ok)
	assert.Equal(t, alphabeta.StopDepth, reason)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	bot := alphabeta.NewBot[*tree.Node, bool, int, int8](true, alphabeta.WithLogger(logger))

	_, ok := bot.Select(wideTree(), alphabeta.ToCompletion{})
	require.True(t, ok)
	assert.Contains(t, buf.String(), `"message":"depth completed"`)
	assert.Contains(t, buf.String(), `"message":"search stopped"`)

	buf.Reset()
	_, ok = bot.Select(tree.Root(), alphabeta.ToCompletion{})
	require.False(t, ok)
	assert.Contains(t, buf.String(), `"message":"nothing to select"`)
}
