package alphabeta

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Search limits, used by the Limiter
type Limits struct {
	Depth    int    `json:"depth"`
	Nodes    uint32 `json:"nodes"`
	Movetime int    `json:"movetime"`
	Infinite bool   `json:"infinite"`
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return strings.TrimSpace(builder.String())
}

const (
	DefaultDepthLimit    int    = math.MaxInt
	DefaultNodeLimit     uint32 = math.MaxUint32
	DefaultMovetimeLimit int    = -1
)

func DefaultLimits() *Limits {
	return &Limits{
		Depth:    DefaultDepthLimit,
		Nodes:    DefaultNodeLimit,
		Movetime: DefaultMovetimeLimit,
		Infinite: true,
	}
}

// Set the maximum number of iterative deepening depths,
// SetDepth(1) only searches depth 0
func (l *Limits) SetDepth(depth int) *Limits {
	l.Depth = depth
	l.Infinite = false
	return l
}

// Set the maximum number of nodes the bot can visit
func (l *Limits) SetNodes(nodes uint32) *Limits {
	l.Nodes = nodes
	l.Infinite = false
	return l
}

// Set the maximum time for the bot to think, in milliseconds
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

// Infinite search ignores every limit, only the stop signal
// (or context cancellation) ends it
func (l *Limits) SetInfinite(infinite bool) *Limits {
	l.Infinite = infinite
	return l
}

// ParseLimits reads comma-separated parameters, like "depth=6,movetime=500",
// "nodes=100000" or "infinite". Unset parameters keep the defaults.
func ParseLimits(config string) (*Limits, error) {
	limits := DefaultLimits()
	params := splitConfigString(config)
	// an empty value keeps the default
	depthSet, nodesSet := params["depth"] != "", params["nodes"] != ""

	depth, err := PopParamOr(params, "depth", -1)
	if err != nil {
		return nil, err
	}
	nodes, err := PopParamOr(params, "nodes", -1)
	if err != nil {
		return nil, err
	}
	movetime, err := PopParamOr(params, "movetime", -1)
	if err != nil {
		return nil, err
	}
	infinite, err := PopParamOr(params, "infinite", false)
	if err != nil {
		return nil, err
	}

	if depthSet && depth < 0 {
		return nil, errors.Wrapf(strconv.ErrRange, "limit depth=%d", depth)
	}
	if nodesSet && (nodes < 0 || int64(nodes) > math.MaxUint32) {
		return nil, errors.Wrapf(strconv.ErrRange, "limit nodes=%d", nodes)
	}

	if len(params) != 0 {
		unknown := lo.Keys(params)
		slices.Sort(unknown)
		return nil, errors.Errorf("unknown limits %q in %q", unknown, config)
	}

	if depth >= 0 {
		limits.SetDepth(depth)
	}
	if nodes >= 0 {
		limits.SetNodes(uint32(nodes))
	}
	if movetime >= 0 {
		limits.SetMovetime(movetime)
	}
	if infinite {
		limits.SetInfinite(true)
	}
	return limits, nil
}

// splitConfigString maps keys to values, a key without '=' maps to an empty string
func splitConfigString(config string) map[string]string {
	params := make(map[string]string)
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		params[key] = value
	}
	return params
}

// GetParamOr parses the parameter to the given type if the key is present, or returns
// the defaultValue if not. For bool types, a key without a value is interpreted as true.
func GetParamOr[T interface{ bool | int | float64 }](params map[string]string, key string, defaultValue T) (T, error) {
	var t T
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}

	toT := func(v any) T { return v.(T) }
	switch any(defaultValue).(type) {
	case int:
		if value == "" {
			return defaultValue, nil
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse limit %s=%q to int", key, value)
		}
		return toT(parsed), nil
	case float64:
		if value == "" {
			return defaultValue, nil
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse limit %s=%q to float", key, value)
		}
		return toT(parsed), nil
	case bool:
		switch strings.ToLower(value) {
		case "", "true", "1":
			return toT(true), nil
		case "false", "0":
			return toT(false), nil
		}
		return defaultValue, errors.Errorf("failed to parse limit %s=%q to bool", key, value)
	}
	return defaultValue, nil
}

// PopParamOr is like GetParamOr but it also deletes the retrieved parameter from params
func PopParamOr[T interface{ bool | int | float64 }](params map[string]string, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}
