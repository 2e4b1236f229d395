package tree

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Parse reads a tree from JSON:
//
//	{"player": true, "fitness": 0, "children": [{"player": false, "fitness": 7}]}
//
// missing "player" defaults to true, missing "fitness" to 0
func Parse(data string) (*Node, error) {
	if !gjson.Valid(data) {
		return nil, errors.New("tree: invalid json")
	}
	return parseNode(gjson.Parse(data), "$")
}

func parseNode(value gjson.Result, at string) (*Node, error) {
	if !value.IsObject() {
		return nil, errors.Errorf("tree: %s is not an object", at)
	}

	player := true
	if p := value.Get("player"); p.Exists() {
		if !p.IsBool() {
			return nil, errors.Errorf("tree: %s.player is not a bool", at)
		}
		player = p.Bool()
	}

	fitness := value.Get("fitness")
	if fitness.Exists() && fitness.Type != gjson.Number {
		return nil, errors.Errorf("tree: %s.fitness is not a number", at)
	}
	if f := fitness.Int(); f < math.MinInt8 || f > math.MaxInt8 {
		return nil, errors.Errorf("tree: %s.fitness=%d out of range", at, f)
	}

	node := New(player, int8(fitness.Int()))
	children := value.Get("children")
	if !children.Exists() {
		return node, nil
	}
	if !children.IsArray() {
		return nil, errors.Errorf("tree: %s.children is not an array", at)
	}

	var err error
	children.ForEach(func(_, v gjson.Result) bool {
		var child *Node
		child, err = parseNode(v, fmt.Sprintf("%s.children[%d]", at, len(node.children)))
		if err != nil {
			return false
		}
		node.Push(child)
		return true
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}
