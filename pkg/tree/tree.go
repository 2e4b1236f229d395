package tree

import (
	"fmt"
	"math"
	"strings"
)

/*
A tree game used in the examples and the tests: every node knows whose turn
it is and its own fitness, an action is just the index of a child.

	root := tree.Root().WithChildren(
		tree.New(false, 7).WithChildren(tree.New(true, 4), tree.New(true, 2)),
		tree.New(false, 5).WithChildren(tree.New(true, 8), tree.New(true, 9)),
		tree.New(false, 6),
	)
*/

type Node struct {
	player bool
	// always from the perspective of the searching player
	fitness  int8
	children []*Node
	// fitness >= bound is a win, <= -bound a loss; 0 if unbounded
	bound int8
}

// Root node, belonging to the 'true' player
func Root() *Node {
	return New(true, 0)
}

func New(player bool, fitness int8) *Node {
	return &Node{player: player, fitness: fitness}
}

// Replace the children of the node
func (n *Node) WithChildren(children ...*Node) *Node {
	n.children = append(n.children[:0:0], children...)
	return n
}

// Add a child, returns the child
func (n *Node) Push(child *Node) *Node {
	n.children = append(n.children, child)
	return child
}

func (n *Node) Player() bool {
	return n.player
}

func (n *Node) Fitness() int8 {
	return n.fitness
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Number of nodes in the tree, including this one
func (n *Node) Size() int {
	size := 1
	for _, c := range n.children {
		size += c.Size()
	}
	return size
}

func (n *Node) Actions(player bool) (bool, []int) {
	actions := make([]int, len(n.children))
	for i := range actions {
		actions[i] = i
	}
	return player == n.player, actions
}

// Moves to the child, the children are never mutated so they can be shared
func (n *Node) Execute(action int, _ bool) int8 {
	*n = *n.children[action]
	return n.fitness
}

func (n *Node) LookAhead(action int, _ bool) int8 {
	return n.children[action].fitness
}

// Makes the whole tree bounded: fitness of at least 'limit' becomes MaxInt8
// and is a proven win, fitness of at most -limit becomes MinInt8, a proven loss.
// The limit must be positive.
func (n *Node) Bounded(limit int8) *Node {
	if limit <= 0 {
		panic("tree: bound limit must be positive")
	}
	n.bound = limit
	switch {
	case n.fitness >= limit:
		n.fitness = math.MaxInt8
	case n.fitness <= -limit:
		n.fitness = math.MinInt8
	}
	for _, c := range n.children {
		c.Bounded(limit)
	}
	return n
}

func (n *Node) IsUpperBound(fitness int8, _ bool) bool {
	return n.bound > 0 && fitness >= n.bound
}

func (n *Node) IsLowerBound(fitness int8, _ bool) bool {
	return n.bound > 0 && fitness <= -n.bound
}

func (n *Node) Clone() *Node {
	c := *n
	return &c
}

func (n *Node) String() string {
	builder := strings.Builder{}
	n.write(&builder, 0)
	return builder.String()
}

func (n *Node) write(b *strings.Builder, indent int) {
	fmt.Fprintf(b, "%s(%v, %d)\n", strings.Repeat("  ", indent), n.player, n.fitness)
	for _, c := range n.children {
		c.write(b, indent+1)
	}
}
