package tree

import (
	"encoding/binary"

	"golang.org/x/exp/rand"
)

const defaultSeed = 0xBAD5EED

// FromBytes builds a random tree, the first 4 bytes are the seed, every following
// byte is the fitness of one more node. Used by the fuzz tests, so that every input
// maps to a valid tree. Less than 4 bytes result in a bare root.
func FromBytes(data []byte) *Node {
	if len(data) < 4 {
		return Root()
	}

	seed := uint64(binary.BigEndian.Uint32(data[:4]))
	if seed == 0 {
		seed = defaultSeed
	}

	fitness := make([]int8, len(data)-4)
	for i, b := range data[4:] {
		fitness[i] = int8(b)
	}
	return Generate(rand.New(rand.NewSource(seed)), fitness)
}

// Random tree with 'size' nodes below the root
func Random(r *rand.Rand, size int) *Node {
	fitness := make([]int8, size)
	for i := range fitness {
		fitness[i] = int8(r.Intn(256) - 128)
	}
	return Generate(r, fitness)
}

// Generate adds one node per fitness value, each placed by walking down from
// the root along random children until a random stop
func Generate(r *rand.Rand, fitness []int8) *Node {
	root := Root()
	for _, f := range fitness {
		pos := root
		next := r.Intn(len(pos.children) + 1)
		for next != len(pos.children) {
			pos = pos.children[next]
			next = r.Intn(len(pos.children) + 1)
		}
		pos.Push(New(r.Intn(2) == 0, f))
	}
	return root
}
