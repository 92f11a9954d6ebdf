package libgcd

import (
	"github.com/2x3systems/gcdgraph/gcdgraph"
	mapset "github.com/deckarep/golang-set/v2"
)

// LargestComponent returns the number of nodes in the largest connected component of adj (0 if adj is empty).
func LargestComponent(adj gcdgraph.AdjacencyMap) int {
	largest := 0
	walkComponents(adj, func(size int) {
		if size > largest {
			largest = size
		}
	})
	return largest
}

// ComponentSizes returns the size of every connected component of adj, in discovery order
// (components are discovered in ascending order of their smallest node).
func ComponentSizes(adj gcdgraph.AdjacencyMap) []int {
	var sizes []int
	walkComponents(adj, func(size int) {
		sizes = append(sizes, size)
	})
	return sizes
}

// walkComponents visits the nodes of adj in ascending order and runs a depth-first traversal from each unvisited one.
// The growth of the visited set across a traversal is the size of the component just discovered.
func walkComponents(adj gcdgraph.AdjacencyMap, onComponent func(size int)) {
	visited := mapset.NewThreadUnsafeSetWithSize[int](len(adj))
	var stack []int

	prev := 0
	for _, v := range adj.Nodes() {
		if visited.Contains(v) {
			continue
		}
		stack = traverse(adj, v, visited, stack[:0])

		N := visited.Cardinality()
		onComponent(N - prev)
		prev = N
	}
}

// traverse marks every node reachable from root as visited.
//
// The frontier is an explicit stack (bounded by the node count) rather than call-stack recursion,
// so a long chain-shaped component cannot exhaust the goroutine stack.
// Neighbors are pushed in reverse so they are explored in list order.
func traverse(adj gcdgraph.AdjacencyMap, root int, visited mapset.Set[int], stack []int) []int {
	visited.Add(root)
	stack = append(stack, root)

	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nbrs := adj[v]
		for i := len(nbrs) - 1; i >= 0; i-- {
			w := nbrs[i]
			if !visited.Contains(w) {
				visited.Add(w)
				stack = append(stack, w)
			}
		}
	}
	return stack
}
