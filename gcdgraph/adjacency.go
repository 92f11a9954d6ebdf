package gcdgraph

import (
	"slices"
)

// AdjacencyMap maps each node (an input value) to its directly connected neighbors.
//
// Every input value is present as a key, even when it has no neighbors.
// Edges are stored in both directions: if b is in a's list then a is in b's list.
type AdjacencyMap map[int][]int

// AddNode ensures the given node is present, leaving existing neighbors untouched.
func (adj AdjacencyMap) AddNode(v int) {
	if _, exists := adj[v]; !exists {
		adj[v] = nil
	}
}

// AddEdge inserts both directed edges between a and b.
func (adj AdjacencyMap) AddEdge(a, b int) {
	adj[a] = append(adj[a], b)
	adj[b] = append(adj[b], a)
}

func (adj AdjacencyMap) Neighbors(v int) []int {
	return adj[v]
}

func (adj AdjacencyMap) NumNodes() int {
	return len(adj)
}

// NumEdges returns the number of undirected edges (each edge is stored twice).
func (adj AdjacencyMap) NumEdges() int {
	ends := 0
	for _, nbrs := range adj {
		ends += len(nbrs)
	}
	return ends / 2
}

// Nodes returns the nodes in ascending order, giving traversals a deterministic enumeration order.
func (adj AdjacencyMap) Nodes() []int {
	nodes := make([]int, 0, len(adj))
	for v := range adj {
		nodes = append(nodes, v)
	}
	slices.Sort(nodes)
	return nodes
}

// HasEdge reports if b is a neighbor of a.
func (adj AdjacencyMap) HasEdge(a, b int) bool {
	return slices.Contains(adj[a], b)
}
