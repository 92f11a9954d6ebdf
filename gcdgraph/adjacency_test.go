package gcdgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdjacencyMap(t *testing.T) {
	adj := AdjacencyMap{}
	adj.AddNode(9)
	adj.AddEdge(4, 2)
	adj.AddNode(4)
	adj.AddEdge(4, 6)

	require.Equal(t, []int{2, 4, 6, 9}, adj.Nodes())
	require.Equal(t, 4, adj.NumNodes())
	require.Equal(t, 2, adj.NumEdges())
	require.Equal(t, []int{2, 6}, adj.Neighbors(4))
	require.True(t, adj.HasEdge(2, 4))
	require.True(t, adj.HasEdge(6, 4))
	require.False(t, adj.HasEdge(2, 6))
	require.Empty(t, adj.Neighbors(9))
}

func TestJobInputs(t *testing.T) {
	job := Job{Length: 4, AllIntegers: true}
	require.Equal(t, []int{1, 2, 3, 4}, job.Inputs())

	job = Job{Values: []int{5, 6, 7}, Length: 2}
	require.Equal(t, []int{5, 6}, job.Inputs())
}
