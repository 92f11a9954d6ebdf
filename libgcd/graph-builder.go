package libgcd

import (
	"github.com/2x3systems/gcdgraph/gcdgraph"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// BuildGraph builds the gcd graph over nums: every value is a node and two values are adjacent iff gcd > 1.
//
// Equal values are the same node and never form a self-loop.
// See gcdgraph.EdgeMode for how the edge set differs between modes.
func BuildGraph(nums []int, opts gcdgraph.BuildOpts) gcdgraph.AdjacencyMap {
	switch opts.EdgeMode {
	case gcdgraph.EdgesFactorChain:
		return buildFactorChain(nums)
	default:
		return buildPairwise(nums)
	}
}

// buildPairwise compares every pair of positions i < j: O(n^2) gcd evaluations.
func buildPairwise(nums []int) gcdgraph.AdjacencyMap {
	adj := make(gcdgraph.AdjacencyMap, len(nums))

	for i, a := range nums {
		adj.AddNode(a)
		for _, b := range nums[i+1:] {
			if a != b && SharesFactor(a, b) {
				adj.AddEdge(a, b)
			}
		}
	}
	return adj
}

// factorGroup holds the distinct nodes divisible by a given prime, in input order.
type factorGroup struct {
	members []int
}

// buildFactorChain links consecutive members of each prime's group.
// Every pair sharing a prime ends up in the same chain, so components match buildPairwise.
// Zero is divisible by every prime and so joins the head of every group.
func buildFactorChain(nums []int) gcdgraph.AdjacencyMap {
	adj := make(gcdgraph.AdjacencyMap, len(nums))
	groups := redblacktree.NewWith(utils.UInt64Comparator)
	hasZero := false

	for _, v := range nums {
		if _, seen := adj[v]; seen {
			continue
		}
		adj.AddNode(v)
		if v == 0 {
			hasZero = true
			continue
		}
		for _, p := range PrimeFactors(magnitude(v)) {
			var group *factorGroup
			if found, exists := groups.Get(p); exists {
				group = found.(*factorGroup)
			} else {
				group = &factorGroup{}
				groups.Put(p, group)
			}
			group.members = append(group.members, v)
		}
	}

	linkOnce := func(a, b int) {
		if !adj.HasEdge(a, b) {
			adj.AddEdge(a, b)
		}
	}

	it := groups.Iterator()
	for it.Next() {
		members := it.Value().(*factorGroup).members
		for i := 1; i < len(members); i++ {
			linkOnce(members[i-1], members[i])
		}
		if hasZero {
			linkOnce(0, members[0])
		}
	}
	return adj
}
