package clique

import "github.com/cliquekit/cliquekit/pkg/graph"

// Extend builds a clique from a visitation order with a single greedy pass.
//
// The order is scanned left to right; a vertex is accepted iff it is
// adjacent to every vertex accepted before it. An empty accepted set
// trivially accepts the first vertex. Rejected vertices are never
// reconsidered. The pass is O(len(order) × clique size) and introduces no
// randomness of its own.
//
// The returned slice is freshly allocated and pairwise adjacent in g by
// construction. The order may cover only a subset of the graph's vertices,
// as with the neighborhood-seeded strategy.
func Extend(g *graph.Graph, order []int) []int {
	clq := make([]int, 0, 16)
	for _, u := range order {
		ok := true
		for _, v := range clq {
			if !g.Adjacent(u, v) {
				ok = false
				break
			}
		}
		if ok {
			clq = append(clq, u)
		}
	}
	return clq
}

// IsClique reports whether every pair of vertices in members is adjacent
// in g. The empty set and singletons are cliques by convention.
func IsClique(g *graph.Graph, members []int) bool {
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			if !g.Adjacent(members[i], members[j]) {
				return false
			}
		}
	}
	return true
}
