package graph

import "math/rand/v2"

// Random generates an Erdős–Rényi G(n, p) graph: each of the n*(n-1)/2
// possible edges is present independently with probability p.
//
// The seed makes generation reproducible - the same (n, p, seed) triple
// always yields the same graph. p is clamped to [0, 1].
func Random(n int, p float64, seed uint64) *Graph {
	p = max(0, min(p, 1))
	g := New(n)
	if p == 0 {
		return g
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if p == 1 || rng.Float64() < p {
				g.AddEdge(u, v)
			}
		}
	}
	return g
}
