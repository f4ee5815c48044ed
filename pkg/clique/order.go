package clique

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/cliquekit/cliquekit/pkg/graph"
)

// Strategy produces a vertex visitation order for one trial.
//
// Strategies are pure with respect to the graph and the degree table: they
// never mutate either. All randomness is drawn from the supplied rng, which
// is owned by the calling worker; deterministic strategies ignore it. The
// returned order contains no duplicates and may cover only a subset of the
// vertex universe.
type Strategy interface {
	// Name identifies the strategy in stats, logs and configuration.
	Name() string

	// Order returns the visitation order for one trial. degrees must be
	// the precomputed table g.Degrees(); it is shared read-only across
	// trials so strategies must not write to it.
	Order(g *graph.Graph, degrees []int, rng *rand.Rand) []int
}

// DegreeDescending orders all vertices by descending degree, ties broken by
// ascending vertex id. It is fully deterministic and serves as the
// mandatory baseline trial: the same graph always yields the same order and
// therefore the same clique.
type DegreeDescending struct{}

// Name returns "degree".
func (DegreeDescending) Name() string { return "degree" }

// Order implements Strategy. The rng is unused.
func (DegreeDescending) Order(g *graph.Graph, degrees []int, _ *rand.Rand) []int {
	order := seq(len(degrees))
	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(degrees[b], degrees[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return order
}

// UniformRandom orders all vertices as a uniformly random permutation,
// independent per trial.
type UniformRandom struct{}

// Name returns "random".
func (UniformRandom) Name() string { return "random" }

// Order implements Strategy.
func (UniformRandom) Order(g *graph.Graph, degrees []int, rng *rand.Rand) []int {
	return rng.Perm(len(degrees))
}

// DegreePlusNoise ranks every vertex by degree(v) + noise(v), where noise
// is drawn per vertex per trial from Uniform(-Width, +Width), and orders by
// descending score.
//
// Width controls how far the order can drift from the deterministic degree
// baseline: too narrow collapses to the baseline, too wide degenerates to a
// pure random permutation. A Width <= 0 selects half the graph's mean
// degree, which scales the perturbation with the density of the target
// graph.
type DegreePlusNoise struct {
	Width float64
}

// Name returns "noise".
func (DegreePlusNoise) Name() string { return "noise" }

// Order implements Strategy.
func (s DegreePlusNoise) Order(g *graph.Graph, degrees []int, rng *rand.Rand) []int {
	w := s.Width
	if w <= 0 {
		w = g.MeanDegree() / 2
	}
	scores := make([]float64, len(degrees))
	for v, d := range degrees {
		scores[v] = float64(d) + (rng.Float64()*2-1)*w
	}
	order := seq(len(degrees))
	slices.SortFunc(order, func(a, b int) int {
		if c := cmp.Compare(scores[b], scores[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return order
}

// NeighborhoodSeeded picks one vertex uniformly at random as the seed and
// restricts the order to the seed's neighborhood: the seed first, then its
// neighbors ranked by degree (perturbed by Uniform(-Width, +Width) noise
// when Width > 0, with the same <= 0 default as [DegreePlusNoise]).
//
// Placing the seed first is equivalent to appending it to whatever clique
// the greedy pass finds among its neighbors: every later vertex in the
// order is adjacent to the seed, so the seed is always accepted and never
// blocks an acceptance.
type NeighborhoodSeeded struct {
	Width float64
}

// Name returns "neighborhood".
func (NeighborhoodSeeded) Name() string { return "neighborhood" }

// Order implements Strategy.
func (s NeighborhoodSeeded) Order(g *graph.Graph, degrees []int, rng *rand.Rand) []int {
	n := len(degrees)
	if n == 0 {
		return nil
	}
	seed := rng.IntN(n)
	hood := g.Neighbors(seed)

	w := s.Width
	if w <= 0 {
		w = g.MeanDegree() / 2
	}
	scores := make(map[int]float64, len(hood))
	for _, v := range hood {
		scores[v] = float64(degrees[v]) + (rng.Float64()*2-1)*w
	}
	slices.SortFunc(hood, func(a, b int) int {
		if c := cmp.Compare(scores[b], scores[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	order := make([]int, 0, len(hood)+1)
	order = append(order, seed)
	return append(order, hood...)
}

func seq(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
