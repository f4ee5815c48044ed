package clique

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/cliquekit/cliquekit/pkg/graph"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// assertPermutationOf fails unless order is a duplicate-free arrangement of
// exactly the given vertex set.
func assertPermutationOf(t *testing.T, order, want []int) {
	t.Helper()
	got := slices.Clone(order)
	slices.Sort(got)
	w := slices.Clone(want)
	slices.Sort(w)
	if !slices.Equal(got, w) {
		t.Fatalf("order %v is not a permutation of %v", order, want)
	}
}

func TestDegreeDescending_Deterministic(t *testing.T) {
	g := graph.Random(25, 0.3, 5)
	degrees := g.Degrees()

	a := DegreeDescending{}.Order(g, degrees, nil)
	b := DegreeDescending{}.Order(g, degrees, nil)
	if !slices.Equal(a, b) {
		t.Error("degree-descending order differs between runs")
	}

	for i := 1; i < len(a); i++ {
		da, db := degrees[a[i-1]], degrees[a[i]]
		if da < db {
			t.Fatalf("order not degree-descending at %d: deg(%d)=%d < deg(%d)=%d", i, a[i-1], da, a[i], db)
		}
		if da == db && a[i-1] > a[i] {
			t.Fatalf("tie at degree %d not broken by ascending id: %d before %d", da, a[i-1], a[i])
		}
	}
}

func TestDegreeDescending_TrianglePendant(t *testing.T) {
	g := trianglePendant()
	order := DegreeDescending{}.Order(g, g.Degrees(), nil)
	// deg: 2→3, 0→2, 1→2, 3→1, 4→0; ties by ascending id.
	want := []int{2, 0, 1, 3, 4}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestUniformRandom_Permutation(t *testing.T) {
	g := graph.Random(30, 0.2, 2)
	order := UniformRandom{}.Order(g, g.Degrees(), newTestRand(9))
	assertPermutationOf(t, order, seq(30))
}

func TestDegreePlusNoise_Permutation(t *testing.T) {
	g := graph.Random(30, 0.5, 4)
	order := DegreePlusNoise{Width: 3}.Order(g, g.Degrees(), newTestRand(1))
	assertPermutationOf(t, order, seq(30))
}

func TestDegreePlusNoise_ZeroWidthDefault(t *testing.T) {
	// Width <= 0 derives from mean degree; on a non-empty graph the order
	// must still be a full permutation.
	g := graph.Random(20, 0.5, 8)
	order := DegreePlusNoise{}.Order(g, g.Degrees(), newTestRand(6))
	assertPermutationOf(t, order, seq(20))
}

func TestNeighborhoodSeeded_RestrictedToNeighbors(t *testing.T) {
	g := graph.Random(40, 0.3, 3)
	degrees := g.Degrees()

	for trial := uint64(0); trial < 20; trial++ {
		order := NeighborhoodSeeded{}.Order(g, degrees, newTestRand(trial))
		if len(order) == 0 {
			t.Fatal("empty order on non-empty graph")
		}
		seed := order[0]
		for _, v := range order[1:] {
			if !g.Adjacent(seed, v) {
				t.Fatalf("order member %d is not a neighbor of seed %d", v, seed)
			}
		}
		// The resulting clique minus the seed stays inside the
		// neighborhood, and the seed itself is always a member.
		clq := Extend(g, order)
		if len(clq) == 0 || clq[0] != seed {
			t.Fatalf("clique %v does not start with seed %d", clq, seed)
		}
		if !IsClique(g, clq) {
			t.Fatalf("clique %v violates adjacency", clq)
		}
	}
}

func TestStrategies_EmptyGraph(t *testing.T) {
	g := graph.New(0)
	degrees := g.Degrees()
	for _, s := range []Strategy{DegreeDescending{}, UniformRandom{}, DegreePlusNoise{}, NeighborhoodSeeded{}} {
		order := s.Order(g, degrees, newTestRand(1))
		if len(order) != 0 {
			t.Errorf("%s: order on empty graph = %v, want empty", s.Name(), order)
		}
		if clq := Extend(g, order); len(clq) != 0 {
			t.Errorf("%s: clique on empty graph = %v, want empty", s.Name(), clq)
		}
	}
}
