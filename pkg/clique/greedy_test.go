package clique

import (
	"slices"
	"testing"

	"github.com/cliquekit/cliquekit/pkg/graph"
)

// trianglePendant builds the 5-vertex graph with a triangle {0,1,2} and a
// pendant vertex 3 hanging off vertex 2. Vertex 4 is isolated.
func trianglePendant() *graph.Graph {
	g := graph.New(5)
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	return g
}

func TestExtend_TrianglePendant(t *testing.T) {
	g := trianglePendant()
	degrees := g.Degrees()

	// Vertex 2 has the highest degree (3) and leads the order; 0 and 1
	// are accepted behind it, 3 is rejected against 0 and 1.
	order := DegreeDescending{}.Order(g, degrees, nil)
	clq := Extend(g, order)

	if len(clq) != 3 {
		t.Fatalf("clique size = %d, want 3 (got %v)", len(clq), clq)
	}
	want := []int{0, 1, 2}
	got := slices.Clone(clq)
	slices.Sort(got)
	if !slices.Equal(got, want) {
		t.Errorf("clique members = %v, want %v", got, want)
	}
	if !IsClique(g, clq) {
		t.Error("Extend returned a non-clique")
	}
}

func TestExtend_EmptyOrder(t *testing.T) {
	g := graph.New(3)
	if clq := Extend(g, nil); len(clq) != 0 {
		t.Errorf("Extend(nil order) = %v, want empty", clq)
	}
}

func TestExtend_NoBacktracking(t *testing.T) {
	// Path 0-1-2: visiting 0 first blocks 2 even though {1,2} would be
	// the same size; the pass never reconsiders a rejection.
	g := graph.New(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)

	clq := Extend(g, []int{0, 2, 1})
	if len(clq) != 2 || clq[0] != 0 || clq[1] != 1 {
		t.Errorf("Extend = %v, want [0 1]", clq)
	}
}

func TestExtend_AdjacencyInvariant(t *testing.T) {
	g := graph.Random(40, 0.5, 11)
	degrees := g.Degrees()
	for _, s := range []Strategy{DegreeDescending{}, UniformRandom{}, DegreePlusNoise{}, NeighborhoodSeeded{}} {
		rng := newTestRand(3)
		clq := Extend(g, s.Order(g, degrees, rng))
		if !IsClique(g, clq) {
			t.Errorf("%s: result %v violates pairwise adjacency", s.Name(), clq)
		}
	}
}

func TestIsClique(t *testing.T) {
	g := trianglePendant()
	if !IsClique(g, nil) || !IsClique(g, []int{3}) {
		t.Error("empty set and singleton must be cliques")
	}
	if !IsClique(g, []int{0, 1, 2}) {
		t.Error("triangle must be a clique")
	}
	if IsClique(g, []int{0, 1, 3}) {
		t.Error("{0,1,3} is not a clique")
	}
}
