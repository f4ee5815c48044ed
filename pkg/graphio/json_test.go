package graphio

import (
	"strings"
	"testing"

	"github.com/cliquekit/cliquekit/pkg/graph"
)

func TestReadJSON(t *testing.T) {
	in := `{"vertices": 4, "edges": [[0,1],[1,2],[1,2],[0,9]]}`
	g, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if g.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d, want 4", g.VertexCount())
	}
	// Duplicate collapses, out-of-range pair drops.
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestReadJSON_Malformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{nope")); err == nil {
		t.Error("malformed JSON must fail")
	}
}

func TestWriteJSON_Deterministic(t *testing.T) {
	g := graph.Random(12, 0.5, 3)

	a, err := MarshalJSON(g)
	if err != nil {
		t.Fatal(err)
	}
	b, err := MarshalJSON(g)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("MarshalJSON output differs between calls on the same graph")
	}

	back, err := ReadJSON(strings.NewReader(string(a)))
	if err != nil {
		t.Fatal(err)
	}
	if back.EdgeCount() != g.EdgeCount() || back.VertexCount() != g.VertexCount() {
		t.Errorf("round trip changed shape: %d/%d -> %d/%d",
			g.VertexCount(), g.EdgeCount(), back.VertexCount(), back.EdgeCount())
	}
}
