package graphio

import (
	"strings"
	"testing"

	"github.com/cliquekit/cliquekit/pkg/errors"
	"github.com/cliquekit/cliquekit/pkg/graph"
)

func TestReadEdgeList(t *testing.T) {
	in := `# triangle plus pendant
5
0 1
0 2
1 2
2 3
7 1
`
	g, err := ReadEdgeList(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadEdgeList() error = %v", err)
	}
	if g.VertexCount() != 5 || g.EdgeCount() != 4 {
		t.Errorf("shape = %d/%d, want 5/4 (out-of-range pair dropped)", g.VertexCount(), g.EdgeCount())
	}
	if !g.Adjacent(2, 3) {
		t.Error("edge {2,3} missing")
	}
}

func TestReadEdgeList_Malformed(t *testing.T) {
	if _, err := ReadEdgeList(strings.NewReader("not-a-count\n")); !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("error = %v, want INVALID_GRAPH", err)
	}
	if _, err := ReadEdgeList(strings.NewReader("# nothing\n")); !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("empty input: error = %v, want INVALID_GRAPH", err)
	}
}

func TestWriteEdgeList_RoundTrip(t *testing.T) {
	g := graph.Random(15, 0.4, 17)

	var buf strings.Builder
	if err := WriteEdgeList(g, &buf); err != nil {
		t.Fatal(err)
	}
	back, err := ReadEdgeList(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if back.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount() = %d, want %d", back.EdgeCount(), g.EdgeCount())
	}
}

func TestWriteAdjacency(t *testing.T) {
	g := graph.New(3)
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)

	var buf strings.Builder
	if err := WriteAdjacency(g, &buf); err != nil {
		t.Fatal(err)
	}
	want := "0: 1 2\n1: 0\n2: 0\n"
	if buf.String() != want {
		t.Errorf("WriteAdjacency output:\n%s\nwant:\n%s", buf.String(), want)
	}
}
