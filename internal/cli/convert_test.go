package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cliquekit/cliquekit/pkg/pipeline"
)

func testCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestGenWritesReproducibleGraph(t *testing.T) {
	c := testCLI()
	dir := t.TempDir()

	first := filepath.Join(dir, "a.txt")
	if err := c.runGen(30, 0.5, 42, "", first); err != nil {
		t.Fatal(err)
	}
	second := filepath.Join(dir, "b.txt")
	if err := c.runGen(30, 0.5, 42, "", second); err != nil {
		t.Fatal(err)
	}

	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("same seed should generate identical graphs")
	}
	if !strings.HasPrefix(string(a), "30\n") {
		t.Errorf("edge list should start with the vertex count, got %q", strings.SplitN(string(a), "\n", 2)[0])
	}
}

func TestGenDIMACSByExtension(t *testing.T) {
	c := testCLI()
	path := filepath.Join(t.TempDir(), "g.clq")

	if err := c.runGen(10, 1.0, 1, "", path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "p edge 10 45") {
		t.Errorf("expected a DIMACS header, got %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestConvertRoundTrip(t *testing.T) {
	c := testCLI()
	dir := t.TempDir()

	src := filepath.Join(dir, "g.clq")
	if err := c.runGen(20, 0.3, 7, "", src); err != nil {
		t.Fatal(err)
	}
	asJSON := filepath.Join(dir, "g.json")
	if err := c.runConvert(src, asJSON, "", ""); err != nil {
		t.Fatal(err)
	}
	back := filepath.Join(dir, "back.clq")
	if err := c.runConvert(asJSON, back, "", ""); err != nil {
		t.Fatal(err)
	}

	orig, err := readGraphFrom(src, "")
	if err != nil {
		t.Fatal(err)
	}
	converted, err := readGraphFrom(back, "")
	if err != nil {
		t.Fatal(err)
	}
	if orig.VertexCount() != converted.VertexCount() || orig.EdgeCount() != converted.EdgeCount() {
		t.Errorf("round trip changed the graph: (%d, %d) vs (%d, %d)",
			orig.VertexCount(), orig.EdgeCount(), converted.VertexCount(), converted.EdgeCount())
	}
	for u := 0; u < orig.VertexCount(); u++ {
		for v := u + 1; v < orig.VertexCount(); v++ {
			if orig.Adjacent(u, v) != converted.Adjacent(u, v) {
				t.Fatalf("edge (%d, %d) changed in round trip", u, v)
			}
		}
	}
}

func TestConvertRequiresTarget(t *testing.T) {
	c := testCLI()
	src := filepath.Join(t.TempDir(), "g.txt")
	if err := c.runGen(5, 0.5, 1, "", src); err != nil {
		t.Fatal(err)
	}
	if err := c.runConvert(src, "", "", ""); err == nil {
		t.Error("convert to stdout without --to should fail")
	}
}

func TestConvertUnknownFormat(t *testing.T) {
	c := testCLI()
	src := filepath.Join(t.TempDir(), "g.txt")
	if err := c.runGen(5, 0.5, 1, "", src); err != nil {
		t.Fatal(err)
	}
	if err := c.runConvert(src, "", "", "gml"); err == nil {
		t.Error("unknown target format should fail")
	}
}

func TestReadGraphFromDetectsFormat(t *testing.T) {
	dir := t.TempDir()
	c := testCLI()

	for _, name := range []string{"g.clq", "g.json", "g.txt"} {
		path := filepath.Join(dir, name)
		format := pipeline.DetectFormat(path)
		if err := c.runGen(8, 0.5, 3, format, path); err != nil {
			t.Fatal(err)
		}
		g, err := readGraphFrom(path, "")
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if g.VertexCount() != 8 {
			t.Errorf("%s: vertices = %d, want 8", name, g.VertexCount())
		}
	}
}
