package graphio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/cliquekit/cliquekit/pkg/errors"
	"github.com/cliquekit/cliquekit/pkg/graph"
)

// ReadEdgeList decodes a plain edge-list graph from r.
//
// The first non-comment line holds the vertex count; every following line
// holds one 0-based "u v" pair. Lines starting with '#' and blank lines
// are skipped. Pairs referencing identifiers outside [0, n) are dropped.
//
//	# triangle plus pendant
//	5
//	0 1
//	0 2
//	1 2
//	2 3
func ReadEdgeList(r io.Reader) (*graph.Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var g *graph.Graph
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if g == nil {
			var n int
			if _, err := fmt.Sscanf(line, "%d", &n); err != nil || n < 0 {
				return nil, errors.New(errors.ErrCodeInvalidGraph, "malformed vertex count %q", line)
			}
			g = graph.New(n)
			continue
		}
		var u, v int
		if _, err := fmt.Sscanf(line, "%d %d", &u, &v); err != nil {
			continue
		}
		g.AddEdge(u, v)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "read edge list")
	}
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "missing vertex count")
	}
	return g, nil
}

// ImportEdgeList reads an edge-list file at path and returns the decoded
// graph.
func ImportEdgeList(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadEdgeList(f)
}

// WriteEdgeList encodes g as a plain edge list and writes it to w.
// The output can be re-imported with [ReadEdgeList] for round-trip
// processing.
func WriteEdgeList(g *graph.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", g.VertexCount())
	for u := 0; u < g.VertexCount(); u++ {
		for _, v := range sortedNeighbors(g, u) {
			if u < v {
				fmt.Fprintf(bw, "%d %d\n", u, v)
			}
		}
	}
	return bw.Flush()
}

// WriteAdjacency writes a human-readable adjacency listing: one line per
// vertex with its sorted neighbor set.
//
//	0: 1 2
//	1: 0 2
//	2: 0 1 3
//	3: 2
//
// This is an export-only diagnostic format; there is no reader.
func WriteAdjacency(g *graph.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for u := 0; u < g.VertexCount(); u++ {
		fmt.Fprintf(bw, "%d:", u)
		for _, v := range sortedNeighbors(g, u) {
			fmt.Fprintf(bw, " %d", v)
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

func sortedNeighbors(g *graph.Graph, u int) []int {
	ns := g.Neighbors(u)
	slices.Sort(ns)
	return ns
}
