// Package graphio reads and writes graphs in the formats the search tool
// exchanges: DIMACS clique benchmark files, plain edge lists, JSON, and a
// human-readable adjacency listing.
//
// All readers are defensive about malformed edge records: out-of-range
// vertex identifiers are dropped during insertion rather than failing the
// whole load, matching the behavior of the DIMACS benchmark tooling this
// package replaces.
package graphio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cliquekit/cliquekit/pkg/errors"
	"github.com/cliquekit/cliquekit/pkg/graph"
)

// ReadDIMACS decodes a DIMACS clique-format graph from r.
//
// The format, as used by the DIMACS benchmark instances (*.clq):
//
//	c <comment>
//	p edge <vertices> <edges>
//	e <u> <v>
//
// Vertex identifiers are 1-based in the file and mapped to 0-based. Lines
// holding a bare "u v" pair (no leading "e") are tolerated, as are edge
// counts in the header that disagree with the actual number of edge lines.
// Duplicate edges collapse and edges referencing identifiers beyond the
// declared vertex count are dropped.
func ReadDIMACS(r io.Reader) (*graph.Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var g *graph.Graph
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		if strings.HasPrefix(line, "p") {
			var format string
			var n, m int
			if _, err := fmt.Sscanf(line, "p %s %d %d", &format, &n, &m); err != nil {
				return nil, errors.New(errors.ErrCodeInvalidGraph, "malformed problem line %q", line)
			}
			g = graph.New(n)
			continue
		}
		if g == nil {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "edge line before problem line")
		}

		var u, v int
		if strings.HasPrefix(line, "e") {
			if _, err := fmt.Sscanf(line, "e %d %d", &u, &v); err != nil {
				continue
			}
		} else if _, err := fmt.Sscanf(line, "%d %d", &u, &v); err != nil {
			continue
		}
		// 1-based file ids to 0-based vertex ids.
		if u > 0 {
			u--
		}
		if v > 0 {
			v--
		}
		g.AddEdge(u, v)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "read DIMACS")
	}
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "missing problem line")
	}
	return g, nil
}

// ImportDIMACS reads a DIMACS file at path and returns the decoded graph.
// The error wraps the underlying cause with the file path for context.
func ImportDIMACS(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadDIMACS(f)
}

// WriteDIMACS encodes g in DIMACS clique format and writes it to w.
// Vertex identifiers are shifted back to 1-based. Each undirected edge is
// emitted once, from its smaller endpoint.
func WriteDIMACS(g *graph.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p edge %d %d\n", g.VertexCount(), g.EdgeCount())
	for u := 0; u < g.VertexCount(); u++ {
		for _, v := range sortedNeighbors(g, u) {
			if u < v {
				fmt.Fprintf(bw, "e %d %d\n", u+1, v+1)
			}
		}
	}
	return bw.Flush()
}

// ExportDIMACS writes g to a DIMACS file at path, created with 0644
// permissions.
func ExportDIMACS(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDIMACS(g, f)
}
