package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cliquekit/cliquekit/pkg/graph"
)

type jsonGraph struct {
	Vertices int      `json:"vertices"`
	Edges    [][2]int `json:"edges"`
}

// ReadJSON decodes a JSON graph from r.
//
// The input must be an object with a vertex count and an edge array:
//
//	{
//	  "vertices": 5,
//	  "edges": [[0, 1], [0, 2], [1, 2], [2, 3]]
//	}
//
// Edges referencing identifiers outside [0, vertices) are dropped, and
// duplicates collapse, as with the other readers in this package.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data jsonGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	g := graph.New(data.Vertices)
	for _, e := range data.Edges {
		g.AddEdge(e[0], e[1])
	}
	return g, nil
}

// ImportJSON reads a JSON graph file at path and returns the decoded graph.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes g as JSON and writes it to w. Edges are emitted once
// each, smaller endpoint first, in ascending order for deterministic
// output. The format round-trips through [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := jsonGraph{
		Vertices: g.VertexCount(),
		Edges:    make([][2]int, 0, g.EdgeCount()),
	}
	for u := 0; u < g.VertexCount(); u++ {
		for _, v := range sortedNeighbors(g, u) {
			if u < v {
				out.Edges = append(out.Edges, [2]int{u, v})
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON converts g to JSON bytes, for cache keys and API responses.
func MarshalJSON(g *graph.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes g to a JSON file at path, created with 0644
// permissions.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
