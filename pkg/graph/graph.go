// Package graph provides the undirected graph store used by the clique
// search engine.
//
// A Graph is built once over a fixed vertex universe [0, N) and is read-only
// afterwards. Adjacency is stored as one set per vertex, so edge membership
// queries are O(1) on average. Because the structure is never mutated after
// construction, a single Graph can be shared by any number of concurrent
// readers without synchronization.
package graph

import "errors"

// ErrVertexOutOfRange is returned by [Graph.MustEdge] when an endpoint does
// not fall inside the vertex universe [0, N). The plain [Graph.AddEdge] path
// silently ignores such edges instead, matching the defensive policy of the
// DIMACS loaders this store was built for, where stray identifiers are common.
var ErrVertexOutOfRange = errors.New("vertex out of range")

// Graph is an undirected graph over the fixed vertex set {0, 1, ..., n-1}.
//
// The zero value is not usable - use New to create a Graph. Graphs are
// build-once, read-many: there is no removal operation, and all read
// accessors are safe for concurrent use once construction is finished.
type Graph struct {
	n     int
	adj   []map[int]struct{}
	edges int
}

// New creates a graph with n vertices and no edges.
// For n <= 0 an empty graph (zero vertices) is returned.
func New(n int) *Graph {
	if n < 0 {
		n = 0
	}
	adj := make([]map[int]struct{}, n)
	for i := range adj {
		adj[i] = make(map[int]struct{})
	}
	return &Graph{n: n, adj: adj}
}

// VertexCount returns the number of vertices n.
// Vertex identifiers are always 0 through n-1.
func (g *Graph) VertexCount() int { return g.n }

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int { return g.edges }

// AddEdge inserts the undirected edge {u, v}.
//
// Insertion is idempotent: adding the same edge twice leaves the graph
// unchanged. Edges with an endpoint outside [0, n) and self loops are
// ignored. Returns true if the edge was newly inserted.
func (g *Graph) AddEdge(u, v int) bool {
	if !g.inRange(u) || !g.inRange(v) || u == v {
		return false
	}
	if _, dup := g.adj[u][v]; dup {
		return false
	}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	g.edges++
	return true
}

// MustEdge inserts the undirected edge {u, v} and returns
// ErrVertexOutOfRange if an endpoint is outside [0, n). Self loops and
// duplicate edges are still ignored without error. Use this instead of
// AddEdge when malformed input should fail fast rather than be dropped.
func (g *Graph) MustEdge(u, v int) error {
	if !g.inRange(u) || !g.inRange(v) {
		return ErrVertexOutOfRange
	}
	g.AddEdge(u, v)
	return nil
}

// Adjacent reports whether the edge {u, v} exists.
// Out-of-range identifiers yield false rather than a panic.
func (g *Graph) Adjacent(u, v int) bool {
	if !g.inRange(u) || !g.inRange(v) {
		return false
	}
	_, ok := g.adj[u][v]
	return ok
}

// Degree returns the number of neighbors of u, or 0 if u is out of range.
func (g *Graph) Degree(u int) int {
	if !g.inRange(u) {
		return 0
	}
	return len(g.adj[u])
}

// Neighbors returns the neighbor identifiers of u in unspecified order.
// The returned slice is a fresh copy and may be modified by the caller.
// Returns nil for out-of-range identifiers.
func (g *Graph) Neighbors(u int) []int {
	if !g.inRange(u) {
		return nil
	}
	out := make([]int, 0, len(g.adj[u]))
	for v := range g.adj[u] {
		out = append(out, v)
	}
	return out
}

// Degrees returns the degree table: a slice d where d[v] == Degree(v).
//
// The table is recomputed on each call; the search engine builds it once
// after graph construction and shares the read-only slice across all trials.
func (g *Graph) Degrees() []int {
	d := make([]int, g.n)
	for v := range g.adj {
		d[v] = len(g.adj[v])
	}
	return d
}

// MeanDegree returns the average vertex degree, or 0 for an empty graph.
// The degree-plus-noise ordering strategy derives its default noise width
// from this value.
func (g *Graph) MeanDegree() float64 {
	if g.n == 0 {
		return 0
	}
	return float64(2*g.edges) / float64(g.n)
}

func (g *Graph) inRange(u int) bool { return u >= 0 && u < g.n }
