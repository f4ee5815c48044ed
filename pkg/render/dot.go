// Package render exports graphs to Graphviz DOT and rasterizes them,
// highlighting the clique found by a search.
package render

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/goccy/go-graphviz"

	"github.com/cliquekit/cliquekit/pkg/graph"
)

// Options configures DOT export.
type Options struct {
	// Highlight lists the vertices of the clique to emphasize. Members
	// are filled and the edges between them drawn bold.
	Highlight []int

	// Layout selects the Graphviz layout engine. Defaults to "neato",
	// which suits undirected graphs better than the hierarchical default.
	Layout string
}

// ToDOT converts an undirected graph to Graphviz DOT format.
// The result can be rasterized with [RenderSVG] or [RenderPNG].
func ToDOT(g *graph.Graph, opts Options) string {
	layout := opts.Layout
	if layout == "" {
		layout = "neato"
	}
	member := make(map[int]bool, len(opts.Highlight))
	for _, v := range opts.Highlight {
		member[v] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", layout)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for v := 0; v < g.VertexCount(); v++ {
		if member[v] {
			fmt.Fprintf(&buf, "  %d [fillcolor=gold, penwidth=2];\n", v)
		} else {
			fmt.Fprintf(&buf, "  %d;\n", v)
		}
	}

	buf.WriteString("\n")
	for u := 0; u < g.VertexCount(); u++ {
		ns := g.Neighbors(u)
		slices.Sort(ns)
		for _, v := range ns {
			if u >= v {
				continue
			}
			if member[u] && member[v] {
				fmt.Fprintf(&buf, "  %d -- %d [penwidth=3, color=goldenrod];\n", u, v)
			} else {
				fmt.Fprintf(&buf, "  %d -- %d;\n", u, v)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
