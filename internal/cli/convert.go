package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cliquekit/cliquekit/pkg/graph"
	"github.com/cliquekit/cliquekit/pkg/graphio"
	"github.com/cliquekit/cliquekit/pkg/pipeline"
)

// convertCommand creates the convert command for translating graph formats.
func (c *CLI) convertCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert <input> [output]",
		Short: "Convert a graph between DIMACS, edge-list, and JSON formats",
		Long: `Convert a graph between DIMACS, edge-list, and JSON formats.

Formats are detected from file extensions (.clq/.col → dimacs, .json → json,
anything else → edgelist) and can be overridden with --from and --to. With no
output file the converted graph goes to stdout. The "adjacency" output format
prints one neighbor list per line and is read-only.

Examples:
  cliquekit convert brock200_2.clq graph.json
  cliquekit convert graph.txt --to dimacs
  cliquekit convert graph.json --to adjacency`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := ""
			if len(args) == 2 {
				output = args[1]
			}
			return c.runConvert(args[0], output, from, to)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "input format: dimacs, edgelist, json (default: by extension)")
	cmd.Flags().StringVar(&to, "to", "", "output format: dimacs, edgelist, json, adjacency (default: by extension)")

	return cmd
}

func (c *CLI) runConvert(input, output, from, to string) error {
	g, err := readGraphFrom(input, from)
	if err != nil {
		return err
	}

	if to == "" {
		if output == "" {
			return fmt.Errorf("either an output file or --to is required")
		}
		to = pipeline.DetectFormat(output)
	}

	out, path, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := writeGraphAs(g, out, to); err != nil {
		return err
	}
	if path != "" {
		printSuccess("Converted %s", input)
		printStats(g.VertexCount(), g.EdgeCount(), false)
		printFile(path)
	}
	return nil
}

// readGraphFrom parses a graph file with optional format override.
func readGraphFrom(path, format string) (*graph.Graph, error) {
	if format == "" {
		format = pipeline.DetectFormat(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch format {
	case pipeline.FormatDIMACS:
		return graphio.ReadDIMACS(f)
	case pipeline.FormatJSON:
		return graphio.ReadJSON(f)
	case pipeline.FormatEdgeList:
		return graphio.ReadEdgeList(f)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}
