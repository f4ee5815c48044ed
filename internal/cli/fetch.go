package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cliquekit/cliquekit/pkg/httputil"
)

// fetchCommand creates the fetch command for downloading benchmark graphs.
func (c *CLI) fetchCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download a benchmark graph file",
		Long: `Download a benchmark graph file over HTTP.

Transient server errors are retried with exponential backoff. The output
file name defaults to the last path segment of the URL.

Example:
  cliquekit fetch https://example.org/benchmarks/brock200_2.clq`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: URL file name)")

	return cmd
}

func (c *CLI) runFetch(ctx context.Context, rawURL, output string) error {
	if output == "" {
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("invalid url %s: %w", rawURL, err)
		}
		output = path.Base(u.Path)
		if output == "." || output == "/" {
			return fmt.Errorf("cannot derive a file name from %s, use --output", rawURL)
		}
	}

	spinner := newSpinner(ctx, "Downloading "+rawURL)
	spinner.Start()

	data, err := httputil.Fetch(ctx, rawURL)
	if err != nil {
		spinner.StopWithError("Download failed")
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		spinner.StopWithError("Write failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Downloaded %d bytes", len(data)))
	printFile(output)
	printNextStep("Search it", fmt.Sprintf("cliquekit search %s", filepath.Base(output)))
	return nil
}
