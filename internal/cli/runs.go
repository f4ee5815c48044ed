package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cliquekit/cliquekit/pkg/history"
	"github.com/cliquekit/cliquekit/pkg/pipeline"
)

// runsCommand creates the runs command for inspecting recorded searches.
func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded search runs",
		Long: `Inspect search runs recorded with --record.

Run history requires a MongoDB store, configured via the [mongo] section of
the config file or the CLIQUEKIT_MONGO_URI environment variable.`,
	}

	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsShowCommand())

	return cmd
}

// runsListCommand creates the "runs list" subcommand.
func (c *CLI) runsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.requireHistory(cmd)
			if err != nil {
				return err
			}
			defer store.Close(cmd.Context())

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				printInfo("No recorded runs")
				return nil
			}
			for _, run := range runs {
				fmt.Printf("%s  %-24s  size %-3d  %6d trials  %s\n",
					StyleDim.Render(run.ID[:8]),
					run.Dataset,
					run.BestSize,
					run.Trials,
					StyleDim.Render(run.StartedAt.Local().Format(time.DateTime)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", pipeline.DefaultHistoryLimit, "maximum runs to list (0 = all)")

	return cmd
}

// runsShowCommand creates the "runs show" subcommand.
func (c *CLI) runsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.requireHistory(cmd)
			if err != nil {
				return err
			}
			defer store.Close(cmd.Context())

			run, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(run)
		},
	}
}

// requireHistory returns the configured history store or a helpful error.
func (c *CLI) requireHistory(cmd *cobra.Command) (history.Store, error) {
	store, err := c.newHistory(cmd.Context())
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("no history store configured (set [mongo] uri in %s or CLIQUEKIT_MONGO_URI)", DefaultConfigPath())
	}
	return store, nil
}
