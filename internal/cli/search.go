package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cliquekit/cliquekit/pkg/clique"
	"github.com/cliquekit/cliquekit/pkg/pipeline"
)

// searchOpts holds the command-line flags for the search command.
type searchOpts struct {
	trials    int     // randomized trials on top of the baseline
	workers   int     // worker pool size (0 = GOMAXPROCS)
	noise     float64 // noise half-width (0 = half the mean degree)
	seed      uint64  // rng seed (0 = fresh seed per run)
	weights   string  // strategy mix as "random,noise,neighborhood"
	profile   bool    // collect per-strategy phase timings
	repeat    int     // repetitions for statistics mode
	timeout   time.Duration
	format    string // source format override
	artifacts string // artifact formats to write, comma-separated
	output    string // artifact output directory
	refresh   bool   // bypass cache reads
	noCache   bool   // disable caching entirely
	record    bool   // store the run in history
	plain     bool   // disable the live progress display
}

// searchCommand creates the search command, the main entry point of the
// tool.
func (c *CLI) searchCommand() *cobra.Command {
	opts := searchOpts{
		trials:  c.Config.Search.Trials,
		workers: c.Config.Search.Workers,
		noise:   c.Config.Search.Noise,
		repeat:  1,
	}

	cmd := &cobra.Command{
		Use:   "search [graph-file]",
		Short: "Find a large clique with parallel randomized greedy search",
		Long: `Find a large clique with parallel randomized greedy search.

The search runs one deterministic baseline trial (vertices ordered by
descending degree) plus many randomized trials across a worker pool. Each
trial greedily extends a clique along its own vertex ordering; the largest
clique found by any trial wins.

Examples:
  cliquekit search brock200_2.clq
  cliquekit search brock200_2.clq --trials 10000 --seed 42
  cliquekit search graph.txt --artifacts svg,dot -o out/
  cliquekit search brock200_2.clq --repeat 20        # solution statistics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.trials, "trials", "t", opts.trials, "number of randomized trials (0 = default)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "worker pool size (0 = all CPUs)")
	cmd.Flags().Float64Var(&opts.noise, "noise", opts.noise, "degree perturbation half-width (0 = half the mean degree)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for reproducible runs (0 = random)")
	cmd.Flags().StringVar(&opts.weights, "weights", "", "strategy mix as random,noise,neighborhood (e.g. 1,2,1)")
	cmd.Flags().BoolVar(&opts.profile, "profile", false, "collect per-strategy timing statistics")
	cmd.Flags().IntVar(&opts.repeat, "repeat", opts.repeat, "repeat the search N times and report solution statistics")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "abort the search after this duration")
	cmd.Flags().StringVar(&opts.format, "format", "", "source format: dimacs, edgelist, json (default: by extension)")
	cmd.Flags().StringVar(&opts.artifacts, "artifacts", "", "artifact formats to write: dot, svg, png, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "artifact output directory (default: current directory)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache reads")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.record, "record", false, "record the run in history (requires MongoDB)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "disable the live progress display")

	return cmd
}

func (c *CLI) runSearch(ctx context.Context, input string, opts *searchOpts) error {
	weights, err := parseWeights(opts.weights, c.Config.Search.Weights)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	if opts.record && runner.History() == nil {
		printWarning("--record has no effect without a MongoDB store (see 'cliquekit runs --help')")
	}

	pipeOpts := pipeline.Options{
		Source:     input,
		Format:     opts.format,
		Trials:     opts.trials,
		Workers:    opts.workers,
		NoiseWidth: opts.noise,
		Weights:    weights,
		Seed:       opts.seed,
		Profile:    opts.profile,
		Timeout:    opts.timeout,
		Artifacts:  parseArtifacts(opts.artifacts),
		Refresh:    opts.refresh,
		Record:     opts.record,
		Logger:     c.Logger,
	}

	if opts.repeat > 1 {
		pipeOpts.Artifacts = nil
		return c.runRepeated(ctx, runner, input, pipeOpts, opts.repeat)
	}

	var res *pipeline.Result
	if opts.plain || !isatty.IsTerminal(os.Stderr.Fd()) {
		prog := newProgress(c.Logger)
		res, err = runner.Execute(ctx, pipeOpts)
		if err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Found clique of size %d in %d trials", res.Search.Size, res.Search.Trials))
	} else {
		res, err = c.runWithTUI(ctx, runner, input, pipeOpts)
		if err != nil {
			return err
		}
	}

	printSearchResult(input, res)
	if opts.profile {
		printProfile(res.Search.Phases)
	}
	if len(pipeOpts.Artifacts) > 0 {
		if err := writeArtifacts(res, input, opts.output); err != nil {
			return err
		}
	}
	return nil
}

// runWithTUI executes the pipeline behind a live progress display.
func (c *CLI) runWithTUI(ctx context.Context, runner *pipeline.Runner, input string, pipeOpts pipeline.Options) (*pipeline.Result, error) {
	trials := pipeOpts.Trials
	if trials <= 0 {
		trials = pipeline.DefaultTrials
	}
	program, send := newSearchProgram(filepath.Base(input), trials+1)
	pipeOpts.Progress = send

	type outcome struct {
		res *pipeline.Result
		err error
	}
	results := make(chan outcome, 1)
	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		res, err := runner.Execute(searchCtx, pipeOpts)
		results <- outcome{res, err}
		program.Send(searchDoneMsg{})
	}()

	final, err := program.Run()
	if err != nil {
		cancel()
		<-results
		return nil, err
	}
	if m, ok := final.(SearchModel); ok && m.Aborted() {
		cancel()
	}
	out := <-results
	return out.res, out.err
}

// runRepeated runs the same search repeatedly and reports solution quality
// statistics instead of a single result. Seeded runs offset the seed per
// repetition so the repetitions differ but the series stays reproducible.
func (c *CLI) runRepeated(ctx context.Context, runner *pipeline.Runner, input string, pipeOpts pipeline.Options, repeat int) error {
	sizes := make([]int, 0, repeat)
	var totalElapsed time.Duration
	spinner := newSpinner(ctx, fmt.Sprintf("Repetition 1/%d", repeat))
	spinner.Start()

	for i := 0; i < repeat; i++ {
		spinner.SetMessage(fmt.Sprintf("Repetition %d/%d", i+1, repeat))
		runOpts := pipeOpts
		if runOpts.Seed != 0 {
			runOpts.Seed += uint64(i)
		}
		res, err := runner.Execute(ctx, runOpts)
		if err != nil {
			spinner.StopWithError(fmt.Sprintf("Repetition %d failed", i+1))
			return err
		}
		sizes = append(sizes, res.Search.Size)
		totalElapsed += res.Search.Elapsed
	}
	spinner.StopWithSuccess(fmt.Sprintf("Completed %d repetitions", repeat))

	printStatistics(input, sizes, totalElapsed)
	return nil
}

// parseWeights parses the --weights flag, falling back to the config file
// mix and then to the built-in default.
func parseWeights(s string, cfg WeightsConfig) (clique.Weights, error) {
	if s == "" {
		if cfg.Random+cfg.Noise+cfg.Neighborhood > 0 {
			return clique.Weights{Random: cfg.Random, Noise: cfg.Noise, Neighborhood: cfg.Neighborhood}, nil
		}
		return clique.Weights{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return clique.Weights{}, fmt.Errorf("weights must be three comma-separated integers, got %q", s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 {
			return clique.Weights{}, fmt.Errorf("invalid weight %q", p)
		}
		vals[i] = v
	}
	return clique.Weights{Random: vals[0], Noise: vals[1], Neighborhood: vals[2]}, nil
}

// =============================================================================
// Output
// =============================================================================

// printSearchResult prints the found clique and run summary.
func printSearchResult(input string, res *pipeline.Result) {
	printSuccess("Found clique of size %s in %s",
		StyleHighlight.Render(fmt.Sprintf("%d", res.Search.Size)),
		filepath.Base(input))
	printStats(res.Stats.Vertices, res.Stats.Edges, res.CacheInfo.ResultHit)
	printKeyValue("clique", formatVertices(res.Search.Clique))
	printKeyValue("trials", fmt.Sprintf("%d", res.Search.Trials))
	if res.Search.Elapsed > 0 {
		printKeyValue("elapsed", res.Search.Elapsed.Round(time.Millisecond).String())
	}
	if res.RunID != "" {
		printKeyValue("run", res.RunID)
	}
}

// printProfile prints per-strategy timing statistics.
func printProfile(phases map[string]clique.PhaseStats) {
	if len(phases) == 0 {
		return
	}
	printNewline()
	printInfo("Strategy profile")

	names := make([]string, 0, len(phases))
	for name := range phases {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		st := phases[name]
		printDetail("%-14s %6d trials  order %8s  extend %8s",
			name, st.Trials,
			st.Ordering.Round(time.Microsecond),
			st.Extension.Round(time.Microsecond))
	}
}

// printStatistics prints min/max/mean/stddev over repeated searches.
func printStatistics(input string, sizes []int, elapsed time.Duration) {
	minSize, maxSize := sizes[0], sizes[0]
	sum := 0
	for _, s := range sizes {
		if s < minSize {
			minSize = s
		}
		if s > maxSize {
			maxSize = s
		}
		sum += s
	}
	mean := float64(sum) / float64(len(sizes))

	variance := 0.0
	for _, s := range sizes {
		d := float64(s) - mean
		variance += d * d
	}
	variance /= float64(len(sizes))

	printNewline()
	printInfo("Solution statistics for %s over %d repetitions", filepath.Base(input), len(sizes))
	printKeyValue("min", fmt.Sprintf("%d", minSize))
	printKeyValue("max", fmt.Sprintf("%d", maxSize))
	printKeyValue("mean", fmt.Sprintf("%.2f", mean))
	printKeyValue("stddev", fmt.Sprintf("%.2f", math.Sqrt(variance)))
	printKeyValue("elapsed", elapsed.Round(time.Millisecond).String())
}

// formatVertices renders a vertex list, truncating long cliques.
func formatVertices(vs []int) string {
	const maxShown = 16
	parts := make([]string, 0, len(vs))
	for i, v := range vs {
		if i == maxShown {
			parts = append(parts, fmt.Sprintf("… +%d more", len(vs)-maxShown))
			break
		}
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, " ")
}

// writeArtifacts writes rendered artifacts next to the input or under dir.
func writeArtifacts(res *pipeline.Result, input, dir string) error {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	printNewline()
	for format, data := range res.Artifacts {
		path := filepath.Join(dir, base+"."+format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
