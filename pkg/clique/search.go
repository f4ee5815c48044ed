package clique

import (
	"context"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cliquekit/cliquekit/pkg/graph"
)

// Default search parameters. Trial and worker counts were hand-tuned per
// dataset in earlier experiments; treat them as starting points, not
// recommendations.
const (
	// DefaultTrials is the number of randomized trials run in addition to
	// the mandatory degree-descending baseline.
	DefaultTrials = 1000
)

// Weights selects how often each randomized strategy is drawn for a trial.
// A zero weight disables the strategy; all-zero weights fall back to the
// uniform-random strategy only.
type Weights struct {
	Random       int // uniform-random permutation
	Noise        int // degree-plus-noise ranking
	Neighborhood int // neighborhood-seeded ordering
}

// DefaultWeights gives every randomized strategy an equal share.
var DefaultWeights = Weights{Random: 1, Noise: 1, Neighborhood: 1}

// PhaseStats aggregates per-strategy timing across all trials that ran the
// strategy. Collected only when [Searcher.Profile] is set; diagnostic
// output, not part of the search contract.
type PhaseStats struct {
	Trials    int           // trials that used this strategy
	Ordering  time.Duration // total time building visitation orders
	Extension time.Duration // total time in the greedy pass
}

// Result is the outcome of one search.
type Result struct {
	Clique  []int         // best clique found, pairwise adjacent
	Size    int           // len(Clique)
	Trials  int           // trials completed, including the baseline
	Elapsed time.Duration // wall time of the parallel phase

	// Phases maps strategy name to aggregated timings.
	// Nil unless profiling was enabled.
	Phases map[string]PhaseStats
}

// Searcher runs the parallel multi-start greedy search.
//
// Fields may be left at their zero values; Run substitutes defaults. A
// Searcher is stateless across runs and may be reused, but a single Run
// call owns its worker pool exclusively.
type Searcher struct {
	// Trials is the number of randomized trials on top of the baseline.
	// Defaults to DefaultTrials when <= 0.
	Trials int

	// Workers sizes the worker pool. Defaults to runtime.GOMAXPROCS(0).
	Workers int

	// NoiseWidth is the half-width of the uniform perturbation used by the
	// degree-plus-noise and neighborhood-seeded strategies. <= 0 derives
	// half the graph's mean degree.
	NoiseWidth float64

	// Weights selects the randomized strategy mix. Zero value means
	// DefaultWeights.
	Weights Weights

	// Seed makes the randomized trials reproducible for a fixed worker
	// count. Zero draws a fresh seed per run.
	Seed uint64

	// Profile enables per-strategy phase timing collection.
	Profile bool

	// Progress, when non-nil, is called after every completed trial with
	// the number of finished trials and the current best size. It runs on
	// worker goroutines and must be cheap and safe for concurrent use.
	Progress func(done, best int)
}

// Run executes the search on g and returns the best clique found.
//
// The mandatory deterministic baseline (degree-descending order) runs
// first, then Trials randomized trials fan out across the worker pool.
// Each worker owns one random source for its whole lifetime; trials own
// their visitation orders and candidate buffers exclusively, so the reducer
// is the only synchronization point.
//
// An empty graph yields an empty clique and no error. If ctx is cancelled
// mid-search, Run stops drawing new trials and returns the best result so
// far together with ctx.Err().
func (s *Searcher) Run(ctx context.Context, g *graph.Graph) (Result, error) {
	trials := s.Trials
	if trials <= 0 {
		trials = DefaultTrials
	}
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	weights := s.Weights
	if weights == (Weights{}) {
		weights = DefaultWeights
	}
	seed := s.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	start := time.Now()
	degrees := g.Degrees()

	var (
		red      Reducer
		done     atomic.Int64
		profMu   sync.Mutex
		profiles map[string]PhaseStats
	)
	if s.Profile {
		profiles = make(map[string]PhaseStats)
	}

	runTrial := func(strat Strategy, rng *rand.Rand) {
		ordStart := time.Now()
		order := strat.Order(g, degrees, rng)
		ordElapsed := time.Since(ordStart)

		extStart := time.Now()
		candidate := Extend(g, order)
		extElapsed := time.Since(extStart)

		red.Offer(candidate)
		n := done.Add(1)

		if s.Profile {
			profMu.Lock()
			p := profiles[strat.Name()]
			p.Trials++
			p.Ordering += ordElapsed
			p.Extension += extElapsed
			profiles[strat.Name()] = p
			profMu.Unlock()
		}
		if s.Progress != nil {
			s.Progress(int(n), red.Size())
		}
	}

	// Baseline first: deterministic and reproducible in isolation.
	runTrial(DegreeDescending{}, nil)

	var (
		next atomic.Int64
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			// One random source per worker, reused across all its
			// trials; per-trial seeding is wasted setup cost.
			rng := rand.New(rand.NewPCG(seed, uint64(id)+1))
			for {
				if ctx.Err() != nil {
					return
				}
				if next.Add(1) > int64(trials) {
					return
				}
				runTrial(s.pick(weights, rng), rng)
			}
		}(w)
	}
	wg.Wait()

	best := red.Best()
	if !IsClique(g, best) {
		// Can only happen through an Extend defect; the process state is
		// inconsistent and must not be reported as a result.
		panic("clique: best candidate violates pairwise adjacency")
	}

	res := Result{
		Clique:  best,
		Size:    len(best),
		Trials:  int(done.Load()),
		Elapsed: time.Since(start),
		Phases:  profiles,
	}
	return res, ctx.Err()
}

// pick draws one randomized strategy according to the weight mix.
func (s *Searcher) pick(w Weights, rng *rand.Rand) Strategy {
	total := w.Random + w.Noise + w.Neighborhood
	if total <= 0 {
		return UniformRandom{}
	}
	r := rng.IntN(total)
	switch {
	case r < w.Random:
		return UniformRandom{}
	case r < w.Random+w.Noise:
		return DegreePlusNoise{Width: s.NoiseWidth}
	default:
		return NeighborhoodSeeded{Width: s.NoiseWidth}
	}
}
