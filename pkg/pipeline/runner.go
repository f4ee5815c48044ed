package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cliquekit/cliquekit/pkg/cache"
	"github.com/cliquekit/cliquekit/pkg/clique"
	apperrors "github.com/cliquekit/cliquekit/pkg/errors"
	"github.com/cliquekit/cliquekit/pkg/graph"
	"github.com/cliquekit/cliquekit/pkg/graphio"
	"github.com/cliquekit/cliquekit/pkg/history"
	"github.com/cliquekit/cliquekit/pkg/observability"
	"github.com/cliquekit/cliquekit/pkg/render"
)

// Runner executes pipelines with shared caching and history recording.
type Runner struct {
	cache   cache.Cache
	keyer   cache.Keyer
	history history.Store
	logger  *log.Logger
}

// NewRunner creates a runner. A nil cacheBackend disables caching, a nil
// store disables history recording, and a nil logger discards logs.
func NewRunner(cacheBackend cache.Cache, store history.Store, logger *log.Logger) *Runner {
	if cacheBackend == nil {
		cacheBackend = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		cache:   cacheBackend,
		keyer:   cache.NewDefaultKeyer(),
		history: store,
		logger:  logger,
	}
}

// History returns the runner's history store, or nil when recording is
// disabled.
func (r *Runner) History() history.Store { return r.history }

// Execute runs the complete load → search → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	logger := r.logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	result := &Result{Artifacts: map[string][]byte{}}

	// Stage 1: load.
	g, hash, hit, err := r.load(ctx, &opts, result, logger)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.GraphHash = hash
	result.CacheInfo.GraphHit = hit
	result.Stats.Vertices = g.VertexCount()
	result.Stats.Edges = g.EdgeCount()

	// Stage 2: search.
	if err := r.search(ctx, opts, result, logger); err != nil {
		return nil, err
	}

	// Stage 3: render.
	if len(opts.Artifacts) > 0 {
		if err := r.renderArtifacts(ctx, opts, result, logger); err != nil {
			return nil, err
		}
	}

	if opts.Record && r.history != nil {
		dataset := opts.Source
		if dataset == "" {
			dataset = opts.Dataset
		}
		run := history.NewRun(dataset, result.Search)
		run.GraphHash = result.GraphHash
		run.Vertices = result.Stats.Vertices
		run.Edges = result.Stats.Edges
		run.Workers = opts.Workers
		run.Seed = opts.Seed
		if err := r.history.Put(ctx, run); err != nil {
			logger.Warn("Failed to record run", "error", err)
		} else {
			result.RunID = run.ID
		}
	}

	return result, nil
}

// load parses the graph source, consulting the cache for previously parsed
// graphs. The cache stores graphs in the JSON interchange format keyed by
// the SHA-256 of the raw source bytes, so a re-run on an unchanged file
// skips format parsing entirely.
func (r *Runner) load(ctx context.Context, opts *Options, result *Result, logger *log.Logger) (*graph.Graph, string, bool, error) {
	start := time.Now()
	defer func() { result.Stats.LoadTime = time.Since(start) }()

	if opts.Graph != nil {
		data, err := graphio.MarshalJSON(opts.Graph)
		if err != nil {
			return nil, "", false, err
		}
		return opts.Graph, cache.Hash(data), false, nil
	}

	observability.Search().OnLoadStart(ctx, opts.Source)

	raw, err := os.ReadFile(opts.Source)
	if err != nil {
		err = apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "failed to read %s", opts.Source)
		observability.Search().OnLoadComplete(ctx, opts.Source, 0, 0, time.Since(start), err)
		return nil, "", false, err
	}

	sourceHash := cache.Hash(raw)
	key := r.keyer.GraphKey(sourceHash, cache.GraphKeyOpts{Format: opts.Format})

	if !opts.Refresh {
		if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
			if g, err := graphio.ReadJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				observability.Search().OnLoadComplete(ctx, opts.Source, g.VertexCount(), g.EdgeCount(), time.Since(start), nil)
				logger.Debug("Graph cache hit", "source", opts.Source)
				return g, cache.Hash(data), true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	var g *graph.Graph
	switch opts.Format {
	case FormatDIMACS:
		g, err = graphio.ReadDIMACS(bytes.NewReader(raw))
	case FormatJSON:
		g, err = graphio.ReadJSON(bytes.NewReader(raw))
	default:
		g, err = graphio.ReadEdgeList(bytes.NewReader(raw))
	}
	if err != nil {
		observability.Search().OnLoadComplete(ctx, opts.Source, 0, 0, time.Since(start), err)
		return nil, "", false, err
	}

	data, err := graphio.MarshalJSON(g)
	if err != nil {
		return nil, "", false, err
	}
	if err := r.cache.Set(ctx, key, data, cache.TTLGraph); err != nil {
		logger.Warn("Failed to cache graph", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}

	observability.Search().OnLoadComplete(ctx, opts.Source, g.VertexCount(), g.EdgeCount(), time.Since(start), nil)
	logger.Debug("Graph loaded",
		"source", opts.Source,
		"vertices", g.VertexCount(),
		"edges", g.EdgeCount(),
		"duration", time.Since(start))
	return g, cache.Hash(data), false, nil
}

// cachedResult is the wire form of a search result in the cache. Phase
// timings and wall time are run-specific, so only the outcome is stored.
type cachedResult struct {
	Clique []int `json:"clique"`
	Size   int   `json:"size"`
	Trials int   `json:"trials"`
}

// search runs the clique search. Results are cached only for seeded runs,
// where the outcome is a pure function of graph and parameters.
func (r *Runner) search(ctx context.Context, opts Options, result *Result, logger *log.Logger) error {
	start := time.Now()
	defer func() { result.Stats.SearchTime = time.Since(start) }()

	observability.Search().OnSearchStart(ctx, opts.Source, opts.Trials, opts.Workers)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var key string
	seeded := opts.Seed != 0
	if seeded {
		key = r.keyer.ResultKey(result.GraphHash, cache.ResultKeyOpts{
			Trials:       opts.Trials,
			Workers:      workers,
			NoiseWidth:   opts.NoiseWidth,
			Seed:         opts.Seed,
			Random:       opts.Weights.Random,
			Noise:        opts.Weights.Noise,
			Neighborhood: opts.Weights.Neighborhood,
		})
		if !opts.Refresh {
			if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
				var cached cachedResult
				if err := json.Unmarshal(data, &cached); err == nil && clique.IsClique(result.Graph, cached.Clique) {
					result.Search = clique.Result{
						Clique: cached.Clique,
						Size:   cached.Size,
						Trials: cached.Trials,
					}
					result.CacheInfo.ResultHit = true
					observability.Cache().OnCacheHit(ctx, "result")
					observability.Search().OnSearchComplete(ctx, opts.Source, cached.Size, time.Since(start), nil)
					logger.Debug("Result cache hit", "source", opts.Source, "size", cached.Size)
					return nil
				}
			}
			observability.Cache().OnCacheMiss(ctx, "result")
		}
	}

	searcher := clique.Searcher{
		Trials:     opts.Trials,
		Workers:    opts.Workers,
		NoiseWidth: opts.NoiseWidth,
		Weights:    opts.Weights,
		Seed:       opts.Seed,
		Profile:    opts.Profile,
		Progress:   opts.Progress,
	}

	searchCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	res, err := searcher.Run(searchCtx, result.Graph)
	result.Search = res
	observability.Search().OnSearchComplete(ctx, opts.Source, res.Size, time.Since(start), err)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeTimeout, err, "search interrupted after %d trials", res.Trials)
	}

	if seeded {
		data, err := json.Marshal(cachedResult{Clique: res.Clique, Size: res.Size, Trials: res.Trials})
		if err == nil {
			if err := r.cache.Set(ctx, key, data, cache.TTLResult); err != nil {
				logger.Warn("Failed to cache result", "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "result", len(data))
			}
		}
	}

	logger.Debug("Search complete",
		"source", opts.Source,
		"size", res.Size,
		"trials", res.Trials,
		"duration", res.Elapsed)
	return nil
}

// renderArtifacts produces the requested artifact formats from the best
// clique. DOT and JSON are cheap and never cached; SVG and PNG go through
// graphviz layout and are cached per graph, format and clique.
func (r *Runner) renderArtifacts(ctx context.Context, opts Options, result *Result, logger *log.Logger) error {
	start := time.Now()
	defer func() { result.Stats.RenderTime = time.Since(start) }()

	observability.Search().OnRenderStart(ctx, opts.Artifacts)

	dot := render.ToDOT(result.Graph, render.Options{Highlight: result.Search.Clique})
	cliqueHash := cache.Hash([]byte(dot))

	var renderErr error
	for _, format := range opts.Artifacts {
		switch format {
		case ArtifactDOT:
			result.Artifacts[format] = []byte(dot)
		case ArtifactJSON:
			data, err := json.MarshalIndent(struct {
				Clique []int `json:"clique"`
				Size   int   `json:"size"`
				Trials int   `json:"trials"`
			}{result.Search.Clique, result.Search.Size, result.Search.Trials}, "", "  ")
			if err != nil {
				renderErr = err
				break
			}
			result.Artifacts[format] = data
		case ArtifactSVG, ArtifactPNG:
			key := r.keyer.ArtifactKey(cliqueHash, format)
			if !opts.Refresh {
				if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
					observability.Cache().OnCacheHit(ctx, "artifact")
					result.Artifacts[format] = data
					result.CacheInfo.RenderHit = true
					continue
				}
				observability.Cache().OnCacheMiss(ctx, "artifact")
			}
			var data []byte
			var err error
			if format == ArtifactSVG {
				data, err = render.RenderSVG(dot)
			} else {
				data, err = render.RenderPNG(dot)
			}
			if err != nil {
				renderErr = apperrors.Wrap(apperrors.ErrCodeInternal, err, "failed to render %s", format)
				break
			}
			result.Artifacts[format] = data
			if err := r.cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
				logger.Warn("Failed to cache artifact", "format", format, "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
		if renderErr != nil {
			break
		}
	}

	observability.Search().OnRenderComplete(ctx, opts.Artifacts, time.Since(start), renderErr)
	if renderErr != nil {
		return renderErr
	}
	logger.Debug("Artifacts rendered", "formats", opts.Artifacts, "duration", time.Since(start))
	return nil
}
