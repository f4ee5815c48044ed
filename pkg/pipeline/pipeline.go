// Package pipeline provides the core search pipeline for cliquekit.
//
// This package implements the complete load → search → render pipeline
// used by both the CLI and the HTTP server. Centralizing it keeps caching,
// history recording and stage timing consistent across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse a graph from a DIMACS, edge-list, or JSON source
//  2. Search: Run the parallel multi-start greedy clique search
//  3. Render: Generate optional artifacts (DOT, SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source: "brock200_2.clq",
//	    Trials: 5000,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Search.Size)
package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cliquekit/cliquekit/pkg/clique"
	apperrors "github.com/cliquekit/cliquekit/pkg/errors"
	"github.com/cliquekit/cliquekit/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultTrials matches clique.DefaultTrials; duplicated here so the
	// pipeline layer has one place that owns user-facing defaults.
	DefaultTrials = clique.DefaultTrials

	// DefaultHistoryLimit is how many runs listing endpoints return when
	// no limit is given.
	DefaultHistoryLimit = 20
)

// Graph source formats.
const (
	FormatDIMACS   = "dimacs"
	FormatEdgeList = "edgelist"
	FormatJSON     = "json"
)

// Artifact output formats.
const (
	ArtifactDOT  = "dot"
	ArtifactSVG  = "svg"
	ArtifactPNG  = "png"
	ArtifactJSON = "json"
)

// ValidFormats is the set of supported graph source formats.
var ValidFormats = map[string]bool{
	FormatDIMACS:   true,
	FormatEdgeList: true,
	FormatJSON:     true,
}

// ValidArtifacts is the set of supported artifact formats.
var ValidArtifacts = map[string]bool{
	ArtifactDOT:  true,
	ArtifactSVG:  true,
	ArtifactPNG:  true,
	ArtifactJSON: true,
}

// DetectFormat guesses the source format from a file extension.
// Unknown extensions default to the edge-list format.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".clq", ".dimacs", ".col":
		return FormatDIMACS
	case ".json":
		return FormatJSON
	default:
		return FormatEdgeList
	}
}

// Options configures a pipeline execution.
type Options struct {
	// Source is the path of the graph file to load. Exactly one of
	// Source and Graph must be set.
	Source string

	// Format is the source format; empty auto-detects from the Source
	// extension.
	Format string

	// Graph supplies a pre-built graph, skipping the load stage (used by
	// the gen command and the server).
	Graph *graph.Graph

	// Dataset names the graph in recorded runs when there is no source
	// file.
	Dataset string

	// Search parameters, passed through to clique.Searcher.
	Trials     int
	Workers    int
	NoiseWidth float64
	Weights    clique.Weights
	Seed       uint64
	Profile    bool

	// Timeout bounds the search stage. Zero means no timeout.
	Timeout time.Duration

	// Artifacts lists the artifact formats to render after the search.
	Artifacts []string

	// Refresh bypasses cache reads (results are still written back).
	Refresh bool

	// Record stores the run in the configured history store.
	Record bool

	// Progress is forwarded to clique.Searcher.
	Progress func(done, best int)

	// Logger overrides the runner's logger for this execution.
	Logger *log.Logger
}

// ValidateAndSetDefaults checks the options and fills defaults in place.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Source == "" && o.Graph == nil {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "either a source file or a graph is required")
	}
	if o.Source != "" && o.Graph != nil {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "source file and pre-built graph are mutually exclusive")
	}
	if o.Format == "" && o.Source != "" {
		o.Format = DetectFormat(o.Source)
	}
	if o.Format != "" && !ValidFormats[o.Format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown graph format %q", o.Format)
	}
	if o.Trials < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "trials must be non-negative, got %d", o.Trials)
	}
	if o.Trials == 0 {
		o.Trials = DefaultTrials
	}
	if o.Workers < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "workers must be non-negative, got %d", o.Workers)
	}
	for _, a := range o.Artifacts {
		if !ValidArtifacts[a] {
			return apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown artifact format %q", a)
		}
	}
	return nil
}

// Stats aggregates per-stage timings and graph shape for one execution.
type Stats struct {
	LoadTime   time.Duration
	SearchTime time.Duration
	RenderTime time.Duration
	Vertices   int
	Edges      int
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	GraphHit  bool
	ResultHit bool
	RenderHit bool
}

// Result is the complete outcome of a pipeline execution.
type Result struct {
	Graph     *graph.Graph
	GraphHash string
	Search    clique.Result
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo

	// RunID is set when the run was recorded to history.
	RunID string
}
