// Package history records completed searches so repeated experiments can be
// compared across runs.
//
// A Run captures the dataset, the search parameters and the outcome of one
// search. The Store interface has two implementations:
//
//   - memory: in-process storage for tests and the embedded server
//   - mongo: MongoDB-backed storage for persisted experiment series
//
// # Usage
//
//	run := history.NewRun("brock200_2.clq", res)
//	if err := store.Put(ctx, run); err != nil {
//	    return err
//	}
//
//	runs, err := store.List(ctx, 20)
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cliquekit/cliquekit/pkg/clique"
)

// ErrNotFound is returned by [Store.Get] when no run has the given id.
var ErrNotFound = errors.New("run not found")

// Run is one recorded search.
type Run struct {
	ID        string    `json:"id" bson:"id"`
	Dataset   string    `json:"dataset" bson:"dataset"`
	GraphHash string    `json:"graph_hash,omitempty" bson:"graph_hash,omitempty"`
	Vertices  int       `json:"vertices" bson:"vertices"`
	Edges     int       `json:"edges" bson:"edges"`
	Trials    int       `json:"trials" bson:"trials"`
	Workers   int       `json:"workers" bson:"workers"`
	Seed      uint64    `json:"seed" bson:"seed"`
	BestSize  int       `json:"best_size" bson:"best_size"`
	Clique    []int     `json:"clique" bson:"clique"`
	ElapsedMS int64     `json:"elapsed_ms" bson:"elapsed_ms"`
	StartedAt time.Time `json:"started_at" bson:"started_at"`
}

// NewRun builds a Run from a search result with a fresh id and timestamp.
// Graph shape, hash and parameter fields are left for the caller to fill.
func NewRun(dataset string, res clique.Result) Run {
	return Run{
		ID:        uuid.NewString(),
		Dataset:   dataset,
		Trials:    res.Trials,
		BestSize:  res.Size,
		Clique:    res.Clique,
		ElapsedMS: res.Elapsed.Milliseconds(),
		StartedAt: time.Now().UTC(),
	}
}

// Store persists runs. Implementations must be safe for concurrent use.
type Store interface {
	// Put saves a run.
	Put(ctx context.Context, run Run) error

	// Get returns the run with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (Run, error)

	// List returns up to limit runs, newest first. limit <= 0 returns
	// all runs.
	List(ctx context.Context, limit int) ([]Run, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
