package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cliquekit/cliquekit/pkg/clique"
)

func TestNewRun(t *testing.T) {
	res := clique.Result{
		Clique:  []int{0, 1, 2},
		Size:    3,
		Trials:  51,
		Elapsed: 1500 * time.Millisecond,
	}
	run := NewRun("triangle.clq", res)

	if run.ID == "" {
		t.Error("NewRun must assign an id")
	}
	if run.Dataset != "triangle.clq" || run.BestSize != 3 || run.Trials != 51 {
		t.Errorf("run fields not carried over: %+v", run)
	}
	if run.ElapsedMS != 1500 {
		t.Errorf("ElapsedMS = %d, want 1500", run.ElapsedMS)
	}
	if run.StartedAt.IsZero() {
		t.Error("StartedAt must be set")
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	run := NewRun("a.clq", clique.Result{Size: 4, Clique: []int{1, 2, 3, 4}})
	if err := s.Put(ctx, run); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Dataset != "a.clq" || got.BestSize != 4 {
		t.Errorf("Get() = %+v, want stored run", got)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_Overwrite(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	run := NewRun("a.clq", clique.Result{Size: 4})
	if err := s.Put(ctx, run); err != nil {
		t.Fatal(err)
	}
	run.BestSize = 9
	if err := s.Put(ctx, run); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.BestSize != 9 {
		t.Errorf("BestSize = %d after overwrite, want 9", got.BestSize)
	}
	runs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("List() returned %d runs after overwrite, want 1", len(runs))
	}
}

func TestMemoryStore_List(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		run := NewRun("a.clq", clique.Result{Size: i})
		ids = append(ids, run.ID)
		if err := s.Put(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.List(ctx, 3)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("List(3) returned %d runs", len(runs))
	}
	// Newest first: the last inserted id leads.
	if runs[0].ID != ids[4] {
		t.Errorf("List()[0].ID = %s, want %s (newest)", runs[0].ID, ids[4])
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Errorf("List(0) returned %d runs, want all 5", len(all))
	}
}
