package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cliquekit/cliquekit/pkg/clique"
	"github.com/cliquekit/cliquekit/pkg/history"
	"github.com/cliquekit/cliquekit/pkg/pipeline"
)

func newTestServer(t *testing.T) (*Server, history.Store) {
	t.Helper()
	store := history.NewMemoryStore()
	runner := pipeline.NewRunner(nil, store, nil)
	return New(runner, nil), store
}

func postSearch(t *testing.T, handler http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestSearchSubmittedGraph(t *testing.T) {
	srv, store := newTestServer(t)
	handler := srv.Handler()

	rec := postSearch(t, handler, searchRequest{
		Graph: &graphPayload{
			Vertices: 5,
			Edges:    [][2]int{{0, 1}, {0, 2}, {1, 2}, {2, 3}},
		},
		Dataset: "triangle",
		Trials:  20,
		Seed:    7,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Size != 3 {
		t.Errorf("size = %d, want 3", resp.Size)
	}
	if resp.Vertices != 5 || resp.Edges != 4 {
		t.Errorf("shape = (%d, %d), want (5, 4)", resp.Vertices, resp.Edges)
	}
	if resp.RunID == "" {
		t.Fatal("expected a recorded run id")
	}

	run, err := store.Get(context.Background(), resp.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if run.Dataset != "triangle" {
		t.Errorf("dataset = %q, want triangle", run.Dataset)
	}
	if run.BestSize != 3 {
		t.Errorf("recorded size = %d, want 3", run.BestSize)
	}
}

func TestSearchGeneratedGraph(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postSearch(t, srv.Handler(), searchRequest{
		Generate: &generatePayload{Vertices: 30, Probability: 0.5, Seed: 3},
		Trials:   20,
		Weights:  &struct {
			Random       int `json:"random"`
			Noise        int `json:"noise"`
			Neighborhood int `json:"neighborhood"`
		}{Random: 1},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Size < 2 {
		t.Errorf("size = %d, want at least an edge clique", resp.Size)
	}
}

func TestSearchValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	cases := []struct {
		name string
		req  searchRequest
	}{
		{"no graph", searchRequest{}},
		{"both sources", searchRequest{
			Graph:    &graphPayload{Vertices: 1},
			Generate: &generatePayload{Vertices: 1},
		}},
		{"bad edge", searchRequest{
			Graph: &graphPayload{Vertices: 2, Edges: [][2]int{{0, 5}}},
		}},
		{"bad probability", searchRequest{
			Generate: &generatePayload{Vertices: 10, Probability: 1.5},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postSearch(t, handler, tc.req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSearchMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/search", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListRuns(t *testing.T) {
	srv, store := newTestServer(t)

	for _, ds := range []string{"a", "b", "c"} {
		run := history.NewRun(ds, clique.Result{Clique: []int{0, 1}, Size: 2, Trials: 1})
		if err := store.Put(context.Background(), run); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/runs?limit=2", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var runs []history.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &runs); err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("got %d runs, want 2", len(runs))
	}
}

func TestListRunsBadLimit(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/runs?limit=x", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetRun(t *testing.T) {
	srv, store := newTestServer(t)

	run := history.NewRun("graph.txt", clique.Result{Clique: []int{0, 1, 2}, Size: 3, Trials: 11})
	if err := store.Put(context.Background(), run); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/runs/"+run.ID, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got history.Run
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != run.ID || got.BestSize != 3 {
		t.Errorf("got run %+v", got)
	}
}

func TestGetRunNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/runs/does-not-exist", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
