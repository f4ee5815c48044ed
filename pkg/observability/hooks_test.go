package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Search hooks
	s := NoopSearchHooks{}
	s.OnLoadStart(ctx, "brock200_2.clq")
	s.OnLoadComplete(ctx, "brock200_2.clq", 200, 9876, time.Second, nil)
	s.OnSearchStart(ctx, "brock200_2.clq", 1000, 8)
	s.OnSearchComplete(ctx, "brock200_2.clq", 12, time.Second, nil)
	s.OnRenderStart(ctx, []string{"svg"})
	s.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "graph")
	c.OnCacheMiss(ctx, "result")
	c.OnCacheSet(ctx, "artifact", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/api/search")
	h.OnResponse(ctx, "POST", "/api/search", 200, time.Second)
}

type testSearchHooks struct {
	NoopSearchHooks
	searches int
}

func (h *testSearchHooks) OnSearchStart(ctx context.Context, source string, trials, workers int) {
	h.searches++
}

type testCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *testCacheHooks) OnCacheHit(ctx context.Context, keyType string) { h.hits++ }

type testHTTPHooks struct {
	NoopHTTPHooks
	requests int
}

func (h *testHTTPHooks) OnRequest(ctx context.Context, method, path string) { h.requests++ }

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	// Verify defaults are noop
	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Search() should return NoopSearchHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customSearch := &testSearchHooks{}
	SetSearchHooks(customSearch)
	if Search() != customSearch {
		t.Error("SetSearchHooks should set custom hooks")
	}
	Search().OnSearchStart(context.Background(), "g.clq", 10, 1)
	if customSearch.searches != 1 {
		t.Error("custom search hooks should receive events")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Search().(NoopSearchHooks); !ok {
		t.Error("Reset() should restore NoopSearchHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSearchHooks{}
	SetSearchHooks(custom)
	SetSearchHooks(nil)
	if Search() != custom {
		t.Error("SetSearchHooks(nil) should be ignored")
	}

	SetCacheHooks(nil)
	if Cache() == nil {
		t.Error("SetCacheHooks(nil) should be ignored")
	}
	SetHTTPHooks(nil)
	if HTTP() == nil {
		t.Error("SetHTTPHooks(nil) should be ignored")
	}

	Reset()
}
