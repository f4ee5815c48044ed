package cli

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cliquekit/cliquekit/pkg/clique"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"search", "gen", "convert", "render", "runs", "cache", "serve", "fetch", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	os.Unsetenv("XDG_CACHE_HOME")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join("/tmp/custom-cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestParseArtifacts(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"dot,svg,png", []string{"dot", "svg", "png"}},
		{" dot , svg ", []string{"dot", "svg"}},
		{",,", nil},
	}
	for _, tt := range tests {
		got := parseArtifacts(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseArtifacts(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseWeights(t *testing.T) {
	got, err := parseWeights("1,2,3", WeightsConfig{})
	if err != nil {
		t.Fatal(err)
	}
	want := clique.Weights{Random: 1, Noise: 2, Neighborhood: 3}
	if got != want {
		t.Errorf("parseWeights = %+v, want %+v", got, want)
	}
}

func TestParseWeightsConfigFallback(t *testing.T) {
	got, err := parseWeights("", WeightsConfig{Random: 2, Neighborhood: 1})
	if err != nil {
		t.Fatal(err)
	}
	want := clique.Weights{Random: 2, Neighborhood: 1}
	if got != want {
		t.Errorf("parseWeights = %+v, want %+v", got, want)
	}
}

func TestParseWeightsEmpty(t *testing.T) {
	got, err := parseWeights("", WeightsConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if got != (clique.Weights{}) {
		t.Errorf("parseWeights = %+v, want zero value", got)
	}
}

func TestParseWeightsInvalid(t *testing.T) {
	for _, in := range []string{"1,2", "a,b,c", "1,-2,3", "1,2,3,4"} {
		if _, err := parseWeights(in, WeightsConfig{}); err == nil {
			t.Errorf("parseWeights(%q) should fail", in)
		}
	}
}

func TestFormatVertices(t *testing.T) {
	short := formatVertices([]int{4, 8, 15})
	if short != "4 8 15" {
		t.Errorf("formatVertices = %q", short)
	}

	long := make([]int, 20)
	for i := range long {
		long[i] = i
	}
	got := formatVertices(long)
	if !strings.Contains(got, "+4 more") {
		t.Errorf("formatVertices should truncate, got %q", got)
	}
}
