package retriever

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"fts-hw/internal/corpus"
	"fts-hw/internal/index/indexer"
)

func buildTestIndex(t *testing.T) (triePath, statsPath string) {
	t.Helper()
	dir := t.TempDir()
	triePath = filepath.Join(dir, "trie.txt")
	statsPath = filepath.Join(dir, "stats.json")
	docmapPath := filepath.Join(dir, "docmap.json")

	texts := []string{
		"The blue car and the blue house, blue.",
		"The red car is fast. Another red car.",
		"The green house on the street. Just one house.",
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	ix := indexer.New(log)
	if err := ix.Build(context.Background(), corpus.NewSliceCorpus(texts), triePath, statsPath, docmapPath); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return triePath, statsPath
}

func TestRetrieverWorkedQueries(t *testing.T) {
	triePath, statsPath := buildTestIndex(t)

	r, err := Load(triePath, statsPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := r.Search("car AND blue"); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("car AND blue = %v, want [1]", got)
	}

	got := r.Search("(car AND blue) OR green")
	gotSet := map[int]struct{}{}
	for _, id := range got {
		gotSet[id] = struct{}{}
	}
	if !reflect.DeepEqual(gotSet, map[int]struct{}{1: {}, 3: {}}) {
		t.Fatalf("(car AND blue) OR green = %v, want set {1,3}", got)
	}

	got = r.Search("car OR house")
	if len(got) != 3 {
		t.Fatalf("car OR house = %v, want 3 results", got)
	}
	pos := map[int]int{}
	for i, id := range got {
		pos[id] = i
	}
	if pos[1] <= pos[2] || pos[1] <= pos[3] {
		t.Fatalf("expected doc 1 ranked last in car OR house, got %v", got)
	}

	if got := r.Search("(car AND blue"); len(got) != 0 {
		t.Fatalf("unbalanced paren query = %v, want empty (no error to caller)", got)
	}

	if got := r.Search("nosuchword"); len(got) != 0 {
		t.Fatalf("nosuchword = %v, want empty", got)
	}
}

func TestRetrieverNotReadyOnLoadFailure(t *testing.T) {
	dir := t.TempDir()
	r, err := Load(filepath.Join(dir, "missing-trie.txt"), filepath.Join(dir, "missing-stats.json"))
	if err == nil {
		t.Fatalf("expected Load error for missing files")
	}
	if got := r.Search("anything"); got != nil {
		t.Fatalf("not-ready retriever Search = %v, want nil", got)
	}
}
