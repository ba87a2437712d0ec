package leveldb

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"fts-hw/internal/corpus"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "docs.db")
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	s, err := NewStorage(log, dir)
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	t.Cleanup(func() {
		s.StopWorkers()
		s.Close()
	})
	return s
}

func TestSaveAndGetDocument(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	doc := corpus.Document{ID: 1, Text: "blue car", Path: "a.txt"}
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}

	got, err := s.GetDocument(ctx, 1)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got != doc {
		t.Fatalf("got %+v, want %+v", got, doc)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	s := newTestStorage(t)
	if _, err := s.GetDocument(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetDocument(missing) err = %v, want ErrNotFound", err)
	}
}

func TestDeleteDocument(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	doc := corpus.Document{ID: 2, Text: "red house"}
	if err := s.SaveDocument(ctx, doc); err != nil {
		t.Fatalf("SaveDocument: %v", err)
	}
	if err := s.DeleteDocument(ctx, 2); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if _, err := s.GetDocument(ctx, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetDocument(deleted) err = %v, want ErrNotFound", err)
	}
}

// TestBatchDocumentSatisfiesCorpusSink pins *Storage to corpus.Sink at
// compile time: corpus.DirCorpus is constructed with exactly this
// interface.
func TestBatchDocumentSatisfiesCorpusSink(t *testing.T) {
	var _ corpus.Sink = (*Storage)(nil)

	dir := filepath.Join(t.TempDir(), "docs.db")
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	s, err := NewStorage(log, dir)
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	doc := corpus.Document{ID: 3, Text: "green street"}
	if err := s.BatchDocument(ctx, doc); err != nil {
		t.Fatalf("BatchDocument: %v", err)
	}
	s.StopWorkers() // flushes the pending batch synchronously

	got, err := s.GetDocument(ctx, 3)
	if err != nil {
		t.Fatalf("GetDocument after batch flush: %v", err)
	}
	if got != doc {
		t.Fatalf("got %+v, want %+v", got, doc)
	}
}
