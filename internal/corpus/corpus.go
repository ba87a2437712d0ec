// Package corpus provides the (document-id, text) iterator the
// indexer is driven by. Corpus traversal and document-path mapping
// are explicitly out of the core's scope (spec.md §1); the
// implementations here are reference collaborators, not part of the
// indexed system itself.
package corpus

import (
	"context"
	"fmt"
)

// Document is one corpus document as handed to the indexer.
type Document struct {
	ID   int
	Text string
	Path string // opaque, only used to populate the doc-id map
}

// Iterator yields documents one at a time. Next returns ok=false with
// a nil error once the corpus is exhausted.
type Iterator interface {
	Next(ctx context.Context) (doc Document, ok bool, err error)
}

// Sink durably persists a document as it is read from a corpus, e.g.
// to a document store keyed by id, so a result id can later be
// resolved back to its source text. A failed BatchDocument is logged and
// skipped by the corpus reader; it never drops the document from the
// index itself.
type Sink interface {
	BatchDocument(ctx context.Context, doc Document) error
}

// ReadError wraps a single document's read failure. The indexer logs
// it and skips that document rather than aborting the build.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("corpus: failed to read %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// SliceCorpus is an in-memory corpus, useful for tests and for small
// embedded corpora assembled by the caller.
type SliceCorpus struct {
	docs []Document
	pos  int
}

// NewSliceCorpus assigns ids 1..len(texts) in order.
func NewSliceCorpus(texts []string) *SliceCorpus {
	docs := make([]Document, len(texts))
	for i, text := range texts {
		docs[i] = Document{ID: i + 1, Text: text}
	}
	return &SliceCorpus{docs: docs}
}

func (c *SliceCorpus) Next(ctx context.Context) (Document, bool, error) {
	if c.pos >= len(c.docs) {
		return Document{}, false, nil
	}
	doc := c.docs[c.pos]
	c.pos++
	return doc, true, nil
}
