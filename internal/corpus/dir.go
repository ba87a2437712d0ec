package corpus

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"fts-hw/internal/lib/logger/sl"
	clean "fts-hw/internal/utils/clean"
)

// DirCorpus walks a directory tree of .txt files and yields one
// document per file, id-assigned in sorted-path order for a
// reproducible build across runs on the same tree. Grounded on
// original_source/indexer.py's os.walk corpus loop (doc-id assignment
// order, relative path as the opaque doc-map value) and the teacher's
// services/loader.Loader (log-and-skip on a single bad file).
type DirCorpus struct {
	root  string
	log   *slog.Logger
	store Sink
	paths []string
	pos   int
	next  int
}

// NewDirCorpus discovers every *.txt file under root (sorted by
// relative path) without reading their contents yet; reads happen
// lazily in Next so one bad file doesn't block discovery of the rest.
// store, if non-nil, receives a copy of every document's cleaned text
// as it is read, for later retrieval by id (e.g. for display in search
// results); a nil store disables this and Next behaves exactly as
// before.
func NewDirCorpus(log *slog.Logger, root string, store Sink) (*DirCorpus, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".txt" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	return &DirCorpus{root: root, log: log, store: store, paths: paths, next: 1}, nil
}

// Next returns the next readable document, skipping (and logging) any
// file that fails to read, per spec.md §7 CorpusReadError semantics:
// the document id already reserved for a skipped file is not reused
// for anything, it is simply absent from the index.
func (c *DirCorpus) Next(ctx context.Context) (Document, bool, error) {
	for c.pos < len(c.paths) {
		path := c.paths[c.pos]
		c.pos++
		id := c.next
		c.next++

		data, err := os.ReadFile(path)
		if err != nil {
			c.log.Error("corpus: skipping unreadable document", "path", path, sl.Err(err))
			continue
		}

		rel, relErr := filepath.Rel(c.root, path)
		if relErr != nil {
			rel = path
		}

		doc := Document{
			ID:   id,
			Text: clean.Clean(string(data)),
			Path: rel,
		}

		if c.store != nil {
			if err := c.store.BatchDocument(ctx, doc); err != nil {
				c.log.Error("corpus: failed to persist document", "path", path, sl.Err(err))
			}
		}

		return doc, true, nil
	}
	return Document{}, false, nil
}
