// Package indexer drives a single pass over a corpus, building the
// radix trie and term statistics table and persisting both (plus the
// opaque document-id map) to disk.
package indexer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"time"

	"fts-hw/internal/corpus"
	"fts-hw/internal/docmap"
	"fts-hw/internal/index/stats"
	"fts-hw/internal/index/trie"
	"fts-hw/internal/lib/logger/sl"
	"fts-hw/internal/utils/frequency"
	"fts-hw/internal/utils/metrics"
	"fts-hw/internal/workers"
)

// IndexIOError wraps a file open/read/write/parse failure during a
// build, per spec.md §7.
type IndexIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IndexIOError) Error() string {
	return fmt.Sprintf("indexer: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IndexIOError) Unwrap() error { return e.Err }

var termPattern = regexp.MustCompile(`[a-z]+`)

// tokenize lowercases text and extracts maximal runs of [a-z]+,
// counting per-document term frequency. No stemming, no stop-word
// removal, per spec.md's explicit non-goals.
func tokenize(text string) map[string]int {
	lower := strings.ToLower(text)
	freq := make(map[string]int)
	for _, term := range termPattern.FindAllString(lower, -1) {
		freq[term]++
	}
	return freq
}

// Indexer builds an index from a corpus.Iterator.
type Indexer struct {
	log     *slog.Logger
	metrics *metrics.Metrics
}

// New returns an Indexer that logs with log.
func New(log *slog.Logger) *Indexer {
	return &Indexer{log: log, metrics: &metrics.Metrics{}}
}

type unit struct {
	doc  corpus.Document
	freq map[string]int
	dur  time.Duration
}

// Build runs the full indexing pass, unless valid artifacts already
// exist at triePath/statsPath/docmapPath, in which case it is a no-op
// (spec.md §4.3 restart semantics).
func (ix *Indexer) Build(ctx context.Context, c corpus.Iterator, triePath, statsPath, docmapPath string) error {
	if ix.tryLoadExisting(triePath, statsPath, docmapPath) {
		ix.log.Info("indexer: artifacts already present, skipping rebuild",
			"trie", triePath, "stats", statsPath, "docmap", docmapPath)
		return nil
	}

	tr := trie.New()
	st := stats.New()
	dm := make(docmap.Map)

	units, err := ix.collect(ctx, c)
	if err != nil {
		return err
	}

	sort.Slice(units, func(i, j int) bool { return units[i].doc.ID < units[j].doc.ID })

	throughput := &frequency.Frequency{Interval: time.Second}
	for _, u := range units {
		for term, tf := range u.freq {
			tr.Insert(term, u.doc.ID, tf)
			st.Observe(term, tf)
		}
		if u.doc.Path != "" {
			dm[u.doc.ID] = u.doc.Path
		}
		throughput.Add(1)
		throughput.Check(ix.log)
	}
	st.Finalize()

	if err := writeFile(triePath, tr.Serialize); err != nil {
		return err
	}
	if err := writeFile(statsPath, st.Serialize); err != nil {
		return err
	}
	if err := writeFile(docmapPath, func(w io.Writer) error {
		return docmap.Serialize(w, dm)
	}); err != nil {
		return err
	}

	shape := trie.Analyze(tr)
	ix.log.Info("indexer: build complete",
		"documents", len(units), "trie_nodes", shape.Nodes, "trie_leaves", shape.Leaves,
		"trie_max_depth", shape.MaxDepth)
	ix.metrics.PrintMetrics(ix.log)

	return nil
}

// collect reads the corpus sequentially (corpus.Iterator is not
// required to be concurrency-safe) and fans per-document tokenization
// out across a bounded worker pool. The trie/stats mutation that
// follows stays strictly single-writer: collect only ever returns
// tokenized frequency maps, never touches the trie.
func (ix *Indexer) collect(ctx context.Context, c corpus.Iterator) ([]unit, error) {
	pool := workers.New[unit](runtime.NumCPU(), os.Stderr)

	go pool.Run(ctx)

	go func() {
		defer pool.Close()
		for {
			doc, ok, err := c.Next(ctx)
			if err != nil {
				ix.log.Error("indexer: corpus read error, skipping document", sl.Err(err))
				ix.metrics.RecordFailure(0)
				continue
			}
			if !ok {
				return
			}
			pool.AddJob(workers.Job[unit]{
				Description: workers.JobDescriptor{ID: workers.JobID(fmt.Sprintf("doc-%d", doc.ID))},
				ExecFn: func(ctx context.Context, u unit) (unit, error) {
					start := time.Now()
					u.freq = tokenize(u.doc.Text)
					u.dur = time.Since(start)
					return u, nil
				},
				Args: unit{doc: doc},
			})
		}
	}()

	var collected []unit
	for r := range pool.Results {
		if r.Err != nil {
			ix.log.Error("indexer: tokenize job failed", sl.Err(r.Err))
			ix.metrics.RecordFailure(0)
			continue
		}
		ix.metrics.RecordSuccess(r.Value.dur)
		collected = append(collected, r.Value)
	}

	return collected, nil
}

func (ix *Indexer) tryLoadExisting(triePath, statsPath, docmapPath string) bool {
	for _, p := range []string{triePath, statsPath, docmapPath} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}

	tr := trie.New()
	if err := readFile(triePath, tr.Deserialize); err != nil {
		return false
	}
	st := stats.New()
	if err := readFile(statsPath, st.Deserialize); err != nil {
		return false
	}
	f, err := os.Open(docmapPath)
	if err != nil {
		return false
	}
	defer f.Close()
	if _, err := docmap.Deserialize(f); err != nil {
		return false
	}
	return true
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &IndexIOError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()
	if err := write(f); err != nil {
		return &IndexIOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func readFile(path string, read func(r io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return &IndexIOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()
	return read(f)
}
