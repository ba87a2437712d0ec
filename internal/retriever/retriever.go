// Package retriever ties the trie, statistics table, query parser,
// Boolean evaluator, and ranker together behind the single
// Load/Search API an embedder uses at query time.
package retriever

import (
	"os"

	"fts-hw/internal/index/stats"
	"fts-hw/internal/index/trie"
	"fts-hw/internal/query"
	"fts-hw/internal/rank"
)

// Retriever answers Boolean+ranked queries against a loaded index. It
// is read-only after Load and safe for concurrent Search calls from
// any number of goroutines (spec.md §5).
type Retriever struct {
	trie    *trie.Trie
	stats   *stats.Table
	isReady bool
}

// Load opens and parses the trie and statistics files. On any failure
// to open or parse either file, Load returns a non-nil error and a
// Retriever in the not-ready state: its Search always returns an
// empty list rather than attempting lookups (spec.md §7).
func Load(triePath, statsPath string) (*Retriever, error) {
	r := &Retriever{trie: trie.New(), stats: stats.New()}

	tf, err := os.Open(triePath)
	if err != nil {
		return r, err
	}
	defer tf.Close()
	if err := r.trie.Deserialize(tf); err != nil {
		return r, err
	}

	sf, err := os.Open(statsPath)
	if err != nil {
		return r, err
	}
	defer sf.Close()
	if err := r.stats.Deserialize(sf); err != nil {
		return r, err
	}

	r.isReady = true
	return r, nil
}

// Search tokenizes, parses, evaluates, and ranks query. It never
// returns an error: a malformed query, an unready retriever, or a
// query with no matches all simply yield an empty slice.
func (r *Retriever) Search(q string) []int {
	if !r.isReady {
		return nil
	}

	tokens := query.Tokenize(q)
	postfix := query.ToPostfix(tokens)

	docIDs, err := query.Evaluate(postfix, r.trie.Lookup)
	if err != nil {
		return nil
	}
	if len(docIDs) == 0 {
		return nil
	}

	terms := query.Terms(tokens)
	return rank.Rank(docIDs, terms, r.trie.Lookup, r.stats)
}
