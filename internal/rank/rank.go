// Package rank scores and orders a Boolean result set by the mean of
// per-term z-scores, using corpus-wide term statistics.
package rank

import (
	"sort"

	"fts-hw/internal/index/trie"
)

// Stats supplies the z-score for one (term, tf) pair. Implemented by
// *stats.Table.
type Stats interface {
	ZScore(term string, tf int) float64
}

// Lookup resolves a term to its posting list. Implemented by
// *trie.Trie.Lookup.
type Lookup func(term string) []trie.Posting

// Rank scores every document in docIDs by the mean z-score of the
// query terms it actually contains, drops documents containing none
// of them, and returns the remaining ids sorted by relevance
// descending, ties broken by ascending document id.
func Rank(docIDs map[int]struct{}, terms []string, lookup Lookup, st Stats) []int {
	type scored struct {
		id    int
		score float64
	}

	// Pre-fetch term frequency per document id once per term, rather
	// than re-scanning every posting list per candidate document.
	tfByTerm := make(map[string]map[int]int, len(terms))
	for _, term := range terms {
		tf := make(map[int]int)
		for _, p := range lookup(term) {
			tf[p.DocID] = p.Freq
		}
		tfByTerm[term] = tf
	}

	results := make([]scored, 0, len(docIDs))
	for id := range docIDs {
		var total float64
		var count int
		for _, term := range terms {
			tf, ok := tfByTerm[term][id]
			if !ok || tf <= 0 {
				continue
			}
			total += st.ZScore(term, tf)
			count++
		}
		if count == 0 {
			continue
		}
		results = append(results, scored{id: id, score: total / float64(count)})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].id < results[j].id
	})

	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.id
	}
	return out
}
