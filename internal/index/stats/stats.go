// Package stats accumulates per-term frequency statistics at build
// time and derives the mean/standard-deviation pair the ranker uses
// for z-scoring.
package stats

import (
	"encoding/json"
	"io"
	"math"
)

// Entry is one term's finalized statistics.
type Entry struct {
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma"`
	DF    int     `json:"df"`
}

type accumulator struct {
	df     int
	sumTF  int
	sumTF2 int
}

// Table is the build-time accumulator; call Observe once per (term, tf)
// pair the indexer emits for a document, then Finalize once the pass is
// complete.
type Table struct {
	raw     map[string]*accumulator
	entries map[string]Entry
}

// New returns an empty statistics table.
func New() *Table {
	return &Table{raw: make(map[string]*accumulator)}
}

// Observe records one document's occurrence of term, with tf its
// term frequency in that document.
func (t *Table) Observe(term string, tf int) {
	a, ok := t.raw[term]
	if !ok {
		a = &accumulator{}
		t.raw[term] = a
	}
	a.df++
	a.sumTF += tf
	a.sumTF2 += tf * tf
}

// Finalize computes mu/sigma for every observed term. Safe to call
// more than once; it recomputes from the raw accumulators.
func (t *Table) Finalize() {
	entries := make(map[string]Entry, len(t.raw))
	for term, a := range t.raw {
		mu := float64(a.sumTF) / float64(a.df)
		variance := float64(a.sumTF2)/float64(a.df) - mu*mu
		if variance < 0 {
			variance = 0
		}
		entries[term] = Entry{Mu: mu, Sigma: math.Sqrt(variance), DF: a.df}
	}
	t.entries = entries
}

// Stats returns the finalized (mu, sigma) for term, and whether term
// has an entry at all. Call after Finalize (or after Load).
func (t *Table) Stats(term string) (mu, sigma float64, ok bool) {
	e, found := t.entries[term]
	if !found {
		return 0, 0, false
	}
	return e.Mu, e.Sigma, true
}

// ZScore applies the ranker's z-score rule for one (term, tf) pair.
func (t *Table) ZScore(term string, tf int) float64 {
	mu, sigma, ok := t.Stats(term)
	if !ok {
		return 0
	}
	if sigma <= 0 {
		if float64(tf) > mu {
			return 1
		}
		return 0
	}
	return (float64(tf) - mu) / sigma
}

// Serialize writes the finalized statistics as a JSON object
// {term: {"mu":..., "sigma":..., "df":...}}.
func (t *Table) Serialize(w io.Writer) error {
	return json.NewEncoder(w).Encode(t.entries)
}

// Deserialize loads a statistics table previously written by Serialize.
func (t *Table) Deserialize(r io.Reader) error {
	entries := make(map[string]Entry)
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		if err == io.EOF {
			t.entries = entries
			return nil
		}
		return err
	}
	t.entries = entries
	return nil
}
