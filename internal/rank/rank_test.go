package rank

import (
	"reflect"
	"testing"

	"fts-hw/internal/index/stats"
	"fts-hw/internal/index/trie"
)

func buildWorkedExample(t *testing.T) (*trie.Trie, *stats.Table) {
	t.Helper()
	tr := trie.New()
	st := stats.New()

	insert := func(term string, docID, tf int) {
		tr.Insert(term, docID, tf)
		st.Observe(term, tf)
	}

	insert("the", 1, 2)
	insert("blue", 1, 3)
	insert("car", 1, 1)
	insert("and", 1, 1)
	insert("house", 1, 1)

	insert("the", 2, 2)
	insert("red", 2, 2)
	insert("car", 2, 2)
	insert("is", 2, 1)
	insert("fast", 2, 1)
	insert("another", 2, 1)

	insert("the", 3, 2)
	insert("green", 3, 1)
	insert("house", 3, 2)
	insert("on", 3, 1)
	insert("street", 3, 1)
	insert("just", 3, 1)
	insert("one", 3, 1)

	st.Finalize()
	return tr, st
}

func TestRankDropsNonContainers(t *testing.T) {
	tr, st := buildWorkedExample(t)
	docIDs := map[int]struct{}{1: {}, 2: {}, 3: {}}
	ranked := Rank(docIDs, []string{"car"}, tr.Lookup, st)
	for _, id := range ranked {
		if id == 3 {
			t.Fatalf("doc 3 has no 'car' occurrence and should have been dropped: %v", ranked)
		}
	}
}

func TestRankCarOrHouse(t *testing.T) {
	tr, st := buildWorkedExample(t)
	docIDs := map[int]struct{}{1: {}, 2: {}, 3: {}}
	ranked := Rank(docIDs, []string{"car", "house"}, tr.Lookup, st)

	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked docs, got %v", ranked)
	}
	// D2 (car only, z=+1) and D3 (house only, z=+1) must both rank
	// ahead of D1 (both terms, mean z=-1).
	pos := make(map[int]int, len(ranked))
	for i, id := range ranked {
		pos[id] = i
	}
	if pos[1] <= pos[2] || pos[1] <= pos[3] {
		t.Fatalf("expected D1 ranked last, got order %v", ranked)
	}
}

func TestRankCarAndBlue(t *testing.T) {
	tr, st := buildWorkedExample(t)
	docIDs := map[int]struct{}{1: {}}
	ranked := Rank(docIDs, []string{"car", "blue"}, tr.Lookup, st)
	if !reflect.DeepEqual(ranked, []int{1}) {
		t.Fatalf("ranked = %v, want [1]", ranked)
	}
}

func TestRankCarAndBlueOrGreenSet(t *testing.T) {
	tr, st := buildWorkedExample(t)
	docIDs := map[int]struct{}{1: {}, 3: {}}
	ranked := Rank(docIDs, []string{"car", "blue", "green"}, tr.Lookup, st)
	got := map[int]struct{}{}
	for _, id := range ranked {
		got[id] = struct{}{}
	}
	if !reflect.DeepEqual(got, map[int]struct{}{1: {}, 3: {}}) {
		t.Fatalf("ranked set = %v, want {1,3}", ranked)
	}
}

func TestRankTieBreakAscendingID(t *testing.T) {
	tr := trie.New()
	st := stats.New()
	// Two documents with identical term frequency for the sole query
	// term score identically and must tie-break on ascending doc id.
	tr.Insert("word", 2, 4)
	tr.Insert("word", 1, 4)
	st.Observe("word", 4)
	st.Observe("word", 4)
	st.Finalize()

	docIDs := map[int]struct{}{1: {}, 2: {}}
	ranked := Rank(docIDs, []string{"word"}, tr.Lookup, st)
	if !reflect.DeepEqual(ranked, []int{1, 2}) {
		t.Fatalf("ranked = %v, want [1,2] (ascending-id tie-break)", ranked)
	}
}
