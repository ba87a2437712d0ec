// Package docmap persists the opaque {document-id -> path} artifact
// produced by a corpus reader. It is never consulted during indexing,
// Boolean evaluation, or ranking (spec.md §6) — only by external
// callers translating a result id back to a human-meaningful location.
package docmap

import (
	"encoding/json"
	"io"
	"strconv"
)

// Map is an in-memory {document-id -> path} table.
type Map map[int]string

// Serialize writes m as a JSON object with string-encoded integer keys.
func Serialize(w io.Writer, m Map) error {
	strKeyed := make(map[string]string, len(m))
	for id, path := range m {
		strKeyed[strconv.Itoa(id)] = path
	}
	return json.NewEncoder(w).Encode(strKeyed)
}

// Deserialize loads a Map previously written by Serialize.
func Deserialize(r io.Reader) (Map, error) {
	strKeyed := make(map[string]string)
	if err := json.NewDecoder(r).Decode(&strKeyed); err != nil {
		if err == io.EOF {
			return Map{}, nil
		}
		return nil, err
	}

	m := make(Map, len(strKeyed))
	for key, path := range strKeyed {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, err
		}
		m[id] = path
	}
	return m, nil
}
