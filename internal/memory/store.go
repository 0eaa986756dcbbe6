// Package memory is a trivial append/overwrite key-value log standing in for
// a real memory subsystem. Unbounded growth is an accepted simplification.
package memory

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// #region entry

// Entry is a stored value with its metadata and insertion timestamp.
type Entry struct {
	Key       string
	Value     any
	Metadata  map[string]string
	CreatedAt time.Time
}

// #endregion entry

// #region store

// Store maps keys to entries. No eviction, no TTL; overwriting an existing
// key replaces the entry. Single-threaded by design.
type Store struct {
	entries map[string]Entry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]Entry)}
}

// Put stores or overwrites an entry. It always succeeds.
func (s *Store) Put(key string, value any, metadata map[string]string) {
	s.entries[key] = Entry{
		Key:       key,
		Value:     value,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
}

// Get returns the entry for key, if present.
func (s *Store) Get(key string) (Entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// #endregion store

// #region retrieve

// Retrieve scans all entries linearly and returns those whose key or
// serialized value contains the query as a substring, ordered by key.
func (s *Store) Retrieve(query string) []Entry {
	var out []Entry
	for key, e := range s.entries {
		if strings.Contains(key, query) || strings.Contains(serialize(e.Value), query) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// serialize renders a value for substring matching. JSON when possible,
// fmt fallback otherwise.
func serialize(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// #endregion retrieve
