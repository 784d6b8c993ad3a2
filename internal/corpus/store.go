package corpus

import "sync/atomic"

// Store holds the current corpus snapshot. Reloads swap the whole
// reference, so readers always see either the old or the new corpus in
// full, never a partial state.
type Store struct {
	current atomic.Pointer[Corpus]
}

// NewStore creates a store with an initial snapshot
func NewStore(c *Corpus) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

// Snapshot returns the current corpus. The returned value stays valid
// (and immutable) even if a reload swaps in a newer snapshot.
func (s *Store) Snapshot() *Corpus {
	return s.current.Load()
}

// Swap atomically replaces the snapshot, e.g. after an admin content update
func (s *Store) Swap(c *Corpus) {
	s.current.Store(c)
}
