// Package poller owns the poll loop lifecycle and the snapshot handoff
// between the fetch layer and readers.
package poller

import (
	"sync"

	"auroracast/internal/models"
)

// SnapshotStore hands complete snapshots from the poll loop to readers.
// Each poll cycle replaces the snapshot wholesale; readers never observe
// a partial update. Commits are ordered by poll sequence: a result from a
// poll that was superseded by a newer poll before it finished is
// discarded, so out-of-order completions cannot clobber fresher data.
type SnapshotStore struct {
	mu      sync.Mutex
	begun   uint64
	applied uint64
	current *models.Snapshot
}

// NewSnapshotStore creates an empty store
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Begin registers a new poll and returns its sequence number
func (s *SnapshotStore) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.begun++
	return s.begun
}

// Commit installs the snapshot for the given poll sequence. It reports
// false, leaving the store untouched, when a newer poll has already begun.
func (s *SnapshotStore) Commit(seq uint64, snap *models.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.begun || seq <= s.applied {
		return false
	}
	s.applied = seq
	s.current = snap
	return true
}

// Latest returns the most recently committed snapshot, nil before the
// first successful poll
func (s *SnapshotStore) Latest() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
