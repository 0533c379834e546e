package catalog

import (
	"fmt"
	"sync"
)

// State is the load state of a Store.
type State int

const (
	StateLoading State = iota
	StateReady
	StateEmpty
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateEmpty:
		return "empty"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Snapshot is an immutable view of a Store at one point in time.
type Snapshot struct {
	State   State
	Records []PlantRecord
	Err     error
	// Version increases on every committed load.
	Version uint64
}

// View returns the records matching query.
func (s Snapshot) View(query string) []PlantRecord {
	return Filter(s.Records, query)
}

// Store holds the current catalog and arbitrates concurrent loads: only the
// result of the most recently begun load is committed.
type Store struct {
	mu      sync.RWMutex
	state   State
	records []PlantRecord
	err     error
	gen     uint64
	version uint64
}

func NewStore() *Store {
	return &Store{state: StateLoading}
}

// Begin starts a new load and returns its generation. Any load begun earlier
// becomes stale.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = StateLoading
	s.err = nil
	return s.gen
}

// Commit applies the outcome of load gen. It returns false, leaving the store
// untouched, when gen has been superseded by a later Begin.
func (s *Store) Commit(gen uint64, records []PlantRecord, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || s.state != StateLoading {
		return false
	}
	s.version++
	switch {
	case err != nil:
		s.state = StateFailed
		s.records = nil
		s.err = err
	case len(records) == 0:
		s.state = StateEmpty
		s.records = nil
	default:
		s.state = StateReady
		s.records = append([]PlantRecord(nil), records...)
	}
	return true
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		State:   s.state,
		Records: s.records,
		Err:     s.err,
		Version: s.version,
	}
}

// View lazily filters the current records by query.
func (s *Store) View(query string) []PlantRecord {
	return s.Snapshot().View(query)
}
