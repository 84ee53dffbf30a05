package catalog

import (
	"sync"

	"github.com/hpungsan/folio/internal/errors"
	"github.com/hpungsan/folio/internal/project"
)

// Store owns the authoritative, ordered collection of projects.
// Newest additions sit at the front. Add and Snapshot share one lock,
// so a snapshot never observes a partial insert.
type Store struct {
	mu       sync.RWMutex
	projects []project.Project
	ids      map[project.ID]struct{}
	version  uint64
}

// NewStore initializes a Store from seed, keeping seed order.
// Returns DUPLICATE_ID if two seed records share an id.
func NewStore(seed []project.Project) (*Store, error) {
	s := &Store{
		projects: make([]project.Project, 0, len(seed)),
		ids:      make(map[project.ID]struct{}, len(seed)),
	}
	for _, p := range seed {
		if _, dup := s.ids[p.ID]; dup {
			return nil, errors.NewDuplicateID(string(p.ID))
		}
		s.ids[p.ID] = struct{}{}
		s.projects = append(s.projects, p.Clone())
	}
	return s, nil
}

// Add inserts p at the front of the catalog.
// An id already present is rejected with DUPLICATE_ID; nothing is overwritten.
func (s *Store) Add(p project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.ids[p.ID]; dup {
		return errors.NewDuplicateID(string(p.ID))
	}

	next := make([]project.Project, 0, len(s.projects)+1)
	next = append(next, p.Clone())
	next = append(next, s.projects...)

	s.projects = next
	s.ids[p.ID] = struct{}{}
	s.version++
	return nil
}

// Snapshot returns the current ordered contents.
// The returned records are copies; mutating them does not affect the store.
func (s *Store) Snapshot() []project.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]project.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

// VersionedSnapshot returns Snapshot and Version read under one lock.
func (s *Store) VersionedSnapshot() ([]project.Project, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]project.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out, s.version
}

// Version increases by one on every successful Add.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Len returns the number of projects in the catalog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}
