// Package memory provides in-memory implementations of the core ports,
// used by tests and by the CLI when no external backend is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/turlang/tur/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Session
	mu   sync.RWMutex
}

// NewStore creates a new in-memory session store.
func NewStore() *Store {
	return &Store{data: make(map[string]*domain.Session)}
}

// Save persists the session in memory.
func (s *Store) Save(ctx context.Context, session *domain.Session) error {
	copied := copySession(session)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.ID] = copied
	return nil
}

// Load retrieves a session from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.data[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return copySession(session), nil
}

// Delete removes a session.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored session IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// copySession isolates store contents from caller mutation, mirroring what a
// serializing backend would do.
func copySession(session *domain.Session) *domain.Session {
	copied := *session
	if session.Program != nil {
		copied.Program = session.Program.Clone()
	}
	copied.Snapshot.Tapes = append([]string(nil), session.Snapshot.Tapes...)
	copied.Snapshot.Heads = append([]int(nil), session.Snapshot.Heads...)
	return &copied
}

// Catalog implements ports.Catalog over a fixed set of programs.
type Catalog struct {
	programs map[string]*domain.Program
}

// NewCatalog builds a catalog from the given programs, keyed by name.
func NewCatalog(programs ...*domain.Program) *Catalog {
	c := &Catalog{programs: make(map[string]*domain.Program, len(programs))}
	for _, p := range programs {
		c.programs[p.Name] = p
	}
	return c
}

// Get returns a copy of the named program.
func (c *Catalog) Get(name string) (*domain.Program, error) {
	p, ok := c.programs[name]
	if !ok {
		return nil, fmt.Errorf("unknown program: %s", name)
	}
	return p.Clone(), nil
}

// List returns the catalog's program names, sorted.
func (c *Catalog) List() []string {
	names := make([]string, 0, len(c.programs))
	for name := range c.programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
