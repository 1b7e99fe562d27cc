package projects

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/projectkeys/pkg/projectkey"
)

// MemoryStore is an in-memory Store. It enforces the same case-insensitive
// key uniqueness as the database schema and hands out copies only.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]*Project
	keys     map[string]uuid.UUID // upper(key) -> owner
}

// NewMemoryStore returns a store seeded with copies of the given projects.
// Panics on duplicate ids or keys, since seed data must be consistent.
func NewMemoryStore(seed ...Project) *MemoryStore {
	s := &MemoryStore{
		projects: make(map[uuid.UUID]*Project, len(seed)),
		keys:     make(map[string]uuid.UUID, len(seed)),
	}
	for i := range seed {
		if err := s.CreateProject(context.Background(), &seed[i]); err != nil {
			panic("projects: invalid seed project " + seed[i].ID.String() + ": " + err.Error())
		}
	}
	return s
}

func (s *MemoryStore) FindProjectIDByKey(_ context.Context, key string) (uuid.UUID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.keys[strings.ToUpper(key)]
	return id, ok, nil
}

func (s *MemoryStore) ListProjectsMissingKey(_ context.Context) ([]Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Project
	for _, p := range s.projects {
		if !p.HasKey() {
			out = append(out, *p.Clone())
		}
	}
	slices.SortFunc(out, func(a, b Project) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), bytes.Compare(a.ID[:], b.ID[:]))
	})
	return out, nil
}

func (s *MemoryStore) PersistKey(_ context.Context, id uuid.UUID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return ErrProjectNotFound
	}
	if err := s.claimKey(id, key); err != nil {
		return err
	}
	if !projectkey.Equal(p.KeyValue(), key) {
		s.releaseKey(id, p.Key)
	}
	p.Key = &key
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) PersistMissingKey(_ context.Context, id uuid.UUID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return ErrProjectNotFound
	}
	if p.HasKey() {
		return ErrKeyAlreadySet
	}
	if err := s.claimKey(id, key); err != nil {
		return err
	}
	p.Key = &key
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) CreateProject(_ context.Context, p *Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[p.ID]; ok {
		return ErrProjectExists
	}
	if p.HasKey() {
		if err := s.claimKey(p.ID, *p.Key); err != nil {
			return err
		}
	}
	s.projects[p.ID] = p.Clone()
	return nil
}

func (s *MemoryStore) UpdateProject(_ context.Context, p *Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.projects[p.ID]
	if !ok {
		return ErrProjectNotFound
	}
	if p.HasKey() {
		if err := s.claimKey(p.ID, *p.Key); err != nil {
			return err
		}
	}
	if !projectkey.Equal(cur.KeyValue(), p.KeyValue()) {
		s.releaseKey(p.ID, cur.Key)
	}

	next := p.Clone()
	next.CreatedAt = cur.CreatedAt
	s.projects[p.ID] = next
	return nil
}

func (s *MemoryStore) GetProject(_ context.Context, id uuid.UUID) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	return p.Clone(), nil
}

// claimKey registers key for id. Must be called with the write lock held.
func (s *MemoryStore) claimKey(id uuid.UUID, key string) error {
	upper := strings.ToUpper(key)
	if owner, taken := s.keys[upper]; taken && owner != id {
		return ErrDuplicateKey
	}
	s.keys[upper] = id
	return nil
}

// releaseKey drops the mapping of old if id still owns it.
func (s *MemoryStore) releaseKey(id uuid.UUID, old *string) {
	if old == nil {
		return
	}
	upper := strings.ToUpper(*old)
	if owner, ok := s.keys[upper]; ok && owner == id {
		delete(s.keys, upper)
	}
}
