package projects_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/projectkeys/svc/projects"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func ptr(s string) *string { return &s }

func idPtr(id uuid.UUID) *uuid.UUID { return &id }

func seqID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

// project builds a seed project created n minutes after baseTime.
func project(n int, name string, key *string) projects.Project {
	return projects.Project{
		ID:        seqID(n),
		Name:      name,
		Key:       key,
		CreatedAt: baseTime.Add(time.Duration(n) * time.Minute),
		UpdatedAt: baseTime.Add(time.Duration(n) * time.Minute),
	}
}

// racingStore lets an intruder grab the key of the first write just before
// it reaches the store, the way a concurrent request would.
type racingStore struct {
	*projects.MemoryStore
	once  sync.Once
	every bool
}

func (r *racingStore) steal(ctx context.Context, key string) {
	grab := func() {
		_ = r.MemoryStore.CreateProject(ctx, &projects.Project{
			ID:        uuid.New(),
			Name:      "intruder",
			Key:       &key,
			CreatedAt: time.Now(),
		})
	}
	if r.every {
		grab()
		return
	}
	r.once.Do(grab)
}

func (r *racingStore) CreateProject(ctx context.Context, p *projects.Project) error {
	if p.HasKey() {
		r.steal(ctx, *p.Key)
	}
	return r.MemoryStore.CreateProject(ctx, p)
}

func (r *racingStore) PersistKey(ctx context.Context, id uuid.UUID, key string) error {
	r.steal(ctx, key)
	return r.MemoryStore.PersistKey(ctx, id, key)
}

func (r *racingStore) PersistMissingKey(ctx context.Context, id uuid.UUID, key string) error {
	r.steal(ctx, key)
	return r.MemoryStore.PersistMissingKey(ctx, id, key)
}

// editingStore hands out the keyless rows and then gives the first of them
// a key, like a user editing that project while a backfill is running.
type editingStore struct {
	*projects.MemoryStore
	key string
}

func (e *editingStore) ListProjectsMissingKey(ctx context.Context) ([]projects.Project, error) {
	rows, err := e.MemoryStore.ListProjectsMissingKey(ctx)
	if err != nil || len(rows) == 0 {
		return rows, err
	}
	if err := e.MemoryStore.PersistKey(ctx, rows[0].ID, e.key); err != nil {
		return nil, err
	}
	return rows, nil
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) FindProjectIDByKey(ctx context.Context, key string) (uuid.UUID, bool, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

func (m *mockStore) ListProjectsMissingKey(ctx context.Context) ([]projects.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]projects.Project), args.Error(1)
}

func (m *mockStore) PersistKey(ctx context.Context, id uuid.UUID, key string) error {
	return m.Called(ctx, id, key).Error(0)
}

func (m *mockStore) PersistMissingKey(ctx context.Context, id uuid.UUID, key string) error {
	return m.Called(ctx, id, key).Error(0)
}

func (m *mockStore) CreateProject(ctx context.Context, p *projects.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockStore) UpdateProject(ctx context.Context, p *projects.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockStore) GetProject(ctx context.Context, id uuid.UUID) (*projects.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projects.Project), args.Error(1)
}
