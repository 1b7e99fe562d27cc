// Package storetest checks that a projects.Store honours the contract the
// service relies on. Store implementations call Run from their tests.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/projectkeys/svc/projects"
)

// Factory returns an empty store. It is called once per subtest.
type Factory func(t *testing.T) projects.Store

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, s projects.Store, n int, name string, key *string) projects.Project {
	t.Helper()
	p := projects.Project{
		ID:        uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n)),
		Name:      name,
		Key:       key,
		CreatedAt: epoch.Add(time.Duration(n) * time.Minute),
		UpdatedAt: epoch.Add(time.Duration(n) * time.Minute),
	}
	require.NoError(t, s.CreateProject(context.Background(), &p))
	return p
}

func ptr(s string) *string { return &s }

// Run executes the contract suite. Subtests run sequentially so a factory
// may hand out the same database after truncating it.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		s := newStore(t)
		want := seed(t, s, 1, "Fiesta Lama", ptr("FL"))

		got, err := s.GetProject(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, "FL", got.KeyValue())
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))

		_, err = s.GetProject(ctx, uuid.New())
		assert.ErrorIs(t, err, projects.ErrProjectNotFound)
	})

	t.Run("create existing id", func(t *testing.T) {
		s := newStore(t)
		p := seed(t, s, 1, "a", nil)
		p.Name = "b"
		assert.ErrorIs(t, s.CreateProject(ctx, &p), projects.ErrProjectExists)
	})

	t.Run("find by key ignores case", func(t *testing.T) {
		s := newStore(t)
		p := seed(t, s, 1, "Fiesta Lama", ptr("FL"))

		id, found, err := s.FindProjectIDByKey(ctx, "fl")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, p.ID, id)

		_, found, err = s.FindProjectIDByKey(ctx, "FL1")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("duplicate keys are rejected", func(t *testing.T) {
		s := newStore(t)
		seed(t, s, 1, "Fiesta Lama", ptr("FL"))
		other := seed(t, s, 2, "Other", nil)

		p := projects.Project{ID: uuid.New(), Name: "x", Key: ptr("FL"), CreatedAt: epoch, UpdatedAt: epoch}
		assert.ErrorIs(t, s.CreateProject(ctx, &p), projects.ErrDuplicateKey)

		assert.ErrorIs(t, s.PersistKey(ctx, other.ID, "FL"), projects.ErrDuplicateKey)

		other.Key = ptr("FL")
		assert.ErrorIs(t, s.UpdateProject(ctx, &other), projects.ErrDuplicateKey)
	})

	t.Run("missing keys never collide", func(t *testing.T) {
		s := newStore(t)
		seed(t, s, 1, "a", nil)
		seed(t, s, 2, "b", nil)
		seed(t, s, 3, "c", nil)

		rows, err := s.ListProjectsMissingKey(ctx)
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("missing key list order", func(t *testing.T) {
		s := newStore(t)
		seed(t, s, 3, "c", nil)
		seed(t, s, 1, "a", nil)
		seed(t, s, 2, "b", ptr("BB"))
		seed(t, s, 4, "d", nil)

		rows, err := s.ListProjectsMissingKey(ctx)
		require.NoError(t, err)
		names := make([]string, len(rows))
		for i, r := range rows {
			names[i] = r.Name
			assert.False(t, r.HasKey())
		}
		assert.Equal(t, []string{"a", "c", "d"}, names)
	})

	t.Run("persist key", func(t *testing.T) {
		s := newStore(t)
		p := seed(t, s, 1, "Fiesta Lama", nil)

		require.NoError(t, s.PersistKey(ctx, p.ID, "FL"))
		got, err := s.GetProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "FL", got.KeyValue())

		rows, err := s.ListProjectsMissingKey(ctx)
		require.NoError(t, err)
		assert.Empty(t, rows)

		assert.ErrorIs(t, s.PersistKey(ctx, uuid.New(), "ZZ"), projects.ErrProjectNotFound)
	})

	t.Run("persist missing key", func(t *testing.T) {
		s := newStore(t)
		p := seed(t, s, 1, "Fiesta Lama", nil)
		seed(t, s, 2, "Acme", ptr("ACM"))

		require.NoError(t, s.PersistMissingKey(ctx, p.ID, "FL"))
		assert.ErrorIs(t, s.PersistMissingKey(ctx, p.ID, "FX"), projects.ErrKeyAlreadySet)
		got, err := s.GetProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "FL", got.KeyValue())

		other := seed(t, s, 3, "Other", nil)
		assert.ErrorIs(t, s.PersistMissingKey(ctx, other.ID, "ACM"), projects.ErrDuplicateKey)
		assert.ErrorIs(t, s.PersistMissingKey(ctx, uuid.New(), "ZZ"), projects.ErrProjectNotFound)
	})

	t.Run("update", func(t *testing.T) {
		s := newStore(t)
		p := seed(t, s, 1, "Fiesta Lama", ptr("FL"))

		p.Name = "Renamed"
		p.Description = "desc"
		p.Key = ptr("RN")
		p.UpdatedAt = epoch.Add(time.Hour)
		require.NoError(t, s.UpdateProject(ctx, &p))

		got, err := s.GetProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
		assert.Equal(t, "desc", got.Description)
		assert.Equal(t, "RN", got.KeyValue())

		_, found, err := s.FindProjectIDByKey(ctx, "FL")
		require.NoError(t, err)
		assert.False(t, found)

		missing := projects.Project{ID: uuid.New(), Name: "x"}
		assert.ErrorIs(t, s.UpdateProject(ctx, &missing), projects.ErrProjectNotFound)
	})

	t.Run("concurrent creates get distinct keys", func(t *testing.T) {
		svc := projects.NewService(newStore(t))

		const n = 2
		var wg sync.WaitGroup
		keys := make([]string, n)
		errs := make([]error, n)
		start := make(chan struct{})
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				p, err := svc.CreateProject(ctx, projects.CreateProjectInput{Name: "Fiesta Lama"})
				errs[i] = err
				if err == nil {
					keys[i] = p.KeyValue()
				}
			}()
		}
		close(start)
		wg.Wait()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])
		assert.ElementsMatch(t, []string{"FL", "FL1"}, keys)
	})

	t.Run("backfill", func(t *testing.T) {
		s := newStore(t)
		seed(t, s, 1, "Fiesta Lama", ptr("FL"))
		seed(t, s, 2, "Fiesta Lama", nil)
		seed(t, s, 3, "Foo Lab", nil)
		seed(t, s, 4, "A", nil)
		svc := projects.NewService(s, projects.WithBackfillConcurrency(2))

		results, err := svc.Backfill(ctx)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "FL1", results[0].Key)
		assert.Equal(t, "FL2", results[1].Key)
		assert.Error(t, results[2].Err)

		again, err := svc.Backfill(ctx)
		require.NoError(t, err)
		require.Len(t, again, 1)
		assert.Error(t, again[0].Err)
	})
}
