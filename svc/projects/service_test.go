package projects_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/projectkeys/pkg/projectkey"
	"github.com/dmitrymomot/projectkeys/svc/projects"
)

func TestNewService_PanicsWithoutStore(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { projects.NewService(nil) })
}

func TestService_AssignKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := projects.NewMemoryStore(
		project(1, "Fiesta Lama", ptr("FL")),
		project(2, "Fiesta Lama 2", ptr("FL1")),
		project(3, "Long", ptr("ABCDEFGHIJ")),
	)
	svc := projects.NewService(store)

	tests := []struct {
		name       string
		projName   string
		userKey    *string
		currentID  *uuid.UUID
		wantKey    string
		provenance projectkey.Provenance
		wantErr    error
	}{
		{name: "derived free", projName: "Acme Corp Media", wantKey: "ACM", provenance: projectkey.ProvenanceDerived},
		{name: "derived suffix is monotonic", projName: "Fiesta Lama", wantKey: "FL2", provenance: projectkey.ProvenanceDerivedWithSuffix},
		{name: "derived own key when editing", projName: "Fiesta Lama", currentID: idPtr(seqID(1)), wantKey: "FL", provenance: projectkey.ProvenanceDerived},
		{name: "suffix truncates base", projName: "A B C D E F G H I J K", wantKey: "ABCDEFGHI1", provenance: projectkey.ProvenanceDerivedWithSuffix},
		{name: "supplied is canonicalized", projName: "whatever", userKey: ptr("  wx9 "), wantKey: "WX9", provenance: projectkey.ProvenanceUserSupplied},
		{name: "blank supplied falls back to derived", projName: "Big Red Bus", userKey: ptr("   "), wantKey: "BRB", provenance: projectkey.ProvenanceDerived},
		{name: "supplied taken", projName: "x", userKey: ptr("fl"), wantErr: projectkey.ErrTaken},
		{name: "supplied own key", projName: "x", userKey: ptr("fl1"), currentID: idPtr(seqID(2)), wantKey: "FL1", provenance: projectkey.ProvenanceUserSupplied},
		{name: "supplied bad format", projName: "x", userKey: ptr("FL-1"), wantErr: projectkey.ErrBadFormat},
		{name: "name too short for a key", projName: "A", wantErr: projectkey.ErrEmptyName},
		{name: "name without usable characters", projName: "!!! ???", wantErr: projectkey.ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := svc.AssignKey(ctx, tt.projName, tt.userKey, tt.currentID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, c.Key)
			assert.Equal(t, tt.provenance, c.Provenance)
		})
	}

	t.Run("does not write", func(t *testing.T) {
		t.Parallel()
		_, err := svc.AssignKey(ctx, "Zebra Zoo", nil, nil)
		require.NoError(t, err)
		_, found, err := store.FindProjectIDByKey(ctx, "ZZ")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestService_AssignKey_MaxSuffixAttempts(t *testing.T) {
	t.Parallel()

	store := projects.NewMemoryStore(project(1, "a", ptr("FL")), project(2, "b", ptr("FL1")))
	svc := projects.NewService(store, projects.WithMaxSuffixAttempts(1))

	_, err := svc.AssignKey(context.Background(), "Fiesta Lama", nil, nil)
	assert.ErrorIs(t, err, projectkey.ErrExhaustedKeySpace)
}

func TestService_ValidateKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := projects.NewService(projects.NewMemoryStore(project(1, "Fiesta Lama", ptr("FL"))))

	tests := []struct {
		name      string
		key       string
		currentID *uuid.UUID
		want      string
		wantErr   error
	}{
		{name: "too short", key: "f", wantErr: projectkey.ErrTooShort},
		{name: "empty", key: "", wantErr: projectkey.ErrTooShort},
		{name: "too long", key: "ABCDEFGHIJK", wantErr: projectkey.ErrTooLong},
		{name: "bad format", key: "FL-1", wantErr: projectkey.ErrBadFormat},
		{name: "taken by another project", key: "FL", wantErr: projectkey.ErrTaken},
		{name: "taken case-insensitively", key: "fl", currentID: idPtr(seqID(2)), wantErr: projectkey.ErrTaken},
		{name: "own key on edit", key: "fl", currentID: idPtr(seqID(1)), want: "FL"},
		{name: "free", key: "acme", want: "ACME"},
		{name: "max length", key: "abcdefghij", want: "ABCDEFGHIJ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := svc.ValidateKey(ctx, tt.key, tt.currentID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_CreateProject(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("derives and suffixes keys", func(t *testing.T) {
		t.Parallel()
		svc := projects.NewService(projects.NewMemoryStore())

		var keys []string
		for range 3 {
			p, err := svc.CreateProject(ctx, projects.CreateProjectInput{Name: "Fiesta Lama"})
			require.NoError(t, err)
			keys = append(keys, p.KeyValue())
		}
		assert.Equal(t, []string{"FL", "FL1", "FL2"}, keys)
	})

	t.Run("supplied key", func(t *testing.T) {
		t.Parallel()
		store := projects.NewMemoryStore()
		svc := projects.NewService(store)

		p, err := svc.CreateProject(ctx, projects.CreateProjectInput{
			Name:        "  Fiesta Lama ",
			Description: "party planning",
			Key:         ptr(" fiesta "),
		})
		require.NoError(t, err)
		assert.Equal(t, "FIESTA", p.KeyValue())
		assert.Equal(t, "Fiesta Lama", p.Name)
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.False(t, p.CreatedAt.IsZero())

		stored, err := store.GetProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p, stored)
	})

	t.Run("taken supplied key is rejected, not suffixed", func(t *testing.T) {
		t.Parallel()
		store := projects.NewMemoryStore(project(1, "Fiesta Lama", ptr("FL")))
		svc := projects.NewService(store)

		p, err := svc.CreateProject(ctx, projects.CreateProjectInput{Name: "Flow", Key: ptr("fl")})
		assert.ErrorIs(t, err, projectkey.ErrTaken)
		assert.Nil(t, p)

		rows, err := store.ListProjectsMissingKey(ctx)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("supplied key bypasses nothing", func(t *testing.T) {
		t.Parallel()
		svc := projects.NewService(projects.NewMemoryStore())

		_, err := svc.CreateProject(ctx, projects.CreateProjectInput{Name: "   ", Key: ptr("GOOD")})
		assert.ErrorIs(t, err, projects.ErrInvalidName)
	})

	t.Run("name that derives no key needs a manual key", func(t *testing.T) {
		t.Parallel()
		svc := projects.NewService(projects.NewMemoryStore())

		_, err := svc.CreateProject(ctx, projects.CreateProjectInput{Name: "A"})
		assert.ErrorIs(t, err, projectkey.ErrEmptyName)

		p, err := svc.CreateProject(ctx, projects.CreateProjectInput{Name: "A", Key: ptr("AA")})
		require.NoError(t, err)
		assert.Equal(t, "AA", p.KeyValue())
	})

	t.Run("name and description are cleaned", func(t *testing.T) {
		t.Parallel()
		svc := projects.NewService(projects.NewMemoryStore())

		p, err := svc.CreateProject(ctx, projects.CreateProjectInput{
			Name:        "Fiesta\n  Lama\x00",
			Description: " \x1b[1mbold\x1b[0m\n",
		})
		require.NoError(t, err)
		assert.Equal(t, "Fiesta Lama", p.Name)
		assert.Equal(t, "bold", p.Description)
		assert.Equal(t, "FL", p.KeyValue())
	})

	t.Run("name too long", func(t *testing.T) {
		t.Parallel()
		svc := projects.NewService(projects.NewMemoryStore())

		long := make([]rune, projects.MaxNameLength+1)
		for i := range long {
			long[i] = 'é'
		}
		_, err := svc.CreateProject(ctx, projects.CreateProjectInput{Name: string(long)})
		assert.ErrorIs(t, err, projects.ErrInvalidName)
	})
}

func TestService_CreateProject_Concurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for range 25 {
		svc := projects.NewService(projects.NewMemoryStore())

		var wg sync.WaitGroup
		start := make(chan struct{})
		keys := make([]string, 2)
		errs := make([]error, 2)
		for i := range 2 {
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
	}
}

func TestService_WriteRace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("derived key is resolved again", func(t *testing.T) {
		t.Parallel()
		svc := projects.NewService(&racingStore{MemoryStore: projects.NewMemoryStore()})

		p, err := svc.CreateProject(ctx, projects.CreateProjectInput{Name: "Fiesta Lama"})
		require.NoError(t, err)
		assert.Equal(t, "FL1", p.KeyValue())
	})

	t.Run("supplied key surfaces as taken", func(t *testing.T) {
		t.Parallel()
		svc := projects.NewService(&racingStore{MemoryStore: projects.NewMemoryStore()})

		_, err := svc.CreateProject(ctx, projects.CreateProjectInput{Name: "Fiesta Lama", Key: ptr("FL")})
		assert.ErrorIs(t, err, projectkey.ErrTaken)
	})

	t.Run("retried only once", func(t *testing.T) {
		t.Parallel()
		svc := projects.NewService(&racingStore{MemoryStore: projects.NewMemoryStore(), every: true})

		_, err := svc.CreateProject(ctx, projects.CreateProjectInput{Name: "Fiesta Lama"})
		assert.ErrorIs(t, err, projectkey.ErrTaken)
		assert.ErrorIs(t, err, projects.ErrDuplicateKey)
	})

	t.Run("set key race", func(t *testing.T) {
		t.Parallel()
		store := &racingStore{MemoryStore: projects.NewMemoryStore(project(1, "Fiesta Lama", nil))}
		svc := projects.NewService(store)

		_, err := svc.SetKey(ctx, seqID(1), "FL")
		assert.ErrorIs(t, err, projectkey.ErrTaken)

		p, err := store.GetProject(ctx, seqID(1))
		require.NoError(t, err)
		assert.False(t, p.HasKey())
	})
}

func TestService_StoreFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("connection reset")

	t.Run("lookup failure", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("FindProjectIDByKey", mock.Anything, "FL").Return(uuid.Nil, false, boom)
		svc := projects.NewService(store)

		_, err := svc.CreateProject(ctx, projects.CreateProjectInput{Name: "Fiesta Lama"})
		assert.ErrorIs(t, err, projects.ErrStoreFailure)
		assert.ErrorIs(t, err, boom)
		store.AssertNotCalled(t, "CreateProject", mock.Anything, mock.Anything)
	})

	t.Run("duplicate twice", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("FindProjectIDByKey", mock.Anything, "FL").Return(uuid.Nil, false, nil)
		store.On("CreateProject", mock.Anything, mock.Anything).Return(projects.ErrDuplicateKey)
		svc := projects.NewService(store)

		_, err := svc.CreateProject(ctx, projects.CreateProjectInput{Name: "Fiesta Lama"})
		assert.ErrorIs(t, err, projectkey.ErrTaken)
		store.AssertNumberOfCalls(t, "CreateProject", 2)
	})

	t.Run("write failure is not retried", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("FindProjectIDByKey", mock.Anything, "FL").Return(uuid.Nil, false, nil)
		store.On("CreateProject", mock.Anything, mock.Anything).Return(boom)
		svc := projects.NewService(store)

		_, err := svc.CreateProject(ctx, projects.CreateProjectInput{Name: "Fiesta Lama"})
		assert.ErrorIs(t, err, projects.ErrStoreFailure)
		assert.False(t, projectkey.IsKeyError(err))
		store.AssertNumberOfCalls(t, "CreateProject", 1)
	})
}

func TestService_UpdateProject(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newSvc := func() (projects.Service, *projects.MemoryStore) {
		store := projects.NewMemoryStore(
			project(1, "Fiesta Lama", ptr("FL")),
			project(2, "Acme", ptr("ACM")),
			project(3, "Fiesta Lama", nil),
		)
		return projects.NewService(store), store
	}

	t.Run("keeps key when none supplied", func(t *testing.T) {
		t.Parallel()
		svc, _ := newSvc()
		p, err := svc.UpdateProject(ctx, seqID(1), projects.UpdateProjectInput{Name: "Renamed Completely"})
		require.NoError(t, err)
		assert.Equal(t, "FL", p.KeyValue())
		assert.Equal(t, "Renamed Completely", p.Name)
	})

	t.Run("accepts own key", func(t *testing.T) {
		t.Parallel()
		svc, _ := newSvc()
		p, err := svc.UpdateProject(ctx, seqID(1), projects.UpdateProjectInput{Name: "Fiesta Lama", Key: ptr("fl")})
		require.NoError(t, err)
		assert.Equal(t, "FL", p.KeyValue())
	})

	t.Run("rejects key of another project", func(t *testing.T) {
		t.Parallel()
		svc, store := newSvc()
		_, err := svc.UpdateProject(ctx, seqID(1), projects.UpdateProjectInput{Name: "Changed", Key: ptr("acm")})
		assert.ErrorIs(t, err, projectkey.ErrTaken)

		p, err := store.GetProject(ctx, seqID(1))
		require.NoError(t, err)
		assert.Equal(t, "FL", p.KeyValue())
		assert.Equal(t, "Fiesta Lama", p.Name)
	})

	t.Run("changes key and frees the old one", func(t *testing.T) {
		t.Parallel()
		svc, store := newSvc()
		p, err := svc.UpdateProject(ctx, seqID(1), projects.UpdateProjectInput{Name: "Fiesta Lama", Key: ptr("FIESTA")})
		require.NoError(t, err)
		assert.Equal(t, "FIESTA", p.KeyValue())

		_, found, err := store.FindProjectIDByKey(ctx, "FL")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("derives for project without key", func(t *testing.T) {
		t.Parallel()
		svc, _ := newSvc()
		p, err := svc.UpdateProject(ctx, seqID(3), projects.UpdateProjectInput{Name: "Fiesta Lama"})
		require.NoError(t, err)
		assert.Equal(t, "FL1", p.KeyValue())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		svc, _ := newSvc()
		_, err := svc.UpdateProject(ctx, uuid.New(), projects.UpdateProjectInput{Name: "x"})
		assert.ErrorIs(t, err, projects.ErrProjectNotFound)
	})

	t.Run("invalid name persists nothing", func(t *testing.T) {
		t.Parallel()
		svc, store := newSvc()
		_, err := svc.UpdateProject(ctx, seqID(1), projects.UpdateProjectInput{Name: "", Key: ptr("NEW")})
		assert.ErrorIs(t, err, projects.ErrInvalidName)

		_, found, err := store.FindProjectIDByKey(ctx, "NEW")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestService_SetKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := projects.NewMemoryStore(project(1, "Fiesta Lama", ptr("FL")), project(2, "Acme", nil))
	svc := projects.NewService(store)

	p, err := svc.SetKey(ctx, seqID(2), " acme ")
	require.NoError(t, err)
	assert.Equal(t, "ACME", p.KeyValue())

	_, err = svc.SetKey(ctx, seqID(2), "fl")
	assert.ErrorIs(t, err, projectkey.ErrTaken)

	_, err = svc.SetKey(ctx, seqID(2), "")
	assert.ErrorIs(t, err, projectkey.ErrTooShort)

	_, err = svc.SetKey(ctx, uuid.New(), "ZZ")
	assert.ErrorIs(t, err, projects.ErrProjectNotFound)

	stored, err := store.GetProject(ctx, seqID(2))
	require.NoError(t, err)
	assert.Equal(t, "ACME", stored.KeyValue())
}
