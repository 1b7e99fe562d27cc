package projects

import (
	"context"

	"github.com/google/uuid"
)

// KeyFinder looks up key ownership.
type KeyFinder interface {
	// FindProjectIDByKey returns the id of the project owning key, compared
	// case-insensitively. found is false when no project has the key.
	FindProjectIDByKey(ctx context.Context, key string) (id uuid.UUID, found bool, err error)
}

// Store is the persistence collaborator of the service. Implementations must
// enforce case-insensitive uniqueness of non-null keys and report a
// violation as ErrDuplicateKey; that constraint is the final arbiter when
// two writers race for the same key.
type Store interface {
	KeyFinder

	// ListProjectsMissingKey returns projects without a key ordered by
	// (CreatedAt, ID).
	ListProjectsMissingKey(ctx context.Context) ([]Project, error)

	// PersistKey sets the key of an existing project.
	// Returns ErrProjectNotFound or ErrDuplicateKey.
	PersistKey(ctx context.Context, id uuid.UUID, key string) error

	// PersistMissingKey sets the key of a project that has none. It returns
	// ErrKeyAlreadySet when the project got a key after it was listed, and
	// otherwise fails like PersistKey. The check and the write are atomic.
	PersistMissingKey(ctx context.Context, id uuid.UUID, key string) error

	// CreateProject inserts p. Returns ErrDuplicateKey or ErrProjectExists.
	CreateProject(ctx context.Context, p *Project) error

	// UpdateProject overwrites name, description and key of p.ID.
	// Returns ErrProjectNotFound or ErrDuplicateKey.
	UpdateProject(ctx context.Context, p *Project) error

	// GetProject returns ErrProjectNotFound if there is no such project.
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
}

// Locker guards a backfill run against concurrent runs in other processes.
// Acquire must fail fast when the lock is held; the returned func releases it.
type Locker interface {
	Acquire(ctx context.Context, name string) (release func(context.Context) error, err error)
}
