package projects

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/projectkeys/pkg/logger"
	"github.com/dmitrymomot/projectkeys/pkg/projectkey"
	"github.com/dmitrymomot/projectkeys/pkg/sanitizer"
	"github.com/dmitrymomot/projectkeys/pkg/validator"
)

// MaxNameLength is the longest accepted project name, in characters.
const MaxNameLength = 255

// maxWriteAttempts is one write plus one retry after losing a key race.
const maxWriteAttempts = 2

// Service assigns and maintains project keys.
type Service interface {
	// AssignKey picks the key a project would get without writing anything.
	// A supplied key is validated and must be free; otherwise a key is
	// derived from name and suffixed until free. currentID excludes the
	// project being edited from the uniqueness check.
	AssignKey(ctx context.Context, name string, userKey *string, currentID *uuid.UUID) (projectkey.Candidate, error)

	// ValidateKey canonicalizes key and checks it is free for currentID.
	ValidateKey(ctx context.Context, key string, currentID *uuid.UUID) (string, error)

	CreateProject(ctx context.Context, in CreateProjectInput) (*Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*Project, error)

	// SetKey replaces the key of one project with a user-supplied key.
	SetKey(ctx context.Context, id uuid.UUID, key string) (*Project, error)

	// Backfill assigns derived keys to every project that has none.
	// Per-project failures are reported in the results; the returned error
	// is only set when the run itself could not proceed.
	Backfill(ctx context.Context) ([]BackfillResult, error)

	// PlanBackfill lists the base keys Backfill would start from, without
	// resolving collisions or writing.
	PlanBackfill(ctx context.Context) ([]BackfillResult, error)
}

type CreateProjectInput struct {
	Name        string
	Description string
	Key         *string // optional; derived from Name when nil or blank
}

type UpdateProjectInput struct {
	Name        string
	Description string
	Key         *string // optional; nil keeps the current key
}

type service struct {
	store             Store
	resolver          resolver
	log               *slog.Logger
	maxSuffixAttempts int
	concurrency       int
	locker            Locker
}

// NewService creates a Service on top of store.
// Panics if store is nil.
func NewService(store Store, opts ...ServiceOption) Service {
	if store == nil {
		panic("projects: Store is required")
	}

	s := &service{
		store:       store,
		log:         logger.Discard(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resolver = resolver{finder: store, maxAttempts: s.maxSuffixAttempts}

	return s
}

func (s *service) AssignKey(ctx context.Context, name string, userKey *string, currentID *uuid.UUID) (projectkey.Candidate, error) {
	return s.resolve(ctx, sourceFor(name, userKey), currentID)
}

func (s *service) ValidateKey(ctx context.Context, key string, currentID *uuid.UUID) (string, error) {
	c, err := s.resolve(ctx, suppliedKey{raw: key}, currentID)
	if err != nil {
		return "", err
	}
	return c.Key, nil
}

func (s *service) CreateProject(ctx context.Context, in CreateProjectInput) (*Project, error) {
	name, err := validateName(in.Name)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	var created *Project
	c, err := s.assign(ctx, sourceFor(name, in.Key), nil, func(ctx context.Context, c projectkey.Candidate) error {
		now := time.Now().UTC()
		p := &Project{
			ID:          id,
			Name:        name,
			Description: cleanDescription(in.Description),
			Key:         &c.Key,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.store.CreateProject(ctx, p); err != nil {
			return storeErr(err)
		}
		created = p
		return nil
	})
	if err != nil {
		s.log.DebugContext(ctx, "project not created",
			logger.Reason(string(projectkey.ReasonOf(err))),
			logger.Error(err),
		)
		return nil, err
	}

	s.log.InfoContext(ctx, "project created",
		logger.ProjectID(created.ID),
		logger.ProjectKey(c.Key),
		logger.Provenance(string(c.Provenance)),
	)
	return created, nil
}

func (s *service) UpdateProject(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*Project, error) {
	name, err := validateName(in.Name)
	if err != nil {
		return nil, err
	}

	cur, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}

	next := cur.Clone()
	next.Name = name
	next.Description = cleanDescription(in.Description)

	if !supplied(in.Key) && cur.HasKey() {
		next.UpdatedAt = time.Now().UTC()
		if err := s.store.UpdateProject(ctx, next); err != nil {
			return nil, storeErr(err)
		}
		return next, nil
	}

	c, err := s.assign(ctx, sourceFor(name, in.Key), &id, func(ctx context.Context, c projectkey.Candidate) error {
		next.Key = &c.Key
		next.UpdatedAt = time.Now().UTC()
		return storeErr(s.store.UpdateProject(ctx, next))
	})
	if err != nil {
		return nil, err
	}

	if c.Key != cur.KeyValue() {
		s.log.InfoContext(ctx, "project key changed",
			logger.ProjectID(id),
			logger.ProjectKey(c.Key),
			logger.Provenance(string(c.Provenance)),
		)
	}
	return next, nil
}

func (s *service) SetKey(ctx context.Context, id uuid.UUID, key string) (*Project, error) {
	cur, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}

	c, err := s.assign(ctx, suppliedKey{raw: key}, &id, func(ctx context.Context, c projectkey.Candidate) error {
		return storeErr(s.store.PersistKey(ctx, id, c.Key))
	})
	if err != nil {
		return nil, err
	}

	cur.Key = &c.Key
	s.log.InfoContext(ctx, "project key set", logger.ProjectID(id), logger.ProjectKey(c.Key))
	return cur, nil
}

func (s *service) resolve(ctx context.Context, src keySource, exclude *uuid.UUID) (projectkey.Candidate, error) {
	c, err := src.propose()
	if err != nil {
		return projectkey.Candidate{}, err
	}
	return src.settle(ctx, s.resolver, c, exclude)
}

// assign resolves a key from src and passes it to write. When the store
// rejects the write as a duplicate key, the key is resolved again and the
// write retried once; a second rejection is reported as projectkey.ErrTaken.
func (s *service) assign(
	ctx context.Context,
	src keySource,
	exclude *uuid.UUID,
	write func(context.Context, projectkey.Candidate) error,
) (projectkey.Candidate, error) {
	for attempt := 1; ; attempt++ {
		c, err := s.resolve(ctx, src, exclude)
		if err != nil {
			return projectkey.Candidate{}, err
		}

		err = write(ctx, c)
		switch {
		case err == nil:
			return c, nil
		case !errors.Is(err, ErrDuplicateKey):
			return projectkey.Candidate{}, err
		case attempt >= maxWriteAttempts:
			return projectkey.Candidate{}, errors.Join(projectkey.ErrTaken, err)
		}

		s.log.WarnContext(ctx, "project key taken concurrently, resolving again",
			logger.ProjectKey(c.Key),
			logger.Attempt(attempt),
		)
	}
}

var (
	cleanName = sanitizer.Compose(
		sanitizer.RemoveNullBytes,
		sanitizer.RemoveControlSequences,
		sanitizer.SingleLine,
	)
	cleanDescription = sanitizer.Compose(
		sanitizer.RemoveNullBytes,
		sanitizer.RemoveControlSequences,
		sanitizer.Trim,
	)
)

func validateName(name string) (string, error) {
	name = cleanName(name)
	if err := validator.Apply(
		validator.RequiredString("name", name),
		validator.MaxLenString("name", name, MaxNameLength),
	); err != nil {
		return "", errors.Join(ErrInvalidName, err)
	}
	return name, nil
}

func supplied(key *string) bool {
	return key != nil && strings.TrimSpace(*key) != ""
}

// storeErr passes store sentinels through and marks anything else as an
// infrastructure failure.
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrDuplicateKey),
		errors.Is(err, ErrProjectNotFound),
		errors.Is(err, ErrProjectExists),
		errors.Is(err, ErrKeyAlreadySet),
		errors.Is(err, ErrStoreFailure):
		return err
	default:
		return errors.Join(ErrStoreFailure, err)
	}
}
