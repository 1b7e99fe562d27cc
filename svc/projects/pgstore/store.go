package pgstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/projectkeys/pkg/pg"
	"github.com/dmitrymomot/projectkeys/pkg/projectkey"
	"github.com/dmitrymomot/projectkeys/svc/projects"
)

const (
	keyIndexName     = "projects_key_upper_idx"
	primaryKeyName   = "projects_pkey"
	projectColumns   = "id, name, description, key, created_at, updated_at"
	selectProjectSQL = "SELECT " + projectColumns + " FROM projects"
)

// DB is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements projects.Store on PostgreSQL. The schema comes from
// Migrations; its unique index on upper(key) is what ErrDuplicateKey reports.
type Store struct {
	db DB
}

var _ projects.Store = (*Store)(nil)

// New returns a Store using db.
func New(db DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindProjectIDByKey(ctx context.Context, key string) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := s.db.QueryRow(ctx, "SELECT id FROM projects WHERE upper(key) = upper($1)", key).Scan(&id)
	switch {
	case pg.IsNotFoundError(err):
		return uuid.Nil, false, nil
	case err != nil:
		return uuid.Nil, false, err
	}
	return id, true, nil
}

func (s *Store) ListProjectsMissingKey(ctx context.Context) ([]projects.Project, error) {
	rows, err := s.db.Query(ctx, selectProjectSQL+" WHERE key IS NULL ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[projectRow])
	if err != nil {
		return nil, err
	}

	out := make([]projects.Project, len(list))
	for i, r := range list {
		out[i] = r.project()
	}
	return out, nil
}

func (s *Store) PersistKey(ctx context.Context, id uuid.UUID, key string) error {
	tag, err := s.db.Exec(ctx, "UPDATE projects SET key = $2, updated_at = now() WHERE id = $1", id, key)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return projects.ErrProjectNotFound
	}
	return nil
}

func (s *Store) PersistMissingKey(ctx context.Context, id uuid.UUID, key string) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE projects SET key = $2, updated_at = now() WHERE id = $1 AND key IS NULL",
		id, key,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := s.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)", id).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return projects.ErrKeyAlreadySet
	}
	return projects.ErrProjectNotFound
}

func (s *Store) CreateProject(ctx context.Context, p *projects.Project) error {
	_, err := s.db.Exec(ctx,
		"INSERT INTO projects ("+projectColumns+") VALUES ($1, $2, $3, $4, $5, $6)",
		p.ID, p.Name, p.Description, p.Key, p.CreatedAt, p.UpdatedAt,
	)
	return mapError(err)
}

func (s *Store) UpdateProject(ctx context.Context, p *projects.Project) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE projects SET name = $2, description = $3, key = $4, updated_at = $5 WHERE id = $1",
		p.ID, p.Name, p.Description, p.Key, p.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return projects.ErrProjectNotFound
	}
	return nil
}

func (s *Store) GetProject(ctx context.Context, id uuid.UUID) (*projects.Project, error) {
	rows, err := s.db.Query(ctx, selectProjectSQL+" WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	r, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[projectRow])
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, projects.ErrProjectNotFound
		}
		return nil, err
	}
	p := r.project()
	return &p, nil
}

// mapError turns constraint violations into the errors projects.Service
// understands.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case pg.IsDuplicateKeyError(err) && pg.ConstraintName(err) == keyIndexName:
		return errors.Join(projects.ErrDuplicateKey, err)
	case pg.IsDuplicateKeyError(err) && pg.ConstraintName(err) == primaryKeyName:
		return errors.Join(projects.ErrProjectExists, err)
	case pg.IsCheckViolationError(err):
		return errors.Join(projectkey.ErrBadFormat, err)
	default:
		return err
	}
}
