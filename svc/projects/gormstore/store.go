package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dmitrymomot/projectkeys/pkg/pg"
	"github.com/dmitrymomot/projectkeys/pkg/projectkey"
	"github.com/dmitrymomot/projectkeys/svc/projects"
)

const (
	keyIndexName   = "projects_key_upper_idx"
	primaryKeyName = "projects_pkey"
)

// Store implements projects.Store with gorm.
type Store struct {
	db *gorm.DB
}

var _ projects.Store = (*Store)(nil)

// New returns a Store using db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open creates a gorm handle that shares the connections of pool.
func Open(pool *pgxpool.Pool) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: pg.StdDB(pool)}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
}

func (s *Store) FindProjectIDByKey(ctx context.Context, key string) (uuid.UUID, bool, error) {
	var m projectModel
	err := s.db.WithContext(ctx).Select("id").Where("upper(key) = upper(?)", key).Take(&m).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return uuid.Nil, false, nil
	case err != nil:
		return uuid.Nil, false, err
	}
	return m.ID, true, nil
}

func (s *Store) ListProjectsMissingKey(ctx context.Context) ([]projects.Project, error) {
	var models []projectModel
	if err := s.db.WithContext(ctx).Where("key IS NULL").Order("created_at, id").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]projects.Project, len(models))
	for i, m := range models {
		out[i] = m.project()
	}
	return out, nil
}

func (s *Store) PersistKey(ctx context.Context, id uuid.UUID, key string) error {
	return s.update(ctx, id, map[string]any{
		"key":        key,
		"updated_at": time.Now().UTC(),
	})
}

func (s *Store) PersistMissingKey(ctx context.Context, id uuid.UUID, key string) error {
	res := s.db.WithContext(ctx).Model(&projectModel{}).
		Where("id = ? AND key IS NULL", id).
		Updates(map[string]any{
			"key":        key,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&projectModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return projects.ErrKeyAlreadySet
	}
	return projects.ErrProjectNotFound
}

func (s *Store) CreateProject(ctx context.Context, p *projects.Project) error {
	m := fromProject(p)
	return mapError(s.db.WithContext(ctx).Create(&m).Error)
}

func (s *Store) UpdateProject(ctx context.Context, p *projects.Project) error {
	return s.update(ctx, p.ID, map[string]any{
		"name":        p.Name,
		"description": p.Description,
		"key":         p.Key,
		"updated_at":  p.UpdatedAt,
	})
}

func (s *Store) GetProject(ctx context.Context, id uuid.UUID) (*projects.Project, error) {
	var m projectModel
	if err := s.db.WithContext(ctx).Take(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, projects.ErrProjectNotFound
		}
		return nil, err
	}
	p := m.project()
	return &p, nil
}

func (s *Store) update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&projectModel{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return projects.ErrProjectNotFound
	}
	return nil
}

// mapError turns constraint violations reported by the pgx driver into
// the errors projects.Service understands.
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
