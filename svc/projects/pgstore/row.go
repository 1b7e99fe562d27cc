package pgstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/projectkeys/svc/projects"
)

type projectRow struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Key         *string   `db:"key"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r projectRow) project() projects.Project {
	return projects.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Key:         r.Key,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}
