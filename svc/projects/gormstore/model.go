package gormstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/projectkeys/svc/projects"
)

// projectModel maps the projects table. The schema itself, including the
// unique index on upper(key), comes from the pgstore migrations.
type projectModel struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"not null;default:''"`
	Key         *string   `gorm:"column:key;size:10"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (projectModel) TableName() string {
	return "projects"
}

func fromProject(p *projects.Project) projectModel {
	return projectModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Key:         p.Key,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m projectModel) project() projects.Project {
	return projects.Project{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Key:         m.Key,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}
