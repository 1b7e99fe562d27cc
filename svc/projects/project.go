package projects

import (
	"time"

	"github.com/google/uuid"
)

// Project is a project record as far as key assignment is concerned.
type Project struct {
	ID          uuid.UUID
	Name        string
	Description string
	Key         *string // nil until assigned; uppercase, 2-10 characters
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasKey reports whether a key has been assigned.
func (p *Project) HasKey() bool {
	return p.Key != nil && *p.Key != ""
}

// KeyValue returns the assigned key or "".
func (p *Project) KeyValue() string {
	if p.Key == nil {
		return ""
	}
	return *p.Key
}

// Clone returns a copy that shares no pointers with p.
func (p *Project) Clone() *Project {
	c := *p
	if p.Key != nil {
		k := *p.Key
		c.Key = &k
	}
	return &c
}
