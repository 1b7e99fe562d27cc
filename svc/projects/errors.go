package projects

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectExists   = errors.New("project already exists")
	ErrDuplicateKey    = errors.New("project key violates unique constraint")
	ErrKeyAlreadySet   = errors.New("project already has a key")
	ErrInvalidName     = errors.New("invalid project name")

	ErrStoreFailure      = errors.New("project store failure")
	ErrBackfillLock      = errors.New("failed to acquire backfill lock")
	ErrBackfillCancelled = errors.New("backfill cancelled")
)
