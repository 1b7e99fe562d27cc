package projects

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrymomot/projectkeys/pkg/projectkey"
)

// keySource produces a key candidate and makes sure it is free. A supplied
// key is accepted as is or rejected; a derived key may be suffixed.
type keySource interface {
	propose() (projectkey.Candidate, error)
	settle(ctx context.Context, r resolver, c projectkey.Candidate, exclude *uuid.UUID) (projectkey.Candidate, error)
}

// sourceFor picks the key source. A blank supplied key counts as absent.
func sourceFor(name string, userKey *string) keySource {
	if supplied(userKey) {
		return suppliedKey{raw: *userKey}
	}
	return derivedKey{name: name}
}

type suppliedKey struct{ raw string }

func (k suppliedKey) propose() (projectkey.Candidate, error) {
	key, err := projectkey.Canonicalize(k.raw)
	if err != nil {
		return projectkey.Candidate{}, err
	}
	return projectkey.Candidate{Key: key, Provenance: projectkey.ProvenanceUserSupplied}, nil
}

func (suppliedKey) settle(ctx context.Context, r resolver, c projectkey.Candidate, exclude *uuid.UUID) (projectkey.Candidate, error) {
	free, err := r.available(ctx, c.Key, exclude)
	if err != nil {
		return projectkey.Candidate{}, err
	}
	if !free {
		return projectkey.Candidate{}, projectkey.ErrTaken
	}
	return c, nil
}

type derivedKey struct{ name string }

func (k derivedKey) propose() (projectkey.Candidate, error) {
	base, err := projectkey.DeriveFromName(k.name)
	if err != nil {
		return projectkey.Candidate{}, err
	}
	if utf8.RuneCountInString(base) < projectkey.MinLength {
		return projectkey.Candidate{}, projectkey.ErrEmptyName
	}
	return projectkey.Candidate{Key: base, Provenance: projectkey.ProvenanceDerived}, nil
}

func (derivedKey) settle(ctx context.Context, r resolver, c projectkey.Candidate, exclude *uuid.UUID) (projectkey.Candidate, error) {
	return r.firstFree(ctx, c.Key, exclude)
}

// resolver answers availability questions against the store.
type resolver struct {
	finder      KeyFinder
	maxAttempts int // 0 means unbounded
}

// available reports whether key is unowned or owned by exclude.
func (r resolver) available(ctx context.Context, key string, exclude *uuid.UUID) (bool, error) {
	id, found, err := r.finder.FindProjectIDByKey(ctx, key)
	if err != nil {
		return false, errors.Join(ErrStoreFailure, err)
	}
	return !found || (exclude != nil && id == *exclude), nil
}

// firstFree returns base if it is available, otherwise the first of base1,
// base2, ... that is. The base is shortened to keep the key within
// projectkey.MaxLength.
func (r resolver) firstFree(ctx context.Context, base string, exclude *uuid.UUID) (projectkey.Candidate, error) {
	free, err := r.available(ctx, base, exclude)
	if err != nil {
		return projectkey.Candidate{}, err
	}
	if free {
		return projectkey.Candidate{Key: base, Provenance: projectkey.ProvenanceDerived}, nil
	}

	for n := 1; r.maxAttempts <= 0 || n <= r.maxAttempts; n++ {
		if err := ctx.Err(); err != nil {
			return projectkey.Candidate{}, err
		}
		key, err := projectkey.WithSuffix(base, n)
		if err != nil {
			return projectkey.Candidate{}, err
		}
		free, err := r.available(ctx, key, exclude)
		if err != nil {
			return projectkey.Candidate{}, err
		}
		if free {
			return projectkey.Candidate{Key: key, Provenance: projectkey.ProvenanceDerivedWithSuffix}, nil
		}
	}
	return projectkey.Candidate{}, projectkey.ErrExhaustedKeySpace
}
