//go:build integration

package pgstore_test

import (
	"testing"

	"github.com/dmitrymomot/projectkeys/internal/pgtest"
	"github.com/dmitrymomot/projectkeys/svc/projects"
	"github.com/dmitrymomot/projectkeys/svc/projects/pgstore"
	"github.com/dmitrymomot/projectkeys/svc/projects/storetest"
)

func TestStore_Contract(t *testing.T) {
	_, pool := pgtest.Start(t)

	storetest.Run(t, func(t *testing.T) projects.Store {
		pgtest.Truncate(t, pool)
		return pgstore.New(pool)
	})
}
