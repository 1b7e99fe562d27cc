// Package pgstore is the PostgreSQL projects.Store, built on pgx/v5.
//
// The schema ships as goose migrations embedded in Migrations; apply them
// with pg.Migrate before use:
//
//	if err := pg.Migrate(ctx, pool, pgstore.Migrations, cfg, log); err != nil {
//	    return err
//	}
//	svc := projects.NewService(pgstore.New(pool))
//
// Key uniqueness is enforced by a unique index on upper(key), which allows
// any number of projects without a key. A violation of that index is
// returned as projects.ErrDuplicateKey.
package pgstore
