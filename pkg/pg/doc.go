// Package pg wires PostgreSQL into the project key tools using the pgx/v5
// driver and goose/v3 migrations.
//
// Config is populated from environment variables (PG_CONN_URL and friends).
// Connect opens a *pgxpool.Pool with retries, Migrate applies goose
// migrations from any fs.FS (typically an embed.FS next to the store that
// owns the schema), and Healthcheck returns a ping probe.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, pgstore.Migrations, cfg, log); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// IsDuplicateKeyError and IsCheckViolationError classify *pgconn.PgError values by SQLSTATE, and ConstraintName tells which
// constraint fired. Stores use them to turn a unique-index rejection on the
// key column into a domain error instead of a generic failure.
package pg
