package pg

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// StdDB exposes the pool through database/sql for libraries that need it
// (goose, gorm). Closing the returned *sql.DB does not close the pool.
func StdDB(pool *pgxpool.Pool) *sql.DB {
	return stdlib.OpenDBFromPool(pool)
}
