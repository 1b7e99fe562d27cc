//go:build integration

// Package pgtest starts a throwaway PostgreSQL container with the projects
// schema applied, for integration tests of the SQL stores.
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dmitrymomot/projectkeys/pkg/logger"
	"github.com/dmitrymomot/projectkeys/pkg/pg"
	"github.com/dmitrymomot/projectkeys/svc/projects/pgstore"
)

const (
	image    = "postgres:16-alpine"
	user     = "projectkeys"
	password = "projectkeys"
	database = "projectkeys"
)

// Start runs a container, migrates it and returns its connection string
// together with a connected pool. Both are cleaned up with t.
func Start(t *testing.T) (string, *pgxpool.Pool) {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test skipped in -short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     user,
			"POSTGRES_PASSWORD": password,
			"POSTGRES_DB":       database,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	cfg := pg.Config{
		ConnectionString:  fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port.Port(), database),
		MaxOpenConns:      10,
		MaxIdleConns:      1,
		HealthCheckPeriod: time.Minute,
		MaxConnIdleTime:   time.Minute,
		MaxConnLifetime:   10 * time.Minute,
		RetryAttempts:     5,
		RetryInterval:     time.Second,
		MigrationsPath:    pgstore.MigrationsDir,
		MigrationsTable:   "schema_migrations",
	}

	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pg.Migrate(ctx, pool, pgstore.Migrations, cfg, logger.Discard()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return cfg.ConnectionString, pool
}

// Truncate empties the projects table.
func Truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), "TRUNCATE projects"); err != nil {
		t.Fatalf("failed to truncate projects: %v", err)
	}
}
