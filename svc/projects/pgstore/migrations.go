package pgstore

import "embed"

// Migrations holds the goose migrations for the projects table, under
// the "migrations" directory.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations.
const MigrationsDir = "migrations"
