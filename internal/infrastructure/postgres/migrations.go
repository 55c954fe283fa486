package postgres

import "embed"

// Migrations holds the schema migrations, applied with
// pkg/postgres.RunMigrationsFS(dsn, Migrations, MigrationsDir, ...).
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory of Migrations that holds the SQL files.
const MigrationsDir = "migrations"
