package postgres

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Direction selects which way RunMigrationsFS moves the schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// RunMigrationsFS applies the migrations embedded under dir of fsys. Having
// nothing to apply is not an error.
func RunMigrationsFS(dsn string, fsys fs.FS, dir string, direction Direction) error {
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("postgres: open migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	switch direction {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return fmt.Errorf("postgres: unknown migration direction %q", direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations %s: %w", direction, err)
	}

	return nil
}
