package recorder

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// MigrationsFS returns the embedded schema directory, the production
// path taken by cmd/recorder-cli; grounded on the teacher repo's
// getMigrationsFS, minus its dev-mode filesystem branch since this
// gateway ships a single embedded schema.
func MigrationsFS() (fs.FS, error) {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("recorder: sub-filesystem for embedded migrations: %w", err)
	}
	return sub, nil
}

// newMigrate wires golang-migrate's iofs source driver against the
// already-open *sql.DB via its sqlite database driver. The returned
// instance must never have Close called on it: the sqlite driver's
// Close() would close db too, and db's lifetime is owned by Recorder.
func newMigrate(db *sql.DB, migrationsFS fs.FS) (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("recorder: iofs source driver: %w", err)
	}
	dbDriver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("recorder: sqlite migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return nil, fmt.Errorf("recorder: migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}
	return m, nil
}

type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) { log.Printf("[recorder migrate] "+format, v...) }
func (l *migrateLogger) Verbose() bool                          { return false }

// MigrateUp applies every pending migration.
func (r *Recorder) MigrateUp(migrationsFS fs.FS) error {
	m, err := newMigrate(r.db, migrationsFS)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("recorder: migrate up: %w", err)
	}
	return nil
}

// MigrateDown rolls back a single migration.
func (r *Recorder) MigrateDown(migrationsFS fs.FS) error {
	m, err := newMigrate(r.db, migrationsFS)
	if err != nil {
		return err
	}
	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("recorder: migrate down: %w", err)
	}
	return nil
}

// MigrateVersion reports the currently applied schema version.
func (r *Recorder) MigrateVersion(migrationsFS fs.FS) (uint, bool, error) {
	m, err := newMigrate(r.db, migrationsFS)
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("recorder: migrate version: %w", err)
	}
	return version, dirty, nil
}

// MigrateForce sets the recorded schema version without running any
// migration, for recovering a database left dirty by a failed run.
func (r *Recorder) MigrateForce(migrationsFS fs.FS, version int) error {
	m, err := newMigrate(r.db, migrationsFS)
	if err != nil {
		return err
	}
	if err := m.Force(version); err != nil {
		return fmt.Errorf("recorder: migrate force %d: %w", version, err)
	}
	return nil
}
