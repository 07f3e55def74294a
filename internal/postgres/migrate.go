package postgres

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/papertrails/papertrails/internal/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is a single embedded up migration
type Migration struct {
	Version    uint
	Identifier string
	SQL        string
}

// PendingMigrations returns the embedded migrations newer than applied,
// ordered by version. An applied version of 0 means nothing has run yet.
func PendingMigrations(applied uint) ([]Migration, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}
	defer src.Close()

	return pendingMigrations(src, applied)
}

func pendingMigrations(src source.Driver, applied uint) ([]Migration, error) {
	var (
		version uint
		err     error
	)
	if applied == 0 {
		version, err = src.First()
	} else {
		version, err = src.Next(applied)
	}

	var migrations []Migration
	for err == nil {
		m, readErr := readUp(src, version)
		if readErr != nil {
			return nil, readErr
		}
		migrations = append(migrations, m)
		version, err = src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return migrations, nil
}

func readUp(src source.Driver, version uint) (Migration, error) {
	r, identifier, err := src.ReadUp(version)
	if err != nil {
		return Migration{}, fmt.Errorf("failed to read migration %d: %w", version, err)
	}
	defer r.Close()

	content, err := io.ReadAll(r)
	if err != nil {
		return Migration{}, fmt.Errorf("failed to read migration %d: %w", version, err)
	}
	return Migration{Version: version, Identifier: identifier, SQL: string(content)}, nil
}

// Migrate applies every pending embedded migration.
// With dryRun the pending migrations are written to out and nothing is executed.
func (db *DB) Migrate(dryRun bool, out io.Writer) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	driver, err := migratepg.WithInstance(db.DB.DB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// m.Close is not called: it would close the shared connection pool
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	m.Log = &migrateLogger{logger: db.logger}

	applied, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema is dirty at version %d", applied)
	}

	if dryRun {
		pending, err := pendingMigrations(src, applied)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			fmt.Fprintf(out, "-- schema is up to date at version %d\n", applied)
		}
		for _, p := range pending {
			fmt.Fprintf(out, "-- %d %s\n%s\n", p.Version, p.Identifier, p.SQL)
		}
		return nil
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			db.logger.Infow("schema already up to date", "version", applied)
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	db.logger.Infow("applied migrations", "from", applied, "to", version)
	return nil
}

type migrateLogger struct {
	logger *logger.Logger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Infof(strings.TrimSuffix(format, "\n"), v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}
