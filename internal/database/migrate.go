package database

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all up migrations found at path.
func RunMigrations(dbPath, migrationsPath string) error {
	src, err := sourceURL(migrationsPath)
	if err != nil {
		return err
	}
	dsn := "sqlite3://" + filepath.ToSlash(dbPath) + "?_foreign_keys=on"

	m, err := migrate.New(src, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	return up(m)
}

// RunMigrationsWithDB allows reuse of an existing *sql.DB.
func RunMigrationsWithDB(db *sql.DB, migrationsPath string) error {
	src, err := sourceURL(migrationsPath)
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(src, "sqlite3", driver)
	if err != nil {
		return err
	}
	// closing m would close db, which belongs to the caller

	return up(m)
}

func up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func sourceURL(migrationsPath string) (string, error) {
	abs, err := filepath.Abs(migrationsPath)
	if err != nil {
		return "", fmt.Errorf("migrations path: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}
