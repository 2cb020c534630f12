package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migration directions accepted by RunMigrations.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// MigrateOptions selects the schema and what to do with it. Dir holds one
// sub-directory per dialect: postgresql and mysql.
type MigrateOptions struct {
	Driver           string
	ConnectionString string
	Dir              string
	Direction        string
	Steps            int
}

// RunMigrations moves the accounts schema up to the latest version, down by
// Steps, or prints the applied version.
func RunMigrations(logger *slog.Logger, writer io.Writer, opts MigrateOptions) error {
	if opts.Direction == MigrateDown && opts.Steps < 1 {
		return fmt.Errorf("down needs a positive step count, got %d", opts.Steps)
	}

	dialect := "postgresql"
	if opts.Driver == "mysql" {
		dialect = "mysql"
	}
	source := "file://" + filepath.ToSlash(filepath.Join(opts.Dir, dialect))

	m, err := migrate.New(source, migrationDatabaseURL(opts.Driver, opts.ConnectionString))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	switch opts.Direction {
	case MigrateUp:
		err = m.Up()
	case MigrateDown:
		err = m.Steps(-opts.Steps)
	case MigrateStatus:
		return printMigrationStatus(m, writer)
	default:
		return fmt.Errorf("unknown migration direction %q", opts.Direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate %s: %w", opts.Direction, err)
	}

	logger.Info("migrations applied",
		slog.String("driver", opts.Driver),
		slog.String("direction", opts.Direction),
	)
	return printMigrationStatus(m, writer)
}

func printMigrationStatus(m *migrate.Migrate, writer io.Writer) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		_, _ = fmt.Fprintln(writer, "Schema version: none")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Schema version: %d\n", version)
	if dirty {
		_, _ = fmt.Fprintln(writer, "Schema is dirty: fix the failed migration and force its version")
	}
	return nil
}

// migrationDatabaseURL turns a go-sql-driver/mysql DSN into the mysql:// URL
// golang-migrate expects. PostgreSQL URLs are used as they are.
func migrationDatabaseURL(driver, connectionString string) string {
	if driver == "mysql" {
		return "mysql://" + connectionString
	}
	return connectionString
}
