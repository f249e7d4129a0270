// Package store persists the wallet ledger and the round history in SQLite or PostgreSQL
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	schema "blackjack-server/sql"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                // postgres driver
	_ "modernc.org/sqlite"                               // sqlite driver
)

// Driver names
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// queryTimeout bounds the queries made through interfaces that carry no context
const queryTimeout = 5 * time.Second

// ErrUnknownDriver is returned by Open for anything but sqlite or postgres
var ErrUnknownDriver = errors.New("unknown store driver")

// Scanner is an interface that sql should've provided
type Scanner interface {
	Scan(...interface{}) error
}

// DB is a database handle that knows which placeholder style its driver uses
type DB struct {
	*sql.DB
	driver string
	logger logrus.FieldLogger
}

// Open opens and pings the database
// A SQLite database is limited to a single connection so an in-memory database is shared by every query.
func Open(ctx context.Context, logger logrus.FieldLogger, driver, dsn string) (*DB, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{
		DB:     db,
		driver: driver,
		logger: logger.WithField("driver", driver),
	}, nil
}

// Driver returns the name of the driver
func (d *DB) Driver() string {
	return d.driver
}

// rebind rewrites ? placeholders to $n for postgres
func (d *DB) rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// migration is one numbered up file from the embedded migrations
type migration struct {
	version int
	name    string
}

// sqliteMigrations lists the embedded up migrations in version order
func sqliteMigrations() ([]migration, error) {
	names, err := fs.Glob(schema.Migrations, "*.up.sql")
	if err != nil {
		return nil, err
	}

	migrations := make([]migration, 0, len(names))
	for _, name := range names {
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s has no version", name)
		}

		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("migration %s has no version: %w", name, err)
		}

		migrations = append(migrations, migration{version: version, name: name})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].version < migrations[j].version
	})

	return migrations, nil
}

// splitStatements splits a migration file on semicolons
func splitStatements(contents string) []string {
	var stmts []string
	for _, stmt := range strings.Split(contents, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}

	return stmts
}

// Migrate brings the schema up to date
// PostgreSQL is migrated with the files in migrationsPath, SQLite with the embedded copy of the same files.
func (d *DB) Migrate(ctx context.Context, migrationsPath string) error {
	if d.driver == DriverSQLite {
		return d.migrateSQLite(ctx)
	}

	d.logger.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(d.DB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), DriverPostgres, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func (d *DB) migrateSQLite(ctx context.Context) error {
	migrations, err := sqliteMigrations()
	if err != nil {
		return err
	}

	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	commit := false
	defer func() {
		if !commit {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`); err != nil {
		return err
	}

	var current int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		contents, err := fs.ReadFile(schema.Migrations, m.name)
		if err != nil {
			return err
		}

		for _, stmt := range splitStatements(string(contents)) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("could not migrate %s: %w", m.name, err)
			}
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
			return err
		}

		d.logger.WithField("migration", m.name).Info("applied migration")
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	commit = true
	return nil
}

// WaitFor pings the database until it answers or ctx is done
func WaitFor(ctx context.Context, logger logrus.FieldLogger, driver, dsn string) (*DB, error) {
	for {
		db, err := Open(ctx, logger, driver, dsn)
		if err == nil {
			return db, nil
		}

		if errors.Is(err, ErrUnknownDriver) {
			return nil, err
		}

		logger.WithError(err).Warn("database is not ready")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
}
