package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tasktracker/internal/logger"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

//go:embed schema_postgres.sql
var postgresSchema string

//go:embed schema_sqlite.sql
var sqliteSchema string

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Target is a parsed DATABASE_URL.
type Target struct {
	Dialect Dialect
	Driver  string
	DSN     string
	// Path is the database file for SQLite targets.
	Path string
}

// DB wraps the sqlx handle with the dialect it was opened for.
type DB struct {
	*sqlx.DB
	Dialect Dialect
}

// ParseURL understands postgres://, postgresql:// and sqlite:// URLs.
// sqlite://relative/path.db and sqlite:///abs/path.db are both accepted,
// as is sqlite://:memory:.
func ParseURL(raw string) (Target, error) {
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		if _, err := url.Parse(raw); err != nil {
			return Target{}, fmt.Errorf("parse postgres url: %w", err)
		}
		return Target{Dialect: DialectPostgres, Driver: "pgx", DSN: raw}, nil

	case strings.HasPrefix(raw, "sqlite://"):
		path := strings.TrimPrefix(raw, "sqlite://")
		if path == "" {
			return Target{}, errors.New("sqlite url has no path")
		}
		return Target{
			Dialect: DialectSQLite,
			Driver:  "sqlite3",
			DSN:     "file:" + path + "?_foreign_keys=on&_busy_timeout=5000",
			Path:    path,
		}, nil
	}

	return Target{}, fmt.Errorf("unsupported database url scheme: %q", raw)
}

// Open connects to the database described by databaseURL and pings it.
func Open(ctx context.Context, databaseURL string) (*DB, error) {
	target, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	if target.Dialect == DialectSQLite && target.Path != ":memory:" {
		if dir := filepath.Dir(target.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
	}

	conn, err := sqlx.Open(target.Driver, target.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", target.Dialect, err)
	}

	if target.Dialect == DialectSQLite {
		// one writer at a time; also keeps :memory: on a single connection
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(20)
		conn.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", target.Dialect, err)
	}

	return &DB{DB: conn, Dialect: target.Dialect}, nil
}

// Connect opens the database and applies the schema, exiting on failure.
func Connect(databaseURL string) *DB {
	ctx := context.Background()

	d, err := Open(ctx, databaseURL)
	if err != nil {
		logger.Fatal("failed to open database", "error", err)
	}

	if err := d.Migrate(ctx); err != nil {
		_ = d.Close()
		logger.Fatal("failed to apply schema", "error", err)
	}

	logger.Info("database connected", "dialect", d.Dialect)
	return d
}

// Schema returns the CREATE TABLE script for the dialect.
func (d *DB) Schema() string {
	return SchemaFor(d.Dialect)
}

// SchemaFor returns the embedded schema for a dialect.
func SchemaFor(dialect Dialect) string {
	if dialect == DialectPostgres {
		return postgresSchema
	}
	return sqliteSchema
}

// Migrate creates missing tables. Safe to run on every start.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.ExecContext(ctx, d.Schema()); err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}
	return nil
}

// Builder returns a squirrel builder with the dialect's placeholder format.
func (d *DB) Builder() squirrel.StatementBuilderType {
	if d.Dialect == DialectPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// WithTx runs fn inside a transaction, committing when fn returns nil.
func (d *DB) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := d.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a UNIQUE constraint failure from
// either supported driver.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}
