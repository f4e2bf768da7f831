// Package sqldb implements the domain repositories on database/sql.
// The same queries run against Postgres (lib/pq) and SQLite (modernc.org/sqlite);
// they are written with '?' placeholders and rebound per dialect.
package sqldb

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Dialect identifies the database engine behind a connection.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// ErrUnsupportedDSN is returned for connection strings that match neither engine.
var ErrUnsupportedDSN = errors.New("unsupported database url")

// ParseDSN maps a DATABASE_URL to a driver dialect and a DSN that driver accepts.
//
// postgres:// is the legacy scheme some hosts still hand out; it is rewritten to postgresql://.
// sqlite:///relative.db and sqlite:////abs/path.db follow the usual URL convention,
// file: DSNs and bare *.db paths are passed to SQLite untouched.
func ParseDSN(raw string) (Dialect, string, error) {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return "", "", fmt.Errorf("%w: empty", ErrUnsupportedDSN)
	case strings.HasPrefix(s, "postgres://"):
		return DialectPostgres, "postgresql://" + strings.TrimPrefix(s, "postgres://"), nil
	case strings.HasPrefix(s, "postgresql://"):
		return DialectPostgres, s, nil
	case strings.HasPrefix(s, "sqlite:///"):
		return DialectSQLite, sqlitePath(strings.TrimPrefix(s, "sqlite:///")), nil
	case strings.HasPrefix(s, "sqlite://"):
		return DialectSQLite, sqlitePath(strings.TrimPrefix(s, "sqlite://")), nil
	case strings.HasPrefix(s, "file:"), s == ":memory:":
		return DialectSQLite, s, nil
	case strings.HasSuffix(s, ".db"), strings.HasSuffix(s, ".sqlite"), strings.HasSuffix(s, ".sqlite3"):
		return DialectSQLite, s, nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redact(s))
}

func sqlitePath(p string) string {
	if p == "" {
		return ":memory:"
	}
	return p
}

// redact hides everything after the scheme so credentials never reach logs.
func redact(s string) string {
	if i := strings.Index(s, "://"); i >= 0 {
		return s[:i+3] + "..."
	}
	return s
}

func driverName(d Dialect) string {
	if d == DialectSQLite {
		return "sqlite"
	}
	return "postgres"
}

// Open parses the url, opens the matching driver and pings the database.
func Open(ctx context.Context, rawURL string) (*sql.DB, Dialect, error) {
	dialect, dsn, err := ParseDSN(rawURL)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open(driverName(dialect), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		// one writer; also keeps :memory: databases on a single connection
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ping %s: %w", dialect, err)
	}
	return db, dialect, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate applies the embedded migrations for the dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(migrationsFS)
	gooseDialect, dir := "postgres", "migrations/postgres"
	if dialect == DialectSQLite {
		gooseDialect, dir = "sqlite3", "migrations/sqlite"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// rebind turns '?' placeholders into $1..$n for Postgres.
func rebind(d Dialect, query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}
