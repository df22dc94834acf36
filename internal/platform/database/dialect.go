package database

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsamuelsen11/todo-service/internal/platform/config"
)

// Dialect identifies the SQL flavor behind a DB.
type Dialect string

// Supported dialects. The values match config storage drivers.
const (
	Postgres Dialect = config.DriverPostgres
	SQLite   Dialect = config.DriverSQLite
	MySQL    Dialect = config.DriverMySQL
)

// ParseDialect maps a config driver name to a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch d := Dialect(driver); d {
	case Postgres, SQLite, MySQL:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// DriverName returns the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case Postgres:
		return "pgx"
	case SQLite:
		return "sqlite"
	case MySQL:
		return "mysql"
	default:
		return string(d)
	}
}

// SupportsReturning reports whether INSERT/UPDATE ... RETURNING is available.
func (d Dialect) SupportsReturning() bool {
	return d != MySQL
}

// Rebind rewrites ? placeholders into the dialect's bind syntax. Queries are
// written with ? and rebound once at construction time. Question marks inside
// single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Placeholders returns n comma-separated ? markers for an IN (...) list.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
