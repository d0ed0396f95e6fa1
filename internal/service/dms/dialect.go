package dms

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Dialect carries the engine specific parts of catalog lookups and identifier quoting.
type Dialect interface {
	Name() string
	// CatalogLookup lists table names matching a LIKE pattern (one parameter).
	CatalogLookup() string
	// QuoteIdentifier quotes an already validated identifier.
	QuoteIdentifier(name string) string
	BindType() int
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string          { return "mysql" }
func (mysqlDialect) CatalogLookup() string { return "SHOW TABLES LIKE ?" }
func (mysqlDialect) BindType() int         { return sqlx.QUESTION }

func (mysqlDialect) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }
func (postgresDialect) CatalogLookup() string {
	return `SELECT tablename FROM pg_catalog.pg_tables WHERE schemaname = current_schema() AND tablename LIKE ?`
}
func (postgresDialect) BindType() int { return sqlx.DOLLAR }

func (postgresDialect) QuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }
func (sqliteDialect) CatalogLookup() string {
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name LIKE ? ESCAPE '\'`
}
func (sqliteDialect) BindType() int { return sqlx.QUESTION }

func (sqliteDialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// DialectFor returns the dialect registered for a driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "mysql":
		return mysqlDialect{}, nil
	case "postgres", "postgresql":
		return postgresDialect{}, nil
	case "sqlite", "sqlite3":
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("不支持的数据库类型: %s", driver)
	}
}

// escapeLike makes a value match itself literally inside a LIKE pattern using the default
// backslash escape character.
func escapeLike(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(value)
}
