package dms

import (
	"context"
	"database/sql"
	"time"

	"github.com/fisker/webdb-console/internal/model"
	"github.com/fisker/webdb-console/pkg/database"
	"github.com/fisker/webdb-console/pkg/metrics"
	"github.com/jmoiron/sqlx"
)

// QueryExecutor runs parameterized statements against the shared pool.
type QueryExecutor interface {
	Query(ctx context.Context, query string, args ...any) (*RowSet, error)
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Dialect() Dialect
}

// RowSet is a query result in driver column order.
type RowSet struct {
	Columns []string
	Rows    [][]any
}

// Executor is the sqlx backed QueryExecutor. Statements are written with ? placeholders
// and rebound to the dialect's bindvar.
type Executor struct {
	db      *sqlx.DB
	dialect Dialect
	timeout time.Duration
}

// NewExecutor wraps an existing pool; it does not open connections of its own.
func NewExecutor(db *sql.DB, driver string, timeout time.Duration) (*Executor, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}
	return &Executor{
		db:      sqlx.NewDb(db, driver),
		dialect: dialect,
		timeout: timeout,
	}, nil
}

func (e *Executor) Dialect() Dialect {
	return e.dialect
}

func (e *Executor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

// Query runs a read statement and materializes every row. Failures come back as *model.QueryError.
func (e *Executor) Query(ctx context.Context, query string, args ...any) (rs *RowSet, err error) {
	defer observe("query", time.Now(), &err)

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	rows, err := e.db.QueryContext(ctx, sqlx.Rebind(e.dialect.BindType(), query), args...)
	if err != nil {
		return nil, database.WrapError(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, database.WrapError(err)
	}

	result := &RowSet{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, database.WrapError(err)
		}

		rowData := make([]any, len(values))
		for i, v := range values {
			rowData[i] = normalize(v)
		}
		result.Rows = append(result.Rows, rowData)
	}
	if err := rows.Err(); err != nil {
		return nil, database.WrapError(err)
	}

	return result, nil
}

// Exec runs a write statement and returns the affected row count.
func (e *Executor) Exec(ctx context.Context, query string, args ...any) (affected int64, err error) {
	defer observe("exec", time.Now(), &err)

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	result, err := e.db.ExecContext(ctx, sqlx.Rebind(e.dialect.BindType(), query), args...)
	if err != nil {
		return 0, database.WrapError(err)
	}

	affected, err = result.RowsAffected()
	if err != nil {
		return 0, database.WrapError(err)
	}
	return affected, nil
}

func normalize(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return v
	}
}

func observe(operation string, start time.Time, err *error) {
	metrics.QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if *err == nil {
		return
	}
	kind := model.QueryErrUnknown
	if qe, ok := (*err).(*model.QueryError); ok {
		kind = qe.Kind
	}
	metrics.QueryErrorsTotal.WithLabelValues(operation, kind).Inc()
}
