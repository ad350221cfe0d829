package repository

import (
	"context"
	"errors"

	"storefront-analytics/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier runs a parameterized statement. *pgxpool.Pool, *pgx.Conn and
// pgx.Tx all satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// QueryError is returned by Execute for any failure while running a query or
// reading its rows. Message carries the database's own message when there is
// one.
type QueryError struct {
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func newQueryError(err error) *QueryError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &QueryError{Message: pgErr.Message, Err: err}
	}
	return &QueryError{Message: err.Error(), Err: err}
}

// Executor runs parameterized queries on a shared pool and returns decoded
// rows.
type Executor struct {
	db Querier
}

// NewExecutor creates an executor over db.
func NewExecutor(db Querier) *Executor {
	return &Executor{db: db}
}

// Execute runs query with args bound positionally and returns every row as a
// column name → value map, in result order. It blocks while the pool has no
// free connection.
func (e *Executor) Execute(ctx context.Context, query string, args ...any) ([]model.Row, error) {
	rows, err := e.db.Query(ctx, query, args...)
	if err != nil {
		return nil, newQueryError(err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, newQueryError(err)
	}

	return result, nil
}
