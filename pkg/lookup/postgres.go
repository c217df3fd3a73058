package lookup

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Querier is the part of a pgx connection or pool PostgresQuery needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresQuery checks values with a query that takes the value as $1 and
// returns a single boolean.
type PostgresQuery struct {
	db    Querier
	query string
}

// NewPostgresQuery creates a checker for rows of table whose column equals
// the value.
func NewPostgresQuery(db Querier, table, column string) *PostgresQuery {
	query := "SELECT EXISTS (SELECT 1 FROM " + pgx.Identifier{table}.Sanitize() +
		" WHERE " + pgx.Identifier{column}.Sanitize() + " = $1)"
	return &PostgresQuery{db: db, query: query}
}

// NewPostgresRawQuery creates a checker running query, which must select one
// boolean and take the value as $1.
func NewPostgresRawQuery(db Querier, query string) *PostgresQuery {
	return &PostgresQuery{db: db, query: query}
}

// Query returns the SQL the checker runs.
func (q *PostgresQuery) Query() string {
	return q.query
}

// Exists runs the query for value.
func (q *PostgresQuery) Exists(ctx context.Context, value string) (bool, error) {
	var exists bool
	if err := q.db.QueryRow(ctx, q.query, value).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
