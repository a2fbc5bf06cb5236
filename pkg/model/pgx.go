package model

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAdapter is a single-table Adapter over a pgx connection pool. It keeps
// the same object representation as SQLAdapter (map[string]any keyed by
// column) but uses PostgreSQL RETURNING clauses so created rows come back
// with their generated columns.
type PgxAdapter struct {
	pool     *pgxpool.Pool
	table    string
	idColumn string
}

// PgxOption configures a PgxAdapter.
type PgxOption func(*PgxAdapter)

// WithPgxIDColumn overrides the primary key column. Defaults to "id".
func WithPgxIDColumn(name string) PgxOption {
	return func(a *PgxAdapter) {
		if name != "" {
			a.idColumn = name
		}
	}
}

// NewPgx creates an adapter bound to one table.
func NewPgx(pool *pgxpool.Pool, table string, opts ...PgxOption) (*PgxAdapter, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	a := &PgxAdapter{pool: pool, table: table, idColumn: "id"}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Load selects the row with the given primary key, or nil when absent.
func (a *PgxAdapter) Load(ctx context.Context, id any) (any, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", a.table, a.idColumn)
	rows, err := a.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("model: loading from %s: %w", a.table, err)
	}
	obj, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("model: loading from %s: %w", a.table, err)
	}
	return obj, nil
}

// ReadField reads a field value using the default extraction strategy.
func (a *PgxAdapter) ReadField(obj any, accessor string) (any, bool) {
	return ReadFieldValue(obj, accessor)
}

// Persist inserts or updates the row and returns the stored row as read
// back from the database.
func (a *PgxAdapter) Persist(ctx context.Context, obj any, values map[string]any) (any, error) {
	columns := slices.Sorted(maps.Keys(values))
	if len(columns) == 0 {
		return obj, nil
	}
	args := make([]any, 0, len(columns)+1)
	for _, col := range columns {
		args = append(args, values[col])
	}

	var query string
	current, _ := obj.(map[string]any)
	if current == nil {
		marks := make([]string, len(columns))
		for i := range columns {
			marks[i] = fmt.Sprintf("$%d", i+1)
		}
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
			a.table, strings.Join(columns, ", "), strings.Join(marks, ", "))
	} else {
		sets := make([]string, len(columns))
		for i, col := range columns {
			sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
		}
		query = fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d RETURNING *",
			a.table, strings.Join(sets, ", "), a.idColumn, len(columns)+1)
		args = append(args, current[a.idColumn])
	}

	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("model: persisting to %s: %w", a.table, err)
	}
	stored, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("model: persisting to %s: %w", a.table, err)
	}
	return stored, nil
}
