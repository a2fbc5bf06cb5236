package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Placeholder selects the bind-parameter style of the underlying driver.
type Placeholder int

const (
	// PlaceholderDollar numbers parameters $1, $2, ... (PostgreSQL).
	PlaceholderDollar Placeholder = iota
	// PlaceholderQuestion uses ? for every parameter (MySQL, SQLite).
	PlaceholderQuestion
)

// SQLAdapter is a single-table Adapter over database/sql. Objects are
// represented as map[string]any keyed by column name.
type SQLAdapter struct {
	db          *sql.DB
	table       string
	idColumn    string
	placeholder Placeholder
}

// SQLOption configures an SQLAdapter.
type SQLOption func(*SQLAdapter)

// WithIDColumn overrides the primary key column. Defaults to "id".
func WithIDColumn(name string) SQLOption {
	return func(a *SQLAdapter) {
		if name != "" {
			a.idColumn = name
		}
	}
}

// WithPlaceholder sets the bind-parameter style. Defaults to
// PlaceholderDollar.
func WithPlaceholder(p Placeholder) SQLOption {
	return func(a *SQLAdapter) {
		a.placeholder = p
	}
}

// NewSQL creates an adapter bound to one table.
func NewSQL(db *sql.DB, table string, opts ...SQLOption) (*SQLAdapter, error) {
	if table == "" {
		return nil, ErrInvalidTable
	}
	a := &SQLAdapter{db: db, table: table, idColumn: "id"}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Load selects the row with the given primary key and returns it as a
// map[string]any, or nil when no row matches.
func (a *SQLAdapter) Load(ctx context.Context, id any) (any, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = %s", a.table, a.idColumn, a.bind(1))
	rows, err := a.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("model: loading from %s: %w", a.table, err)
	}
	defer rows.Close()

	obj, err := scanRow(rows)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// ReadField reads a field value using the default extraction strategy.
func (a *SQLAdapter) ReadField(obj any, accessor string) (any, bool) {
	return ReadFieldValue(obj, accessor)
}

// Persist inserts a new row when obj is nil, otherwise updates the existing
// row by primary key. Columns are written in sorted order so generated SQL
// is deterministic. Returns the stored object as a map[string]any.
func (a *SQLAdapter) Persist(ctx context.Context, obj any, values map[string]any) (any, error) {
	columns := slices.Sorted(maps.Keys(values))
	if len(columns) == 0 {
		return obj, nil
	}
	args := make([]any, 0, len(columns)+1)
	for _, col := range columns {
		args = append(args, values[col])
	}

	current, _ := obj.(map[string]any)
	if current == nil {
		marks := make([]string, len(columns))
		for i := range columns {
			marks[i] = a.bind(i + 1)
		}
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			a.table, strings.Join(columns, ", "), strings.Join(marks, ", "))
		if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("model: inserting into %s: %w", a.table, err)
		}
		stored := make(map[string]any, len(values))
		maps.Copy(stored, values)
		return stored, nil
	}

	sets := make([]string, len(columns))
	for i, col := range columns {
		sets[i] = col + " = " + a.bind(i+1)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		a.table, strings.Join(sets, ", "), a.idColumn, a.bind(len(columns)+1))
	args = append(args, current[a.idColumn])
	if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("model: updating %s: %w", a.table, err)
	}

	stored := make(map[string]any, len(current)+len(values))
	maps.Copy(stored, current)
	maps.Copy(stored, values)
	return stored, nil
}

func (a *SQLAdapter) bind(n int) string {
	if a.placeholder == PlaceholderQuestion {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

func scanRow(rows *sql.Rows) (map[string]any, error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("model: scanning row: %w", err)
		}
		return nil, ErrNotFound
	}
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("model: reading columns: %w", err)
	}
	cells := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range cells {
		ptrs[i] = &cells[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("model: scanning row: %w", err)
	}
	obj := make(map[string]any, len(columns))
	for i, col := range columns {
		if b, ok := cells[i].([]byte); ok {
			obj[col] = string(b)
			continue
		}
		obj[col] = cells[i]
	}
	return obj, nil
}
