package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite"

	"minebench/internal/core/domain"
	coreerrors "minebench/internal/core/errors"
)

const defaultTable = "benchmarks"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Source reads benchmark rows from a local SQLite database file.
type Source struct {
	db    *sql.DB
	table string
}

// Open opens the database at path. The table name must be a plain identifier.
func Open(path, table string) (*Source, error) {
	if table == "" {
		table = defaultTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	return &Source{db: db, table: table}, nil
}

// NewSource wraps an already opened handle.
func NewSource(db *sql.DB, table string) *Source {
	if table == "" {
		table = defaultTable
	}
	return &Source{db: db, table: table}
}

func (s *Source) Close() error {
	return s.db.Close()
}

// Fetch selects every column ordered by created_at descending.
func (s *Source) Fetch(ctx context.Context, limit int) ([]domain.RawRecord, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY created_at DESC", s.table)
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", coreerrors.ErrSourceUnavailable, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", coreerrors.ErrSourceUnavailable, err)
	}

	out := []domain.RawRecord{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", coreerrors.ErrSourceUnavailable, err)
		}

		row := make(domain.RawRecord, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", coreerrors.ErrSourceUnavailable, err)
	}
	return out, nil
}
