// Package sqlite persists materialized rows into a SQLite table whose
// columns mirror the inferred schema.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/teaguesterling/yamlrows/pkg/infer"
	"github.com/teaguesterling/yamlrows/pkg/materialize"
)

// Sink writes rows into one table, batched inside a single transaction.
type Sink struct {
	db    *sql.DB
	table string

	tx     *sql.Tx
	insert *sql.Stmt
	cols   int
}

// Open opens (or creates) the database at path and prepares a sink for the
// given table name.
func Open(path, table string) (*Sink, error) {
	if table == "" {
		return nil, fmt.Errorf("table name is required")
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Sink{db: db, table: table}, nil
}

// Begin creates the table from the schema and starts the insert transaction.
// An existing table with the same name is replaced.
func (s *Sink) Begin(ctx context.Context, schema infer.Schema) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(s.table)); err != nil {
		return fmt.Errorf("drop table %s: %w", s.table, err)
	}

	ddl := make([]string, len(schema.Columns))
	marks := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		ddl[i] = quoteIdent(col.Name) + " " + sqlType(col.Type)
		marks[i] = "?"
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(s.table), strings.Join(ddl, ", "))
	if _, err := s.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s VALUES (%s)", quoteIdent(s.table), strings.Join(marks, ", ")))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	s.tx = tx
	s.insert = stmt
	s.cols = len(schema.Columns)
	return nil
}

func (s *Sink) WriteRow(ctx context.Context, row materialize.Row) error {
	args := make([]any, s.cols)
	for i, v := range row.Values {
		args[i] = sqlValue(v)
	}
	_, err := s.insert.ExecContext(ctx, args...)
	return err
}

// Close commits the pending transaction and closes the database.
func (s *Sink) Close() error {
	var firstErr error
	if s.insert != nil {
		firstErr = s.insert.Close()
	}
	if s.tx != nil {
		if err := s.tx.Commit(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := s.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// sqlType maps inferred types onto SQLite column affinities. Nested types
// are stored as their rendered text.
func sqlType(t infer.Type) string {
	switch t.ID {
	case infer.TypeBoolean:
		return "BOOLEAN"
	case infer.TypeInteger:
		return "INTEGER"
	case infer.TypeDouble:
		return "REAL"
	default:
		return "TEXT"
	}
}

func sqlValue(v materialize.Value) any {
	if v.IsNull {
		return nil
	}
	switch v.Type.ID {
	case infer.TypeBoolean:
		return v.Bool
	case infer.TypeInteger:
		return v.Int
	case infer.TypeDouble:
		return v.Float
	default:
		text, _ := materialize.Render(v)
		return text
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
