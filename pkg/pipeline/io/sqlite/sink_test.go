package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/teaguesterling/yamlrows/pkg/infer"
	"github.com/teaguesterling/yamlrows/pkg/materialize"
	sqliteio "github.com/teaguesterling/yamlrows/pkg/pipeline/io/sqlite"
)

func TestSinkWritesTypedRows(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rows.db")
	sink, err := sqliteio.Open(path, "events")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	schema := infer.Schema{Columns: []infer.Column{
		{Name: "id", Type: infer.Integer(32)},
		{Name: "ok", Type: infer.Boolean},
		{Name: "note", Type: infer.String},
	}}

	ctx := context.Background()
	if err := sink.Begin(ctx, schema); err != nil {
		t.Fatalf("begin: %v", err)
	}
	rows := []materialize.Row{
		{Values: []materialize.Value{
			{Type: infer.Integer(32), Int: 1},
			{Type: infer.Boolean, Bool: true},
			{Type: infer.String, Str: "first"},
		}},
		{Values: []materialize.Value{
			{Type: infer.Integer(32), Int: 2},
			materialize.NullOf(infer.Boolean),
			materialize.NullOf(infer.String),
		}},
	}
	for _, row := range rows {
		if err := sink.WriteRow(ctx, row); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}

	var note sql.NullString
	if err := db.QueryRow("SELECT note FROM events WHERE id = 2").Scan(&note); err != nil {
		t.Fatalf("select: %v", err)
	}
	if note.Valid {
		t.Fatalf("expected NULL note, got %q", note.String)
	}
}

func TestOpenRequiresTable(t *testing.T) {
	t.Parallel()

	if _, err := sqliteio.Open(filepath.Join(t.TempDir(), "x.db"), ""); err == nil {
		t.Fatal("expected an error for a missing table name")
	}
}
