package local_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/teaguesterling/yamlrows/pkg/infer"
	"github.com/teaguesterling/yamlrows/pkg/materialize"
	"github.com/teaguesterling/yamlrows/pkg/pipeline/io/local"
)

func sampleSchema() infer.Schema {
	return infer.Schema{Columns: []infer.Column{
		{Name: "id", Type: infer.Integer(8)},
		{Name: "name", Type: infer.String},
		{Name: "score", Type: infer.Double},
	}}
}

func sampleRow() materialize.Row {
	return materialize.Row{Values: []materialize.Value{
		{Type: infer.Integer(8), Int: 7},
		{Type: infer.String, Str: "Ada, Countess"},
		materialize.NullOf(infer.Double),
	}}
}

func TestCSVSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sink := local.NewCSVSink(&buf)
	ctx := context.Background()

	if err := sink.Begin(ctx, sampleSchema()); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := sink.WriteRow(ctx, sampleRow()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	want := "id,name,score\n7,\"Ada, Countess\",\n"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestJSONLSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sink := local.NewJSONLSink(&buf)
	ctx := context.Background()

	if err := sink.Begin(ctx, sampleSchema()); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := sink.WriteRow(ctx, sampleRow()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	want := `{"id":7,"name":"Ada, Countess","score":null}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}
