// Package core defines the adapter contracts between document sources, the
// reader, and row sinks.
package core

import (
	"context"

	"github.com/teaguesterling/yamlrows/pkg/infer"
	"github.com/teaguesterling/yamlrows/pkg/materialize"
)

// Payload is one raw document stream, typically a file's bytes.
type Payload struct {
	Name string
	Data []byte
}

// Source loads raw document payloads for extraction.
type Source interface {
	Load(ctx context.Context) ([]Payload, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]Payload, error)

func (f SourceFunc) Load(ctx context.Context) ([]Payload, error) {
	return f(ctx)
}

// RowSink persists materialized rows. Begin is called once with the frozen
// schema before the first row; Close flushes and releases resources.
type RowSink interface {
	Begin(ctx context.Context, schema infer.Schema) error
	WriteRow(ctx context.Context, row materialize.Row) error
	Close() error
}
