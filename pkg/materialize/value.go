// Package materialize converts document nodes into typed values against a
// fixed target type, with a negotiated policy for coercion failures.
package materialize

import (
	"time"

	"github.com/teaguesterling/yamlrows/pkg/infer"
)

// Value is a typed value produced by materialization. It is always
// well-typed relative to its Type: exactly one variant field is meaningful,
// or IsNull is set. Values are immutable once produced and share no state.
type Value struct {
	Type   infer.Type
	IsNull bool

	Bool  bool
	Int   int64
	Float float64
	Time  time.Time // date, time-of-day and timestamp variants
	Str   string

	// List holds element values for list types; Struct holds field
	// values parallel to Type.Fields.
	List   []Value
	Struct []Value
}

// NullOf returns the null marker for a target type.
func NullOf(t infer.Type) Value {
	return Value{Type: t, IsNull: true}
}

// Row is one materialized output row: values parallel to the schema's
// columns. Rows are created fresh per row candidate and never mutated.
type Row struct {
	Values []Value
}
