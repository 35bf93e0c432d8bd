package materialize

import (
	"fmt"

	"github.com/teaguesterling/yamlrows/pkg/infer"
	"github.com/teaguesterling/yamlrows/pkg/node"
)

// Mode selects how coercion failures are handled.
type Mode int

const (
	// Lenient substitutes the target type's null marker on any mismatch.
	Lenient Mode = iota
	// Strict turns any mismatch into a CoercionError that aborts the row.
	Strict
)

// CoercionError reports a node that could not be materialized as its target
// type under strict mode.
type CoercionError struct {
	Target infer.Type
	Column string
	Raw    string
}

func (e *CoercionError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("column %q: cannot coerce %q to %s", e.Column, e.Raw, e.Target)
	}
	return fmt.Sprintf("cannot coerce %q to %s", e.Raw, e.Target)
}

// Node materializes one node against a fixed target type. Under Lenient
// mode the returned error is always nil.
func Node(n node.Node, target infer.Type, mode Mode) (Value, error) {
	return coerce(n, target, mode, "")
}

// RowFromNode materializes a row candidate against a frozen schema. A
// mapping candidate fills columns by key lookup; any other candidate fills
// the synthesized value column and leaves the rest null. Under Strict mode
// the first failing column aborts the row.
func RowFromNode(n node.Node, schema infer.Schema, mode Mode) (Row, error) {
	values := make([]Value, len(schema.Columns))

	m, isMapping := n.(node.Mapping)
	for i, col := range schema.Columns {
		var cell node.Node
		switch {
		case isMapping:
			v, ok := m.Get(col.Name)
			if !ok {
				values[i] = NullOf(col.Type)
				continue
			}
			cell = v
		case col.Name == infer.ValueColumn:
			cell = n
		default:
			values[i] = NullOf(col.Type)
			continue
		}

		v, err := coerce(cell, col.Type, mode, col.Name)
		if err != nil {
			return Row{}, err
		}
		values[i] = v
	}
	return Row{Values: values}, nil
}

func coerce(n node.Node, target infer.Type, mode Mode, column string) (Value, error) {
	if n == nil || n.Kind() == node.KindNull {
		return NullOf(target), nil
	}

	switch target.ID {
	case infer.TypeString:
		// Universal fallback: scalars keep raw text, containers render
		// to compact flow text.
		if s, ok := n.(node.Scalar); ok {
			if infer.IsNullText(s.Raw) {
				return NullOf(target), nil
			}
			return Value{Type: target, Str: s.Raw}, nil
		}
		return Value{Type: target, Str: node.CompactText(n)}, nil

	case infer.TypeList:
		seq, ok := n.(node.Sequence)
		if !ok {
			return fail(n, target, mode, column)
		}
		items := make([]Value, len(seq.Items))
		for i, item := range seq.Items {
			v, err := coerce(item, *target.Elem, mode, column)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return Value{Type: target, List: items}, nil

	case infer.TypeStruct:
		m, ok := n.(node.Mapping)
		if !ok {
			return fail(n, target, mode, column)
		}
		// Declared fields are authoritative: absent keys materialize to
		// null, undeclared keys are dropped.
		fields := make([]Value, len(target.Fields))
		for i, f := range target.Fields {
			fv, ok := m.Get(f.Name)
			if !ok {
				fields[i] = NullOf(f.Type)
				continue
			}
			v, err := coerce(fv, f.Type, mode, column)
			if err != nil {
				return Value{}, err
			}
			fields[i] = v
		}
		return Value{Type: target, Struct: fields}, nil
	}

	s, ok := n.(node.Scalar)
	if !ok {
		return fail(n, target, mode, column)
	}
	if infer.IsNullText(s.Raw) {
		return NullOf(target), nil
	}
	return coerceScalar(s.Raw, target, mode, column)
}

func coerceScalar(raw string, target infer.Type, mode Mode, column string) (Value, error) {
	switch target.ID {
	case infer.TypeBoolean:
		if v, ok := infer.ParseBool(raw); ok {
			return Value{Type: target, Bool: v}, nil
		}
	case infer.TypeInteger:
		if v, width, ok := infer.ParseInteger(raw); ok && width <= target.Width {
			return Value{Type: target, Int: v}, nil
		}
	case infer.TypeDouble:
		if v, ok := infer.ParseDouble(raw); ok {
			return Value{Type: target, Float: v}, nil
		}
	case infer.TypeDate:
		if t, ok := infer.ParseDate(raw); ok {
			return Value{Type: target, Time: t}, nil
		}
	case infer.TypeTime:
		if t, ok := infer.ParseTime(raw); ok {
			return Value{Type: target, Time: t}, nil
		}
	case infer.TypeTimestamp:
		if t, ok := infer.ParseTimestamp(raw); ok {
			return Value{Type: target, Time: t}, nil
		}
	}
	return fail(node.Scalar{Raw: raw}, target, mode, column)
}

func fail(n node.Node, target infer.Type, mode Mode, column string) (Value, error) {
	if mode == Lenient {
		return NullOf(target), nil
	}
	raw := node.CompactText(n)
	if s, ok := n.(node.Scalar); ok {
		raw = s.Raw
	}
	return Value{}, &CoercionError{Target: target, Column: column, Raw: raw}
}
