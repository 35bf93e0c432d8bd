// Package infer derives relational column types from document trees: a
// per-node type inferencer, a total unification operator, and a bounded
// sampler that folds many row candidates into one schema.
package infer

import (
	"fmt"
	"strings"
)

// TypeID identifies an inferred type variant.
type TypeID int

const (
	TypeNull TypeID = iota
	TypeBoolean
	TypeInteger
	TypeDouble
	TypeDate
	TypeTime
	TypeTimestamp
	TypeString
	TypeList
	TypeStruct
)

// Type is an inferred column type. Scalar variants use only ID (and Width for
// integers); List uses Elem; Struct uses Fields.
type Type struct {
	ID TypeID

	// Width is the integer width in bits: 8, 16, 32 or 64.
	Width int

	Elem   *Type
	Fields []Field
}

// Field is one named member of a struct type.
type Field struct {
	Name string
	Type Type
}

var (
	Null      = Type{ID: TypeNull}
	Boolean   = Type{ID: TypeBoolean}
	Double    = Type{ID: TypeDouble}
	Date      = Type{ID: TypeDate}
	Time      = Type{ID: TypeTime}
	Timestamp = Type{ID: TypeTimestamp}
	String    = Type{ID: TypeString}
)

// Integer returns an integer type of the given bit width (8, 16, 32 or 64).
func Integer(width int) Type {
	return Type{ID: TypeInteger, Width: width}
}

// List returns a list type with the given element type.
func List(elem Type) Type {
	return Type{ID: TypeList, Elem: &elem}
}

// Struct returns a struct type with the given fields.
func Struct(fields ...Field) Type {
	return Type{ID: TypeStruct, Fields: fields}
}

// Equal reports whether two types are structurally identical, including
// integer widths and struct field order.
func Equal(a, b Type) bool {
	if a.ID != b.ID {
		return false
	}
	switch a.ID {
	case TypeInteger:
		return a.Width == b.Width
	case TypeList:
		return Equal(*a.Elem, *b.Elem)
	case TypeStruct:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name || !Equal(a.Fields[i].Type, b.Fields[i].Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders the type using SQL-flavored names, e.g. BIGINT or
// STRUCT(name VARCHAR, age TINYINT).
func (t Type) String() string {
	switch t.ID {
	case TypeNull:
		return "NULL"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeInteger:
		switch t.Width {
		case 8:
			return "TINYINT"
		case 16:
			return "SMALLINT"
		case 32:
			return "INTEGER"
		default:
			return "BIGINT"
		}
	case TypeDouble:
		return "DOUBLE"
	case TypeDate:
		return "DATE"
	case TypeTime:
		return "TIME"
	case TypeTimestamp:
		return "TIMESTAMP"
	case TypeString:
		return "VARCHAR"
	case TypeList:
		return t.Elem.String() + "[]"
	case TypeStruct:
		var b strings.Builder
		b.WriteString("STRUCT(")
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name)
			b.WriteByte(' ')
			b.WriteString(f.Type.String())
		}
		b.WriteByte(')')
		return b.String()
	default:
		return "UNKNOWN"
	}
}

// ParseType parses a scalar type name as produced by Type.String. List and
// struct types are supported via the ELEM[] suffix and are parsed
// recursively; struct literals are not accepted.
func ParseType(s string) (Type, error) {
	name := strings.TrimSpace(strings.ToUpper(s))
	if strings.HasSuffix(name, "[]") {
		elem, err := ParseType(strings.TrimSuffix(name, "[]"))
		if err != nil {
			return Type{}, err
		}
		return List(elem), nil
	}
	switch name {
	case "BOOLEAN", "BOOL":
		return Boolean, nil
	case "TINYINT":
		return Integer(8), nil
	case "SMALLINT":
		return Integer(16), nil
	case "INTEGER", "INT":
		return Integer(32), nil
	case "BIGINT":
		return Integer(64), nil
	case "DOUBLE", "FLOAT8":
		return Double, nil
	case "DATE":
		return Date, nil
	case "TIME":
		return Time, nil
	case "TIMESTAMP", "DATETIME":
		return Timestamp, nil
	case "VARCHAR", "STRING", "TEXT":
		return String, nil
	default:
		return Type{}, fmt.Errorf("unknown type name %q", s)
	}
}
