// Package node defines the generic semi-structured document tree consumed by
// schema inference, materialization, and path queries. Trees are produced by
// the YAML parser (see Decode) and are read-only afterwards.
package node

// Kind identifies the shape of a Node.
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindSequence
	KindMapping
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Node is one value in a parsed document tree. The four implementations
// (Null, Scalar, Sequence, Mapping) are the complete, closed set.
type Node interface {
	Kind() Kind
	isNode()
}

// Null is an absent or explicitly null value.
type Null struct{}

func (Null) Kind() Kind { return KindNull }
func (Null) isNode()    {}

// Scalar holds the literal unparsed text of a scalar value. All type
// interpretation happens downstream, never at parse time.
type Scalar struct {
	Raw string
}

func (Scalar) Kind() Kind { return KindScalar }
func (Scalar) isNode()    {}

// Sequence is an ordered list of values.
type Sequence struct {
	Items []Node
}

func (Sequence) Kind() Kind { return KindSequence }
func (Sequence) isNode()    {}

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Node
}

// Mapping is an ordered list of key/value pairs. Keys are unique and
// insertion order is preserved.
type Mapping struct {
	Entries []Entry
}

func (Mapping) Kind() Kind { return KindMapping }
func (Mapping) isNode()    {}

// Get returns the value for key, with ok reporting whether the key exists.
func (m Mapping) Get(key string) (Node, bool) {
	for _, e := range m.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the mapping's keys in insertion order.
func (m Mapping) Keys() []string {
	keys := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		keys[i] = e.Key
	}
	return keys
}
