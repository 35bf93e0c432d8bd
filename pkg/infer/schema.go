package infer

import (
	"sort"

	"github.com/teaguesterling/yamlrows/pkg/node"
)

// ValueColumn is the synthesized column name used when a row candidate is
// not a mapping and therefore has no keys of its own.
const ValueColumn = "value"

// Column is one named, typed output column.
type Column struct {
	Name string
	Type Type
}

// Schema is the ordered column list produced by sampling. It is built once
// during the bind phase and read-only afterwards.
type Schema struct {
	Columns []Column
}

// Lookup returns the column with the given name, with ok reporting whether
// it exists.
func (s Schema) Lookup(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// SamplerOptions configures schema sampling.
type SamplerOptions struct {
	// AutoDetectTypes enables scalar type detection. When false every
	// sampled column is treated as VARCHAR.
	AutoDetectTypes bool

	// MaxRows bounds how many row candidates are folded into the schema.
	// Zero means unlimited.
	MaxRows int

	// Overrides pins a column to a caller-supplied type. Overridden
	// columns are excluded from inference entirely.
	Overrides map[string]Type
}

// Sampler folds row-candidate nodes into a unified schema, within a bounded
// row budget. Folding is sequential; call Schema once sampling is done.
type Sampler struct {
	opts  SamplerOptions
	cols  []Column
	index map[string]int
	rows  int
}

// NewSampler returns a sampler with the given options.
func NewSampler(opts SamplerOptions) *Sampler {
	return &Sampler{
		opts:  opts,
		index: make(map[string]int),
	}
}

// Full reports whether the row budget is exhausted. Adding more rows after
// Full returns true is a no-op.
func (s *Sampler) Full() bool {
	return s.opts.MaxRows > 0 && s.rows >= s.opts.MaxRows
}

// Rows returns how many row candidates have been folded in.
func (s *Sampler) Rows() int {
	return s.rows
}

// Add folds one row candidate into the running schema.
func (s *Sampler) Add(n node.Node) {
	if s.Full() {
		return
	}
	s.rows++

	if m, ok := n.(node.Mapping); ok {
		for _, e := range m.Entries {
			s.observe(e.Key, e.Value)
		}
		return
	}
	s.observe(ValueColumn, n)
}

func (s *Sampler) observe(name string, value node.Node) {
	if pinned, ok := s.opts.Overrides[name]; ok {
		if _, seen := s.index[name]; !seen {
			s.index[name] = len(s.cols)
			s.cols = append(s.cols, Column{Name: name, Type: pinned})
		}
		return
	}

	t := String
	if s.opts.AutoDetectTypes {
		t = InferNode(value)
	}
	if i, seen := s.index[name]; seen {
		s.cols[i].Type = Unify(s.cols[i].Type, t)
		return
	}
	s.index[name] = len(s.cols)
	s.cols = append(s.cols, Column{Name: name, Type: t})
}

// Schema finalizes sampling. Columns appear in first-seen order; a sampled
// column whose every observation was null comes out as VARCHAR. Override
// columns that were never observed are appended at the end in name order.
func (s *Sampler) Schema() Schema {
	cols := make([]Column, len(s.cols))
	copy(cols, s.cols)
	for i := range cols {
		if cols[i].Type.ID == TypeNull {
			cols[i].Type = String
		}
	}

	var missing []string
	for name := range s.opts.Overrides {
		if _, seen := s.index[name]; !seen {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	for _, name := range missing {
		cols = append(cols, Column{Name: name, Type: s.opts.Overrides[name]})
	}
	return Schema{Columns: cols}
}
