package pathquery

import (
	"github.com/teaguesterling/yamlrows/pkg/node"
)

// Shape is the structural category of a resolved node, independent of any
// inferred logical type.
type Shape string

const (
	ShapeObject Shape = "object"
	ShapeArray  Shape = "array"
	ShapeScalar Shape = "scalar"
	ShapeNull   Shape = "null"
)

// Resolve walks the path from n. ok is false when any segment fails to
// resolve; a resolved null node still counts as found.
func (p Path) Resolve(n node.Node) (node.Node, bool) {
	cur := n
	for _, seg := range p.segments {
		if seg.isIndex {
			seq, isSeq := cur.(node.Sequence)
			if !isSeq || seg.index >= len(seq.Items) {
				return nil, false
			}
			cur = seq.Items[seg.index]
			continue
		}
		m, isMap := cur.(node.Mapping)
		if !isMap {
			return nil, false
		}
		v, found := m.Get(seg.key)
		if !found {
			return nil, false
		}
		cur = v
	}
	if cur == nil {
		cur = node.Null{}
	}
	return cur, true
}

// Exists reports whether the path fully resolves against n.
func Exists(n node.Node, expr string) (bool, error) {
	p, err := Parse(expr)
	if err != nil {
		return false, err
	}
	_, ok := p.Resolve(n)
	return ok, nil
}

// Extract resolves the path and returns the sub-node. ok is false when
// resolution fails.
func Extract(n node.Node, expr string) (node.Node, bool, error) {
	p, err := Parse(expr)
	if err != nil {
		return nil, false, err
	}
	sub, ok := p.Resolve(n)
	return sub, ok, nil
}

// ExtractText resolves the path and returns the result as text: a scalar's
// raw text, or compact flow text for containers and null.
func ExtractText(n node.Node, expr string) (string, bool, error) {
	sub, ok, err := Extract(n, expr)
	if err != nil || !ok {
		return "", false, err
	}
	if s, isScalar := sub.(node.Scalar); isScalar {
		return s.Raw, true, nil
	}
	return node.CompactText(sub), true, nil
}

// TypeOf resolves the path and reports the shape of the result.
func TypeOf(n node.Node, expr string) (Shape, bool, error) {
	sub, ok, err := Extract(n, expr)
	if err != nil || !ok {
		return "", false, err
	}
	switch sub.Kind() {
	case node.KindMapping:
		return ShapeObject, true, nil
	case node.KindSequence:
		return ShapeArray, true, nil
	case node.KindScalar:
		return ShapeScalar, true, nil
	default:
		return ShapeNull, true, nil
	}
}

// Keys resolves the path and returns the mapping's keys in order. ok is
// false when resolution fails or the result is not a mapping.
func Keys(n node.Node, expr string) ([]string, bool, error) {
	sub, ok, err := Extract(n, expr)
	if err != nil || !ok {
		return nil, false, err
	}
	m, isMap := sub.(node.Mapping)
	if !isMap {
		return nil, false, nil
	}
	return m.Keys(), true, nil
}

// ArrayLength resolves the path and returns the sequence's element count.
// ok is false when resolution fails or the result is not a sequence.
func ArrayLength(n node.Node, expr string) (int, bool, error) {
	sub, ok, err := Extract(n, expr)
	if err != nil || !ok {
		return 0, false, err
	}
	seq, isSeq := sub.(node.Sequence)
	if !isSeq {
		return 0, false, nil
	}
	return len(seq.Items), true, nil
}
