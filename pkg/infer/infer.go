package infer

import (
	"github.com/teaguesterling/yamlrows/pkg/node"
)

// InferNode derives a candidate type from one document node. Pure and
// deterministic; containers are inferred recursively.
func InferNode(n node.Node) Type {
	switch v := n.(type) {
	case nil, node.Null:
		return Null
	case node.Scalar:
		return DetectScalar(v.Raw)
	case node.Sequence:
		if len(v.Items) == 0 {
			// Fallback element type for empty containers.
			return List(String)
		}
		elem := InferNode(v.Items[0])
		for _, item := range v.Items[1:] {
			elem = Unify(elem, InferNode(item))
		}
		if elem.ID == TypeNull {
			elem = String
		}
		return List(elem)
	case node.Mapping:
		fields := make([]Field, 0, len(v.Entries))
		for _, e := range v.Entries {
			fields = append(fields, Field{Name: e.Key, Type: InferNode(e.Value)})
		}
		return Struct(fields...)
	default:
		return String
	}
}
