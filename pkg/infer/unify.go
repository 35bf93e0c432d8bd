package infer

// Unify combines two inferred types into one. The operation is total: every
// pair of types has a result, with VARCHAR as the universal fallback for
// shapes that cannot be reconciled. Null never forces widening.
func Unify(a, b Type) Type {
	if a.ID == TypeNull {
		return b
	}
	if b.ID == TypeNull {
		return a
	}
	if a.ID == b.ID {
		switch a.ID {
		case TypeInteger:
			if a.Width >= b.Width {
				return a
			}
			return b
		case TypeList:
			return List(Unify(*a.Elem, *b.Elem))
		case TypeStruct:
			return Struct(unifyFields(a.Fields, b.Fields)...)
		default:
			return a
		}
	}
	// Integer widens to double; every other cross-kind pair falls back.
	if a.ID == TypeInteger && b.ID == TypeDouble || a.ID == TypeDouble && b.ID == TypeInteger {
		return Double
	}
	return String
}

// unifyFields merges two struct field lists by name union. Order is
// first-seen: all of a's fields, then b's fields not present in a. A field
// present on both sides unifies its two types; a field present on one side
// keeps its single observed type.
func unifyFields(a, b []Field) []Field {
	out := make([]Field, len(a))
	copy(out, a)
	index := make(map[string]int, len(a))
	for i, f := range a {
		index[f.Name] = i
	}
	for _, f := range b {
		if i, ok := index[f.Name]; ok {
			out[i].Type = Unify(out[i].Type, f.Type)
			continue
		}
		out = append(out, f)
	}
	return out
}
