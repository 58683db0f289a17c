package ast

// TypeEquals implements the structural equality of §3.2: Record equality
// ignores declaration order (label-multiset equality), and ForAll equality
// is NOT alpha-aware — two foralls are equal only if their bound names,
// bounds and bodies are syntactically identical. This is the source
// semantics; the checker compensates for it via capture-avoiding
// substitution rather than by alpha-normalizing here.
func TypeEquals(a, b Type) bool {
	switch a := a.(type) {
	case *Named:
		b, ok := b.(*Named)
		return ok && a.Name == b.Name
	case *Arrow:
		b, ok := b.(*Arrow)
		return ok && TypeEquals(a.Dom, b.Dom) && TypeEquals(a.Cod, b.Cod)
	case *TApp:
		b, ok := b.(*TApp)
		return ok && TypeEquals(a.Func, b.Func) && TypeEquals(a.Arg, b.Arg)
	case *ListType:
		b, ok := b.(*ListType)
		return ok && TypeEquals(a.Elem, b.Elem)
	case *RecordType:
		b, ok := b.(*RecordType)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}
		bFields := make(map[string]Type, len(b.Fields))
		for _, f := range b.Fields {
			bFields[f.Label] = f.Type
		}
		for _, f := range a.Fields {
			bt, ok := bFields[f.Label]
			if !ok || !TypeEquals(f.Type, bt) {
				return false
			}
		}
		return true
	case *ForAll:
		b, ok := b.(*ForAll)
		if !ok || a.Param != b.Param || len(a.Bounds) != len(b.Bounds) {
			return false
		}
		for i := range a.Bounds {
			if a.Bounds[i] != b.Bounds[i] {
				return false
			}
		}
		return TypeEquals(a.Body, b.Body)
	default:
		return false
	}
}
