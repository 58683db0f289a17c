package check

import "github.com/tlcore-lang/tlcore/internal/ast"

// unify implements spec.md §4.3's "simple unification": match pattern
// (a type that may mention the single free variable param) against
// actual, returning the type param must denote for the match to hold.
// Every occurrence of param in pattern must agree on the same
// substitute; anything else requires structural equality.
func unify(param string, pattern, actual ast.Type) (ast.Type, bool) {
	sub, ok := match(param, pattern, actual)
	if !ok || sub == nil {
		return nil, false
	}
	return sub, true
}

// match returns (substitute, true) if pattern matches actual under the
// single-variable substitution problem, (nil, true) if they match with no
// occurrence of param at all, or (nil, false) on mismatch.
func match(param string, pattern, actual ast.Type) (ast.Type, bool) {
	switch p := pattern.(type) {
	case *ast.Named:
		if p.Name == param {
			return actual, true
		}
		if ast.TypeEquals(pattern, actual) {
			return nil, true
		}
		return nil, false
	case *ast.Arrow:
		a, ok := actual.(*ast.Arrow)
		if !ok {
			return nil, false
		}
		s1, ok1 := match(param, p.Dom, a.Dom)
		if !ok1 {
			return nil, false
		}
		s2, ok2 := match(param, p.Cod, a.Cod)
		if !ok2 {
			return nil, false
		}
		return combine(s1, s2)
	case *ast.ListType:
		a, ok := actual.(*ast.ListType)
		if !ok {
			return nil, false
		}
		return match(param, p.Elem, a.Elem)
	case *ast.RecordType:
		a, ok := actual.(*ast.RecordType)
		if !ok || len(a.Fields) != len(p.Fields) {
			return nil, false
		}
		actualFields := make(map[string]ast.Type, len(a.Fields))
		for _, f := range a.Fields {
			actualFields[f.Label] = f.Type
		}
		var sub ast.Type
		for _, f := range p.Fields {
			at, ok := actualFields[f.Label]
			if !ok {
				return nil, false
			}
			s, ok := match(param, f.Type, at)
			if !ok {
				return nil, false
			}
			var combOk bool
			sub, combOk = combine(sub, s)
			if !combOk {
				return nil, false
			}
		}
		return sub, true
	case *ast.TApp:
		a, ok := actual.(*ast.TApp)
		if !ok {
			return nil, false
		}
		s1, ok1 := match(param, p.Func, a.Func)
		if !ok1 {
			return nil, false
		}
		s2, ok2 := match(param, p.Arg, a.Arg)
		if !ok2 {
			return nil, false
		}
		return combine(s1, s2)
	default:
		// ForAll patterns are not part of simple first-argument unification
		// (spec §1 Non-goals); require exact equality instead.
		if ast.TypeEquals(pattern, actual) {
			return nil, true
		}
		return nil, false
	}
}

func combine(s1, s2 ast.Type) (ast.Type, bool) {
	if s1 == nil {
		return s2, true
	}
	if s2 == nil {
		return s1, true
	}
	if !ast.TypeEquals(s1, s2) {
		return nil, false
	}
	return s1, true
}
