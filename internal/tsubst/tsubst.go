// Package tsubst implements the capture-avoiding type substitution of
// spec.md §4.3.1. It is shared by the type resolver (§4.2, reducing
// Named/App) and the type checker (§4.3, eliminating TypeApp) since both
// need exactly the same textbook-substitution-lifted-to-types algorithm.
package tsubst

import (
	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/fresh"
)

// Substitute computes body[param := arg], renaming bound type variables in
// body with c as needed to avoid capturing a free variable of arg.
func Substitute(c *fresh.Counter, body ast.Type, param string, arg ast.Type) ast.Type {
	switch t := body.(type) {
	case *ast.Named:
		if t.Name == param {
			return arg
		}
		return t
	case *ast.Arrow:
		return &ast.Arrow{
			Dom: Substitute(c, t.Dom, param, arg),
			Cod: Substitute(c, t.Cod, param, arg),
			Pos: t.Pos,
		}
	case *ast.TApp:
		return &ast.TApp{
			Func: Substitute(c, t.Func, param, arg),
			Arg:  Substitute(c, t.Arg, param, arg),
			Pos:  t.Pos,
		}
	case *ast.ListType:
		return &ast.ListType{Elem: Substitute(c, t.Elem, param, arg), Pos: t.Pos}
	case *ast.RecordType:
		fields := make([]ast.RecordTypeField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = ast.RecordTypeField{Label: f.Label, Type: Substitute(c, f.Type, param, arg)}
		}
		return &ast.RecordType{Fields: fields, Pos: t.Pos}
	case *ast.ForAll:
		if t.Param == param {
			// (forall a. B)[a := τ] = forall a. B — shadowed, body untouched.
			return t
		}
		if !FreeVars(arg)[t.Param] {
			return &ast.ForAll{
				Param:  t.Param,
				Bounds: t.Bounds,
				Body:   Substitute(c, t.Body, param, arg),
				Pos:    t.Pos,
			}
		}
		// t.Param occurs free in arg: alpha-rename to a fresh name first.
		fresh := c.Name(t.Param)
		renamed := Substitute(c, t.Body, t.Param, &ast.Named{Name: fresh, Pos: t.Pos})
		return &ast.ForAll{
			Param:  fresh,
			Bounds: t.Bounds,
			Body:   Substitute(c, renamed, param, arg),
			Pos:    t.Pos,
		}
	default:
		return body
	}
}

// FreeVars returns the set of free type-variable names occurring in t.
func FreeVars(t ast.Type) map[string]bool {
	fv := map[string]bool{}
	collectFreeVars(t, map[string]bool{}, fv)
	return fv
}

func collectFreeVars(t ast.Type, bound map[string]bool, out map[string]bool) {
	switch t := t.(type) {
	case *ast.Named:
		if !bound[t.Name] {
			out[t.Name] = true
		}
	case *ast.Arrow:
		collectFreeVars(t.Dom, bound, out)
		collectFreeVars(t.Cod, bound, out)
	case *ast.TApp:
		collectFreeVars(t.Func, bound, out)
		collectFreeVars(t.Arg, bound, out)
	case *ast.ListType:
		collectFreeVars(t.Elem, bound, out)
	case *ast.RecordType:
		for _, f := range t.Fields {
			collectFreeVars(f.Type, bound, out)
		}
	case *ast.ForAll:
		inner := make(map[string]bool, len(bound)+1)
		for k := range bound {
			inner[k] = true
		}
		inner[t.Param] = true
		collectFreeVars(t.Body, inner, out)
	}
}
