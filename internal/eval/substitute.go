package eval

import (
	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/fresh"
)

// substitute computes body[param := arg] at the term level, the
// counterpart of tsubst.Substitute for expressions (spec.md §4.5, mirrors
// _TermSubstitutionVisitor in original_source/src/interpreter.py). Lambda
// is the only binder of a term variable; every other node recurses
// structurally including through TypeLambda, which is transparent here.
func substitute(c *fresh.Counter, body ast.Expr, param string, arg ast.Expr) ast.Expr {
	switch e := body.(type) {
	case *ast.Var:
		if e.Name == param {
			return arg
		}
		return e
	case *ast.Lit:
		return e
	case *ast.List:
		elems := make([]ast.Expr, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = substitute(c, el, param, arg)
		}
		return &ast.List{Elems: elems, Pos: e.Pos}
	case *ast.Record:
		fields := make([]ast.RecordField, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = ast.RecordField{Label: f.Label, Value: substitute(c, f.Value, param, arg)}
		}
		return &ast.Record{Fields: fields, Pos: e.Pos}
	case *ast.Lambda:
		if e.Param == param {
			return e
		}
		if !freeVars(arg)[e.Param] {
			return &ast.Lambda{Param: e.Param, ParamType: e.ParamType, Body: substitute(c, e.Body, param, arg), Pos: e.Pos}
		}
		fresh := c.Name(e.Param)
		renamed := substitute(c, e.Body, e.Param, &ast.Var{Name: fresh, Pos: e.Pos})
		return &ast.Lambda{Param: fresh, ParamType: e.ParamType, Body: substitute(c, renamed, param, arg), Pos: e.Pos}
	case *ast.TypeLambda:
		return &ast.TypeLambda{Param: e.Param, Bounds: e.Bounds, Body: substitute(c, e.Body, param, arg), Pos: e.Pos}
	case *ast.App:
		return &ast.App{Func: substitute(c, e.Func, param, arg), Arg: substitute(c, e.Arg, param, arg), Pos: e.Pos}
	case *ast.TypeApp:
		return &ast.TypeApp{Func: substitute(c, e.Func, param, arg), Arg: e.Arg, Pos: e.Pos}
	case *ast.FieldAccess:
		return &ast.FieldAccess{Record: substitute(c, e.Record, param, arg), Field: e.Field, Pos: e.Pos}
	case *ast.Annotated:
		return &ast.Annotated{Expr: substitute(c, e.Expr, param, arg), As: e.As, Pos: e.Pos}
	case *ast.If:
		return &ast.If{
			Cond: substitute(c, e.Cond, param, arg),
			Then: substitute(c, e.Then, param, arg),
			Else: substitute(c, e.Else, param, arg),
			Pos:  e.Pos,
		}
	case *ast.Or:
		return &ast.Or{Left: substitute(c, e.Left, param, arg), Right: substitute(c, e.Right, param, arg), Pos: e.Pos}
	case *ast.And:
		return &ast.And{Left: substitute(c, e.Left, param, arg), Right: substitute(c, e.Right, param, arg), Pos: e.Pos}
	case *ast.Not:
		return &ast.Not{Expr: substitute(c, e.Expr, param, arg), Pos: e.Pos}
	case *ast.Rel:
		return &ast.Rel{Op: e.Op, Left: substitute(c, e.Left, param, arg), Right: substitute(c, e.Right, param, arg), Pos: e.Pos}
	case *ast.Add:
		return &ast.Add{Op: e.Op, Left: substitute(c, e.Left, param, arg), Right: substitute(c, e.Right, param, arg), Pos: e.Pos}
	case *ast.Mul:
		return &ast.Mul{Op: e.Op, Left: substitute(c, e.Left, param, arg), Right: substitute(c, e.Right, param, arg), Pos: e.Pos}
	case *ast.Neg:
		return &ast.Neg{Expr: substitute(c, e.Expr, param, arg), Pos: e.Pos}
	default:
		return body
	}
}

// freeVars returns the set of free term-variable names in e.
func freeVars(e ast.Expr) map[string]bool {
	fv := map[string]bool{}
	collectFreeVars(e, map[string]bool{}, fv)
	return fv
}

func collectFreeVars(e ast.Expr, bound map[string]bool, out map[string]bool) {
	switch e := e.(type) {
	case *ast.Var:
		if !bound[e.Name] {
			out[e.Name] = true
		}
	case *ast.Lit:
	case *ast.List:
		for _, el := range e.Elems {
			collectFreeVars(el, bound, out)
		}
	case *ast.Record:
		for _, f := range e.Fields {
			collectFreeVars(f.Value, bound, out)
		}
	case *ast.Lambda:
		inner := withBound(bound, e.Param)
		collectFreeVars(e.Body, inner, out)
	case *ast.TypeLambda:
		collectFreeVars(e.Body, bound, out)
	case *ast.App:
		collectFreeVars(e.Func, bound, out)
		collectFreeVars(e.Arg, bound, out)
	case *ast.TypeApp:
		collectFreeVars(e.Func, bound, out)
	case *ast.FieldAccess:
		collectFreeVars(e.Record, bound, out)
	case *ast.Annotated:
		collectFreeVars(e.Expr, bound, out)
	case *ast.If:
		collectFreeVars(e.Cond, bound, out)
		collectFreeVars(e.Then, bound, out)
		collectFreeVars(e.Else, bound, out)
	case *ast.Or:
		collectFreeVars(e.Left, bound, out)
		collectFreeVars(e.Right, bound, out)
	case *ast.And:
		collectFreeVars(e.Left, bound, out)
		collectFreeVars(e.Right, bound, out)
	case *ast.Not:
		collectFreeVars(e.Expr, bound, out)
	case *ast.Rel:
		collectFreeVars(e.Left, bound, out)
		collectFreeVars(e.Right, bound, out)
	case *ast.Add:
		collectFreeVars(e.Left, bound, out)
		collectFreeVars(e.Right, bound, out)
	case *ast.Mul:
		collectFreeVars(e.Left, bound, out)
		collectFreeVars(e.Right, bound, out)
	case *ast.Neg:
		collectFreeVars(e.Expr, bound, out)
	}
}

func withBound(bound map[string]bool, name string) map[string]bool {
	inner := make(map[string]bool, len(bound)+1)
	for k := range bound {
		inner[k] = true
	}
	inner[name] = true
	return inner
}
