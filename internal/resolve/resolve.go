// Package resolve implements §4.2: it erases every type-alias name and
// type-level application down to canonical form, leaving no TypeAssign
// statement and no Named type denoting anything but a base type or a
// currently-bound type variable. Grounded on the original
// TypeSolverVisitor (original_source/src/type_solver.py): a global alias
// table built up as TypeAssign statements are visited in order, plus an
// explicit stack of in-scope type-variable names.
package resolve

import (
	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/errors"
	"github.com/tlcore-lang/tlcore/internal/fresh"
	"github.com/tlcore-lang/tlcore/internal/tsubst"
)

var builtins = map[string]bool{"Bool": true, "Int": true, "String": true}

// Resolver reduces aliases and type applications to canonical form.
type Resolver struct {
	aliases map[string]ast.Type
	scope   []string
	fresh   *fresh.Counter
}

// New creates a Resolver with an empty alias table.
func New() *Resolver {
	return &Resolver{aliases: map[string]ast.Type{}, fresh: fresh.NewCounter()}
}

// Resolve reduces every statement in prog, dropping TypeAssign statements
// (their content is folded into the alias table) and returning a new
// Program. Calling Resolve twice on its own output is a no-op (spec §8
// property 2): the second pass finds no TypeAssign left and every Named
// type already canonical.
func (r *Resolver) Resolve(prog *ast.Program) (*ast.Program, error) {
	out := &ast.Program{}
	for _, stmt := range prog.Stmts {
		resolved, keep, err := r.stmt(stmt)
		if err != nil {
			return nil, err
		}
		if keep {
			out.Stmts = append(out.Stmts, resolved)
		}
	}
	return out, nil
}

func (r *Resolver) stmt(stmt ast.Stmt) (ast.Stmt, bool, error) {
	switch s := stmt.(type) {
	case *ast.TypeAssign:
		t, err := r.typ(s.Type)
		if err != nil {
			return nil, false, err
		}
		r.aliases[s.Name] = t
		return nil, false, nil
	case *ast.Assign:
		e, err := r.expr(s.Expr)
		if err != nil {
			return nil, false, err
		}
		return &ast.Assign{Name: s.Name, Expr: e, Pos: s.Pos}, true, nil
	case *ast.ExprStmt:
		e, err := r.expr(s.Expr)
		if err != nil {
			return nil, false, err
		}
		return &ast.ExprStmt{Expr: e, Pos: s.Pos}, true, nil
	case *ast.TraitFieldEnv:
		t, err := r.typ(s.Type)
		if err != nil {
			return nil, false, err
		}
		return &ast.TraitFieldEnv{Field: s.Field, Trait: s.Trait, Type: t, Pos: s.Pos}, true, nil
	case *ast.InstanceEnv:
		at, err := r.typ(s.At)
		if err != nil {
			return nil, false, err
		}
		e, err := r.expr(s.Expr)
		if err != nil {
			return nil, false, err
		}
		return &ast.InstanceEnv{Trait: s.Trait, At: at, Expr: e, Pos: s.Pos}, true, nil
	default:
		// Trait/Struct/Impl must already be gone (desugar ran first); if
		// one reaches here it is a programming error in the pipeline, not
		// a user-facing one, so we let it surface as-is.
		return stmt, true, nil
	}
}

func (r *Resolver) push(name string) { r.scope = append(r.scope, name) }
func (r *Resolver) pop()             { r.scope = r.scope[:len(r.scope)-1] }
func (r *Resolver) bound(name string) bool {
	for _, n := range r.scope {
		if n == name {
			return true
		}
	}
	return false
}

// typ resolves a single type to canonical form.
func (r *Resolver) typ(t ast.Type) (ast.Type, error) {
	switch t := t.(type) {
	case *ast.Named:
		if builtins[t.Name] || r.bound(t.Name) {
			return t, nil
		}
		if alias, ok := r.aliases[t.Name]; ok {
			return r.typ(alias)
		}
		return nil, errors.New("resolve", errors.RES001, t.Pos, "unknown type %q", t.Name)
	case *ast.Arrow:
		dom, err := r.typ(t.Dom)
		if err != nil {
			return nil, err
		}
		cod, err := r.typ(t.Cod)
		if err != nil {
			return nil, err
		}
		return &ast.Arrow{Dom: dom, Cod: cod, Pos: t.Pos}, nil
	case *ast.TApp:
		fn, err := r.typ(t.Func)
		if err != nil {
			return nil, err
		}
		arg, err := r.typ(t.Arg)
		if err != nil {
			return nil, err
		}
		fa, ok := fn.(*ast.ForAll)
		if !ok || len(fa.Bounds) != 0 {
			return nil, errors.New("resolve", errors.RES002, t.Pos, "for-all type expected, got %q", ast.PrintType(fn))
		}
		reduced := tsubst.Substitute(r.fresh, fa.Body, fa.Param, arg)
		return r.typ(reduced)
	case *ast.ListType:
		elem, err := r.typ(t.Elem)
		if err != nil {
			return nil, err
		}
		return &ast.ListType{Elem: elem, Pos: t.Pos}, nil
	case *ast.RecordType:
		fields := make([]ast.RecordTypeField, len(t.Fields))
		for i, f := range t.Fields {
			ft, err := r.typ(f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.RecordTypeField{Label: f.Label, Type: ft}
		}
		return &ast.RecordType{Fields: fields, Pos: t.Pos}, nil
	case *ast.ForAll:
		r.push(t.Param)
		body, err := r.typ(t.Body)
		r.pop()
		if err != nil {
			return nil, err
		}
		return &ast.ForAll{Param: t.Param, Bounds: t.Bounds, Body: body, Pos: t.Pos}, nil
	default:
		return t, nil
	}
}

// expr resolves every type that occurs within a term (parameter
// annotations, type-application arguments, and annotation targets),
// leaving term structure otherwise untouched.
func (r *Resolver) expr(e ast.Expr) (ast.Expr, error) {
	switch e := e.(type) {
	case *ast.Var, *ast.Lit:
		return e, nil
	case *ast.List:
		elems := make([]ast.Expr, len(e.Elems))
		for i, el := range e.Elems {
			re, err := r.expr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = re
		}
		return &ast.List{Elems: elems, Pos: e.Pos}, nil
	case *ast.Record:
		fields := make([]ast.RecordField, len(e.Fields))
		for i, f := range e.Fields {
			rv, err := r.expr(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.RecordField{Label: f.Label, Value: rv}
		}
		return &ast.Record{Fields: fields, Pos: e.Pos}, nil
	case *ast.Lambda:
		var pt ast.Type
		if e.ParamType != nil {
			var err error
			pt, err = r.typ(e.ParamType)
			if err != nil {
				return nil, err
			}
		}
		body, err := r.expr(e.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Lambda{Param: e.Param, ParamType: pt, Body: body, Pos: e.Pos}, nil
	case *ast.TypeLambda:
		r.push(e.Param)
		body, err := r.expr(e.Body)
		r.pop()
		if err != nil {
			return nil, err
		}
		return &ast.TypeLambda{Param: e.Param, Bounds: e.Bounds, Body: body, Pos: e.Pos}, nil
	case *ast.App:
		fn, err := r.expr(e.Func)
		if err != nil {
			return nil, err
		}
		arg, err := r.expr(e.Arg)
		if err != nil {
			return nil, err
		}
		return &ast.App{Func: fn, Arg: arg, Pos: e.Pos}, nil
	case *ast.TypeApp:
		fn, err := r.expr(e.Func)
		if err != nil {
			return nil, err
		}
		arg, err := r.typ(e.Arg)
		if err != nil {
			return nil, err
		}
		return &ast.TypeApp{Func: fn, Arg: arg, Pos: e.Pos}, nil
	case *ast.FieldAccess:
		rec, err := r.expr(e.Record)
		if err != nil {
			return nil, err
		}
		return &ast.FieldAccess{Record: rec, Field: e.Field, Pos: e.Pos}, nil
	case *ast.Annotated:
		inner, err := r.expr(e.Expr)
		if err != nil {
			return nil, err
		}
		as, err := r.typ(e.As)
		if err != nil {
			return nil, err
		}
		return &ast.Annotated{Expr: inner, As: as, Pos: e.Pos}, nil
	case *ast.If:
		c, err := r.expr(e.Cond)
		if err != nil {
			return nil, err
		}
		t, err := r.expr(e.Then)
		if err != nil {
			return nil, err
		}
		f, err := r.expr(e.Else)
		if err != nil {
			return nil, err
		}
		return &ast.If{Cond: c, Then: t, Else: f, Pos: e.Pos}, nil
	case *ast.Or:
		l, r2, err := r.pair(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Or{Left: l, Right: r2, Pos: e.Pos}, nil
	case *ast.And:
		l, r2, err := r.pair(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.And{Left: l, Right: r2, Pos: e.Pos}, nil
	case *ast.Not:
		inner, err := r.expr(e.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.Not{Expr: inner, Pos: e.Pos}, nil
	case *ast.Rel:
		l, r2, err := r.pair(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Rel{Op: e.Op, Left: l, Right: r2, Pos: e.Pos}, nil
	case *ast.Add:
		l, r2, err := r.pair(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Add{Op: e.Op, Left: l, Right: r2, Pos: e.Pos}, nil
	case *ast.Mul:
		l, r2, err := r.pair(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Mul{Op: e.Op, Left: l, Right: r2, Pos: e.Pos}, nil
	case *ast.Neg:
		inner, err := r.expr(e.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.Neg{Expr: inner, Pos: e.Pos}, nil
	default:
		return e, nil
	}
}

func (r *Resolver) pair(a, b ast.Expr) (ast.Expr, ast.Expr, error) {
	ra, err := r.expr(a)
	if err != nil {
		return nil, nil, err
	}
	rb, err := r.expr(b)
	if err != nil {
		return nil, nil, err
	}
	return ra, rb, nil
}
