package check

import (
	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/errors"
	"github.com/tlcore-lang/tlcore/internal/fresh"
	"github.com/tlcore-lang/tlcore/internal/tsubst"
)

// listPlaceholder stands for the element type of an empty list literal
// (spec §9: "underspecified element type", never concretely used past
// this core). It deliberately never equals a real type.
var listPlaceholder ast.Type = &ast.Named{Name: "?"}

// Checker assigns a type to every term, rejecting ill-typed programs, and
// elaborates under-specified polymorphic applications into explicit
// TypeApp nodes as it goes (spec §4.3's App rule).
type Checker struct {
	fresh *fresh.Counter
	inst  map[string][]ast.Type
	types map[ast.Expr]ast.Type
}

// New creates an empty Checker.
func New() *Checker {
	return &Checker{fresh: fresh.NewCounter(), inst: map[string][]ast.Type{}, types: map[ast.Expr]ast.Type{}}
}

// Check walks prog in order, threading a global Γ and instance table, and
// returns the elaborated program together with a map from every
// expression node in that elaborated tree to its checked type — the
// dispatch pass (§4.4) consults this map to read off a TypeApp's
// function's ForAll bounds.
func (c *Checker) Check(prog *ast.Program) (*ast.Program, map[ast.Expr]ast.Type, error) {
	env := NewEnv(nil)
	InstallBuiltins(env)
	out := &ast.Program{}
	for _, stmt := range prog.Stmts {
		s, err := c.CheckStmt(env, stmt)
		if err != nil {
			return nil, nil, err
		}
		out.Stmts = append(out.Stmts, s)
	}
	return out, c.types, nil
}

// CheckStmt checks a single statement against a caller-held Γ, so a REPL
// session can thread one persistent global frame across separately parsed
// lines instead of rebuilding it per Check call.
func (c *Checker) CheckStmt(env *Env, stmt ast.Stmt) (ast.Stmt, error) {
	return c.stmt(env, stmt)
}

// Types returns the live per-expression type annotation map; it keeps
// growing as more statements are checked, so a dispatcher constructed with
// it once observes every later CheckStmt call through the same map.
func (c *Checker) Types() map[ast.Expr]ast.Type {
	return c.types
}

func (c *Checker) stmt(env *Env, stmt ast.Stmt) (ast.Stmt, error) {
	switch s := stmt.(type) {
	case *ast.Assign:
		e, t, err := c.expr(env, s.Expr)
		if err != nil {
			return nil, err
		}
		env.Set(s.Name, Binding{Type: t})
		return &ast.Assign{Name: s.Name, Expr: e, Pos: s.Pos}, nil
	case *ast.TraitFieldEnv:
		env.Set(s.Field, Binding{Type: s.Type})
		return s, nil
	case *ast.InstanceEnv:
		c.inst[s.Trait] = append(c.inst[s.Trait], s.At)
		return s, nil
	case *ast.ExprStmt:
		e, _, err := c.expr(env, s.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Expr: e, Pos: s.Pos}, nil
	default:
		// TypeAssign never survives the resolver (§3.5); Trait/Struct/Impl
		// never survive desugaring.
		return stmt, nil
	}
}

func (c *Checker) record(e ast.Expr, t ast.Type) (ast.Expr, ast.Type, error) {
	c.types[e] = t
	return e, t, nil
}

func (c *Checker) expr(env *Env, expr ast.Expr) (ast.Expr, ast.Type, error) {
	switch e := expr.(type) {
	case *ast.Var:
		b, ok := env.Get(e.Name)
		if !ok {
			return nil, nil, errors.New("check", errors.TYP006, e.Pos, "unbound variable %q", e.Name)
		}
		if b.IsType {
			return nil, nil, errors.New("check", errors.TYP007, e.Pos, "identifier %q is a type, not a variable", e.Name)
		}
		return c.record(e, b.Type)

	case *ast.Lit:
		var t ast.Type
		switch e.Kind {
		case ast.LitBool:
			t = &ast.Named{Name: "Bool", Pos: e.Pos}
		case ast.LitInt:
			t = &ast.Named{Name: "Int", Pos: e.Pos}
		default:
			t = &ast.Named{Name: "String", Pos: e.Pos}
		}
		return c.record(e, t)

	case *ast.List:
		if len(e.Elems) == 0 {
			return c.record(e, &ast.ListType{Elem: listPlaceholder, Pos: e.Pos})
		}
		elems := make([]ast.Expr, len(e.Elems))
		first, firstT, err := c.expr(env, e.Elems[0])
		if err != nil {
			return nil, nil, err
		}
		elems[0] = first
		for i := 1; i < len(e.Elems); i++ {
			el, t, err := c.expr(env, e.Elems[i])
			if err != nil {
				return nil, nil, err
			}
			if !ast.TypeEquals(firstT, t) {
				return nil, nil, errors.New("check", errors.TYP010, el.Position(),
					"heterogeneous list: expected %q, got %q", ast.PrintType(firstT), ast.PrintType(t))
			}
			elems[i] = el
		}
		return c.record(&ast.List{Elems: elems, Pos: e.Pos}, &ast.ListType{Elem: firstT, Pos: e.Pos})

	case *ast.Record:
		fields := make([]ast.RecordField, len(e.Fields))
		typeFields := make([]ast.RecordTypeField, len(e.Fields))
		for i, f := range e.Fields {
			v, t, err := c.expr(env, f.Value)
			if err != nil {
				return nil, nil, err
			}
			fields[i] = ast.RecordField{Label: f.Label, Value: v}
			typeFields[i] = ast.RecordTypeField{Label: f.Label, Type: t}
		}
		return c.record(&ast.Record{Fields: fields, Pos: e.Pos}, &ast.RecordType{Fields: typeFields, Pos: e.Pos})

	case *ast.Lambda:
		child := NewEnv(env)
		child.Set(e.Param, Binding{Type: e.ParamType})
		body, bodyT, err := c.expr(child, e.Body)
		if err != nil {
			return nil, nil, err
		}
		return c.record(&ast.Lambda{Param: e.Param, ParamType: e.ParamType, Body: body, Pos: e.Pos},
			&ast.Arrow{Dom: e.ParamType, Cod: bodyT, Pos: e.Pos})

	case *ast.TypeLambda:
		child := NewEnv(env)
		child.Set(e.Param, Binding{IsType: true, Bounds: e.Bounds})
		body, bodyT, err := c.expr(child, e.Body)
		if err != nil {
			return nil, nil, err
		}
		return c.record(&ast.TypeLambda{Param: e.Param, Bounds: e.Bounds, Body: body, Pos: e.Pos},
			&ast.ForAll{Param: e.Param, Bounds: e.Bounds, Body: bodyT, Pos: e.Pos})

	case *ast.App:
		return c.appExpr(env, e)

	case *ast.TypeApp:
		fn, fnT, err := c.expr(env, e.Func)
		if err != nil {
			return nil, nil, err
		}
		fa, ok := fnT.(*ast.ForAll)
		if !ok {
			return nil, nil, errors.New("check", errors.TYP003, e.Pos, "for-all type expected, got %q", ast.PrintType(fnT))
		}
		for _, b := range fa.Bounds {
			if !c.satisfies(env, b, e.Arg) {
				return nil, nil, errors.New("check", errors.TYP008, e.Pos,
					"type %q does not satisfy trait bound %q", ast.PrintType(e.Arg), b)
			}
		}
		resultT := tsubst.Substitute(c.fresh, fa.Body, fa.Param, e.Arg)
		newNode := &ast.TypeApp{Func: fn, Arg: e.Arg, Pos: e.Pos}
		return c.record(newNode, resultT)

	case *ast.FieldAccess:
		rec, recT, err := c.expr(env, e.Record)
		if err != nil {
			return nil, nil, err
		}
		rt, ok := recT.(*ast.RecordType)
		if !ok {
			return nil, nil, errors.New("check", errors.TYP004, e.Pos, "expected a record, got %q", ast.PrintType(recT))
		}
		for _, f := range rt.Fields {
			if f.Label == e.Field {
				return c.record(&ast.FieldAccess{Record: rec, Field: e.Field, Pos: e.Pos}, f.Type)
			}
		}
		return nil, nil, errors.New("check", errors.TYP004, e.Pos, "unknown field %q in %q", e.Field, ast.PrintType(recT))

	case *ast.Annotated:
		inner, innerT, err := c.expr(env, e.Expr)
		if err != nil {
			return nil, nil, err
		}
		if !ast.TypeEquals(innerT, e.As) {
			return nil, nil, errors.New("check", errors.TYP005, e.Pos,
				"annotated type %q, got %q", ast.PrintType(e.As), ast.PrintType(innerT))
		}
		return c.record(&ast.Annotated{Expr: inner, As: e.As, Pos: e.Pos}, innerT)

	case *ast.If:
		cond, condT, err := c.expr(env, e.Cond)
		if err != nil {
			return nil, nil, err
		}
		if !isNamed(condT, "Bool") {
			return nil, nil, errors.New("check", errors.TYP001, e.Cond.Position(), "expected 'Bool', got %q", ast.PrintType(condT))
		}
		then, thenT, err := c.expr(env, e.Then)
		if err != nil {
			return nil, nil, err
		}
		els, elseT, err := c.expr(env, e.Else)
		if err != nil {
			return nil, nil, err
		}
		if !ast.TypeEquals(thenT, elseT) {
			return nil, nil, errors.New("check", errors.TYP001, e.Pos, "expected %q, got %q", ast.PrintType(thenT), ast.PrintType(elseT))
		}
		return c.record(&ast.If{Cond: cond, Then: then, Else: els, Pos: e.Pos}, thenT)

	case *ast.Or:
		l, r, err := c.boolOp(env, e.Left, e.Right)
		if err != nil {
			return nil, nil, err
		}
		return c.record(&ast.Or{Left: l, Right: r, Pos: e.Pos}, boolType(e.Pos))

	case *ast.And:
		l, r, err := c.boolOp(env, e.Left, e.Right)
		if err != nil {
			return nil, nil, err
		}
		return c.record(&ast.And{Left: l, Right: r, Pos: e.Pos}, boolType(e.Pos))

	case *ast.Not:
		inner, innerT, err := c.expr(env, e.Expr)
		if err != nil {
			return nil, nil, err
		}
		if !isNamed(innerT, "Bool") {
			return nil, nil, errors.New("check", errors.TYP001, e.Pos, "expected 'Bool', got %q", ast.PrintType(innerT))
		}
		return c.record(&ast.Not{Expr: inner, Pos: e.Pos}, boolType(e.Pos))

	case *ast.Rel:
		l, lt, err := c.expr(env, e.Left)
		if err != nil {
			return nil, nil, err
		}
		r, rt, err := c.expr(env, e.Right)
		if err != nil {
			return nil, nil, err
		}
		if e.Op == "==" || e.Op == "!=" {
			if !ast.TypeEquals(lt, rt) {
				return nil, nil, errors.New("check", errors.TYP001, e.Pos, "expected %q, got %q", ast.PrintType(lt), ast.PrintType(rt))
			}
		} else {
			if !isNamed(lt, "Int") || !isNamed(rt, "Int") {
				return nil, nil, errors.New("check", errors.TYP001, e.Pos, "expected 'Int', got %q and %q", ast.PrintType(lt), ast.PrintType(rt))
			}
		}
		return c.record(&ast.Rel{Op: e.Op, Left: l, Right: r, Pos: e.Pos}, boolType(e.Pos))

	case *ast.Add:
		return c.addExpr(env, e)

	case *ast.Mul:
		l, r, err := c.intOp(env, e.Left, e.Right)
		if err != nil {
			return nil, nil, err
		}
		return c.record(&ast.Mul{Op: e.Op, Left: l, Right: r, Pos: e.Pos}, intType(e.Pos))

	case *ast.Neg:
		inner, innerT, err := c.expr(env, e.Expr)
		if err != nil {
			return nil, nil, err
		}
		if !isNamed(innerT, "Int") {
			return nil, nil, errors.New("check", errors.TYP001, e.Pos, "expected 'Int', got %q", ast.PrintType(innerT))
		}
		return c.record(&ast.Neg{Expr: inner, Pos: e.Pos}, intType(e.Pos))

	default:
		return nil, nil, errors.New("check", errors.TYP001, expr.Position(), "unsupported expression form")
	}
}

func (c *Checker) appExpr(env *Env, e *ast.App) (ast.Expr, ast.Type, error) {
	fn, fnT, err := c.expr(env, e.Func)
	if err != nil {
		return nil, nil, err
	}
	arg, argT, err := c.expr(env, e.Arg)
	if err != nil {
		return nil, nil, err
	}

	switch ft := fnT.(type) {
	case *ast.Arrow:
		if !ast.TypeEquals(ft.Dom, argT) {
			return nil, nil, errors.New("check", errors.TYP001, e.Pos, "expected %q, got %q", ast.PrintType(ft.Dom), ast.PrintType(argT))
		}
		return c.record(&ast.App{Func: fn, Arg: arg, Pos: e.Pos}, ft.Cod)

	case *ast.ForAll:
		if len(ft.Bounds) != 0 {
			return nil, nil, errors.New("check", errors.TYP002, e.Pos, "arrow type expected, got %q", ast.PrintType(fnT))
		}
		arrow, ok := ft.Body.(*ast.Arrow)
		if !ok {
			return nil, nil, errors.New("check", errors.TYP002, e.Pos, "arrow type expected, got %q", ast.PrintType(fnT))
		}
		sigma, ok := unify(ft.Param, arrow.Dom, argT)
		if !ok {
			return nil, nil, errors.New("check", errors.TYP009, e.Pos,
				"no unifying substitution found applying %q to %q", ast.PrintType(fnT), ast.PrintType(argT))
		}
		typeApp := &ast.TypeApp{Func: fn, Arg: sigma, Pos: e.Pos}
		c.types[typeApp] = fnT
		resultT := tsubst.Substitute(c.fresh, arrow.Cod, ft.Param, sigma)
		return c.record(&ast.App{Func: typeApp, Arg: arg, Pos: e.Pos}, resultT)

	default:
		return nil, nil, errors.New("check", errors.TYP002, e.Pos, "arrow type expected, got %q", ast.PrintType(fnT))
	}
}

func (c *Checker) boolOp(env *Env, left, right ast.Expr) (ast.Expr, ast.Expr, error) {
	l, lt, err := c.expr(env, left)
	if err != nil {
		return nil, nil, err
	}
	r, rt, err := c.expr(env, right)
	if err != nil {
		return nil, nil, err
	}
	if !isNamed(lt, "Bool") || !isNamed(rt, "Bool") {
		return nil, nil, errors.New("check", errors.TYP001, left.Position(), "expected 'Bool', got %q and %q", ast.PrintType(lt), ast.PrintType(rt))
	}
	return l, r, nil
}

// addExpr types `+`/`-`. `-` is Int-only. `+` is overloaded: Int+Int (sum),
// String+String and List(τ)+List(τ) (concatenation, spec §4.5) — this is
// what lets scenario S4's `"hi " + show @a v` and the `cons` desugaring
// (`[x] + xs`) type-check.
func (c *Checker) addExpr(env *Env, e *ast.Add) (ast.Expr, ast.Type, error) {
	l, lt, err := c.expr(env, e.Left)
	if err != nil {
		return nil, nil, err
	}
	r, rt, err := c.expr(env, e.Right)
	if err != nil {
		return nil, nil, err
	}
	if e.Op == "+" {
		if isNamed(lt, "String") && isNamed(rt, "String") {
			return c.record(&ast.Add{Op: e.Op, Left: l, Right: r, Pos: e.Pos}, &ast.Named{Name: "String", Pos: e.Pos})
		}
		if _, ok := lt.(*ast.ListType); ok && ast.TypeEquals(lt, rt) {
			return c.record(&ast.Add{Op: e.Op, Left: l, Right: r, Pos: e.Pos}, lt)
		}
	}
	if !isNamed(lt, "Int") || !isNamed(rt, "Int") {
		return nil, nil, errors.New("check", errors.TYP001, e.Pos, "expected 'Int', got %q and %q", ast.PrintType(lt), ast.PrintType(rt))
	}
	return c.record(&ast.Add{Op: e.Op, Left: l, Right: r, Pos: e.Pos}, intType(e.Pos))
}

func (c *Checker) intOp(env *Env, left, right ast.Expr) (ast.Expr, ast.Expr, error) {
	l, lt, err := c.expr(env, left)
	if err != nil {
		return nil, nil, err
	}
	r, rt, err := c.expr(env, right)
	if err != nil {
		return nil, nil, err
	}
	if !isNamed(lt, "Int") || !isNamed(rt, "Int") {
		return nil, nil, errors.New("check", errors.TYP001, left.Position(), "expected 'Int', got %q and %q", ast.PrintType(lt), ast.PrintType(rt))
	}
	return l, r, nil
}

// satisfies reports whether t satisfies trait, either because it is a
// bound type variable carrying that bound in the current lexical scope
// (spec §4.4's dictionary-parameter discipline assumes this inside a
// bounded TypeLambda's body) or because a concrete instance was declared.
func (c *Checker) satisfies(env *Env, trait string, t ast.Type) bool {
	if n, ok := t.(*ast.Named); ok {
		if b, ok := env.Get(n.Name); ok && b.IsType {
			for _, bound := range b.Bounds {
				if bound == trait {
					return true
				}
			}
		}
	}
	for _, cand := range c.inst[trait] {
		if ast.TypeEquals(cand, t) {
			return true
		}
	}
	return false
}

func isNamed(t ast.Type, name string) bool {
	n, ok := t.(*ast.Named)
	return ok && n.Name == name
}

func boolType(pos ast.Pos) ast.Type { return &ast.Named{Name: "Bool", Pos: pos} }
func intType(pos ast.Pos) ast.Type  { return &ast.Named{Name: "Int", Pos: pos} }
