// Package dispatch implements §4.4: it eliminates trait polymorphism by
// turning trait-field references and bounded type applications into
// concrete dictionary plumbing. Grounded closely on the original
// DispatcherVisitor (original_source/src/dispatcher.py) — same WhichTrait
// / GetInst tables and the same shadow-on-descent, restore-on-ascent
// discipline for names that collide with a trait field.
package dispatch

import (
	"fmt"

	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/errors"
)

type instKey struct {
	trait string
	typ   string
}

// Dispatcher rewrites an elaborated, type-checked tree into one with no
// remaining trait abstraction.
type Dispatcher struct {
	whichTrait map[string]string
	getInst    map[instKey]ast.Expr
	types      map[ast.Expr]ast.Type
	tmp        int
}

// New creates a Dispatcher. types is the per-expression type annotation
// map produced by check.Checker.Check — needed to read off the bounds on
// a TypeApp's function type (spec §4.4 rule 2).
func New(types map[ast.Expr]ast.Type) *Dispatcher {
	return &Dispatcher{
		whichTrait: map[string]string{},
		getInst:    map[instKey]ast.Expr{},
		types:      types,
	}
}

// Dispatch rewrites every statement in prog, dropping TraitFieldEnv and
// InstanceEnv statements (their content is folded into the tables).
func (d *Dispatcher) Dispatch(prog *ast.Program) (*ast.Program, error) {
	out := &ast.Program{}
	for _, stmt := range prog.Stmts {
		s, keep, err := d.stmt(stmt)
		if err != nil {
			return nil, err
		}
		if keep {
			out.Stmts = append(out.Stmts, s)
		}
	}
	return out, nil
}

func (d *Dispatcher) stmt(stmt ast.Stmt) (ast.Stmt, bool, error) {
	switch s := stmt.(type) {
	case *ast.TraitFieldEnv:
		d.whichTrait[s.Field] = s.Trait
		return nil, false, nil
	case *ast.InstanceEnv:
		d.getInst[instKey{s.Trait, ast.PrintType(s.At)}] = s.Expr
		return nil, false, nil
	case *ast.Assign:
		popped, had := d.whichTrait[s.Name]
		delete(d.whichTrait, s.Name)
		e, err := d.expr(s.Expr)
		if had {
			d.whichTrait[s.Name] = popped
		}
		if err != nil {
			return nil, false, err
		}
		return &ast.Assign{Name: s.Name, Expr: e, Pos: s.Pos}, true, nil
	case *ast.ExprStmt:
		e, err := d.expr(s.Expr)
		if err != nil {
			return nil, false, err
		}
		return &ast.ExprStmt{Expr: e, Pos: s.Pos}, true, nil
	default:
		return stmt, true, nil
	}
}

func (d *Dispatcher) tempName(prefix string) string {
	d.tmp++
	return fmt.Sprintf("%s_%d", prefix, d.tmp)
}

func (d *Dispatcher) expr(expr ast.Expr) (ast.Expr, error) {
	switch e := expr.(type) {
	case *ast.Var:
		if _, ok := d.whichTrait[e.Name]; ok {
			return nil, errors.New("dispatch", errors.DSP001, e.Pos,
				"unsolved trait field accessor %q, use '%s @T' instead", e.Name, e.Name)
		}
		return e, nil

	case *ast.Lit:
		return e, nil

	case *ast.List:
		elems := make([]ast.Expr, len(e.Elems))
		for i, el := range e.Elems {
			re, err := d.expr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = re
		}
		return &ast.List{Elems: elems, Pos: e.Pos}, nil

	case *ast.Record:
		fields := make([]ast.RecordField, len(e.Fields))
		for i, f := range e.Fields {
			v, err := d.expr(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.RecordField{Label: f.Label, Value: v}
		}
		return &ast.Record{Fields: fields, Pos: e.Pos}, nil

	case *ast.Lambda:
		popped, had := d.whichTrait[e.Param]
		delete(d.whichTrait, e.Param)
		body, err := d.expr(e.Body)
		if had {
			d.whichTrait[e.Param] = popped
		}
		if err != nil {
			return nil, err
		}
		return &ast.Lambda{Param: e.Param, ParamType: e.ParamType, Body: body, Pos: e.Pos}, nil

	case *ast.TypeLambda:
		popped, had := d.whichTrait[e.Param]
		delete(d.whichTrait, e.Param)

		if len(e.Bounds) == 0 {
			body, err := d.expr(e.Body)
			if had {
				d.whichTrait[e.Param] = popped
			}
			if err != nil {
				return nil, err
			}
			return &ast.TypeLambda{Param: e.Param, Body: body, Pos: e.Pos}, nil
		}

		// \a impl B1+B2. body  =>  \a impl B1+B2. \dictB1. \dictB2. body
		paramType := &ast.Named{Name: e.Param, Pos: e.Pos}
		var dictParams []string
		for _, trait := range e.Bounds {
			dictName := d.tempName(fmt.Sprintf("__dictp_%s", trait))
			dictParams = append(dictParams, dictName)
			d.getInst[instKey{trait, ast.PrintType(paramType)}] = &ast.Var{Name: dictName, Pos: e.Pos}
		}

		body, err := d.expr(e.Body)
		if had {
			d.whichTrait[e.Param] = popped
		}
		if err != nil {
			return nil, err
		}
		for i := len(dictParams) - 1; i >= 0; i-- {
			body = &ast.Lambda{Param: dictParams[i], Body: body, Pos: e.Pos}
		}
		return &ast.TypeLambda{Param: e.Param, Bounds: e.Bounds, Body: body, Pos: e.Pos}, nil

	case *ast.App:
		fn, err := d.expr(e.Func)
		if err != nil {
			return nil, err
		}
		arg, err := d.expr(e.Arg)
		if err != nil {
			return nil, err
		}
		return &ast.App{Func: fn, Arg: arg, Pos: e.Pos}, nil

	case *ast.TypeApp:
		return d.typeApp(e)

	case *ast.FieldAccess:
		rec, err := d.expr(e.Record)
		if err != nil {
			return nil, err
		}
		return &ast.FieldAccess{Record: rec, Field: e.Field, Pos: e.Pos}, nil

	case *ast.Annotated:
		inner, err := d.expr(e.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.Annotated{Expr: inner, As: e.As, Pos: e.Pos}, nil

	case *ast.If:
		c, err := d.expr(e.Cond)
		if err != nil {
			return nil, err
		}
		t, err := d.expr(e.Then)
		if err != nil {
			return nil, err
		}
		f, err := d.expr(e.Else)
		if err != nil {
			return nil, err
		}
		return &ast.If{Cond: c, Then: t, Else: f, Pos: e.Pos}, nil

	case *ast.Or:
		l, r, err := d.pair(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Or{Left: l, Right: r, Pos: e.Pos}, nil

	case *ast.And:
		l, r, err := d.pair(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.And{Left: l, Right: r, Pos: e.Pos}, nil

	case *ast.Not:
		inner, err := d.expr(e.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.Not{Expr: inner, Pos: e.Pos}, nil

	case *ast.Rel:
		l, r, err := d.pair(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Rel{Op: e.Op, Left: l, Right: r, Pos: e.Pos}, nil

	case *ast.Add:
		l, r, err := d.pair(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Add{Op: e.Op, Left: l, Right: r, Pos: e.Pos}, nil

	case *ast.Mul:
		l, r, err := d.pair(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Mul{Op: e.Op, Left: l, Right: r, Pos: e.Pos}, nil

	case *ast.Neg:
		inner, err := d.expr(e.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.Neg{Expr: inner, Pos: e.Pos}, nil

	default:
		return expr, nil
	}
}

// typeApp implements spec.md §4.4's two rewrites.
func (d *Dispatcher) typeApp(e *ast.TypeApp) (ast.Expr, error) {
	if v, ok := e.Func.(*ast.Var); ok {
		if trait, ok := d.whichTrait[v.Name]; ok {
			key := instKey{trait, ast.PrintType(e.Arg)}
			inst, ok := d.getInst[key]
			if !ok {
				return nil, errors.New("dispatch", errors.DSP001, e.Pos,
					"no instance of trait %q for type %q", trait, ast.PrintType(e.Arg))
			}
			return &ast.FieldAccess{Record: inst, Field: v.Name, Pos: e.Pos}, nil
		}
	}

	if funcType, ok := d.types[e.Func]; ok {
		if fa, ok := funcType.(*ast.ForAll); ok && len(fa.Bounds) > 0 {
			fn, err := d.expr(e.Func)
			if err != nil {
				return nil, err
			}
			var app ast.Expr = &ast.TypeApp{Func: fn, Arg: e.Arg, Pos: e.Pos}
			for _, trait := range fa.Bounds {
				key := instKey{trait, ast.PrintType(e.Arg)}
				inst, ok := d.getInst[key]
				if !ok {
					return nil, errors.New("dispatch", errors.DSP001, e.Pos,
						"no instance of trait %q for type %q", trait, ast.PrintType(e.Arg))
				}
				app = &ast.App{Func: app, Arg: inst, Pos: e.Pos}
			}
			return app, nil
		}
	}

	fn, err := d.expr(e.Func)
	if err != nil {
		return nil, err
	}
	return &ast.TypeApp{Func: fn, Arg: e.Arg, Pos: e.Pos}, nil
}

func (d *Dispatcher) pair(a, b ast.Expr) (ast.Expr, ast.Expr, error) {
	ra, err := d.expr(a)
	if err != nil {
		return nil, nil, err
	}
	rb, err := d.expr(b)
	if err != nil {
		return nil, nil, err
	}
	return ra, rb, nil
}
