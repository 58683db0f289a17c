// Package desugar implements §4.1: it rewrites Trait/Struct/Impl
// statements into TypeAssign/Assign/TraitFieldEnv/InstanceEnv, the forms
// every later pass understands. Grounded on the original
// TraitDesugarVisitor (original_source/src/trait.py) and the
// InstanceEnv-emission shape of the dispatcher (src/dispatcher.py), ported
// to an explicit per-statement rewrite instead of a generic tree visitor —
// spec.md §9 asks for exhaustive match over inheritance-based dispatch.
package desugar

import (
	"fmt"

	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/errors"
)

// Desugar eliminates every Trait/Struct/Impl statement in prog, returning a
// new Program. It never mutates prog.
func Desugar(prog *ast.Program) (*ast.Program, error) {
	d := &desugarer{}
	out := &ast.Program{}
	for _, stmt := range prog.Stmts {
		expanded, err := d.stmt(stmt)
		if err != nil {
			return nil, err
		}
		out.Stmts = append(out.Stmts, expanded...)
	}
	return out, nil
}

type desugarer struct {
	instCounter int
}

func (d *desugarer) stmt(stmt ast.Stmt) ([]ast.Stmt, error) {
	switch s := stmt.(type) {
	case *ast.Trait:
		return d.trait(s)
	case *ast.Struct:
		return d.structDecl(s)
	case *ast.Impl:
		return d.impl(s)
	default:
		// Assign, TypeAssign, ExprStmt, and any already-synthetic
		// TraitFieldEnv/InstanceEnv pass through unchanged — this is what
		// makes desugaring idempotent on a clean tree (spec §8 property 1).
		return []ast.Stmt{stmt}, nil
	}
}

func (d *desugarer) trait(t *ast.Trait) ([]ast.Stmt, error) {
	if len(t.TypeParams) != 1 {
		return nil, errors.New("desugar", errors.DSG001, t.Pos,
			"trait %q must bind exactly one type parameter, got %d", t.Name, len(t.TypeParams))
	}
	param := t.TypeParams[0]

	seen := map[string]bool{}
	var fields []ast.RecordTypeField
	for _, b := range t.Binds {
		if seen[b.Field] {
			return nil, errors.New("desugar", errors.DSG002, t.Pos,
				"duplicate field name %q in trait %q", b.Field, t.Name)
		}
		seen[b.Field] = true
		fields = append(fields, ast.RecordTypeField{Label: b.Field, Type: b.Type})
	}

	dictType := &ast.ForAll{
		Param: param,
		Body:  &ast.RecordType{Fields: fields, Pos: t.Pos},
		Pos:   t.Pos,
	}
	out := []ast.Stmt{&ast.TypeAssign{Name: t.Name, Type: dictType, Pos: t.Pos}}

	for _, b := range t.Binds {
		accessorType := &ast.ForAll{
			Param:  param,
			Bounds: []string{t.Name},
			Body:   b.Type,
			Pos:    t.Pos,
		}
		out = append(out, &ast.TraitFieldEnv{
			Field: b.Field,
			Trait: t.Name,
			Type:  accessorType,
			Pos:   t.Pos,
		})
	}
	return out, nil
}

func (d *desugarer) structDecl(s *ast.Struct) ([]ast.Stmt, error) {
	seen := map[string]bool{}
	var fields []ast.RecordTypeField
	for _, b := range s.Binds {
		if seen[b.Field] {
			return nil, errors.New("desugar", errors.DSG002, s.Pos,
				"duplicate field name %q in struct %q", b.Field, s.Name)
		}
		seen[b.Field] = true
		fields = append(fields, ast.RecordTypeField{Label: b.Field, Type: b.Type})
	}

	recordType := &ast.RecordType{Fields: fields, Pos: s.Pos}
	typeDef := &ast.TypeAssign{Name: s.Name, Type: recordType, Pos: s.Pos}

	// Curried constructor: S = \x1:T1. ... \xn:Tn. {f1=x1, ..., fn=xn}
	var recordFields []ast.RecordField
	paramNames := make([]string, len(s.Binds))
	for i, b := range s.Binds {
		paramNames[i] = fmt.Sprintf("__x%d", i)
		recordFields = append(recordFields, ast.RecordField{Label: b.Field, Value: &ast.Var{Name: paramNames[i], Pos: s.Pos}})
	}
	body := ast.Expr(&ast.Record{Fields: recordFields, Pos: s.Pos})
	for i := len(s.Binds) - 1; i >= 0; i-- {
		body = &ast.Lambda{Param: paramNames[i], ParamType: s.Binds[i].Type, Body: body, Pos: s.Pos}
	}
	constructor := &ast.Assign{Name: s.Name, Expr: body, Pos: s.Pos}

	return []ast.Stmt{typeDef, constructor}, nil
}

func (d *desugarer) impl(im *ast.Impl) ([]ast.Stmt, error) {
	seen := map[string]bool{}
	var fields []ast.RecordField
	for _, a := range im.Assigns {
		if seen[a.Field] {
			return nil, errors.New("desugar", errors.DSG002, im.Pos,
				"duplicate field name %q in impl %q", a.Field, im.Trait)
		}
		seen[a.Field] = true
		fields = append(fields, ast.RecordField{Label: a.Field, Value: a.Expr})
	}

	d.instCounter++
	instName := fmt.Sprintf("__%s_inst_%d", im.Trait, d.instCounter)

	dictValue := &ast.Annotated{
		Expr: &ast.Record{Fields: fields, Pos: im.Pos},
		As:   &ast.TApp{Func: &ast.Named{Name: im.Trait, Pos: im.Pos}, Arg: im.For, Pos: im.Pos},
		Pos:  im.Pos,
	}

	assign := &ast.Assign{Name: instName, Expr: dictValue, Pos: im.Pos}
	instEnv := &ast.InstanceEnv{Trait: im.Trait, At: im.For, Expr: &ast.Var{Name: instName, Pos: im.Pos}, Pos: im.Pos}

	return []ast.Stmt{assign, instEnv}, nil
}
