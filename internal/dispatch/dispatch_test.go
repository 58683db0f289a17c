package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlcore-lang/tlcore/internal/ast"
)

func TestDispatch_TraitFieldAccessorRewrite(t *testing.T) {
	intTy := &ast.Named{Name: "Int"}
	instExpr := &ast.Record{Fields: []ast.RecordField{{Label: "show", Value: &ast.Lit{Kind: ast.LitBool, Bool: true}}}}

	prog := &ast.Program{Stmts: []ast.Stmt{
		&ast.TraitFieldEnv{Field: "show", Trait: "Show", Type: &ast.ForAll{Param: "a", Bounds: []string{"Show"}, Body: &ast.Arrow{Dom: &ast.Named{Name: "a"}, Cod: intTy}}},
		&ast.InstanceEnv{Trait: "Show", At: intTy, Expr: instExpr},
		&ast.Assign{Name: "x", Expr: &ast.TypeApp{Func: &ast.Var{Name: "show"}, Arg: intTy}},
	}}

	out, err := New(map[ast.Expr]ast.Type{}).Dispatch(prog)
	require.NoError(t, err)
	require.Len(t, out.Stmts, 1)

	assign := out.Stmts[0].(*ast.Assign)
	fa, ok := assign.Expr.(*ast.FieldAccess)
	require.True(t, ok)
	assert.Equal(t, "show", fa.Field)
	assert.Equal(t, instExpr, fa.Record)
}

func TestDispatch_MissingInstanceErrors(t *testing.T) {
	prog := &ast.Program{Stmts: []ast.Stmt{
		&ast.TraitFieldEnv{Field: "show", Trait: "Show", Type: &ast.ForAll{Param: "a", Bounds: []string{"Show"}, Body: &ast.Arrow{}}},
		&ast.Assign{Name: "x", Expr: &ast.TypeApp{Func: &ast.Var{Name: "show"}, Arg: &ast.Named{Name: "Int"}}},
	}}
	_, err := New(map[ast.Expr]ast.Type{}).Dispatch(prog)
	require.Error(t, err)
}

func TestDispatch_BoundedTypeAppGetsDictionaryArgument(t *testing.T) {
	intTy := &ast.Named{Name: "Int"}
	idExpr := &ast.TypeLambda{Param: "a", Bounds: []string{"Show"}, Body: &ast.Var{Name: "a"}}
	typeApp := &ast.TypeApp{Func: idExpr, Arg: intTy}

	instExpr := &ast.Record{}
	types := map[ast.Expr]ast.Type{
		idExpr: &ast.ForAll{Param: "a", Bounds: []string{"Show"}, Body: &ast.Named{Name: "a"}},
	}

	prog := &ast.Program{Stmts: []ast.Stmt{
		&ast.InstanceEnv{Trait: "Show", At: intTy, Expr: instExpr},
		&ast.Assign{Name: "x", Expr: typeApp},
	}}

	out, err := New(types).Dispatch(prog)
	require.NoError(t, err)
	assign := out.Stmts[0].(*ast.Assign)
	app, ok := assign.Expr.(*ast.App)
	require.True(t, ok)
	assert.Equal(t, instExpr, app.Arg)
	_, ok = app.Func.(*ast.TypeApp)
	assert.True(t, ok)
}

func TestDispatch_UnsolvedTraitFieldVarErrors(t *testing.T) {
	prog := &ast.Program{Stmts: []ast.Stmt{
		&ast.TraitFieldEnv{Field: "show", Trait: "Show", Type: &ast.ForAll{}},
		&ast.ExprStmt{Expr: &ast.Var{Name: "show"}},
	}}
	_, err := New(map[ast.Expr]ast.Type{}).Dispatch(prog)
	require.Error(t, err)
}
