package desugar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlcore-lang/tlcore/internal/ast"
)

func TestDesugar_TraitExpandsToTypeAssignAndFieldEnvs(t *testing.T) {
	pos := ast.Pos{Line: 1}
	trait := &ast.Trait{
		Name:       "Show",
		TypeParams: []string{"a"},
		Binds:      []ast.TraitBind{{Field: "show", Type: &ast.Arrow{Dom: &ast.Named{Name: "a"}, Cod: &ast.Named{Name: "Int"}}}},
		Pos:        pos,
	}
	out, err := Desugar(&ast.Program{Stmts: []ast.Stmt{trait}})
	require.NoError(t, err)
	require.Len(t, out.Stmts, 2)

	typeAssign, ok := out.Stmts[0].(*ast.TypeAssign)
	require.True(t, ok)
	assert.Equal(t, "Show", typeAssign.Name)
	forAll, ok := typeAssign.Type.(*ast.ForAll)
	require.True(t, ok)
	assert.Equal(t, "a", forAll.Param)

	fieldEnv, ok := out.Stmts[1].(*ast.TraitFieldEnv)
	require.True(t, ok)
	assert.Equal(t, "show", fieldEnv.Field)
	assert.Equal(t, "Show", fieldEnv.Trait)
}

func TestDesugar_TraitWithoutExactlyOneParamErrors(t *testing.T) {
	trait := &ast.Trait{Name: "Bad", TypeParams: []string{"a", "b"}}
	_, err := Desugar(&ast.Program{Stmts: []ast.Stmt{trait}})
	require.Error(t, err)
}

func TestDesugar_DuplicateFieldNameErrors(t *testing.T) {
	trait := &ast.Trait{Name: "Show", TypeParams: []string{"a"}, Binds: []ast.TraitBind{
		{Field: "show", Type: &ast.Named{Name: "Int"}},
		{Field: "show", Type: &ast.Named{Name: "Int"}},
	}}
	_, err := Desugar(&ast.Program{Stmts: []ast.Stmt{trait}})
	require.Error(t, err)
}

func TestDesugar_StructBecomesTypeAssignAndCurriedConstructor(t *testing.T) {
	s := &ast.Struct{Name: "Point", Binds: []ast.StructBind{
		{Field: "x", Type: &ast.Named{Name: "Int"}},
		{Field: "y", Type: &ast.Named{Name: "Int"}},
	}}
	out, err := Desugar(&ast.Program{Stmts: []ast.Stmt{s}})
	require.NoError(t, err)
	require.Len(t, out.Stmts, 2)

	_, ok := out.Stmts[0].(*ast.TypeAssign)
	require.True(t, ok)

	ctor, ok := out.Stmts[1].(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "Point", ctor.Name)
	outer, ok := ctor.Expr.(*ast.Lambda)
	require.True(t, ok)
	inner, ok := outer.Body.(*ast.Lambda)
	require.True(t, ok)
	record, ok := inner.Body.(*ast.Record)
	require.True(t, ok)
	require.Len(t, record.Fields, 2)
	assert.Equal(t, "x", record.Fields[0].Label)
	assert.Equal(t, "y", record.Fields[1].Label)
}

func TestDesugar_ImplProducesInstanceAssignAndInstanceEnv(t *testing.T) {
	im := &ast.Impl{
		Trait:   "Show",
		For:     &ast.Named{Name: "Int"},
		Assigns: []ast.ImplAssign{{Field: "show", Expr: &ast.Lit{Kind: ast.LitInt, Int: 0}}},
	}
	out, err := Desugar(&ast.Program{Stmts: []ast.Stmt{im}})
	require.NoError(t, err)
	require.Len(t, out.Stmts, 2)

	assign, ok := out.Stmts[0].(*ast.Assign)
	require.True(t, ok)
	instEnv, ok := out.Stmts[1].(*ast.InstanceEnv)
	require.True(t, ok)
	assert.Equal(t, "Show", instEnv.Trait)
	v, ok := instEnv.Expr.(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, assign.Name, v.Name)
}

func TestDesugar_IsIdempotentOnAlreadyDesugaredProgram(t *testing.T) {
	prog := &ast.Program{Stmts: []ast.Stmt{
		&ast.Assign{Name: "x", Expr: &ast.Lit{Kind: ast.LitInt, Int: 1}},
		&ast.TraitFieldEnv{Field: "show", Trait: "Show", Type: &ast.ForAll{}},
		&ast.InstanceEnv{Trait: "Show", At: &ast.Named{Name: "Int"}, Expr: &ast.Var{Name: "x"}},
	}}
	out, err := Desugar(prog)
	require.NoError(t, err)
	assert.Equal(t, prog, out)
}
