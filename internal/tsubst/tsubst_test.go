package tsubst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/fresh"
)

func TestSubstitute_ReplacesNamedOccurrence(t *testing.T) {
	body := &ast.Named{Name: "a"}
	got := Substitute(fresh.NewCounter(), body, "a", &ast.Named{Name: "Int"})
	assert.Equal(t, &ast.Named{Name: "Int"}, got)
}

func TestSubstitute_ShadowedForAllLeavesBodyUntouched(t *testing.T) {
	// (forall a. a -> a)[a := Int] = forall a. a -> a  (shadowed, not Int -> Int)
	body := &ast.ForAll{Param: "a", Body: &ast.Arrow{Dom: &ast.Named{Name: "a"}, Cod: &ast.Named{Name: "a"}}}
	got := Substitute(fresh.NewCounter(), body, "a", &ast.Named{Name: "Int"})
	assert.Equal(t, body, got)
}

func TestSubstitute_AvoidsCaptureByAlphaRenaming(t *testing.T) {
	// (forall b. b -> a)[a := b] must not let the substituted b get
	// captured by the binder; the binder should be renamed instead.
	body := &ast.ForAll{Param: "b", Body: &ast.Arrow{Dom: &ast.Named{Name: "b"}, Cod: &ast.Named{Name: "a"}}}
	got := Substitute(fresh.NewCounter(), body, "a", &ast.Named{Name: "b"})

	forAll, ok := got.(*ast.ForAll)
	require.True(t, ok)
	assert.NotEqual(t, "b", forAll.Param, "binder must be renamed to avoid capturing the substituted b")

	arrow, ok := forAll.Body.(*ast.Arrow)
	require.True(t, ok)
	dom := arrow.Dom.(*ast.Named)
	assert.Equal(t, forAll.Param, dom.Name, "renamed binder must still be referenced consistently in the body")
	cod := arrow.Cod.(*ast.Named)
	assert.Equal(t, "b", cod.Name, "the substituted free variable must survive unrenamed")
}

func TestFreeVars_ExcludesBoundForAllParam(t *testing.T) {
	ty := &ast.ForAll{Param: "a", Body: &ast.Arrow{Dom: &ast.Named{Name: "a"}, Cod: &ast.Named{Name: "b"}}}
	fv := FreeVars(ty)
	assert.False(t, fv["a"])
	assert.True(t, fv["b"])
}
