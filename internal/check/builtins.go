package check

import "github.com/tlcore-lang/tlcore/internal/ast"

// InstallBuiltins seeds Γ with the type signatures of the fixed primitive
// prelude eval.Evaluator installs at the value level (internal/eval/builtins.go,
// spec §4.5). Both sides must agree on the same eight names or a program
// that references a builtin by name — e.g. scenario S2's
// `impl Show for Int { show = int_to_string; }` — fails TYP006 "unbound
// variable" before it ever reaches the evaluator. Every caller that builds
// a root Env for Checker.CheckStmt (Checker.Check itself, and
// internal/replshell's persistent session env) must call this first.
func InstallBuiltins(env *Env) {
	a := func() ast.Type { return &ast.Named{Name: "a"} }
	arrow := func(dom, cod ast.Type) ast.Type { return &ast.Arrow{Dom: dom, Cod: cod} }
	listOf := func(elem ast.Type) ast.Type { return &ast.ListType{Elem: elem} }
	forAllA := func(body ast.Type) ast.Type { return &ast.ForAll{Param: "a", Body: body} }

	intT := &ast.Named{Name: "Int"}
	stringT := &ast.Named{Name: "String"}

	env.Set("print", Binding{Type: forAllA(arrow(a(), a()))})
	env.Set("println", Binding{Type: forAllA(arrow(a(), a()))})
	env.Set("read", Binding{Type: forAllA(arrow(a(), stringT))})
	env.Set("string_to_int", Binding{Type: arrow(stringT, intT)})
	env.Set("int_to_string", Binding{Type: arrow(intT, stringT)})
	env.Set("head", Binding{Type: forAllA(arrow(listOf(a()), a()))})
	env.Set("tail", Binding{Type: forAllA(arrow(listOf(a()), listOf(a())))})
	// cons = \x. \xs. [x] + xs (spec §9: "specify it as a fixed desugaring,
	// not a primitive"); it still needs a Γ entry of its own since the
	// checker has no untyped-lambda inference to recover this scheme from
	// the desugared body's unannotated parameters.
	env.Set("cons", Binding{Type: forAllA(arrow(a(), arrow(listOf(a()), listOf(a()))))})
}
