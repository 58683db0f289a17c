// Package check implements §4.3: a bidirectional-style checker that
// assigns a type to every term and rejects ill-typed programs, eliding a
// unifying TypeApp wherever the surface syntax under-specifies one.
// Grounded on the original TypeCheckerVisitor / _TypeGetterVisitor
// (original_source/src/type_checker.py) and its Env (src/env.py).
package check

import "github.com/tlcore-lang/tlcore/internal/ast"

// Binding is what a name in Γ denotes: either a term of Type, or (when
// IsType is set) a type-parameter bound at kind `*` (spec §3.2, §4.3).
// Bounds records the trait bounds a TypeLambda-bound type variable carries
// (`\a impl Show. ...`), so a bare reference to that variable inside its
// own scope trivially satisfies those bounds without an instance lookup.
type Binding struct {
	IsType bool
	Type   ast.Type
	Bounds []string
}

// Env is a lexically scoped frame over Γ; lookup walks outward to the
// root. Instance membership (Inst) is tracked separately on Checker since
// it is effectively global (spec §4.3).
type Env struct {
	vars  map[string]Binding
	outer *Env
}

// NewEnv creates a child frame of outer (nil for the global frame).
func NewEnv(outer *Env) *Env {
	return &Env{vars: map[string]Binding{}, outer: outer}
}

// Get walks outward from e looking for name.
func (e *Env) Get(name string) (Binding, bool) {
	for f := e; f != nil; f = f.outer {
		if b, ok := f.vars[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// Set binds name in this frame only.
func (e *Env) Set(name string, b Binding) {
	e.vars[name] = b
}
