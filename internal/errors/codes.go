// Package errors provides the structured diagnostic type shared by every
// pass of the pipeline: a stable code, the phase that raised it, a message,
// and an optional source line. See spec.md §7 for the taxonomy.
package errors

// Error codes are grouped by phase, matching spec.md's SyntaxError /
// TypeError / RuntimeError taxonomy (§7). Codes are stable identifiers,
// not line-number-dependent, so tooling can key off them.
const (
	// Syntax errors (SYN###) — raised by the lexer/parser.
	SYN001 = "SYN001" // unexpected token
	SYN002 = "SYN002" // missing closing delimiter
	SYN003 = "SYN003" // malformed literal

	// Desugar errors (DSG###) — raised while eliminating Trait/Struct/Impl (§4.1).
	DSG001 = "DSG001" // trait does not bind exactly one type parameter
	DSG002 = "DSG002" // duplicate field name in trait/struct/impl body

	// Type resolver errors (RES###) — raised while erasing aliases (§4.2).
	RES001 = "RES001" // unknown type name
	RES002 = "RES002" // for-all type expected in type application

	// Type checker errors (TYP###) — raised by §4.3's rules.
	TYP001 = "TYP001" // branch/operand type mismatch
	TYP002 = "TYP002" // arrow type expected
	TYP003 = "TYP003" // for-all type expected
	TYP004 = "TYP004" // unknown record field
	TYP005 = "TYP005" // annotation mismatch
	TYP006 = "TYP006" // unbound variable
	TYP007 = "TYP007" // identifier denotes a type, not a value
	TYP008 = "TYP008" // type fails to satisfy a trait bound
	TYP009 = "TYP009" // no unifying substitution found for a polymorphic application
	TYP010 = "TYP010" // heterogeneous list literal

	// Dispatch errors (DSP###) — raised while eliminating trait polymorphism (§4.4).
	DSP001 = "DSP001" // unsolved trait field accessor, or no instance for the requested type

	// Runtime errors (RUN###) — raised by the evaluator (§4.5, §7).
	RUN001 = "RUN001" // division by zero
	RUN002 = "RUN002" // head or tail of empty list
	RUN003 = "RUN003" // unbound variable, ill-typed operand, unparsable input or other runtime failure
)
