// Package ast defines the tree shape consumed by every pass of the
// pipeline: terms, types, and top-level statements. The tree is built once
// by the parser and is logically immutable — each later pass returns a new
// tree rather than mutating this one.
package ast

import "fmt"

// Pos is a source position. Every node carries one; it is the
// authoritative location for diagnostics (spec §7).
type Pos struct {
	Line int
	File string
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Node is satisfied by every term, type and statement.
type Node interface {
	Position() Pos
}

// Expr is a term (§3.1).
type Expr interface {
	Node
	exprNode()
}

// Type is a type (§3.2).
type Type interface {
	Node
	typeNode()
}

// Stmt is a top-level statement or synthetic environment entry (§3.3).
type Stmt interface {
	Node
	stmtNode()
}

// Program is a parsed source file: an ordered list of statements.
type Program struct {
	Stmts []Stmt
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

// LitKind distinguishes the three literal forms (§3.1).
type LitKind int

const (
	LitBool LitKind = iota
	LitInt
	LitString
)

// Var is a bare identifier reference.
type Var struct {
	Name string
	Pos  Pos
}

func (e *Var) Position() Pos { return e.Pos }
func (e *Var) exprNode()     {}

// Lit is a boolean, integer or string literal.
type Lit struct {
	Kind  LitKind
	Bool  bool
	Int   int64
	Str   string
	Pos   Pos
}

func (e *Lit) Position() Pos { return e.Pos }
func (e *Lit) exprNode()     {}

// List is an ordered sequence of element terms.
type List struct {
	Elems []Expr
	Pos   Pos
}

func (e *List) Position() Pos { return e.Pos }
func (e *List) exprNode()     {}

// RecordField pairs a field label with its term, preserving source order
// (order is irrelevant to evaluation and equality but kept for printing).
type RecordField struct {
	Label string
	Value Expr
}

// Record is a term-level record literal; field labels must be unique.
type Record struct {
	Fields []RecordField
	Pos    Pos
}

func (e *Record) Position() Pos { return e.Pos }
func (e *Record) exprNode()     {}

// Lambda is a term-level abstraction `\x:T. e`. ParamType is nil for an
// erased (untyped) parameter, which never occurs from the surface grammar
// but can appear after evaluation erases it (§4.5).
type Lambda struct {
	Param     string
	ParamType Type
	Body      Expr
	Pos       Pos
}

func (e *Lambda) Position() Pos { return e.Pos }
func (e *Lambda) exprNode()     {}

// TypeLambda is a type-level abstraction `\a impl B1+B2. e`. Bounds may be
// empty (plain universal abstraction).
type TypeLambda struct {
	Param  string
	Bounds []string
	Body   Expr
	Pos    Pos
}

func (e *TypeLambda) Position() Pos { return e.Pos }
func (e *TypeLambda) exprNode()     {}

// App is ordinary term application `f a`.
type App struct {
	Func Expr
	Arg  Expr
	Pos  Pos
}

func (e *App) Position() Pos { return e.Pos }
func (e *App) exprNode()     {}

// TypeApp is type application `f @T`.
type TypeApp struct {
	Func Expr
	Arg  Type
	Pos  Pos
}

func (e *TypeApp) Position() Pos { return e.Pos }
func (e *TypeApp) exprNode()     {}

// FieldAccess is structural record projection `e.f`.
type FieldAccess struct {
	Record Expr
	Field  string
	Pos    Pos
}

func (e *FieldAccess) Position() Pos { return e.Pos }
func (e *FieldAccess) exprNode()     {}

// Annotated is a type-annotated expression `e : T`. Checked strictly —
// the annotation must equal the inferred type, never merely coerce to it
// (spec §9 open question, resolved: strict equality, matching the source).
type Annotated struct {
	Expr Expr
	As   Type
	Pos  Pos
}

func (e *Annotated) Position() Pos { return e.Pos }
func (e *Annotated) exprNode()     {}

// If is the conditional `if c then t else f`.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
	Pos  Pos
}

func (e *If) Position() Pos { return e.Pos }
func (e *If) exprNode()     {}

// Or is `||`.
type Or struct {
	Left, Right Expr
	Pos         Pos
}

func (e *Or) Position() Pos { return e.Pos }
func (e *Or) exprNode()     {}

// And is `&&`.
type And struct {
	Left, Right Expr
	Pos         Pos
}

func (e *And) Position() Pos { return e.Pos }
func (e *And) exprNode()     {}

// Not is unary `!`.
type Not struct {
	Expr Expr
	Pos  Pos
}

func (e *Not) Position() Pos { return e.Pos }
func (e *Not) exprNode()     {}

// Rel is a relational operator: == != < <= > >=.
type Rel struct {
	Op          string
	Left, Right Expr
	Pos         Pos
}

func (e *Rel) Position() Pos { return e.Pos }
func (e *Rel) exprNode()     {}

// Add is `+` or `-`.
type Add struct {
	Op          string
	Left, Right Expr
	Pos         Pos
}

func (e *Add) Position() Pos { return e.Pos }
func (e *Add) exprNode()     {}

// Mul is `*`, `/` or `%`.
type Mul struct {
	Op          string
	Left, Right Expr
	Pos         Pos
}

func (e *Mul) Position() Pos { return e.Pos }
func (e *Mul) exprNode()     {}

// Neg is unary `-`.
type Neg struct {
	Expr Expr
	Pos  Pos
}

func (e *Neg) Position() Pos { return e.Pos }
func (e *Neg) exprNode()     {}

// ---------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------

// Named is a type name: a base type, a bound type variable, or (before
// resolution) an alias.
type Named struct {
	Name string
	Pos  Pos
}

func (t *Named) Position() Pos { return t.Pos }
func (t *Named) typeNode()     {}

// Arrow is a function type `T1 -> T2`.
type Arrow struct {
	Dom, Cod Type
	Pos      Pos
}

func (t *Arrow) Position() Pos { return t.Pos }
func (t *Arrow) typeNode()     {}

// TApp is type-level application `F A` (e.g. applying a trait's
// dictionary-type ForAll to a concrete type).
type TApp struct {
	Func Type
	Arg  Type
	Pos  Pos
}

func (t *TApp) Position() Pos { return t.Pos }
func (t *TApp) typeNode()     {}

// ListType is `[T]`.
type ListType struct {
	Elem Type
	Pos  Pos
}

func (t *ListType) Position() Pos { return t.Pos }
func (t *ListType) typeNode()     {}

// RecordTypeField pairs a label with its field type.
type RecordTypeField struct {
	Label string
	Type  Type
}

// RecordType is `{l1: T1, ..., ln: Tn}`. Equality is label-multiset
// equality (declaration order does not matter, §3.2).
type RecordType struct {
	Fields []RecordTypeField
	Pos    Pos
}

func (t *RecordType) Position() Pos { return t.Pos }
func (t *RecordType) typeNode()     {}

// ForAll is `forall a [impl B1+B2]. T`.
type ForAll struct {
	Param  string
	Bounds []string
	Body   Type
	Pos    Pos
}

func (t *ForAll) Position() Pos { return t.Pos }
func (t *ForAll) typeNode()     {}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

// Assign is a top-level value binding `name = term;`.
type Assign struct {
	Name string
	Expr Expr
	Pos  Pos
}

func (s *Assign) Position() Pos { return s.Pos }
func (s *Assign) stmtNode()     {}

// TypeAssign is a type alias `type name = T;`, present in the surface
// grammar and also synthesized by desugaring (§4.1). No TypeAssign survives
// past the type resolver (§3.5).
type TypeAssign struct {
	Name string
	Type Type
	Pos  Pos
}

func (s *TypeAssign) Position() Pos { return s.Pos }
func (s *TypeAssign) stmtNode()     {}

// ExprStmt evaluates a term for effect and logs the result (§3.3).
type ExprStmt struct {
	Expr Expr
	Pos  Pos
}

func (s *ExprStmt) Position() Pos { return s.Pos }
func (s *ExprStmt) stmtNode()     {}

// TraitBind is one `field: Type;` line inside a trait body.
type TraitBind struct {
	Field string
	Type  Type
}

// Trait is a surface trait declaration; eliminated by desugaring. The
// grammar allows zero or more type parameters so the desugarer (not the
// parser) can raise the "exactly one type parameter" type error with a
// precise location (§4.1).
type Trait struct {
	Name       string
	TypeParams []string
	Binds      []TraitBind
	Pos        Pos
}

func (s *Trait) Position() Pos { return s.Pos }
func (s *Trait) stmtNode()     {}

// StructBind is one `field: Type;` line inside a struct body.
type StructBind struct {
	Field string
	Type  Type
}

// Struct is a surface nominal-record declaration; eliminated by desugaring.
type Struct struct {
	Name  string
	Binds []StructBind
	Pos   Pos
}

func (s *Struct) Position() Pos { return s.Pos }
func (s *Struct) stmtNode()     {}

// ImplAssign is one `field = expr;` line inside an impl body.
type ImplAssign struct {
	Field string
	Expr  Expr
}

// Impl is a surface trait instance; eliminated by desugaring.
type Impl struct {
	Trait   string
	For     Type
	Assigns []ImplAssign
	Pos     Pos
}

func (s *Impl) Position() Pos { return s.Pos }
func (s *Impl) stmtNode()     {}

// TraitFieldEnv is synthetic: registers `Field` as an accessor belonging to
// `Trait`, with the accessor's own (bounded, universally quantified) type
// (§3.3, emitted by desugaring §4.1).
type TraitFieldEnv struct {
	Field string
	Trait string
	Type  Type
	Pos   Pos
}

func (s *TraitFieldEnv) Position() Pos { return s.Pos }
func (s *TraitFieldEnv) stmtNode()     {}

// InstanceEnv is synthetic: registers a dictionary expression as the
// instance of `Trait` at `At` (§3.3, emitted by desugaring §4.1).
type InstanceEnv struct {
	Trait string
	At    Type
	Expr  Expr
	Pos   Pos
}

func (s *InstanceEnv) Position() Pos { return s.Pos }
func (s *InstanceEnv) stmtNode()     {}
