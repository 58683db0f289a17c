package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/errors"
)

// Value is a runtime value: the evaluator's normal forms (spec.md §3.4).
// Distinct from ast.Expr (the teacher keeps its own Value hierarchy
// rather than reusing AST nodes as values — see internal/eval/value.go
// in the teacher tree) so reduction never has to forge an ast.Lambda's
// unexported marker method from outside the ast package.
type Value interface {
	Type() string
	String() string
}

// BoolValue is a boolean.
type BoolValue struct{ Value bool }

func (v *BoolValue) Type() string { return "Bool" }
func (v *BoolValue) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

// IntValue is a 64-bit integer.
type IntValue struct{ Value int64 }

func (v *IntValue) Type() string   { return "Int" }
func (v *IntValue) String() string { return strconv.FormatInt(v.Value, 10) }

// StringValue is a string.
type StringValue struct{ Value string }

func (v *StringValue) Type() string   { return "String" }
func (v *StringValue) String() string { return strconv.Quote(v.Value) }

// ListValue is a fully-evaluated list.
type ListValue struct{ Elements []Value }

func (v *ListValue) Type() string { return "List" }
func (v *ListValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RecordField is one label/value pair of a RecordValue, in declaration order.
type RecordField struct {
	Label string
	Value Value
}

// RecordValue is a fully-evaluated record.
type RecordValue struct{ Fields []RecordField }

func (v *RecordValue) Type() string { return "Record" }
func (v *RecordValue) String() string {
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = fmt.Sprintf("%s = %s", f.Label, f.Value.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (v *RecordValue) field(label string) (Value, bool) {
	for _, f := range v.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return nil, false
}

// LambdaValue is a closure captured structurally: Body is the unevaluated
// term, substituted into on application (§4.5 — substitution-based, not
// environment-based).
type LambdaValue struct {
	Param string
	Body  ast.Expr
	Pos   ast.Pos
}

func (v *LambdaValue) Type() string   { return "Lambda" }
func (v *LambdaValue) String() string { return fmt.Sprintf("<lambda %s>", v.Param) }

// BuiltinValue is a partially-applied built-in (spec.md §4.5); print,
// println, read, string_to_int, int_to_string, head and tail are all
// fixed arity 1, but the representation supports higher arity uniformly.
type BuiltinValue struct {
	Name  string
	Arity int
	Args  []Value
}

func (v *BuiltinValue) Type() string   { return "Builtin" }
func (v *BuiltinValue) String() string { return fmt.Sprintf("<builtin %s>", v.Name) }

// valueToExpr re-embeds a reduced value as a term, for substitution into
// an unevaluated lambda body. An unapplied BuiltinValue (a builtin flowing
// through as a first-class argument, e.g. inside a trait dictionary) is
// re-embedded as a reference to its global name. A partially applied
// BuiltinValue has no surface syntax to re-embed as, so it is a RUN003
// runtime error rather than a value substitute can silently fabricate.
func valueToExpr(v Value, pos ast.Pos) (ast.Expr, error) {
	switch v := v.(type) {
	case *BoolValue:
		return &ast.Lit{Kind: ast.LitBool, Bool: v.Value, Pos: pos}, nil
	case *IntValue:
		return &ast.Lit{Kind: ast.LitInt, Int: v.Value, Pos: pos}, nil
	case *StringValue:
		return &ast.Lit{Kind: ast.LitString, Str: v.Value, Pos: pos}, nil
	case *ListValue:
		elems := make([]ast.Expr, len(v.Elements))
		for i, e := range v.Elements {
			elemExpr, err := valueToExpr(e, pos)
			if err != nil {
				return nil, err
			}
			elems[i] = elemExpr
		}
		return &ast.List{Elems: elems, Pos: pos}, nil
	case *RecordValue:
		fields := make([]ast.RecordField, len(v.Fields))
		for i, f := range v.Fields {
			fieldExpr, err := valueToExpr(f.Value, pos)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.RecordField{Label: f.Label, Value: fieldExpr}
		}
		return &ast.Record{Fields: fields, Pos: pos}, nil
	case *LambdaValue:
		return &ast.Lambda{Param: v.Param, Body: v.Body, Pos: pos}, nil
	case *BuiltinValue:
		if len(v.Args) == 0 {
			return &ast.Var{Name: v.Name, Pos: pos}, nil
		}
		return nil, errors.New("eval", errors.RUN003, pos, "cannot substitute a partially applied builtin %q into source position", v.Name)
	default:
		return nil, errors.New("eval", errors.RUN003, pos, "cannot substitute a %s value into source position", v.Type())
	}
}

func valuesEqual(a, b Value) bool {
	switch a := a.(type) {
	case *BoolValue:
		bb, ok := b.(*BoolValue)
		return ok && a.Value == bb.Value
	case *IntValue:
		bi, ok := b.(*IntValue)
		return ok && a.Value == bi.Value
	case *StringValue:
		bs, ok := b.(*StringValue)
		return ok && a.Value == bs.Value
	case *ListValue:
		bl, ok := b.(*ListValue)
		if !ok || len(a.Elements) != len(bl.Elements) {
			return false
		}
		for i := range a.Elements {
			if !valuesEqual(a.Elements[i], bl.Elements[i]) {
				return false
			}
		}
		return true
	case *RecordValue:
		br, ok := b.(*RecordValue)
		if !ok || len(a.Fields) != len(br.Fields) {
			return false
		}
		for _, f := range a.Fields {
			other, ok := br.field(f.Label)
			if !ok || !valuesEqual(f.Value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
