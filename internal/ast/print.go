package ast

import (
	"fmt"
	"strings"
)

// PrintType renders a type the way diagnostics and the --debug trace show
// it to a user, e.g. "forall a impl Show. a -> String".
func PrintType(t Type) string {
	switch t := t.(type) {
	case nil:
		return "<erased>"
	case *Named:
		return t.Name
	case *Arrow:
		return fmt.Sprintf("%s -> %s", printTypeAtom(t.Dom, true), PrintType(t.Cod))
	case *TApp:
		return fmt.Sprintf("%s %s", PrintType(t.Func), printTypeAtom(t.Arg, false))
	case *ListType:
		return fmt.Sprintf("[%s]", PrintType(t.Elem))
	case *RecordType:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = fmt.Sprintf("%s: %s", f.Label, PrintType(f.Type))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ForAll:
		if len(t.Bounds) == 0 {
			return fmt.Sprintf("forall %s. %s", t.Param, PrintType(t.Body))
		}
		return fmt.Sprintf("forall %s impl %s. %s", t.Param, strings.Join(t.Bounds, "+"), PrintType(t.Body))
	default:
		return fmt.Sprintf("<unknown type %T>", t)
	}
}

func printTypeAtom(t Type, forArrowDom bool) string {
	switch t.(type) {
	case *Arrow, *ForAll:
		return "(" + PrintType(t) + ")"
	default:
		return PrintType(t)
	}
}

// Print renders a term for the --debug trace. It is not a parser round
// trip — it exists for humans reading diagnostics, not for re-ingestion.
func Print(e Expr) string {
	switch e := e.(type) {
	case nil:
		return "<nil>"
	case *Var:
		return e.Name
	case *Lit:
		switch e.Kind {
		case LitBool:
			return fmt.Sprintf("%v", e.Bool)
		case LitInt:
			return fmt.Sprintf("%d", e.Int)
		default:
			return fmt.Sprintf("%q", e.Str)
		}
	case *List:
		parts := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			parts[i] = Print(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Record:
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = fmt.Sprintf("%s = %s", f.Label, Print(f.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *Lambda:
		if e.ParamType == nil {
			return fmt.Sprintf("\\%s. %s", e.Param, Print(e.Body))
		}
		return fmt.Sprintf("\\%s:%s. %s", e.Param, PrintType(e.ParamType), Print(e.Body))
	case *TypeLambda:
		if len(e.Bounds) == 0 {
			return fmt.Sprintf("\\%s. %s", e.Param, Print(e.Body))
		}
		return fmt.Sprintf("\\%s impl %s. %s", e.Param, strings.Join(e.Bounds, "+"), Print(e.Body))
	case *App:
		return fmt.Sprintf("(%s %s)", Print(e.Func), Print(e.Arg))
	case *TypeApp:
		return fmt.Sprintf("(%s @%s)", Print(e.Func), PrintType(e.Arg))
	case *FieldAccess:
		return fmt.Sprintf("%s.%s", Print(e.Record), e.Field)
	case *Annotated:
		return fmt.Sprintf("(%s : %s)", Print(e.Expr), PrintType(e.As))
	case *If:
		return fmt.Sprintf("if %s then %s else %s", Print(e.Cond), Print(e.Then), Print(e.Else))
	case *Or:
		return fmt.Sprintf("(%s || %s)", Print(e.Left), Print(e.Right))
	case *And:
		return fmt.Sprintf("(%s && %s)", Print(e.Left), Print(e.Right))
	case *Not:
		return fmt.Sprintf("!%s", Print(e.Expr))
	case *Rel:
		return fmt.Sprintf("(%s %s %s)", Print(e.Left), e.Op, Print(e.Right))
	case *Add:
		return fmt.Sprintf("(%s %s %s)", Print(e.Left), e.Op, Print(e.Right))
	case *Mul:
		return fmt.Sprintf("(%s %s %s)", Print(e.Left), e.Op, Print(e.Right))
	case *Neg:
		return fmt.Sprintf("-%s", Print(e.Expr))
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}
