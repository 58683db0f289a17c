package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/errors"
)

// installBuiltins populates the global environment with the fixed
// primitive set of spec.md §4.5. Every builtin is arity 1 so it composes
// uniformly with ordinary single-argument application; read ignores its
// argument and performs the effect once per call site. cons is not a
// primitive — it is installed as the fixed desugaring λx. λxs. [x] + xs.
func (e *Evaluator) installBuiltins() {
	for _, name := range []string{"print", "println", "read", "string_to_int", "int_to_string", "head", "tail"} {
		e.globals[name] = &BuiltinValue{Name: name, Arity: 1}
	}

	pos := ast.Pos{}
	consBody := &ast.Lambda{
		Param: "xs",
		Body: &ast.Add{
			Op:   "+",
			Left: &ast.List{Elems: []ast.Expr{&ast.Var{Name: "x", Pos: pos}}, Pos: pos},
			Right: &ast.Var{
				Name: "xs",
				Pos:  pos,
			},
			Pos: pos,
		},
		Pos: pos,
	}
	e.globals["cons"] = &LambdaValue{Param: "x", Body: consBody, Pos: pos}
}

func (e *Evaluator) callBuiltin(name string, args []Value, pos ast.Pos) (Value, error) {
	switch name {
	case "print":
		fmt.Fprint(e.stdout, render(args[0]))
		return args[0], nil

	case "println":
		fmt.Fprintln(e.stdout, render(args[0]))
		return args[0], nil

	case "read":
		line, err := e.stdin.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if err != nil && line == "" {
			return &StringValue{Value: ""}, nil
		}
		return &StringValue{Value: line}, nil

	case "string_to_int":
		s, ok := args[0].(*StringValue)
		if !ok {
			return nil, errors.New("eval", errors.RUN003, pos, "string_to_int expects a String")
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s.Value), 10, 64)
		if err != nil {
			return nil, errors.New("eval", errors.RUN003, pos, "cannot parse %q as Int", s.Value)
		}
		return &IntValue{Value: n}, nil

	case "int_to_string":
		n, ok := args[0].(*IntValue)
		if !ok {
			return nil, errors.New("eval", errors.RUN003, pos, "int_to_string expects an Int")
		}
		return &StringValue{Value: strconv.FormatInt(n.Value, 10)}, nil

	case "head":
		l, ok := args[0].(*ListValue)
		if !ok {
			return nil, errors.New("eval", errors.RUN003, pos, "head expects a List")
		}
		if len(l.Elements) == 0 {
			return nil, errors.New("eval", errors.RUN002, pos, "head of empty list")
		}
		return l.Elements[0], nil

	case "tail":
		l, ok := args[0].(*ListValue)
		if !ok {
			return nil, errors.New("eval", errors.RUN003, pos, "tail expects a List")
		}
		if len(l.Elements) == 0 {
			return nil, errors.New("eval", errors.RUN002, pos, "tail of empty list")
		}
		return &ListValue{Elements: l.Elements[1:]}, nil

	default:
		return nil, errors.New("eval", errors.RUN003, pos, "unknown builtin %q", name)
	}
}

// render formats a value for print/println: strings print bare (no
// surrounding quotes), everything else uses its normal String() form.
func render(v Value) string {
	if s, ok := v.(*StringValue); ok {
		return s.Value
	}
	return v.String()
}
