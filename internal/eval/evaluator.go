// Package eval implements §4.5: a substitution-based, call-by-value
// reducer over a dispatched tree. Grounded on the original
// InterpreterVisitor (original_source/src/interpreter.py), adapted to a
// dedicated Value hierarchy in the manner of the teacher's own
// internal/eval/value.go rather than reusing AST nodes as runtime values.
package eval

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/errors"
	"github.com/tlcore-lang/tlcore/internal/fresh"
)

// StmtLog is one top-level statement's (line, rendered-result) record
// (spec.md §4.5 "Logging").
type StmtLog struct {
	Line int
	Text string
}

// Evaluator holds the global binding table and I/O streams used by the
// read/print/println builtins.
type Evaluator struct {
	fresh   *fresh.Counter
	globals map[string]Value
	stdin   *bufio.Reader
	stdout  io.Writer
}

// New creates an Evaluator with the builtin prelude installed, reading
// from in and printing to out.
func New(in io.Reader, out io.Writer) *Evaluator {
	e := &Evaluator{
		fresh:   fresh.NewCounter(),
		globals: map[string]Value{},
		stdin:   bufio.NewReader(in),
		stdout:  out,
	}
	e.installBuiltins()
	return e
}

// Run evaluates every statement of prog in order against the global
// environment, returning one log record per Assign/ExprStmt.
func (e *Evaluator) Run(prog *ast.Program) ([]StmtLog, error) {
	var logs []StmtLog
	for _, stmt := range prog.Stmts {
		switch s := stmt.(type) {
		case *ast.Assign:
			v, err := e.eval(s.Expr)
			if err != nil {
				return logs, err
			}
			e.globals[s.Name] = v
			logs = append(logs, StmtLog{Line: s.Pos.Line, Text: fmt.Sprintf("%s = %s", s.Name, v.String())})
		case *ast.ExprStmt:
			v, err := e.eval(s.Expr)
			if err != nil {
				return logs, err
			}
			logs = append(logs, StmtLog{Line: s.Pos.Line, Text: fmt.Sprintf("= %s", v.String())})
		default:
			// TypeAssign/TraitFieldEnv/InstanceEnv are consumed by earlier
			// passes; none should reach the evaluator.
		}
	}
	return logs, nil
}

func (e *Evaluator) eval(expr ast.Expr) (Value, error) {
	switch x := expr.(type) {
	case *ast.Lit:
		switch x.Kind {
		case ast.LitBool:
			return &BoolValue{Value: x.Bool}, nil
		case ast.LitInt:
			return &IntValue{Value: x.Int}, nil
		default:
			return &StringValue{Value: x.Str}, nil
		}

	case *ast.Var:
		v, ok := e.globals[x.Name]
		if !ok {
			return nil, errors.New("eval", errors.RUN003, x.Pos, "unbound variable %q", x.Name)
		}
		return v, nil

	case *ast.List:
		elems := make([]Value, len(x.Elems))
		for i, el := range x.Elems {
			v, err := e.eval(el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &ListValue{Elements: elems}, nil

	case *ast.Record:
		fields := make([]RecordField, len(x.Fields))
		for i, f := range x.Fields {
			v, err := e.eval(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = RecordField{Label: f.Label, Value: v}
		}
		return &RecordValue{Fields: fields}, nil

	case *ast.Lambda:
		return &LambdaValue{Param: x.Param, Body: x.Body, Pos: x.Pos}, nil

	case *ast.TypeLambda:
		// Erasure: a TypeLambda surviving to the evaluator may still carry
		// bounds, but dispatch already wrapped its body in one dictionary-
		// parameter Lambda per bound, so only the body matters.
		return e.eval(x.Body)

	case *ast.App:
		fn, err := e.eval(x.Func)
		if err != nil {
			return nil, err
		}
		arg, err := e.eval(x.Arg)
		if err != nil {
			return nil, err
		}
		return e.apply(fn, arg, x.Pos)

	case *ast.TypeApp:
		// Erasure: a TypeApp that survives dispatch carries no dictionary
		// itself (for a bounded universal, dispatch placed it under App
		// nodes that pass the dictionaries), so only its function matters.
		return e.eval(x.Func)

	case *ast.FieldAccess:
		rec, err := e.eval(x.Record)
		if err != nil {
			return nil, err
		}
		r, ok := rec.(*RecordValue)
		if !ok {
			return nil, errors.New("eval", errors.RUN003, x.Pos, "field access on non-record value")
		}
		v, ok := r.field(x.Field)
		if !ok {
			return nil, errors.New("eval", errors.RUN003, x.Pos, "unknown field %q", x.Field)
		}
		return v, nil

	case *ast.Annotated:
		return e.eval(x.Expr)

	case *ast.If:
		cond, err := e.eval(x.Cond)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(*BoolValue)
		if !ok {
			return nil, errors.New("eval", errors.RUN003, x.Pos, "if condition is not Bool")
		}
		if b.Value {
			return e.eval(x.Then)
		}
		return e.eval(x.Else)

	case *ast.Or:
		l, err := e.eval(x.Left)
		if err != nil {
			return nil, err
		}
		lb, ok := l.(*BoolValue)
		if !ok {
			return nil, errors.New("eval", errors.RUN003, x.Pos, "operand is not Bool")
		}
		if lb.Value {
			return l, nil
		}
		return e.eval(x.Right)

	case *ast.And:
		l, err := e.eval(x.Left)
		if err != nil {
			return nil, err
		}
		lb, ok := l.(*BoolValue)
		if !ok {
			return nil, errors.New("eval", errors.RUN003, x.Pos, "operand is not Bool")
		}
		if !lb.Value {
			return l, nil
		}
		return e.eval(x.Right)

	case *ast.Not:
		v, err := e.eval(x.Expr)
		if err != nil {
			return nil, err
		}
		b, ok := v.(*BoolValue)
		if !ok {
			return nil, errors.New("eval", errors.RUN003, x.Pos, "operand is not Bool")
		}
		return &BoolValue{Value: !b.Value}, nil

	case *ast.Rel:
		l, err := e.eval(x.Left)
		if err != nil {
			return nil, err
		}
		r, err := e.eval(x.Right)
		if err != nil {
			return nil, err
		}
		return e.relOp(x.Op, l, r, x.Pos)

	case *ast.Add:
		return e.addOp(x)

	case *ast.Mul:
		l, r, err := e.intOperands(x.Left, x.Right)
		if err != nil {
			return nil, err
		}
		switch x.Op {
		case "*":
			return &IntValue{Value: l * r}, nil
		case "/":
			if r == 0 {
				return nil, errors.New("eval", errors.RUN001, x.Pos, "division by zero")
			}
			return &IntValue{Value: l / r}, nil
		default:
			if r == 0 {
				return nil, errors.New("eval", errors.RUN001, x.Pos, "division by zero")
			}
			return &IntValue{Value: l % r}, nil
		}

	case *ast.Neg:
		v, err := e.eval(x.Expr)
		if err != nil {
			return nil, err
		}
		i, ok := v.(*IntValue)
		if !ok {
			return nil, errors.New("eval", errors.RUN003, x.Pos, "operand is not Int")
		}
		return &IntValue{Value: -i.Value}, nil

	default:
		return nil, errors.New("eval", errors.RUN003, expr.Position(), "cannot evaluate this expression form")
	}
}

// addOp implements spec §4.5's overloaded `+`: integer sum, string
// concatenation, and list concatenation (`cons` desugars to `[x] + xs`).
// `-` is always integer subtraction.
func (e *Evaluator) addOp(x *ast.Add) (Value, error) {
	l, err := e.eval(x.Left)
	if err != nil {
		return nil, err
	}
	r, err := e.eval(x.Right)
	if err != nil {
		return nil, err
	}
	if x.Op == "+" {
		if ls, ok := l.(*StringValue); ok {
			rs, ok := r.(*StringValue)
			if !ok {
				return nil, errors.New("eval", errors.RUN003, x.Pos, "operand is not String")
			}
			return &StringValue{Value: ls.Value + rs.Value}, nil
		}
		if ll, ok := l.(*ListValue); ok {
			rl, ok := r.(*ListValue)
			if !ok {
				return nil, errors.New("eval", errors.RUN003, x.Pos, "operand is not List")
			}
			elems := make([]Value, 0, len(ll.Elements)+len(rl.Elements))
			elems = append(elems, ll.Elements...)
			elems = append(elems, rl.Elements...)
			return &ListValue{Elements: elems}, nil
		}
	}
	li, ok := l.(*IntValue)
	if !ok {
		return nil, errors.New("eval", errors.RUN003, x.Pos, "operand is not Int")
	}
	ri, ok := r.(*IntValue)
	if !ok {
		return nil, errors.New("eval", errors.RUN003, x.Pos, "operand is not Int")
	}
	if x.Op == "+" {
		return &IntValue{Value: li.Value + ri.Value}, nil
	}
	return &IntValue{Value: li.Value - ri.Value}, nil
}

func (e *Evaluator) intOperands(left, right ast.Expr) (int64, int64, error) {
	l, err := e.eval(left)
	if err != nil {
		return 0, 0, err
	}
	r, err := e.eval(right)
	if err != nil {
		return 0, 0, err
	}
	li, ok := l.(*IntValue)
	if !ok {
		return 0, 0, errors.New("eval", errors.RUN003, left.Position(), "operand is not Int")
	}
	ri, ok := r.(*IntValue)
	if !ok {
		return 0, 0, errors.New("eval", errors.RUN003, right.Position(), "operand is not Int")
	}
	return li.Value, ri.Value, nil
}

func (e *Evaluator) relOp(op string, l, r Value, pos ast.Pos) (Value, error) {
	switch op {
	case "==":
		return &BoolValue{Value: valuesEqual(l, r)}, nil
	case "!=":
		return &BoolValue{Value: !valuesEqual(l, r)}, nil
	}
	li, ok := l.(*IntValue)
	if !ok {
		return nil, errors.New("eval", errors.RUN003, pos, "operand is not Int")
	}
	ri, ok := r.(*IntValue)
	if !ok {
		return nil, errors.New("eval", errors.RUN003, pos, "operand is not Int")
	}
	switch op {
	case "<":
		return &BoolValue{Value: li.Value < ri.Value}, nil
	case "<=":
		return &BoolValue{Value: li.Value <= ri.Value}, nil
	case ">":
		return &BoolValue{Value: li.Value > ri.Value}, nil
	default:
		return &BoolValue{Value: li.Value >= ri.Value}, nil
	}
}

func (e *Evaluator) apply(fn, arg Value, pos ast.Pos) (Value, error) {
	switch f := fn.(type) {
	case *LambdaValue:
		argExpr, err := valueToExpr(arg, pos)
		if err != nil {
			return nil, err
		}
		substituted := substitute(e.fresh, f.Body, f.Param, argExpr)
		return e.eval(substituted)
	case *BuiltinValue:
		args := make([]Value, len(f.Args), len(f.Args)+1)
		copy(args, f.Args)
		args = append(args, arg)
		if len(args) < f.Arity {
			return &BuiltinValue{Name: f.Name, Arity: f.Arity, Args: args}, nil
		}
		return e.callBuiltin(f.Name, args, pos)
	default:
		return nil, errors.New("eval", errors.RUN003, pos, "cannot apply a non-function value")
	}
}
