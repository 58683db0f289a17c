package parser

import (
	"testing"

	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(lexer.Normalize([]byte(src)))
	p := New(l, "<test>")
	prog := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return prog
}

func TestParse_Assign(t *testing.T) {
	prog := parse(t, "x = 1 + 2;")
	require1Stmt(t, prog)
	a, ok := prog.Stmts[0].(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", prog.Stmts[0])
	}
	if a.Name != "x" {
		t.Fatalf("got name %q", a.Name)
	}
	if _, ok := a.Expr.(*ast.Add); !ok {
		t.Fatalf("expected Add expr, got %T", a.Expr)
	}
}

func TestParse_TypeAlias(t *testing.T) {
	prog := parse(t, "type Celsius = Int;")
	require1Stmt(t, prog)
	ta, ok := prog.Stmts[0].(*ast.TypeAssign)
	if !ok {
		t.Fatalf("expected *ast.TypeAssign, got %T", prog.Stmts[0])
	}
	if ta.Name != "Celsius" {
		t.Fatalf("got name %q", ta.Name)
	}
}

func TestParse_TraitWithSingleParam(t *testing.T) {
	prog := parse(t, "trait Show a { show: a -> Int; }")
	require1Stmt(t, prog)
	tr, ok := prog.Stmts[0].(*ast.Trait)
	if !ok {
		t.Fatalf("expected *ast.Trait, got %T", prog.Stmts[0])
	}
	if tr.Name != "Show" || len(tr.TypeParams) != 1 || tr.TypeParams[0] != "a" {
		t.Fatalf("unexpected trait: %+v", tr)
	}
	if len(tr.Binds) != 1 || tr.Binds[0].Field != "show" {
		t.Fatalf("unexpected binds: %+v", tr.Binds)
	}
}

func TestParse_StructWithCommaAndSemicolonSeparators(t *testing.T) {
	prog := parse(t, "struct Point { x: Int, y: Int }")
	require1Stmt(t, prog)
	s, ok := prog.Stmts[0].(*ast.Struct)
	if !ok {
		t.Fatalf("expected *ast.Struct, got %T", prog.Stmts[0])
	}
	if len(s.Binds) != 2 {
		t.Fatalf("expected 2 binds, got %d", len(s.Binds))
	}
}

func TestParse_ImplRequiresForKeyword(t *testing.T) {
	prog := parse(t, "impl Show for Int { show = \\x:Int. x; }")
	require1Stmt(t, prog)
	im, ok := prog.Stmts[0].(*ast.Impl)
	if !ok {
		t.Fatalf("expected *ast.Impl, got %T", prog.Stmts[0])
	}
	if im.Trait != "Show" {
		t.Fatalf("got trait %q", im.Trait)
	}
	named, ok := im.For.(*ast.Named)
	if !ok || named.Name != "Int" {
		t.Fatalf("unexpected For type: %+v", im.For)
	}
}

func TestParse_ImplWithoutForIsASyntaxError(t *testing.T) {
	l := lexer.New(lexer.Normalize([]byte("impl Show Int { show = \\x:Int. x; }")))
	p := New(l, "<test>")
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a syntax error for impl without 'for'")
	}
}

func TestParse_TypedAndUntypedLambda(t *testing.T) {
	prog := parse(t, "f = \\x:Int. x;")
	a := prog.Stmts[0].(*ast.Assign)
	lam, ok := a.Expr.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected *ast.Lambda, got %T", a.Expr)
	}
	if lam.Param != "x" {
		t.Fatalf("got param %q", lam.Param)
	}

	prog2 := parse(t, "g = \\x impl Show. x;")
	a2 := prog2.Stmts[0].(*ast.Assign)
	tlam, ok := a2.Expr.(*ast.TypeLambda)
	if !ok {
		t.Fatalf("expected *ast.TypeLambda, got %T", a2.Expr)
	}
	if len(tlam.Bounds) != 1 || tlam.Bounds[0] != "Show" {
		t.Fatalf("unexpected bounds: %+v", tlam.Bounds)
	}
}

func TestParse_TypeApplicationWithAt(t *testing.T) {
	prog := parse(t, "y = f @Int;")
	a := prog.Stmts[0].(*ast.Assign)
	app, ok := a.Expr.(*ast.TypeApp)
	if !ok {
		t.Fatalf("expected *ast.TypeApp, got %T", a.Expr)
	}
	named, ok := app.Arg.(*ast.Named)
	if !ok || named.Name != "Int" {
		t.Fatalf("unexpected type arg: %+v", app.Arg)
	}
}

func TestParse_ArrowTypeIsRightAssociative(t *testing.T) {
	prog := parse(t, "type T = Int -> Int -> Bool;")
	ta := prog.Stmts[0].(*ast.TypeAssign)
	outer, ok := ta.Type.(*ast.Arrow)
	if !ok {
		t.Fatalf("expected *ast.Arrow, got %T", ta.Type)
	}
	inner, ok := outer.Cod.(*ast.Arrow)
	if !ok {
		t.Fatalf("expected nested arrow on the right, got %T", outer.Cod)
	}
	if _, ok := inner.Cod.(*ast.Named); !ok {
		t.Fatalf("expected Named at the tail, got %T", inner.Cod)
	}
}

func TestParse_IfThenElseAndFieldAccess(t *testing.T) {
	prog := parse(t, "z = if true then p.x else p.y;")
	a := prog.Stmts[0].(*ast.Assign)
	ifExpr, ok := a.Expr.(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", a.Expr)
	}
	if _, ok := ifExpr.Then.(*ast.FieldAccess); !ok {
		t.Fatalf("expected FieldAccess in then branch, got %T", ifExpr.Then)
	}
}

func TestParse_ListAndRecordLiterals(t *testing.T) {
	prog := parse(t, "xs = [1, 2, 3];")
	a := prog.Stmts[0].(*ast.Assign)
	list, ok := a.Expr.(*ast.List)
	if !ok || len(list.Elems) != 3 {
		t.Fatalf("unexpected list: %+v", a.Expr)
	}

	prog2 := parse(t, "r = {x = 1, y = 2};")
	a2 := prog2.Stmts[0].(*ast.Assign)
	rec, ok := a2.Expr.(*ast.Record)
	if !ok || len(rec.Fields) != 2 {
		t.Fatalf("unexpected record: %+v", a2.Expr)
	}
}

func TestParse_UnexpectedTokenRecordsError(t *testing.T) {
	l := lexer.New(lexer.Normalize([]byte("x = ;")))
	p := New(l, "<test>")
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a syntax error")
	}
}

func require1Stmt(t *testing.T, prog *ast.Program) {
	t.Helper()
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Stmts))
	}
}
