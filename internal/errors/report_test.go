package errors

import (
	stderrors "errors"
	"testing"

	"github.com/tlcore-lang/tlcore/internal/ast"
)

func TestNew_FormatsLineAndCode(t *testing.T) {
	err := New("typecheck", TYP006, ast.Pos{Line: 3}, "unbound variable %q", "x")
	if got, want := err.Error(), `[line 3] TYP006: unbound variable "x"`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNew_OmitsLineWhenZero(t *testing.T) {
	err := New("resolve", RES001, ast.Pos{}, "unknown type %q", "Foo")
	if got, want := err.Error(), `RES001: unknown type "Foo"`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAsReport_ExtractsReportFromChain(t *testing.T) {
	err := New("dispatch", DSP001, ast.Pos{Line: 1}, "unsolved field")
	rep, ok := AsReport(err)
	if !ok {
		t.Fatalf("expected AsReport to succeed")
	}
	if rep.Code != DSP001 || rep.Phase != "dispatch" {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestAsReport_FalseForPlainError(t *testing.T) {
	_, ok := AsReport(stderrors.New("plain"))
	if ok {
		t.Fatalf("AsReport should fail for an error that isn't a ReportError")
	}
}

func TestWrap_PreservesCauseForUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap("eval", RUN001, ast.Pos{Line: 7}, cause)

	rep, ok := AsReport(err)
	if !ok {
		t.Fatalf("expected AsReport to succeed")
	}
	if rep.Cause != cause {
		t.Fatalf("Wrap must retain the original cause")
	}
	if !stderrors.Is(err, cause) {
		t.Fatalf("errors.Is should see through Unwrap to the cause")
	}
}
