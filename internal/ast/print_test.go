package ast

import "testing"

func TestPrintType_ArrowParenthesizesDomain(t *testing.T) {
	ty := &Arrow{Dom: &Arrow{Dom: &Named{Name: "Int"}, Cod: &Named{Name: "Int"}}, Cod: &Named{Name: "Int"}}
	got := PrintType(ty)
	want := "(Int -> Int) -> Int"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrintType_ForAllWithAndWithoutBounds(t *testing.T) {
	plain := &ForAll{Param: "a", Body: &Named{Name: "a"}}
	if got, want := PrintType(plain), "forall a. a"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	bounded := &ForAll{Param: "a", Bounds: []string{"Show"}, Body: &Named{Name: "a"}}
	if got, want := PrintType(bounded), "forall a impl Show. a"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrintType_RecordAndList(t *testing.T) {
	rec := &RecordType{Fields: []RecordTypeField{{Label: "x", Type: &Named{Name: "Int"}}}}
	if got, want := PrintType(rec), "{x: Int}"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	lst := &ListType{Elem: &Named{Name: "Int"}}
	if got, want := PrintType(lst), "[Int]"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrintType_Nil(t *testing.T) {
	if got, want := PrintType(nil), "<erased>"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrint_LambdaAndApp(t *testing.T) {
	lam := &Lambda{Param: "x", ParamType: &Named{Name: "Int"}, Body: &Var{Name: "x"}}
	if got, want := Print(lam), `\x:Int. x`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	app := &App{Func: &Var{Name: "f"}, Arg: &Var{Name: "x"}}
	if got, want := Print(app), "(f x)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPrint_Literals(t *testing.T) {
	if got, want := Print(&Lit{Kind: LitInt, Int: 5}), "5"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := Print(&Lit{Kind: LitBool, Bool: true}), "true"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := Print(&Lit{Kind: LitString, Str: "hi"}), `"hi"`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
