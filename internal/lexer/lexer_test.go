package lexer

import "testing"

func collect(src string) []Token {
	l := New([]byte(src))
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func TestLexer_KeywordsAndIdentifiers(t *testing.T) {
	toks := collect("trait struct impl for type forall foo")
	want := []TokenType{TRAIT, STRUCT, IMPL, FOR, TYPE, FORALL, IDENT, EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: got %v, want %v", i, toks[i].Type, w)
		}
	}
}

func TestLexer_TwoCharOperators(t *testing.T) {
	toks := collect("-> == != <= >= || &&")
	want := []TokenType{ARROW, EQEQ, NEQ, LTE, GTE, OROR, ANDAND, EOF}
	for i, w := range want {
		if toks[i].Type != w {
			t.Fatalf("token %d: got %v, want %v", i, toks[i].Type, w)
		}
	}
}

func TestLexer_StringEscapes(t *testing.T) {
	toks := collect(`"a\nb\"c"`)
	if toks[0].Type != STRING {
		t.Fatalf("expected STRING, got %v", toks[0].Type)
	}
	if got, want := toks[0].Literal, "a\nb\"c"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLexer_UnterminatedStringIsIllegal(t *testing.T) {
	toks := collect(`"unterminated`)
	if toks[0].Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %v", toks[0].Type)
	}
}

func TestLexer_LineCommentsAreSkipped(t *testing.T) {
	toks := collect("1 // a comment\n2")
	if toks[0].Type != INT || toks[0].Literal != "1" {
		t.Fatalf("unexpected first token: %+v", toks[0])
	}
	if toks[1].Type != INT || toks[1].Literal != "2" {
		t.Fatalf("unexpected second token: %+v", toks[1])
	}
	if toks[1].Line != 2 {
		t.Fatalf("expected second int on line 2, got %d", toks[1].Line)
	}
}

func TestLexer_SingleAmpersandAndPipeAreIllegal(t *testing.T) {
	toks := collect("& |")
	if toks[0].Type != ILLEGAL || toks[1].Type != ILLEGAL {
		t.Fatalf("single & and | should be illegal, got %v %v", toks[0].Type, toks[1].Type)
	}
}

func TestLexer_NumbersAndPunctuation(t *testing.T) {
	toks := collect("42 (x, y) { z: Int }")
	wantTypes := []TokenType{INT, LPAREN, IDENT, COMMA, IDENT, RPAREN, LBRACE, IDENT, COLON, IDENT, RBRACE, EOF}
	if len(toks) != len(wantTypes) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(wantTypes))
	}
	for i, w := range wantTypes {
		if toks[i].Type != w {
			t.Fatalf("token %d: got %v, want %v", i, toks[i].Type, w)
		}
	}
}
