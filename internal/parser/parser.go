// Package parser turns a token stream into the ast.Program consumed by the
// pipeline. Concrete syntax handling is, per spec.md, an "external
// collaborator" of the semantic core — but a working CLI needs one, so
// this is a straightforward recursive-descent/precedence-climbing parser
// over the grammar in spec.md §6, shaped like the teacher's
// parser_expr.go/parser_type.go/parser_decl.go split (one file per
// syntactic layer) without inheriting any of its module/effect grammar.
package parser

import (
	"fmt"

	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/lexer"
)

// Parser consumes tokens from a lexer.Lexer one at a time with a single
// token of lookahead.
type Parser struct {
	l    *lexer.Lexer
	file string

	cur  lexer.Token
	peek lexer.Token

	errs []error
}

// New creates a Parser reading from l. file is used only for diagnostics.
func New(l *lexer.Lexer, file string) *Parser {
	p := &Parser{l: l, file: file}
	p.next()
	p.next()
	return p
}

// Errors returns every syntax error accumulated during Parse.
func (p *Parser) Errors() []error { return p.errs }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.Next()
}

func (p *Parser) pos() ast.Pos {
	return ast.Pos{Line: p.cur.Line, File: p.file}
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errs = append(p.errs, fmt.Errorf("[line %d] %s", p.cur.Line, fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(t lexer.TokenType, what string) bool {
	if p.cur.Type != t {
		p.errorf("expected %s, got %q", what, p.cur.Literal)
		return false
	}
	p.next()
	return true
}

// Parse parses a whole program. Parser errors are accumulated; callers
// should check Errors() before trusting the returned Program.
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Type != lexer.EOF {
		stmt := p.parseStmt()
		if stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		} else if p.cur.Type != lexer.EOF {
			// avoid infinite loop on unrecoverable token
			p.next()
		}
	}
	return prog
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Type {
	case lexer.TYPE:
		return p.parseTypeAssign()
	case lexer.TRAIT:
		return p.parseTrait()
	case lexer.STRUCT:
		return p.parseStruct()
	case lexer.IMPL:
		return p.parseImpl()
	case lexer.IDENT:
		if p.peek.Type == lexer.EQUAL {
			return p.parseAssign()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseAssign() ast.Stmt {
	pos := p.pos()
	name := p.cur.Literal
	p.next() // ident
	p.next() // '='
	expr := p.parseExpr()
	p.expect(lexer.SEMI, "';'")
	return &ast.Assign{Name: name, Expr: expr, Pos: pos}
}

func (p *Parser) parseTypeAssign() ast.Stmt {
	pos := p.pos()
	p.next() // 'type'
	name := p.cur.Literal
	p.expect(lexer.IDENT, "identifier")
	p.expect(lexer.EQUAL, "'='")
	typ := p.parseType()
	p.expect(lexer.SEMI, "';'")
	return &ast.TypeAssign{Name: name, Type: typ, Pos: pos}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	pos := p.pos()
	expr := p.parseExpr()
	p.expect(lexer.SEMI, "';'")
	return &ast.ExprStmt{Expr: expr, Pos: pos}
}

func (p *Parser) parseTrait() ast.Stmt {
	pos := p.pos()
	p.next() // 'trait'
	name := p.cur.Literal
	p.expect(lexer.IDENT, "identifier")

	var params []string
	for p.cur.Type == lexer.IDENT {
		params = append(params, p.cur.Literal)
		p.next()
	}

	p.expect(lexer.LBRACE, "'{'")
	var binds []ast.TraitBind
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		field := p.cur.Literal
		p.expect(lexer.IDENT, "field name")
		p.expect(lexer.COLON, "':'")
		typ := p.parseType()
		p.expect(lexer.SEMI, "';'")
		binds = append(binds, ast.TraitBind{Field: field, Type: typ})
	}
	p.expect(lexer.RBRACE, "'}'")
	return &ast.Trait{Name: name, TypeParams: params, Binds: binds, Pos: pos}
}

func (p *Parser) parseStruct() ast.Stmt {
	pos := p.pos()
	p.next() // 'struct'
	name := p.cur.Literal
	p.expect(lexer.IDENT, "identifier")

	p.expect(lexer.LBRACE, "'{'")
	var binds []ast.StructBind
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		field := p.cur.Literal
		p.expect(lexer.IDENT, "field name")
		p.expect(lexer.COLON, "':'")
		typ := p.parseType()
		if p.cur.Type == lexer.COMMA {
			p.next()
		} else if p.cur.Type == lexer.SEMI {
			p.next()
		}
		binds = append(binds, ast.StructBind{Field: field, Type: typ})
	}
	p.expect(lexer.RBRACE, "'}'")
	return &ast.Struct{Name: name, Binds: binds, Pos: pos}
}

func (p *Parser) parseImpl() ast.Stmt {
	pos := p.pos()
	p.next() // 'impl'
	trait := p.cur.Literal
	p.expect(lexer.IDENT, "trait name")
	p.expect(lexer.FOR, "'for'")
	forType := p.parseType()

	p.expect(lexer.LBRACE, "'{'")
	var assigns []ast.ImplAssign
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		field := p.cur.Literal
		p.expect(lexer.IDENT, "field name")
		p.expect(lexer.EQUAL, "'='")
		expr := p.parseExpr()
		p.expect(lexer.SEMI, "';'")
		assigns = append(assigns, ast.ImplAssign{Field: field, Expr: expr})
	}
	p.expect(lexer.RBRACE, "'}'")
	return &ast.Impl{Trait: trait, For: forType, Assigns: assigns, Pos: pos}
}
