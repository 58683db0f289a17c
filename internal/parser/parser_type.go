package parser

import (
	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/lexer"
)

// parseType descends: forall < arrow < app < atom (list/record/named/paren).
func (p *Parser) parseType() ast.Type {
	return p.parseForAll()
}

func (p *Parser) parseForAll() ast.Type {
	if p.cur.Type != lexer.FORALL {
		return p.parseArrow()
	}
	pos := p.pos()
	p.next()
	param := p.cur.Literal
	p.expect(lexer.IDENT, "type parameter")

	var bounds []string
	if p.cur.Type == lexer.IMPL {
		p.next()
		bounds = append(bounds, p.cur.Literal)
		p.expect(lexer.IDENT, "trait name")
		for p.cur.Type == lexer.PLUS {
			p.next()
			bounds = append(bounds, p.cur.Literal)
			p.expect(lexer.IDENT, "trait name")
		}
	}
	p.expect(lexer.DOT, "'.'")
	body := p.parseType()
	return &ast.ForAll{Param: param, Bounds: bounds, Body: body, Pos: pos}
}

func (p *Parser) parseArrow() ast.Type {
	left := p.parseTypeApp()
	if p.cur.Type == lexer.ARROW {
		pos := p.pos()
		p.next()
		right := p.parseArrow() // right-associative
		return &ast.Arrow{Dom: left, Cod: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseTypeApp() ast.Type {
	left := p.parseTypeAtom()
	for p.cur.Type == lexer.IDENT || p.cur.Type == lexer.LPAREN ||
		p.cur.Type == lexer.LBRACKET || p.cur.Type == lexer.LBRACE {
		pos := p.pos()
		arg := p.parseTypeAtom()
		left = &ast.TApp{Func: left, Arg: arg, Pos: pos}
	}
	return left
}

func (p *Parser) parseTypeAtom() ast.Type {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.LPAREN:
		p.next()
		t := p.parseType()
		p.expect(lexer.RPAREN, "')'")
		return t
	case lexer.IDENT:
		name := p.cur.Literal
		p.next()
		return &ast.Named{Name: name, Pos: pos}
	case lexer.LBRACKET:
		p.next()
		elem := p.parseType()
		p.expect(lexer.RBRACKET, "']'")
		return &ast.ListType{Elem: elem, Pos: pos}
	case lexer.LBRACE:
		p.next()
		var fields []ast.RecordTypeField
		for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
			label := p.cur.Literal
			p.expect(lexer.IDENT, "field label")
			p.expect(lexer.COLON, "':'")
			typ := p.parseType()
			fields = append(fields, ast.RecordTypeField{Label: label, Type: typ})
			if p.cur.Type == lexer.COMMA {
				p.next()
			}
		}
		p.expect(lexer.RBRACE, "'}'")
		return &ast.RecordType{Fields: fields, Pos: pos}
	default:
		p.errorf("expected a type, got %q", p.cur.Literal)
		p.next()
		return &ast.Named{Name: "Int", Pos: pos}
	}
}
