package parser

import (
	"strconv"

	"github.com/tlcore-lang/tlcore/internal/ast"
	"github.com/tlcore-lang/tlcore/internal/lexer"
)

// parseExpr is the grammar's entry point, descending through each
// precedence level in turn: lambda < if < || < && < ! < rel < add < mul <
// neg < app/typeapp < annotation < field access < atom.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseLambda()
}

func (p *Parser) parseLambda() ast.Expr {
	if p.cur.Type != lexer.BACKSLASH {
		return p.parseIf()
	}
	pos := p.pos()
	p.next() // '\'
	param := p.cur.Literal
	p.expect(lexer.IDENT, "parameter name")

	if p.cur.Type == lexer.COLON {
		p.next()
		typ := p.parseType()
		p.expect(lexer.DOT, "'.'")
		body := p.parseExpr()
		return &ast.Lambda{Param: param, ParamType: typ, Body: body, Pos: pos}
	}

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
	body := p.parseExpr()
	return &ast.TypeLambda{Param: param, Bounds: bounds, Body: body, Pos: pos}
}

func (p *Parser) parseIf() ast.Expr {
	if p.cur.Type != lexer.IF {
		return p.parseOr()
	}
	pos := p.pos()
	p.next()
	cond := p.parseExpr()
	p.expect(lexer.THEN, "'then'")
	then := p.parseExpr()
	p.expect(lexer.ELSE, "'else'")
	els := p.parseExpr()
	return &ast.If{Cond: cond, Then: then, Else: els, Pos: pos}
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.cur.Type == lexer.OROR {
		pos := p.pos()
		p.next()
		right := p.parseAnd()
		left = &ast.Or{Left: left, Right: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseNot()
	for p.cur.Type == lexer.ANDAND {
		pos := p.pos()
		p.next()
		right := p.parseNot()
		left = &ast.And{Left: left, Right: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseNot() ast.Expr {
	if p.cur.Type == lexer.BANG {
		pos := p.pos()
		p.next()
		return &ast.Not{Expr: p.parseNot(), Pos: pos}
	}
	return p.parseRel()
}

var relOps = map[lexer.TokenType]string{
	lexer.EQEQ: "==", lexer.NEQ: "!=", lexer.LT: "<", lexer.LTE: "<=",
	lexer.GT: ">", lexer.GTE: ">=",
}

func (p *Parser) parseRel() ast.Expr {
	left := p.parseAdd()
	if op, ok := relOps[p.cur.Type]; ok {
		pos := p.pos()
		p.next()
		right := p.parseAdd()
		return &ast.Rel{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseAdd() ast.Expr {
	left := p.parseMul()
	for p.cur.Type == lexer.PLUS || p.cur.Type == lexer.MINUS {
		pos := p.pos()
		op := "+"
		if p.cur.Type == lexer.MINUS {
			op = "-"
		}
		p.next()
		right := p.parseMul()
		left = &ast.Add{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseMul() ast.Expr {
	left := p.parseNeg()
	for p.cur.Type == lexer.STAR || p.cur.Type == lexer.SLASH || p.cur.Type == lexer.PERCENT {
		pos := p.pos()
		var op string
		switch p.cur.Type {
		case lexer.STAR:
			op = "*"
		case lexer.SLASH:
			op = "/"
		default:
			op = "%"
		}
		p.next()
		right := p.parseNeg()
		left = &ast.Mul{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left
}

func (p *Parser) parseNeg() ast.Expr {
	if p.cur.Type == lexer.MINUS {
		pos := p.pos()
		p.next()
		return &ast.Neg{Expr: p.parseNeg(), Pos: pos}
	}
	return p.parseApp()
}

func (p *Parser) parseApp() ast.Expr {
	left := p.parseAnnotated()
	for {
		switch p.cur.Type {
		case lexer.AT:
			pos := p.pos()
			p.next()
			typ := p.parseTypeAtom()
			left = &ast.TypeApp{Func: left, Arg: typ, Pos: pos}
		case lexer.LPAREN, lexer.IDENT, lexer.INT, lexer.STRING, lexer.TRUE, lexer.FALSE,
			lexer.LBRACKET, lexer.LBRACE:
			pos := p.pos()
			arg := p.parseAnnotated()
			left = &ast.App{Func: left, Arg: arg, Pos: pos}
		default:
			return left
		}
	}
}

func (p *Parser) parseAnnotated() ast.Expr {
	e := p.parseFieldAccess()
	if p.cur.Type == lexer.COLON {
		pos := p.pos()
		p.next()
		typ := p.parseType()
		return &ast.Annotated{Expr: e, As: typ, Pos: pos}
	}
	return e
}

func (p *Parser) parseFieldAccess() ast.Expr {
	e := p.parseAtom()
	for p.cur.Type == lexer.DOT {
		pos := p.pos()
		p.next()
		field := p.cur.Literal
		p.expect(lexer.IDENT, "field name")
		e = &ast.FieldAccess{Record: e, Field: field, Pos: pos}
	}
	return e
}

func (p *Parser) parseAtom() ast.Expr {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.LPAREN:
		p.next()
		e := p.parseExpr()
		p.expect(lexer.RPAREN, "')'")
		return e
	case lexer.IDENT:
		name := p.cur.Literal
		p.next()
		return &ast.Var{Name: name, Pos: pos}
	case lexer.TRUE:
		p.next()
		return &ast.Lit{Kind: ast.LitBool, Bool: true, Pos: pos}
	case lexer.FALSE:
		p.next()
		return &ast.Lit{Kind: ast.LitBool, Bool: false, Pos: pos}
	case lexer.INT:
		n, _ := strconv.ParseInt(p.cur.Literal, 10, 64)
		p.next()
		return &ast.Lit{Kind: ast.LitInt, Int: n, Pos: pos}
	case lexer.STRING:
		s := p.cur.Literal
		p.next()
		return &ast.Lit{Kind: ast.LitString, Str: s, Pos: pos}
	case lexer.LBRACKET:
		p.next()
		var elems []ast.Expr
		for p.cur.Type != lexer.RBRACKET && p.cur.Type != lexer.EOF {
			elems = append(elems, p.parseExpr())
			if p.cur.Type == lexer.COMMA {
				p.next()
			}
		}
		p.expect(lexer.RBRACKET, "']'")
		return &ast.List{Elems: elems, Pos: pos}
	case lexer.LBRACE:
		p.next()
		var fields []ast.RecordField
		for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
			label := p.cur.Literal
			p.expect(lexer.IDENT, "field label")
			p.expect(lexer.EQUAL, "'='")
			value := p.parseExpr()
			fields = append(fields, ast.RecordField{Label: label, Value: value})
			if p.cur.Type == lexer.COMMA {
				p.next()
			}
		}
		p.expect(lexer.RBRACE, "'}'")
		return &ast.Record{Fields: fields, Pos: pos}
	default:
		p.errorf("unexpected token %q", p.cur.Literal)
		p.next()
		return &ast.Lit{Kind: ast.LitBool, Bool: false, Pos: pos}
	}
}
