package parser

import (
	"github.com/brightlex/golox/ast"
	"github.com/brightlex/golox/token"
	"github.com/brightlex/golox/value"
)

// expression -> assignment
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment -> ( call "." )? IDENT "=" assignment | logic_or
//
// The grammar is ambiguous by construction (an arbitrary-precedence LHS is
// parsed, then checked after the fact), so this parses logic_or first and,
// on seeing "=", validates that what was just parsed is a legal assignment
// target rather than re-parsing the LHS production directly.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()
	if expr == nil {
		return nil
	}

	if p.matchKind(token.Equal) {
		equals, _ := p.prev()
		value := p.assignment()
		if value == nil {
			return nil
		}

		switch target := expr.(type) {
		case *ast.VarExpr:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.hadError = true
			p.diag.ParseErrorAt(equals.Line, equals.Lexeme, "Invalid assignment target.")
			return expr
		}
	}
	return expr
}

// logic_or -> logic_and ( "or" logic_and )*
func (p *Parser) or() ast.Expr {
	expr := p.and()
	if expr == nil {
		return nil
	}
	for p.checkKeyword("or") {
		op, _ := p.advance()
		right := p.and()
		if right == nil {
			return nil
		}
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// logic_and -> equality ( "and" equality )*
func (p *Parser) and() ast.Expr {
	expr := p.equality()
	if expr == nil {
		return nil
	}
	for p.checkKeyword("and") {
		op, _ := p.advance()
		right := p.equality()
		if right == nil {
			return nil
		}
		expr = &ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// equality -> comparison ( ( "!=" | "==" ) comparison )*
func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	if expr == nil {
		return nil
	}
	for p.matchKind(token.BangEqual, token.EqualEqual) {
		op, _ := p.prev()
		right := p.comparison()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// comparison -> term ( ( ">" | ">=" | "<" | "<=" ) term )*
func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	if expr == nil {
		return nil
	}
	for p.matchKind(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op, _ := p.prev()
		right := p.term()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// term -> factor ( ( "-" | "+" ) factor )*
func (p *Parser) term() ast.Expr {
	expr := p.factor()
	if expr == nil {
		return nil
	}
	for p.matchKind(token.Minus, token.Plus) {
		op, _ := p.prev()
		right := p.factor()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// factor -> unary ( ( "/" | "*" ) unary )*
func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	if expr == nil {
		return nil
	}
	for p.matchKind(token.Slash, token.Star) {
		op, _ := p.prev()
		right := p.unary()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

// unary -> ( "!" | "-" ) unary | call
func (p *Parser) unary() ast.Expr {
	if p.matchKind(token.Bang, token.Minus) {
		op, _ := p.prev()
		right := p.unary()
		if right == nil {
			return nil
		}
		return &ast.Unary{Operator: op, Right: right}
	}
	return p.call()
}

// call -> primary ( "(" arguments? ")" | "." IDENT )*
func (p *Parser) call() ast.Expr {
	expr := p.primary()
	if expr == nil {
		return nil
	}
	for {
		switch {
		case p.matchKind(token.LeftParen):
			expr = p.finishCall(expr)
			if expr == nil {
				return nil
			}
		case p.matchKind(token.Dot):
			name, ok := p.consumeIdentifier("Expect property name after '.'.")
			if !ok {
				return nil
			}
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

// arguments -> expression ( "," expression )* -- at most 255 arguments
func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.checkKind(token.RightParen) {
		for {
			if len(args) >= maxArguments {
				p.reportErr("Can't have more than 255 arguments.")
				return nil
			}
			arg := p.expression()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if !p.matchKind(token.Comma) {
				break
			}
		}
	}
	paren, ok := p.consumeKind(token.RightParen, "Expect ')' after arguments.")
	if !ok {
		return nil
	}
	return &ast.Call{Callee: callee, Paren: paren, Arguments: args}
}

// primary -> "true" | "false" | "nil" | "this"
//
//	| NUMBER | STRING | IDENT
//	| "(" expression ")"
//	| "super" "." IDENT
func (p *Parser) primary() ast.Expr {
	switch {
	case p.checkKeyword("true"):
		t, _ := p.advance()
		return &ast.Literal{Value: value.True, TokenLine: t.Line}
	case p.checkKeyword("false"):
		t, _ := p.advance()
		return &ast.Literal{Value: value.False, TokenLine: t.Line}
	case p.checkKeyword("nil"):
		t, _ := p.advance()
		return &ast.Literal{Value: value.Nil, TokenLine: t.Line}
	case p.checkKeyword("this"):
		t, _ := p.advance()
		return &ast.This{Keyword: t}
	case p.checkKeyword("super"):
		keyword, _ := p.advance()
		if _, ok := p.consumeKind(token.Dot, "Expect '.' after 'super'."); !ok {
			return nil
		}
		method, ok := p.consumeIdentifier("Expect superclass method name.")
		if !ok {
			return nil
		}
		return &ast.Super{Keyword: keyword, Method: method}
	case p.checkKind(token.Number):
		t, _ := p.advance()
		return &ast.Literal{Value: value.Number(parseNumberLiteral(t.Lexeme)), TokenLine: t.Line}
	case p.checkKind(token.String):
		t, _ := p.advance()
		return &ast.Literal{Value: value.String(stringLiteralBody(t.Lexeme)), TokenLine: t.Line}
	case p.checkKind(token.Identifier):
		t, _ := p.advance()
		return &ast.VarExpr{Name: t}
	case p.matchKind(token.LeftParen):
		parenTok, _ := p.prev()
		expr := p.expression()
		if expr == nil {
			return nil
		}
		if _, ok := p.consumeKind(token.RightParen, "Expect ')' after expression."); !ok {
			return nil
		}
		return &ast.Grouping{Expression: expr, ParenLine: parenTok.Line}
	default:
		p.reportErr("Expect expression.")
		return nil
	}
}
