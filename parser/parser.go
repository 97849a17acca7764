// Package parser implements golox's recursive-descent parser: a filtered
// token vector goes in, a statement list comes out, with error recovery via
// synchronization.
//
// The parser holds the whole token vector plus a current index rather than
// pulling tokens from the lexer on the fly. Materializing the vector is
// what makes the error-attribution rule expressible: when the offending
// token sits on a different line than the one being parsed, the report
// anchors to the previous token instead, which means looking backward in
// the stream. Each grammar production gets one function, named after the
// rule.
package parser

import (
	"github.com/brightlex/golox/ast"
	"github.com/brightlex/golox/diagnostics"
	"github.com/brightlex/golox/token"
	"github.com/brightlex/golox/value"
)

const maxArguments = 255

var synchronizeKeywords = []string{"class", "fun", "var", "for", "if", "while", "print", "return"}

// Parser turns a filtered (trivia-free) token vector into a statement list.
type Parser struct {
	tokens   []token.Token
	current  int
	currLine int
	hadError bool
	diag     *diagnostics.Reporter
}

// New creates a Parser over tokens, which must already have trivia and EOF
// filtered out by the caller (see token.Filter).
func New(tokens []token.Token, diag *diagnostics.Reporter) *Parser {
	line := 1
	if len(tokens) > 0 {
		line = tokens[0].Line
	}
	return &Parser{tokens: tokens, currLine: line, diag: diag}
}

// HadError reports whether any production recorded a parse error.
func (p *Parser) HadError() bool { return p.hadError }

// Parse runs `program -> declaration* EOF`. The returned slice is only
// meaningful when ok is true: a failed parse still populates stmts with
// whatever declarations parsed cleanly, but the overall result is
// suppressed at the call site.
func (p *Parser) Parse() (stmts []ast.Stmt, ok bool) {
	for !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts, !p.hadError
}

// ---- token-stream primitives ----

func (p *Parser) isAtEnd() bool { return p.current >= len(p.tokens) }

func (p *Parser) peek() (token.Token, bool) {
	if p.isAtEnd() {
		return token.Token{}, false
	}
	return p.tokens[p.current], true
}

func (p *Parser) prev() (token.Token, bool) {
	if p.current == 0 {
		return token.Token{}, false
	}
	return p.tokens[p.current-1], true
}

func (p *Parser) advance() (token.Token, bool) {
	t, ok := p.peek()
	if ok {
		p.current++
		p.currLine = t.Line
	}
	return t, ok
}

func (p *Parser) checkKind(kind token.Kind) bool {
	t, ok := p.peek()
	return ok && t.Kind == kind
}

func (p *Parser) checkKeyword(word string) bool {
	t, ok := p.peek()
	return ok && t.IsKeyword(word)
}

func (p *Parser) matchKind(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.checkKind(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) matchKeyword(words ...string) bool {
	for _, w := range words {
		if p.checkKeyword(w) {
			p.advance()
			return true
		}
	}
	return false
}

// consumeKind advances past the expected kind or records an error.
func (p *Parser) consumeKind(kind token.Kind, message string) (token.Token, bool) {
	if p.checkKind(kind) {
		return p.advance()
	}
	p.reportErr(message)
	return token.Token{}, false
}

// consumeIdentifier advances past any token tagged Identifier, reserved word
// or not — a handful of productions (e.g. a superclass name) need the raw
// identifier even though the parser never checks it against a keyword set.
func (p *Parser) consumeIdentifier(message string) (token.Token, bool) {
	return p.consumeKind(token.Identifier, message)
}

// reportErr reports at the current token, unless the current token is on a
// different line than currLine, in which case it attributes to the previous
// token instead.
func (p *Parser) reportErr(message string) {
	p.hadError = true
	errTok, ok := p.peek()
	if ok && errTok.Line != p.currLine {
		if prev, hasPrev := p.prev(); hasPrev {
			errTok, ok = prev, true
		} else {
			ok = false
		}
	}
	if !ok {
		p.diag.ParseErrorAtEnd(p.currLine, message)
		return
	}
	p.diag.ParseErrorAt(p.currLine, errTok.Lexeme, message)
}

// synchronize discards tokens until a statement boundary: either a ';' was
// just consumed, or the next token opens a new statement-starting keyword.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if prev, ok := p.prev(); ok && prev.Kind == token.Semi {
			return
		}
		if t, ok := p.peek(); ok && t.Kind == token.Identifier {
			for _, kw := range synchronizeKeywords {
				if t.Lexeme == kw {
					return
				}
			}
		}
		p.advance()
	}
}

// ---- declarations ----

// declaration -> classDecl | funDecl | varDecl | statement
func (p *Parser) declaration() ast.Stmt {
	var stmt ast.Stmt
	switch {
	case p.checkKeyword("class"):
		p.advance()
		stmt = p.classDeclaration()
	case p.checkKeyword("fun"):
		p.advance()
		stmt = p.functionDeclaration("function")
	case p.checkKeyword("var"):
		p.advance()
		stmt = p.varDeclaration()
	default:
		stmt = p.statement()
	}
	// Every production returns nil on failure (after reporting), so a nil
	// stmt is the per-declaration failure signal; hadError stays sticky for
	// the whole parse and must not be consulted here, or one bad declaration
	// would discard every declaration after it.
	if stmt == nil {
		p.synchronize()
		return nil
	}
	return stmt
}

// classDecl -> "class" IDENT ( "<" IDENT )? "{" function* "}"
// The leading "class" keyword has already been consumed by declaration.
func (p *Parser) classDeclaration() ast.Stmt {
	name, ok := p.consumeIdentifier("Expect class name.")
	if !ok {
		return nil
	}

	var superclass *ast.VarExpr
	if p.matchKind(token.Less) {
		superName, ok := p.consumeIdentifier("Expect superclass name.")
		if !ok {
			return nil
		}
		superclass = &ast.VarExpr{Name: superName}
	}

	if _, ok := p.consumeKind(token.LeftBrace, "Expect '{' before class body."); !ok {
		return nil
	}

	var methods []*ast.Method
	for !p.checkKind(token.RightBrace) && !p.isAtEnd() {
		m := p.method()
		if m == nil {
			return nil
		}
		methods = append(methods, m)
	}
	if _, ok := p.consumeKind(token.RightBrace, "Expect '}' after class body."); !ok {
		return nil
	}
	return &ast.Class{Name: name, Superclass: superclass, Methods: methods}
}

// function -> IDENT "(" parameters? ")" block
func (p *Parser) method() *ast.Method {
	name, ok := p.consumeIdentifier("Expect method name.")
	if !ok {
		return nil
	}
	params, ok := p.parameters()
	if !ok {
		return nil
	}
	body, ok := p.blockBody()
	if !ok {
		return nil
	}
	return &ast.Method{Name: name, Params: params, Body: body}
}

// funDecl -> "fun" function. The leading "fun" keyword has already been
// consumed by declaration.
func (p *Parser) functionDeclaration(kind string) ast.Stmt {
	name, ok := p.consumeIdentifier("Expect " + kind + " name.")
	if !ok {
		return nil
	}
	params, ok := p.parameters()
	if !ok {
		return nil
	}
	body, ok := p.blockBody()
	if !ok {
		return nil
	}
	return &ast.FunctionDecl{Name: name, Params: params, Body: body}
}

// parameters -> "(" ( IDENT ( "," IDENT )* )? ")"
func (p *Parser) parameters() ([]token.Token, bool) {
	if _, ok := p.consumeKind(token.LeftParen, "Expect '(' after name."); !ok {
		return nil, false
	}
	var params []token.Token
	if !p.checkKind(token.RightParen) {
		for {
			if len(params) >= maxArguments {
				p.reportErr("Can't have more than 255 parameters.")
				return nil, false
			}
			name, ok := p.consumeIdentifier("Expect parameter name.")
			if !ok {
				return nil, false
			}
			params = append(params, name)
			if !p.matchKind(token.Comma) {
				break
			}
		}
	}
	if _, ok := p.consumeKind(token.RightParen, "Expect ')' after parameters."); !ok {
		return nil, false
	}
	return params, true
}

// blockBody parses the "{" declaration* "}" that follows a function's
// parameter list, requiring the opening brace itself (unlike block, which
// is called after a bare "{" has already matched as a statement).
func (p *Parser) blockBody() ([]ast.Stmt, bool) {
	if _, ok := p.consumeKind(token.LeftBrace, "Expect '{' before body."); !ok {
		return nil, false
	}
	return p.blockStatements()
}

// varDecl -> "var" IDENT ( "=" expression )? ";". The leading "var" keyword
// has already been consumed by declaration.
func (p *Parser) varDeclaration() ast.Stmt {
	name, ok := p.consumeIdentifier("Expect variable name.")
	if !ok {
		return nil
	}
	var initializer ast.Expr
	if p.matchKind(token.Equal) {
		initializer = p.expression()
		if initializer == nil {
			return nil
		}
	}
	if _, ok := p.consumeKind(token.Semi, "Expect ';' after variable declaration."); !ok {
		return nil
	}
	return &ast.Var{Name: name, Initializer: initializer}
}

// ---- statements ----

// statement -> exprStmt | forStmt | ifStmt | printStmt
//
//	| returnStmt | whileStmt | block
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.checkKeyword("for"):
		p.advance()
		return p.forStatement()
	case p.checkKeyword("if"):
		p.advance()
		return p.ifStatement()
	case p.checkKeyword("print"):
		p.advance()
		return p.printStatement()
	case p.checkKeyword("return"):
		kw, _ := p.advance()
		return p.returnStatement(kw)
	case p.checkKeyword("while"):
		p.advance()
		return p.whileStatement()
	case p.checkKind(token.LeftBrace):
		p.advance()
		stmts, ok := p.blockStatements()
		if !ok {
			return nil
		}
		return &ast.Block{Statements: stmts}
	default:
		return p.expressionStatement()
	}
}

// block -> "{" declaration* "}". The opening "{" has already been consumed.
func (p *Parser) blockStatements() ([]ast.Stmt, bool) {
	var stmts []ast.Stmt
	for !p.checkKind(token.RightBrace) && !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	if _, ok := p.consumeKind(token.RightBrace, "Expect '}' after block."); !ok {
		return nil, false
	}
	return stmts, true
}

// forStmt desugars at parse time into a block containing the initializer
// followed by a while loop whose body is a block of {original body;
// increment}. The leading "for" keyword has already been consumed.
func (p *Parser) forStatement() ast.Stmt {
	if _, ok := p.consumeKind(token.LeftParen, "Expect '(' after 'for'."); !ok {
		return nil
	}

	var initializer ast.Stmt
	switch {
	case p.matchKind(token.Semi):
		initializer = nil
	case p.checkKeyword("var"):
		p.advance()
		initializer = p.varDeclaration()
		if initializer == nil {
			return nil
		}
	default:
		initializer = p.expressionStatement()
		if initializer == nil {
			return nil
		}
	}

	var condition ast.Expr
	if !p.checkKind(token.Semi) {
		condition = p.expression()
		if condition == nil {
			return nil
		}
	}
	if _, ok := p.consumeKind(token.Semi, "Expect ';' after loop condition."); !ok {
		return nil
	}

	var increment ast.Expr
	if !p.checkKind(token.RightParen) {
		increment = p.expression()
		if increment == nil {
			return nil
		}
	}
	if _, ok := p.consumeKind(token.RightParen, "Expect ')' after for clauses."); !ok {
		return nil
	}

	body := p.statement()
	if body == nil {
		return nil
	}

	if increment != nil {
		body = &ast.Block{Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expression: increment}}}
	}
	if condition == nil {
		condition = &ast.Literal{Value: value.True, TokenLine: p.currLine}
	}
	body = &ast.While{Condition: condition, Body: body}
	if initializer != nil {
		body = &ast.Block{Statements: []ast.Stmt{initializer, body}}
	}
	return body
}

// ifStmt -> "if" "(" expression ")" statement ( "else" statement )?
// The leading "if" keyword has already been consumed.
func (p *Parser) ifStatement() ast.Stmt {
	if _, ok := p.consumeKind(token.LeftParen, "Expect '(' after 'if'."); !ok {
		return nil
	}
	cond := p.expression()
	if cond == nil {
		return nil
	}
	if _, ok := p.consumeKind(token.RightParen, "Expect ')' after if condition."); !ok {
		return nil
	}
	thenBranch := p.statement()
	if thenBranch == nil {
		return nil
	}
	var elseBranch ast.Stmt
	if p.checkKeyword("else") {
		p.advance()
		elseBranch = p.statement()
		if elseBranch == nil {
			return nil
		}
	}
	return &ast.If{Condition: cond, Then: thenBranch, Else: elseBranch}
}

// printStmt -> "print" expression ";". The leading "print" keyword has
// already been consumed.
func (p *Parser) printStatement() ast.Stmt {
	expr := p.expression()
	if expr == nil {
		return nil
	}
	if _, ok := p.consumeKind(token.Semi, "Expect ';' after value."); !ok {
		return nil
	}
	return &ast.Print{Expression: expr}
}

// returnStmt -> "return" expression? ";". keyword is the already-consumed
// "return" token.
func (p *Parser) returnStatement(keyword token.Token) ast.Stmt {
	var value ast.Expr
	if !p.checkKind(token.Semi) {
		value = p.expression()
		if value == nil {
			return nil
		}
	}
	if _, ok := p.consumeKind(token.Semi, "Expect ';' after return value."); !ok {
		return nil
	}
	return &ast.Return{Keyword: keyword, Value: value}
}

// whileStmt -> "while" "(" expression ")" statement. The leading "while"
// keyword has already been consumed.
func (p *Parser) whileStatement() ast.Stmt {
	if _, ok := p.consumeKind(token.LeftParen, "Expect '(' after 'while'."); !ok {
		return nil
	}
	cond := p.expression()
	if cond == nil {
		return nil
	}
	if _, ok := p.consumeKind(token.RightParen, "Expect ')' after condition."); !ok {
		return nil
	}
	body := p.statement()
	if body == nil {
		return nil
	}
	return &ast.While{Condition: cond, Body: body}
}

// exprStmt -> expression ";"
func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	if expr == nil {
		return nil
	}
	if _, ok := p.consumeKind(token.Semi, "Expect ';' after expression."); !ok {
		return nil
	}
	return &ast.ExpressionStmt{Expression: expr}
}
