// Package printer pretty-prints a parsed statement list for the `parse`
// CLI command: one parenthesized Lisp-style line per top-level statement,
// in the tradition of Crafting Interpreters' AstPrinter.
package printer

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/repr"

	"github.com/brightlex/golox/ast"
	"github.com/brightlex/golox/value"
)

// Print renders stmts as one Lisp-style line per top-level statement.
func Print(stmts []ast.Stmt) string {
	p := &printingVisitor{}
	var out bytes.Buffer
	for _, s := range stmts {
		out.WriteString(p.renderStmt(s))
		out.WriteByte('\n')
	}
	return out.String()
}

// Dump renders a statement list's full Go structure via repr, for
// interactive debugging of the parser's output; Print is what the `parse`
// command actually emits.
func Dump(stmts []ast.Stmt) string {
	return repr.String(stmts, repr.Indent("  "))
}

// printingVisitor implements both ast.StmtVisitor and ast.ExprVisitor.
// Statement renderings accumulate through Buf; expression visits return
// their rendering directly, so expression trees compose inline inside
// their enclosing statement's parentheses.
type printingVisitor struct {
	Buf bytes.Buffer
}

func (p *printingVisitor) renderStmt(s ast.Stmt) string {
	s.AcceptStmt(p)
	out := p.Buf.String()
	p.Buf.Reset()
	return out
}

func (p *printingVisitor) renderExpr(e ast.Expr) string {
	return e.AcceptExpr(p).(string)
}

func parenthesize(name string, parts ...string) string {
	var b bytes.Buffer
	b.WriteByte('(')
	b.WriteString(name)
	for _, part := range parts {
		b.WriteByte(' ')
		b.WriteString(part)
	}
	b.WriteByte(')')
	return b.String()
}

// ---- statements ----

func (p *printingVisitor) VisitBlock(s *ast.Block) {
	parts := make([]string, len(s.Statements))
	for i, inner := range s.Statements {
		parts[i] = p.renderStmt(inner)
	}
	p.Buf.WriteString(parenthesize("block", parts...))
}

func (p *printingVisitor) VisitClass(s *ast.Class) {
	parts := []string{s.Name.Lexeme}
	if s.Superclass != nil {
		parts = append(parts, "<"+s.Superclass.Name.Lexeme)
	}
	for _, m := range s.Methods {
		body := make([]string, len(m.Body))
		for i, st := range m.Body {
			body[i] = p.renderStmt(st)
		}
		parts = append(parts, parenthesize("method "+m.Name.Lexeme, body...))
	}
	p.Buf.WriteString(parenthesize("class", parts...))
}

func (p *printingVisitor) VisitExpressionStmt(s *ast.ExpressionStmt) {
	p.Buf.WriteString(parenthesize("expr", p.renderExpr(s.Expression)))
}

func (p *printingVisitor) VisitFunctionDecl(s *ast.FunctionDecl) {
	names := make([]string, len(s.Params))
	for i, param := range s.Params {
		names[i] = param.Lexeme
	}
	parts := []string{s.Name.Lexeme, parenthesize("params", names...)}
	for _, st := range s.Body {
		parts = append(parts, p.renderStmt(st))
	}
	p.Buf.WriteString(parenthesize("fun", parts...))
}

func (p *printingVisitor) VisitIf(s *ast.If) {
	parts := []string{p.renderExpr(s.Condition), p.renderStmt(s.Then)}
	if s.Else != nil {
		parts = append(parts, p.renderStmt(s.Else))
	}
	p.Buf.WriteString(parenthesize("if", parts...))
}

func (p *printingVisitor) VisitPrint(s *ast.Print) {
	p.Buf.WriteString(parenthesize("print", p.renderExpr(s.Expression)))
}

func (p *printingVisitor) VisitReturn(s *ast.Return) {
	if s.Value == nil {
		p.Buf.WriteString("(return)")
		return
	}
	p.Buf.WriteString(parenthesize("return", p.renderExpr(s.Value)))
}

func (p *printingVisitor) VisitVar(s *ast.Var) {
	if s.Initializer == nil {
		p.Buf.WriteString(parenthesize("var", s.Name.Lexeme))
		return
	}
	p.Buf.WriteString(parenthesize("var", s.Name.Lexeme, p.renderExpr(s.Initializer)))
}

func (p *printingVisitor) VisitWhile(s *ast.While) {
	p.Buf.WriteString(parenthesize("while", p.renderExpr(s.Condition), p.renderStmt(s.Body)))
}

// ---- expressions ----

func (p *printingVisitor) VisitAssign(e *ast.Assign) interface{} {
	return parenthesize("=", e.Name.Lexeme, p.renderExpr(e.Value))
}

func (p *printingVisitor) VisitBinary(e *ast.Binary) interface{} {
	return parenthesize(e.Operator.Lexeme, p.renderExpr(e.Left), p.renderExpr(e.Right))
}

func (p *printingVisitor) VisitLogical(e *ast.Logical) interface{} {
	return parenthesize(e.Operator.Lexeme, p.renderExpr(e.Left), p.renderExpr(e.Right))
}

func (p *printingVisitor) VisitUnary(e *ast.Unary) interface{} {
	return parenthesize(e.Operator.Lexeme, p.renderExpr(e.Right))
}

func (p *printingVisitor) VisitCall(e *ast.Call) interface{} {
	parts := []string{p.renderExpr(e.Callee)}
	for _, a := range e.Arguments {
		parts = append(parts, p.renderExpr(a))
	}
	return parenthesize("call", parts...)
}

func (p *printingVisitor) VisitGet(e *ast.Get) interface{} {
	return parenthesize(".", p.renderExpr(e.Object), e.Name.Lexeme)
}

func (p *printingVisitor) VisitSet(e *ast.Set) interface{} {
	return parenthesize("=", parenthesize(".", p.renderExpr(e.Object), e.Name.Lexeme), p.renderExpr(e.Value))
}

func (p *printingVisitor) VisitSuper(e *ast.Super) interface{} {
	return parenthesize("super", e.Method.Lexeme)
}

func (p *printingVisitor) VisitThis(e *ast.This) interface{} {
	return "this"
}

func (p *printingVisitor) VisitGrouping(e *ast.Grouping) interface{} {
	return parenthesize("group", p.renderExpr(e.Expression))
}

func (p *printingVisitor) VisitLiteral(e *ast.Literal) interface{} {
	v, ok := e.Value.(value.Value)
	if !ok {
		return fmt.Sprintf("%v", e.Value)
	}
	return value.Print(v)
}

func (p *printingVisitor) VisitVarExpr(e *ast.VarExpr) interface{} {
	return e.Name.Lexeme
}
