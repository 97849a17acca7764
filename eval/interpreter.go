// Package eval implements golox's tree-walking evaluator: given a parsed
// statement list, it executes it directly against a chain of
// environment.Environment frames, without lowering to any intermediate
// bytecode.
package eval

import (
	"fmt"
	"io"
	"strconv"

	"github.com/brightlex/golox/ast"
	"github.com/brightlex/golox/diagnostics"
	"github.com/brightlex/golox/environment"
	"github.com/brightlex/golox/token"
	"github.com/brightlex/golox/value"
)

// Interpreter walks a statement list against a live environment chain.
// Globals is the outermost frame; env is whichever frame is currently in
// scope, swapped by executeBlock and restored on every exit path (normal
// return, a `return` statement unwinding, or a runtime error panicking).
type Interpreter struct {
	Globals *environment.Environment
	env     *environment.Environment
	diag    *diagnostics.Reporter
	out     io.Writer

	// ReplMode enables the `evaluate` CLI command's behavior: a bare
	// expression-statement's value prints automatically, the way a REPL
	// echoes whatever you typed.
	ReplMode bool
}

// New creates an Interpreter whose `print` statements write to out and
// whose errors are reported through diag.
func New(out io.Writer, diag *diagnostics.Reporter) *Interpreter {
	globals := environment.New(nil)
	return &Interpreter{Globals: globals, env: globals, diag: diag, out: out}
}

// Interpret executes stmts against the interpreter's current environment,
// reporting at most one runtime error (the first one raised) through diag
// and stopping immediately. A returnSignal escaping every enclosing call
// (a bare top-level `return`) is swallowed silently, since the grammar has
// no defined meaning for it outside a function body.
func (in *Interpreter) Interpret(stmts []ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case *runtimeError:
				in.diag.RuntimeError(e.Line, e.Message)
			case returnSignal:
				return
			default:
				panic(r)
			}
		}
	}()
	for _, s := range stmts {
		in.execute(s)
	}
}

func (in *Interpreter) execute(s ast.Stmt) { s.AcceptStmt(in) }

func (in *Interpreter) eval(e ast.Expr) value.Value {
	return e.AcceptExpr(in).(value.Value)
}

// executeBlock runs stmts with env as the current frame (callers pass a
// fresh frame), restoring the interpreter's previous frame before returning
// down any exit path.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *environment.Environment) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()
	for _, s := range stmts {
		in.execute(s)
	}
}

// ---- statements ----

func (in *Interpreter) VisitBlock(s *ast.Block) {
	in.executeBlock(s.Statements, environment.New(in.env))
}

func (in *Interpreter) VisitClass(s *ast.Class) {
	var superclass *Class
	if s.Superclass != nil {
		v, ok := in.env.Get(s.Superclass.Name.Lexeme)
		if !ok {
			throwRuntime(s.Superclass.Name.Line, "Undefined variable: '"+s.Superclass.Name.Lexeme+"'.")
		}
		sc, ok := v.Obj.(*Class)
		if v.Kind != value.KindCallable || !ok {
			throwRuntime(s.Superclass.Name.Line, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.env.Define(s.Name.Lexeme, value.Nil)

	classEnv := in.env
	if superclass != nil {
		classEnv = environment.New(in.env)
		classEnv.Define("super", value.Callable(superclass))
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{
			Name:          m.Name.Lexeme,
			Params:        m.Params,
			Body:          m.Body,
			Closure:       classEnv,
			IsInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	in.env.Assign(s.Name.Lexeme, value.Callable(class))
}

func (in *Interpreter) VisitExpressionStmt(s *ast.ExpressionStmt) {
	v := in.eval(s.Expression)
	if in.ReplMode {
		fmt.Fprintln(in.out, display(v))
	}
}

// display renders v for `print` and for the REPL echo of an expression
// statement. Numbers print in plain decimal form with no ".0" added to
// integral values ("7", not "7.0"); every other value prints as value.Print
// renders it.
func display(v value.Value) string {
	if v.Kind == value.KindNumber {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return value.Print(v)
}

func (in *Interpreter) VisitFunctionDecl(s *ast.FunctionDecl) {
	fn := &Function{Name: s.Name.Lexeme, Params: s.Params, Body: s.Body, Closure: in.env}
	in.env.Define(s.Name.Lexeme, value.Callable(fn))
}

func (in *Interpreter) VisitIf(s *ast.If) {
	if in.eval(s.Condition).IsTruthy() {
		in.execute(s.Then)
	} else if s.Else != nil {
		in.execute(s.Else)
	}
}

func (in *Interpreter) VisitPrint(s *ast.Print) {
	v := in.eval(s.Expression)
	fmt.Fprintln(in.out, display(v))
}

func (in *Interpreter) VisitReturn(s *ast.Return) {
	v := value.Nil
	if s.Value != nil {
		v = in.eval(s.Value)
	}
	panic(returnSignal{Value: v})
}

func (in *Interpreter) VisitVar(s *ast.Var) {
	v := value.Nil
	if s.Initializer != nil {
		v = in.eval(s.Initializer)
	}
	in.env.Define(s.Name.Lexeme, v)
}

func (in *Interpreter) VisitWhile(s *ast.While) {
	for in.eval(s.Condition).IsTruthy() {
		in.execute(s.Body)
	}
}

// ---- expressions ----

func (in *Interpreter) VisitAssign(e *ast.Assign) interface{} {
	v := in.eval(e.Value)
	if !in.env.Assign(e.Name.Lexeme, v) {
		throwRuntime(e.Name.Line, "Undefined variable: '"+e.Name.Lexeme+"'.")
	}
	return v
}

func (in *Interpreter) VisitBinary(e *ast.Binary) interface{} {
	left := in.eval(e.Left)
	right := in.eval(e.Right)

	var result value.Value
	var opErr *value.OpError
	switch e.Operator.Kind {
	case token.Plus:
		result, opErr = value.Add(left, right)
	case token.Minus:
		result, opErr = value.Sub(left, right)
	case token.Star:
		result, opErr = value.Mul(left, right)
	case token.Slash:
		result, opErr = value.Div(left, right)
	case token.Greater:
		result, opErr = value.Greater(left, right)
	case token.GreaterEqual:
		result, opErr = value.GreaterEqual(left, right)
	case token.Less:
		result, opErr = value.Less(left, right)
	case token.LessEqual:
		result, opErr = value.LessEqual(left, right)
	case token.EqualEqual:
		result = value.EqualValue(left, right)
	case token.BangEqual:
		result = value.NotEqualValue(left, right)
	default:
		throwRuntime(e.Operator.Line, "Unknown operator '"+e.Operator.Lexeme+"'.")
	}
	if opErr != nil {
		throwRuntime(e.Operator.Line, opErr.Message)
	}
	return result
}

func (in *Interpreter) VisitLogical(e *ast.Logical) interface{} {
	left := in.eval(e.Left)
	if e.Operator.IsKeyword("or") {
		if left.IsTruthy() {
			return left
		}
	} else {
		if !left.IsTruthy() {
			return left
		}
	}
	return in.eval(e.Right)
}

func (in *Interpreter) VisitUnary(e *ast.Unary) interface{} {
	right := in.eval(e.Right)
	switch e.Operator.Kind {
	case token.Minus:
		v, err := value.Negate(right)
		if err != nil {
			throwRuntime(e.Operator.Line, err.Message)
		}
		return v
	case token.Bang:
		return value.Not(right)
	default:
		throwRuntime(e.Operator.Line, "Unknown operator '"+e.Operator.Lexeme+"'.")
		return value.Nil
	}
}

func (in *Interpreter) VisitCall(e *ast.Call) interface{} {
	callee := in.eval(e.Callee)
	args := make([]value.Value, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = in.eval(a)
	}

	if callee.Kind != value.KindCallable {
		throwRuntime(e.Paren.Line, "Can only call functions and classes.")
	}
	fn, ok := callee.Obj.(Callable)
	if !ok {
		throwRuntime(e.Paren.Line, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		throwRuntime(e.Paren.Line, fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)))
	}
	return fn.Call(in, args)
}

func (in *Interpreter) VisitGet(e *ast.Get) interface{} {
	obj := in.eval(e.Object)
	if obj.Kind != value.KindInstance {
		throwRuntime(e.Name.Line, "Only instances have properties.")
	}
	inst := obj.Obj.(*Instance)
	v, ok := inst.Get(e.Name)
	if !ok {
		throwRuntime(e.Name.Line, "Undefined property: '"+e.Name.Lexeme+"'.")
	}
	return v
}

func (in *Interpreter) VisitSet(e *ast.Set) interface{} {
	obj := in.eval(e.Object)
	if obj.Kind != value.KindInstance {
		throwRuntime(e.Name.Line, "Only instances have fields.")
	}
	inst := obj.Obj.(*Instance)
	v := in.eval(e.Value)
	inst.Set(e.Name, v)
	return v
}

func (in *Interpreter) VisitSuper(e *ast.Super) interface{} {
	superVal, ok := in.env.Get("super")
	if !ok {
		throwRuntime(e.Keyword.Line, "Undefined variable: 'super'.")
	}
	superclass := superVal.Obj.(*Class)

	thisVal, ok := in.env.Get("this")
	if !ok {
		throwRuntime(e.Keyword.Line, "Undefined variable: 'this'.")
	}
	instance := thisVal.Obj.(*Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		throwRuntime(e.Method.Line, "Undefined property: '"+e.Method.Lexeme+"'.")
	}
	return value.Callable(method.Bind(instance))
}

func (in *Interpreter) VisitThis(e *ast.This) interface{} {
	v, ok := in.env.Get("this")
	if !ok {
		throwRuntime(e.Keyword.Line, "Undefined variable: 'this'.")
	}
	return v
}

func (in *Interpreter) VisitGrouping(e *ast.Grouping) interface{} {
	return in.eval(e.Expression)
}

func (in *Interpreter) VisitLiteral(e *ast.Literal) interface{} {
	return e.Value.(value.Value)
}

func (in *Interpreter) VisitVarExpr(e *ast.VarExpr) interface{} {
	v, ok := in.env.Get(e.Name.Lexeme)
	if !ok {
		throwRuntime(e.Name.Line, "Undefined variable: '"+e.Name.Lexeme+"'.")
	}
	return v
}
