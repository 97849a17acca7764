package eval

import (
	"fmt"

	"github.com/brightlex/golox/ast"
	"github.com/brightlex/golox/environment"
	"github.com/brightlex/golox/token"
	"github.com/brightlex/golox/value"
)

// Callable is anything a Call expression can invoke: a user-defined
// function, a bound method, or a class (invoking a class constructs an
// instance). Functions and classes share this interface so the Call site
// needs no dispatch of its own.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []value.Value) value.Value
	String() string
}

// Function is a user-defined function or method: its parameter list, body,
// and the environment captured at definition time (the closure). Closure is
// a live *environment.Environment pointer, not a snapshot — see
// environment's package doc for why that is load-bearing for correctness,
// not just an optimization.
type Function struct {
	Name          string
	Params        []token.Token
	Body          []ast.Stmt
	Closure       *environment.Environment
	IsInitializer bool
}

// Arity is the function's declared parameter count.
func (f *Function) Arity() int { return len(f.Params) }

// Bind returns a copy of f whose closure is a new frame, enclosing f's
// original closure, with `this` bound to instance. Called once per method
// lookup on an instance (see Instance.Get), so every bound method gets its
// own `this` frame without mutating the class's shared method table.
func (f *Function) Bind(instance *Instance) *Function {
	env := environment.New(f.Closure)
	env.Define("this", value.Instance(instance))
	return &Function{Name: f.Name, Params: f.Params, Body: f.Body, Closure: env, IsInitializer: f.IsInitializer}
}

// Call pushes a new frame enclosed by the closure, binds arguments to
// parameters, and executes the body. A `return` inside the body unwinds via
// returnSignal, caught here; falling off the end returns Nil, except for an
// initializer, which always returns the bound `this` regardless of what (if
// anything) it returns.
func (f *Function) Call(in *Interpreter, args []value.Value) (result value.Value) {
	callEnv := environment.New(f.Closure)
	for i, param := range f.Params {
		callEnv.Define(param.Lexeme, args[i])
	}

	result = value.Nil
	func() {
		defer func() {
			if r := recover(); r != nil {
				if ret, ok := r.(returnSignal); ok {
					result = ret.Value
					return
				}
				panic(r)
			}
		}()
		in.executeBlock(f.Body, callEnv)
	}()

	if f.IsInitializer {
		this, _ := f.Closure.Get("this")
		return this
	}
	return result
}

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.Name) }

// Class is a user-declared class: its name, optional superclass (single
// inheritance), and its own method table. Method lookup walks the
// superclass chain, so a subclass need not redeclare inherited methods; a
// method present in both resolves to the subclass's, most-derived wins.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

// FindMethod looks up name on the class itself, then its superclass chain.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity is the constructor's (the "init" method's) arity, or 0 if the class
// declares none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance and, if the class (or an ancestor)
// declares "init", runs it bound to that instance before returning it.
func (c *Class) Call(in *Interpreter, args []value.Value) value.Value {
	instance := &Instance{Class: c, Fields: make(map[string]value.Value)}
	if init, ok := c.FindMethod("init"); ok {
		init.Bind(instance).Call(in, args)
	}
	return value.Instance(instance)
}

func (c *Class) String() string { return c.Name }

// Instance is a single object created by calling a Class.
type Instance struct {
	Class  *Class
	Fields map[string]value.Value
}

// Get reads a field first, then a bound method, returning ok=false if
// neither exists (the caller reports "Undefined property").
func (i *Instance) Get(name token.Token) (value.Value, bool) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name.Lexeme); ok {
		return value.Callable(m.Bind(i)), true
	}
	return value.Value{}, false
}

// Set writes a field, creating it if it didn't already exist. Lox instances
// are open: any field name can be assigned at any time.
func (i *Instance) Set(name token.Token, v value.Value) {
	i.Fields[name.Lexeme] = v
}

func (i *Instance) String() string { return i.Class.Name + " instance" }
