package eval

import "github.com/brightlex/golox/value"

// runtimeError is panicked by any operator, arithmetic, or undefined-variable
// failure and recovered at the interpreter's top-level Interpret call. Only
// the interpreter's own unwind signals are recovered there; anything else
// re-panics, since it indicates a real bug rather than a modeled Lox-level
// failure.
type runtimeError struct {
	Line    int
	Message string
}

func (e *runtimeError) Error() string { return e.Message }

func throwRuntime(line int, message string) {
	panic(&runtimeError{Line: line, Message: message})
}

// returnSignal is panicked by a `return` statement and recovered by the
// nearest enclosing function Call, giving `return` its non-local unwind
// without threading a control enum through every statement visitor.
type returnSignal struct {
	Value value.Value
}
