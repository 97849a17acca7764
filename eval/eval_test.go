package eval_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightlex/golox/diagnostics"
	"github.com/brightlex/golox/eval"
	"github.com/brightlex/golox/lexer"
	"github.com/brightlex/golox/parser"
	"github.com/brightlex/golox/token"
)

// run lexes, parses, and interprets src, returning everything printed to
// stdout and whatever the diagnostics.Reporter collected to its own buffer.
func run(t *testing.T, src string) (stdout, stderr string) {
	t.Helper()
	tags := lexer.Tokenize(src)
	tokens := token.Filter(token.Reconstruct(src, tags))

	var errBuf bytes.Buffer
	diag := diagnostics.New(&errBuf)

	p := parser.New(tokens, diag)
	stmts, ok := p.Parse()
	require.True(t, ok, "parse errors: %s", errBuf.String())

	var outBuf bytes.Buffer
	in := eval.New(&outBuf, diag)
	in.Interpret(stmts)
	return outBuf.String(), errBuf.String()
}

func TestArithmeticPrecedence(t *testing.T) {
	out, errs := run(t, `print 1 + 2 * 3;`)
	assert.Empty(t, errs)
	assert.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, _ := run(t, `print "foo" + "bar";`)
	assert.Equal(t, "foobar\n", out)
}

func TestVariablesAndScoping(t *testing.T) {
	out, _ := run(t, `
		var a = "global";
		{
			var a = "local";
			print a;
		}
		print a;
	`)
	assert.Equal(t, "local\nglobal\n", out)
}

func TestClosureCapturesCounter(t *testing.T) {
	out, _ := run(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				print i;
			}
			return count;
		}
		var counter = makeCounter();
		counter();
		counter();
	`)
	assert.Equal(t, "1\n2\n", out)
}

func TestRecursiveFibonacci(t *testing.T) {
	out, _ := run(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	assert.Equal(t, "55\n", out)
}

func TestClassesAndInheritance(t *testing.T) {
	out, _ := run(t, `
		class Animal {
			speak() {
				print "...";
			}
		}
		class Dog < Animal {
			speak() {
				print "Woof";
			}
			parentSpeak() {
				super.speak();
			}
		}
		var d = Dog();
		d.speak();
		d.parentSpeak();
	`)
	assert.Equal(t, "Woof\n...\n", out)
}

func TestInitializerRunsOnConstruction(t *testing.T) {
	out, _ := run(t, `
		class Point {
			init(x, y) {
				this.x = x;
				this.y = y;
			}
			sum() {
				return this.x + this.y;
			}
		}
		var p = Point(3, 4);
		print p.sum();
	`)
	assert.Equal(t, "7\n", out)
}

func TestForLoopDesugaring(t *testing.T) {
	out, _ := run(t, `
		var total = 0;
		for (var i = 0; i < 5; i = i + 1) {
			total = total + i;
		}
		print total;
	`)
	assert.Equal(t, "10\n", out)
}

func TestRuntimeErrorOnTypeMismatch(t *testing.T) {
	_, errs := run(t, `print "1" + 2;`)
	assert.True(t, strings.Contains(errs, "Operands must be numbers."))
	assert.True(t, strings.Contains(errs, "[line 1]"))
}

func TestRuntimeErrorOnUndefinedVariable(t *testing.T) {
	_, errs := run(t, `print nope;`)
	assert.True(t, strings.Contains(errs, "Undefined variable: 'nope'."))
}

func TestNaNIsNotEqualToItself(t *testing.T) {
	out, _ := run(t, `
		var n = 0/0;
		print n == n;
	`)
	assert.Equal(t, "false\n", out)
}

func TestWhileLoop(t *testing.T) {
	out, _ := run(t, `
		var i = 0;
		while (i < 3) {
			print i;
			i = i + 1;
		}
	`)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestLogicalOperatorsShortCircuitAndReturnOperand(t *testing.T) {
	out, _ := run(t, `
		print nil or "fallback";
		print "first" and "second";
	`)
	assert.Equal(t, "fallback\nsecond\n", out)
}
