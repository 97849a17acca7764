// Command golox is the CLI entry point: tokenize/parse/run/evaluate a Lox
// source file, or fall back to an interactive REPL with no arguments.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/juju/loggo"
	"github.com/pborman/getopt"

	"github.com/brightlex/golox/diagnostics"
	"github.com/brightlex/golox/eval"
	"github.com/brightlex/golox/file"
	"github.com/brightlex/golox/lexer"
	"github.com/brightlex/golox/parser"
	"github.com/brightlex/golox/printer"
	"github.com/brightlex/golox/repl"
	"github.com/brightlex/golox/token"
	"github.com/brightlex/golox/value"
)

const (
	exitOK      = 0
	exitUsage   = 64
	exitParse   = 65
	exitRuntime = 70
)

var log = loggo.GetLogger("golox")

var (
	version = "v1.0.0"
	banner  = `
   ____  ___  _     ___  __  __
  / ___|/ _ \| |   / _ \ \ \/ /
 | |  _| | | | |  | | | | \  /
 | |_| | |_| | |__| |_| | /  \
  \____|\___/|_____\___/ /_/\_\
`
)

var (
	redColor   = color.New(color.FgRed)
	cyanColor  = color.New(color.FgCyan)
	helpFlag   = getopt.BoolLong("help", 'h', "show usage")
	verFlag    = getopt.BoolLong("version", 'v', "show version")
	verboseLog = getopt.BoolLong("verbose", 'V', "enable debug logging")
)

func main() {
	getopt.Parse()

	if *helpFlag {
		usage(os.Stdout)
		os.Exit(exitOK)
	}
	if *verFlag {
		cyanColor.Printf("golox %s\n", version)
		os.Exit(exitOK)
	}
	if *verboseLog {
		loggo.ConfigureLoggers("golox=DEBUG")
	}

	args := getopt.Args()
	if len(args) == 0 {
		r := repl.New(banner, version, "golox", "----------------------------------------", "golox> ")
		r.Start(os.Stdout)
		return
	}
	if len(args) != 2 {
		usage(os.Stderr)
		os.Exit(exitUsage)
	}

	command, path := args[0], args[1]
	src, err := file.Load(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(exitUsage)
	}

	switch command {
	case "tokenize":
		os.Exit(runTokenize(src))
	case "parse":
		os.Exit(runParse(src))
	case "run":
		os.Exit(runInterpret(src, false))
	case "evaluate":
		os.Exit(runInterpret(src, true))
	default:
		redColor.Fprintf(os.Stderr, "unknown command %q\n", command)
		usage(os.Stderr)
		os.Exit(exitUsage)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: golox [--verbose] [tokenize|parse|run|evaluate] <file>")
	fmt.Fprintln(w, "       golox                 start the REPL")
}

// runTokenize implements `golox tokenize <file>`.
func runTokenize(src string) int {
	log.Debugf("tokenizing %d bytes", len(src))
	tags := lexer.Tokenize(src)
	tokens := token.Reconstruct(src, tags)

	diag := diagnostics.New(os.Stderr)
	for _, t := range tokens {
		switch {
		case t.Kind.IsTrivia():
			continue
		case t.Kind.IsError():
			diag.LexError(t.Line, lexErrorMessage(t))
		case t.Kind == token.Identifier:
			if token.IsReserved(t.Lexeme) {
				fmt.Printf("%s %s null\n", upperKeyword(t.Lexeme), t.Lexeme)
			} else {
				fmt.Printf("IDENTIFIER %s null\n", t.Lexeme)
			}
		case t.Kind == token.Number:
			fmt.Printf("NUMBER %s %s\n", t.Lexeme, numberLiteralForTokenize(t.Lexeme))
		case t.Kind == token.String:
			fmt.Printf("STRING \"%s\" %s\n", stringInnerForTokenize(t.Lexeme), stringInnerForTokenize(t.Lexeme))
		default:
			fmt.Println(token.DebugPunctuationName(t.Kind))
		}
	}
	fmt.Println(token.DebugPunctuationName(token.EOF))

	if diag.HadError {
		return exitParse
	}
	return exitOK
}

// runParse implements `golox parse <file>`.
func runParse(src string) int {
	tags := lexer.Tokenize(src)
	tokens := token.Filter(token.Reconstruct(src, tags))

	diag := diagnostics.New(os.Stderr)
	p := parser.New(tokens, diag)
	stmts, ok := p.Parse()
	if !ok {
		return exitParse
	}
	fmt.Print(printer.Print(stmts))
	return exitOK
}

// runInterpret implements `golox run <file>` and `golox evaluate <file>`.
// replMode enables the `evaluate` command's bare-expression echoing and the
// appended-trailing-semicolon leniency.
func runInterpret(src string, replMode bool) int {
	if replMode {
		src = ensureTerminated(src)
	}

	tags := lexer.Tokenize(src)
	tokens := token.Filter(token.Reconstruct(src, tags))

	diag := diagnostics.New(os.Stderr)
	p := parser.New(tokens, diag)
	stmts, ok := p.Parse()
	if !ok {
		return exitParse
	}

	in := eval.New(os.Stdout, diag)
	in.ReplMode = replMode
	in.Interpret(stmts)
	if diag.HadRuntime {
		return exitRuntime
	}
	return exitOK
}

// ensureTerminated appends a trailing ';' when src's last non-whitespace
// byte is neither ';' nor '}', per the `evaluate` command's leniency rule.
func ensureTerminated(src string) string {
	i := len(src) - 1
	for i >= 0 && isSpaceByte(src[i]) {
		i--
	}
	if i < 0 {
		return src
	}
	if src[i] == ';' || src[i] == '}' {
		return src
	}
	return src[:i+1] + ";"
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

func upperKeyword(word string) string {
	out := make([]byte, len(word))
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func lexErrorMessage(t token.Token) string {
	switch t.Kind {
	case token.ErrUnterminatedString:
		return "Unterminated string."
	case token.ErrUnknownPrefix:
		return "Unknown prefix."
	case token.ErrInvalidIdent:
		return "Invalid identifier."
	default:
		return "Unexpected character: " + string(t.Ch)
	}
}

// numberLiteralForTokenize renders a NUMBER token's canonical decimal form
// for the `tokenize` debug format, underscores (digit separators) stripped
// first, reusing value.Print's integral-".0" suffix rule.
func numberLiteralForTokenize(lexeme string) string {
	clean := make([]byte, 0, len(lexeme))
	for i := 0; i < len(lexeme); i++ {
		if lexeme[i] != '_' {
			clean = append(clean, lexeme[i])
		}
	}
	n, err := strconv.ParseFloat(string(clean), 64)
	if err != nil {
		return "0.0"
	}
	return value.Print(value.Number(n))
}

func stringInnerForTokenize(lexeme string) string {
	if len(lexeme) < 2 {
		return ""
	}
	return lexeme[1 : len(lexeme)-1]
}
