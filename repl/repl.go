// Package repl implements golox's interactive Read-Eval-Print Loop: a
// readline-driven loop with history and colored output, running each line
// through the same lex-filter-parse-interpret pipeline the CLI uses. Lines
// are evaluated in "evaluate" mode, so a bare expression statement echoes
// its value the way you'd expect at a prompt.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/brightlex/golox/diagnostics"
	"github.com/brightlex/golox/eval"
	"github.com/brightlex/golox/lexer"
	"github.com/brightlex/golox/parser"
	"github.com/brightlex/golox/token"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the static banner text shown at startup.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	Prompt  string
}

// New creates a Repl with the given banner fields.
func New(banner, version, author, line, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to golox!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL main loop, reading lines until '.exit' or EOF.
func (r *Repl) Start(writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	diag := diagnostics.New(writer)
	in := eval.New(writer, diag)
	in.ReplMode = true

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good bye!\n"))
			return
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good bye!\n"))
			return
		}
		rl.SaveHistory(line)

		// Errors are local to one line: the error flags reset here, between
		// top-level statements, rather than inside eval itself.
		diag.Reset()
		r.evalLine(writer, diag, in, line)
	}
}

func (r *Repl) evalLine(writer io.Writer, diag *diagnostics.Reporter, in *eval.Interpreter, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[unexpected error] %v\n", recovered)
		}
	}()

	tags := lexer.Tokenize(line)
	tokens := token.Filter(token.Reconstruct(line, tags))

	p := parser.New(tokens, diag)
	stmts, ok := p.Parse()
	if !ok {
		return
	}
	in.Interpret(stmts)
}
