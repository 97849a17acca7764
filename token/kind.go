// Package token defines the tagged and named token types produced by the
// lexer and consumed by the parser.
//
// The split between TagToken and Token mirrors a two-stage design borrowed
// from rustc_lexer: the lexer itself never touches the source slice, it only
// records a token's kind, its length in bytes, and the line it started on.
// A second pass (Reconstruct, see token.go) recovers the exact source text by
// walking a running byte offset. This keeps the lexer allocation-free and
// keeps "what token is this" separate from "what bytes back it".
package token

import "fmt"

// Kind identifies the syntactic class of a token.
type Kind int

const (
	// Semi is ';'.
	Semi Kind = iota
	// Comma is ','.
	Comma
	// Dot is '.'.
	Dot
	// LeftParen is '('.
	LeftParen
	// RightParen is ')'.
	RightParen
	// LeftBrace is '{'.
	LeftBrace
	// RightBrace is '}'.
	RightBrace
	// LeftBracket is '['.
	LeftBracket
	// RightBracket is ']'.
	RightBracket

	// Minus is '-'.
	Minus
	// Plus is '+'.
	Plus
	// Star is '*'.
	Star
	// Slash is '/'.
	Slash

	// Equal is '='.
	Equal
	// EqualEqual is '=='.
	EqualEqual
	// Bang is '!'.
	Bang
	// BangEqual is '!='.
	BangEqual
	// Less is '<'.
	Less
	// LessEqual is '<='.
	LessEqual
	// Greater is '>'.
	Greater
	// GreaterEqual is '>='.
	GreaterEqual

	// LineComment is a '//' comment up to (not including) the newline.
	LineComment
	// Whitespace is any run of Unicode whitespace other than a newline.
	Whitespace
	// NewLine is a single line terminator.
	NewLine

	// Identifier covers both user identifiers and reserved words; the
	// parser decides which reserved word, if any, a given lexeme names.
	Identifier

	// Number is a decimal literal, with an optional fractional part.
	Number
	// String is a double-quoted string literal.
	String

	// ErrInvalidIdent marks an identifier containing emoji, which Lox
	// identifiers may not contain.
	ErrInvalidIdent
	// ErrUnexpectedCharacter marks a byte that starts no valid token.
	ErrUnexpectedCharacter
	// ErrUnterminatedString marks a string literal that reached EOF
	// before its closing quote.
	ErrUnterminatedString
	// ErrUnknownPrefix marks an identifier immediately followed by '#',
	// '"', or '\'', which looks like an unsupported literal prefix.
	ErrUnknownPrefix

	// EOF marks the end of the token stream. lexer.Tokenize ends every
	// scan with exactly one zero-length EOF token.
	EOF
)

// IsError reports whether k is one of the error variants.
func (k Kind) IsError() bool {
	switch k {
	case ErrInvalidIdent, ErrUnexpectedCharacter, ErrUnterminatedString, ErrUnknownPrefix:
		return true
	default:
		return false
	}
}

// IsTrivia reports whether k carries no semantic content and should be
// filtered out before parsing.
func (k Kind) IsTrivia() bool {
	switch k {
	case LineComment, Whitespace, NewLine, EOF:
		return true
	default:
		return false
	}
}

// reservedWords is the fixed set of identifier spellings that the parser
// treats as keywords rather than user identifiers.
var reservedWords = map[string]struct{}{
	"and": {}, "class": {}, "else": {}, "false": {}, "for": {}, "fun": {},
	"if": {}, "nil": {}, "or": {}, "print": {}, "return": {}, "super": {},
	"this": {}, "true": {}, "var": {}, "while": {},
}

// IsReserved reports whether text names a reserved word. The lexer always
// tags identifier-shaped text as Identifier; this lookup is what the
// tokenize command uses to print a keyword's own name. The parser checks
// for a specific keyword with Token.IsKeyword instead.
func IsReserved(text string) bool {
	_, ok := reservedWords[text]
	return ok
}

// debugNames gives the fixed, all-caps names used by the "tokenize" CLI
// debug format for punctuation and operators.
var debugNames = map[Kind]string{
	Semi: "SEMICOLON ;", Comma: "COMMA ,", Dot: "DOT .",
	LeftParen: "LEFT_PAREN (", RightParen: "RIGHT_PAREN )",
	LeftBrace: "LEFT_BRACE {", RightBrace: "RIGHT_BRACE }",
	LeftBracket: "LEFT_BRACKET [", RightBracket: "RIGHT_BRACKET ]",
	Minus: "MINUS -", Plus: "PLUS +", Star: "STAR *", Slash: "SLASH /",
	Equal: "EQUAL =", EqualEqual: "EQUAL_EQUAL ==",
	Bang: "BANG !", BangEqual: "BANG_EQUAL !=",
	Less: "LESS <", LessEqual: "LESS_EQUAL <=",
	Greater: "GREATER >", GreaterEqual: "GREATER_EQUAL >=",
	EOF: "EOF  null",
}

// DebugPunctuationName returns the fixed "<KIND> <lexeme>" prefix used for
// punctuation/operator tokens in the tokenize debug format. It panics if k
// is not one of the kinds that carries a fixed name (identifiers, keywords,
// and literals are formatted by their callers instead).
func DebugPunctuationName(k Kind) string {
	name, ok := debugNames[k]
	if !ok {
		panic(fmt.Sprintf("token: %v has no fixed debug name", k))
	}
	return name
}

func (k Kind) String() string {
	switch k {
	case Semi:
		return "Semi"
	case Comma:
		return "Comma"
	case Dot:
		return "Dot"
	case LeftParen:
		return "LeftParen"
	case RightParen:
		return "RightParen"
	case LeftBrace:
		return "LeftBrace"
	case RightBrace:
		return "RightBrace"
	case LeftBracket:
		return "LeftBracket"
	case RightBracket:
		return "RightBracket"
	case Minus:
		return "Minus"
	case Plus:
		return "Plus"
	case Star:
		return "Star"
	case Slash:
		return "Slash"
	case Equal:
		return "Equal"
	case EqualEqual:
		return "EqualEqual"
	case Bang:
		return "Bang"
	case BangEqual:
		return "BangEqual"
	case Less:
		return "Less"
	case LessEqual:
		return "LessEqual"
	case Greater:
		return "Greater"
	case GreaterEqual:
		return "GreaterEqual"
	case LineComment:
		return "LineComment"
	case Whitespace:
		return "Whitespace"
	case NewLine:
		return "NewLine"
	case Identifier:
		return "Identifier"
	case Number:
		return "Number"
	case String:
		return "String"
	case ErrInvalidIdent:
		return "ErrInvalidIdent"
	case ErrUnexpectedCharacter:
		return "ErrUnexpectedCharacter"
	case ErrUnterminatedString:
		return "ErrUnterminatedString"
	case ErrUnknownPrefix:
		return "ErrUnknownPrefix"
	case EOF:
		return "EOF"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}
