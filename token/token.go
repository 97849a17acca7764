package token

import "github.com/brightlex/golox/intern"

// TagToken is the lexer's output: a token identified only by kind, byte
// length, and source line. It deliberately does not carry the source slice
// — see the package doc for why.
//
// Equality on TagToken compares Kind and Len only; Line is metadata used for
// diagnostics and is not part of a token's identity.
type TagToken struct {
	Kind Kind
	Len  int
	Line int

	// Ch holds the offending rune for ErrUnexpectedCharacter tokens. It is
	// the zero rune for every other kind.
	Ch rune
}

// Equal reports whether t and other have the same Kind and Len.
func (t TagToken) Equal(other TagToken) bool {
	return t.Kind == other.Kind && t.Len == other.Len
}

// Token is a TagToken paired with the exact source bytes it covers. The
// Token layer (Reconstruct) builds these by walking a running offset over
// the tagged stream, so the lexer stays free of any borrowed-slice
// bookkeeping.
type Token struct {
	TagToken
	Lexeme string
}

// lexemes deduplicates identifier and literal text across every Reconstruct
// call in the process. Typical Lox source repeats the same handful of names
// and literals constantly; routing them through one shared pool means each
// distinct spelling is materialized once. Punctuation and trivia skip the
// pool — their slices are never retained past parsing.
var lexemes = intern.NewPool()

// Reconstruct pairs each tagged token in tags with its source slice, using a
// running byte offset into src. It is the sole place an offset-to-slice
// conversion happens; everywhere else tokens are addressed by kind and line.
//
// Invariant: sum of tags[i].Len over the whole input equals len(src).
func Reconstruct(src string, tags []TagToken) []Token {
	out := make([]Token, len(tags))
	offset := 0
	for i, tag := range tags {
		lexeme := src[offset : offset+tag.Len]
		switch tag.Kind {
		case Identifier, String, Number:
			lexeme = lexemes.Intern(lexeme)
		}
		out[i] = Token{TagToken: tag, Lexeme: lexeme}
		offset += tag.Len
	}
	return out
}

// New builds a named token directly from a kind and lexeme, without line
// information, for code (such as tests) that needs a Token not produced by
// Reconstruct.
func New(kind Kind, lexeme string) Token {
	return Token{TagToken: TagToken{Kind: kind, Len: len(lexeme)}, Lexeme: lexeme}
}

// NewWithLine builds a named token carrying full position metadata.
func NewWithLine(kind Kind, lexeme string, line int) Token {
	return Token{TagToken: TagToken{Kind: kind, Len: len(lexeme), Line: line}, Lexeme: lexeme}
}

// IsKeyword reports whether t is an identifier-shaped token whose lexeme
// names a reserved word. Reserved-word recognition is intentionally not
// done by the lexer (see package doc); this is the single check the parser
// uses everywhere it needs to tell "identifier" from "keyword".
func (t Token) IsKeyword(word string) bool {
	return t.Kind == Identifier && t.Lexeme == word
}

// Filter drops the trivia kinds (LineComment, Whitespace, NewLine, EOF) a
// parser has no use for, preserving order. Error tokens are NOT trivia and
// pass through: the parser's input stage only filters meaningless tokens,
// never error-bearing ones.
func Filter(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind.IsTrivia() {
			continue
		}
		out = append(out, t)
	}
	return out
}
