package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brightlex/golox/token"
)

func kinds(toks []token.TagToken) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func lengthSum(toks []token.TagToken) int {
	sum := 0
	for _, t := range toks {
		sum += t.Len
	}
	return sum
}

func TestTokenizeLengthsSumToSourceLength(t *testing.T) {
	sources := []string{
		"",
		"var x = 1;",
		"// comment only\n",
		"\"unterminated",
		"print \"hi\" + 3.14;\n\nwhile (x < 10) x = x + 1;",
		"\r\n\r\n",
	}
	for _, src := range sources {
		toks := Tokenize(src)
		assert.Equal(t, len(src), lengthSum(toks), "source: %q", src)
		assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
	}
}

func TestTokenizePunctuationAndOperators(t *testing.T) {
	toks := Tokenize("(){},.-+;*!====<=>=<>")
	got := kinds(toks)
	want := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semi, token.Star,
		token.BangEqual, token.EqualEqual, token.Equal, token.LessEqual, token.GreaterEqual,
		token.Less, token.Greater, token.EOF,
	}
	assert.Equal(t, want, got)
}

func TestTokenizeTrailingDotIsNotPartOfNumber(t *testing.T) {
	toks := Tokenize("0.")
	got := kinds(toks)
	assert.Equal(t, []token.Kind{token.Number, token.Dot, token.EOF}, got)
	assert.Equal(t, 1, toks[0].Len)
	assert.Equal(t, 1, toks[1].Len)
}

func TestTokenizeNumberWithFraction(t *testing.T) {
	toks := Tokenize("3.14")
	assert.Equal(t, []token.Kind{token.Number, token.EOF}, kinds(toks))
	assert.Equal(t, 4, toks[0].Len)
}

func TestTokenizeNumberWithDigitSeparators(t *testing.T) {
	toks := Tokenize("1_000_000")
	assert.Equal(t, []token.Kind{token.Number, token.EOF}, kinds(toks))
	assert.Equal(t, len("1_000_000"), toks[0].Len)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	toks := Tokenize("\"still going")
	assert.Equal(t, []token.Kind{token.ErrUnterminatedString, token.EOF}, kinds(toks))
}

func TestTokenizeStringWithEscapes(t *testing.T) {
	toks := Tokenize(`"a\"b\\c"`)
	assert.Equal(t, []token.Kind{token.String, token.EOF}, kinds(toks))
	assert.Equal(t, len(`"a\"b\\c"`), toks[0].Len)
}

func TestTokenizeCRLFIsSingleNewline(t *testing.T) {
	toks := Tokenize("var x;\r\nvar y;")
	var newlines int
	for _, k := range kinds(toks) {
		if k == token.NewLine {
			newlines++
		}
	}
	assert.Equal(t, 1, newlines)

	named := token.Reconstruct("var x;\r\nvar y;", toks)
	for _, tok := range named {
		if tok.Kind == token.NewLine {
			assert.Equal(t, "\r\n", tok.Lexeme)
		}
	}
}

func TestTokenizeLoneCRIsWhitespace(t *testing.T) {
	toks := Tokenize("x\ry")
	got := kinds(toks)
	assert.Equal(t, []token.Kind{token.Identifier, token.Whitespace, token.Identifier, token.EOF}, got)
}

func TestTokenizeLineCounting(t *testing.T) {
	toks := Tokenize("a\nb\nc")
	named := token.Reconstruct("a\nb\nc", toks)
	var lines []int
	for _, tok := range named {
		if tok.Kind == token.Identifier {
			lines = append(lines, tok.Line)
		}
	}
	assert.Equal(t, []int{1, 2, 3}, lines)
}

func TestTokenizeLineCommentStopsBeforeNewline(t *testing.T) {
	toks := Tokenize("// hi\nprint 1;")
	got := kinds(toks)
	assert.Equal(t, []token.Kind{
		token.LineComment, token.NewLine, token.Identifier, token.Whitespace,
		token.Number, token.Semi, token.EOF,
	}, got)
}

func TestTokenizeIdentifierDoesNotClassifyKeywords(t *testing.T) {
	// The lexer tags every identifier-shaped lexeme as Identifier; keyword
	// recognition is the parser's job via Token.IsKeyword.
	toks := Tokenize("while")
	assert.Equal(t, []token.Kind{token.Identifier, token.EOF}, kinds(toks))
	assert.True(t, token.IsReserved("while"))
}

func TestTokenizeUnknownPrefix(t *testing.T) {
	toks := Tokenize(`ident"str"`)
	got := kinds(toks)
	assert.Equal(t, token.ErrUnknownPrefix, got[0])
}

func TestTokenizeInvalidIdentWithEmoji(t *testing.T) {
	toks := Tokenize("na\U0001F600me")
	got := kinds(toks)
	assert.Equal(t, []token.Kind{token.ErrInvalidIdent, token.EOF}, got)
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	toks := Tokenize("@")
	assert.Equal(t, token.ErrUnexpectedCharacter, toks[0].Kind)
	assert.Equal(t, '@', toks[0].Ch)
}

func TestReconstructPairsSlicesInOrder(t *testing.T) {
	src := "var x = 1;"
	tags := Tokenize(src)
	named := token.Reconstruct(src, tags)
	assert.Equal(t, "var", named[0].Lexeme)
	assert.Equal(t, "x", named[2].Lexeme)
	assert.Equal(t, "=", named[4].Lexeme)
	assert.Equal(t, "1", named[6].Lexeme)
	assert.Equal(t, ";", named[7].Lexeme)
}
