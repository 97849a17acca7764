package token_test

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"

	"github.com/brightlex/golox/lexer"
	"github.com/brightlex/golox/token"
)

func TestReconstructPairsKindsWithSlices(t *testing.T) {
	src := "x = 1;"
	got := token.Reconstruct(src, lexer.Tokenize(src))

	want := []token.Token{
		token.NewWithLine(token.Identifier, "x", 1),
		token.NewWithLine(token.Whitespace, " ", 1),
		token.NewWithLine(token.Equal, "=", 1),
		token.NewWithLine(token.Whitespace, " ", 1),
		token.NewWithLine(token.Number, "1", 1),
		token.NewWithLine(token.Semi, ";", 1),
		token.NewWithLine(token.EOF, "", 1),
	}
	if diff := pretty.Compare(got, want); diff != "" {
		t.Errorf("reconstructed tokens differ (-got +want):\n%s", diff)
	}
}

func TestFilterDropsTriviaButKeepsErrorTokens(t *testing.T) {
	src := "@ // bad\n"
	tokens := token.Filter(token.Reconstruct(src, lexer.Tokenize(src)))

	assert.Len(t, tokens, 1)
	assert.Equal(t, token.ErrUnexpectedCharacter, tokens[0].Kind)
	assert.Equal(t, '@', tokens[0].Ch)
}

func TestTagTokenEqualIgnoresLine(t *testing.T) {
	a := token.TagToken{Kind: token.Number, Len: 3, Line: 1}
	b := token.TagToken{Kind: token.Number, Len: 3, Line: 42}
	assert.True(t, a.Equal(b))

	c := token.TagToken{Kind: token.Number, Len: 4, Line: 1}
	assert.False(t, a.Equal(c))
}

func TestIsKeywordRequiresIdentifierKind(t *testing.T) {
	kw := token.New(token.Identifier, "while")
	assert.True(t, kw.IsKeyword("while"))
	assert.False(t, kw.IsKeyword("for"))

	// A string literal spelling a reserved word is not a keyword.
	str := token.New(token.String, "while")
	assert.False(t, str.IsKeyword("while"))
}

func TestIsReservedCoversTheFixedSet(t *testing.T) {
	for _, w := range []string{
		"and", "class", "else", "false", "for", "fun", "if", "nil",
		"or", "print", "return", "super", "this", "true", "var", "while",
	} {
		assert.True(t, token.IsReserved(w), "word: %s", w)
	}
	assert.False(t, token.IsReserved("whilst"))
	assert.False(t, token.IsReserved("While"))
}

func TestReconstructDeduplicatesRepeatedLexemes(t *testing.T) {
	src := "count = count + count;"
	tokens := token.Filter(token.Reconstruct(src, lexer.Tokenize(src)))

	var names []string
	for _, tok := range tokens {
		if tok.Kind == token.Identifier {
			names = append(names, tok.Lexeme)
		}
	}
	assert.Equal(t, []string{"count", "count", "count"}, names)
}
