package lexer

import (
	"unicode"

	"github.com/brightlex/golox/token"
)

// Lexer drives the Cursor through the character-class state machine that
// recognizes Lox tokens. It consumes one token per call to AdvanceToken,
// resetting the cursor's byte counter each time so token lengths never leak
// across calls.
type Lexer struct {
	cur *Cursor
}

// New creates a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{cur: NewCursor(src)}
}

// Tokenize scans src to completion and returns every tagged token it
// produces, including trivia, in source order, terminated by a single EOF
// token of length 0. Error tokens are included in the stream rather than
// aborting the scan: the lexer has no notion of a fatal error.
//
// Invariant: the sum of every returned token's Len equals len(src).
func Tokenize(src string) []token.TagToken {
	lx := New(src)
	var out []token.TagToken
	for {
		tok := lx.AdvanceToken()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

const (
	backslashN = '\n'
	backslashR = '\r'
)

func isWhitespace(r rune) bool {
	return unicode.IsSpace(r) && r != backslashN
}

// isIDStart approximates Unicode XID_Start the same way Go's own scanner
// (go/scanner) approximates identifier starts: any Unicode letter, or an
// underscore.
func isIDStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// isIDContinue approximates XID_Continue the same way: letters, digits, and
// underscores.
func isIDContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isEmoji is a coarse approximation of the Unicode emoji property: the
// common pictographic/symbol blocks plus the zero-width joiner used to
// build compound emoji sequences.
func isEmoji(r rune) bool {
	const zwj = '‍'
	if r == zwj {
		return true
	}
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // misc symbols, pictographs, emoticons, transport, supplemental
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators (flag emoji)
		return true
	case r == 0xFE0F: // variation selector-16, emoji presentation
		return true
	default:
		return false
	}
}

// AdvanceToken consumes exactly one token from the cursor.
func (lx *Lexer) AdvanceToken() token.TagToken {
	c := lx.cur
	startLine := c.Line()
	first, ok := c.Bump()
	if !ok {
		return lx.finish(token.EOF)
	}

	var kind token.Kind
	var ch rune

	switch {
	case first == backslashN:
		c.IncLine()
		kind = token.NewLine

	case first == backslashR:
		if c.First() == backslashN {
			c.Bump() // CRLF is a single newline
			c.IncLine()
			kind = token.NewLine
		} else {
			c.EatWhile(isWhitespace)
			kind = token.Whitespace
		}

	case first == '/':
		if c.First() == '/' {
			lx.lineComment()
			kind = token.LineComment
		} else {
			kind = token.Slash
		}

	case first == '=':
		if c.First() == '=' {
			c.Bump()
			kind = token.EqualEqual
		} else {
			kind = token.Equal
		}

	case first == '!':
		if c.First() == '=' {
			c.Bump()
			kind = token.BangEqual
		} else {
			kind = token.Bang
		}

	case first == '<':
		if c.First() == '=' {
			c.Bump()
			kind = token.LessEqual
		} else {
			kind = token.Less
		}

	case first == '>':
		if c.First() == '=' {
			c.Bump()
			kind = token.GreaterEqual
		} else {
			kind = token.Greater
		}

	case first == ';':
		kind = token.Semi
	case first == ',':
		kind = token.Comma
	case first == '.':
		kind = token.Dot
	case first == '(':
		kind = token.LeftParen
	case first == ')':
		kind = token.RightParen
	case first == '{':
		kind = token.LeftBrace
	case first == '}':
		kind = token.RightBrace
	case first == '[':
		kind = token.LeftBracket
	case first == ']':
		kind = token.RightBracket
	case first == '-':
		kind = token.Minus
	case first == '+':
		kind = token.Plus
	case first == '*':
		kind = token.Star

	case isWhitespace(first):
		c.EatWhile(isWhitespace)
		kind = token.Whitespace

	case isIDStart(first):
		kind = lx.identOrUnknownPrefix()

	case first >= '0' && first <= '9':
		lx.number()
		kind = token.Number

	case first == '"':
		terminated := lx.doubleQuotedString()
		if !terminated {
			// The error token carries the line the string STARTED on, not
			// wherever EOF was reached.
			tok := token.TagToken{Kind: token.ErrUnterminatedString, Len: c.PosWithinToken(), Line: startLine}
			c.ResetPosWithinToken()
			return tok
		}
		kind = token.String

	default:
		kind = token.ErrUnexpectedCharacter
		ch = first
	}

	tok := token.TagToken{Kind: kind, Len: c.PosWithinToken(), Line: startLine, Ch: ch}
	c.ResetPosWithinToken()
	return tok
}

// finish builds a zero-length token at the cursor's current position and
// resets the byte counter; only EOF takes this path.
func (lx *Lexer) finish(kind token.Kind) token.TagToken {
	tok := token.TagToken{Kind: kind, Len: lx.cur.PosWithinToken(), Line: lx.cur.Line()}
	lx.cur.ResetPosWithinToken()
	return tok
}

func (lx *Lexer) lineComment() {
	lx.cur.Bump() // eat the second '/'
	lx.cur.EatWhile(func(r rune) bool { return r != backslashN })
}

// doubleQuotedString eats the body of a string literal, including its
// opening quote (already consumed by the caller) and, on success, its
// closing quote. It recognizes `\\` and `\"` as two-character escapes only
// in the sense that the character following either is consumed verbatim;
// decoding escapes is not the lexer's job.
func (lx *Lexer) doubleQuotedString() bool {
	c := lx.cur
	for {
		r, ok := c.Bump()
		if !ok {
			return false
		}
		switch {
		case r == '"':
			return true
		case r == '\\' && (c.First() == '\\' || c.First() == '"'):
			c.Bump()
		case r == backslashN:
			// Strings may span lines; keep the counter honest for every
			// token after this one.
			c.IncLine()
		}
	}
}

func (lx *Lexer) identOrUnknownPrefix() token.Kind {
	c := lx.cur
	c.EatWhile(isIDContinue)
	switch next := c.First(); {
	case next == '#' || next == '"' || next == '\'':
		return token.ErrUnknownPrefix
	case next > unicode.MaxASCII && isEmoji(next):
		return lx.invalidIdent()
	default:
		return token.Identifier
	}
}

func (lx *Lexer) invalidIdent() token.Kind {
	lx.cur.EatWhile(func(r rune) bool {
		return isIDContinue(r) || (r > unicode.MaxASCII && isEmoji(r)) || r == '‍'
	})
	return token.ErrInvalidIdent
}

// number eats an integer part and an optional ".<digits>" fractional part.
// A trailing '.' not followed by a digit is left untouched, so it becomes
// its own Dot token on the next call: `0.` is a number then a dot.
func (lx *Lexer) number() {
	lx.eatDecimalDigits()
	if lx.cur.First() == '.' && isDecimalDigit(lx.cur.Second()) {
		lx.cur.Bump() // eat '.'
		lx.eatDecimalDigits()
	}
}

func isDecimalDigit(r rune) bool { return r >= '0' && r <= '9' }

// eatDecimalDigits consumes digits and underscores-between-digits, the
// "1_000_000" digit-separator style.
func (lx *Lexer) eatDecimalDigits() {
	lx.cur.EatWhile(func(r rune) bool { return r == '_' || isDecimalDigit(r) })
}
