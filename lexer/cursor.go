// Package lexer turns Lox source text into a stream of tagged tokens.
//
// The design is split into a Cursor (a peekable rune iterator with a line
// counter) and a Lexer built on top of it (the actual character-class state
// machine), in the style of rustc_lexer's cursor/lexer split: lookahead
// never consumes, and the number of bytes consumed since the last reset is
// always recoverable via PosWithinToken, which is how the lexer computes
// each token's length without ever touching the source slice directly.
package lexer

import "unicode/utf8"

const eofChar rune = 0

// Cursor is a peekable iterator over the UTF-8 runes of a source string. It
// tracks how many bytes have been consumed since the last token boundary
// and the current line number, but it does not decide what a token is —
// that is the Lexer's job.
type Cursor struct {
	src          string
	rest         string // src[consumed:], i.e. what remains to be scanned
	lenRemaining int    // len(rest) at the last ResetPosWithinToken
	line         int
}

// NewCursor creates a cursor positioned at the start of src.
func NewCursor(src string) *Cursor {
	return &Cursor{src: src, rest: src, lenRemaining: len(src), line: 1}
}

// nthChar returns the rune n runes ahead without consuming anything, or the
// EOF sentinel rune if the input doesn't extend that far.
func (c *Cursor) nthChar(n int) rune {
	s := c.rest
	for i := 0; i <= n; i++ {
		if len(s) == 0 {
			return eofChar
		}
		r, size := utf8.DecodeRuneInString(s)
		if i == n {
			return r
		}
		s = s[size:]
	}
	return eofChar
}

// First peeks the next rune without consuming it.
func (c *Cursor) First() rune { return c.nthChar(0) }

// Second peeks the rune after First without consuming anything.
func (c *Cursor) Second() rune { return c.nthChar(1) }

// Third peeks the rune two past First without consuming anything.
func (c *Cursor) Third() rune { return c.nthChar(2) }

// IsEOF reports whether there is nothing left to consume.
func (c *Cursor) IsEOF() bool { return len(c.rest) == 0 }

// PosWithinToken returns the number of bytes consumed since the last call
// to ResetPosWithinToken.
func (c *Cursor) PosWithinToken() int { return c.lenRemaining - len(c.rest) }

// ResetPosWithinToken zeroes the byte counter used by PosWithinToken. The
// lexer calls this once per token, right after recording its length.
func (c *Cursor) ResetPosWithinToken() { c.lenRemaining = len(c.rest) }

// Bump consumes and returns the next rune, or (0, false) at EOF.
func (c *Cursor) Bump() (rune, bool) {
	if len(c.rest) == 0 {
		return eofChar, false
	}
	r, size := utf8.DecodeRuneInString(c.rest)
	c.rest = c.rest[size:]
	return r, true
}

// EatWhile consumes runes while pred holds, stopping at EOF or the first
// rune for which pred is false. Lookahead-only predicates are expected;
// EatWhile itself performs the consuming.
func (c *Cursor) EatWhile(pred func(rune) bool) {
	for !c.IsEOF() && pred(c.First()) {
		c.Bump()
	}
}

// Line returns the current line number (1-indexed).
func (c *Cursor) Line() int { return c.line }

// IncLine increments the line counter. The cursor itself never calls this;
// it is the lexer's responsibility to call it exactly once per newline, to
// keep "what counts as a line break" a lexer-level policy.
func (c *Cursor) IncLine() { c.line++ }
