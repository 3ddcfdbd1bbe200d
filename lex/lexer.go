package lex

import (
	"errors"
	"io"
	"iter"
	"strings"
)

type sourceChar struct {
	ch  rune
	pos Position
}

// Lexer turns a stream of characters into tokens, one per call to Next.
// Characters pushed back carry their original positions, so the line and
// column bookkeeping survives push-back across newlines.
type Lexer struct {
	src      io.RuneReader
	readErr  error
	done     bool
	pushback []sourceChar
	line     int
	column   int
	start    Position
}

func New(r io.RuneReader) *Lexer {
	return &Lexer{
		src:    r,
		line:   1,
		column: 1,
	}
}

func NewString(src string) *Lexer {
	return New(strings.NewReader(src))
}

// Position returns the position of the next unread character.
func (l *Lexer) Position() Position {
	if n := len(l.pushback); n > 0 {
		return l.pushback[n-1].pos
	}
	return Position{Line: l.line, Column: l.column}
}

func (l *Lexer) next() (sourceChar, bool) {
	if n := len(l.pushback); n > 0 {
		c := l.pushback[n-1]
		l.pushback = l.pushback[:n-1]
		return c, true
	}
	if l.done {
		return sourceChar{}, false
	}
	r, _, err := l.src.ReadRune()
	if err != nil {
		l.done = true
		if err != io.EOF {
			l.readErr = err
		}
		return sourceChar{}, false
	}
	c := sourceChar{ch: r, pos: Position{Line: l.line, Column: l.column}}
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c, true
}

func (l *Lexer) back(c sourceChar) {
	l.pushback = append(l.pushback, c)
}

func (l *Lexer) backAll(cs []sourceChar) {
	for i := len(cs) - 1; i >= 0; i-- {
		l.back(cs[i])
	}
}

func (l *Lexer) peek() (rune, bool) {
	c, ok := l.next()
	if ok {
		l.back(c)
	}
	return c.ch, ok
}

// nextN reads exactly n characters. If fewer remain, whatever was read is
// pushed back.
func (l *Lexer) nextN(n int) (string, bool) {
	read := make([]sourceChar, 0, n)
	for len(read) < n {
		c, ok := l.next()
		if !ok {
			l.backAll(read)
			return "", false
		}
		read = append(read, c)
	}
	var b strings.Builder
	for _, c := range read {
		b.WriteRune(c.ch)
	}
	return b.String(), true
}

func (l *Lexer) fail(kind ErrorKind, text string) *Error {
	return &Error{Kind: kind, Pos: l.start, Text: text}
}

func (l *Lexer) token(kind TokenKind) Token {
	return Token{Kind: kind, Pos: l.start}
}

// skipBlank drops whitespace, line comments and block comments.
func (l *Lexer) skipBlank() *Error {
	for {
		c, ok := l.next()
		if !ok {
			return nil
		}
		switch c.ch {
		case ' ', '\t', '\r', '\n':
			continue
		case '/':
			d, ok := l.next()
			if ok && d.ch == '/' {
				for {
					e, ok := l.next()
					if !ok || e.ch == '\n' {
						break
					}
				}
				continue
			}
			if ok && d.ch == '*' {
				if !l.skipBlockComment() {
					return &Error{Kind: ErrUnfinished, Pos: c.pos, Text: "/*"}
				}
				continue
			}
			if ok {
				l.back(d)
			}
		}
		l.back(c)
		return nil
	}
}

func (l *Lexer) skipBlockComment() bool {
	star := false
	for {
		c, ok := l.next()
		if !ok {
			return false
		}
		if star && c.ch == '/' {
			return true
		}
		star = c.ch == '*'
	}
}

// Next returns the next token. At the end of input it returns io.EOF. Lex
// errors are returned as *Error and do not stop the lexer: calling Next
// again resumes after the failing fragment.
func (l *Lexer) Next() (Token, error) {
	if err := l.skipBlank(); err != nil {
		return Token{}, err
	}
	c, ok := l.next()
	if !ok {
		if l.readErr != nil {
			err := l.readErr
			l.readErr = nil
			return Token{}, err
		}
		return Token{}, io.EOF
	}
	l.start = c.pos
	l.back(c)

	if kind, ok := l.scanLiteral(); ok {
		return l.token(kind), nil
	}

	c, _ = l.next()
	switch {
	case c.ch == '"':
		return l.scanString()
	case c.ch == '0':
		return l.scanZero()
	case c.ch >= '1' && c.ch <= '9':
		l.back(c)
		return l.scanDecimal()
	case c.ch == '\'':
		return l.scanChar()
	}
	return l.scanIdentifier(c)
}

// All returns the remaining tokens as a sequence. Lex errors are yielded
// in place; a read error from the underlying reader ends the sequence.
func (l *Lexer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) {
				return
			}
			var lexErr *Error
			if err != nil && !errors.As(err, &lexErr) {
				return
			}
		}
	}
}

// Tokenize lexes src completely, stopping at the first error.
func Tokenize(src string) ([]Token, error) {
	var tokens []Token
	for tok, err := range NewString(src).All() {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// scanLiteral applies maximal munch over the literal table. The candidate
// grows while some entry still extends it; the longest entry that is a
// prefix of the candidate wins and the surplus is pushed back.
func (l *Lexer) scanLiteral() (TokenKind, bool) {
	var read []sourceChar
	var text strings.Builder
	for {
		c, ok := l.next()
		if !ok {
			break
		}
		candidate := text.String() + string(c.ch)
		if !extendsLiteral(candidate) {
			l.back(c)
			break
		}
		read = append(read, c)
		text.WriteRune(c.ch)
	}

	for i := len(read); i > 0; i-- {
		lit, ok := literalFor(read[:i])
		if !ok {
			continue
		}
		if lit.boundary {
			var follow rune
			var more bool
			if i < len(read) {
				follow, more = read[i].ch, true
			} else {
				follow, more = l.peek()
			}
			if more && isIdentifierChar(follow) {
				continue
			}
		}
		l.backAll(read[i:])
		return lit.kind, true
	}
	l.backAll(read)
	return TokenInvalid, false
}

func extendsLiteral(prefix string) bool {
	for _, lit := range literals {
		if strings.HasPrefix(lit.text, prefix) {
			return true
		}
	}
	return false
}

func literalFor(cs []sourceChar) (literal, bool) {
	var b strings.Builder
	for _, c := range cs {
		b.WriteRune(c.ch)
	}
	text := b.String()
	for _, lit := range literals {
		if lit.text == text {
			return lit, true
		}
	}
	return literal{}, false
}

func (l *Lexer) scanIdentifier(first sourceChar) (Token, error) {
	if !isIdentifierChar(first.ch) {
		return Token{}, &Error{Kind: ErrInvalidCharacter, Pos: l.start, Char: first.ch}
	}
	var b strings.Builder
	b.WriteRune(first.ch)
	for {
		c, ok := l.next()
		if !ok {
			break
		}
		if !isIdentifierChar(c.ch) {
			l.back(c)
			break
		}
		b.WriteRune(c.ch)
	}
	return Token{Kind: TokenIdentifier, Pos: l.start, Literal: b.String()}, nil
}
