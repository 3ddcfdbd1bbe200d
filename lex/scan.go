package lex

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

func digitValue(r rune) (uint64, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint64(r - '0'), true
	case r >= 'a' && r <= 'f':
		return uint64(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return uint64(r-'A') + 10, true
	}
	return 0, false
}

// digits reads a run of digits below run and accumulates them in radix.
// run may exceed radix so that a leading-zero octal literal swallows 8 and
// 9 and can be rejected whole.
func (l *Lexer) digits(radix, run uint64) (v u128, text string, overflow bool) {
	var b strings.Builder
	for {
		c, ok := l.next()
		if !ok {
			break
		}
		d, ok := digitValue(c.ch)
		if !ok || d >= run {
			l.back(c)
			break
		}
		b.WriteRune(c.ch)
		if overflow {
			continue
		}
		if v, ok = v.mulAdd(radix, d); !ok {
			overflow = true
		}
	}
	return v, b.String(), overflow
}

// scanZero handles everything starting with '0': radix prefixes,
// leading-zero octal, floats and the bare zero.
func (l *Lexer) scanZero() (Token, error) {
	c, ok := l.next()
	if !ok {
		return l.integer(Int(TypeSignedInt, 0)), nil
	}
	switch c.ch {
	case 'b', 'B':
		return l.scanRadix(2, "0"+string(c.ch))
	case 'o', 'O':
		return l.scanRadix(8, "0"+string(c.ch))
	case 'x', 'X':
		return l.scanRadix(16, "0"+string(c.ch))
	case 'u', 'U', 'l', 'L':
		l.back(c)
		return l.suffix(u128{})
	}
	l.back(c)
	if c.ch >= '0' && c.ch <= '9' {
		// An 8 or 9 in an octal run is reported like an overflow: the run
		// has no octal value.
		v, text, overflow := l.digits(8, 10)
		if overflow || strings.ContainsAny(text, "89") {
			return Token{}, l.fail(ErrLargeNumericLiteral, "0"+text)
		}
		return l.suffix(v)
	}
	if l.floatFollows() {
		return l.scanFloat("0")
	}
	return l.integer(Int(TypeSignedInt, 0)), nil
}

func (l *Lexer) scanRadix(radix uint64, prefix string) (Token, error) {
	v, text, overflow := l.digits(radix, radix)
	if text == "" {
		return Token{}, l.fail(ErrEmptyNumericLiteral, prefix)
	}
	if overflow {
		return Token{}, l.fail(ErrLargeNumericLiteral, prefix+text)
	}
	return l.suffix(v)
}

func (l *Lexer) scanDecimal() (Token, error) {
	v, text, overflow := l.digits(10, 10)
	if l.floatFollows() {
		return l.scanFloat(text)
	}
	if overflow {
		return Token{}, l.fail(ErrLargeNumericLiteral, text)
	}
	return l.suffix(v)
}

// floatFollows reports whether the next characters continue an integer
// part into a floating literal: a period followed by a digit, or an
// exponent marker.
func (l *Lexer) floatFollows() bool {
	c, ok := l.next()
	if !ok {
		return false
	}
	defer l.back(c)
	switch c.ch {
	case '.':
		r, ok := l.peek()
		return ok && r >= '0' && r <= '9'
	case 'e', 'E':
		r, ok := l.peek()
		return ok && (r >= '0' && r <= '9' || r == '+' || r == '-')
	}
	return false
}

func (l *Lexer) scanFloat(intPart string) (Token, error) {
	var b strings.Builder
	b.WriteString(intPart)
	readDigits := func() int {
		n := 0
		for {
			c, ok := l.next()
			if !ok {
				return n
			}
			if c.ch < '0' || c.ch > '9' {
				l.back(c)
				return n
			}
			b.WriteRune(c.ch)
			n++
		}
	}

	if c, ok := l.next(); ok && c.ch == '.' {
		b.WriteRune('.')
		readDigits()
	} else if ok {
		l.back(c)
	}
	if c, ok := l.next(); ok && (c.ch == 'e' || c.ch == 'E') {
		b.WriteRune('e')
		if s, ok := l.next(); ok && (s.ch == '+' || s.ch == '-') {
			b.WriteRune(s.ch)
		} else if ok {
			l.back(s)
		}
		if readDigits() == 0 {
			return Token{}, l.fail(ErrInvalidLiteral, b.String())
		}
	} else if ok {
		l.back(c)
	}

	t := TypeDouble
	if c, ok := l.next(); ok {
		switch {
		case c.ch == 'f' || c.ch == 'F':
			t = TypeFloat
		case c.ch == 'l' || c.ch == 'L':
		case unicode.IsLetter(c.ch):
			return Token{}, l.fail(ErrInvalidLiteral, b.String()+string(c.ch))
		default:
			l.back(c)
		}
	}

	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Token{}, l.fail(ErrLargeNumericLiteral, b.String())
		}
		return Token{}, l.fail(ErrInvalidLiteral, b.String())
	}
	if t == TypeFloat {
		f = float64(float32(f))
	}
	return Token{Kind: TokenNumber, Pos: l.start, Number: Number{Type: t, Float: f}}, nil
}

// suffix reads the u/l suffix letters of an integer literal and settles
// its type. Values that do not fit are promoted by doubling the width,
// and a signed value too wide for 128 bits becomes unsigned.
func (l *Lexer) suffix(v u128) (Token, error) {
	size, signed := 32, true
	var text strings.Builder
loop:
	for {
		c, ok := l.next()
		if !ok {
			break
		}
		switch c.ch {
		case 'u', 'U':
			signed = false
		case 'l', 'L':
			size *= 2
		default:
			if unicode.IsLetter(c.ch) {
				return Token{}, l.fail(ErrInvalidLiteral, text.String()+string(c.ch))
			}
			l.back(c)
			break loop
		}
		text.WriteRune(c.ch)
	}
	if _, ok := IntegerType(size, signed); !ok {
		return Token{}, &Error{Kind: ErrInvalidSize, Pos: l.start, Size: size}
	}
	for !v.fits(size, signed) {
		if size < 128 {
			size *= 2
		} else {
			signed = false
		}
	}
	t, _ := IntegerType(size, signed)
	return l.integer(Number{Type: t, Hi: v.hi, Lo: v.lo}), nil
}

func (l *Lexer) integer(n Number) Token {
	return Token{Kind: TokenNumber, Pos: l.start, Number: n}
}

// escape decodes the sequence after a backslash.
func (l *Lexer) escape() (uint32, error) {
	c, ok := l.next()
	if !ok {
		return 0, l.fail(ErrUnfinishedEscape, `\`)
	}
	switch c.ch {
	case 'a':
		return 0x07, nil
	case 'b':
		return 0x08, nil
	case 'f':
		return 0x0C, nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'v':
		return 0x0B, nil
	case 'e':
		return 0x1B, nil
	case '\\', '\'', '"', '?':
		return uint32(c.ch), nil
	case 'x':
		return l.numericEscape("x", 2, 16)
	case 'u':
		return l.numericEscape("u", 4, 16)
	case 'U':
		return l.numericEscape("U", 8, 16)
	}
	if c.ch >= '0' && c.ch <= '9' {
		l.back(c)
		return l.numericEscape("", 4, 10)
	}
	return 0, l.fail(ErrInvalidEscape, `\`+string(c.ch))
}

func (l *Lexer) numericEscape(prefix string, n, base int) (uint32, error) {
	text, ok := l.nextN(n)
	if !ok {
		return 0, l.fail(ErrUnfinishedEscape, `\`+prefix)
	}
	v, err := strconv.ParseUint(text, base, 32)
	if err != nil {
		return 0, l.fail(ErrInvalidEscape, `\`+prefix+text)
	}
	return uint32(v), nil
}

// scanChar reads a character literal after its opening quote. The value
// is an unsigned int.
func (l *Lexer) scanChar() (Token, error) {
	c, ok := l.next()
	if !ok {
		return Token{}, l.fail(ErrUnfinished, "'")
	}
	var v uint32
	switch c.ch {
	case '\'':
		return Token{}, l.fail(ErrInvalidLiteral, "''")
	case '\\':
		var err error
		if v, err = l.escape(); err != nil {
			return Token{}, err
		}
	default:
		v = uint32(c.ch)
	}
	fragment := "'" + string(rune(v))
	d, ok := l.next()
	if !ok {
		return Token{}, l.fail(ErrUnfinished, fragment)
	}
	if d.ch != '\'' {
		l.back(d)
		return Token{}, l.fail(ErrInvalidLiteral, fragment)
	}
	return l.integer(Int(TypeUnsignedInt, uint64(v))), nil
}

// scanString reads a string literal after its opening quote. Escapes that
// name a valid code point are stored as UTF-8; other values are stored as
// a single byte.
func (l *Lexer) scanString() (Token, error) {
	var b []byte
	for {
		c, ok := l.next()
		if !ok || c.ch == '\n' {
			return Token{}, l.fail(ErrUnclosedString, strings.ToValidUTF8(string(b), "�"))
		}
		switch c.ch {
		case '"':
			return Token{Kind: TokenString, Pos: l.start, Literal: string(b)}, nil
		case '\\':
			v, err := l.escape()
			if err != nil {
				return Token{}, err
			}
			if r := rune(v); v <= utf8.MaxRune && utf8.ValidRune(r) {
				b = utf8.AppendRune(b, r)
			} else {
				b = append(b, byte(v))
			}
		default:
			b = utf8.AppendRune(b, c.ch)
		}
	}
}
