package lex

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(t *testing.T, src string) []TokenKind {
	t.Helper()
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	var out []TokenKind
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func single(t *testing.T, src string) Token {
	t.Helper()
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	return tokens[0]
}

func lexError(t *testing.T, src string) *Error {
	t.Helper()
	_, err := Tokenize(src)
	require.Error(t, err)
	var lexErr *Error
	require.True(t, errors.As(err, &lexErr), "want *Error, got %T", err)
	return lexErr
}

func TestMaximalMunch(t *testing.T) {
	tests := []struct {
		src  string
		want []TokenKind
	}{
		{"+", []TokenKind{TokenPlus}},
		{"++", []TokenKind{TokenIncrement}},
		{"+ +", []TokenKind{TokenPlus, TokenPlus}},
		{"+++", []TokenKind{TokenIncrement, TokenPlus}},
		{"-><-", []TokenKind{TokenPointerDeref, TokenLessThan, TokenMinus}},
		{"|||&&|", []TokenKind{TokenLogicalOr, TokenOr, TokenLogicalAnd, TokenOr}},
		{"<<=<<", []TokenKind{TokenLShiftAssign, TokenLShift}},
		{"a>>=b", []TokenKind{TokenIdentifier, TokenRShiftAssign, TokenIdentifier}},
		{"!==", []TokenKind{TokenNotEqual, TokenAssign}},
		{"x->y.z", []TokenKind{TokenIdentifier, TokenPointerDeref, TokenIdentifier, TokenPeriod, TokenIdentifier}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, kinds(t, tt.src))
		})
	}
}

func TestKeywordBoundary(t *testing.T) {
	tests := []struct {
		src  string
		want []TokenKind
	}{
		{"while", []TokenKind{TokenWhile}},
		{"while(", []TokenKind{TokenWhile, TokenLeftParen}},
		{"whilex", []TokenKind{TokenIdentifier}},
		{"whil", []TokenKind{TokenIdentifier}},
		{"do double", []TokenKind{TokenDo, TokenDouble}},
		{"dox", []TokenKind{TokenIdentifier}},
		{"int3", []TokenKind{TokenIdentifier}},
		{"_Bool b", []TokenKind{TokenBool, TokenIdentifier}},
		{"unsigned long long", []TokenKind{TokenUnsigned, TokenLong, TokenLong}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, kinds(t, tt.src))
		})
	}
}

func TestIdentifier(t *testing.T) {
	tok := single(t, "whilex")
	assert.Equal(t, "whilex", tok.Literal)

	tok = single(t, "été_2")
	assert.Equal(t, TokenIdentifier, tok.Kind)
	assert.Equal(t, "été_2", tok.Literal)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		src  string
		typ  NumberType
		want uint64
	}{
		{"0", TypeSignedInt, 0},
		{"1234", TypeSignedInt, 1234},
		{"0ul", TypeUnsignedLong, 0},
		{"332ll", TypeSignedLongLong, 332},
		{"0xDeAdBeEfuL", TypeUnsignedLong, 0xDEADBEEF},
		{"0b101011", TypeSignedInt, 43},
		{"0o70ul", TypeUnsignedLong, 56},
		{"0x12fll", TypeSignedLongLong, 0x12F},
		{"017", TypeSignedInt, 15},
		{"3u", TypeUnsignedInt, 3},
		{"2147483647", TypeSignedInt, 2147483647},
		{"2147483648", TypeSignedLong, 2147483648},
		{"4294967295u", TypeUnsignedInt, 4294967295},
		{"4294967296u", TypeUnsignedLong, 4294967296},
		{"0xFFFFFFFFFFFFFFFF", TypeSignedLongLong, 0xFFFFFFFFFFFFFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tok := single(t, tt.src)
			require.Equal(t, TokenNumber, tok.Kind)
			assert.Equal(t, tt.typ, tok.Number.Type)
			assert.Equal(t, tt.want, tok.Number.Uint64())
			assert.Zero(t, tok.Number.Hi)
		})
	}
}

func TestNumberPromotesToUnsigned128(t *testing.T) {
	// 2^127 does not fit a signed 128-bit value.
	tok := single(t, "0x80000000000000000000000000000000")
	assert.Equal(t, TypeUnsignedLongLong, tok.Number.Type)
	assert.Equal(t, uint64(1)<<63, tok.Number.Hi)
	assert.Equal(t, "170141183460469231731687303715884105728", tok.Number.Big().String())
}

func TestFloats(t *testing.T) {
	tests := []struct {
		src  string
		typ  NumberType
		want float64
	}{
		{"1.5", TypeDouble, 1.5},
		{"0.25", TypeDouble, 0.25},
		{"2.5f", TypeFloat, 2.5},
		{"1e3", TypeDouble, 1000},
		{"6.02E-2", TypeDouble, 0.0602},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tok := single(t, tt.src)
			assert.Equal(t, tt.typ, tok.Number.Type)
			assert.InDelta(t, tt.want, tok.Number.Float, 1e-9)
		})
	}
}

func TestNumberErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind ErrorKind
	}{
		{"0ulll", ErrInvalidSize},
		{"12q", ErrInvalidLiteral},
		{"0x", ErrEmptyNumericLiteral},
		{"0b", ErrEmptyNumericLiteral},
		{"09", ErrLargeNumericLiteral},
		{"0128", ErrLargeNumericLiteral},
		{"0x1000000000000000000000000000000000", ErrLargeNumericLiteral},
		{"1e+", ErrInvalidLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.kind, lexError(t, tt.src).Kind)
		})
	}
	assert.Equal(t, 256, lexError(t, "0ulll").Size)
}

func TestSuffixThenIdentifier(t *testing.T) {
	tokens, err := Tokenize("3u nit")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, TypeUnsignedInt, tokens[0].Number.Type)
	assert.Equal(t, uint64(3), tokens[0].Number.Uint64())
	assert.Equal(t, TokenIdentifier, tokens[1].Kind)
	assert.Equal(t, "nit", tokens[1].Literal)
}

func TestCharLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want uint64
	}{
		{`'c'`, 'c'},
		{`'\x1b'`, 0x1B},
		{`'\\'`, '\\'},
		{`' '`, ' '},
		{`'\f'`, 0x0C},
		{`'\e'`, 0x1B},
		{`'é'`, 0xE9},
		{`'\u00e9'`, 0xE9},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tok := single(t, tt.src)
			assert.Equal(t, TokenNumber, tok.Kind)
			assert.Equal(t, TypeUnsignedInt, tok.Number.Type)
			assert.Equal(t, tt.want, tok.Number.Uint64())
		})
	}
}

func TestCharLiteralErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind ErrorKind
	}{
		{`'`, ErrUnfinished},
		{`''`, ErrInvalidLiteral},
		{`'\\`, ErrUnfinished},
		{`'\`, ErrUnfinishedEscape},
		{`'ab'`, ErrInvalidLiteral},
		{`'\q'`, ErrInvalidEscape},
		{`'\x1'`, ErrInvalidEscape},
		{`'\x`, ErrUnfinishedEscape},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.kind, lexError(t, tt.src).Kind)
		})
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"\" This is a test \""`, `" This is a test "`},
		{`""`, ""},
		{`"a\tb\n"`, "a\tb\n"},
		{`"\x41é"`, "Aé"},
		{`"日本"`, "日本"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tok := single(t, tt.src)
			assert.Equal(t, TokenString, tok.Kind)
			assert.Equal(t, tt.want, tok.Literal)
		})
	}
}

func TestUnclosedString(t *testing.T) {
	err := lexError(t, `"abc`)
	assert.Equal(t, ErrUnclosedString, err.Kind)
	assert.Equal(t, "abc", err.Text)

	err = lexError(t, "x \"ab\ncd\"")
	assert.Equal(t, ErrUnclosedString, err.Kind)
	assert.Equal(t, Position{Line: 1, Column: 3}, err.Pos)
}

func TestPositions(t *testing.T) {
	tokens, err := Tokenize("int main() {\n  return 0;\n}\n")
	require.NoError(t, err)
	want := []struct {
		kind TokenKind
		pos  Position
	}{
		{TokenInt, Position{1, 1}},
		{TokenIdentifier, Position{1, 5}},
		{TokenLeftParen, Position{1, 9}},
		{TokenRightParen, Position{1, 10}},
		{TokenLeftCurlyBrace, Position{1, 12}},
		{TokenReturn, Position{2, 3}},
		{TokenNumber, Position{2, 10}},
		{TokenSemicolon, Position{2, 11}},
		{TokenRightCurlyBrace, Position{3, 1}},
	}
	require.Len(t, tokens, len(want))
	for i, w := range want {
		assert.Equal(t, w.kind, tokens[i].Kind, "token %d", i)
		assert.Equal(t, w.pos, tokens[i].Pos, "token %d", i)
	}
}

func TestComments(t *testing.T) {
	assert.Equal(t,
		[]TokenKind{TokenIdentifier, TokenDiv, TokenIdentifier},
		kinds(t, "a // line\n/* block\n * more */ / b"),
	)
	assert.Equal(t, ErrUnfinished, lexError(t, "a /* open").Kind)
}

func TestInvalidCharacter(t *testing.T) {
	err := lexError(t, "a @")
	assert.Equal(t, ErrInvalidCharacter, err.Kind)
	assert.Equal(t, '@', err.Char)
	assert.Equal(t, Position{1, 3}, err.Pos)
}

func TestNextContinuesAfterError(t *testing.T) {
	l := NewString("a @ b")
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", tok.Literal)

	_, err = l.Next()
	require.Error(t, err)

	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", tok.Literal)

	_, err = l.Next()
	assert.Equal(t, io.EOF, err)
}

func TestTokenString(t *testing.T) {
	tokens, err := Tokenize(`x += 0ul "s"`)
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, "x", tokens[0].String())
	assert.Equal(t, "+=", tokens[1].String())
	assert.Equal(t, "unsigned long(0)", tokens[2].String())
	assert.Equal(t, `"s"`, tokens[3].String())
}
