package lex

import "fmt"

// Position is the 1-based line and column of a source character.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// TokenKind is the syntactic class of a token. Grammar terminals are
// expressed as kinds, so two tokens match the same terminal exactly when
// their kinds are equal, whatever their payload.
type TokenKind int

const (
	TokenInvalid TokenKind = iota

	// Literals
	TokenString
	TokenNumber
	TokenIdentifier

	// Operators
	TokenPlus
	TokenMinus
	TokenMul
	TokenDiv
	TokenMod
	TokenLShift
	TokenRShift
	TokenNot
	TokenXor
	TokenOr
	TokenAnd
	TokenLogicalNot
	TokenLogicalOr
	TokenLogicalAnd
	TokenEquals
	TokenNotEqual
	TokenLessThan
	TokenGreaterThan
	TokenLessOrEqual
	TokenGreaterOrEqual
	TokenIncrement
	TokenDecrement

	// Assignment
	TokenAddAssign
	TokenSubAssign
	TokenMulAssign
	TokenDivAssign
	TokenModAssign
	TokenLShiftAssign
	TokenRShiftAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenAssign

	// Brackets
	TokenLeftParen
	TokenRightParen
	TokenLeftBracket
	TokenRightBracket
	TokenLeftCurlyBrace
	TokenRightCurlyBrace

	// Other syntax
	TokenPointerDeref
	TokenSemicolon
	TokenColon
	TokenComma
	TokenPeriod
	TokenQuestion

	// Keywords
	TokenAuto
	TokenBreak
	TokenCase
	TokenChar
	TokenConst
	TokenContinue
	TokenDefault
	TokenDo
	TokenDouble
	TokenElse
	TokenEnum
	TokenExtern
	TokenFloat
	TokenFor
	TokenGoto
	TokenIf
	TokenInline
	TokenInt
	TokenLong
	TokenRegister
	TokenRestrict
	TokenReturn
	TokenShort
	TokenSigned
	TokenSizeof
	TokenStatic
	TokenStruct
	TokenSwitch
	TokenTypedef
	TokenUnion
	TokenUnsigned
	TokenVoid
	TokenVolatile
	TokenWhile
	TokenBool
	TokenComplex
	TokenImaginary
)

var tokenKindNames = map[TokenKind]string{
	TokenInvalid:    "Invalid",
	TokenString:     "StringLiteral",
	TokenNumber:     "NumericLiteral",
	TokenIdentifier: "Identifier",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	for _, lit := range literals {
		if lit.kind == k {
			return lit.text
		}
	}
	return "Unknown"
}

// Token is one lexed token. Literal holds the identifier text for
// TokenIdentifier and the decoded bytes for TokenString; Number holds the
// value of a TokenNumber.
type Token struct {
	Kind    TokenKind
	Pos     Position
	Literal string
	Number  Number
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIdentifier:
		return t.Literal
	case TokenString:
		return fmt.Sprintf("%q", t.Literal)
	case TokenNumber:
		return t.Number.String()
	}
	return t.Kind.String()
}

// literal is an entry of the maximal-munch table. A boundary entry only
// matches when the character following it cannot continue an identifier.
type literal struct {
	text     string
	kind     TokenKind
	boundary bool
}

// literals is the ordered table consulted before any other token class.
var literals = []literal{
	{"<<=", TokenLShiftAssign, false},
	{">>=", TokenRShiftAssign, false},
	{"<=", TokenLessOrEqual, false},
	{">=", TokenGreaterOrEqual, false},
	{"==", TokenEquals, false},
	{"!=", TokenNotEqual, false},
	{"<<", TokenLShift, false},
	{">>", TokenRShift, false},
	{"||", TokenLogicalOr, false},
	{"&&", TokenLogicalAnd, false},
	{"++", TokenIncrement, false},
	{"--", TokenDecrement, false},
	{"+=", TokenAddAssign, false},
	{"-=", TokenSubAssign, false},
	{"*=", TokenMulAssign, false},
	{"/=", TokenDivAssign, false},
	{"%=", TokenModAssign, false},
	{"&=", TokenAndAssign, false},
	{"|=", TokenOrAssign, false},
	{"^=", TokenXorAssign, false},
	{"->", TokenPointerDeref, false},
	{"<", TokenLessThan, false},
	{">", TokenGreaterThan, false},
	{"+", TokenPlus, false},
	{"-", TokenMinus, false},
	{"*", TokenMul, false},
	{"/", TokenDiv, false},
	{"%", TokenMod, false},
	{"~", TokenNot, false},
	{"^", TokenXor, false},
	{"|", TokenOr, false},
	{"&", TokenAnd, false},
	{"!", TokenLogicalNot, false},
	{"=", TokenAssign, false},
	{"(", TokenLeftParen, false},
	{")", TokenRightParen, false},
	{"[", TokenLeftBracket, false},
	{"]", TokenRightBracket, false},
	{"{", TokenLeftCurlyBrace, false},
	{"}", TokenRightCurlyBrace, false},
	{";", TokenSemicolon, false},
	{":", TokenColon, false},
	{",", TokenComma, false},
	{".", TokenPeriod, false},
	{"?", TokenQuestion, false},

	{"auto", TokenAuto, true},
	{"break", TokenBreak, true},
	{"case", TokenCase, true},
	{"char", TokenChar, true},
	{"const", TokenConst, true},
	{"continue", TokenContinue, true},
	{"default", TokenDefault, true},
	{"do", TokenDo, true},
	{"double", TokenDouble, true},
	{"else", TokenElse, true},
	{"enum", TokenEnum, true},
	{"extern", TokenExtern, true},
	{"float", TokenFloat, true},
	{"for", TokenFor, true},
	{"goto", TokenGoto, true},
	{"if", TokenIf, true},
	{"inline", TokenInline, true},
	{"int", TokenInt, true},
	{"long", TokenLong, true},
	{"register", TokenRegister, true},
	{"restrict", TokenRestrict, true},
	{"return", TokenReturn, true},
	{"short", TokenShort, true},
	{"signed", TokenSigned, true},
	{"sizeof", TokenSizeof, true},
	{"static", TokenStatic, true},
	{"struct", TokenStruct, true},
	{"switch", TokenSwitch, true},
	{"typedef", TokenTypedef, true},
	{"union", TokenUnion, true},
	{"unsigned", TokenUnsigned, true},
	{"void", TokenVoid, true},
	{"volatile", TokenVolatile, true},
	{"while", TokenWhile, true},
	{"_Bool", TokenBool, true},
	{"_Complex", TokenComplex, true},
	{"_Imaginary", TokenImaginary, true},
}

// LookupLiteral returns the kind spelled by text in the literal table.
func LookupLiteral(text string) (TokenKind, bool) {
	for _, lit := range literals {
		if lit.text == text {
			return lit.kind, true
		}
	}
	return TokenInvalid, false
}

// invalidIdentifierChars may never appear inside an identifier.
const invalidIdentifierChars = " \t\r\n+-*/%<>=!~^|&()[]{};:,.?'\"\\#@`"

func isIdentifierChar(r rune) bool {
	for _, c := range invalidIdentifierChars {
		if c == r {
			return false
		}
	}
	return true
}
