package lex

import "fmt"

// ErrorKind classifies a lex error.
type ErrorKind int

const (
	ErrUnfinished ErrorKind = iota
	ErrUnfinishedEscape
	ErrUnclosedString
	ErrInvalidEscape
	ErrInvalidLiteral
	ErrInvalidSize
	ErrInvalidCharacter
	ErrEmptyNumericLiteral
	ErrLargeNumericLiteral
)

var errorKindNames = map[ErrorKind]string{
	ErrUnfinished:          "unfinished literal",
	ErrUnfinishedEscape:    "unfinished escape sequence",
	ErrUnclosedString:      "unclosed string literal",
	ErrInvalidEscape:       "invalid escape sequence",
	ErrInvalidLiteral:      "invalid literal",
	ErrInvalidSize:         "invalid numeric size",
	ErrInvalidCharacter:    "invalid character",
	ErrEmptyNumericLiteral: "empty numeric literal",
	ErrLargeNumericLiteral: "numeric literal too large",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown lex error"
}

// Error is a lex error. Pos is where the failing token started, not the
// character at which the failure was noticed.
type Error struct {
	Kind ErrorKind
	Pos  Position
	// Text is the fragment involved: the partial literal, the bad escape,
	// or the string decoded before an unclosed string ended.
	Text string
	// Size is the rejected width in bits for ErrInvalidSize.
	Size int
	// Char is the offending character for ErrInvalidCharacter.
	Char rune
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	switch e.Kind {
	case ErrInvalidSize:
		msg = fmt.Sprintf("%s: %d bits long", msg, e.Size)
	case ErrInvalidCharacter:
		msg = fmt.Sprintf("%s: %q", msg, e.Char)
	default:
		if e.Text != "" {
			msg = fmt.Sprintf("%s: %q", msg, e.Text)
		}
	}
	return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, msg)
}
