package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/ucc/lex"
)

// UnexpectedTokenError reports a token no live derivation could accept.
// EndOfInput is set when the input could have ended before Token.
type UnexpectedTokenError struct {
	Token      lex.Token
	Expected   []lex.TokenKind
	EndOfInput bool
}

func (e *UnexpectedTokenError) Error() string {
	msg := fmt.Sprintf("line %d, col %d: unexpected %s", e.Token.Pos.Line, e.Token.Pos.Column, e.Token)
	expected := kindNames(e.Expected)
	if e.EndOfInput {
		expected = append(expected, "end of input")
	}
	if len(expected) > 0 {
		msg += ", expected " + strings.Join(expected, ", ")
	}
	return msg
}

// IncompleteError reports that the input ended before any derivation
// completed.
type IncompleteError struct {
	Pos      lex.Position
	Expected []lex.TokenKind
}

func (e *IncompleteError) Error() string {
	msg := fmt.Sprintf("line %d, col %d: unexpected end of input", e.Pos.Line, e.Pos.Column)
	if len(e.Expected) > 0 {
		msg += ", expected " + kindList(e.Expected)
	}
	return msg
}

// AmbiguousError reports that more than one distinct tree was derived.
type AmbiguousError struct {
	Trees []*Node
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous input: %d distinct parse trees", len(e.Trees))
}

// StateLimitError reports that exploring the input needed more states
// than the parser was allowed.
type StateLimitError struct {
	Limit int
	Pos   lex.Position
}

func (e *StateLimitError) Error() string {
	return fmt.Sprintf("line %d, col %d: more than %d parser states", e.Pos.Line, e.Pos.Column, e.Limit)
}

func kindNames(kinds []lex.TokenKind) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

func kindList(kinds []lex.TokenKind) string {
	return strings.Join(kindNames(kinds), ", ")
}

// ErrorPosition returns the source position carried by a lex or parse
// error.
func ErrorPosition(err error) (lex.Position, bool) {
	var (
		lexErr        *lex.Error
		unexpectedErr *UnexpectedTokenError
		incompleteErr *IncompleteError
		limitErr      *StateLimitError
	)
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Pos, true
	case errors.As(err, &unexpectedErr):
		return unexpectedErr.Token.Pos, true
	case errors.As(err, &incompleteErr):
		return incompleteErr.Pos, true
	case errors.As(err, &limitErr):
		return limitErr.Pos, true
	}
	return lex.Position{}, false
}
