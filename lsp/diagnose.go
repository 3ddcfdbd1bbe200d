package lsp

import (
	"fmt"
	"strings"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/ucc/grammar"
	"github.com/dhamidi/ucc/lex"
	"github.com/dhamidi/ucc/parse"
)

const diagnosticSource = "ucc"

// Diagnose parses text and reports the first lex or parse error as a
// single diagnostic. A document that parses has no diagnostics.
func Diagnose(text string, g *grammar.Grammar, opts ...parse.Option) []protocol.Diagnostic {
	_, err := parse.ParseString(g, text, opts...)
	if err == nil {
		return []protocol.Diagnostic{}
	}

	msg := err.Error()
	pos, ok := parse.ErrorPosition(err)
	if ok {
		msg = strings.TrimPrefix(msg, fmt.Sprintf("line %d, col %d: ", pos.Line, pos.Column))
	} else {
		pos = lex.Position{Line: 1, Column: 1}
	}

	start := toProtocolPosition(text, pos)
	end := start
	end.Character++

	severity := protocol.DiagnosticSeverityError
	source := diagnosticSource
	return []protocol.Diagnostic{{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	}}
}

// toProtocolPosition converts a 1-based line and character column into
// the 0-based line and UTF-16 offset LSP clients expect.
func toProtocolPosition(text string, pos lex.Position) protocol.Position {
	line := max(pos.Line-1, 0)
	lines := strings.Split(text, "\n")
	character := 0
	if line < len(lines) {
		col := 1
		for _, r := range lines[line] {
			if col >= pos.Column {
				break
			}
			character += utf16.RuneLen(r)
			col++
		}
		// Positions past the end of the line (end of input) keep counting
		// one unit per column.
		if col < pos.Column {
			character += pos.Column - col
		}
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(character),
	}
}
