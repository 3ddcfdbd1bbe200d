package grammar

import (
	"fmt"
	"strings"

	"github.com/dhamidi/ucc/lex"
)

// classTerminals are the token classes that carry a payload and are
// written by name instead of by spelling.
var classTerminals = map[string]lex.TokenKind{
	"Identifier":     lex.TokenIdentifier,
	"NumericLiteral": lex.TokenNumber,
	"StringLiteral":  lex.TokenString,
}

// Builder assembles a rule table from string symbols. A quoted symbol
// such as `"+"` is the terminal with that spelling, Identifier,
// NumericLiteral and StringLiteral are token classes, and anything else
// names a nonterminal.
type Builder struct {
	start NonTerminal
	rules []Rule
	err   error
}

func NewBuilder(start NonTerminal) *Builder {
	return &Builder{start: start}
}

// Rule adds one alternative for lhs. With no symbols the alternative is
// empty.
func (b *Builder) Rule(lhs NonTerminal, symbols ...string) *Builder {
	if b.err != nil {
		return b
	}
	rule := Rule{LHS: lhs, RHS: make([]Symbol, 0, len(symbols))}
	for _, s := range symbols {
		sym, err := ParseSymbol(s)
		if err != nil {
			b.err = fmt.Errorf("rule %s: %w", lhs, err)
			return b
		}
		rule.RHS = append(rule.RHS, sym)
	}
	b.rules = append(b.rules, rule)
	return b
}

// Alternatives adds one rule per alternative, each split on whitespace.
func (b *Builder) Alternatives(lhs NonTerminal, alts ...string) *Builder {
	for _, alt := range alts {
		b.Rule(lhs, strings.Fields(alt)...)
	}
	return b
}

func (b *Builder) Build() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.start, b.rules)
}

// ParseSymbol converts the textual form of a symbol.
func ParseSymbol(s string) (Symbol, error) {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		text := s[1 : len(s)-1]
		kind, ok := lex.LookupLiteral(text)
		if !ok {
			return Symbol{}, fmt.Errorf("unknown terminal %s", s)
		}
		return T(kind), nil
	}
	if kind, ok := classTerminals[s]; ok {
		return T(kind), nil
	}
	if s == "" || strings.ContainsAny(s, "\" \t\n") {
		return Symbol{}, fmt.Errorf("invalid nonterminal name %q", s)
	}
	return N(NonTerminal(s)), nil
}
