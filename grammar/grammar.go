// Package grammar holds context-free rule tables and the left-recursion
// index the parser needs to terminate on left-recursive rules.
package grammar

import (
	"fmt"
	"strings"

	"github.com/dhamidi/ucc/lex"
)

// NonTerminal names a grammar production.
type NonTerminal string

// Symbol is one element of a rule's right-hand side: either a terminal
// token class or a nonterminal.
type Symbol struct {
	kind lex.TokenKind
	name NonTerminal
}

// T returns a terminal symbol matching tokens of the given kind.
func T(kind lex.TokenKind) Symbol {
	return Symbol{kind: kind}
}

// N returns a nonterminal symbol.
func N(name NonTerminal) Symbol {
	return Symbol{name: name}
}

func (s Symbol) IsTerminal() bool {
	return s.name == ""
}

// Kind is the token class of a terminal symbol.
func (s Symbol) Kind() lex.TokenKind {
	return s.kind
}

// NonTerminal is the name of a nonterminal symbol.
func (s Symbol) NonTerminal() NonTerminal {
	return s.name
}

func (s Symbol) String() string {
	if s.IsTerminal() {
		switch s.kind {
		case lex.TokenIdentifier, lex.TokenNumber, lex.TokenString:
			return s.kind.String()
		}
		return fmt.Sprintf("%q", s.kind.String())
	}
	return string(s.name)
}

// Rule is a single alternative for its left-hand side. An empty RHS
// derives the empty string.
type Rule struct {
	LHS NonTerminal
	RHS []Symbol
}

func (r Rule) String() string {
	var b strings.Builder
	b.WriteString(string(r.LHS))
	b.WriteString(" ->")
	if len(r.RHS) == 0 {
		b.WriteString(" ε")
	}
	for _, sym := range r.RHS {
		b.WriteByte(' ')
		b.WriteString(sym.String())
	}
	return b.String()
}

// Step is one hop of a left-recursion cycle: the nonterminal and the index
// of the rule whose leftmost symbol leads to the next hop.
type Step struct {
	NonTerminal NonTerminal
	Rule        int
}

// Cycle is a chain of steps that returns to the nonterminal it starts
// from without consuming input.
type Cycle []Step

// Grammar is an immutable rule table. It is safe for concurrent use.
type Grammar struct {
	start    NonTerminal
	rules    []Rule
	order    []NonTerminal
	alts     map[NonTerminal][]int
	nullable map[NonTerminal]bool
	cycles   map[NonTerminal][]Cycle
}

// New validates rules and builds the left-recursion index. Rules keep
// their order; alternatives of a nonterminal are tried in that order.
func New(start NonTerminal, rules []Rule) (*Grammar, error) {
	g := &Grammar{
		start: start,
		rules: make([]Rule, len(rules)),
		alts:  map[NonTerminal][]int{},
	}
	for i, r := range rules {
		if r.LHS == "" {
			return nil, fmt.Errorf("rule %d: empty left-hand side", i)
		}
		g.rules[i] = Rule{LHS: r.LHS, RHS: append([]Symbol(nil), r.RHS...)}
		if _, seen := g.alts[r.LHS]; !seen {
			g.order = append(g.order, r.LHS)
		}
		g.alts[r.LHS] = append(g.alts[r.LHS], i)
	}

	if n := len(g.alts[start]); n != 1 {
		return nil, fmt.Errorf("start symbol %q must have exactly one alternative, has %d", start, n)
	}
	for i, r := range g.rules {
		for _, sym := range r.RHS {
			if sym.IsTerminal() {
				if sym.kind == lex.TokenInvalid {
					return nil, fmt.Errorf("rule %d (%s): invalid terminal", i, r)
				}
				continue
			}
			if _, ok := g.alts[sym.name]; !ok {
				return nil, fmt.Errorf("rule %d (%s): undefined nonterminal %q", i, r, sym.name)
			}
		}
	}

	g.nullable = computeNullable(g.rules)
	g.cycles = findCycles(g)
	return g, nil
}

func (g *Grammar) Start() NonTerminal { return g.start }

// Rules returns a copy of the rule table.
func (g *Grammar) Rules() []Rule {
	out := make([]Rule, len(g.rules))
	copy(out, g.rules)
	return out
}

func (g *Grammar) Rule(i int) Rule { return g.rules[i] }

func (g *Grammar) NumRules() int { return len(g.rules) }

// Alternatives returns the rule indices for nt in declaration order.
func (g *Grammar) Alternatives(nt NonTerminal) []int { return g.alts[nt] }

// Cycles returns the left-recursion cycles recorded against nt.
func (g *Grammar) Cycles(nt NonTerminal) []Cycle { return g.cycles[nt] }

// Nullable reports whether nt can derive the empty string.
func (g *Grammar) Nullable(nt NonTerminal) bool { return g.nullable[nt] }

// NonTerminals returns the defined nonterminals in declaration order.
func (g *Grammar) NonTerminals() []NonTerminal {
	return append([]NonTerminal(nil), g.order...)
}

func computeNullable(rules []Rule) map[NonTerminal]bool {
	nullable := map[NonTerminal]bool{}
	for changed := true; changed; {
		changed = false
		for _, r := range rules {
			if nullable[r.LHS] || !allNullable(r.RHS, nullable) {
				continue
			}
			nullable[r.LHS] = true
			changed = true
		}
	}
	return nullable
}

func allNullable(syms []Symbol, nullable map[NonTerminal]bool) bool {
	for _, sym := range syms {
		if sym.IsTerminal() || !nullable[sym.name] {
			return false
		}
	}
	return true
}
