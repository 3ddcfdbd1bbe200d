package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/ucc/lex"
)

// EBNF renders the table in the notation read by golang.org/x/exp/ebnf.
// Productions follow declaration order. The notation has no empty
// alternative, so a nonterminal that derives ε has its other
// alternatives wrapped in an option. Token classes become productions of
// their own that expand to a placeholder token.
func (g *Grammar) EBNF() string {
	var b strings.Builder
	var classes []lex.TokenKind
	seen := map[lex.TokenKind]bool{}

	for _, nt := range g.order {
		var alts []string
		optional := false
		for _, ri := range g.alts[nt] {
			r := g.rules[ri]
			if len(r.RHS) == 0 {
				optional = true
				continue
			}
			parts := make([]string, len(r.RHS))
			for i, sym := range r.RHS {
				switch {
				case !sym.IsTerminal():
					parts[i] = string(sym.name)
				case isClass(sym.kind):
					parts[i] = sym.kind.String()
					if !seen[sym.kind] {
						seen[sym.kind] = true
						classes = append(classes, sym.kind)
					}
				default:
					parts[i] = strconv.Quote(sym.kind.String())
				}
			}
			alts = append(alts, strings.Join(parts, " "))
		}

		expr := strings.Join(alts, " | ")
		switch {
		case optional && len(alts) == 0:
			expr = `[ "" ]`
		case optional:
			expr = "[ " + expr + " ]"
		}
		fmt.Fprintf(&b, "%s = %s .\n", nt, expr)
	}

	for _, kind := range classes {
		fmt.Fprintf(&b, "%s = %q .\n", kind, strings.ToLower(kind.String()))
	}
	return b.String()
}

func isClass(kind lex.TokenKind) bool {
	switch kind {
	case lex.TokenIdentifier, lex.TokenNumber, lex.TokenString:
		return true
	}
	return false
}
