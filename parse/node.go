package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/ucc/grammar"
	"github.com/dhamidi/ucc/lex"
)

// Node is a parse tree node. Leaves have a non-nil Token; interior nodes
// carry the nonterminal they derive and their ordered children.
type Node struct {
	NonTerminal grammar.NonTerminal
	Token       *lex.Token
	Children    []*Node
}

// IsTerminal returns true if this is a leaf node (token).
func (n *Node) IsTerminal() bool {
	return n.Token != nil
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Pos is the position of the first token under n.
func (n *Node) Pos() (lex.Position, bool) {
	if n.Token != nil {
		return n.Token.Pos, true
	}
	for _, child := range n.Children {
		if pos, ok := child.Pos(); ok {
			return pos, true
		}
	}
	return lex.Position{}, false
}

// Tokens returns the leaves under n in source order.
func (n *Node) Tokens() []lex.Token {
	var out []lex.Token
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Token != nil {
			out = append(out, *n.Token)
			return
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(n)
	return out
}

// String returns a tree representation for debugging.
func (n *Node) String() string {
	var sb strings.Builder
	n.stringIndent(&sb, 0)
	return sb.String()
}

func (n *Node) stringIndent(sb *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		sb.WriteString("  ")
	}
	if n.Token != nil {
		fmt.Fprintf(sb, "%s @%s\n", n.Token, n.Token.Pos)
		return
	}
	sb.WriteString(string(n.NonTerminal))
	sb.WriteByte('\n')
	for _, child := range n.Children {
		child.stringIndent(sb, indent+1)
	}
}

// Sexpr renders n on one line, e.g. (Expr (Expr (Term a)) + (Term b)).
// Leaves print their identifier, value or spelling.
func (n *Node) Sexpr() string {
	var sb strings.Builder
	n.sexpr(&sb)
	return sb.String()
}

func (n *Node) sexpr(sb *strings.Builder) {
	if n.Token != nil {
		sb.WriteString(leafText(*n.Token))
		return
	}
	sb.WriteByte('(')
	sb.WriteString(string(n.NonTerminal))
	for _, child := range n.Children {
		sb.WriteByte(' ')
		child.sexpr(sb)
	}
	sb.WriteByte(')')
}

func leafText(tok lex.Token) string {
	switch tok.Kind {
	case lex.TokenIdentifier:
		return tok.Literal
	case lex.TokenString:
		return strconv.Quote(tok.Literal)
	case lex.TokenNumber:
		if tok.Number.IsFloat() {
			return strconv.FormatFloat(tok.Number.Float, 'g', -1, 64)
		}
		return tok.Number.Big().String()
	}
	return tok.Kind.String()
}

// Equal reports whether two trees have the same shape and the same
// tokens.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if (a.Token == nil) != (b.Token == nil) {
		return false
	}
	if a.Token != nil {
		return *a.Token == *b.Token
	}
	if a.NonTerminal != b.NonTerminal || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
