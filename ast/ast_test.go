package ast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/ucc/grammar"
	"github.com/dhamidi/ucc/lex"
	"github.com/dhamidi/ucc/parse"
)

func build(t *testing.T, src string) *Root {
	t.Helper()
	tree, err := parse.ParseString(grammar.MustC(), src)
	require.NoError(t, err)
	root, err := Build(tree)
	require.NoError(t, err)
	return root
}

func TestForwardDeclarations(t *testing.T) {
	root := build(t, "int a(); int b(); \n\n")
	intType := Type{Specifiers: []lex.TokenKind{lex.TokenInt}}
	assert.Equal(t, []TopStatement{
		&ForwardDeclaration{Type: intType, Name: "a"},
		&ForwardDeclaration{Type: intType, Name: "b"},
	}, root.Statements)
}

func TestEmptyUnit(t *testing.T) {
	root := build(t, "")
	assert.Empty(t, root.Statements)
}

func TestTopStatements(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{";", "empty"},
		{"unsigned long long counter;", "var unsigned long long counter"},
		{"char *name = \"ucc\";", "var char * name = ..."},
		{"int grid[3][4];", "var int grid[][]"},
		{"int ** const p;", "var int ** p"},
		{"void f(int, char *);", "declare void f(int, char *)"},
		{"int main(void) { return 0; }", "define int main()"},
		{"int add(int a, int b) { return a + b; }", "define int add(int a, int b)"},
		{"int sum(int xs[], int n);", "declare int sum(int * xs, int n)"},
		{"typedef unsigned long size;", "typedef unsigned long size"},
		{"typedef char name[16];", "typedef char name[]"},
		{"struct point { int x; int y; };", "type struct point"},
		{"struct point origin;", "var struct point origin"},
		{"static const struct point *first;", "var static const struct point * first"},
		{"enum color { RED, GREEN };", "type enum color"},
		{"union { int i; float f; } u;", "var union u"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			root := build(t, tt.src)
			require.Len(t, root.Statements, 1)
			assert.Equal(t, tt.want, root.Statements[0].String())
		})
	}
}

func TestFunctionBody(t *testing.T) {
	root := build(t, "int main() { return 42; }")
	require.Len(t, root.Statements, 1)
	def, ok := root.Statements[0].(*FunctionDefinition)
	require.True(t, ok)
	assert.Equal(t, "main", def.Name)
	require.NotNil(t, def.Body)
	assert.Equal(t, grammar.NonTerminal("Block"), def.Body.NonTerminal)

	var kinds []lex.TokenKind
	for _, tok := range def.Body.Tokens() {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []lex.TokenKind{
		lex.TokenLeftCurlyBrace, lex.TokenReturn, lex.TokenNumber, lex.TokenSemicolon, lex.TokenRightCurlyBrace,
	}, kinds)
}

func TestOrderIsPreserved(t *testing.T) {
	root := build(t, "int a; int f(); int b; typedef int t;")
	var names []string
	for _, stmt := range root.Statements {
		switch s := stmt.(type) {
		case *Declaration:
			names = append(names, s.Name)
		case *ForwardDeclaration:
			names = append(names, s.Name)
		case *Typedef:
			names = append(names, s.Name)
		}
	}
	assert.Equal(t, []string{"a", "f", "b", "t"}, names)
}

func TestDeclarationInitializer(t *testing.T) {
	root := build(t, "int x = 1 + 2;")
	decl, ok := root.Statements[0].(*Declaration)
	require.True(t, ok)
	require.NotNil(t, decl.Init)
	assert.Equal(t, grammar.NonTerminal("Initializer"), decl.Init.NonTerminal)
	assert.Len(t, decl.Init.Tokens(), 3)
}

func TestUnexpectedShape(t *testing.T) {
	tests := []struct {
		name string
		tree *parse.Node
	}{
		{"nil", nil},
		{"wrong root", &parse.Node{NonTerminal: "Expr"}},
		{"token root", &parse.Node{Token: &lex.Token{Kind: lex.TokenSemicolon}}},
		{"broken chain", &parse.Node{NonTerminal: "Start", Children: []*parse.Node{
			{NonTerminal: "TopStatements", Children: []*parse.Node{
				{NonTerminal: "Statement"},
				{NonTerminal: "TopStatements"},
			}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.tree)
			var shape *ShapeError
			assert.True(t, errors.As(err, &shape), "got %v", err)
		})
	}
}
