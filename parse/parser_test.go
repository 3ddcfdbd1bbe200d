package parse

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/ucc/grammar"
	"github.com/dhamidi/ucc/lex"
)

func build(t *testing.T, b *grammar.Builder) *grammar.Grammar {
	t.Helper()
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func exprGrammar(t *testing.T) *grammar.Grammar {
	return build(t, grammar.NewBuilder("Start").
		Alternatives("Start", "Expr").
		Alternatives("Expr", `Expr "+" Term`, "Term").
		Alternatives("Term", "Identifier"))
}

func cGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g, err := grammar.C()
	require.NoError(t, err)
	return g
}

func TestLeftRecursionIsLeftAssociative(t *testing.T) {
	tree, err := ParseString(exprGrammar(t), "a+b+c")
	require.NoError(t, err)
	assert.Equal(t,
		"(Start (Expr (Expr (Expr (Term a)) + (Term b)) + (Term c)))",
		tree.Sexpr(),
	)
}

func TestSingleTerm(t *testing.T) {
	tree, err := ParseString(exprGrammar(t), "a")
	require.NoError(t, err)
	assert.Equal(t, "(Start (Expr (Term a)))", tree.Sexpr())
}

func TestIndirectLeftRecursion(t *testing.T) {
	g := build(t, grammar.NewBuilder("Start").
		Alternatives("Start", "A").
		Alternatives("A", `B "+"`, "Identifier").
		Alternatives("B", `A "-"`, "NumericLiteral"))

	tests := []struct {
		src  string
		want string
	}{
		{"a", "(Start (A a))"},
		{"a - +", "(Start (A (B (A a) -) +))"},
		{"1 +", "(Start (A (B 1) +))"},
		{"1 + - +", "(Start (A (B (A (B 1) +) -) +))"},
		{"a - + - +", "(Start (A (B (A (B (A a) -) +) -) +))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, err := ParseString(g, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tree.Sexpr())
		})
	}
}

func TestNullableAlternatives(t *testing.T) {
	g := build(t, grammar.NewBuilder("Start").
		Alternatives("Start", "List").
		Alternatives("List", "", `Identifier Sep List`).
		Alternatives("Sep", "", `","`))

	tree, err := ParseString(g, "")
	require.NoError(t, err)
	assert.Equal(t, "(Start (List))", tree.Sexpr())

	tree, err = ParseString(g, "a, b")
	require.NoError(t, err)
	assert.Equal(t, "(Start (List a (Sep ,) (List b (Sep) (List))))", tree.Sexpr())
}

func TestAmbiguity(t *testing.T) {
	g := build(t, grammar.NewBuilder("Start").
		Alternatives("Start", "E").
		Alternatives("E", `E "+" E`, "Identifier"))

	_, err := ParseString(g, "a+b+c")
	var ambiguous *AmbiguousError
	require.True(t, errors.As(err, &ambiguous), "got %v", err)
	require.Len(t, ambiguous.Trees, 2)
	assert.NotEqual(t, ambiguous.Trees[0].Sexpr(), ambiguous.Trees[1].Sexpr())

	tree, err := ParseString(g, "a+b+c", WithAmbiguity(AmbiguityFirst))
	require.NoError(t, err)
	assert.Equal(t, ambiguous.Trees[0].Sexpr(), tree.Sexpr())

	tree, err = ParseString(g, "a+b")
	require.NoError(t, err)
	assert.Equal(t, "(Start (E (E a) + (E b)))", tree.Sexpr())
}

func TestUnexpectedToken(t *testing.T) {
	_, err := ParseString(exprGrammar(t), "a b")
	var unexpected *UnexpectedTokenError
	require.True(t, errors.As(err, &unexpected), "got %v", err)
	assert.Equal(t, "b", unexpected.Token.Literal)
	assert.Equal(t, []lex.TokenKind{lex.TokenPlus}, unexpected.Expected)
	assert.True(t, unexpected.EndOfInput)
	assert.Equal(t, "line 1, col 3: unexpected b, expected +, end of input", err.Error())
}

func TestUnexpectedTokenAfterCompleteInput(t *testing.T) {
	g := build(t, grammar.NewBuilder("Start").
		Alternatives("Start", "Identifier"))

	_, err := ParseString(g, "a b")
	var unexpected *UnexpectedTokenError
	require.True(t, errors.As(err, &unexpected), "got %v", err)
	assert.Empty(t, unexpected.Expected)
	assert.True(t, unexpected.EndOfInput)
	assert.Equal(t, "line 1, col 3: unexpected b, expected end of input", err.Error())

	_, err = ParseString(g, "1")
	require.True(t, errors.As(err, &unexpected), "got %v", err)
	assert.False(t, unexpected.EndOfInput)
	assert.Equal(t, "line 1, col 1: unexpected int(1), expected Identifier", err.Error())
}

// Recursion behind a nullable prefix is only followed once a token has
// been consumed in front of it.
func TestRecursionBehindNullablePrefix(t *testing.T) {
	g := build(t, grammar.NewBuilder("Start").
		Alternatives("Start", "A").
		Alternatives("A", `O A "*"`, `"+"`).
		Alternatives("O", "", `"-"`))

	tree, err := ParseString(g, "- + *")
	require.NoError(t, err)
	assert.Equal(t, "(Start (A (O -) (A +) *))", tree.Sexpr())

	_, err = ParseString(g, "+ *")
	var unexpected *UnexpectedTokenError
	require.True(t, errors.As(err, &unexpected), "got %v", err)
	assert.Equal(t, lex.TokenMul, unexpected.Token.Kind)
	assert.True(t, unexpected.EndOfInput)
}

func TestIncomplete(t *testing.T) {
	_, err := ParseString(exprGrammar(t), "a +")
	var incomplete *IncompleteError
	require.True(t, errors.As(err, &incomplete), "got %v", err)
	assert.Equal(t, []lex.TokenKind{lex.TokenIdentifier}, incomplete.Expected)
	assert.Equal(t, lex.Position{Line: 1, Column: 4}, incomplete.Pos)

	pos, ok := ErrorPosition(err)
	assert.True(t, ok)
	assert.Equal(t, incomplete.Pos, pos)
}

func TestLexErrorsPassThrough(t *testing.T) {
	_, err := ParseString(exprGrammar(t), "a + 'bc'")
	var lexErr *lex.Error
	require.True(t, errors.As(err, &lexErr), "got %v", err)
	assert.Equal(t, lex.ErrInvalidLiteral, lexErr.Kind)
	assert.Equal(t, lex.Position{Line: 1, Column: 5}, lexErr.Pos)
}

func TestStateLimit(t *testing.T) {
	_, err := ParseString(cGrammar(t), "int main() { return 1 + 2; }", WithMaxStates(10))
	var limit *StateLimitError
	require.True(t, errors.As(err, &limit), "got %v", err)
	assert.Equal(t, 10, limit.Limit)
}

func TestExponentialAmbiguityIsBounded(t *testing.T) {
	g := build(t, grammar.NewBuilder("Start").
		Alternatives("Start", "E").
		Alternatives("E", `E E`, "Identifier"))

	src := ""
	for range 40 {
		src += "a "
	}
	_, err := ParseString(g, src, WithMaxStates(5000))
	var limit *StateLimitError
	assert.True(t, errors.As(err, &limit), "got %v", err)
}

func TestCompactionKeepsTree(t *testing.T) {
	g := cGrammar(t)
	src := `
int add(int a, int b) { return a + b; }
int main(void) {
	int total = 0;
	for (int i = 0; i < 10; i++) {
		total += add(i, i * 2);
	}
	return total;
}
`
	want, err := ParseString(g, src)
	require.NoError(t, err)

	r := &run{Parser: New(g), arena: newArena(), compactSize: 32}
	got, err := r.parse(lex.NewString(src))
	require.NoError(t, err)
	assert.True(t, Equal(want, got))
}

func TestNodeHelpers(t *testing.T) {
	tree, err := ParseString(exprGrammar(t), "a + b")
	require.NoError(t, err)

	expr := tree.Child(0)
	require.NotNil(t, expr)
	assert.Nil(t, tree.Child(1))
	pos, ok := expr.Pos()
	assert.True(t, ok)
	assert.Equal(t, lex.Position{Line: 1, Column: 1}, pos)

	toks := tree.Tokens()
	require.Len(t, toks, 3)
	assert.Equal(t, lex.TokenPlus, toks[1].Kind)

	assert.Equal(t, "Start\n  Expr\n    Expr\n      Term\n        a @1:1\n    + @1:3\n    Term\n      b @1:5\n", tree.String())
}

func TestMarshalJSON(t *testing.T) {
	tree, err := ParseString(exprGrammar(t), "a")
	require.NoError(t, err)

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind": "Start",
		"children": [{
			"kind": "Expr",
			"children": [{
				"kind": "Term",
				"children": [{
					"kind": "Token",
					"token": {"kind": "Identifier", "text": "a", "position": {"line": 1, "column": 1}}
				}]
			}]
		}]
	}`, string(data))
}

func TestAmbiguityPolicyNames(t *testing.T) {
	p, ok := ParseAmbiguityPolicy("first")
	assert.True(t, ok)
	assert.Equal(t, AmbiguityFirst, p)
	assert.Equal(t, "error", AmbiguityError.String())
	_, ok = ParseAmbiguityPolicy("guess")
	assert.False(t, ok)
}
