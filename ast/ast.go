// Package ast reads the top level of a C parse tree into declarations.
// Function bodies and initializers stay parse trees.
package ast

import (
	"fmt"
	"strings"

	"github.com/dhamidi/ucc/grammar"
	"github.com/dhamidi/ucc/lex"
	"github.com/dhamidi/ucc/parse"
)

// Root is a translation unit.
type Root struct {
	Statements []TopStatement
}

// TopStatement is one of the declaration types below.
type TopStatement interface {
	topStatement()
	String() string
}

// Type is a list of specifiers followed by a pointer depth. Tag names the
// struct, union or enum among the specifiers, if any.
type Type struct {
	Specifiers []lex.TokenKind
	Tag        string
	Pointers   int
}

func (t Type) String() string {
	var parts []string
	for _, spec := range t.Specifiers {
		s := spec.String()
		if t.Tag != "" && (spec == lex.TokenStruct || spec == lex.TokenUnion || spec == lex.TokenEnum) {
			s += " " + t.Tag
		}
		parts = append(parts, s)
	}
	out := strings.Join(parts, " ")
	if t.Pointers > 0 {
		out += " " + strings.Repeat("*", t.Pointers)
	}
	return out
}

// Param is a function parameter. Name is empty for abstract parameters.
type Param struct {
	Type Type
	Name string
}

func (p Param) String() string {
	if p.Name == "" {
		return p.Type.String()
	}
	return p.Type.String() + " " + p.Name
}

type ForwardDeclaration struct {
	Type   Type
	Name   string
	Params []Param
}

type FunctionDefinition struct {
	Type   Type
	Name   string
	Params []Param
	Body   *parse.Node
}

// Declaration declares a variable. Init is the Initializer node or nil.
type Declaration struct {
	Type   Type
	Name   string
	Arrays int
	Init   *parse.Node
}

type Typedef struct {
	Type   Type
	Name   string
	Arrays int
}

// TypeDeclaration introduces a struct, union or enum without declaring a
// variable.
type TypeDeclaration struct {
	Type Type
}

type EmptyStatement struct{}

func (*ForwardDeclaration) topStatement() {}
func (*FunctionDefinition) topStatement() {}
func (*Declaration) topStatement()        {}
func (*Typedef) topStatement()            {}
func (*TypeDeclaration) topStatement()    {}
func (*EmptyStatement) topStatement()     {}

func (d *ForwardDeclaration) String() string {
	return fmt.Sprintf("declare %s %s(%s)", d.Type, d.Name, joinParams(d.Params))
}

func (d *FunctionDefinition) String() string {
	return fmt.Sprintf("define %s %s(%s)", d.Type, d.Name, joinParams(d.Params))
}

func (d *Declaration) String() string {
	s := fmt.Sprintf("var %s %s%s", d.Type, d.Name, strings.Repeat("[]", d.Arrays))
	if d.Init != nil {
		s += " = ..."
	}
	return s
}

func (d *Typedef) String() string {
	return fmt.Sprintf("typedef %s %s%s", d.Type, d.Name, strings.Repeat("[]", d.Arrays))
}

func (d *TypeDeclaration) String() string {
	return "type " + d.Type.String()
}

func (*EmptyStatement) String() string { return "empty" }

func joinParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// ShapeError reports a parse tree that does not have the shape the C
// grammar produces.
type ShapeError struct {
	Node *parse.Node
	Want string
}

func (e *ShapeError) Error() string {
	got := "nil"
	if e.Node != nil {
		if e.Node.IsTerminal() {
			got = "token " + e.Node.Token.String()
		} else {
			got = string(e.Node.NonTerminal)
		}
		if pos, ok := e.Node.Pos(); ok {
			return fmt.Sprintf("%s: expected %s, found %s", pos, e.Want, got)
		}
	}
	return fmt.Sprintf("expected %s, found %s", e.Want, got)
}

// Build reads the declarations of a tree produced by the grammar from
// grammar.C.
func Build(root *parse.Node) (*Root, error) {
	if err := expectShape(root, "Start", 1); err != nil {
		return nil, err
	}
	stmts, err := readTopStatements(root.Child(0))
	if err != nil {
		return nil, err
	}
	return &Root{Statements: stmts}, nil
}

func expectShape(n *parse.Node, nt grammar.NonTerminal, lengths ...int) error {
	if n == nil || n.IsTerminal() || n.NonTerminal != nt {
		return &ShapeError{Node: n, Want: string(nt)}
	}
	if len(lengths) == 0 {
		return nil
	}
	for _, l := range lengths {
		if len(n.Children) == l {
			return nil
		}
	}
	return &ShapeError{Node: n, Want: fmt.Sprintf("%s with %v children", nt, lengths)}
}

func expectToken(n *parse.Node, kind lex.TokenKind) (*lex.Token, error) {
	if n == nil || n.Token == nil || n.Token.Kind != kind {
		return nil, &ShapeError{Node: n, Want: kind.String()}
	}
	return n.Token, nil
}

// readTopStatements walks the right-nested TopStatements chain.
func readTopStatements(n *parse.Node) ([]TopStatement, error) {
	var stmts []TopStatement
	for {
		if err := expectShape(n, "TopStatements", 0, 2); err != nil {
			return nil, err
		}
		if len(n.Children) == 0 {
			return stmts, nil
		}
		stmt, err := readTopStatement(n.Child(0))
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		n = n.Child(1)
	}
}

func readTopStatement(n *parse.Node) (TopStatement, error) {
	if err := expectShape(n, "TopStatement", 1, 2); err != nil {
		return nil, err
	}
	child := n.Child(0)
	if child.IsTerminal() {
		if _, err := expectToken(child, lex.TokenSemicolon); err != nil {
			return nil, err
		}
		return &EmptyStatement{}, nil
	}
	if len(n.Children) == 2 {
		if _, err := expectToken(n.Child(1), lex.TokenSemicolon); err != nil {
			return nil, err
		}
	}

	switch child.NonTerminal {
	case "Declaration":
		return readDeclaration(child)
	case "ForwardDeclaration":
		if err := expectShape(child, "ForwardDeclaration", 1); err != nil {
			return nil, err
		}
		typ, name, params, err := readFunctionHeader(child.Child(0))
		if err != nil {
			return nil, err
		}
		return &ForwardDeclaration{Type: typ, Name: name, Params: params}, nil
	case "FunctionDefinition":
		if err := expectShape(child, "FunctionDefinition", 2); err != nil {
			return nil, err
		}
		typ, name, params, err := readFunctionHeader(child.Child(0))
		if err != nil {
			return nil, err
		}
		body := child.Child(1)
		if err := expectShape(body, "Block"); err != nil {
			return nil, err
		}
		return &FunctionDefinition{Type: typ, Name: name, Params: params, Body: body}, nil
	case "Typedef":
		return readTypedef(child)
	case "TypeDeclaration":
		if err := expectShape(child, "TypeDeclaration", 1); err != nil {
			return nil, err
		}
		typ, err := readType(child.Child(0))
		if err != nil {
			return nil, err
		}
		return &TypeDeclaration{Type: typ}, nil
	}
	return nil, &ShapeError{Node: child, Want: "top-level declaration"}
}

func readDeclaration(n *parse.Node) (*Declaration, error) {
	if err := expectShape(n, "Declaration", 3); err != nil {
		return nil, err
	}
	typ, name, err := readTypeWithIdentifier(n.Child(0))
	if err != nil {
		return nil, err
	}
	arrays, err := countArrays(n.Child(1))
	if err != nil {
		return nil, err
	}
	d := &Declaration{Type: typ, Name: name, Arrays: arrays}

	init := n.Child(2)
	if err := expectShape(init, "Init", 0, 2); err != nil {
		return nil, err
	}
	if len(init.Children) == 2 {
		d.Init = init.Child(1)
		if err := expectShape(d.Init, "Initializer"); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func readTypedef(n *parse.Node) (*Typedef, error) {
	if err := expectShape(n, "Typedef", 3); err != nil {
		return nil, err
	}
	if _, err := expectToken(n.Child(0), lex.TokenTypedef); err != nil {
		return nil, err
	}
	typ, name, err := readTypeWithIdentifier(n.Child(1))
	if err != nil {
		return nil, err
	}
	arrays, err := countArrays(n.Child(2))
	if err != nil {
		return nil, err
	}
	return &Typedef{Type: typ, Name: name, Arrays: arrays}, nil
}

func readFunctionHeader(n *parse.Node) (Type, string, []Param, error) {
	if err := expectShape(n, "FunctionHeader", 4); err != nil {
		return Type{}, "", nil, err
	}
	typ, name, err := readTypeWithIdentifier(n.Child(0))
	if err != nil {
		return Type{}, "", nil, err
	}
	params, err := readParameterList(n.Child(2))
	if err != nil {
		return Type{}, "", nil, err
	}
	return typ, name, params, nil
}

// readParameterList returns nil for both () and (void).
func readParameterList(n *parse.Node) ([]Param, error) {
	if err := expectShape(n, "ParameterList", 0, 1); err != nil {
		return nil, err
	}
	if len(n.Children) == 0 {
		return nil, nil
	}

	// Parameters is left-recursive: the last parameter is outermost.
	var params []Param
	for p := n.Child(0); ; {
		if err := expectShape(p, "Parameters", 1, 3); err != nil {
			return nil, err
		}
		param, err := readParameter(p.Child(len(p.Children) - 1))
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if len(p.Children) == 1 {
			break
		}
		p = p.Child(0)
	}
	for i, j := 0, len(params)-1; i < j; i, j = i+1, j-1 {
		params[i], params[j] = params[j], params[i]
	}

	if len(params) == 1 && params[0].Name == "" && params[0].Type.isVoid() {
		return nil, nil
	}
	return params, nil
}

func readParameter(n *parse.Node) (Param, error) {
	if err := expectShape(n, "Parameter", 1, 2); err != nil {
		return Param{}, err
	}
	if len(n.Children) == 1 {
		typ, err := readType(n.Child(0))
		return Param{Type: typ}, err
	}
	typ, name, err := readTypeWithIdentifier(n.Child(0))
	if err != nil {
		return Param{}, err
	}
	arrays, err := countArrays(n.Child(1))
	if err != nil {
		return Param{}, err
	}
	// An array parameter is a pointer.
	typ.Pointers += arrays
	return Param{Type: typ, Name: name}, nil
}

func readTypeWithIdentifier(n *parse.Node) (Type, string, error) {
	if err := expectShape(n, "TypeWithIdentifier", 2); err != nil {
		return Type{}, "", err
	}
	typ, err := readType(n.Child(0))
	if err != nil {
		return Type{}, "", err
	}
	ident, err := expectToken(n.Child(1), lex.TokenIdentifier)
	if err != nil {
		return Type{}, "", err
	}
	return typ, ident.Literal, nil
}

func readType(n *parse.Node) (Type, error) {
	if err := expectShape(n, "Type", 2); err != nil {
		return Type{}, err
	}
	var typ Type
	if err := readSpecifiers(n.Child(0), &typ); err != nil {
		return Type{}, err
	}
	pointers, err := countPointers(n.Child(1))
	if err != nil {
		return Type{}, err
	}
	typ.Pointers = pointers
	return typ, nil
}

func readSpecifiers(n *parse.Node, typ *Type) error {
	if err := expectShape(n, "Specifiers", 1, 2); err != nil {
		return err
	}
	if len(n.Children) == 2 {
		if err := readSpecifiers(n.Child(0), typ); err != nil {
			return err
		}
	}
	spec := n.Child(len(n.Children) - 1)
	if err := expectShape(spec, "Specifier", 1); err != nil {
		return err
	}
	child := spec.Child(0)
	if child.IsTerminal() {
		typ.Specifiers = append(typ.Specifiers, child.Token.Kind)
		return nil
	}
	// StructType, UnionType and EnumType all start with their keyword,
	// optionally followed by the tag.
	kw := child.Child(0)
	if kw == nil || !kw.IsTerminal() {
		return &ShapeError{Node: child, Want: "struct, union or enum keyword"}
	}
	typ.Specifiers = append(typ.Specifiers, kw.Token.Kind)
	if tag := child.Child(1); tag != nil && tag.IsTerminal() && tag.Token.Kind == lex.TokenIdentifier {
		typ.Tag = tag.Token.Literal
	}
	return nil
}

func countPointers(n *parse.Node) (int, error) {
	count := 0
	for {
		if err := expectShape(n, "Pointers", 0, 2, 3); err != nil {
			return 0, err
		}
		if len(n.Children) == 0 {
			return count, nil
		}
		count++
		n = n.Child(len(n.Children) - 1)
	}
}

func countArrays(n *parse.Node) (int, error) {
	count := 0
	for {
		if err := expectShape(n, "Arrays", 0, 3, 4); err != nil {
			return 0, err
		}
		if len(n.Children) == 0 {
			return count, nil
		}
		count++
		n = n.Child(len(n.Children) - 1)
	}
}

func (t Type) isVoid() bool {
	return len(t.Specifiers) == 1 && t.Specifiers[0] == lex.TokenVoid && t.Pointers == 0
}
