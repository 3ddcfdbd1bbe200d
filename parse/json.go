package parse

import (
	"encoding/json"

	"github.com/dhamidi/ucc/lex"
)

type jsonNode struct {
	Kind     string      `json:"kind"`
	Token    *jsonToken  `json:"token,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonToken struct {
	Kind     string       `json:"kind"`
	Text     string       `json:"text"`
	Type     string       `json:"type,omitempty"`
	Position jsonPosition `json:"position"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	if n.Token != nil {
		tok := n.Token
		jt := &jsonToken{
			Kind:     tok.Kind.String(),
			Text:     leafText(*tok),
			Position: jsonPosition{Line: tok.Pos.Line, Column: tok.Pos.Column},
		}
		if tok.Kind == lex.TokenNumber {
			jt.Type = tok.Number.Type.String()
		}
		return &jsonNode{Kind: "Token", Token: jt}
	}

	jn := &jsonNode{Kind: string(n.NonTerminal)}
	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}
	return jn
}
