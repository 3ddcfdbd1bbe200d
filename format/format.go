// Package format renders parse trees for the command line.
package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dhamidi/ucc/parse"
)

type Encoder interface {
	Encode(tree *parse.Node) error
}

// New returns the encoder registered under name: tree, sexpr or json.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "tree":
		return NewTreeEncoder(w), nil
	case "sexpr":
		return NewSexprEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

// TreeEncoder writes one node per line, indented by depth.
type TreeEncoder struct {
	w io.Writer
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(tree *parse.Node) error {
	_, err := io.WriteString(e.w, tree.String())
	return err
}

// SexprEncoder writes the tree on a single line.
type SexprEncoder struct {
	w io.Writer
}

func NewSexprEncoder(w io.Writer) *SexprEncoder {
	return &SexprEncoder{w: w}
}

func (e *SexprEncoder) Encode(tree *parse.Node) error {
	_, err := fmt.Fprintln(e.w, tree.Sexpr())
	return err
}

type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(tree *parse.Node) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText(tree *parse.Node) ([]byte, error) {
	return json.MarshalIndent(tree, "", "  ")
}
