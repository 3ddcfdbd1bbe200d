// Package parse drives a breadth-first set of partial derivations over a
// token stream. It accepts ambiguous and left-recursive grammars and
// returns exactly one tree or a structured error.
package parse

import (
	"errors"
	"io"
	"maps"
	"slices"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/ucc/grammar"
	"github.com/dhamidi/ucc/lex"
)

const (
	// DefaultMaxStates bounds the live states after a pass and the
	// states created within one pass.
	DefaultMaxStates = 1_000_000

	minCompactSize = 1 << 16
)

// AmbiguityPolicy decides what happens when more than one distinct tree
// survives the end of input.
type AmbiguityPolicy int

const (
	// AmbiguityError reports every tree in an *AmbiguousError.
	AmbiguityError AmbiguityPolicy = iota
	// AmbiguityFirst keeps the first tree, following the order in which
	// alternatives are declared.
	AmbiguityFirst
)

var ambiguityNames = map[AmbiguityPolicy]string{
	AmbiguityError: "error",
	AmbiguityFirst: "first",
}

func (p AmbiguityPolicy) String() string {
	if name, ok := ambiguityNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParseAmbiguityPolicy maps "error" or "first" to a policy.
func ParseAmbiguityPolicy(s string) (AmbiguityPolicy, bool) {
	for p, name := range ambiguityNames {
		if name == s {
			return p, true
		}
	}
	return 0, false
}

// TokenSource supplies tokens one at a time and returns io.EOF at the
// end. *lex.Lexer is a TokenSource.
type TokenSource interface {
	Next() (lex.Token, error)
}

// Parser parses token streams against one grammar. A Parser holds no
// per-parse state and may be used from several goroutines.
type Parser struct {
	grammar   *grammar.Grammar
	maxStates int
	ambiguity AmbiguityPolicy
	log       commonlog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxStates sets the state ceiling. Values below one keep the default.
func WithMaxStates(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxStates = n
		}
	}
}

func WithAmbiguity(policy AmbiguityPolicy) Option {
	return func(p *Parser) {
		p.ambiguity = policy
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

func New(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{
		grammar:   g,
		maxStates: DefaultMaxStates,
		ambiguity: AmbiguityError,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = commonlog.GetLogger("ucc.parse")
	}
	return p
}

// ParseString lexes and parses src.
func ParseString(g *grammar.Grammar, src string, opts ...Option) (*Node, error) {
	return New(g, opts...).Parse(lex.NewString(src))
}

// Parse consumes src up to io.EOF. Errors from src other than io.EOF are
// returned unchanged, so lex errors arrive as *lex.Error.
func (p *Parser) Parse(src TokenSource) (*Node, error) {
	r := &run{
		Parser:      p,
		arena:       newArena(),
		compactSize: minCompactSize,
	}
	return r.parse(src)
}

// run is the state of a single parse.
type run struct {
	*Parser
	arena       *arena
	tokens      []lex.Token
	compactSize int
}

func (r *run) parse(src TokenSource) (*Node, error) {
	start := r.grammar.Start()
	live := []int{r.arena.addState(state{
		rule:   r.grammar.Alternatives(start)[0],
		parent: -1,
		node:   r.arena.emptyNode(start),
	})}

	for {
		tok, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		pending, done, err := r.forward(live, tok.Pos)
		if err != nil {
			return nil, err
		}
		r.log.Debugf("token %d %s at %s: %d states pending", len(r.tokens), tok, tok.Pos, len(pending))

		r.tokens = append(r.tokens, tok)
		survivors, expected := r.scan(pending, len(r.tokens)-1)
		if len(survivors) == 0 {
			r.log.Debugf("no state accepts %s at %s", tok, tok.Pos)
			return nil, &UnexpectedTokenError{Token: tok, Expected: expected, EndOfInput: len(done) > 0}
		}
		live = r.maybeCompact(survivors)
	}

	end := r.endPosition(src)
	pending, done, err := r.forward(live, end)
	if err != nil {
		return nil, err
	}
	switch len(done) {
	case 0:
		return nil, &IncompleteError{Pos: end, Expected: r.expected(pending)}
	case 1:
		r.log.Debugf("parsed %d tokens", len(r.tokens))
		return r.tree(r.arena.states[done[0]].node), nil
	}

	var trees []*Node
	for _, id := range done {
		tree := r.tree(r.arena.states[id].node)
		if !slices.ContainsFunc(trees, func(t *Node) bool { return Equal(t, tree) }) {
			trees = append(trees, tree)
		}
	}
	if len(trees) == 1 || r.ambiguity == AmbiguityFirst {
		r.log.Debugf("parsed %d tokens, %d trees", len(r.tokens), len(trees))
		return trees[0], nil
	}
	return nil, &AmbiguousError{Trees: trees}
}

// forward closes complete states into their parents and predicts
// nonterminals until every state waits on a terminal (pending) or is a
// complete root (done). States are expanded depth first in declaration
// order so results do not depend on anything but the grammar.
func (r *run) forward(roots []int, pos lex.Position) (pending, done []int, err error) {
	tok := len(r.tokens)
	base := len(r.arena.states)
	stack := make([]int, 0, len(roots))
	push := func(ids ...int) {
		for i := len(ids) - 1; i >= 0; i-- {
			stack = append(stack, ids[i])
		}
	}
	push(roots...)

	for len(stack) > 0 {
		if len(r.arena.states)-base > r.maxStates || len(pending) > r.maxStates {
			return nil, nil, &StateLimitError{Limit: r.maxStates, Pos: pos}
		}
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s := r.arena.states[id]
		rule := r.grammar.Rule(s.rule)

		if s.pos == len(rule.RHS) {
			if s.parent < 0 {
				done = append(done, id)
				continue
			}
			next := []int{r.close(id)}
			for _, cycle := range r.grammar.Cycles(rule.LHS) {
				if r.mayGrow(id, cycle) {
					next = append(next, r.grow(id, cycle))
				}
			}
			push(next...)
			continue
		}

		sym := rule.RHS[s.pos]
		if sym.IsTerminal() {
			pending = append(pending, id)
			continue
		}
		nt := sym.NonTerminal()
		if r.looped(id, nt, tok) {
			continue
		}
		alts := r.grammar.Alternatives(nt)
		children := make([]int, len(alts))
		for i, alt := range alts {
			children[i] = r.arena.addState(state{
				rule:   alt,
				parent: id,
				node:   r.arena.emptyNode(nt),
				origin: tok,
			})
		}
		push(children...)
	}
	return pending, done, nil
}

// looped reports whether predicting nt from state id would re-enter nt
// without consuming a token: some state on the chain of ancestors
// predicted at the current token already derives nt.
//
// Only recursion through the leftmost symbol of a rule is grown back by
// the cycle index. Recursion hidden behind a nullable prefix, such as
// A -> O A "*" with O -> "", is cut here and never grown, so those
// derivations are not found.
func (r *run) looped(id int, nt grammar.NonTerminal, tok int) bool {
	for s := id; s >= 0 && r.arena.states[s].origin == tok; s = r.arena.states[s].parent {
		if r.grammar.Rule(r.arena.states[s].rule).LHS == nt {
			return true
		}
	}
	return false
}

// mayGrow reports whether the cycle may be unrolled around the finished
// state id. The unrolling stands in for predictions the looped check cut,
// and those only happen below the topmost state of the cycle's members
// at the same origin. Unrolling further down would derive the same trees
// a second time.
func (r *run) mayGrow(id int, cycle grammar.Cycle) bool {
	origin := r.arena.states[id].origin
	for s := r.arena.states[id].parent; s >= 0 && r.arena.states[s].origin == origin; s = r.arena.states[s].parent {
		lhs := r.grammar.Rule(r.arena.states[s].rule).LHS
		for _, step := range cycle {
			if step.NonTerminal == lhs {
				return false
			}
		}
	}
	return true
}

// close hands the finished node of state id to its parent.
func (r *run) close(id int) int {
	s := r.arena.states[id]
	p := r.arena.states[s.parent]
	return r.arena.addState(state{
		rule:   p.rule,
		pos:    p.pos + 1,
		parent: p.parent,
		node:   r.arena.withChild(p.node, s.node),
		origin: p.origin,
	})
}

// grow unrolls one left-recursion cycle around the finished state id:
// the finished node becomes the first child of the innermost step, and
// the chain of steps is hung below the original parent. The innermost
// state is returned, ready to match the rest of its rule.
func (r *run) grow(id int, cycle grammar.Cycle) int {
	s := r.arena.states[id]
	cur := s.parent
	last := len(cycle) - 1
	for i, step := range cycle {
		st := state{rule: step.Rule, parent: cur, origin: s.origin}
		if i == last {
			st.pos = 1
			st.node = r.arena.addNode(node{nt: step.NonTerminal, token: -1, children: []int{s.node}})
		} else {
			st.node = r.arena.emptyNode(step.NonTerminal)
		}
		cur = r.arena.addState(st)
	}
	return cur
}

// scan advances every pending state whose terminal matches the token at
// index tok. The rest are dropped and their terminals reported as
// expected.
func (r *run) scan(pending []int, tok int) (survivors []int, expected []lex.TokenKind) {
	kind := r.tokens[tok].Kind
	leaf := -1
	missed := map[lex.TokenKind]bool{}
	for _, id := range pending {
		s := r.arena.states[id]
		want := r.grammar.Rule(s.rule).RHS[s.pos].Kind()
		if want != kind {
			missed[want] = true
			continue
		}
		if leaf < 0 {
			leaf = r.arena.leaf(tok)
		}
		survivors = append(survivors, r.arena.addState(state{
			rule:   s.rule,
			pos:    s.pos + 1,
			parent: s.parent,
			node:   r.arena.withChild(s.node, leaf),
			origin: s.origin,
		}))
	}
	if len(survivors) > 0 {
		return survivors, nil
	}
	return nil, slices.Sorted(maps.Keys(missed))
}

func (r *run) expected(pending []int) []lex.TokenKind {
	kinds := map[lex.TokenKind]bool{}
	for _, id := range pending {
		s := r.arena.states[id]
		kinds[r.grammar.Rule(s.rule).RHS[s.pos].Kind()] = true
	}
	return slices.Sorted(maps.Keys(kinds))
}

func (r *run) maybeCompact(live []int) []int {
	if r.arena.size() < r.compactSize {
		return live
	}
	before := r.arena.size()
	live = r.arena.compact(live)
	r.compactSize = max(minCompactSize, 2*r.arena.size())
	r.log.Debugf("compacted arena from %d to %d entries", before, r.arena.size())
	return live
}

func (r *run) endPosition(src TokenSource) lex.Position {
	if p, ok := src.(interface{ Position() lex.Position }); ok {
		return p.Position()
	}
	if n := len(r.tokens); n > 0 {
		return r.tokens[n-1].Pos
	}
	return lex.Position{Line: 1, Column: 1}
}

func (r *run) tree(id int) *Node {
	n := r.arena.nodes[id]
	if n.token >= 0 {
		tok := r.tokens[n.token]
		return &Node{Token: &tok}
	}
	out := &Node{NonTerminal: n.nt}
	if len(n.children) > 0 {
		out.Children = make([]*Node, len(n.children))
		for i, c := range n.children {
			out.Children[i] = r.tree(c)
		}
	}
	return out
}
