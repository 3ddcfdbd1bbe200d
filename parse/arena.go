package parse

import (
	"slices"

	"github.com/dhamidi/ucc/grammar"
)

// state is one partial derivation: a rule, how many of its symbols are
// matched, the node built so far and the state it closes into. States
// are never modified once stored; advancing one stores a copy.
type state struct {
	rule   int
	pos    int
	parent int // -1 for the root
	node   int
	origin int // index of the token at which the state was predicted
}

// node is a tree node in the arena. Leaves refer to a token by index;
// interior nodes list the indices of their children.
type node struct {
	nt       grammar.NonTerminal
	token    int // -1 for interior nodes
	children []int
}

type arena struct {
	states []state
	nodes  []node
	empty  map[grammar.NonTerminal]int
}

func newArena() *arena {
	return &arena{empty: map[grammar.NonTerminal]int{}}
}

func (a *arena) addState(s state) int {
	a.states = append(a.states, s)
	return len(a.states) - 1
}

func (a *arena) addNode(n node) int {
	a.nodes = append(a.nodes, n)
	return len(a.nodes) - 1
}

// emptyNode returns a childless node for nt. Such nodes are shared since
// adding a child always copies.
func (a *arena) emptyNode(nt grammar.NonTerminal) int {
	if id, ok := a.empty[nt]; ok {
		return id
	}
	id := a.addNode(node{nt: nt, token: -1})
	a.empty[nt] = id
	return id
}

func (a *arena) leaf(token int) int {
	return a.addNode(node{token: token})
}

// withChild returns a copy of node id with child appended.
func (a *arena) withChild(id, child int) int {
	n := a.nodes[id]
	return a.addNode(node{
		nt:       n.nt,
		token:    n.token,
		children: append(slices.Clip(n.children), child),
	})
}

func (a *arena) size() int {
	return len(a.states) + len(a.nodes)
}

// compact drops every state and node that live does not reach and
// returns live renumbered for the new arena.
func (a *arena) compact(live []int) []int {
	stateMap := make([]int, len(a.states))
	for i := range stateMap {
		stateMap[i] = -1
	}
	nodeMap := make([]int, len(a.nodes))
	for i := range nodeMap {
		nodeMap[i] = -1
	}

	var nodeStack []int
	for _, id := range live {
		for s := id; s >= 0 && stateMap[s] < 0; s = a.states[s].parent {
			stateMap[s] = 0
			nodeStack = append(nodeStack, a.states[s].node)
		}
	}
	for len(nodeStack) > 0 {
		n := nodeStack[len(nodeStack)-1]
		nodeStack = nodeStack[:len(nodeStack)-1]
		if nodeMap[n] >= 0 {
			continue
		}
		nodeMap[n] = 0
		nodeStack = append(nodeStack, a.nodes[n].children...)
	}

	nodes := make([]node, 0, len(a.nodes)/2)
	for i, n := range a.nodes {
		if nodeMap[i] < 0 {
			continue
		}
		nodeMap[i] = len(nodes)
		nodes = append(nodes, n)
	}
	for i := range nodes {
		if len(nodes[i].children) == 0 {
			continue
		}
		children := make([]int, len(nodes[i].children))
		for j, c := range nodes[i].children {
			children[j] = nodeMap[c]
		}
		nodes[i].children = children
	}

	// Parents always precede their children, so one ascending pass can
	// remap parent links.
	states := make([]state, 0, len(a.states)/2)
	for i, s := range a.states {
		if stateMap[i] < 0 {
			continue
		}
		stateMap[i] = len(states)
		if s.parent >= 0 {
			s.parent = stateMap[s.parent]
		}
		s.node = nodeMap[s.node]
		states = append(states, s)
	}

	a.states, a.nodes = states, nodes
	a.empty = map[grammar.NonTerminal]int{}

	out := make([]int, len(live))
	for i, id := range live {
		out[i] = stateMap[id]
	}
	return out
}
