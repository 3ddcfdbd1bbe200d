package grammar

import "slices"

// findCycles follows leftmost nonterminals from every nonterminal N and
// records each path that closes on N. Paths that reach a terminal, an
// empty rule, or a nonterminal already on the path are discarded. Cycles
// that could repeat without consuming input are dropped as well.
func findCycles(g *Grammar) map[NonTerminal][]Cycle {
	cycles := map[NonTerminal][]Cycle{}
	for _, root := range g.order {
		var path Cycle
		onPath := map[NonTerminal]bool{}

		var walk func(nt NonTerminal)
		walk = func(nt NonTerminal) {
			onPath[nt] = true
			defer delete(onPath, nt)
			for _, ri := range g.alts[nt] {
				r := g.rules[ri]
				if len(r.RHS) == 0 || r.RHS[0].IsTerminal() {
					continue
				}
				next := r.RHS[0].name
				path = append(path, Step{NonTerminal: nt, Rule: ri})
				switch {
				case next == root:
					if g.consumes(path) {
						cycles[root] = append(cycles[root], slices.Clone(path))
					}
				case !onPath[next]:
					walk(next)
				}
				path = path[:len(path)-1]
			}
		}
		walk(root)
	}
	return cycles
}

// consumes reports whether unrolling the cycle once needs at least one
// token: some step has a tail after its leftmost symbol that is not
// nullable.
func (g *Grammar) consumes(c Cycle) bool {
	for _, step := range c {
		if !allNullable(g.rules[step.Rule].RHS[1:], g.nullable) {
			return true
		}
	}
	return false
}

// LeftRecursive reports whether any left-recursion cycle is recorded
// against nt.
func (g *Grammar) LeftRecursive(nt NonTerminal) bool {
	return len(g.cycles[nt]) > 0
}

// Members returns the nonterminals a cycle passes through.
func (c Cycle) Members() []NonTerminal {
	out := make([]NonTerminal, len(c))
	for i, step := range c {
		out[i] = step.NonTerminal
	}
	return out
}
