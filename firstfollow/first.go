package firstfollow

import "github.com/shadowCow/llgen/grammar"

// FirstSets holds the FIRST set of every nonterminal in a grammar, per
// spec.md §4.1: FIRST(A) is the least fixpoint of unioning, over every
// rule A → α, the result of the `first(α)` recurrence in spec.md §4.1.
type FirstSets struct {
	g    grammar.Grammar
	sets map[grammar.Symbol]symbolSet
}

// Compute runs the naive fixpoint algorithm of spec.md §4.1. A
// nonterminal never seen on an LHS contributes ∅, exactly as spec.md's
// edge-case note describes; the outer loop guarantees convergence
// regardless of declaration order because Terminals ∪ {ε} is finite and
// FIRST only grows.
func Compute(g grammar.Grammar) *FirstSets {
	fs := &FirstSets{g: g, sets: make(map[grammar.Symbol]symbolSet, len(g.NonTerms))}
	for _, nt := range g.NonTerms {
		fs.sets[nt.Name] = newSymbolSet(g)
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.NonTerms {
			for _, rule := range nt.Rules {
				contribution := fs.firstOfNodes(rule.Nodes)
				if fs.sets[nt.Name].addAll(contribution) {
					changed = true
				}
			}
		}
	}

	return fs
}

// Get returns the FIRST set of a nonterminal. A nonterminal absent from
// the map (not yet discovered) contributes the empty set.
func (fs *FirstSets) Get(nt grammar.Symbol) symbolSet {
	if s, ok := fs.sets[nt]; ok {
		return s
	}
	return newSymbolSet(fs.g)
}

// Of returns the FIRST set of a nonterminal as terminal labels in
// canonical order (ε excluded — use IsNullable to ask about ε).
func (fs *FirstSets) Of(nt grammar.Symbol) []string {
	return fs.Get(nt).Labels()
}

// IsNullable reports whether ε ∈ FIRST(nt), i.e. whether nt can derive
// the empty sequence.
func (fs *FirstSets) IsNullable(nt grammar.Symbol) bool {
	return fs.Get(nt).hasEpsilon()
}

// OfRule computes first(α) for a rule's RHS and reports whether the RHS
// is nullable (ε ∈ first(α)).
func (fs *FirstSets) OfRule(r grammar.Rule) (labels []string, nullable bool) {
	s := fs.firstOfNodes(r.Nodes)
	return s.Labels(), s.hasEpsilon()
}

// firstOfNodes implements the first(α) recurrence of spec.md §4.1:
//
//	first(ε) = {ε}
//	first(t · β) = {t}
//	first(A · β) = (FIRST(A) \ {ε}) ∪ (first(β) if ε ∈ FIRST(A) else ∅)
func (fs *FirstSets) firstOfNodes(nodes []grammar.Node) symbolSet {
	result := newSymbolSet(fs.g)

	if len(nodes) == 0 {
		result.Add(epsilon)
		return result
	}

	head, rest := nodes[0], nodes[1:]
	switch n := head.(type) {
	case grammar.TermRef:
		result.Add(n.Term)
	case grammar.NonTermRef:
		headFirst := fs.Get(n.Name)
		result.addAllExceptEpsilon(headFirst)
		if headFirst.hasEpsilon() {
			result.addAll(fs.firstOfNodes(rest))
		}
	}

	return result
}
