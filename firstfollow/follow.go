package firstfollow

import "github.com/shadowCow/llgen/grammar"

// FollowSets holds the FOLLOW set of every nonterminal in a grammar, per
// spec.md §4.2.
type FollowSets struct {
	g    grammar.Grammar
	sets map[grammar.Symbol]symbolSet
}

// Compute runs the fixpoint of spec.md §4.2 given the grammar's FIRST
// sets. FOLLOW(A) starts as {⊣} for every exported entry point and ∅
// otherwise; for every occurrence A → α B β with B a nonterminal,
// FIRST(β)\{ε} is added to FOLLOW(B), and if ε ∈ FIRST(β), FOLLOW(A) is
// added to FOLLOW(B) too. The "added ≠ ∅" change detector follows the
// teacher's tooling/ll1/follow.go (and first.go) exactly.
func Compute(g grammar.Grammar, first *FirstSets) *FollowSets {
	fs := &FollowSets{g: g, sets: make(map[grammar.Symbol]symbolSet, len(g.NonTerms))}
	for _, nt := range g.NonTerms {
		fs.sets[nt.Name] = newSymbolSet(g)
	}
	for _, nt := range g.NonTerms {
		if nt.Exported {
			fs.sets[nt.Name].Add(EndOfInput)
		}
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.NonTerms {
			for _, rule := range nt.Rules {
				for i, node := range rule.Nodes {
					ref, ok := node.(grammar.NonTermRef)
					if !ok {
						continue
					}
					beta := rule.Nodes[i+1:]
					firstBeta := first.firstOfNodes(beta)

					target := fs.get(ref.Name)
					if target.addAllExceptEpsilon(firstBeta) {
						changed = true
					}
					if firstBeta.hasEpsilon() {
						if target.addAll(fs.get(nt.Name)) {
							changed = true
						}
					}
				}
			}
		}
	}

	return fs
}

func (fs *FollowSets) get(nt grammar.Symbol) symbolSet {
	if s, ok := fs.sets[nt]; ok {
		return s
	}
	s := newSymbolSet(fs.g)
	fs.sets[nt] = s
	return s
}

// Get returns the FOLLOW set of a nonterminal. A name that is neither
// declared nor targeted by a nonterminal reference has the empty set.
func (fs *FollowSets) Get(nt grammar.Symbol) symbolSet {
	if s, ok := fs.sets[nt]; ok {
		return s
	}
	return newSymbolSet(fs.g)
}

// Of returns the FOLLOW set of a nonterminal as terminal labels in
// canonical order, plus whether ⊣ (end of input) is a member.
func (fs *FollowSets) Of(nt grammar.Symbol) (labels []string, endOfInput bool) {
	s := fs.Get(nt)
	endOfInput = s.Contains(EndOfInput)
	for _, l := range s.Labels() {
		if l != EndOfInput {
			labels = append(labels, l)
		}
	}
	return labels, endOfInput
}
