// Package llcheck implements the LL(1) conflict check of spec.md §4.3:
// for every nonterminal and every unordered pair of distinct rules,
// signal a conflict if their predictive lookahead sets overlap.
package llcheck

import (
	"fmt"

	"github.com/shadowCow/llgen/firstfollow"
	"github.com/shadowCow/llgen/grammar"
	"github.com/shadowCow/llgen/llerr"
)

// Result is the outcome of checking a whole grammar: either ok (Conflict
// is nil) or the first conflict found, scanned in the grammar's declared
// order so failures are reproducible. Warnings records the masked-
// conflict case from spec.md §9's open question #2: the source behavior
// (excluding ⊣ from the ε-vs-non-ε overlap test) is preserved, but a
// warning is surfaced instead of silently dropping the case.
type Result struct {
	Conflict *llerr.LL1Conflict
	Warnings []string
}

// OK reports whether the grammar passed the LL(1) check.
func (r Result) OK() bool { return r.Conflict == nil }

// Check runs the pairwise conflict scan over every nonterminal, in
// declared order, for every unordered pair of distinct rules.
func Check(g grammar.Grammar, first *firstfollow.FirstSets, follow *firstfollow.FollowSets) Result {
	var warnings []string

	for _, nt := range g.NonTerms {
		followLabels, eoi := follow.Of(nt.Name)

		for i := 0; i < len(nt.Rules); i++ {
			for j := i + 1; j < len(nt.Rules); j++ {
				r1, r2 := nt.Rules[i], nt.Rules[j]
				first1, null1 := first.OfRule(r1)
				first2, null2 := first.OfRule(r2)

				if tok, ok := intersect(first1, first2); ok {
					return Result{Conflict: llerr.NewLL1Conflict(
						string(nt.Name), r1.String(), r2.String(), tok,
					), Warnings: warnings}
				}

				if null1 {
					if tok, ok := intersect(first2, followLabels); ok {
						return Result{Conflict: llerr.NewLL1Conflict(
							string(nt.Name), r1.String(), r2.String(), tok,
						), Warnings: warnings}
					}
				}
				if null2 {
					if tok, ok := intersect(first1, followLabels); ok {
						return Result{Conflict: llerr.NewLL1Conflict(
							string(nt.Name), r1.String(), r2.String(), tok,
						), Warnings: warnings}
					}
				}

				// Open question #2 (spec.md §9): two ε-producing rules
				// are both viable exactly at end-of-input, but ⊣ is
				// excluded from the overlap test above. Preserve that
				// behavior (no fatal conflict is raised here) but warn.
				if null1 && null2 && eoi {
					warnings = append(warnings, fmt.Sprintf(
						"%s: rules %q and %q are both nullable and %s may end input; "+
							"this conflict is masked because ⊣ is excluded from the ε overlap test",
						nt.Name, r1.String(), r2.String(), nt.Name,
					))
				}
			}
		}
	}

	return Result{Warnings: warnings}
}

// intersect returns a member shared by both slices, if any. Lookahead
// tokens are few per rule in practice, so a linear scan over declared
// order beats building an auxiliary set.
func intersect(a, b []string) (string, bool) {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return x, true
			}
		}
	}
	return "", false
}
