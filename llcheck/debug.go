package llcheck

import (
	"fmt"
	"io"
	"strings"

	"github.com/shadowCow/llgen/firstfollow"
	"github.com/shadowCow/llgen/grammar"
)

// PrintFirstSets prints the FIRST set of every nonterminal in g, in
// declared order. Grounded on the teacher's tooling/ll1/debug.go
// PrintFirstSets, adapted from its sorted-symbol-map traversal to g's
// already-deterministic declaration order.
func PrintFirstSets(g grammar.Grammar, first *firstfollow.FirstSets, out io.Writer) {
	fmt.Fprintln(out, "FIRST SETS:")
	fmt.Fprintln(out, "===========")
	for _, nt := range g.NonTerms {
		nullable := ""
		if first.IsNullable(nt.Name) {
			nullable = " [nullable]"
		}
		fmt.Fprintf(out, "  FIRST(%s) = {%s}%s\n", nt.Name, strings.Join(first.Of(nt.Name), ", "), nullable)
	}
	fmt.Fprintln(out)
}

// PrintFollowSets prints the FOLLOW set of every nonterminal in g, in
// declared order. Grounded on the teacher's tooling/ll1/debug.go
// PrintFollowSets.
func PrintFollowSets(g grammar.Grammar, follow *firstfollow.FollowSets, out io.Writer) {
	fmt.Fprintln(out, "FOLLOW SETS:")
	fmt.Fprintln(out, "============")
	for _, nt := range g.NonTerms {
		labels, eoi := follow.Of(nt.Name)
		if eoi {
			labels = append(labels, "⊣") // ⊣
		}
		fmt.Fprintf(out, "  FOLLOW(%s) = {%s}\n", nt.Name, strings.Join(labels, ", "))
	}
	fmt.Fprintln(out)
}

// PrintParseTable prints, for every nonterminal and every rule, the
// predictive lookahead set that selects it — the code-generation
// equivalent of the teacher's tooling/ll1/debug.go PrintParseTable (there
// a grid over an explicit ParseTable; here a listing, since llgen never
// materializes a table — parsergen dispatches with a Go switch instead).
func PrintParseTable(g grammar.Grammar, first *firstfollow.FirstSets, follow *firstfollow.FollowSets, out io.Writer) {
	fmt.Fprintln(out, "LL(1) PARSE TABLE:")
	fmt.Fprintln(out, "==================")
	for _, nt := range g.NonTerms {
		followLabels, followEOI := follow.Of(nt.Name)
		for i, rule := range nt.Rules {
			labels, eoi := ruleLookahead(first, rule, followLabels, followEOI)
			if eoi {
				labels = append(labels, "⊣")
			}
			fmt.Fprintf(out, "  %s -> rule %d %s on {%s}\n", nt.Name, i+1, rule.String(), strings.Join(labels, ", "))
		}
	}
	fmt.Fprintln(out)
}

// ruleLookahead returns the predictive lookahead set for a single rule:
// FIRST(rule) \ {ε}, plus FOLLOW(A) when ε ∈ FIRST(rule).
// Kept separate from parsergen's identically-shaped helper since the two
// serve different layers (diagnostics here, code emission there) and
// llcheck must not depend on parsergen.
func ruleLookahead(first *firstfollow.FirstSets, rule grammar.Rule, followLabels []string, followEOI bool) (labels []string, eoi bool) {
	ruleFirst, nullable := first.OfRule(rule)
	if !nullable {
		return ruleFirst, false
	}
	seen := make(map[string]bool, len(ruleFirst))
	labels = append(labels, ruleFirst...)
	for _, l := range ruleFirst {
		seen[l] = true
	}
	for _, l := range followLabels {
		if !seen[l] {
			labels = append(labels, l)
		}
	}
	return labels, followEOI
}
