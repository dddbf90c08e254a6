// Package parsergen emits one recursive-descent procedure per
// grammar.NonTermDef (spec.md §4.5): a predictive switch over the
// current lookahead token, one case per rule (or per group of rules
// sharing a lookahead branch is never needed — spec.md's LL(1)
// invariant guarantees each rule owns a disjoint lookahead set), a
// sequence of terminal/nonterminal consumption statements per rule, and
// a final expression producing the rule's return value. Grounded on
// original_source/src/ast.rs's NonTermDef::generate, translated from
// Rust's quote!-based token-stream emission into direct Go text
// assembly — the Go idiom the lexergen package (and the teacher's own
// debug.go) already uses for this kind of templated source.
package parsergen

import (
	"fmt"
	"strings"

	"github.com/shadowCow/llgen/firstfollow"
	"github.com/shadowCow/llgen/grammar"
	"github.com/shadowCow/llgen/lexergen"
)

// procName is the unexported recursive-descent procedure generated for
// a nonterminal; entry points additionally get a public Parse<Name>
// wrapper (see emitEntryWrapper).
func procName(name grammar.Symbol) string { return "parse_" + string(name) }

// Emit renders one procedure per nonterminal in g, plus a public
// Parse<Name> wrapper for every exported entry point.
func Emit(g grammar.Grammar, first *firstfollow.FirstSets, follow *firstfollow.FollowSets) (string, error) {
	var b strings.Builder

	for _, nt := range g.NonTerms {
		if err := emitProc(&b, g, nt, first, follow); err != nil {
			return "", err
		}
		if nt.Exported {
			emitEntryWrapper(&b, nt)
		}
	}

	return b.String(), nil
}

func paramList(nt grammar.NonTermDef) string {
	if nt.Params == "" {
		return "c *Cursor"
	}
	return "c *Cursor, " + nt.Params
}

func emitProc(b *strings.Builder, g grammar.Grammar, nt grammar.NonTermDef, first *firstfollow.FirstSets, follow *firstfollow.FollowSets) error {
	fmt.Fprintf(b, "func %s(%s) (%s, error) {\n", procName(nt.Name), paramList(nt), nt.ReturnType)
	fmt.Fprintf(b, "\tvar zero %s\n", nt.ReturnType)
	b.WriteString("\tswitch scan(c) {\n")

	followLabels, followEOI := follow.Of(nt.Name)

	for _, rule := range nt.Rules {
		labels, eoi := ruleLookahead(first, rule, followLabels, followEOI)
		if len(labels) == 0 && !eoi {
			continue // empty lookahead set: no token selects this rule, so it gets no case
		}
		b.WriteString("\tcase ")
		b.WriteString(strings.Join(caseTokens(g, labels, eoi), ", "))
		b.WriteString(":\n")
		if err := emitRuleBody(b, g, nt, rule); err != nil {
			return err
		}
	}

	fmt.Fprintf(b, "\tdefault:\n\t\treturn zero, &UnexpectedToken{Expected: %q, Actual: describeCurrent(c)}\n", string(nt.Name))
	b.WriteString("\t}\n}\n\n")
	return nil
}

// ruleLookahead returns the predictive lookahead set for a single rule:
// FIRST(rule) \ {ε}, plus FOLLOW(A) when ε ∈ FIRST(rule)
// (spec.md §4.3/§4.5 share this derivation).
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

func caseTokens(g grammar.Grammar, labels []string, eoi bool) []string {
	out := make([]string, 0, len(labels)+1)
	for _, l := range labels {
		if t, ok := g.Term(l); ok {
			out = append(out, lexergen.TokenConst(t))
		}
	}
	if eoi {
		out = append(out, "TokenEOF")
	}
	return out
}

func emitRuleBody(b *strings.Builder, g grammar.Grammar, nt grammar.NonTermDef, rule grammar.Rule) error {
	for i, node := range rule.Nodes {
		switch n := node.(type) {
		case grammar.TermRef:
			bind := n.Bind
			if bind == "" {
				bind = "_"
			}
			term, ok := g.Term(n.Term)
			if !ok {
				return fmt.Errorf("parsergen: rule for %s references unknown terminal %q", nt.Name, n.Term)
			}
			fmt.Fprintf(b, "\t\t%s, err%d := %s(c)\n", bind, i, "recognize"+lexergen.TokenConst(term))
			fmt.Fprintf(b, "\t\tif err%d != nil {\n\t\t\treturn zero, err%d\n\t\t}\n", i, i)
		case grammar.NonTermRef:
			bind := n.Bind
			if bind == "" {
				bind = "_"
			}
			fmt.Fprintf(b, "\t\t%s, err%d := %s(c, %s)\n", bind, i, procName(n.Name), n.Args)
			fmt.Fprintf(b, "\t\tif err%d != nil {\n\t\t\treturn zero, err%d\n\t\t}\n", i, i)
		default:
			return fmt.Errorf("parsergen: unknown node type %T in rule for %s", node, nt.Name)
		}
	}
	fmt.Fprintf(b, "\t\tresult := %s\n\t\treturn result, nil\n", rule.Action)
	return nil
}

// emitEntryWrapper renders the public Parse<Name> entry point for an
// exported nonterminal: it drives the cursor to end of input and turns
// leftover input into an UnexpectedToken, matching the teacher's whole-
// program entry points (tooling/parser.go's Parse) in spirit.
func emitEntryWrapper(b *strings.Builder, nt grammar.NonTermDef) {
	fmt.Fprintf(b, "// Parse%s parses input as a %s; trailing input after a\n", nt.Name, nt.Name)
	fmt.Fprintf(b, "// complete match is reported as an error.\n")
	fmt.Fprintf(b, "func Parse%s(input string) (%s, error) {\n", nt.Name, nt.ReturnType)
	b.WriteString("\tc := NewCursor(input)\n")
	fmt.Fprintf(b, "\tresult, err := %s(c)\n", procName(nt.Name))
	b.WriteString("\tif err != nil {\n\t\treturn result, err\n\t}\n")
	b.WriteString("\tif !c.AtEnd() {\n")
	fmt.Fprintf(b, "\t\tvar zero %s\n", nt.ReturnType)
	b.WriteString("\t\treturn zero, &UnexpectedToken{Expected: \"end of input\", Actual: describeCurrent(c)}\n\t}\n")
	b.WriteString("\treturn result, nil\n}\n\n")
}
