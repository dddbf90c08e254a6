package llcheck

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shadowCow/llgen/firstfollow"
	"github.com/shadowCow/llgen/grammar"
)

// conflictingGrammar builds spec.md §8 scenario 3: S -> "a" B | "a" C.
func conflictingGrammar() grammar.Grammar {
	return grammar.Grammar{
		Terminals: []grammar.Terminal{
			{Label: "a", Kind: grammar.Literal, Pattern: "a"},
			{Label: "x", Kind: grammar.Literal, Pattern: "x"},
			{Label: "y", Kind: grammar.Literal, Pattern: "y"},
		},
		NonTerms: []grammar.NonTermDef{
			{
				Name:       "S",
				ReturnType: "string",
				Exported:   true,
				Rules: []grammar.Rule{
					{Nodes: []grammar.Node{
						grammar.TermRef{Term: "a"}, grammar.NonTermRef{Name: "B"},
					}, Action: "b"},
					{Nodes: []grammar.Node{
						grammar.TermRef{Term: "a"}, grammar.NonTermRef{Name: "C"},
					}, Action: "c"},
				},
			},
			{Name: "B", ReturnType: "string", Rules: []grammar.Rule{
				{Nodes: []grammar.Node{grammar.TermRef{Term: "x"}}, Action: "x"},
			}},
			{Name: "C", ReturnType: "string", Rules: []grammar.Rule{
				{Nodes: []grammar.Node{grammar.TermRef{Term: "y"}}, Action: "y"},
			}},
		},
	}
}

func TestCheck_DetectsConflict(t *testing.T) {
	g := conflictingGrammar()
	first := firstfollow.Compute(g)
	follow := firstfollow.Compute(g, first)

	result := Check(g, first, follow)
	require.False(t, result.OK())
	require.Equal(t, "S", result.Conflict.NonTerm)
	require.Equal(t, `"a" B`, result.Conflict.Rule1)
	require.Equal(t, `"a" C`, result.Conflict.Rule2)
	require.Equal(t, "a", result.Conflict.Lookahead)
}

// arithmeticGrammar builds spec.md §8 scenario 1's shape, left-factored
// via right-recursive continuation rules, which must pass the check.
func arithmeticGrammar() grammar.Grammar {
	termNode := func(label string) grammar.Node { return grammar.TermRef{Term: label} }
	return grammar.Grammar{
		Terminals: []grammar.Terminal{
			{Label: "(", Kind: grammar.Literal, Pattern: "("},
			{Label: ")", Kind: grammar.Literal, Pattern: ")"},
			{Label: "*", Kind: grammar.Literal, Pattern: "*"},
			{Label: "/", Kind: grammar.Literal, Pattern: "/"},
			{Label: "+", Kind: grammar.Literal, Pattern: "+"},
			{Label: "-", Kind: grammar.Literal, Pattern: "-"},
			{Label: "num", Kind: grammar.Regex, Pattern: `[0-9]+`},
		},
		NonTerms: []grammar.NonTermDef{
			{Name: "expr", ReturnType: "int", Exported: true, Rules: []grammar.Rule{
				{Nodes: []grammar.Node{
					grammar.NonTermRef{Name: "prod", Bind: "p"},
					grammar.NonTermRef{Name: "expr_cont", Bind: "k", Args: "p"},
				}, Action: "k"},
			}},
			{Name: "expr_cont", Params: "acc int", ReturnType: "int", Rules: []grammar.Rule{
				{Nodes: []grammar.Node{
					termNode("+"),
					grammar.NonTermRef{Name: "prod", Bind: "p"},
					grammar.NonTermRef{Name: "expr_cont", Bind: "k", Args: "acc + p"},
				}, Action: "k"},
				{Nodes: []grammar.Node{
					termNode("-"),
					grammar.NonTermRef{Name: "prod", Bind: "p"},
					grammar.NonTermRef{Name: "expr_cont", Bind: "k", Args: "acc - p"},
				}, Action: "k"},
				{Nodes: nil, Action: "acc"},
			}},
			{Name: "prod", ReturnType: "int", Rules: []grammar.Rule{
				{Nodes: []grammar.Node{
					grammar.NonTermRef{Name: "atom", Bind: "a"},
					grammar.NonTermRef{Name: "prod_cont", Bind: "k", Args: "a"},
				}, Action: "k"},
			}},
			{Name: "prod_cont", Params: "acc int", ReturnType: "int", Rules: []grammar.Rule{
				{Nodes: []grammar.Node{
					termNode("*"),
					grammar.NonTermRef{Name: "atom", Bind: "a"},
					grammar.NonTermRef{Name: "prod_cont", Bind: "k", Args: "acc * a"},
				}, Action: "k"},
				{Nodes: []grammar.Node{
					termNode("/"),
					grammar.NonTermRef{Name: "atom", Bind: "a"},
					grammar.NonTermRef{Name: "prod_cont", Bind: "k", Args: "acc / a"},
				}, Action: "k"},
				{Nodes: nil, Action: "acc"},
			}},
			{Name: "atom", ReturnType: "int", Rules: []grammar.Rule{
				{Nodes: []grammar.Node{
					termNode("("),
					grammar.NonTermRef{Name: "expr", Bind: "e"},
					termNode(")"),
				}, Action: "e"},
				{Nodes: []grammar.Node{grammar.TermRef{Term: "num", Bind: "n"}}, Action: "n"},
			}},
		},
	}
}

func TestCheck_ArithmeticGrammarIsLL1(t *testing.T) {
	g := arithmeticGrammar()
	first := firstfollow.Compute(g)
	follow := firstfollow.Compute(g, first)

	result := Check(g, first, follow)
	require.True(t, result.OK())
	require.Empty(t, result.Warnings)
}
