package notation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shadowCow/llgen/grammar"
)

const nullableFollowSource = `
preamble !{
  // no helpers needed for this grammar
}!

tokens {
  a = token "a"
  b = token "b"
}

rules {
  pub S -> !{ string }! {
    A:a b:b => !{ a + b }!
  }

  A -> !{ string }! {
    a:a => !{ a }!
    => !{ "" }!
  }
}
`

func TestParse_NullableFollowGrammar(t *testing.T) {
	desc, err := Parse(nullableFollowSource)
	require.NoError(t, err)
	require.Contains(t, desc.Preamble, "no helpers needed")

	require.Len(t, desc.Grammar.Terminals, 2)
	require.Equal(t, "a", desc.Grammar.Terminals[0].Label)
	require.Equal(t, grammar.Literal, desc.Grammar.Terminals[0].Kind)

	s, ok := desc.Grammar.NonTerm("S")
	require.True(t, ok)
	require.True(t, s.Exported)
	require.Equal(t, "string", s.ReturnType)
	require.Len(t, s.Rules, 1)
	require.Equal(t, "a + b", s.Rules[0].Action)

	nodeA, ok := s.Rules[0].Nodes[0].(grammar.NonTermRef)
	require.True(t, ok)
	require.Equal(t, grammar.Symbol("A"), nodeA.Name)
	require.Equal(t, "a", nodeA.Bind)

	nodeB, ok := s.Rules[0].Nodes[1].(grammar.TermRef)
	require.True(t, ok)
	require.Equal(t, "b", nodeB.Term)
	require.Equal(t, "b", nodeB.Bind)

	a, ok := desc.Grammar.NonTerm("A")
	require.True(t, ok)
	require.Len(t, a.Rules, 2)
	require.True(t, a.Rules[1].Nullable())
	require.Equal(t, `""`, a.Rules[1].Action)

	require.NoError(t, desc.Grammar.Validate())
}

const paramsAndArgsSource = `
tokens {
  plus = token "+"
  num = regex "[0-9]+"
}

rules {
  pub expr -> !{ int }! {
    num:p expr_cont(!{ p }!):k => !{ k }!
  }

  expr_cont(!{ acc int }!) -> !{ int }! {
    plus num:p expr_cont(!{ acc + p }!):k => !{ k }!
    => !{ acc }!
  }
}
`

func TestParse_ParamsAndArgs(t *testing.T) {
	desc, err := Parse(paramsAndArgsSource)
	require.NoError(t, err)

	cont, ok := desc.Grammar.NonTerm("expr_cont")
	require.True(t, ok)
	require.Equal(t, "acc int", cont.Params)
	require.Equal(t, "int", cont.ReturnType)

	rec, ok := cont.Rules[0].Nodes[2].(grammar.NonTermRef)
	require.True(t, ok)
	require.Equal(t, "acc + p", rec.Args)

	require.NoError(t, desc.Grammar.Validate())
}

func TestParse_RejectsMissingArrow(t *testing.T) {
	_, err := Parse(`
tokens { a = token "a" }
rules {
  pub S -> !{ string }! {
    a:a
  }
}
`)
	require.Error(t, err)
}

func TestParse_RejectsUnknownSymbol(t *testing.T) {
	desc, err := Parse(`
tokens { a = token "a" }
rules {
  pub S -> !{ string }! {
    B:b => !{ b }!
  }
}
`)
	require.NoError(t, err)
	require.Error(t, desc.Grammar.Validate())
}
