package lexergen

import (
	"go/scanner"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shadowCow/llgen/grammar"
)

func sampleTerminals() []grammar.Terminal {
	return []grammar.Terminal{
		{Label: "+", Kind: grammar.Literal, Pattern: "+"},
		{Label: "num", Kind: grammar.Regex, Pattern: `[0-9]+`},
	}
}

func TestEmit_ProducesDistinctTokenConstants(t *testing.T) {
	terms := sampleTerminals()
	names := map[string]bool{}
	for _, term := range terms {
		name := TokenConst(term)
		require.False(t, names[name], "duplicate token constant %s", name)
		names[name] = true
	}
}

func TestEmit_IsTokenizableGoFragments(t *testing.T) {
	g := grammar.Grammar{Terminals: sampleTerminals()}
	src, err := Emit(g)
	require.NoError(t, err)
	require.Contains(t, src, "func scan(c *Cursor) Token {")
	require.Contains(t, src, "sync.OnceValue")

	fset := token.NewFileSet()
	file := fset.AddFile("lexer.go", fset.Base(), len(src))
	var s scanner.Scanner
	var errs []string
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		errs = append(errs, msg)
	}, 0)
	for {
		_, tok, _ := s.Scan()
		if tok == token.EOF {
			break
		}
	}
	require.Empty(t, errs, "emitted lexer source must tokenize cleanly: %s", strings.Join(errs, "; "))
}

func TestEmit_ScannerTriesTerminalsInDeclarationOrder(t *testing.T) {
	g := grammar.Grammar{Terminals: []grammar.Terminal{
		{Label: "if", Kind: grammar.Literal, Pattern: "if"},
		{Label: "ident", Kind: grammar.Regex, Pattern: `[a-z]+`},
	}}
	src, err := Emit(g)
	require.NoError(t, err)

	ifIdx := strings.Index(src, "func scan(c *Cursor) Token {")
	body := src[ifIdx:]
	idxIf := strings.Index(body, TokenConst(g.Terminals[0]))
	idxIdent := strings.Index(body, TokenConst(g.Terminals[1]))
	require.True(t, idxIf < idxIdent, "earlier-declared terminal must be checked first in scan()")
}
