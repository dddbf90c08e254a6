// Package codegen assembles the final generated source text (spec.md
// §4.6): a fixed runtime scaffold (Cursor, UnexpectedToken), the
// lexergen and parsergen output, and the caller's preamble, wrapped in
// a package declaration and gofmt'd. Every opaque fragment embedded
// verbatim from the grammar — parameter lists, return types, semantic
// actions, call-argument expressions — is tokenized with go/scanner
// before assembly so a malformed fragment fails as llerr.FragmentSyntax
// instead of producing unparseable output. Grounded on the
// text/template + go/format pipeline of the other_examples reference
// nihei9-vartan (driver/template.go), adapted to Go's go:embed for the
// scaffold instead of vartan's raw embedded parser.go.
package codegen

import (
	_ "embed"
	"go/format"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/shadowCow/llgen/firstfollow"
	"github.com/shadowCow/llgen/grammar"
	"github.com/shadowCow/llgen/lexergen"
	"github.com/shadowCow/llgen/llcheck"
	"github.com/shadowCow/llgen/llerr"
	"github.com/shadowCow/llgen/parsergen"
)

//go:embed scaffold/runtime.go.tmpl
var runtimeScaffold string

var headerTmpl = template.Must(template.New("header").Parse(
	`// Code generated by llgen. DO NOT EDIT.

package {{.Package}}

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

{{.Preamble}}
`))

// Options configures the assembled output's package declaration and an
// optional hand-written preamble (helper types/functions available to
// semantic-action fragments).
type Options struct {
	Package  string
	Preamble string
}

// Generate runs the full pipeline — validate, FIRST/FOLLOW, the LL(1)
// check, lexer and parser emission, fragment verification, and gofmt —
// and returns the formatted source plus any non-fatal warnings.
func Generate(g grammar.Grammar, opts Options) ([]byte, []string, error) {
	var warnings []string

	if err := g.Validate(); err != nil {
		if llerr.Fatal(err) {
			return nil, nil, err
		}
		warnings = append(warnings, err.Error())
	}

	if err := verifyFragments(g, opts.Preamble); err != nil {
		return nil, warnings, err
	}

	first := firstfollow.Compute(g)
	follow := firstfollow.Compute(g, first)

	result := llcheck.Check(g, first, follow)
	warnings = append(warnings, result.Warnings...)
	if !result.OK() {
		return nil, warnings, result.Conflict
	}

	lexerSrc, err := lexergen.Emit(g)
	if err != nil {
		return nil, warnings, err
	}
	parserSrc, err := parsergen.Emit(g, first, follow)
	if err != nil {
		return nil, warnings, err
	}

	var buf strings.Builder
	if err := headerTmpl.Execute(&buf, struct{ Package, Preamble string }{opts.Package, opts.Preamble}); err != nil {
		return nil, warnings, errors.Wrap(err, "rendering output header")
	}
	buf.WriteString(runtimeScaffold)
	buf.WriteString("\n")
	buf.WriteString(lexerSrc)
	buf.WriteString(parserSrc)

	formatted, err := format.Source([]byte(buf.String()))
	if err != nil {
		return nil, warnings, llerr.NewFragmentSyntax("assembled output", buf.String(), err)
	}

	return formatted, warnings, nil
}

// verifyFragments tokenizes every opaque target-language fragment a
// grammar carries — the preamble, each nonterminal's parameter list and
// return type, each rule's action, and each call's argument expression
// — so a typo surfaces as a precise FragmentSyntax error rather than a
// baffling gofmt failure on the fully assembled output.
func verifyFragments(g grammar.Grammar, preamble string) error {
	if err := tokenize("preamble", preamble); err != nil {
		return err
	}
	for _, nt := range g.NonTerms {
		if err := tokenize("return type of "+string(nt.Name), nt.ReturnType); err != nil {
			return err
		}
		if nt.Params != "" {
			if err := tokenize("parameters of "+string(nt.Name), nt.Params); err != nil {
				return err
			}
		}
		for i, rule := range nt.Rules {
			ctx := "action in rule " + strconv.Itoa(i+1) + " of " + string(nt.Name)
			if err := tokenize(ctx, rule.Action); err != nil {
				return err
			}
			for _, n := range rule.Nodes {
				if ref, ok := n.(grammar.NonTermRef); ok && ref.Args != "" {
					argsCtx := "call arguments to " + string(ref.Name) + " in rule " + strconv.Itoa(i+1) + " of " + string(nt.Name)
					if err := tokenize(argsCtx, ref.Args); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func tokenize(context, fragment string) error {
	if strings.TrimSpace(fragment) == "" {
		return nil
	}
	fset := token.NewFileSet()
	file := fset.AddFile(context, fset.Base(), len(fragment))

	var msgs []string
	var s scanner.Scanner
	s.Init(file, []byte(fragment), func(pos token.Position, msg string) {
		msgs = append(msgs, msg)
	}, 0)
	for {
		_, tok, _ := s.Scan()
		if tok == token.EOF {
			break
		}
	}
	if len(msgs) > 0 {
		return llerr.NewFragmentSyntax(context, fragment, errors.New(strings.Join(msgs, "; ")))
	}
	return nil
}
