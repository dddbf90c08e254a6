// Package firstfollow computes FIRST and FOLLOW sets for a grammar.Grammar
// by naive fixpoint iteration (spec.md §4.1, §4.2). Set members are kept
// in a github.com/emirpasic/gods/sets/treeset ordered by each terminal's
// derived identifier so iteration — and therefore emitted code — is
// byte-stable across runs (spec.md §5, §9), the same concern
// npillmayer/gorgo's lr.tables.go addresses with a treeset/arraylist pair
// over LR items.
package firstfollow

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/shadowCow/llgen/grammar"
)

// EndOfInput is the FOLLOW-set sentinel for ⊣ (spec.md glossary).
const EndOfInput = "\x00$"

// epsilon is the FIRST-set sentinel for ε. It is distinct from any
// terminal label a grammar author can actually write (labels come from
// the notation front end's identifier/literal tokens, which can never
// contain a NUL byte).
const epsilon = "\x00ε"

// symbolSet is an ordered set of terminal labels (plus possibly the
// epsilon or end-of-input sentinel), canonically ordered by each
// terminal's derived identifier.
type symbolSet struct {
	*treeset.Set
}

func newSymbolSet(g grammar.Grammar) symbolSet {
	cmp := func(a, b interface{}) int {
		as, bs := a.(string), b.(string)
		if as == bs {
			return 0
		}
		ak, bk := sortKey(g, as), sortKey(g, bs)
		switch {
		case ak < bk:
			return -1
		case ak > bk:
			return 1
		default:
			if as < bs {
				return -1
			}
			return 1
		}
	}
	return symbolSet{treeset.NewWith(cmp)}
}

// sortKey sorts the epsilon sentinel first, the end-of-input sentinel
// last, and real terminals by their derived identifier in between.
func sortKey(g grammar.Grammar, label string) string {
	switch label {
	case epsilon:
		return ""
	case EndOfInput:
		return "\xff\xff\xff\xff"
	}
	if t, ok := g.Term(label); ok {
		return t.ID()
	}
	return label
}

// Labels returns the set's members, in canonical order, skipping the
// epsilon sentinel (EndOfInput, if present, is kept — callers that want
// it excluded should filter it explicitly, since FOLLOW sets use it as a
// real dispatch marker in parsergen).
func (s symbolSet) Labels() []string {
	out := make([]string, 0, s.Size())
	for _, v := range s.Values() {
		if v.(string) == epsilon {
			continue
		}
		out = append(out, v.(string))
	}
	return out
}

func (s symbolSet) hasEpsilon() bool { return s.Contains(epsilon) }

func (s symbolSet) addAll(other symbolSet) bool {
	before := s.Size()
	for _, v := range other.Values() {
		s.Add(v)
	}
	return s.Size() != before
}

func (s symbolSet) addAllExceptEpsilon(other symbolSet) bool {
	before := s.Size()
	for _, v := range other.Values() {
		if v.(string) == epsilon {
			continue
		}
		s.Add(v)
	}
	return s.Size() != before
}
