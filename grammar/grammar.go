// Package grammar defines the immutable data model of an LL(1) grammar:
// terminals, nonterminals, rules, and the nodes that make up a rule's
// right-hand side (spec.md §3). Values in this package are built once by
// the notation front end (or directly, as in the package's own test
// grammars) and then consumed read-only by firstfollow, llcheck,
// lexergen, and parsergen.
package grammar

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/shadowCow/llgen/llerr"
)

// Symbol names a terminal or nonterminal.
type Symbol string

// RecognizerKind distinguishes how a Terminal matches input text.
type RecognizerKind int

const (
	// Literal matches an exact prefix after leading whitespace is skipped.
	Literal RecognizerKind = iota
	// Regex matches an anchored-at-start regular expression after
	// leading whitespace is skipped.
	Regex
)

// Terminal is a named atomic input shape: a human label plus a
// recognizer descriptor that is either a literal string or a regular
// expression anchored at the cursor.
type Terminal struct {
	Label   string
	Kind    RecognizerKind
	Pattern string // the literal text, or the regex source
}

// ID returns a deterministic, collision-resistant identifier derived
// from the terminal's label, stable across runs, suitable for use in
// emitted Go symbol names. It mirrors the teacher's
// (original_source/src/lexer.rs) Term::token_name() hashing scheme,
// adapted so the visible prefix stays readable in generated code instead
// of being a bare hash.
func (t Terminal) ID() string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(t.Label))
	return fmt.Sprintf("%s_%x", sanitizeIdent(t.Label), h.Sum64())
}

// sanitizeIdent strips a label down to the subset of characters legal as
// a Go identifier fragment, falling back to "Tok" if nothing survives
// (e.g. a terminal whose label is punctuation like "+").
func sanitizeIdent(label string) string {
	var b strings.Builder
	for i, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "Tok"
	}
	return b.String()
}

// Node is a single element of a rule's right-hand side: either a
// terminal reference or a nonterminal reference.
type Node interface {
	isNode()
}

// TermRef references a declared Terminal by label, optionally bound to
// a name for use in the rule's semantic action.
type TermRef struct {
	Term string // Terminal.Label
	Bind string // "" if unbound
}

func (TermRef) isNode() {}

// NonTermRef references a declared NonTermDef by name, optionally bound
// to a name, optionally carrying an argument-expression fragment passed
// through verbatim to the callee's formal parameters.
type NonTermRef struct {
	Name Symbol
	Bind string // "" if unbound
	Args string // "" if no argument fragment
}

func (NonTermRef) isNode() {}

// Rule is an ordered sequence of Nodes (possibly empty, denoting ε) plus
// a semantic-action fragment producing the rule's return value.
type Rule struct {
	Nodes  []Node
	Action string
}

// Nullable reports whether this rule's RHS is syntactically empty (ε).
func (r Rule) Nullable() bool { return len(r.Nodes) == 0 }

// NonTermDef is a nonterminal definition.
type NonTermDef struct {
	Name       Symbol
	Params     string // formal-parameter fragment, "" if none
	ReturnType string // return-type fragment
	Rules      []Rule
	Exported   bool // true iff this is an entry point
}

// Grammar is an ordered collection of NonTermDefs plus the Terminals
// they reference.
type Grammar struct {
	Terminals []Terminal
	NonTerms  []NonTermDef
}

// Term looks up a Terminal by label.
func (g Grammar) Term(label string) (Terminal, bool) {
	for _, t := range g.Terminals {
		if t.Label == label {
			return t, true
		}
	}
	return Terminal{}, false
}

// NonTerm looks up a NonTermDef by name.
func (g Grammar) NonTerm(name Symbol) (*NonTermDef, bool) {
	for i := range g.NonTerms {
		if g.NonTerms[i].Name == name {
			return &g.NonTerms[i], true
		}
	}
	return nil, false
}

// Copy returns a deep-enough copy of g: the slices are copied so a
// caller can't mutate the original's backing arrays, but Node values
// (immutable value types) are shared.
func (g Grammar) Copy() Grammar {
	terms := make([]Terminal, len(g.Terminals))
	copy(terms, g.Terminals)

	nts := make([]NonTermDef, len(g.NonTerms))
	for i, nt := range g.NonTerms {
		rules := make([]Rule, len(nt.Rules))
		for j, r := range nt.Rules {
			nodes := make([]Node, len(r.Nodes))
			copy(nodes, r.Nodes)
			rules[j] = Rule{Nodes: nodes, Action: r.Action}
		}
		nt.Rules = rules
		nts[i] = nt
	}

	return Grammar{Terminals: terms, NonTerms: nts}
}

// Validate checks the invariants from spec.md §3: unique terminal
// labels, unique nonterminal names, and that every node reference names
// a declared symbol. It returns the first fatal error found, or a
// llerr.NoEntryPoint if the grammar is otherwise well-formed but has no
// exported entry point (that case is a warning, not a fatal error — see
// llerr.Fatal).
func (g Grammar) Validate() error {
	seenTerms := make(map[string]bool, len(g.Terminals))
	for _, t := range g.Terminals {
		if seenTerms[t.Label] {
			return llerr.NewDuplicateDefinition("terminal", t.Label)
		}
		seenTerms[t.Label] = true
	}

	seenNonTerms := make(map[Symbol]bool, len(g.NonTerms))
	for _, nt := range g.NonTerms {
		if seenNonTerms[nt.Name] {
			return llerr.NewDuplicateDefinition("nonterminal", string(nt.Name))
		}
		seenNonTerms[nt.Name] = true
	}

	hasEntry := false
	for _, nt := range g.NonTerms {
		if nt.Exported {
			hasEntry = true
		}
		for _, r := range nt.Rules {
			for _, n := range r.Nodes {
				switch node := n.(type) {
				case TermRef:
					if !seenTerms[node.Term] {
						return llerr.NewUnknownSymbol(node.Term, string(nt.Name))
					}
				case NonTermRef:
					if !seenNonTerms[node.Name] {
						return llerr.NewUnknownSymbol(string(node.Name), string(nt.Name))
					}
				}
			}
		}
	}

	if !hasEntry {
		return llerr.NoEntryPoint{}
	}
	return nil
}

// String renders a rule's RHS for diagnostics, e.g. in LL(1) conflict
// messages — grounded on the teacher's formatProduction
// (tooling/ll1/table.go) and original_source/src/ast.rs's Display impl.
func (r Rule) String() string {
	if len(r.Nodes) == 0 {
		return "ε"
	}
	parts := make([]string, len(r.Nodes))
	for i, n := range r.Nodes {
		switch node := n.(type) {
		case TermRef:
			parts[i] = fmt.Sprintf("%q", node.Term)
		case NonTermRef:
			parts[i] = string(node.Name)
		}
	}
	return strings.Join(parts, " ")
}
