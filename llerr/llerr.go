// Package llerr defines the error taxonomy produced by the grammar
// analysis and code-emission core (spec.md §7).
package llerr

import (
	"strings"

	"github.com/pkg/errors"
)

// LL1Conflict reports that two rules of the same nonterminal have
// overlapping predictive lookahead. Fatal.
type LL1Conflict struct {
	NonTerm    string
	Rule1      string
	Rule2      string
	Lookahead  string
	underlying error
}

func NewLL1Conflict(nonTerm, rule1, rule2, lookahead string) *LL1Conflict {
	return &LL1Conflict{
		NonTerm:   nonTerm,
		Rule1:     rule1,
		Rule2:     rule2,
		Lookahead: lookahead,
		underlying: errors.Errorf(
			"LL(1) conflict in %s: rules %q and %q both viable on lookahead %s",
			nonTerm, rule1, rule2, lookahead,
		),
	}
}

func (e *LL1Conflict) Error() string { return e.underlying.Error() }
func (e *LL1Conflict) Unwrap() error { return e.underlying }

// FragmentSyntax reports that an opaque code/type/arg fragment does not
// tokenize as valid Go source. Fatal.
type FragmentSyntax struct {
	Context    string
	Fragment   string
	underlying error
}

func NewFragmentSyntax(context, fragment string, cause error) *FragmentSyntax {
	return &FragmentSyntax{
		Context:  context,
		Fragment: fragment,
		underlying: errors.Wrapf(cause, "fragment in %s does not tokenize as Go source: %q",
			context, truncate(fragment, 60)),
	}
}

func (e *FragmentSyntax) Error() string { return e.underlying.Error() }
func (e *FragmentSyntax) Unwrap() error { return e.underlying }

// UnknownSymbol reports a node referencing a name that is neither a
// declared terminal nor a declared nonterminal. Fatal.
type UnknownSymbol struct {
	Name       string
	From       string
	underlying error
}

func NewUnknownSymbol(name, from string) *UnknownSymbol {
	return &UnknownSymbol{
		Name: name,
		From: from,
		underlying: errors.Errorf(
			"%q (referenced from %s) is neither a declared terminal nor a declared nonterminal",
			name, from,
		),
	}
}

func (e *UnknownSymbol) Error() string { return e.underlying.Error() }
func (e *UnknownSymbol) Unwrap() error { return e.underlying }

// DuplicateDefinition reports a repeated terminal or nonterminal name. Fatal.
type DuplicateDefinition struct {
	Kind       string // "terminal" or "nonterminal"
	Name       string
	underlying error
}

func NewDuplicateDefinition(kind, name string) *DuplicateDefinition {
	return &DuplicateDefinition{
		Kind: kind,
		Name: name,
		underlying: errors.Errorf("duplicate %s definition: %q", kind, name),
	}
}

func (e *DuplicateDefinition) Error() string { return e.underlying.Error() }
func (e *DuplicateDefinition) Unwrap() error { return e.underlying }

// NoEntryPoint reports that a grammar has no exported entry point. The
// generated output is still valid but exposes no public API; callers
// should warn and proceed rather than fail.
type NoEntryPoint struct{}

func (NoEntryPoint) Error() string {
	return "grammar has no nonterminal marked pub; generated output exposes no public entry point"
}

// truncate shortens s for embedding in a single-line error message.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", "\\n")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Fatal reports whether err is one of the fatal taxonomy members (as
// opposed to NoEntryPoint, which is a warning).
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	var noEntry NoEntryPoint
	return !errors.As(err, &noEntry)
}

// ExitCode maps a core error to the driver exit code described in spec.md §6.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case asConflict(err):
		return 3
	case asFragment(err):
		return 4
	default:
		return 2
	}
}

func asConflict(err error) bool {
	var e *LL1Conflict
	return errors.As(err, &e)
}

func asFragment(err error) bool {
	var e *FragmentSyntax
	return errors.As(err, &e)
}

// WithContext is a small helper for adding a single contextual frame to
// an error without losing %w-style unwrapping, mirroring the convention
// the rest of the pack uses (`fmt.Errorf("...: %w", err)`), but keeping
// a stack trace attached via pkg/errors for the CLI's verbose mode.
func WithContext(context string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, context)
}
