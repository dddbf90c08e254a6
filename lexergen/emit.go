// Package lexergen emits the three textual artifacts of spec.md §4.4: a
// token tag enumeration, a recognizer/checker pair per Terminal, and a
// scanner that classifies the current lookahead by trying each
// terminal's checker in declaration order. Declaration order is the
// disambiguation order (spec.md §4.4's ordering policy) — there is no
// maximal-munch guarantee across terminals.
package lexergen

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/shadowCow/llgen/grammar"
)

// TokenConst is the emitted Go identifier for a terminal's token tag,
// e.g. "TokNum_" followed by the hex hash for a terminal labelled "num"
// (a label with no letters or digits, such as "+", gives just "Tok_" and
// the hash). Built by camel-casing the sanitized
// label before appending the terminal's derived identifier suffix —
// this keeps generated identifiers reviewable instead of the teacher's
// upstream (original_source/src/lexer.rs) bare "Tok_<hash>" scheme.
func TokenConst(t grammar.Terminal) string {
	return "Tok" + strcase.ToCamel(sanitizeForCamel(t.Label)) + "_" + hashSuffix(t)
}

func hashSuffix(t grammar.Terminal) string {
	id := t.ID()
	if idx := strings.LastIndexByte(id, '_'); idx >= 0 {
		return id[idx+1:]
	}
	return id
}

func sanitizeForCamel(label string) string {
	var b strings.Builder
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "sym"
	}
	return b.String()
}

func checkFuncName(t grammar.Terminal) string     { return "check" + TokenConst(t) }
func recognizeFuncName(t grammar.Terminal) string { return "recognize" + TokenConst(t) }
func regexVarName(t grammar.Terminal) string      { return "re" + TokenConst(t) }

// Emit renders the token enum, per-terminal recognizer/checker
// functions, and the scanner for g's Terminals.
func Emit(g grammar.Grammar) (string, error) {
	var b strings.Builder

	emitTokenEnum(&b, g)
	b.WriteString("\n")
	for _, t := range g.Terminals {
		if t.Kind == grammar.Regex {
			fmt.Fprintf(&b, "var %s = sync.OnceValue(func() *regexp.Regexp { return regexp.MustCompile(%q) })\n\n",
				regexVarName(t), t.Pattern)
		}
	}

	for _, t := range g.Terminals {
		emitCheckAndRecognize(&b, t)
	}

	emitScanner(&b, g)

	return b.String(), nil
}

func emitTokenEnum(b *strings.Builder, g grammar.Grammar) {
	b.WriteString("// Token identifies a lexical category recognized by the generated\n")
	b.WriteString("// scanner. TokenEOF doubles as \"no terminal's checker matched here\",\n")
	b.WriteString("// per spec.md §4.4 — it is used both for genuine end of input and for\n")
	b.WriteString("// the \"no token\" lookahead the predictive parser dispatches on.\n")
	b.WriteString("type Token int\n\n")
	b.WriteString("const (\n\tTokenEOF Token = iota\n")
	for _, t := range g.Terminals {
		fmt.Fprintf(b, "\t%s\n", TokenConst(t))
	}
	b.WriteString(")\n\n")

	b.WriteString("func (t Token) String() string {\n\tswitch t {\n\tcase TokenEOF:\n\t\treturn \"end of input\"\n")
	for _, t := range g.Terminals {
		fmt.Fprintf(b, "\tcase %s:\n\t\treturn %q\n", TokenConst(t), t.Label)
	}
	b.WriteString("\t}\n\treturn \"unknown token\"\n}\n")
}

func emitCheckAndRecognize(b *strings.Builder, t grammar.Terminal) {
	switch t.Kind {
	case grammar.Literal:
		fmt.Fprintf(b, "func %s(c *Cursor) bool {\n\treturn c.IsPrefix(%q)\n}\n\n",
			checkFuncName(t), t.Pattern)
		fmt.Fprintf(b, "func %s(c *Cursor) (string, error) {\n\tif s, ok := c.ExpectLiteral(%q); ok {\n\t\treturn s, nil\n\t}\n\treturn \"\", &UnexpectedToken{Expected: %q, Actual: describeCurrent(c)}\n}\n\n",
			recognizeFuncName(t), t.Pattern, t.Label)
	case grammar.Regex:
		fmt.Fprintf(b, "func %s(c *Cursor) bool {\n\treturn c.IsPrefixRegex(%s())\n}\n\n",
			checkFuncName(t), regexVarName(t))
		fmt.Fprintf(b, "func %s(c *Cursor) (string, error) {\n\tif s, ok := c.ExpectRegex(%s()); ok {\n\t\treturn s, nil\n\t}\n\treturn \"\", &UnexpectedToken{Expected: %q, Actual: describeCurrent(c)}\n}\n\n",
			recognizeFuncName(t), regexVarName(t), t.Label)
	}
}

func emitScanner(b *strings.Builder, g grammar.Grammar) {
	b.WriteString("// scan classifies the current lookahead by trying each terminal's\n")
	b.WriteString("// checker in declaration order and yielding the first match (spec.md\n")
	b.WriteString("// §4.4); there is no maximal-munch guarantee across terminals.\n")
	b.WriteString("func scan(c *Cursor) Token {\n")
	for _, t := range g.Terminals {
		fmt.Fprintf(b, "\tif %s(c) {\n\t\treturn %s\n\t}\n", checkFuncName(t), TokenConst(t))
	}
	b.WriteString("\treturn TokenEOF\n}\n\n")

	b.WriteString("func describeCurrent(c *Cursor) string {\n\treturn scan(c).String()\n}\n")
}
