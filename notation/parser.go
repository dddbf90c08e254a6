package notation

import (
	"fmt"

	"github.com/shadowCow/llgen/grammar"
)

// Description is the parsed result of a .llg source file: a preamble
// fragment (raw Go text available to every semantic action) plus the
// grammar it declares.
type Description struct {
	Preamble string
	Grammar  grammar.Grammar
}

// ParseError reports a syntax error in a .llg source file.
type ParseError struct {
	Line, Column int
	Msg          string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Parse lexes and parses a complete .llg source file:
//
//	description := preamble? tokens_block rules_block
//	preamble    := "preamble" Code
//	tokens_block:= "tokens" "{" { token_decl } "}"
//	token_decl  := Identifier "=" ("token" | "regex") Literal
//	rules_block := "rules" "{" { nonterm_def } "}"
//	nonterm_def := "pub"? Identifier [ "(" Code ")" ] "->" Code "{" { rule } "}"
//	rule        := { node } "=>" Code
//	node        := Literal [ ":" Identifier ]
//	             | Identifier [ ":" Identifier ]                 // Identifier names a declared terminal
//	             | Identifier [ "(" Code ")" ] [ ":" Identifier ] // Identifier names a declared nonterminal
func Parse(source string) (Description, error) {
	toks, err := NewLexer(source).Tokens()
	if err != nil {
		return Description{}, err
	}
	p := &parser{toks: toks}
	return p.parseDescription()
}

type parser struct {
	toks       []Token
	pos        int
	termLabels map[string]bool // populated from the tokens block before rules are parsed
}

func (p *parser) peek() Token  { return p.toks[p.pos] }
func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	t := p.peek()
	if t.Kind != kind {
		return Token{}, &ParseError{
			Line: t.Line, Column: t.Column,
			Msg: fmt.Sprintf("expected %s, found %s", kind, describeToken(t)),
		}
	}
	return p.advance(), nil
}

func describeToken(t Token) string {
	if t.Value == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Value)
}

func (p *parser) parseDescription() (Description, error) {
	var desc Description

	if p.peek().Kind == TokPreamble {
		p.advance()
		code, err := p.expect(TokCode)
		if err != nil {
			return Description{}, err
		}
		desc.Preamble = code.Value
	}

	if _, err := p.expect(TokTokens); err != nil {
		return Description{}, err
	}
	if _, err := p.expect(TokLBrace); err != nil {
		return Description{}, err
	}
	for p.peek().Kind != TokRBrace {
		term, err := p.parseTokenDecl()
		if err != nil {
			return Description{}, err
		}
		desc.Grammar.Terminals = append(desc.Grammar.Terminals, term)
	}
	p.advance() // "}"

	p.termLabels = make(map[string]bool, len(desc.Grammar.Terminals))
	for _, t := range desc.Grammar.Terminals {
		p.termLabels[t.Label] = true
	}

	if _, err := p.expect(TokRules); err != nil {
		return Description{}, err
	}
	if _, err := p.expect(TokLBrace); err != nil {
		return Description{}, err
	}
	for p.peek().Kind != TokRBrace {
		def, err := p.parseNonTermDef()
		if err != nil {
			return Description{}, err
		}
		desc.Grammar.NonTerms = append(desc.Grammar.NonTerms, def)
	}
	p.advance() // "}"

	if _, err := p.expect(TokEOF); err != nil {
		return Description{}, err
	}

	return desc, nil
}

func (p *parser) parseTokenDecl() (grammar.Terminal, error) {
	name, err := p.expect(TokIdentifier)
	if err != nil {
		return grammar.Terminal{}, err
	}
	if _, err := p.expect(TokAssign); err != nil {
		return grammar.Terminal{}, err
	}

	var kind grammar.RecognizerKind
	switch p.peek().Kind {
	case TokTok:
		p.advance()
		kind = grammar.Literal
	case TokReg:
		p.advance()
		kind = grammar.Regex
	default:
		t := p.peek()
		return grammar.Terminal{}, &ParseError{
			Line: t.Line, Column: t.Column,
			Msg: fmt.Sprintf(`expected "token" or "regex", found %s`, describeToken(t)),
		}
	}

	pattern, err := p.expect(TokLiteral)
	if err != nil {
		return grammar.Terminal{}, err
	}

	return grammar.Terminal{Label: name.Value, Kind: kind, Pattern: pattern.Value}, nil
}

func (p *parser) parseNonTermDef() (grammar.NonTermDef, error) {
	var def grammar.NonTermDef

	if p.peek().Kind == TokPub {
		p.advance()
		def.Exported = true
	}

	name, err := p.expect(TokIdentifier)
	if err != nil {
		return grammar.NonTermDef{}, err
	}
	def.Name = grammar.Symbol(name.Value)

	if p.peek().Kind == TokLParen {
		p.advance()
		params, err := p.expect(TokCode)
		if err != nil {
			return grammar.NonTermDef{}, err
		}
		def.Params = params.Value
		if _, err := p.expect(TokRParen); err != nil {
			return grammar.NonTermDef{}, err
		}
	}

	if _, err := p.expect(TokTyArrow); err != nil {
		return grammar.NonTermDef{}, err
	}
	retTy, err := p.expect(TokCode)
	if err != nil {
		return grammar.NonTermDef{}, err
	}
	def.ReturnType = retTy.Value

	if _, err := p.expect(TokLBrace); err != nil {
		return grammar.NonTermDef{}, err
	}
	for p.peek().Kind != TokRBrace {
		rule, err := p.parseRule()
		if err != nil {
			return grammar.NonTermDef{}, err
		}
		def.Rules = append(def.Rules, rule)
	}
	p.advance() // "}"

	return def, nil
}

func (p *parser) parseRule() (grammar.Rule, error) {
	var rule grammar.Rule
	for p.peek().Kind != TokArrow {
		if p.peek().Kind == TokEOF || p.peek().Kind == TokRBrace {
			t := p.peek()
			return grammar.Rule{}, &ParseError{
				Line: t.Line, Column: t.Column,
				Msg: fmt.Sprintf(`expected "=>", found %s`, describeToken(t)),
			}
		}
		node, err := p.parseNode()
		if err != nil {
			return grammar.Rule{}, err
		}
		rule.Nodes = append(rule.Nodes, node)
	}
	p.advance() // "=>"
	action, err := p.expect(TokCode)
	if err != nil {
		return grammar.Rule{}, err
	}
	rule.Action = action.Value
	return rule, nil
}

func (p *parser) parseNode() (grammar.Node, error) {
	switch p.peek().Kind {
	case TokLiteral:
		lit := p.advance()
		bind := ""
		if p.peek().Kind == TokColon {
			p.advance()
			name, err := p.expect(TokIdentifier)
			if err != nil {
				return nil, err
			}
			bind = name.Value
		}
		return grammar.TermRef{Term: lit.Value, Bind: bind}, nil

	case TokIdentifier:
		name := p.advance()

		// A bare identifier names a declared terminal (referenced by
		// label, not by quoted pattern) or a nonterminal; the tokens
		// block is parsed first, so p.termLabels disambiguates. Only
		// nonterminal references take a parenthesized argument list.
		if p.termLabels[name.Value] {
			bind := ""
			if p.peek().Kind == TokColon {
				p.advance()
				bindTok, err := p.expect(TokIdentifier)
				if err != nil {
					return nil, err
				}
				bind = bindTok.Value
			}
			return grammar.TermRef{Term: name.Value, Bind: bind}, nil
		}

		args := ""
		if p.peek().Kind == TokLParen {
			p.advance()
			code, err := p.expect(TokCode)
			if err != nil {
				return nil, err
			}
			args = code.Value
			if _, err := p.expect(TokRParen); err != nil {
				return nil, err
			}
		}
		bind := ""
		if p.peek().Kind == TokColon {
			p.advance()
			bindTok, err := p.expect(TokIdentifier)
			if err != nil {
				return nil, err
			}
			bind = bindTok.Value
		}
		return grammar.NonTermRef{Name: grammar.Symbol(name.Value), Bind: bind, Args: args}, nil

	default:
		t := p.peek()
		return nil, &ParseError{
			Line: t.Line, Column: t.Column,
			Msg: fmt.Sprintf("expected a terminal or nonterminal reference, found %s", describeToken(t)),
		}
	}
}
