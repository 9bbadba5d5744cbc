// Package bnf reads the textual BNF-like grammar notation spec.md uses for
// its examples (`<name> ::= rhs (| rhs)* ;`) into a *grammar.Grammar[string].
// Grounded on original_source/parsers_lib/bnf_metaparser.py's
// BNFMetaParser.
package bnf

import (
	"fmt"
	"unicode"

	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/lex"
)

const (
	punctRuleDef    = "::="
	punctOr         = "|"
	punctLeftAngle  = "<"
	punctRightAngle = ">"
	punctSemicolon  = ";"
)

// tokenizerConfig returns the lex.Config used to scan BNF source: names are
// alphanumeric plus "-"/"_" (so nonterminal names can contain hyphens),
// punctuation is the five symbols above, and comments/strings use the
// tokenizer's defaults.
func tokenizerConfig() lex.Config {
	cfg := lex.DefaultConfig()
	cfg.Punctuation = []string{punctRuleDef, punctOr, punctLeftAngle, punctRightAngle, punctSemicolon}
	cfg.IsNameChar = func(ch rune) bool {
		return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '-' || ch == '_'
	}
	return cfg
}

// Read parses src as a sequence of BNF rules and returns the resulting
// grammar, rooted at the given start nonterminal name. String terminals
// are kept exactly as written ("c c b" stays one terminal); call
// grammar.SplitLongTerminals explicitly if a character-level grammar is
// wanted instead.
func Read(src string, start string) (*grammar.Grammar[string], error) {
	tz := lex.New(tokenizerConfig(), src)
	toks, err := tz.Tokenize()
	if err != nil {
		return nil, err
	}

	r := &reader{toks: toks, g: grammar.New[string](start)}
	if err := r.parseGrammar(); err != nil {
		return nil, err
	}

	return r.g, nil
}

type reader struct {
	toks []lex.Token
	pos  int
	g    *grammar.Grammar[string]
}

func (r *reader) peek() lex.Token {
	return r.toks[r.pos]
}

func (r *reader) next() lex.Token {
	t := r.toks[r.pos]
	if r.pos < len(r.toks)-1 {
		r.pos++
	}
	return t
}

func (r *reader) expectPunct(p string) (lex.Token, error) {
	t := r.peek()
	if t.Kind != lex.Punct || t.Text != p {
		return lex.Token{}, fmt.Errorf("bnf: expected %q, got %s", p, t)
	}
	return r.next(), nil
}

func (r *reader) expectKind(k lex.Kind) (lex.Token, error) {
	t := r.peek()
	if t.Kind != k {
		return lex.Token{}, fmt.Errorf("bnf: expected %s, got %s", k, t)
	}
	return r.next(), nil
}

func (r *reader) isPunct(p string) bool {
	t := r.peek()
	return t.Kind == lex.Punct && t.Text == p
}

func (r *reader) parseGrammar() error {
	for r.peek().Kind != lex.EOF {
		if err := r.parseRule(); err != nil {
			return err
		}
	}
	_, err := r.expectKind(lex.EOF)
	return err
}

func (r *reader) parseRule() error {
	lhs, err := r.parseNonterminal()
	if err != nil {
		return err
	}

	if _, err := r.expectPunct(punctRuleDef); err != nil {
		return err
	}

	variants, err := r.parseRHSVariants()
	if err != nil {
		return err
	}

	for _, rhs := range variants {
		r.g.AddRule(grammar.NewRule[string](lhs, rhs...))
	}

	_, err = r.expectPunct(punctSemicolon)
	return err
}

func (r *reader) parseRHSVariants() ([][]grammar.Symbol, error) {
	var variants [][]grammar.Symbol

	for {
		rhs, err := r.parseRHS()
		if err != nil {
			return nil, err
		}
		variants = append(variants, rhs)

		if !r.isPunct(punctOr) {
			break
		}
		r.next()
	}

	return variants, nil
}

func (r *reader) parseRHS() ([]grammar.Symbol, error) {
	var out []grammar.Symbol

	for {
		if r.isPunct(punctOr) || r.isPunct(punctSemicolon) {
			break
		}
		sym, err := r.parseAnySymbol()
		if err != nil {
			return nil, err
		}
		// A bare "" string literal is how BNF source spells epsilon; an empty
		// RHS already encodes that (see grammar.Rule), so drop it here rather
		// than adding a terminal that can never match a real token.
		if term, ok := sym.(grammar.StrTerminal); ok && term == "" {
			continue
		}
		out = append(out, sym)
	}

	return out, nil
}

func (r *reader) parseAnySymbol() (grammar.Symbol, error) {
	t := r.peek()

	if r.isPunct(punctLeftAngle) {
		return r.parseNonterminal()
	}
	if t.Kind == lex.StringLit {
		r.next()
		return grammar.StrTerminal(t.Text), nil
	}

	return nil, fmt.Errorf("bnf: expected terminal or nonterminal, got %s", t)
}

func (r *reader) parseNonterminal() (grammar.Nonterminal, error) {
	if _, err := r.expectPunct(punctLeftAngle); err != nil {
		return grammar.Nonterminal{}, err
	}
	nameTok, err := r.expectKind(lex.Name)
	if err != nil {
		return grammar.Nonterminal{}, err
	}
	if _, err := r.expectPunct(punctRightAngle); err != nil {
		return grammar.Nonterminal{}, err
	}
	return grammar.NT(nameTok.Text), nil
}
