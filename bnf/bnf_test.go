package bnf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/parsegen/grammar"
)

func ruleSet(t *testing.T, g *grammar.Grammar[string]) map[string]grammar.Rule[string] {
	t.Helper()
	out := map[string]grammar.Rule[string]{}
	for _, r := range g.Rules() {
		out[r.Key()] = r
	}
	return out
}

func Test_Read_simple(t *testing.T) {
	assert := assert.New(t)

	src := `
		<start> ::= <a> <several-bs> | <3-c>;
		<a> ::= "a";  # comment
		// Another comment
		<several-bs> ::= "b" /* comment inside block */ <several-bs> | "b";
		<3-c> ::= "c c b";
	`

	g, err := Read(src, "start")
	assert.NoError(err)

	got := ruleSet(t, g)

	want := []grammar.Rule[string]{
		grammar.NewRule[string](grammar.NT("start"), grammar.NT("a"), grammar.NT("several-bs")),
		grammar.NewRule[string](grammar.NT("start"), grammar.NT("3-c")),
		grammar.NewRule[string](grammar.NT("a"), grammar.StrTerminal("a")),
		grammar.NewRule[string](grammar.NT("several-bs"), grammar.StrTerminal("b"), grammar.NT("several-bs")),
		grammar.NewRule[string](grammar.NT("several-bs"), grammar.StrTerminal("b")),
		grammar.NewRule[string](grammar.NT("3-c"), grammar.StrTerminal("c c b")),
	}

	assert.Len(got, len(want))
	for _, w := range want {
		assert.Contains(got, w.Key())
	}

	start, err := g.Start()
	assert.NoError(err)
	assert.Equal("start", start.Name)
}

func Test_Read_nestedBlockCommentsAndLineComments(t *testing.T) {
	assert := assert.New(t)

	src := `
		#!/bin/shabash whatever

		// comment
		<start> ::= "aboba" /* "ababa" /* nested comments, woah! */*/ "abiba"
			# another comment
			; //Yup
	# No newline`

	g, err := Read(src, "start")
	assert.NoError(err)

	rules := g.GetRulesByLHS(grammar.NT("start"))
	assert.Len(rules, 1)
	assert.Equal([]grammar.Symbol{grammar.StrTerminal("aboba"), grammar.StrTerminal("abiba")}, rules[0].RHS)
}

func Test_Read_terminalEscapes(t *testing.T) {
	assert := assert.New(t)

	src := `<start> ::= "a" | 'b' | "\\\"'\'c\n\r" | '\\\"d"\'\r\n';`

	g, err := Read(src, "start")
	assert.NoError(err)

	rules := g.GetRulesByLHS(grammar.NT("start"))
	assert.Len(rules, 4)

	var texts []string
	for _, r := range rules {
		texts = append(texts, string(r.RHS[0].(grammar.StrTerminal)))
	}

	assert.Contains(texts, "a")
	assert.Contains(texts, "b")
	assert.Contains(texts, "\\\"''c\n\r")
	assert.Contains(texts, "\\\"d\"'\r\n")
}

func Test_Read_malformedRule_errors(t *testing.T) {
	assert := assert.New(t)

	_, err := Read(`<start> ::= "a"`, "start") // missing semicolon
	assert.Error(err)
}
