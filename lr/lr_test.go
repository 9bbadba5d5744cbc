package lr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/parsegen/grammar"
)

func chars(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "")
}

// balancedParens is ambiguous (S -> S S admits more than one parse), so the
// LR builder must reject it with a shift-reduce conflict (spec.md §8.1).
func balancedParens() *grammar.Grammar[string] {
	g := grammar.New[string]("S")
	g.CreateRule("S", grammar.StrTerminal("("), grammar.NT("S"), grammar.StrTerminal(")"))
	g.CreateRule("S", grammar.NT("S"), grammar.NT("S"))
	g.CreateRule("S")
	return g
}

func Test_Build_ambiguousGrammar_raisesShiftReduceConflict(t *testing.T) {
	assert := assert.New(t)

	_, err := Build[string](balancedParens(), 1)
	assert.Error(err)

	var conflict *ShiftReduceConflict
	assert.ErrorAs(err, &conflict)
}

// lr1Seminar is the spec.md §8.3 grammar: S -> S "a" S "b" | "".
func lr1Seminar() *grammar.Grammar[string] {
	g := grammar.New[string]("S")
	g.CreateRule("S", grammar.NT("S"), grammar.StrTerminal("a"), grammar.NT("S"), grammar.StrTerminal("b"))
	g.CreateRule("S")
	return g
}

func Test_LR1Seminar_acceptsAndRejects(t *testing.T) {
	assert := assert.New(t)

	g := lr1Seminar()
	p, err := NewParser[string](g, 1, "")
	assert.NoError(err)

	accept := []string{"", "ab", "aabb"}
	for _, s := range accept {
		ok, err := p.Accept(chars(s))
		assert.NoError(err)
		assert.True(ok, "%q should be accepted", s)
	}

	reject := []string{"ba"}
	for _, s := range reject {
		ok, err := p.Accept(chars(s))
		assert.NoError(err)
		assert.False(ok, "%q should be rejected", s)
	}
}

// lr2Only is the spec.md §8.4 grammar, only disambiguable with 2 tokens of
// lookahead: S -> A B; A -> "a"; B -> C D | "a" E; C -> "ab"; D -> "bb";
// E -> "bba".
func lr2Only() *grammar.Grammar[string] {
	g := grammar.New[string]("S")
	g.CreateRule("S", grammar.NT("A"), grammar.NT("B"))
	g.CreateRule("A", grammar.StrTerminal("a"))
	g.CreateRule("B", grammar.NT("C"), grammar.NT("D"))
	g.CreateRule("B", grammar.StrTerminal("a"), grammar.NT("E"))
	g.CreateRule("C", grammar.StrTerminal("ab"))
	g.CreateRule("D", grammar.StrTerminal("bb"))
	g.CreateRule("E", grammar.StrTerminal("bba"))
	return g
}

func Test_LR2Only_requiresTwoTokensOfLookahead(t *testing.T) {
	assert := assert.New(t)

	_, err := Build[string](lr2Only(), 1)
	assert.Error(err, "k=1 is not enough to distinguish the two B alternatives")

	var conflict *ShiftReduceConflict
	assert.ErrorAs(err, &conflict)
}

func Test_LR2Only_acceptsAndRejectsAtK2(t *testing.T) {
	assert := assert.New(t)

	g := lr2Only()
	p, err := NewParser[string](g, 2, "")
	assert.NoError(err)

	// "aabbb" via A="a", B -> C D with C="ab", D="bb".
	ok, err := p.Accept([]string{"a", "ab", "bb"})
	assert.NoError(err)
	assert.True(ok)

	// "aabba" via A="a", B -> "a" E with E="bba".
	ok, err = p.Accept([]string{"a", "a", "bba"})
	assert.NoError(err)
	assert.True(ok)

	// "babba": "b" is not a terminal of this grammar at all.
	ok, err = p.Accept([]string{"b", "a", "bb", "a"})
	assert.NoError(err)
	assert.False(ok)

	// "a": incomplete, B never appears.
	ok, err = p.Accept([]string{"a"})
	assert.NoError(err)
	assert.False(ok)
}

// indirectRecursion is the spec.md §8.5 grammar: S -> A "!"; A -> "a" B | "";
// B -> "b" A | "".
func indirectRecursion() *grammar.Grammar[string] {
	g := grammar.New[string]("S")
	g.CreateRule("S", grammar.NT("A"), grammar.StrTerminal("!"))
	g.CreateRule("A", grammar.StrTerminal("a"), grammar.NT("B"))
	g.CreateRule("A")
	g.CreateRule("B", grammar.StrTerminal("b"), grammar.NT("A"))
	g.CreateRule("B")
	return g
}

func Test_IndirectRecursion_acceptsAndRejects(t *testing.T) {
	assert := assert.New(t)

	g := indirectRecursion()
	p, err := NewParser[string](g, 1, "")
	assert.NoError(err)

	accept := []string{"!", "a!", "ab!", "ababab!"}
	for _, s := range accept {
		ok, err := p.Accept(chars(s))
		assert.NoError(err)
		assert.True(ok, "%q should be accepted", s)
	}

	reject := []string{"", "ab", "abba!"}
	for _, s := range reject {
		ok, err := p.Accept(chars(s))
		assert.NoError(err)
		assert.False(ok, "%q should be rejected", s)
	}
}

func Test_RenderStates_producesNonEmptyTable(t *testing.T) {
	assert := assert.New(t)

	root, err := Build[string](lr1Seminar(), 1)
	assert.NoError(err)

	out := RenderStates(root)
	assert.Contains(out, "state")
	assert.Contains(out, "S0")
}
