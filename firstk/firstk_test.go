package firstk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/parsegen/grammar"
)

// equalAB is the classic { a^n b^n } grammar used throughout spec.md §8.
func equalAB() *grammar.Grammar[string] {
	g := grammar.New[string]("S")
	g.CreateRule("S", grammar.StrTerminal("a"), grammar.NT("S"), grammar.StrTerminal("b"))
	g.CreateRule("S")
	return g
}

func Test_FirstK_k1_nonterminal(t *testing.T) {
	assert := assert.New(t)

	g := equalAB()
	p, err := New[string](g, 1)
	assert.NoError(err)

	set := p.expandSymbol(grammar.NT("S"))
	got := Tuples(set)

	assert.Contains(got, []string{"a"})
	assert.Contains(got, []string{})
}

func Test_FirstK_k2_capturesTwoTokenPrefix(t *testing.T) {
	assert := assert.New(t)

	g := equalAB()
	p, err := New[string](g, 2)
	assert.NoError(err)

	set := p.expandSymbol(grammar.NT("S"))
	got := Tuples(set)

	assert.Contains(got, []string{"a", "a"})
	assert.Contains(got, []string{"a", "b"})
}

func Test_FirstK_sequence_withContinuation(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New[string]("S")
	g.CreateRule("S", grammar.NT("A"), grammar.StrTerminal("c"))
	g.CreateRule("A", grammar.StrTerminal("a"))

	p, err := New[string](g, 2)
	assert.NoError(err)

	seq := []grammar.Symbol{grammar.NT("A")}
	set := p.FirstK(seq, []string{"c", "z"})
	got := Tuples(set)

	assert.Equal([][]string{{"a", "c"}}, got)
}

func Test_FirstK_emptySequence_isEmptyTuple(t *testing.T) {
	assert := assert.New(t)

	g := equalAB()
	p, err := New[string](g, 3)
	assert.NoError(err)

	set := p.expandSequence(nil)
	got := Tuples(set)

	assert.Equal([][]string{{}}, got)
}

func Test_FirstK_indirectRecursion(t *testing.T) {
	assert := assert.New(t)

	g := grammar.New[string]("A")
	g.CreateRule("A", grammar.NT("B"))
	g.CreateRule("B", grammar.NT("A"), grammar.StrTerminal("x"))
	g.CreateRule("B", grammar.StrTerminal("y"))

	p, err := New[string](g, 2)
	assert.NoError(err)

	got := Tuples(p.expandSymbol(grammar.NT("A")))

	assert.Contains(got, []string{"y"})
	assert.Contains(got, []string{"y", "x"})
}

func Test_FirstK_boundedByK_neverExceedsLength(t *testing.T) {
	assert := assert.New(t)

	g := equalAB()
	p, err := New[string](g, 2)
	assert.NoError(err)

	for _, tup := range Tuples(p.expandSymbol(grammar.NT("S"))) {
		assert.LessOrEqual(len(tup), 2)
	}
}
