package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_AddRule_registersNonterminals(t *testing.T) {
	assert := assert.New(t)

	g := New[string]("start")
	g.CreateRule("start", NT("a"), StrTerminal("b"))

	assert.True(g.HasNonterminal("start"))
	assert.True(g.HasNonterminal("a"))
	assert.False(g.HasNonterminal("b"), "terminals are not registered as nonterminals")

	rules := g.GetRulesByLHS(NT("start"))
	assert.Len(rules, 1)
}

func Test_Grammar_AddRule_dedupesByValue(t *testing.T) {
	assert := assert.New(t)

	g := New[string]("start")
	g.CreateRule("start", StrTerminal("a"))
	g.CreateRule("start", StrTerminal("a"))
	g.CreateRule("start", StrTerminal("b"))

	assert.Len(g.Rules(), 2)
}

func Test_Grammar_AddNonterminal_duplicate(t *testing.T) {
	assert := assert.New(t)

	g := New[string]("start")
	assert.NoError(g.AddNonterminal(NT("a")))

	err := g.AddNonterminal(NT("a"))
	assert.Error(err)

	var dupErr *DuplicateNonterminalError
	assert.ErrorAs(err, &dupErr)
}

func Test_Grammar_NewStart_createsAugmentedRuleOnce(t *testing.T) {
	assert := assert.New(t)

	g := New[string]("start")
	g.CreateRule("start", StrTerminal("a"))

	sPrime, err := g.NewStart()
	assert.NoError(err)
	assert.Equal("__new_start__", sPrime.Name)

	rules := g.GetRulesByLHS(sPrime)
	assert.Len(rules, 1)
	assert.Equal([]Symbol{NT("start")}, rules[0].RHS)

	// Calling again must not add a second rule or change the returned value.
	again, err := g.NewStart()
	assert.NoError(err)
	assert.Equal(sPrime, again)
	assert.Len(g.GetRulesByLHS(sPrime), 1)
}

func Test_Grammar_NewStart_reservedNameInUse(t *testing.T) {
	assert := assert.New(t)

	g := New[string]("start")
	g.CreateRule("start", StrTerminal("a"))
	g.CreateRule("__new_start__", StrTerminal("x"))

	_, err := g.NewStart()
	assert.Error(err)

	var reservedErr *ReservedNameInUseError
	assert.ErrorAs(err, &reservedErr)
}

func Test_Grammar_Prune_rebuildsFromRules(t *testing.T) {
	assert := assert.New(t)

	g := New[string]("start")
	g.CreateRule("start", NT("a"))
	g.EnsureNonterminal("unused") // registered but never used in a rule

	assert.True(g.HasNonterminal("unused"))

	g.Prune()

	assert.False(g.HasNonterminal("unused"))
	assert.True(g.HasNonterminal("start"))
}

func Test_Grammar_Prune_keepsNewStart(t *testing.T) {
	assert := assert.New(t)

	g := New[string]("start")
	g.CreateRule("start", StrTerminal("a"))
	sPrime, err := g.NewStart()
	assert.NoError(err)

	g.Prune()

	assert.True(g.HasNonterminal(sPrime.Name))
}

func Test_SplitLongTerminals(t *testing.T) {
	assert := assert.New(t)

	g := New[string]("start")
	g.CreateRule("start", StrTerminal("abc"), NT("rest"))
	g.CreateRule("start", StrTerminal(""))
	g.CreateRule("rest", StrTerminal("d"))

	split := SplitLongTerminals(g)

	startRules := split.GetRulesByLHS(NT("start"))
	assert.Len(startRules, 2)

	var sawSplit, sawEmpty bool
	for _, r := range startRules {
		if len(r.RHS) == 0 {
			sawEmpty = true
			continue
		}
		if len(r.RHS) == 4 {
			sawSplit = true
			assert.Equal(StrTerminal("a"), r.RHS[0])
			assert.Equal(StrTerminal("b"), r.RHS[1])
			assert.Equal(StrTerminal("c"), r.RHS[2])
			assert.Equal(NT("rest"), r.RHS[3])
		}
	}
	assert.True(sawSplit)
	assert.True(sawEmpty, "zero-length string terminal should be dropped, not kept as an empty rule")
}

func Test_SplitLongTerminals_skipsAugmentedStartRule(t *testing.T) {
	assert := assert.New(t)

	g := New[string]("start")
	g.CreateRule("start", StrTerminal("xy"))
	_, err := g.NewStart()
	assert.NoError(err)

	split := SplitLongTerminals(g)

	// The augmented rule must not have been carried over and split; it is
	// regenerated fresh by whoever augments the split grammar.
	assert.False(split.HasNonterminal("__new_start__"))
}

func Test_Rule_Key_equalForEqualValue(t *testing.T) {
	assert := assert.New(t)

	r1 := NewRule[string](NT("S"), NT("A"), StrTerminal("b"))
	r2 := NewRule[string](NT("S"), NT("A"), StrTerminal("b"))
	r3 := NewRule[string](NT("S"), StrTerminal("b"), NT("A"))

	assert.Equal(r1.Key(), r2.Key())
	assert.NotEqual(r1.Key(), r3.Key())
}

func Test_EarleyItem_ShiftedAndKey(t *testing.T) {
	assert := assert.New(t)

	r := NewRule[string](NT("S"), NT("A"), StrTerminal("b"))
	it := EarleyItem[string]{Rule: r, Dot: 0, Start: 3}

	assert.False(it.Complete())
	assert.Equal(Symbol(NT("A")), it.NextSymbol())

	shifted := it.Shifted()
	assert.Equal(1, shifted.Dot)
	assert.NotEqual(it.Key(), shifted.Key())

	final := shifted.Shifted()
	assert.True(final.Complete())
	assert.Nil(final.NextSymbol())
}

func Test_LRItem_LookaheadDistinguishesItems(t *testing.T) {
	assert := assert.New(t)

	r := NewRule[string](NT("S"), StrTerminal("a"))
	short := LRItem[string]{Rule: r, Dot: 0, Lookahead: []string{"x"}}
	long := LRItem[string]{Rule: r, Dot: 0, Lookahead: []string{"x", "y"}}

	assert.NotEqual(short.Key(), long.Key())
}
