// Package firstk computes FIRST_k sets over a grammar: for every
// nonterminal, and on demand for any symbol sequence, the set of token
// tuples of length <= k that can begin a derivable string. See spec.md §4.2
// for the algorithm this implements.
package firstk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/internal/util"
)

// tupleKey renders a token tuple as a canonical map key. This mirrors the
// teacher codebase's habit of keying sets by a value's String()/Sprintf
// rendering rather than requiring every element type to be independently
// hashable - each element is length-prefixed so a token containing the
// renderer's own separator can't collide with a different-arity tuple.
func tupleKey[T any](tup []T) string {
	var sb strings.Builder
	for _, tok := range tup {
		s := fmt.Sprintf("%v", tok)
		fmt.Fprintf(&sb, "%d:%s", len(s), s)
	}
	return sb.String()
}

// Provider computes and caches FIRST_k(A) for every nonterminal A in a
// grammar, then answers FIRST_k queries over arbitrary symbol sequences by
// composing those cached sets.
type Provider[T comparable] struct {
	g          *grammar.Grammar[T]
	k          int
	rulesByLHS map[grammar.Nonterminal][]grammar.Rule[T]
	newStart   grammar.Nonterminal

	// symbolCache[symbol.String()][tupleKey] = tuple
	symbolCache map[string]util.SVSet[[]T]
}

// New builds a Provider for g at the given k (k must be >= 1), triggering
// the grammar's augmented start (NewStart) and running the bounded
// saturation pass described in spec.md §4.2 up front.
func New[T comparable](g *grammar.Grammar[T], k int) (*Provider[T], error) {
	if k < 1 {
		return nil, fmt.Errorf("firstk: k must be >= 1, got %d", k)
	}

	newStart, err := g.NewStart()
	if err != nil {
		return nil, err
	}

	p := &Provider[T]{
		g:           g,
		k:           k,
		newStart:    newStart,
		rulesByLHS:  g.RulesByLHS(),
		symbolCache: map[string]util.SVSet[[]T]{},
	}

	p.saturate()

	return p, nil
}

// K returns the configured lookahead bound.
func (p *Provider[T]) K() int {
	return p.k
}

// NewStart returns the grammar's augmented start nonterminal S'.
func (p *Provider[T]) NewStart() grammar.Nonterminal {
	return p.newStart
}

// RulesByLHS returns the rules of the underlying grammar, bucketed by LHS.
func (p *Provider[T]) RulesByLHS() map[grammar.Nonterminal][]grammar.Rule[T] {
	return p.rulesByLHS
}

// sufficientIterations is the bounded saturation budget N = k * |rules|
// from spec.md §4.2: every productive derivation that extends a prefix does
// so within N unfoldings, since each unfolding either adds a token or
// reduces remaining capacity.
func (p *Provider[T]) sufficientIterations() int {
	n := p.k * len(p.g.Rules())
	if n < 1 {
		n = 1
	}
	return n
}

func (p *Provider[T]) saturate() {
	n := p.sufficientIterations()

	for i := 0; i < n; i++ {
		for _, nt := range p.g.Nonterminals() {
			p.absorb(nt, p.doExpandSymbol(nt))
		}
	}
}

func (p *Provider[T]) cacheFor(sym grammar.Symbol) util.SVSet[[]T] {
	key := sym.String()
	cache, ok := p.symbolCache[key]
	if !ok {
		cache = util.NewSVSet[[]T]()
		p.symbolCache[key] = cache
	}
	return cache
}

func (p *Provider[T]) absorb(sym grammar.Symbol, tuples [][]T) {
	cache := p.cacheFor(sym)
	for _, tup := range tuples {
		cache.Set(tupleKey(tup), tup)
	}
}

// expandSymbol returns the (possibly still-saturating) set of tuples
// currently cached for sym. saturate only drives the nonterminal fixpoint,
// so a terminal's single-token tuple - which never changes across
// iterations - is computed and absorbed lazily here on first request.
func (p *Provider[T]) expandSymbol(sym grammar.Symbol) util.SVSet[[]T] {
	cache := p.cacheFor(sym)
	if sym.IsTerminal() && cache.Len() == 0 {
		p.absorb(sym, p.doExpandSymbol(sym))
	}
	return cache
}

// doExpandSymbol computes one unfolding's worth of contributions to
// FIRST_k(sym): the representative token for a terminal, or the expansion
// of every alternative's RHS for a nonterminal.
func (p *Provider[T]) doExpandSymbol(sym grammar.Symbol) [][]T {
	if sym.IsTerminal() {
		term := sym.(grammar.Terminal[T])
		return [][]T{{term.Token()}}
	}

	nt := sym.(grammar.Nonterminal)

	var out [][]T
	for _, r := range p.rulesByLHS[nt] {
		for _, tup := range mapValues(p.expandSequence(r.RHS)) {
			out = append(out, tup)
		}
	}
	return out
}

func mapValues[T any](m util.SVSet[[]T]) [][]T {
	out := make([][]T, 0, m.Len())
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func minkowskySum[T any](a, b util.SVSet[[]T]) util.SVSet[[]T] {
	out := util.NewSVSet[[]T]()
	for _, ta := range a {
		for _, tb := range b {
			combined := make([]T, 0, len(ta)+len(tb))
			combined = append(combined, ta...)
			combined = append(combined, tb...)
			out.Set(tupleKey(combined), combined)
		}
	}
	return out
}

// expandSequence computes the set of tuples of length <= k that can start a
// string derivable from seq, per the truncate_k / set-concatenation
// definition in spec.md §4.2. A tuple is removed from further propagation
// (and added to the result) as soon as its length reaches k.
func (p *Provider[T]) expandSequence(seq []grammar.Symbol) util.SVSet[[]T] {
	result := util.NewSVSet[[]T]()
	cur := util.NewSVSet[[]T]()
	cur.Set(tupleKey([]T{}), []T{})

	k := p.k

	for _, sym := range seq {
		cur = minkowskySum(cur, p.expandSymbol(sym))

		next := util.NewSVSet[[]T]()
		for key, tup := range cur {
			if len(tup) >= k {
				trimmed := tup[:k]
				result.Set(tupleKey(trimmed), trimmed)
			} else {
				next.Set(key, tup)
			}
		}
		cur = next
	}

	for _, tup := range cur {
		result.Set(tupleKey(tup), tup)
	}

	return result
}

// FirstK computes FIRST_k(seq . continuation): the set of tuples of length
// <= k obtainable as a prefix of a string derivable from seq, padded out to
// length k (where possible) with tokens taken from continuation.
func (p *Provider[T]) FirstK(seq []grammar.Symbol, continuation []T) util.SVSet[[]T] {
	base := p.expandSequence(seq)

	out := util.NewSVSet[[]T]()
	for _, tup := range base {
		remaining := p.k - len(tup)
		if remaining < 0 {
			remaining = 0
		}
		if remaining > len(continuation) {
			remaining = len(continuation)
		}

		full := make([]T, 0, len(tup)+remaining)
		full = append(full, tup...)
		full = append(full, continuation[:remaining]...)

		out.Set(tupleKey(full), full)
	}

	return out
}

// Tuples returns the tuples of a FIRST_k result set, sorted by their string
// rendering for deterministic iteration in tests and diagnostics. Set
// membership itself carries no ordering guarantee (spec.md §5).
func Tuples[T any](set util.SVSet[[]T]) [][]T {
	keys := make([]string, 0, set.Len())
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][]T, len(keys))
	for i, k := range keys {
		out[i] = set.Get(k)
	}
	return out
}
