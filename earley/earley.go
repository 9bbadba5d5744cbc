// Package earley implements the Earley chart-recognizer engine: for any
// context-free grammar (ambiguous, left-recursive, or otherwise) it decides
// whether a finite token sequence is in the language, in O(n^3) worst case.
// See spec.md §4.3.
package earley

import (
	"fmt"
	"strings"

	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/internal/util"
)

// column holds the set of Earley items discovered at one input position,
// deduplicated by item key so that predict/complete never loop forever over
// an already-seen item.
type column[T any] struct {
	items []grammar.EarleyItem[T]
	seen  util.StringSet
}

func newColumn[T any]() *column[T] {
	return &column[T]{seen: util.NewStringSet()}
}

func (c *column[T]) add(it grammar.EarleyItem[T]) bool {
	key := it.Key()
	if c.seen.Has(key) {
		return false
	}
	c.seen.Add(key)
	c.items = append(c.items, it)
	return true
}

// Chart is the completed set of per-position item columns produced by a
// recognition run, position 0 through len(input).
type Chart[T any] struct {
	columns []*column[T]
}

// Column returns the items discovered at position i (0 <= i <= input
// length), in discovery order.
func (c *Chart[T]) Column(i int) []grammar.EarleyItem[T] {
	return c.columns[i].items
}

// Len returns the number of columns (input length + 1).
func (c *Chart[T]) Len() int {
	return len(c.columns)
}

func (c *Chart[T]) String() string {
	var sb strings.Builder
	for i, col := range c.columns {
		fmt.Fprintf(&sb, "=== %d ===\n", i)
		for _, it := range col.items {
			fmt.Fprintf(&sb, "  %s\n", it.String())
		}
	}
	return sb.String()
}

// Recognizer answers membership queries for a fixed grammar using the
// Earley chart-parsing algorithm.
type Recognizer[T comparable] struct {
	rulesByLHS map[grammar.Nonterminal][]grammar.Rule[T]
	newStart   grammar.Nonterminal
}

// New prepares a Recognizer for g, augmenting it with a fresh start symbol
// (spec.md §4.1) if that has not already happened.
func New[T comparable](g *grammar.Grammar[T]) (*Recognizer[T], error) {
	newStart, err := g.NewStart()
	if err != nil {
		return nil, err
	}

	return &Recognizer[T]{
		rulesByLHS: g.RulesByLHS(),
		newStart:   newStart,
	}, nil
}

// Accept reports whether toks is in the language of the grammar, along with
// the full chart produced in the process (useful for diagnostics and for
// the Earley/LR cross-checks in spec.md §8).
func (r *Recognizer[T]) Accept(toks []T) (bool, *Chart[T]) {
	chart := &Chart[T]{columns: make([]*column[T], len(toks)+1)}
	for i := range chart.columns {
		chart.columns[i] = newColumn[T]()
	}

	for _, rule := range r.rulesByLHS[r.newStart] {
		chart.columns[0].add(grammar.EarleyItem[T]{Rule: rule, Dot: 0, Start: 0})
	}

	for i := 0; i <= len(toks); i++ {
		r.processColumn(chart, i, toks)
	}

	return chart.accepted(r.newStart, len(toks)), chart
}

func (c *Chart[T]) accepted(newStart grammar.Nonterminal, n int) bool {
	for _, it := range c.columns[n].items {
		if it.Complete() && it.Rule.LHS == newStart && it.Start == 0 {
			return true
		}
	}
	return false
}

func (r *Recognizer[T]) processColumn(chart *Chart[T], i int, toks []T) {
	col := chart.columns[i]

	// col.items grows while we iterate (predict/complete append to it); the
	// bounds check is re-evaluated every pass so newly discovered items are
	// themselves processed before moving to the next column.
	for idx := 0; idx < len(col.items); idx++ {
		it := col.items[idx]

		if it.Complete() {
			r.complete(chart, i, it)
			continue
		}

		next := it.NextSymbol()
		if next.IsTerminal() {
			r.scan(chart, i, it, toks)
		} else {
			r.predict(chart, i, it)
		}
	}
}

func (r *Recognizer[T]) predict(chart *Chart[T], i int, it grammar.EarleyItem[T]) {
	nt := it.NextSymbol().(grammar.Nonterminal)
	for _, rule := range r.rulesByLHS[nt] {
		chart.columns[i].add(grammar.EarleyItem[T]{Rule: rule, Dot: 0, Start: i})
	}
}

func (r *Recognizer[T]) scan(chart *Chart[T], i int, it grammar.EarleyItem[T], toks []T) {
	if i >= len(toks) {
		return
	}

	term := it.NextSymbol().(grammar.Terminal[T])
	if term.Matches(toks[i]) {
		chart.columns[i+1].add(it.Shifted())
	}
}

func (r *Recognizer[T]) complete(chart *Chart[T], i int, it grammar.EarleyItem[T]) {
	origin := chart.columns[it.Start]
	lhs := it.Rule.LHS

	for idx := 0; idx < len(origin.items); idx++ {
		parent := origin.items[idx]
		if parent.Complete() {
			continue
		}
		if nt, ok := parent.NextSymbol().(grammar.Nonterminal); ok && nt == lhs {
			chart.columns[i].add(parent.Shifted())
		}
	}
}

// Recognize is a convenience wrapper around New and Accept for one-shot
// membership queries.
func Recognize[T comparable](g *grammar.Grammar[T], toks []T) (bool, error) {
	r, err := New[T](g)
	if err != nil {
		return false, err
	}
	accepted, _ := r.Accept(toks)
	return accepted, nil
}

// NewCharLevel prepares a Recognizer for a character-level grammar: g is
// normalised with grammar.SplitLongTerminals first (spec.md §4.3(a)), so a
// rule's multi-character string terminals are exploded into one terminal per
// rune and any zero-length terminal is dropped. Use this instead of New when
// the input tokens are individual characters rather than pre-lexed words.
func NewCharLevel(g *grammar.Grammar[string]) (*Recognizer[string], error) {
	return New[string](grammar.SplitLongTerminals(g))
}

// RecognizeCharLevel is the character-level counterpart to Recognize.
func RecognizeCharLevel(g *grammar.Grammar[string], toks []string) (bool, error) {
	r, err := NewCharLevel(g)
	if err != nil {
		return false, err
	}
	accepted, _ := r.Accept(toks)
	return accepted, nil
}
