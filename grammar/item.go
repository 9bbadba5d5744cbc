package grammar

import (
	"fmt"
	"strings"
)

func dottedRHS(rhs []Symbol, dot int) string {
	parts := make([]string, 0, len(rhs)+1)
	for i, sym := range rhs {
		if i == dot {
			parts = append(parts, ".")
		}
		parts = append(parts, sym.String())
	}
	if dot == len(rhs) {
		parts = append(parts, ".")
	}
	return strings.Join(parts, " ")
}

// EarleyItem is a chart item (rule, dot position, start offset) as described
// in spec.md §3. Two items are equal (and so collapse to one entry in a
// chart position) whenever all three fields match.
type EarleyItem[T any] struct {
	Rule  Rule[T]
	Dot   int
	Start int
}

// NextSymbol returns the symbol immediately after the dot, or nil if the
// item is complete (dot at the end of the rule).
func (it EarleyItem[T]) NextSymbol() Symbol {
	return it.Rule.At(it.Dot)
}

// Complete reports whether the dot has reached the end of the rule.
func (it EarleyItem[T]) Complete() bool {
	return it.Dot == it.Rule.Len()
}

// Shifted returns a copy of it with the dot advanced by one position. It
// panics if the item is already complete; callers must check Complete first.
func (it EarleyItem[T]) Shifted() EarleyItem[T] {
	if it.Complete() {
		panic("grammar: cannot shift a completed Earley item")
	}
	return EarleyItem[T]{Rule: it.Rule, Dot: it.Dot + 1, Start: it.Start}
}

// Key renders a canonical string identity for this item, suitable for use as
// a map key in a chart position's item set.
func (it EarleyItem[T]) Key() string {
	return it.String()
}

func (it EarleyItem[T]) String() string {
	return fmt.Sprintf("%s -> %s, %d", it.Rule.LHS, dottedRHS(it.Rule.RHS, it.Dot), it.Start)
}

// LRItem is an LR(k) item (rule, dot position, lookahead tuple) as described
// in spec.md §3. The lookahead is a tuple of at most k terminal tokens; a
// shorter tuple is a distinct lookahead from any of its extensions, never a
// wildcard prefix match.
type LRItem[T any] struct {
	Rule       Rule[T]
	Dot        int
	Lookahead  []T
}

// NextSymbol returns the symbol immediately after the dot, or nil if the
// item is complete.
func (it LRItem[T]) NextSymbol() Symbol {
	return it.Rule.At(it.Dot)
}

// Complete reports whether the dot has reached the end of the rule.
func (it LRItem[T]) Complete() bool {
	return it.Dot == it.Rule.Len()
}

// Shifted returns a copy of it with the dot advanced by one position. It
// panics if the item is already complete; callers must check Complete first.
func (it LRItem[T]) Shifted() LRItem[T] {
	if it.Complete() {
		panic("grammar: cannot shift a completed LR item")
	}
	return LRItem[T]{Rule: it.Rule, Dot: it.Dot + 1, Lookahead: it.Lookahead}
}

// Key renders a canonical string identity for this item, suitable for use as
// a map key in an item table (open or frozen).
func (it LRItem[T]) Key() string {
	return it.String()
}

func (it LRItem[T]) String() string {
	return fmt.Sprintf("%s -> %s, %v", it.Rule.LHS, dottedRHS(it.Rule.RHS, it.Dot), it.Lookahead)
}
