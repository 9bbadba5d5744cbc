package grammar

import "strings"

// Rule is an immutable production: a nonterminal LHS and an ordered (possibly
// empty) sequence of symbols forming its RHS. Two rules with the same LHS and
// RHS are equal, and must compare equal via Key() so that a Grammar can
// dedupe them by value.
type Rule[T any] struct {
	LHS Nonterminal
	RHS []Symbol
}

// NewRule builds a Rule, copying rhs so the caller's slice can be reused.
func NewRule[T any](lhs Nonterminal, rhs ...Symbol) Rule[T] {
	cp := make([]Symbol, len(rhs))
	copy(cp, rhs)
	return Rule[T]{LHS: lhs, RHS: cp}
}

// Len returns the number of symbols on the RHS.
func (r Rule[T]) Len() int {
	return len(r.RHS)
}

// At returns the symbol at the given RHS position, or nil if pos is at or
// past the end of the rule.
func (r Rule[T]) At(pos int) Symbol {
	if pos < 0 || pos >= len(r.RHS) {
		return nil
	}
	return r.RHS[pos]
}

// Nonterminals yields the LHS followed by every nonterminal appearing in the
// RHS, in order.
func (r Rule[T]) Nonterminals() []Nonterminal {
	nts := []Nonterminal{r.LHS}
	for _, sym := range r.RHS {
		if !sym.IsTerminal() {
			nts = append(nts, sym.(Nonterminal))
		}
	}
	return nts
}

// Key returns a canonical string uniquely identifying this rule by value. It
// is used as the map key backing Grammar's rule set and every place an
// LR(k)/Earley item needs to refer to "this exact rule" in a hashable way.
func (r Rule[T]) Key() string {
	return r.String()
}

// String renders the rule as "LHS -> s1 s2 s3", or "LHS -> ε" for an empty
// production.
func (r Rule[T]) String() string {
	if len(r.RHS) == 0 {
		return r.LHS.String() + " -> ε"
	}

	parts := make([]string, len(r.RHS))
	for i, sym := range r.RHS {
		parts[i] = sym.String()
	}

	return r.LHS.String() + " -> " + strings.Join(parts, " ")
}
