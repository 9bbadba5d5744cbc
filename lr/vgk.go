package lr

import (
	"sort"
	"strings"

	"github.com/dekarrin/parsegen/firstk"
	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/internal/util"
)

// itemSet is a growable, deduplicated worklist of LR(k) items, used while
// computing the closure of a table (spec.md §4.4).
type itemSet[T comparable] struct {
	items map[string]grammar.LRItem[T]
	order []string
}

func newItemSet[T comparable]() *itemSet[T] {
	return &itemSet[T]{items: map[string]grammar.LRItem[T]{}}
}

func (s *itemSet[T]) add(it grammar.LRItem[T]) bool {
	key := it.Key()
	if _, ok := s.items[key]; ok {
		return false
	}
	s.items[key] = it
	s.order = append(s.order, key)
	return true
}

func (s *itemSet[T]) all() []grammar.LRItem[T] {
	out := make([]grammar.LRItem[T], len(s.order))
	for i, k := range s.order {
		out[i] = s.items[k]
	}
	return out
}

// frozenKey canonicalizes an item set's membership into a single string so
// that two item sets with the same items (regardless of discovery order)
// collapse to the same table.
func (s *itemSet[T]) frozenKey() string {
	keys := append([]string(nil), s.order...)
	sort.Strings(keys)
	return strings.Join(keys, "\x1f")
}

// gotoEdge is one outgoing GOTO edge from a table: moving over Symbol leads
// to Table. The symbol itself (not just its string key) is kept so that,
// for terminals, the driver can also index the edge by the concrete token
// matched rather than by the abstract terminal symbol.
type gotoEdge[T comparable] struct {
	Symbol grammar.Symbol
	Table  *frozenTable[T]
}

// frozenTable is a completed (closed) item set, plus its outgoing GOTO
// edges to other frozen tables. It corresponds to one node of V_G^k
// (spec.md §4.4).
type frozenTable[T comparable] struct {
	key   string
	items []grammar.LRItem[T]
	gotos []gotoEdge[T]
}

// vgkBuilder computes the canonical collection of LR(k) item sets for a
// grammar, closing and GOTO-ing tables breadth-first until no new table is
// discovered. Grounded on the closure/goto split in the teacher's
// automaton package and on the original VGkBuilder this spec was distilled
// from.
type vgkBuilder[T comparable] struct {
	fk     *firstk.Provider[T]
	tables map[string]*frozenTable[T]
}

func newVGkBuilder[T comparable](fk *firstk.Provider[T]) *vgkBuilder[T] {
	return &vgkBuilder[T]{
		fk:     fk,
		tables: map[string]*frozenTable[T]{},
	}
}

// close applies the closure operation to a (mutable) working item set:
// every item with the dot before a nonterminal contributes fresh initial
// items for that nonterminal's rules, one per FIRST_k-derived lookahead.
func (b *vgkBuilder[T]) close(working *itemSet[T]) {
	for idx := 0; idx < len(working.order); idx++ {
		it := working.items[working.order[idx]]

		next := it.NextSymbol()
		if next == nil || next.IsTerminal() {
			continue
		}
		nt := next.(grammar.Nonterminal)

		beta := it.Rule.RHS[it.Dot+1:]
		continuations := firstk.Tuples(b.fk.FirstK(beta, it.Lookahead))

		for _, rule := range b.fk.RulesByLHS()[nt] {
			for _, cont := range continuations {
				working.add(grammar.LRItem[T]{Rule: rule, Dot: 0, Lookahead: cont})
			}
		}
	}
}

// addTable closes working, then registers it (if not already present) in
// the canonical collection, returning the resulting frozen table.
func (b *vgkBuilder[T]) addTable(working *itemSet[T]) *frozenTable[T] {
	b.close(working)

	key := working.frozenKey()
	if existing, ok := b.tables[key]; ok {
		return existing
	}

	ft := &frozenTable[T]{
		key:   key,
		items: working.all(),
	}
	b.tables[key] = ft
	return ft
}

// gotoGroup pairs the symbol a GOTO edge moves over with the accumulated
// working item set reached by that move.
type gotoGroup[T comparable] struct {
	symbol grammar.Symbol
	items  *itemSet[T]
}

// goTo partitions a table's items by the symbol immediately after the dot,
// producing one successor working set per distinct symbol.
func (b *vgkBuilder[T]) goTo(ft *frozenTable[T]) []*gotoGroup[T] {
	index := map[string]*gotoGroup[T]{}
	var order []string

	for _, it := range ft.items {
		next := it.NextSymbol()
		if next == nil {
			continue
		}

		key := next.String()
		group, ok := index[key]
		if !ok {
			group = &gotoGroup[T]{symbol: next, items: newItemSet[T]()}
			index[key] = group
			order = append(order, key)
		}
		group.items.add(it.Shifted())
	}

	out := make([]*gotoGroup[T], len(order))
	for i, key := range order {
		out[i] = index[key]
	}
	return out
}

// build runs the breadth-first closure/goto loop starting from the
// augmented start rule, and returns the root table of V_G^k. Every
// reachable table's gotos are populated as a side effect.
func (b *vgkBuilder[T]) build() *frozenTable[T] {
	startRules := b.fk.RulesByLHS()[b.fk.NewStart()]
	start := newItemSet[T]()
	start.add(grammar.LRItem[T]{Rule: startRules[0], Dot: 0, Lookahead: nil})

	root := b.addTable(start)

	queue := []*frozenTable[T]{root}
	seen := util.NewStringSet()
	seen.Add(root.key)

	for len(queue) > 0 {
		ft := queue[0]
		queue = queue[1:]

		for _, group := range b.goTo(ft) {
			next := b.addTable(group.items)
			ft.gotos = append(ft.gotos, gotoEdge[T]{Symbol: group.symbol, Table: next})

			if !seen.Has(next.key) {
				seen.Add(next.key)
				queue = append(queue, next)
			}
		}
	}

	return root
}
