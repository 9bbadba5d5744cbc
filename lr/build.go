package lr

import (
	"github.com/dekarrin/parsegen/firstk"
	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/internal/util"
)

// State is one node of the compiled LR(k) automaton: a lookahead-keyed
// action table, plus outgoing transitions keyed by the symbol (and, for
// terminals, also by the concrete matched token) moved over to reach the
// next state. This mirrors the graph-of-states shape the original design
// used instead of a flat integer-indexed action/goto table.
type State[T comparable] struct {
	Actions     map[string]Action[T]
	Transitions map[string]*State[T]
}

func newState[T comparable]() *State[T] {
	return &State[T]{
		Actions:     map[string]Action[T]{},
		Transitions: map[string]*State[T]{},
	}
}

// Action looks up the action registered for a lookahead tuple.
func (s *State[T]) Action(lookahead []T) (Action[T], bool) {
	a, ok := s.Actions[tupleKey(lookahead)]
	return a, ok
}

// GotoSymbol follows the transition labeled with the given grammar symbol
// (used for GOTO after a reduction).
func (s *State[T]) GotoSymbol(sym grammar.Symbol) (*State[T], bool) {
	st, ok := s.Transitions[sym.String()]
	return st, ok
}

// GotoToken follows the transition reached by shifting the given concrete
// token (used for the driver's shift move).
func (s *State[T]) GotoToken(tok T) (*State[T], bool) {
	st, ok := s.Transitions[tokenKey(tok)]
	return st, ok
}

// tablesBuilder compiles V_G^k into a graph of States with resolved
// actions and transitions, detecting shift-reduce and reduce-reduce
// conflicts along the way.
type tablesBuilder[T comparable] struct {
	fk        *firstk.Provider[T]
	states    map[string]*State[T]
	processed util.StringSet
}

func newTablesBuilder[T comparable](fk *firstk.Provider[T]) *tablesBuilder[T] {
	return &tablesBuilder[T]{
		fk:        fk,
		states:    map[string]*State[T]{},
		processed: util.NewStringSet(),
	}
}

// buildActions fills in st.Actions from ft's items: a shift entry per valid
// lookahead continuation for items with the dot before a terminal, a
// reduce entry for complete items, and an accept entry for the completed
// augmented start rule.
func (b *tablesBuilder[T]) buildActions(st *State[T], ft *frozenTable[T]) error {
	for _, it := range ft.items {
		if !it.Complete() {
			next := it.Rule.At(it.Dot)
			if !next.IsTerminal() {
				continue
			}

			continuations := firstk.Tuples(b.fk.FirstK(it.Rule.RHS[it.Dot:], it.Lookahead))
			for _, cont := range continuations {
				key := tupleKey(cont)
				if existing, ok := st.Actions[key]; ok && existing.Kind != Shift {
					return &ShiftReduceConflict{Lookahead: key}
				}
				st.Actions[key] = Action[T]{Kind: Shift}
			}
			continue
		}

		if it.Rule.LHS == b.fk.NewStart() && len(it.Lookahead) == 0 {
			key := tupleKey[T](nil)
			st.Actions[key] = Action[T]{Kind: Accept}
			continue
		}

		key := tupleKey(it.Lookahead)
		if existing, ok := st.Actions[key]; ok {
			if existing.Kind == Shift {
				return &ShiftReduceConflict{Lookahead: key}
			}
			return &ReduceReduceConflict{Lookahead: key}
		}
		st.Actions[key] = Action[T]{Kind: Reduce, Rule: it.Rule}
	}

	return nil
}

// stateFor returns the State compiled for ft, building (and registering,
// before recursing) it on first visit so that cyclic GOTO graphs don't
// cause infinite recursion.
func (b *tablesBuilder[T]) stateFor(ft *frozenTable[T]) (*State[T], error) {
	if st, ok := b.states[ft.key]; ok {
		return st, nil
	}

	st := newState[T]()
	b.states[ft.key] = st

	if err := b.buildActions(st, ft); err != nil {
		return nil, err
	}

	return st, nil
}

func (b *tablesBuilder[T]) process(ft *frozenTable[T]) (*State[T], error) {
	st, err := b.stateFor(ft)
	if err != nil {
		return nil, err
	}

	if b.processed.Has(ft.key) {
		return st, nil
	}
	b.processed.Add(ft.key)

	for _, edge := range ft.gotos {
		nextState, err := b.process(edge.Table)
		if err != nil {
			return nil, err
		}

		st.Transitions[edge.Symbol.String()] = nextState
		if term, ok := edge.Symbol.(grammar.Terminal[T]); ok {
			st.Transitions[tokenKey(term.Token())] = nextState
		}
	}

	return st, nil
}

// Build compiles g into an LR(k) automaton rooted at the returned State.
func Build[T comparable](g *grammar.Grammar[T], k int) (*State[T], error) {
	fk, err := firstk.New[T](g, k)
	if err != nil {
		return nil, err
	}

	vgk := newVGkBuilder(fk)
	root := vgk.build()

	tb := newTablesBuilder(fk)
	return tb.process(root)
}
