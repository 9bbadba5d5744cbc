package grammar

// reservedStartName is the nonterminal name used for the lazily-generated
// augmented start symbol. It must never collide with a user-defined
// nonterminal.
const reservedStartName = "__new_start__"

// Grammar owns a set of rules (deduplicated by value), a registry of the
// nonterminals appearing in them, and a designated start nonterminal. It is
// built once via AddRule/CreateRule and is read-only from that point on,
// except for the one further mutation NewStart performs on first call.
type Grammar[T any] struct {
	rules       map[string]Rule[T]
	ruleOrder   []string
	nonterms    map[string]Nonterminal
	startName   string
	newStart    *Nonterminal
}

// New returns an empty grammar with the given start nonterminal name. The
// start nonterminal does not need to be registered up front; it is resolved
// lazily the first time Start or NewStart is called.
func New[T any](start string) *Grammar[T] {
	return &Grammar[T]{
		rules:     map[string]Rule[T]{},
		nonterms:  map[string]Nonterminal{},
		startName: start,
	}
}

// Rules returns every rule in the grammar, in the order they were first
// added. The new-start rule (if NewStart has been called) is included.
func (g *Grammar[T]) Rules() []Rule[T] {
	out := make([]Rule[T], len(g.ruleOrder))
	for i, key := range g.ruleOrder {
		out[i] = g.rules[key]
	}
	return out
}

// Nonterminals returns the name -> Nonterminal registry.
func (g *Grammar[T]) Nonterminals() map[string]Nonterminal {
	return g.nonterms
}

// HasNonterminal reports whether a nonterminal of the given name is
// registered.
func (g *Grammar[T]) HasNonterminal(name string) bool {
	_, ok := g.nonterms[name]
	return ok
}

// ResolveNonterminal looks up a registered nonterminal by name.
func (g *Grammar[T]) ResolveNonterminal(name string) (Nonterminal, error) {
	nt, ok := g.nonterms[name]
	if !ok {
		return Nonterminal{}, &UnknownNonterminalError{Name: name}
	}
	return nt, nil
}

// AddNonterminal explicitly registers nt. It fails with
// *DuplicateNonterminalError if a nonterminal of that name is already
// registered.
func (g *Grammar[T]) AddNonterminal(nt Nonterminal) error {
	if g.HasNonterminal(nt.Name) {
		return &DuplicateNonterminalError{Name: nt.Name}
	}
	g.nonterms[nt.Name] = nt
	return nil
}

// EnsureNonterminal returns the registered nonterminal of the given name,
// registering a fresh one first if none exists yet.
func (g *Grammar[T]) EnsureNonterminal(name string) Nonterminal {
	if nt, ok := g.nonterms[name]; ok {
		return nt
	}
	nt := NT(name)
	g.nonterms[name] = nt
	return nt
}

// AddRule registers every nonterminal appearing in r (ensuring, never
// erroring) and inserts r into the rule set. Adding a rule that already
// exists (same LHS and RHS) has no effect beyond the initial insertion.
func (g *Grammar[T]) AddRule(r Rule[T]) {
	for _, nt := range r.Nonterminals() {
		g.EnsureNonterminal(nt.Name)
	}

	key := r.Key()
	if _, exists := g.rules[key]; exists {
		return
	}
	g.rules[key] = r
	g.ruleOrder = append(g.ruleOrder, key)
}

// CreateRule is a convenience wrapper that builds and adds a Rule[T] with lhs
// as its LHS (ensuring it first if not already registered) and rhs as its
// RHS.
func (g *Grammar[T]) CreateRule(lhs string, rhs ...Symbol) {
	g.AddRule(NewRule[T](g.EnsureNonterminal(lhs), rhs...))
}

// GetRulesByLHS returns every rule whose LHS is nt, in insertion order.
func (g *Grammar[T]) GetRulesByLHS(nt Nonterminal) []Rule[T] {
	var out []Rule[T]
	for _, key := range g.ruleOrder {
		r := g.rules[key]
		if r.LHS == nt {
			out = append(out, r)
		}
	}
	return out
}

// RulesByLHS buckets every rule in the grammar by its LHS nonterminal. The
// FIRST_k engine and both recognizer engines call this once up front rather
// than repeatedly filtering Rules().
func (g *Grammar[T]) RulesByLHS() map[Nonterminal][]Rule[T] {
	out := map[Nonterminal][]Rule[T]{}
	for _, key := range g.ruleOrder {
		r := g.rules[key]
		out[r.LHS] = append(out[r.LHS], r)
	}
	return out
}

// Start resolves the designated start nonterminal. It fails if no
// nonterminal of that name has been registered (typically via an earlier
// AddRule).
func (g *Grammar[T]) Start() (Nonterminal, error) {
	return g.ResolveNonterminal(g.startName)
}

// NewStart returns the augmented start nonterminal S', creating it (and its
// single rule S' -> S) on first call by adding a rule to the grammar.
// Subsequent calls return the same value without adding another rule.
//
// It fails with *ReservedNameInUseError if the grammar already has a
// user-defined nonterminal under the reserved augmentation name.
func (g *Grammar[T]) NewStart() (Nonterminal, error) {
	if g.newStart != nil {
		return *g.newStart, nil
	}

	start, err := g.Start()
	if err != nil {
		return Nonterminal{}, err
	}

	if g.HasNonterminal(reservedStartName) {
		return Nonterminal{}, &ReservedNameInUseError{Name: reservedStartName}
	}

	sPrime := NT(reservedStartName)
	g.nonterms[sPrime.Name] = sPrime
	g.AddRule(NewRule[T](sPrime, start))
	g.newStart = &sPrime

	return sPrime, nil
}

// Prune rebuilds the nonterminal registry from the rules actually present,
// dropping any nonterminal that was registered (e.g. via EnsureNonterminal
// from a rule that was never added, or left over from a since-removed rule)
// but no longer appears in any rule. The reserved augmented-start
// nonterminal, if created, is always kept.
//
// This deliberately does not attempt to subtract a "used" set from the
// existing nonterminal map in place; see SPEC_FULL.md for why.
func (g *Grammar[T]) Prune() {
	fresh := map[string]Nonterminal{}

	for _, key := range g.ruleOrder {
		r := g.rules[key]
		for _, nt := range r.Nonterminals() {
			fresh[nt.Name] = nt
		}
	}

	if g.newStart != nil {
		fresh[g.newStart.Name] = *g.newStart
	}

	g.nonterms = fresh
}
