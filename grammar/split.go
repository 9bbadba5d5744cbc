package grammar

// SplitLongTerminals returns a new grammar equivalent to g but with every
// StrTerminal longer than one character replaced by the sequence of its
// single-character terminals; zero-length string terminals are dropped
// entirely. It is used to prepare a character-level grammar for the Earley
// engine, where every token the scanner sees is a single character.
//
// The new grammar is never pre-augmented: its new-start rule, if any is
// needed, is created fresh on demand by the caller via NewStart. Any
// existing augmented-start rule on g is skipped rather than copied, since
// splitting its single RHS symbol (the original start nonterminal) would be
// meaningless.
//
// Only StrTerminal symbols are affected; any other Terminal[string]
// implementation in the RHS is left untouched.
func SplitLongTerminals(g *Grammar[string]) *Grammar[string] {
	start, err := g.Start()
	if err != nil {
		// A grammar with no resolvable start cannot be meaningfully split;
		// propagating the same unresolved start keeps the failure in the
		// same place the caller would hit it anyway.
		start = NT(g.startName)
	}

	out := New[string](start.Name)

	var skipLHS *Nonterminal
	if g.newStart != nil {
		skipLHS = g.newStart
	}

	for _, r := range g.Rules() {
		if skipLHS != nil && r.LHS == *skipLHS {
			continue
		}

		var newRHS []Symbol
		for _, sym := range r.RHS {
			if !sym.IsTerminal() {
				newRHS = append(newRHS, sym)
				continue
			}

			strTerm, ok := sym.(StrTerminal)
			if !ok {
				// Non-StrTerminal terminals are opaque to this
				// transformation; pass them through unchanged.
				newRHS = append(newRHS, sym)
				continue
			}

			for _, ch := range string(strTerm) {
				newRHS = append(newRHS, StrTerminal(string(ch)))
			}
		}

		out.AddRule(NewRule[string](r.LHS, newRHS...))
	}

	return out
}
