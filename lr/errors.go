package lr

import "fmt"

// ShiftReduceConflict is raised when compiling the LR(k) action table finds
// both a shift and a reduce action registered for the same state and
// lookahead tuple. It usually means k is too small to disambiguate the
// grammar, or the grammar is not LR(k) at all.
type ShiftReduceConflict struct {
	Lookahead string
}

func (e *ShiftReduceConflict) Error() string {
	return fmt.Sprintf("shift-reduce conflict on lookahead %s", e.Lookahead)
}

// ReduceReduceConflict is raised when two distinct reductions are both
// registered for the same state and lookahead tuple.
type ReduceReduceConflict struct {
	Lookahead string
}

func (e *ReduceReduceConflict) Error() string {
	return fmt.Sprintf("reduce-reduce conflict on lookahead %s", e.Lookahead)
}
