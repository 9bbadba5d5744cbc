package lr

import (
	"fmt"
	"strings"

	"github.com/dekarrin/parsegen/grammar"
)

// ActionKind distinguishes the three things an LR(k) parser can do on a
// given lookahead tuple: shift a token, reduce by a rule, or accept.
type ActionKind int

const (
	Shift ActionKind = iota
	Reduce
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "unknown"
	}
}

// Action is one entry of a state's action table: what to do when the
// current k-token lookahead matches a given tuple. Rule is only meaningful
// when Kind == Reduce.
type Action[T any] struct {
	Kind ActionKind
	Rule grammar.Rule[T]
}

func (a Action[T]) String() string {
	if a.Kind == Reduce {
		return fmt.Sprintf("reduce %s", a.Rule.String())
	}
	return a.Kind.String()
}

// tupleKey renders a token tuple as a canonical map key. Each element is
// rendered with its length prefixed (%d:%v) so that e.g. a single token
// "a b" can never collide with the two-token tuple ["a", "b"].
func tupleKey[T any](tup []T) string {
	var sb strings.Builder
	for _, tok := range tup {
		s := fmt.Sprintf("%v", tok)
		fmt.Fprintf(&sb, "%d:%s", len(s), s)
	}
	return sb.String()
}

func tokenKey[T any](tok T) string {
	return tupleKey([]T{tok})
}
