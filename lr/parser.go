package lr

import (
	"fmt"

	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/token"
)

// Parser is a compiled LR(k) recognizer: it answers whether a token stream
// is in the language of the grammar it was built from (spec.md §4.5, §4.6).
type Parser[T comparable] struct {
	root *State[T]
	k    int
	eof  T
}

// NewParser compiles g at the given k and configures eof as the sentinel
// value used once the input is exhausted, so lookahead near the end of the
// stream is reported as a short tuple rather than blocking forever.
func NewParser[T comparable](g *grammar.Grammar[T], k int, eof T) (*Parser[T], error) {
	root, err := Build[T](g, k)
	if err != nil {
		return nil, err
	}

	return &Parser[T]{root: root, k: k, eof: eof}, nil
}

// Accept reports whether toks is accepted by the compiled grammar.
func (p *Parser[T]) Accept(toks []T) (bool, error) {
	return p.AcceptStream(token.NewSliceStream(toks))
}

// AcceptStream drives the shift-reduce-accept loop over src. It returns
// false (not an error) on a syntax error - no action registered for the
// current state and lookahead - since that is an ordinary rejection, not a
// compiler fault.
func (p *Parser[T]) AcceptStream(src token.Stream[T]) (bool, error) {
	pk := token.NewPeekable[T](src, p.k, p.eof)
	stack := []*State[T]{p.root}

	for {
		cur := stack[len(stack)-1]
		lookahead := pk.PeekTrimmed(p.k)

		action, ok := cur.Action(lookahead)
		if !ok {
			return false, nil
		}

		switch action.Kind {
		case Accept:
			return true, nil

		case Shift:
			tok := pk.Next()
			next, ok := cur.GotoToken(tok)
			if !ok {
				return false, fmt.Errorf("lr: no transition registered for shifted token %v", tok)
			}
			stack = append(stack, next)

		case Reduce:
			n := action.Rule.Len()
			stack = stack[:len(stack)-n]

			top := stack[len(stack)-1]
			next, ok := top.GotoSymbol(action.Rule.LHS)
			if !ok {
				return false, fmt.Errorf("lr: no goto registered for nonterminal %s", action.Rule.LHS.Name)
			}
			stack = append(stack, next)
		}
	}
}

// Recognize is a convenience wrapper that compiles g at k and runs toks
// through it in one call.
func Recognize[T comparable](g *grammar.Grammar[T], k int, eof T, toks []T) (bool, error) {
	p, err := NewParser[T](g, k, eof)
	if err != nil {
		return false, err
	}
	return p.Accept(toks)
}
