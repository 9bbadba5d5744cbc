// Package token defines the token-stream contract the recognizer engines
// consume (spec.md §6: "the core accepts any finite iterable over the
// user's token type T") and the fixed-capacity peekable adapter the LR
// driver needs for k-token lookahead.
package token

// Stream is a finite sequence of tokens of type T, read strictly in order.
type Stream[T any] interface {
	// Next returns the next token and advances the stream by one.
	Next() T

	// HasNext reports whether there is at least one more token to read.
	HasNext() bool
}

// SliceStream adapts a plain slice of tokens into a Stream.
type SliceStream[T any] struct {
	toks []T
	pos  int
}

// NewSliceStream wraps toks as a Stream[T]. The slice is read, not copied;
// callers should not mutate it while the stream is in use.
func NewSliceStream[T any](toks []T) *SliceStream[T] {
	return &SliceStream[T]{toks: toks}
}

func (s *SliceStream[T]) Next() T {
	t := s.toks[s.pos]
	s.pos++
	return t
}

func (s *SliceStream[T]) HasNext() bool {
	return s.pos < len(s.toks)
}
