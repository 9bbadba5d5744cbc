package token

// Peekable wraps a Stream[T] with a fixed-capacity ring buffer so that
// Peek(k) always returns exactly k tokens, padding the tail with a
// caller-supplied sentinel once the underlying stream is exhausted. This is
// what the LR(k) driver needs for its k-token lookahead (spec.md §4.6, §9).
type Peekable[T comparable] struct {
	src       Stream[T]
	sentinel  T
	limit     int
	buf       []T
	head      int
	count     int
	exhausted bool
	pos       int
}

// NewPeekable returns a Peekable with room to look ahead up to limit tokens,
// backed by src. limit must be at least 1.
func NewPeekable[T comparable](src Stream[T], limit int, sentinel T) *Peekable[T] {
	if limit < 1 {
		panic("token: Peekable limit must be at least 1")
	}

	p := &Peekable[T]{
		src:      src,
		sentinel: sentinel,
		limit:    limit,
		buf:      make([]T, limit),
	}
	p.refill()
	return p
}

// Limit returns the maximum number of tokens that can be peeked at once.
func (p *Peekable[T]) Limit() int {
	return p.limit
}

// Sentinel returns the padding value used once the stream is exhausted.
func (p *Peekable[T]) Sentinel() T {
	return p.sentinel
}

func (p *Peekable[T]) refill() {
	for p.count < p.limit {
		var next T
		if !p.exhausted && p.src.HasNext() {
			next = p.src.Next()
		} else {
			p.exhausted = true
			next = p.sentinel
		}

		idx := (p.head + p.count) % p.limit
		p.buf[idx] = next
		p.count++
	}
}

// Next consumes and returns the next token.
func (p *Peekable[T]) Next() T {
	v := p.buf[p.head]
	p.head = (p.head + 1) % p.limit
	p.count--
	p.pos++
	p.refill()
	return v
}

// Skip consumes n tokens, discarding them.
func (p *Peekable[T]) Skip(n int) {
	for i := 0; i < n; i++ {
		p.Next()
	}
}

// Peek returns the next n tokens without consuming them. n must not exceed
// Limit().
func (p *Peekable[T]) Peek(n int) []T {
	if n > p.limit {
		panic("token: cannot peek more than the configured limit")
	}

	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = p.buf[(p.head+i)%p.limit]
	}
	return out
}

// PeekTrimmed returns Peek(n) with any trailing sentinel tokens stripped, so
// that lookahead near the end of input is reported as a shorter tuple rather
// than one padded with EOF.
func (p *Peekable[T]) PeekTrimmed(n int) []T {
	full := p.Peek(n)

	end := len(full)
	for end > 0 && full[end-1] == p.sentinel {
		end--
	}

	return full[:end]
}

// IsOver reports whether the stream has been fully consumed (the next token
// is the sentinel).
func (p *Peekable[T]) IsOver() bool {
	return p.Peek(1)[0] == p.sentinel
}

// Tell returns the number of tokens consumed via Next/Skip so far.
func (p *Peekable[T]) Tell() int {
	return p.pos
}
