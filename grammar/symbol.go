// Package grammar holds the data model for context-free grammars: symbols,
// rules, the grammar itself, and the augmentation and terminal-splitting
// transformations that the Earley and LR(k) engines build on top of.
package grammar

import (
	"fmt"
	"strconv"
)

// Symbol is a grammar symbol, either a Nonterminal or a Terminal[T]. It is
// kept non-generic so that a Rule's right-hand side can hold a mix of
// terminals and nonterminals in a single slice.
type Symbol interface {
	fmt.Stringer

	// IsTerminal returns whether this symbol is a terminal.
	IsTerminal() bool
}

// Terminal is a grammar symbol standing for an input token of type T. It is
// polymorphic so that callers can match tokens however is convenient for
// their token type: a single value, a class of punctuation, a keyword, etc.
type Terminal[T any] interface {
	Symbol

	// Matches reports whether tok is accepted by this terminal.
	Matches(tok T) bool

	// Token returns a representative token for this terminal. It is used as
	// a hash key during LR(k) table construction (to index GOTO by raw
	// token rather than by Symbol), so two terminals that Matches() the same
	// tokens should return equal values here whenever possible.
	Token() T
}

// Nonterminal is a grammar symbol identified by name. Nonterminals compare
// equal (and hash identically, since Go map keys use ==) whenever their
// names match.
type Nonterminal struct {
	Name string
}

// NT is shorthand for constructing a Nonterminal by name.
func NT(name string) Nonterminal {
	return Nonterminal{Name: name}
}

func (n Nonterminal) IsTerminal() bool {
	return false
}

func (n Nonterminal) String() string {
	return n.Name
}

// StrTerminal is a terminal over string tokens that matches only its exact
// value. It is the terminal type produced by the BNF metagrammar reader and
// by CharTokenizer-fed Earley grammars.
type StrTerminal string

func (t StrTerminal) IsTerminal() bool {
	return true
}

func (t StrTerminal) Matches(tok string) bool {
	return string(t) == tok
}

func (t StrTerminal) Token() string {
	return string(t)
}

func (t StrTerminal) String() string {
	return strconv.Quote(string(t))
}

var (
	_ Terminal[string] = StrTerminal("")
	_ Symbol           = Nonterminal{}
)
