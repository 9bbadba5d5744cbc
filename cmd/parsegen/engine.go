package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/parsegen/bnf"
	"github.com/dekarrin/parsegen/earley"
	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/lr"
)

// recognizer is the common shape both compiled engines present to the CLI,
// so build/check/repl don't need to know which one they're driving.
type recognizer interface {
	Accept(toks []string) (bool, error)
}

// earleyRecognizer adapts earley.Recognizer's (bool, *Chart) result to the
// (bool, error) shape lr.Parser already has, since Earley recognition never
// itself fails - it just accepts or rejects.
type earleyRecognizer struct {
	r *earley.Recognizer[string]
}

func (e earleyRecognizer) Accept(toks []string) (bool, error) {
	ok, _ := e.r.Accept(toks)
	return ok, nil
}

// readGrammarFile reads and parses a BNF grammar file, returning both the
// grammar and its raw source text (the source is what cache.Snapshot
// freshness checks are keyed on).
func readGrammarFile(path, start string) (*grammar.Grammar[string], string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read grammar file %s: %w", path, err)
	}

	g, err := bnf.Read(string(data), start)
	if err != nil {
		return nil, "", fmt.Errorf("parse grammar file %s: %w", path, err)
	}

	return g, string(data), nil
}

// buildRecognizer compiles g into a recognizer for the named engine
// ("lr" or "earley") at lookahead k. k is ignored by the earley engine,
// which has unbounded lookahead by construction.
func buildRecognizer(g *grammar.Grammar[string], k int, engineName string) (recognizer, error) {
	switch engineName {
	case "lr", "":
		p, err := lr.NewParser[string](g, k, eofToken)
		if err != nil {
			return nil, err
		}
		return p, nil

	case "earley":
		r, err := earley.New[string](g)
		if err != nil {
			return nil, err
		}
		return earleyRecognizer{r: r}, nil

	default:
		return nil, fmt.Errorf("unknown engine %q (want \"lr\" or \"earley\")", engineName)
	}
}

// eofToken is the sentinel value the LR driver's peekable lookahead pads
// the end of input with. A grammar's terminals are never allowed to
// tokenize to this exact string, since bnf.Read has no way to produce it
// (it would require an unterminated string literal containing it as a
// token boundary marker rather than literal text).
const eofToken = "\x00__parsegen_eof__\x00"

// tokenizeLine splits a line of input into whitespace-separated tokens,
// the same convention spec.md's own worked examples use for terminal
// strings like "a" and "bba".
func tokenizeLine(line string) []string {
	return strings.Fields(line)
}
