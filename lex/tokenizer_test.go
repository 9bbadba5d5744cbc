package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func bnfStyleConfig() Config {
	cfg := DefaultConfig()
	cfg.Punctuation = []string{"::=", "|", "<", ">", ";"}
	cfg.IsNameChar = func(ch rune) bool {
		return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') ||
			('0' <= ch && ch <= '9') || ch == '-' || ch == '_'
	}
	return cfg
}

func Test_Tokenizer_namesAndPunct(t *testing.T) {
	assert := assert.New(t)

	tz := New(bnfStyleConfig(), `<start> ::= "a" ;`)
	toks, err := tz.Tokenize()
	assert.NoError(err)

	want := []Token{
		{Kind: Punct, Text: "<"},
		{Kind: Name, Text: "start"},
		{Kind: Punct, Text: ">"},
		{Kind: Punct, Text: "::="},
		{Kind: StringLit, Text: "a"},
		{Kind: Punct, Text: ";"},
		{Kind: EOF},
	}
	assert.Equal(want, toks)
}

func Test_Tokenizer_lineComment(t *testing.T) {
	assert := assert.New(t)

	tz := New(bnfStyleConfig(), "<a> // a comment\n::= \"x\" ;")
	toks, err := tz.Tokenize()
	assert.NoError(err)

	assert.Equal(Token{Kind: Punct, Text: "::="}, toks[2])
}

func Test_Tokenizer_nestedBlockComment(t *testing.T) {
	assert := assert.New(t)

	tz := New(bnfStyleConfig(), "<a> /* outer /* inner */ still outer */ ::= \"x\" ;")
	toks, err := tz.Tokenize()
	assert.NoError(err)

	// Everything inside the (correctly balanced) block comment must have
	// been skipped, leaving just the rule after it.
	want := []Token{
		{Kind: Punct, Text: "<"},
		{Kind: Name, Text: "a"},
		{Kind: Punct, Text: ">"},
		{Kind: Punct, Text: "::="},
		{Kind: StringLit, Text: "x"},
		{Kind: Punct, Text: ";"},
		{Kind: EOF},
	}
	assert.Equal(want, toks)
}

func Test_Tokenizer_unterminatedBlockComment_errors(t *testing.T) {
	assert := assert.New(t)

	tz := New(bnfStyleConfig(), "/* never closed")
	_, err := tz.Tokenize()
	assert.Error(err)
}

func Test_Tokenizer_stringEscapes(t *testing.T) {
	assert := assert.New(t)

	tz := New(bnfStyleConfig(), `"a\nb\\c"`)
	toks, err := tz.Tokenize()
	assert.NoError(err)

	assert.Equal(Token{Kind: StringLit, Text: "a\nb\\c"}, toks[0])
}

func Test_Tokenizer_unrecognizedSymbol_errors(t *testing.T) {
	assert := assert.New(t)

	tz := New(bnfStyleConfig(), "@")
	_, err := tz.Tokenize()
	assert.Error(err)
}
