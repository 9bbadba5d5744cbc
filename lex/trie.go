package lex

// verdict tags what kind of multi-character marker a trie path terminates
// in: punctuation, a comment opener, or a string quote. Grounded on
// basic_tokenizer.py's _Trie / _MiscTokVerdict.
type verdict int

const (
	verdictNone verdict = iota
	verdictPunct
	verdictLineComment
	verdictBlockStart
	verdictBlockEnd
	verdictStringQuote
)

type trieNode struct {
	verdict  verdict
	children map[rune]*trieNode
}

func newTrieNode() *trieNode {
	return &trieNode{children: map[rune]*trieNode{}}
}

// trie recognizes the longest matching marker out of a fixed word list,
// used to disambiguate things like "::=" from "<" or "//" from "/*"
// without backtracking.
type trie struct {
	root     *trieNode
	sentinel *trieNode
}

func newTrie() *trie {
	return &trie{root: newTrieNode(), sentinel: newTrieNode()}
}

func (t *trie) addWord(word string, v verdict) {
	node := t.root
	for _, ch := range word {
		child, ok := node.children[ch]
		if !ok {
			child = newTrieNode()
			node.children[ch] = child
		}
		node = child
	}
	node.verdict = v
}

func (t *trie) addWords(words []string, v verdict) {
	for _, w := range words {
		t.addWord(w, v)
	}
}

// checker walks a trie one rune at a time, tracking the text consumed so
// far and falling into a dead sentinel node (verdict none, no children) the
// moment a rune doesn't continue any known word.
type checker struct {
	t    *trie
	node *trieNode
	word []rune
}

func (t *trie) newChecker() *checker {
	return &checker{t: t, node: t.root}
}

func (c *checker) isTerm() bool {
	return len(c.node.children) == 0
}

func (c *checker) step(ch rune) {
	next, ok := c.node.children[ch]
	if !ok {
		next = c.t.sentinel
	}
	c.node = next
	c.word = append(c.word, ch)
}

func (c *checker) restart() {
	c.node = c.t.root
	c.word = nil
}

func (c *checker) verdict() verdict {
	return c.node.verdict
}

func (c *checker) text() string {
	return string(c.word)
}
