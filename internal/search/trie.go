// Package search provides the prefix index and matching strategies used by
// the explorer's incremental search.
package search

import "sort"

// Trie is a rune-keyed prefix index over a set of strings.
type Trie struct {
	root *trieNode
	size int
}

type trieNode struct {
	children map[rune]*trieNode
	terminal bool
}

// NewTrie builds a trie holding every word.
func NewTrie(words []string) *Trie {
	t := &Trie{root: &trieNode{}}
	for _, w := range words {
		t.Insert(w)
	}
	return t
}

// Insert adds word to the trie. Re-inserting an existing word is a no-op.
func (t *Trie) Insert(word string) {
	n := t.root
	for _, r := range word {
		if n.children == nil {
			n.children = make(map[rune]*trieNode)
		}
		child, ok := n.children[r]
		if !ok {
			child = &trieNode{}
			n.children[r] = child
		}
		n = child
	}
	if !n.terminal {
		n.terminal = true
		t.size++
	}
}

// Len reports the number of distinct words.
func (t *Trie) Len() int {
	return t.size
}

// PredictiveSearch returns every word starting with prefix, sorted.
func (t *Trie) PredictiveSearch(prefix string) []string {
	n := t.find(prefix)
	if n == nil {
		return nil
	}
	var out []string
	n.walk([]rune(prefix), func(word string) {
		out = append(out, word)
	})
	sort.Strings(out)
	return out
}

// Autocomplete returns the longest common prefix of every word starting
// with prefix. It reports false when no word starts with prefix or when the
// empty string itself is a candidate.
func (t *Trie) Autocomplete(prefix string) (string, bool) {
	n := t.find(prefix)
	if n == nil {
		return "", false
	}
	if prefix == "" && n.terminal {
		return "", false
	}
	out := []rune(prefix)
	for !n.terminal && len(n.children) == 1 {
		for r, child := range n.children {
			out = append(out, r)
			n = child
		}
	}
	// only reachable on an empty trie
	if !n.terminal && len(n.children) == 0 {
		return "", false
	}
	return string(out), true
}

func (t *Trie) find(prefix string) *trieNode {
	n := t.root
	for _, r := range prefix {
		child, ok := n.children[r]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

func (n *trieNode) walk(prefix []rune, emit func(string)) {
	if n.terminal {
		emit(string(prefix))
	}
	for r, child := range n.children {
		child.walk(append(prefix, r), emit)
	}
}
