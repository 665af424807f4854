package lexicon

import (
	"slices"
	"sort"
	"strings"
	"time"
)

type trieNode struct {
	children  map[rune]*trieNode
	end       bool
	frequency int
	word      string
	meta      Metadata
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// sortedKeys returns the child runes in ascending order so traversals are
// deterministic.
func (n *trieNode) sortedKeys() []rune {
	keys := make([]rune, 0, len(n.children))
	for r := range n.children {
		keys = append(keys, r)
	}
	slices.Sort(keys)
	return keys
}

// Trie is a rune keyed prefix tree. Words are stored lowercased and every
// terminal node accumulates the frequencies inserted for its word.
// A Trie is not safe for concurrent writers.
type Trie struct {
	root       *trieNode
	totalWords int
	maxDepth   int
	now        func() time.Time
	distance   func(a, b string) int
}

// NewTrie creates an empty trie stamping metadata with time.Now.
func NewTrie() *Trie {
	return NewTrieWithClock(time.Now)
}

// NewTrieWithClock creates an empty trie using now for LastAccessed stamps.
func NewTrieWithClock(now func() time.Time) *Trie {
	if now == nil {
		now = time.Now
	}
	return &Trie{root: newTrieNode(), now: now, distance: Levenshtein}
}

// Insert adds frequency to the lowercased word and overwrites its metadata.
// An empty word is rejected and reported with false.
func (t *Trie) Insert(word string, frequency int, meta Metadata) bool {
	word = strings.ToLower(word)
	if word == "" {
		return false
	}

	node := t.root
	depth := 0
	for _, r := range word {
		depth++
		child, ok := node.children[r]
		if !ok {
			child = newTrieNode()
			node.children[r] = child
		}
		node = child
	}

	if !node.end {
		node.end = true
		t.totalWords++
	}
	node.frequency += frequency
	node.word = word
	if meta.Category == "" {
		meta.Category = DefaultCategory
	}
	meta.LastAccessed = t.now()
	node.meta = meta

	if depth > t.maxDepth {
		t.maxDepth = depth
	}
	return true
}

// SearchExact returns at most ExactLimit words that start with prefix,
// highest frequency first. Equal frequencies keep lexicographic order.
func (t *Trie) SearchExact(prefix string) []Result {
	node := t.root
	for _, r := range strings.ToLower(prefix) {
		child, ok := node.children[r]
		if !ok {
			return []Result{}
		}
		node = child
	}

	results := make([]Result, 0, ExactLimit)
	collect(node, &results)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Frequency > results[j].Frequency
	})
	if len(results) > ExactLimit {
		results = results[:ExactLimit]
	}
	return results
}

// SearchFuzzy scans every stored word and keeps those within maxDistance
// edits of query, ordered by distance and then by frequency.
// At most FuzzyLimit results are returned.
func (t *Trie) SearchFuzzy(query string, maxDistance int) []FuzzyResult {
	query = strings.ToLower(query)

	var all []Result
	collect(t.root, &all)

	results := make([]FuzzyResult, 0, FuzzyLimit)
	for _, item := range all {
		d := t.distance(query, item.Word)
		if d <= maxDistance {
			results = append(results, FuzzyResult{Result: item, Distance: d})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Frequency > results[j].Frequency
	})
	if len(results) > FuzzyLimit {
		results = results[:FuzzyLimit]
	}
	return results
}

// AllWords returns every stored word in lexicographic traversal order.
func (t *Trie) AllWords() []Result {
	var results []Result
	collect(t.root, &results)
	return results
}

// Contains reports whether word was inserted.
func (t *Trie) Contains(word string) bool {
	node := t.root
	for _, r := range strings.ToLower(word) {
		child, ok := node.children[r]
		if !ok {
			return false
		}
		node = child
	}
	return node.end
}

// Len returns the number of distinct words.
func (t *Trie) Len() int {
	return t.totalWords
}

// Stats walks the trie and reports its shape.
func (t *Trie) Stats() TrieStats {
	return TrieStats{
		TotalWords: t.totalWords,
		MaxDepth:   t.maxDepth,
		NodeCount:  countNodes(t.root),
	}
}

func collect(node *trieNode, results *[]Result) {
	if node.end && node.word != "" {
		*results = append(*results, Result{
			Word:      node.word,
			Frequency: node.frequency,
			Metadata:  node.meta,
		})
	}
	for _, r := range node.sortedKeys() {
		collect(node.children[r], results)
	}
}

func countNodes(node *trieNode) int {
	count := 1
	for _, child := range node.children {
		count += countNodes(child)
	}
	return count
}
