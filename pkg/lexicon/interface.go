// Package lexicon is the lexical index core: a rune trie for prefix retrieval,
// a chained hash table for point lookups, and Levenshtein based fuzzy matching.
package lexicon

// ISearcher is implemented by anything that answers prefix and fuzzy queries
// over a word set.
type ISearcher interface {
	// SearchExact returns up to ExactLimit words starting with prefix.
	SearchExact(prefix string) []Result

	// SearchFuzzy returns up to FuzzyLimit words within maxDistance edits of query.
	SearchFuzzy(query string, maxDistance int) []FuzzyResult
}

// IIndex is a searchable word set that also accepts inserts.
type IIndex interface {
	ISearcher

	// Insert adds frequency to word and replaces its metadata.
	Insert(word string, frequency int, meta Metadata) bool

	// AllWords returns every stored word in traversal order.
	AllWords() []Result
}
