package lexicon

import "time"

const (
	// ExactLimit caps SearchExact results.
	ExactLimit = 10
	// FuzzyLimit caps SearchFuzzy results.
	FuzzyLimit = 8
	// DefaultMaxDistance is the fuzzy edit budget used when callers have no preference.
	DefaultMaxDistance = 2
	// DefaultCategory is stored when an insert carries no category.
	DefaultCategory = "general"
)

// Metadata is the descriptive payload attached to a word.
type Metadata struct {
	Category     string    `msgpack:"cat" toml:"category"`
	LastAccessed time.Time `msgpack:"at" toml:"last_accessed"`
	Description  string    `msgpack:"desc" toml:"description"`
}

// Result is a single word returned by a query.
type Result struct {
	Word      string
	Frequency int
	Metadata  Metadata
}

// FuzzyResult is a Result plus its edit distance from the query.
type FuzzyResult struct {
	Result
	Distance int
}

// TrieStats reports the shape of a Trie. NodeCount includes the root.
type TrieStats struct {
	TotalWords int
	MaxDepth   int
	NodeCount  int
}

// TableStats reports the occupancy of a HashTable.
type TableStats struct {
	Capacity   int
	Count      int
	LoadFactor float64
	Collisions int
}
