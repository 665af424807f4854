package dictionary

import (
	"sort"
	"sync"
	"time"

	"github.com/bastiangx/algocore/pkg/lexicon"
)

// Entry is the payload stored for a word in a database's hash table.
type Entry struct {
	Frequency   int    `msgpack:"f"`
	Category    string `msgpack:"cat"`
	Description string `msgpack:"desc"`
}

// Info describes a database together with the shape of its indexes.
type Info struct {
	Name         string
	Description  string
	Created      time.Time
	LastModified time.Time
	Trie         lexicon.TrieStats
	Table        lexicon.TableStats
	Cache        map[string]int
}

// Database is a named word set indexed twice: a trie for prefix and fuzzy
// queries and a hash table for point lookups.
type Database struct {
	Name         string
	Description  string
	Created      time.Time
	LastModified time.Time

	trie  *lexicon.Trie
	table *lexicon.HashTable[Entry]
	cache *lexicon.QueryCache
	now   func() time.Time
	mu    sync.RWMutex
}

func newDatabase(name, description string, now func() time.Time, cacheSize int) *Database {
	created := now()
	return &Database{
		Name:         name,
		Description:  description,
		Created:      created,
		LastModified: created,
		trie:         lexicon.NewTrieWithClock(now),
		table:        lexicon.NewHashTable[Entry](lexicon.DefaultTableCapacity),
		cache:        lexicon.NewQueryCache(cacheSize),
		now:          now,
	}
}

// insert expects an already normalized key.
func (db *Database) insert(key string, e Entry) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	meta := lexicon.Metadata{Category: e.Category, Description: e.Description}
	if !db.trie.Insert(key, e.Frequency, meta) {
		return false
	}
	db.table.Insert(key, e, e.Frequency)
	db.cache.Invalidate(key)
	db.LastModified = db.now()
	return true
}

// SearchExact answers from the query cache when possible.
func (db *Database) SearchExact(prefix string) []lexicon.Result {
	if cached, ok := db.cache.Get(prefix); ok {
		return cached
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	results := db.trie.SearchExact(prefix)
	db.cache.Put(prefix, results)
	return results
}

// SearchFuzzy always scans the full word set.
func (db *Database) SearchFuzzy(query string, maxDistance int) []lexicon.FuzzyResult {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.trie.SearchFuzzy(query, maxDistance)
}

// Lookup returns the entry and accumulated frequency stored under key.
func (db *Database) Lookup(key string) (Entry, int, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.table.Search(normalizeKey(key))
}

// AllWords returns every word with a positive frequency,
// highest frequency first and alphabetical within a frequency.
func (db *Database) AllWords() []lexicon.Result {
	db.mu.RLock()
	all := db.trie.AllWords()
	db.mu.RUnlock()

	words := make([]lexicon.Result, 0, len(all))
	for _, r := range all {
		if r.Frequency > 0 {
			words = append(words, r)
		}
	}
	sort.SliceStable(words, func(i, j int) bool {
		if words[i].Frequency != words[j].Frequency {
			return words[i].Frequency > words[j].Frequency
		}
		return words[i].Word < words[j].Word
	})
	return words
}

// Len returns the number of distinct words.
func (db *Database) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.trie.Len()
}

// Info snapshots metadata and index statistics.
func (db *Database) Info() Info {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return Info{
		Name:         db.Name,
		Description:  db.Description,
		Created:      db.Created,
		LastModified: db.LastModified,
		Trie:         db.trie.Stats(),
		Table:        db.table.Stats(),
		Cache:        db.cache.Stats(),
	}
}
