package lexicon

import (
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// DefaultCacheSize bounds a QueryCache created with a non-positive size.
const DefaultCacheSize = 256

// QueryCache memoizes SearchExact answers keyed by non-empty lowercased prefix.
// Prefixes live in a patricia trie so an insert of word w can drop exactly
// the cached prefixes of w. Least recently used prefixes are evicted first.
type QueryCache struct {
	trie        *patricia.Trie
	accessTime  map[string]int64
	accessCount int64
	maxEntries  int
	hits        int
	misses      int
	mu          sync.RWMutex
}

// NewQueryCache creates a cache holding at most maxEntries prefixes.
func NewQueryCache(maxEntries int) *QueryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheSize
	}
	return &QueryCache{
		trie:       patricia.NewTrie(),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns a copy of the cached results for prefix.
func (qc *QueryCache) Get(prefix string) ([]Result, bool) {
	key := strings.ToLower(prefix)
	if key == "" {
		return nil, false
	}

	qc.mu.Lock()
	defer qc.mu.Unlock()

	item := qc.trie.Get(patricia.Prefix(key))
	if item == nil {
		qc.misses++
		return nil, false
	}
	qc.hits++
	qc.markAccessed(key)
	return cloneResults(item.([]Result)), true
}

// Put stores results for prefix, evicting the least recently used prefix
// when the cache is full.
func (qc *QueryCache) Put(prefix string, results []Result) {
	key := strings.ToLower(prefix)
	if key == "" {
		return
	}

	qc.mu.Lock()
	defer qc.mu.Unlock()

	if _, ok := qc.accessTime[key]; !ok && len(qc.accessTime) >= qc.maxEntries {
		qc.evictLRU()
	}
	qc.trie.Set(patricia.Prefix(key), cloneResults(results))
	qc.markAccessed(key)
}

// Invalidate drops every cached prefix of word. The empty prefix is never cached.
func (qc *QueryCache) Invalidate(word string) {
	key := strings.ToLower(word)

	qc.mu.Lock()
	defer qc.mu.Unlock()

	var stale []string
	err := qc.trie.VisitPrefixes(patricia.Prefix(key), func(p patricia.Prefix, _ patricia.Item) error {
		stale = append(stale, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting query cache prefixes: %v", err)
	}

	for _, p := range stale {
		qc.trie.Delete(patricia.Prefix(p))
		delete(qc.accessTime, p)
	}
	if len(stale) > 0 {
		log.Debugf("Invalidated %d cached prefixes of '%s'", len(stale), key)
	}
}

// Len returns the number of cached prefixes.
func (qc *QueryCache) Len() int {
	qc.mu.RLock()
	defer qc.mu.RUnlock()
	return len(qc.accessTime)
}

// Stats reports cache occupancy and hit counters.
func (qc *QueryCache) Stats() map[string]int {
	qc.mu.RLock()
	defer qc.mu.RUnlock()

	return map[string]int{
		"cachedPrefixes": len(qc.accessTime),
		"maxPrefixes":    qc.maxEntries,
		"cacheHits":      qc.hits,
		"cacheMisses":    qc.misses,
	}
}

func (qc *QueryCache) markAccessed(key string) {
	qc.accessCount++
	qc.accessTime[key] = qc.accessCount
}

func (qc *QueryCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64
	found := false

	for key, t := range qc.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldestKey = key
			found = true
		}
	}

	if found {
		qc.trie.Delete(patricia.Prefix(oldestKey))
		delete(qc.accessTime, oldestKey)
		log.Debugf("Evicted prefix '%s' from query cache", oldestKey)
	}
}

func cloneResults(results []Result) []Result {
	out := make([]Result, len(results))
	copy(out, results)
	return out
}
