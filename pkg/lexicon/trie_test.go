package lexicon

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func seededTrie(t *testing.T) *Trie {
	t.Helper()
	trie := NewTrieWithClock(fixedClock())
	words := map[string]int{
		"apple":       100,
		"application": 80,
		"apply":       120,
		"apt":         30,
		"banana":      50,
		"band":        70,
		"bandana":     10,
	}
	for w, f := range words {
		require.True(t, trie.Insert(w, f, Metadata{}))
	}
	return trie
}

func TestTrieInsertAccumulatesFrequency(t *testing.T) {
	trie := NewTrie()
	trie.Insert("hello", 5, Metadata{Category: "greeting"})
	trie.Insert("hello", 7, Metadata{Description: "again"})

	results := trie.SearchExact("hel")
	require.Len(t, results, 1)
	assert.Equal(t, 12, results[0].Frequency)
	assert.Equal(t, 1, trie.Len())

	// metadata is overwritten, category falls back to the default
	assert.Equal(t, DefaultCategory, results[0].Metadata.Category)
	assert.Equal(t, "again", results[0].Metadata.Description)
}

func TestTrieInsertRejectsEmptyWord(t *testing.T) {
	trie := NewTrie()
	assert.False(t, trie.Insert("", 10, Metadata{}))
	assert.Equal(t, 0, trie.Len())
	assert.Equal(t, 1, trie.Stats().NodeCount)
}

func TestTrieInsertStampsLastAccessed(t *testing.T) {
	clock := fixedClock()
	trie := NewTrieWithClock(clock)
	trie.Insert("stamp", 1, Metadata{LastAccessed: time.Unix(0, 0)})

	results := trie.SearchExact("stamp")
	require.Len(t, results, 1)
	assert.True(t, results[0].Metadata.LastAccessed.Equal(clock()))
}

func TestTrieSearchExact(t *testing.T) {
	trie := seededTrie(t)

	testCases := []struct {
		prefix      string
		expected    []string
		description string
	}{
		{"app", []string{"apply", "apple", "application"}, "Frequency ordering"},
		{"ap", []string{"apply", "apple", "application", "apt"}, "Shorter prefix widens set"},
		{"APP", []string{"apply", "apple", "application"}, "Case insensitive prefix"},
		{"band", []string{"band", "bandana"}, "Prefix equal to a word includes it"},
		{"zebra", []string{}, "Missing prefix"},
		{"applez", []string{}, "Prefix longer than any word"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			results := trie.SearchExact(tc.prefix)
			words := make([]string, len(results))
			for i, r := range results {
				words[i] = r.Word
			}
			if !assert.Equal(t, tc.expected, words) {
				t.Errorf("Prefix '%s': expected %v, got %v", tc.prefix, tc.expected, words)
			}
		})
	}
}

func TestTrieSearchExactContainment(t *testing.T) {
	trie := NewTrie()
	for i := 0; i < 40; i++ {
		trie.Insert(fmt.Sprintf("w%02d", i), i, Metadata{})
	}
	trie.Insert("other", 1000, Metadata{})

	for _, prefix := range []string{"", "w", "w0", "w1", "w3", "w39", "o"} {
		results := trie.SearchExact(prefix)
		assert.LessOrEqual(t, len(results), ExactLimit, "prefix %q", prefix)
		for i, r := range results {
			assert.True(t, strings.HasPrefix(r.Word, prefix), "prefix %q returned %q", prefix, r.Word)
			if i > 0 {
				assert.GreaterOrEqual(t, results[i-1].Frequency, r.Frequency)
			}
		}
	}

	results := trie.SearchExact("w")
	require.Len(t, results, ExactLimit)
	assert.Equal(t, "w39", results[0].Word)
	assert.Equal(t, "w30", results[9].Word)
}

func TestTrieSearchExactTieBreak(t *testing.T) {
	trie := NewTrie()
	trie.Insert("bc", 5, Metadata{})
	trie.Insert("ba", 5, Metadata{})
	trie.Insert("bb", 5, Metadata{})
	trie.Insert("bz", 9, Metadata{})

	var words []string
	for _, r := range trie.SearchExact("b") {
		words = append(words, r.Word)
	}
	assert.Equal(t, []string{"bz", "ba", "bb", "bc"}, words)
}

func TestTrieSearchFuzzy(t *testing.T) {
	trie := seededTrie(t)

	results := trie.SearchFuzzy("aple", 2)
	require.Len(t, results, 3)
	assert.Equal(t, "apple", results[0].Word)
	assert.Equal(t, 1, results[0].Distance)
	// equal distance, higher frequency first
	assert.Equal(t, "apply", results[1].Word)
	assert.Equal(t, 2, results[1].Distance)
	assert.Equal(t, "apt", results[2].Word)
	assert.Equal(t, 2, results[2].Distance)

	results = trie.SearchFuzzy("bandx", 2)
	require.Len(t, results, 1)
	assert.Equal(t, "band", results[0].Word)

	for _, r := range trie.SearchFuzzy("zzzzzzzz", DefaultMaxDistance) {
		t.Errorf("unexpected fuzzy match %q", r.Word)
	}
}

func TestTrieSearchFuzzyZeroDistanceIsExactMatch(t *testing.T) {
	trie := seededTrie(t)
	for _, w := range trie.AllWords() {
		results := trie.SearchFuzzy(strings.ToUpper(w.Word), 0)
		require.Len(t, results, 1, w.Word)
		assert.Equal(t, w.Word, results[0].Word)
		assert.Zero(t, results[0].Distance)
	}
}

func TestTrieSearchFuzzyLimit(t *testing.T) {
	trie := NewTrie()
	for _, w := range []string{"cat", "bat", "hat", "mat", "rat", "sat", "pat", "fat", "vat", "oat"} {
		trie.Insert(w, len(w), Metadata{})
	}
	results := trie.SearchFuzzy("xat", 1)
	assert.Len(t, results, FuzzyLimit)
	for _, r := range results {
		assert.Equal(t, 1, r.Distance)
	}
}

func TestTrieSearchFuzzyScansEveryWord(t *testing.T) {
	trie := seededTrie(t)
	calls := 0
	trie.distance = func(a, b string) int {
		calls++
		return Levenshtein(a, b)
	}

	trie.SearchExact("ap")
	assert.Zero(t, calls, "prefix search walks the trie without edit distances")

	trie.SearchFuzzy("ap", 1)
	assert.Equal(t, trie.Len(), calls)
	assert.Greater(t, calls, len(trie.SearchExact("ap")))
}

func TestTrieStats(t *testing.T) {
	trie := NewTrie()
	trie.Insert("a", 1, Metadata{})
	trie.Insert("ab", 1, Metadata{})
	trie.Insert("ab", 1, Metadata{})

	stats := trie.Stats()
	assert.Equal(t, TrieStats{TotalWords: 2, MaxDepth: 2, NodeCount: 3}, stats)
	assert.True(t, trie.Contains("AB"))
	assert.False(t, trie.Contains("b"))
}

func TestTrieUnicodeWords(t *testing.T) {
	trie := NewTrie()
	trie.Insert("Ärger", 3, Metadata{})
	trie.Insert("ärmel", 4, Metadata{})

	results := trie.SearchExact("är")
	require.Len(t, results, 2)
	assert.Equal(t, "ärmel", results[0].Word)
	assert.Equal(t, 5, trie.Stats().MaxDepth)
}
