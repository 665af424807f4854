package lexicon

import (
	"fmt"
	"testing"
)

func benchTrie(n int) *Trie {
	trie := NewTrie()
	for i := 0; i < n; i++ {
		trie.Insert(fmt.Sprintf("word%05d", i), i%977, Metadata{})
	}
	return trie
}

func BenchmarkTrieSearchExact(b *testing.B) {
	trie := benchTrie(10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		trie.SearchExact("word12")
	}
}

func BenchmarkTrieSearchFuzzy(b *testing.B) {
	trie := benchTrie(10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		trie.SearchFuzzy("wrod1234", DefaultMaxDistance)
	}
}

func BenchmarkHashTableInsert(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ht := NewHashTable[int](0)
		for j := 0; j < 1000; j++ {
			ht.Insert(fmt.Sprintf("k%d", j), j, 1)
		}
	}
}
