package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCacheGetPut(t *testing.T) {
	qc := NewQueryCache(8)
	_, ok := qc.Get("ap")
	assert.False(t, ok)

	results := []Result{{Word: "apple", Frequency: 3}}
	qc.Put("AP", results)
	results[0].Word = "mutated"

	got, ok := qc.Get("ap")
	require.True(t, ok)
	assert.Equal(t, "apple", got[0].Word, "cache must hold its own copy")

	stats := qc.Stats()
	assert.Equal(t, 1, stats["cacheHits"])
	assert.Equal(t, 1, stats["cacheMisses"])
}

func TestQueryCacheSkipsEmptyPrefix(t *testing.T) {
	qc := NewQueryCache(8)
	qc.Put("", []Result{{Word: "x"}})
	_, ok := qc.Get("")
	assert.False(t, ok)
	assert.Zero(t, qc.Len())
}

func TestQueryCacheInvalidate(t *testing.T) {
	qc := NewQueryCache(8)
	for _, p := range []string{"a", "ap", "app", "apx", "b"} {
		qc.Put(p, []Result{})
	}

	qc.Invalidate("apple")

	for _, p := range []string{"a", "ap", "app"} {
		_, ok := qc.Get(p)
		assert.False(t, ok, "prefix %q should be dropped", p)
	}
	for _, p := range []string{"apx", "b"} {
		_, ok := qc.Get(p)
		assert.True(t, ok, "prefix %q should survive", p)
	}
}

func TestQueryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	qc := NewQueryCache(2)
	qc.Put("a", []Result{})
	qc.Put("b", []Result{})
	_, _ = qc.Get("a")
	qc.Put("c", []Result{})

	assert.Equal(t, 2, qc.Len())
	_, ok := qc.Get("b")
	assert.False(t, ok)
	_, ok = qc.Get("a")
	assert.True(t, ok)
}
