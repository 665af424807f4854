package lexicon

import "unicode/utf16"

const (
	// DefaultTableCapacity is the bucket count of a new HashTable.
	DefaultTableCapacity = 16
	// MaxLoadFactor triggers a doubling once count/capacity exceeds it.
	MaxLoadFactor = 0.75
)

type tableEntry[V any] struct {
	key       string
	value     V
	frequency int
}

// HashTable maps string keys to a value and an accumulated frequency using
// separate chaining. Keys are compared exactly, without case folding.
type HashTable[V any] struct {
	buckets [][]tableEntry[V]
	count   int
}

// NewHashTable creates a table with the given bucket count,
// or DefaultTableCapacity when capacity is not positive.
func NewHashTable[V any](capacity int) *HashTable[V] {
	if capacity <= 0 {
		capacity = DefaultTableCapacity
	}
	return &HashTable[V]{buckets: make([][]tableEntry[V], capacity)}
}

// Hash folds the UTF-16 code units of key with h = (h*31 + unit) mod capacity.
func Hash(key string, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	h := 0
	for _, unit := range utf16.Encode([]rune(key)) {
		h = (h*31 + int(unit)) % capacity
	}
	return h
}

// Insert stores value under key. An existing key has frequency added and its
// value replaced. A new key may grow the table.
func (ht *HashTable[V]) Insert(key string, value V, frequency int) {
	idx := Hash(key, len(ht.buckets))
	bucket := ht.buckets[idx]
	for i := range bucket {
		if bucket[i].key == key {
			bucket[i].frequency += frequency
			bucket[i].value = value
			return
		}
	}

	ht.buckets[idx] = append(bucket, tableEntry[V]{key: key, value: value, frequency: frequency})
	ht.count++

	if ht.LoadFactor() > MaxLoadFactor {
		ht.resize()
	}
}

// Search returns the value and frequency stored for key.
func (ht *HashTable[V]) Search(key string) (V, int, bool) {
	for _, e := range ht.buckets[Hash(key, len(ht.buckets))] {
		if e.key == key {
			return e.value, e.frequency, true
		}
	}
	var zero V
	return zero, 0, false
}

// Keys returns every stored key in bucket order.
func (ht *HashTable[V]) Keys() []string {
	keys := make([]string, 0, ht.count)
	for _, bucket := range ht.buckets {
		for _, e := range bucket {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Len returns the number of distinct keys.
func (ht *HashTable[V]) Len() int {
	return ht.count
}

// Capacity returns the current bucket count.
func (ht *HashTable[V]) Capacity() int {
	return len(ht.buckets)
}

// LoadFactor is count divided by capacity.
func (ht *HashTable[V]) LoadFactor() float64 {
	return float64(ht.count) / float64(len(ht.buckets))
}

// Stats reports occupancy. Collisions counts buckets holding more than one entry.
func (ht *HashTable[V]) Stats() TableStats {
	collisions := 0
	for _, bucket := range ht.buckets {
		if len(bucket) > 1 {
			collisions++
		}
	}
	return TableStats{
		Capacity:   len(ht.buckets),
		Count:      ht.count,
		LoadFactor: ht.LoadFactor(),
		Collisions: collisions,
	}
}

func (ht *HashTable[V]) resize() {
	old := ht.buckets
	ht.buckets = make([][]tableEntry[V], len(old)*2)
	ht.count = 0
	for _, bucket := range old {
		for _, e := range bucket {
			ht.Insert(e.key, e.value, e.frequency)
		}
	}
}
