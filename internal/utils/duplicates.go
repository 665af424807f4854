package utils

import (
	"strings"
)

// SeenFilter remembers words case-insensitively and reports repeats.
type SeenFilter struct {
	seenWords map[string]bool
}

// NewSeenFilter creates a filter that treats every word in exclude as already seen.
func NewSeenFilter(exclude ...string) *SeenFilter {
	seenWords := make(map[string]bool, len(exclude))
	for _, w := range exclude {
		seenWords[strings.ToLower(w)] = true
	}
	return &SeenFilter{seenWords: seenWords}
}

// ShouldInclude returns true the first time word is seen and false afterwards.
func (f *SeenFilter) ShouldInclude(word string) bool {
	lowerWord := strings.ToLower(word)
	if f.seenWords[lowerWord] {
		return false
	}
	f.seenWords[lowerWord] = true
	return true
}

// Len returns how many distinct words have been seen.
func (f *SeenFilter) Len() int {
	return len(f.seenWords)
}
