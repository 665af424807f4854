package lexicon

import "unicode/utf8"

// Levenshtein returns the minimum number of single rune insertions,
// deletions and substitutions needed to turn a into b.
// It fills the whole (len(a)+1) x (len(b)+1) table.
func Levenshtein(a, b string) int {
	s1 := []rune(a)
	s2 := []rune(b)

	matrix := make([][]int, len(s2)+1)
	for j := range matrix {
		matrix[j] = make([]int, len(s1)+1)
		matrix[j][0] = j
	}
	for i := 0; i <= len(s1); i++ {
		matrix[0][i] = i
	}

	for j := 1; j <= len(s2); j++ {
		for i := 1; i <= len(s1); i++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[j][i] = min(
				matrix[j][i-1]+1,
				matrix[j-1][i]+1,
				matrix[j-1][i-1]+cost,
			)
		}
	}
	return matrix[len(s2)][len(s1)]
}

// AdaptiveDistance is the default fuzzy edit budget for query:
// ceil(0.3 * runes), capped at DefaultMaxDistance.
func AdaptiveDistance(query string) int {
	n := utf8.RuneCountInString(query)
	return min(DefaultMaxDistance, (3*n+9)/10)
}
