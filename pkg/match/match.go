// Package match decides whether two component-name strings denote the same
// thing despite wording differences. It combines normalized equality,
// substring containment, and edit-distance similarity into a single score.
package match

import "strings"

// DefaultThreshold is the similarity score at or above which two names are
// considered a match.
const DefaultThreshold = 0.8

// containmentScore is the fixed similarity assigned when one normalized
// name contains the other. Containment always counts as a match regardless
// of the caller's threshold.
const containmentScore = 0.85

// Similarity scores how alike two names are, in [0,1]:
// 1.0 for an exact case-insensitive match, 0.85 for substring containment
// in either direction, otherwise 1 - editDistance/maxLen. Two empty
// strings score 0.0; real components are never named the empty string.
func Similarity(a, b string) float64 {
	na := normalize(a)
	nb := normalize(b)

	if len(na) == 0 && len(nb) == 0 {
		return 0.0
	}
	if na == nb {
		return 1.0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return containmentScore
	}

	ra := []rune(na)
	rb := []rune(nb)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}

	dist := editDistance(ra, rb)
	return 1.0 - float64(dist)/float64(maxLen)
}

// IsMatch reports whether a and b match at the default threshold.
func IsMatch(a, b string) bool {
	return IsMatchThreshold(a, b, DefaultThreshold)
}

// IsMatchThreshold reports whether Similarity(a, b) >= threshold.
// Substring containment matches regardless of threshold.
func IsMatchThreshold(a, b string, threshold float64) bool {
	sim := Similarity(a, b)
	if sim >= containmentScore {
		return true
	}
	return sim >= threshold
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// editDistance calculates the edit distance between two rune slices using
// single-character insertion, deletion, and substitution, each at cost 1.
func editDistance(s1, s2 []rune) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
	}

	for i := 0; i <= len(s1); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = minInt(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}

func minInt(a, b, c int) int {
	min := a
	if b < min {
		min = b
	}
	if c < min {
		min = c
	}
	return min
}
