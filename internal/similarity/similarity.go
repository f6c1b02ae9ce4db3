// Package similarity provides string similarity measures shared by the
// duplication checks.
package similarity

import "strings"

// editDistanceMaxLen is the length above which Score falls back from the
// quadratic edit-distance computation to token overlap.
const editDistanceMaxLen = 500

// Score returns a similarity ratio in [0,1]: 1 for identical strings,
// 0 for maximally different ones. Short strings are compared by
// normalized Levenshtein distance; longer strings by Jaccard overlap of
// their whitespace-separated tokens, which keeps cost near-linear.
func Score(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(a) <= editDistanceMaxLen && len(b) <= editDistanceMaxLen {
		// Normalize by rune count to match the units of the distance.
		longest := len([]rune(a))
		if n := len([]rune(b)); n > longest {
			longest = n
		}
		return 1 - float64(levenshtein(a, b))/float64(longest)
	}
	return jaccard(a, b)
}

// levenshtein computes the classic edit distance with unit costs for
// insert, delete, and substitute, using a two-row rolling table.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// jaccard computes |A∩B| / |A∪B| over word sets. An empty union yields 0.
func jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	union := len(setB)
	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
