// Package similarity scores lexical similarity between two texts with
// TF-IDF vectors and cosine similarity.
package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// terms are runs of two or more word characters
var termPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// Similarity returns the cosine similarity in [0,1] between the TF-IDF
// vectors of reference and candidate. The two texts are the whole corpus:
// document frequencies are computed for this pair only. A text without terms
// yields 0.
func Similarity(reference, candidate string) float64 {
	a := termCounts(reference)
	b := termCounts(candidate)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	vocabulary := unionTerms(a, b)

	const n = 2.0
	var dot, na, nb float64
	for _, term := range vocabulary {
		df := 0.0
		if a[term] > 0 {
			df++
		}
		if b[term] > 0 {
			df++
		}
		idf := math.Log((1+n)/(1+df)) + 1

		x := a[term] * idf
		y := b[term] * idf
		dot += x * y
		na += x * x
		nb += y * y
	}

	den := math.Sqrt(na * nb)
	if den == 0 {
		return 0
	}

	return clamp(dot / den)
}

func termCounts(text string) map[string]float64 {
	counts := make(map[string]float64)
	for _, term := range termPattern.FindAllString(strings.ToLower(text), -1) {
		counts[term]++
	}
	return counts
}

// unionTerms is sorted so that float sums do not depend on map order.
func unionTerms(a, b map[string]float64) []string {
	terms := make([]string, 0, len(a)+len(b))
	for term := range a {
		terms = append(terms, term)
	}
	for term := range b {
		if _, ok := a[term]; !ok {
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)
	return terms
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
