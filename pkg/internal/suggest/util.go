// Package suggest ranks "did you mean" candidates.
package suggest

import (
	"sort"

	"github.com/agext/levenshtein"
)

// MinScore is the score a candidate needs to be suggested.
const MinScore = 0.2

type suggestion struct {
	text  string
	score float64
}

// Similar returns the candidates similar to given, best first.
func Similar(given string, candidates []string) []string {
	return SimilarAbove(given, candidates, MinScore)
}

// SimilarAbove returns the candidates scoring at least minScore, best first.
func SimilarAbove(given string, candidates []string, minScore float64) []string {
	var result []suggestion
	for _, text := range candidates {
		score := Score(given, text)
		if score < minScore {
			continue
		}
		result = append(result, suggestion{
			text:  text,
			score: score,
		})
	}
	sortSuggestions(result)
	out := make([]string, len(result))
	for i, s := range result {
		out[i] = s.text
	}
	return out
}

// Best returns the most similar candidate, if any.
func Best(given string, candidates []string) (string, bool) {
	return Closest(given, candidates, MinScore)
}

// Closest returns the most similar candidate scoring at least minScore.
func Closest(given string, candidates []string, minScore float64) (string, bool) {
	if s := SimilarAbove(given, candidates, minScore); len(s) != 0 {
		return s[0], true
	}
	return "", false
}

func sortSuggestions(s []suggestion) {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].score > s[j].score
	})
}

// Score compares the whole of given with a candidate.
func Score(given, candidate string) float64 {
	if given == "" {
		return 0
	}
	return levenshtein.Similarity(given, candidate, nil)
}

// PrefixScore compares given with the prefix of a candidate of the same length,
// which ranks candidates completing a partial input.
func PrefixScore(given, candidate string) float64 {
	i := len(given)
	if len(candidate) < i {
		i = len(candidate)
	}
	return levenshtein.Similarity(given, candidate[:i], nil)
}
