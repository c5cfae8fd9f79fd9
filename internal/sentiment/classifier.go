// Package sentiment labels review text with a keyword-count heuristic.
//
// The heuristic lowercases the comment, splits it on whitespace and counts
// exact token matches against two fixed word lists, then biases the counts by
// the numeric rating. Tokens are not stripped of punctuation, so "great!"
// does not count as "great".
package sentiment

import (
	"sort"
	"strings"

	"github.com/akg580/review-insights/internal/domain"
)

var positiveWords = map[string]struct{}{
	"great":     {},
	"good":      {},
	"excellent": {},
	"love":      {},
	"perfect":   {},
	"beautiful": {},
	"amazing":   {},
}

var negativeWords = map[string]struct{}{
	"bad":          {},
	"poor":         {},
	"terrible":     {},
	"worst":        {},
	"disappointed": {},
	"issue":        {},
	"problem":      {},
}

// Rating thresholds that add one vote to either side.
const (
	positiveRatingFloor = 4
	negativeRatingCeil  = 2
)

// Result is the full breakdown behind a classification.
type Result struct {
	Label            domain.Label `json:"label"`
	PositiveCount    int          `json:"positive_count"`
	NegativeCount    int          `json:"negative_count"`
	PositiveKeywords []string     `json:"positive_keywords"`
	NegativeKeywords []string     `json:"negative_keywords"`
}

// Classify returns the sentiment label for a comment and its rating.
func Classify(comment string, rating int) domain.Label {
	return Analyze(comment, rating).Label
}

// Analyze classifies a comment and reports the keyword votes that decided it.
// Matched keywords are listed once per occurrence, in comment order.
func Analyze(comment string, rating int) Result {
	res := Result{
		PositiveKeywords: []string{},
		NegativeKeywords: []string{},
	}

	for _, word := range strings.Fields(strings.ToLower(comment)) {
		if _, ok := positiveWords[word]; ok {
			res.PositiveCount++
			res.PositiveKeywords = append(res.PositiveKeywords, word)
		}
		if _, ok := negativeWords[word]; ok {
			res.NegativeCount++
			res.NegativeKeywords = append(res.NegativeKeywords, word)
		}
	}

	if rating >= positiveRatingFloor {
		res.PositiveCount++
	}
	if rating <= negativeRatingCeil {
		res.NegativeCount++
	}

	switch {
	case res.PositiveCount > res.NegativeCount:
		res.Label = domain.LabelPositive
	case res.NegativeCount > res.PositiveCount:
		res.Label = domain.LabelNegative
	default:
		res.Label = domain.LabelNeutral
	}

	return res
}

// PositiveWords returns the positive keyword list, sorted.
func PositiveWords() []string {
	return keys(positiveWords)
}

// NegativeWords returns the negative keyword list, sorted.
func NegativeWords() []string {
	return keys(negativeWords)
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
