package stats

import (
	"sort"
	"strings"
	"unicode"
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "could": {}, "for": {}, "from": {}, "had": {},
	"has": {}, "i": {}, "in": {}, "is": {}, "it": {}, "its": {}, "my": {},
	"not": {}, "of": {}, "on": {}, "or": {}, "so": {}, "than": {}, "that": {},
	"the": {}, "this": {}, "though": {}, "to": {}, "too": {}, "very": {},
	"was": {}, "were": {}, "with": {},
}

// Phrases returns up to n of the most frequent adjacent word pairs across
// comments. Words are lowercased and trimmed of surrounding punctuation;
// pairs never span a sentence break and never include a stop word. Ties are
// broken alphabetically.
func Phrases(comments []string, n int) []string {
	freq := make(map[string]int)

	for _, c := range comments {
		prev := ""
		for _, raw := range strings.Fields(strings.ToLower(c)) {
			word := strings.TrimFunc(raw, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsDigit(r)
			})

			if word == "" || isStopWord(word) {
				prev = ""
			} else {
				if prev != "" {
					freq[prev+" "+word]++
				}
				prev = word
			}

			if endsSentence(raw) {
				prev = ""
			}
		}
	}

	phrases := make([]string, 0, len(freq))
	for p := range freq {
		phrases = append(phrases, p)
	}
	sort.Slice(phrases, func(i, j int) bool {
		if freq[phrases[i]] != freq[phrases[j]] {
			return freq[phrases[i]] > freq[phrases[j]]
		}
		return phrases[i] < phrases[j]
	})

	if len(phrases) > n {
		phrases = phrases[:n]
	}
	return phrases
}

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

func endsSentence(raw string) bool {
	return strings.ContainsAny(raw[len(raw)-1:], ".,!?;:")
}
