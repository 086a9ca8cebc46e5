package nlp

import (
	"sort"
	"strings"
	"unicode"

	"github.com/Luismorlan/newsdash/model"
)

// topTerms counts the keyword tokens and keeps the topN most frequent ones.
func topTerms(tokens []string, topN int) []model.Keyword {
	counts := map[string]int{}
	order := []string{}
	for _, token := range tokens {
		term := strings.ToLower(token)
		if !isKeyword(term) {
			continue
		}
		if _, ok := counts[term]; !ok {
			order = append(order, term)
		}
		counts[term]++
	}

	// order holds first occurrences, a stable sort keeps it for equal counts
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topN {
		order = order[:topN]
	}

	res := make([]model.Keyword, 0, len(order))
	for _, term := range order {
		res = append(res, model.Keyword{Term: term, Count: counts[term]})
	}
	return res
}

// isKeyword accepts lower-cased alphabetic tokens which are not stop words.
func isKeyword(term string) bool {
	if term == "" || IsStopWord(term) {
		return false
	}
	for _, r := range term {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
