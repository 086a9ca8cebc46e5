package nlp

import (
	"math"
	"sort"
	"strings"
)

const idealSentenceWords = 20

type scoredSentence struct {
	index int
	text  string
	score float64
}

// summarize picks the n best scored sentences and joins them in their
// original order. A sentence scores for sharing words with the title, for
// containing the frequent keywords of the whole text, for a length close to
// idealSentenceWords and for appearing early.
func summarize(title string, sentences []string, n int, tokenize func(string) []string) string {
	if len(sentences) == 0 || n <= 0 {
		return ""
	}
	if len(sentences) <= n {
		return strings.Join(trimAll(sentences), " ")
	}

	titleTerms := termSet(tokenize(title))

	allTokens := []string{}
	sentenceTokens := make([][]string, len(sentences))
	for i, s := range sentences {
		sentenceTokens[i] = tokenize(s)
		allTokens = append(allTokens, sentenceTokens[i]...)
	}
	// keyword weight is the term frequency relative to the most frequent term
	top := topTerms(allTokens, DefaultTopKeywords)
	keywordWeight := map[string]float64{}
	if len(top) > 0 {
		maxCount := float64(top[0].Count)
		for _, k := range top {
			keywordWeight[k.Term] = float64(k.Count) / maxCount
		}
	}

	scored := make([]scoredSentence, len(sentences))
	for i, s := range sentences {
		words := 0
		titleHits := 0
		keywordScore := 0.0
		for _, token := range sentenceTokens[i] {
			term := strings.ToLower(token)
			if !isKeyword(term) {
				continue
			}
			words++
			if _, ok := titleTerms[term]; ok {
				titleHits++
			}
			keywordScore += keywordWeight[term]
		}

		titleScore := 0.0
		if len(titleTerms) > 0 {
			titleScore = float64(titleHits) / float64(len(titleTerms))
		}
		density := 0.0
		if words > 0 {
			density = keywordScore / float64(words)
		}
		totalWords := len(strings.Fields(s))
		lengthScore := 1 - math.Min(1, math.Abs(float64(totalWords-idealSentenceWords))/idealSentenceWords)
		positionScore := 1 - float64(i)/float64(len(sentences))

		scored[i] = scoredSentence{
			index: i,
			text:  strings.TrimSpace(s),
			score: 1.5*titleScore + 2*density + 0.5*lengthScore + positionScore,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	best := scored[:n]
	sort.Slice(best, func(i, j int) bool {
		return best[i].index < best[j].index
	})

	texts := make([]string, 0, n)
	for _, s := range best {
		texts = append(texts, s.text)
	}
	return strings.Join(texts, " ")
}

func termSet(tokens []string) map[string]struct{} {
	res := map[string]struct{}{}
	for _, token := range tokens {
		term := strings.ToLower(token)
		if isKeyword(term) {
			res[term] = struct{}{}
		}
	}
	return res
}

func trimAll(in []string) []string {
	res := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	return res
}
