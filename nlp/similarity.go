package nlp

import (
	"math"
	"regexp"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// tokens of two or more letters, digits or underscores in any script
var similarityToken = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// tfidfCosine fits a smoothed tf-idf model on the two documents,
// idf(t) = ln((1+n)/(1+df(t))) + 1, l2 normalizes both vectors and returns
// their dot product.
func tfidfCosine(a, b string) (float64, error) {
	docs := [][]string{similarityTerms(a), similarityTerms(b)}

	vocabulary := map[string]int{}
	for _, doc := range docs {
		for _, term := range doc {
			if _, ok := vocabulary[term]; !ok {
				vocabulary[term] = len(vocabulary)
			}
		}
	}
	if len(vocabulary) == 0 {
		return 0, ErrNoVocabulary
	}

	df := make([]float64, len(vocabulary))
	vectors := make([][]float64, len(docs))
	for d, doc := range docs {
		vectors[d] = make([]float64, len(vocabulary))
		for _, term := range doc {
			vectors[d][vocabulary[term]]++
		}
		for i, tf := range vectors[d] {
			if tf > 0 {
				df[i]++
			}
		}
	}

	n := float64(len(docs))
	for _, vec := range vectors {
		for i := range vec {
			vec[i] *= math.Log((1+n)/(1+df[i])) + 1
		}
		if norm := floats.Norm(vec, 2); norm > 0 {
			floats.Scale(1/norm, vec)
		}
	}

	sim := floats.Dot(vectors[0], vectors[1])
	return math.Max(0, math.Min(1, sim)), nil
}

func similarityTerms(text string) []string {
	res := []string{}
	for _, term := range similarityToken.FindAllString(strings.ToLower(text), -1) {
		if !IsStopWord(term) {
			res = append(res, term)
		}
	}
	return res
}
