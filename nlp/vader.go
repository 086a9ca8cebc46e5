package nlp

import (
	"github.com/jonreiter/govader"
)

// VaderScorer scores polarity with the VADER lexicon, the compound score is
// already normalized to [-1, 1].
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) Polarity(text string) (float64, error) {
	return v.analyzer.PolarityScores(text).Compound, nil
}
