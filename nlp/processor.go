// Package nlp annotates text with sentiment, keywords, named entities,
// summaries and translations. Every operation is cached by its input and
// falls back to an empty value when the underlying model fails, the error is
// returned next to the fallback for callers that want to tell both apart.
package nlp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Luismorlan/newsdash/cache"
	"github.com/Luismorlan/newsdash/model"
	"github.com/Luismorlan/newsdash/utils"
	Logger "github.com/Luismorlan/newsdash/utils/log"
	"github.com/Luismorlan/newsdash/utils/metrics"
)

const (
	DefaultTopKeywords      = 10
	DefaultSummarySentences = 5
	DefaultLanguage         = "en"

	// Polarity strictly above / below these thresholds is positive / negative.
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

var (
	ErrNoExtractor   = errors.New("no article extractor configured")
	ErrNoTranslator  = errors.New("no translator configured")
	ErrNoVocabulary  = errors.New("empty vocabulary, texts contain only stop words")
	ErrEmptyArticle  = errors.New("article page has no text")
	ErrUnexpectedHit = errors.New("cached value has unexpected type")
)

// PolarityScorer returns a polarity in [-1, 1] for text.
type PolarityScorer interface {
	Polarity(text string) (float64, error)
}

// TextAnalyzer splits text into tokens, sentences and named entities.
type TextAnalyzer interface {
	Tokens(text string) ([]string, error)
	Sentences(text string) ([]string, error)
	Entities(text string) ([]model.NamedEntity, error)
}

// Page is the readable part of a downloaded article.
type Page struct {
	Title string
	Text  string
}

// ArticleExtractor downloads url and extracts its readable text.
type ArticleExtractor interface {
	Extract(ctx context.Context, url string) (Page, error)
}

// Translator translates text into the target ISO 639-1 language.
type Translator interface {
	Translate(ctx context.Context, text string, target string) (string, error)
}

type Processor struct {
	cache      cache.Cache[any]
	scorer     PolarityScorer
	analyzer   TextAnalyzer
	extractor  ArticleExtractor
	translator Translator

	defaultLanguage  string
	summarySentences int
}

type ProcessorOption func(*Processor)

func WithPolarityScorer(s PolarityScorer) ProcessorOption {
	return func(p *Processor) { p.scorer = s }
}

func WithTextAnalyzer(a TextAnalyzer) ProcessorOption {
	return func(p *Processor) { p.analyzer = a }
}

func WithArticleExtractor(e ArticleExtractor) ProcessorOption {
	return func(p *Processor) { p.extractor = e }
}

func WithTranslator(t Translator) ProcessorOption {
	return func(p *Processor) { p.translator = t }
}

func WithDefaultLanguage(lang string) ProcessorOption {
	return func(p *Processor) { p.defaultLanguage = lang }
}

func WithSummarySentences(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.summarySentences = n
		}
	}
}

// NewProcessor creates a processor backed by resultCache. Sentiment uses
// VADER and tokenization uses prose unless overridden. Summaries and
// translations need an extractor and a translator to be configured.
func NewProcessor(resultCache cache.Cache[any], opts ...ProcessorOption) *Processor {
	p := &Processor{
		cache:            resultCache,
		defaultLanguage:  DefaultLanguage,
		summarySentences: DefaultSummarySentences,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.scorer == nil {
		p.scorer = NewVaderScorer()
	}
	if p.analyzer == nil {
		p.analyzer = NewProseAnalyzer()
	}
	return p
}

// SentimentFromPolarity maps a polarity score to a sentiment label.
func SentimentFromPolarity(polarity float64) model.Sentiment {
	switch {
	case polarity > positiveThreshold:
		return model.SentimentPositive
	case polarity < negativeThreshold:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// AnalyzeSentiment classifies text. Empty text is neutral and never reaches
// the scorer.
func (p *Processor) AnalyzeSentiment(text string) (model.Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return model.SentimentNeutral, nil
	}

	key := "sentiment_" + hashText(text)
	if v, ok := getCached[model.Sentiment](p.cache, key); ok {
		return v, nil
	}

	polarity, err := p.scorer.Polarity(text)
	if err != nil {
		p.logFailure("sentiment", err)
		return model.SentimentNeutral, err
	}
	result := SentimentFromPolarity(polarity)
	p.cache.Put(key, result)
	return result, nil
}

// ExtractKeywords returns at most topN lower-cased alphabetic non stop word
// terms by descending count. Equal counts keep the order in which the terms
// first appear. topN <= 0 means DefaultTopKeywords.
func (p *Processor) ExtractKeywords(text string, topN int) ([]model.Keyword, error) {
	if topN <= 0 {
		topN = DefaultTopKeywords
	}
	if strings.TrimSpace(text) == "" {
		return []model.Keyword{}, nil
	}

	key := fmt.Sprintf("keywords_%s_%d", hashText(text), topN)
	if v, ok := getCached[[]model.Keyword](p.cache, key); ok {
		return v, nil
	}

	tokens, err := p.analyzer.Tokens(text)
	if err != nil {
		p.logFailure("keywords", err)
		return []model.Keyword{}, err
	}
	result := topTerms(tokens, topN)
	p.cache.Put(key, result)
	return result, nil
}

// GetNamedEntities returns the entities found in text in order of appearance.
func (p *Processor) GetNamedEntities(text string) ([]model.NamedEntity, error) {
	if strings.TrimSpace(text) == "" {
		return []model.NamedEntity{}, nil
	}

	key := "ner_" + hashText(text)
	if v, ok := getCached[[]model.NamedEntity](p.cache, key); ok {
		return v, nil
	}

	entities, err := p.analyzer.Entities(text)
	if err != nil {
		p.logFailure("ner", err)
		return []model.NamedEntity{}, err
	}
	if entities == nil {
		entities = []model.NamedEntity{}
	}
	p.cache.Put(key, entities)
	return entities, nil
}

// SummarizeArticle downloads the page at url and returns its most relevant
// sentences in their original order.
func (p *Processor) SummarizeArticle(ctx context.Context, url string) (string, error) {
	key := "summary_" + url
	if v, ok := getCached[string](p.cache, key); ok {
		return v, nil
	}
	if p.extractor == nil {
		p.logFailure("summary", ErrNoExtractor)
		return "", ErrNoExtractor
	}

	page, err := p.extractor.Extract(ctx, url)
	if err != nil {
		p.logFailure("summary", err)
		return "", err
	}
	if strings.TrimSpace(page.Text) == "" {
		p.logFailure("summary", ErrEmptyArticle)
		return "", ErrEmptyArticle
	}
	sentences, err := p.analyzer.Sentences(page.Text)
	if err != nil {
		p.logFailure("summary", err)
		return "", err
	}
	tokenize := func(s string) []string {
		tokens, err := p.analyzer.Tokens(s)
		if err != nil {
			// the sentence is still ranked, only without term weights
			p.logFailure("summary", err)
		}
		return tokens
	}

	summary := summarize(page.Title, sentences, p.summarySentences, tokenize)
	p.cache.Put(key, summary)
	return summary, nil
}

// TranslateText translates text into target. Empty text and the default
// language are returned unchanged, as is the original text on failure.
func (p *Processor) TranslateText(ctx context.Context, text string, target string) (string, error) {
	target = strings.ToLower(strings.TrimSpace(target))
	if text == "" || target == "" || target == p.defaultLanguage {
		return text, nil
	}

	key := fmt.Sprintf("trans_%s_%s", hashText(text), target)
	if v, ok := getCached[string](p.cache, key); ok {
		return v, nil
	}
	if p.translator == nil {
		return text, ErrNoTranslator
	}

	translated, err := p.translator.Translate(ctx, text, target)
	if err != nil {
		p.logFailure("translate", err)
		return text, err
	}
	p.cache.Put(key, translated)
	return translated, nil
}

// ComputeTextSimilarity is the cosine similarity of the tf-idf vectors of a
// and b, fitted on exactly these two texts. It is within [0, 1].
func (p *Processor) ComputeTextSimilarity(a, b string) (float64, error) {
	sim, err := tfidfCosine(a, b)
	if err != nil {
		p.logFailure("similarity", err)
		return 0, err
	}
	return sim, nil
}

// WordFrequencies counts keywords of text for word clouds, at most max terms.
func (p *Processor) WordFrequencies(text string, max int) ([]model.Keyword, error) {
	return p.ExtractKeywords(text, max)
}

func (p *Processor) logFailure(operation string, err error) {
	Logger.Log.WithField("operation", operation).Errorln("nlp operation failed: ", err)
	metrics.NlpFailures.WithLabelValues(operation).Inc()
}

func hashText(text string) string {
	// md5 of a string never fails
	h, _ := utils.TextToMd5Hash(text)
	return h
}

func getCached[T any](c cache.Cache[any], key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		Logger.Log.WithField("key", key).Warnln(ErrUnexpectedHit)
		return zero, false
	}
	return t, true
}
