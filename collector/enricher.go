package collector

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Luismorlan/newsdash/model"
	"github.com/Luismorlan/newsdash/store"
	Logger "github.com/Luismorlan/newsdash/utils/log"
)

const DefaultEnrichKeywords = 5

// Enricher annotates articles with sentiment, keywords, named entities and a
// summary. With a store configured, articles enriched during the last day are
// read back instead of being summarized again, and new enrichments are
// written back.
type Enricher struct {
	nlp      NlpAnnotator
	store    ArticleCacheStore
	keywords int
}

// NewEnricher creates an enricher, cacheStore may be nil.
func NewEnricher(nlp NlpAnnotator, cacheStore ArticleCacheStore, keywords int) *Enricher {
	if keywords <= 0 {
		keywords = DefaultEnrichKeywords
	}
	return &Enricher{nlp: nlp, store: cacheStore, keywords: keywords}
}

func (e *Enricher) EnrichArticles(ctx context.Context, articles []model.Article) []model.Article {
	enriched := make([]model.Article, 0, len(articles))
	for _, article := range articles {
		if ctx.Err() != nil {
			// out of time, the rest passes through as is
			enriched = append(enriched, article)
			continue
		}
		enriched = append(enriched, e.enrichArticle(ctx, article))
	}
	return enriched
}

func (e *Enricher) enrichArticle(ctx context.Context, article model.Article) model.Article {
	logger := Logger.Log.WithFields(logrus.Fields{"url": article.Url})

	if e.fromStore(&article, logger) {
		return article
	}

	text := article.Text()
	var err error
	failed := false
	if article.Sentiment, err = e.nlp.AnalyzeSentiment(text); err != nil {
		logger.Errorln("fail to analyze sentiment: ", err)
		failed = true
	}
	if article.Keywords, err = e.nlp.ExtractKeywords(text, e.keywords); err != nil {
		logger.Errorln("fail to extract keywords: ", err)
		failed = true
	}
	if article.NamedEntities, err = e.nlp.GetNamedEntities(text); err != nil {
		logger.Errorln("fail to get named entities: ", err)
		failed = true
	}
	if article.Url != "" {
		summary, err := e.nlp.SummarizeArticle(ctx, article.Url)
		if err != nil {
			logger.Errorln("fail to summarize article: ", err)
			failed = true
		} else if summary != "" {
			article.Summary = &summary
		}
	}

	// partial enrichments are not cached so that they get another chance
	if e.store != nil && article.Url != "" && !failed {
		if err := e.store.CacheArticle(article); err != nil {
			logger.Errorln("fail to cache enriched article: ", err)
		}
	}
	return article
}

// fromStore applies a cached enrichment, returns false when there is none.
func (e *Enricher) fromStore(article *model.Article, logger *logrus.Entry) bool {
	if e.store == nil || article.Url == "" {
		return false
	}
	cached, err := e.store.GetCachedArticle(article.Url)
	if err != nil {
		if !isNotFound(err) {
			logger.Errorln("fail to read cached article: ", err)
		}
		return false
	}
	if err := cached.ApplyTo(article); err != nil {
		logger.Errorln("fail to decode cached article: ", err)
		return false
	}
	return true
}

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
