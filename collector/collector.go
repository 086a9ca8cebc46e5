package collector

import (
	"context"

	"github.com/Luismorlan/newsdash/model"
)

// ArticleEnricher attaches nlp metadata to articles. It never drops an
// article, one that fails to enrich is returned as it came in.
type ArticleEnricher interface {
	EnrichArticles(ctx context.Context, articles []model.Article) []model.Article
}

// NlpAnnotator is the subset of the nlp processor needed for enrichment.
type NlpAnnotator interface {
	AnalyzeSentiment(text string) (model.Sentiment, error)
	ExtractKeywords(text string, topN int) ([]model.Keyword, error)
	GetNamedEntities(text string) ([]model.NamedEntity, error)
	SummarizeArticle(ctx context.Context, url string) (string, error)
}

// ArticleCacheStore persists enriched articles by url so that they are not
// enriched again within a day.
type ArticleCacheStore interface {
	GetCachedArticle(url string) (*model.ArticleCache, error)
	CacheArticle(article model.Article) error
}
