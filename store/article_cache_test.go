package store

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/Luismorlan/newsdash/model"
	"github.com/Luismorlan/newsdash/utils/metrics"
)

func enrichedArticle(url string, summary string) model.Article {
	return model.Article{
		Title:         "Title of " + url,
		Description:   "Description",
		Url:           url,
		Sentiment:     model.SentimentNegative,
		Keywords:      []model.Keyword{{Term: "title", Count: 1}},
		NamedEntities: []model.NamedEntity{{Text: "Berlin", Label: "GPE"}},
		Summary:       &summary,
	}
}

func TestCacheArticle(t *testing.T) {
	s, clock := newTestStore(t)

	require.NoError(t, s.CacheArticle(enrichedArticle("https://a.com/1", "first")))
	row, err := s.GetCachedArticle("https://a.com/1")
	require.NoError(t, err)
	require.Equal(t, "first", row.Summary)
	require.Equal(t, "negative", row.Sentiment)

	restored := model.Article{}
	require.NoError(t, row.ApplyTo(&restored))
	require.Equal(t, []model.Keyword{{Term: "title", Count: 1}}, restored.Keywords)
	require.Equal(t, []model.NamedEntity{{Text: "Berlin", Label: "GPE"}}, restored.NamedEntities)

	// upsert replaces the row
	clock.Advance(time.Hour)
	require.NoError(t, s.CacheArticle(enrichedArticle("https://a.com/1", "second")))
	row, err = s.GetCachedArticle("https://a.com/1")
	require.NoError(t, err)
	require.Equal(t, "second", row.Summary)
	require.True(t, clock.now.Equal(row.CachedAt))

	_, err = s.GetCachedArticle("https://a.com/missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, s.CacheArticle(model.Article{}), ErrMissingUrl)
}

func TestGetCachedArticle_Expires(t *testing.T) {
	s, clock := newTestStore(t)
	require.NoError(t, s.CacheArticle(enrichedArticle("https://a.com/1", "s")))

	clock.Advance(23 * time.Hour)
	_, err := s.GetCachedArticle("https://a.com/1")
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = s.GetCachedArticle("https://a.com/1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCleanupOldCache(t *testing.T) {
	s, clock := newTestStore(t)
	require.NoError(t, s.CacheArticle(enrichedArticle("https://a.com/old1", "s")))
	require.NoError(t, s.CacheArticle(enrichedArticle("https://a.com/old2", "s")))
	clock.Advance(20 * time.Hour)
	require.NoError(t, s.CacheArticle(enrichedArticle("https://a.com/new", "s")))
	clock.Advance(5 * time.Hour)

	before := testutil.ToFloat64(metrics.ArticleCacheSwept)
	deleted, err := s.CleanupOldCache()
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)
	require.Equal(t, before+2, testutil.ToFloat64(metrics.ArticleCacheSwept))

	var count int64
	s.DB().Model(&model.ArticleCache{}).Count(&count)
	require.Equal(t, int64(1), count)

	deleted, err = s.CleanupOldCache()
	require.NoError(t, err)
	require.Zero(t, deleted)
}

func TestGetCachedArticle_CustomTTL(t *testing.T) {
	s, clock := newTestStore(t)
	WithArticleCacheTTL(time.Hour)(s)
	require.NoError(t, s.CacheArticle(enrichedArticle("https://a.com/1", "s")))

	clock.Advance(2 * time.Hour)
	_, err := s.GetCachedArticle("https://a.com/1")
	require.ErrorIs(t, err, ErrNotFound)

	deleted, err := s.CleanupOldCache()
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)
}
