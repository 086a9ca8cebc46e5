package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Luismorlan/newsdash/cache"
	"github.com/Luismorlan/newsdash/model"
	"github.com/Luismorlan/newsdash/nlp"
	"github.com/Luismorlan/newsdash/store"
	"github.com/Luismorlan/newsdash/utils"
)

type fakeAnnotator struct {
	sentimentErr error
	summaryErr   error
	texts        []string
	summaries    int
}

func (f *fakeAnnotator) AnalyzeSentiment(text string) (model.Sentiment, error) {
	f.texts = append(f.texts, text)
	if f.sentimentErr != nil {
		return model.SentimentNeutral, f.sentimentErr
	}
	return model.SentimentPositive, nil
}

func (f *fakeAnnotator) ExtractKeywords(text string, topN int) ([]model.Keyword, error) {
	return []model.Keyword{{Term: "top", Count: topN}}, nil
}

func (f *fakeAnnotator) GetNamedEntities(text string) ([]model.NamedEntity, error) {
	return []model.NamedEntity{{Text: "Acme", Label: "ORG"}}, nil
}

func (f *fakeAnnotator) SummarizeArticle(ctx context.Context, url string) (string, error) {
	f.summaries++
	if f.summaryErr != nil {
		return "", f.summaryErr
	}
	return "summary of " + url, nil
}

func TestEnrichArticles(t *testing.T) {
	annotator := &fakeAnnotator{}
	enricher := NewEnricher(annotator, nil, 0)

	articles := enricher.EnrichArticles(context.Background(), []model.Article{
		{Title: "Title", Description: "Desc", Url: "https://a.com/1"},
		{Title: "No url"},
	})
	require.Len(t, articles, 2)

	require.Equal(t, []string{"Title Desc", "No url "}, annotator.texts)
	require.Equal(t, model.SentimentPositive, articles[0].Sentiment)
	require.Equal(t, []model.Keyword{{Term: "top", Count: DefaultEnrichKeywords}}, articles[0].Keywords)
	require.Equal(t, []model.NamedEntity{{Text: "Acme", Label: "ORG"}}, articles[0].NamedEntities)
	require.Equal(t, "summary of https://a.com/1", *articles[0].Summary)

	require.Nil(t, articles[1].Summary)
	require.Equal(t, 1, annotator.summaries)
}

func TestEnrichArticles_FailuresPassThrough(t *testing.T) {
	annotator := &fakeAnnotator{sentimentErr: errors.New("model down"), summaryErr: errors.New("404")}
	enricher := NewEnricher(annotator, nil, 3)

	articles := enricher.EnrichArticles(context.Background(), []model.Article{{Title: "T", Url: "https://a.com"}})
	require.Len(t, articles, 1)
	require.Equal(t, "T", articles[0].Title)
	require.Equal(t, model.SentimentNeutral, articles[0].Sentiment)
	require.Nil(t, articles[0].Summary)
	require.Len(t, articles[0].Keywords, 1)
}

func TestEnrichArticles_CancelledContext(t *testing.T) {
	annotator := &fakeAnnotator{}
	enricher := NewEnricher(annotator, nil, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := []model.Article{{Title: "a"}, {Title: "b"}}
	articles := enricher.EnrichArticles(ctx, in)
	require.Equal(t, in, articles)
	require.Empty(t, annotator.texts)
}

func TestEnrichArticles_MissingDescriptionStillHasSentiment(t *testing.T) {
	processor := nlp.NewProcessor(cache.NewTTLCache[any]("enrich_test", 100, time.Minute))
	enricher := NewEnricher(processor, nil, 5)

	articles := enricher.EnrichArticles(context.Background(), []model.Article{
		{Title: "Wonderful news: the festival was a great success"},
	})
	require.Len(t, articles, 1)
	require.True(t, articles[0].Sentiment.IsValid())
	require.Equal(t, model.SentimentPositive, articles[0].Sentiment)
	require.NotEmpty(t, articles[0].Keywords)
	require.Nil(t, articles[0].Summary)
}

func TestEnrichArticles_ReusesStoredEnrichment(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	articleStore := store.New(db)
	annotator := &fakeAnnotator{}
	enricher := NewEnricher(annotator, articleStore, 5)
	ctx := context.Background()

	first := enricher.EnrichArticles(ctx, []model.Article{{Title: "T", Url: "https://a.com/1"}})
	require.Equal(t, 1, annotator.summaries)

	row, err := articleStore.GetCachedArticle("https://a.com/1")
	require.NoError(t, err)
	require.Equal(t, "summary of https://a.com/1", row.Summary)

	second := enricher.EnrichArticles(ctx, []model.Article{{Title: "T", Url: "https://a.com/1"}})
	require.Equal(t, 1, annotator.summaries)
	require.Len(t, annotator.texts, 1)
	require.Equal(t, first, second)
}

func TestEnrichArticles_PartialEnrichmentNotStored(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	articleStore := store.New(db)
	enricher := NewEnricher(&fakeAnnotator{summaryErr: errors.New("timeout")}, articleStore, 5)

	enricher.EnrichArticles(context.Background(), []model.Article{{Title: "T", Url: "https://a.com/1"}})
	_, err := articleStore.GetCachedArticle("https://a.com/1")
	require.ErrorIs(t, err, store.ErrNotFound)
}
