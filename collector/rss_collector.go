package collector

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"github.com/Luismorlan/newsdash/collector/clients"
	"github.com/Luismorlan/newsdash/model"
	Logger "github.com/Luismorlan/newsdash/utils/log"
)

// RssCollector turns an RSS or Atom feed into enriched articles.
type RssCollector struct {
	client   *clients.HttpClient
	enricher ArticleEnricher
}

func NewRssCollector(timeout time.Duration, enricher ArticleEnricher) *RssCollector {
	return &RssCollector{client: clients.NewDefaultHttpClient(timeout), enricher: enricher}
}

// FetchFeed downloads the feed at url. Every item becomes an article labelled
// with category.
func (r *RssCollector) FetchFeed(ctx context.Context, url string, category string) ([]model.Article, error) {
	resp, err := r.client.Get(ctx, url)
	if err != nil {
		Logger.Log.WithField("feed", url).Errorln("fail to fetch feed: ", err)
		return []model.Article{}, err
	}
	defer resp.Body.Close()

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		Logger.Log.WithField("feed", url).Errorln("fail to parse feed: ", err)
		return []model.Article{}, err
	}

	articles := make([]model.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		articles = append(articles, feedItemToArticle(feed, item, category))
	}
	if r.enricher == nil {
		return articles, nil
	}
	return r.enricher.EnrichArticles(ctx, articles), nil
}

func feedItemToArticle(feed *gofeed.Feed, item *gofeed.Item, category string) model.Article {
	article := model.Article{
		Source:      model.ArticleSource{Name: feed.Title},
		Title:       strings.TrimSpace(item.Title),
		Description: htmlToText(item.Description),
		Url:         item.Link,
		Content:     htmlToText(item.Content),
		Category:    category,
		PublishedAt: normalizePublishedAt(item),
	}
	if item.Author != nil {
		article.Author = item.Author.Name
	}
	if item.Image != nil {
		article.UrlToImage = item.Image.URL
	}
	return article
}

// normalizePublishedAt formats the item time as RFC 3339 in UTC. Raw strings
// which cannot be parsed are kept as they are.
func normalizePublishedAt(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	raw := item.Published
	if raw == "" {
		raw = item.Updated
	}
	return normalizePublishedAtString(raw)
}

func normalizePublishedAtString(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return raw
	}
	return t.UTC().Format(time.RFC3339)
}

func htmlToText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
