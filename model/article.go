package model

/*

Article is a news article as returned by the news api, enriched in memory by
the nlp layer. It is never stored as-is, the enriched part of it is cached in
ArticleCache keyed by Url.

Source: where the article was published, Name falls back to "Unknown" in
		analytics when empty
PublishedAt: raw timestamp string from upstream, parsed lazily because
		upstream formats vary between the news api and rss feeds
Category: set from the request filter when upstream does not provide one
Sentiment/Keywords/NamedEntities/Summary: enrichment, empty until enriched
*/

type Article struct {
	Source        ArticleSource `json:"source"`
	Author        string        `json:"author,omitempty"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Url           string        `json:"url"`
	UrlToImage    string        `json:"urlToImage,omitempty"`
	PublishedAt   string        `json:"publishedAt"`
	Content       string        `json:"content,omitempty"`
	Category      string        `json:"category,omitempty"`
	Sentiment     Sentiment     `json:"sentiment,omitempty"`
	Keywords      []Keyword     `json:"keywords,omitempty"`
	NamedEntities []NamedEntity `json:"named_entities,omitempty"`
	Summary       *string       `json:"summary,omitempty"`
}

type ArticleSource struct {
	Id   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Text is what the nlp layer analyzes for an article.
func (a Article) Text() string {
	return a.Title + " " + a.Description
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

func (s Sentiment) IsValid() bool {
	return s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}

// Keyword is a term and how many times it occurs in the analyzed text.
type Keyword struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

type NamedEntity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// NewsSource is a publisher listed by the news api sources endpoint.
type NewsSource struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Url         string `json:"url"`
	Category    string `json:"category"`
	Language    string `json:"language"`
	Country     string `json:"country"`
}
