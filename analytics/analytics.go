// Package analytics turns enriched articles and per-user history into chart
// descriptors. Functions never mutate their input.
package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/sirupsen/logrus"

	"github.com/Luismorlan/newsdash/model"
	Logger "github.com/Luismorlan/newsdash/utils/log"
)

const (
	UnknownSource        = "Unknown"
	UncategorizedArticle = "Uncategorized"

	TopSources          = 10
	DefaultTrendingTopN = 10
	WordCloudMaxWords   = 100

	hourBucketLayout = "2006-01-02 15:00"
	dayBucketLayout  = "2006-01-02"

	ReadingTimeDistribution = "time_distribution"
	ReadingCategories       = "category_preferences"
	ReadingTrend            = "reading_trend"
	FeedbackDistribution    = "feedback_distribution"
	RatingDistribution      = "rating_distribution"
)

var (
	ErrNoData       = errors.New("no data to chart")
	ErrUnknownChart = errors.New("unknown chart")

	SentimentColors = map[string]string{
		string(model.SentimentPositive): "#2ecc71",
		string(model.SentimentNeutral):  "#95a5a6",
		string(model.SentimentNegative): "#e74c3c",
	}
)

type KeywordExtractor interface {
	ExtractKeywords(text string, topN int) ([]model.Keyword, error)
	WordFrequencies(text string, max int) ([]model.Keyword, error)
}

// UserActivitySource reads what a user read and rated.
type UserActivitySource interface {
	GetReadingHistory(userId uint, limit int) ([]model.ReadingHistory, error)
	GetUserFeedback(userId uint) ([]model.ArticleFeedback, error)
}

type Analytics struct {
	keywords KeywordExtractor
	activity UserActivitySource
}

func New(keywords KeywordExtractor, activity UserActivitySource) *Analytics {
	return &Analytics{keywords: keywords, activity: activity}
}

// SentimentChart is a pie of article sentiments, missing ones count as
// neutral.
func (a *Analytics) SentimentChart(articles []model.Article) (*Chart, error) {
	if len(articles) == 0 {
		return nil, logNoData("sentiment")
	}
	sentiments := make([]string, 0, len(articles))
	for _, article := range articles {
		s := article.Sentiment
		if !s.IsValid() {
			s = model.SentimentNeutral
		}
		sentiments = append(sentiments, string(s))
	}
	points := valueCounts(sentiments)
	colors := map[string]string{}
	for _, p := range points {
		colors[p.Label] = SentimentColors[p.Label]
	}
	return &Chart{
		Kind:   ChartPie,
		Title:  "Article Sentiment Distribution",
		Points: points,
		Colors: colors,
	}, nil
}

// SourceDistribution is a bar of the TopSources most frequent sources.
func (a *Analytics) SourceDistribution(articles []model.Article) (*Chart, error) {
	if len(articles) == 0 {
		return nil, logNoData("sources")
	}
	sources := make([]string, 0, len(articles))
	for _, article := range articles {
		name := strings.TrimSpace(article.Source.Name)
		if name == "" {
			name = UnknownSource
		}
		sources = append(sources, name)
	}
	return &Chart{
		Kind:   ChartBar,
		Title:  "Top News Sources",
		XLabel: "Source",
		YLabel: "Number of Articles",
		Points: head(valueCounts(sources), TopSources),
	}, nil
}

func (a *Analytics) CategoryDistribution(articles []model.Article) (*Chart, error) {
	if len(articles) == 0 {
		return nil, logNoData("categories")
	}
	categories := make([]string, 0, len(articles))
	for _, article := range articles {
		categories = append(categories, categoryOf(article.Category))
	}
	return &Chart{
		Kind:   ChartPie,
		Title:  "Article Category Distribution",
		Points: valueCounts(categories),
	}, nil
}

// WordCloud weighs the most frequent words of all titles and descriptions.
func (a *Analytics) WordCloud(articles []model.Article) (*Chart, error) {
	texts := make([]string, 0, len(articles))
	for _, article := range articles {
		texts = append(texts, article.Text())
	}
	allText := strings.Join(texts, " ")
	if strings.TrimSpace(allText) == "" {
		return nil, logNoData("wordcloud")
	}

	words, err := a.keywords.WordFrequencies(allText, WordCloudMaxWords)
	if err != nil {
		Logger.Log.Errorln("fail to count words for word cloud: ", err)
		return nil, err
	}
	if len(words) == 0 {
		return nil, logNoData("wordcloud")
	}
	return &Chart{
		Kind:   ChartWordCloud,
		Title:  "Word Cloud",
		Points: keywordPoints(words),
	}, nil
}

// TrendingTopics is a horizontal bar of the topN keywords shared by most
// articles. Enriched articles contribute their keywords, others are analyzed.
func (a *Analytics) TrendingTopics(articles []model.Article, topN int) (*Chart, error) {
	if topN <= 0 {
		topN = DefaultTrendingTopN
	}
	terms := []string{}
	for _, article := range articles {
		keywords := article.Keywords
		if len(keywords) == 0 {
			var err error
			if keywords, err = a.keywords.ExtractKeywords(article.Text(), 0); err != nil {
				Logger.Log.WithField("url", article.Url).Errorln("fail to extract keywords: ", err)
				continue
			}
		}
		for _, k := range keywords {
			terms = append(terms, k.Term)
		}
	}
	if len(terms) == 0 {
		return nil, logNoData("trending")
	}
	return &Chart{
		Kind:       ChartBar,
		Title:      "Trending Topics",
		XLabel:     "Frequency",
		YLabel:     "Topic",
		Horizontal: true,
		Points:     head(valueCounts(terms), topN),
	}, nil
}

// PublicationTimeline counts articles per hour of publication in UTC. Articles
// without a parsable timestamp are left out.
func (a *Analytics) PublicationTimeline(articles []model.Article) (*Chart, error) {
	buckets := []string{}
	for _, article := range articles {
		if article.PublishedAt == "" {
			continue
		}
		t, err := dateparse.ParseIn(article.PublishedAt, time.UTC)
		if err != nil {
			Logger.Log.WithFields(logrus.Fields{"url": article.Url, "published_at": article.PublishedAt}).
				Warnln("skip article with malformed timestamp")
			continue
		}
		buckets = append(buckets, t.UTC().Format(hourBucketLayout))
	}
	if len(buckets) == 0 {
		return nil, logNoData("timeline")
	}
	return &Chart{
		Kind:   ChartLine,
		Title:  "Publication Timeline",
		XLabel: "Date",
		YLabel: "Number of Articles",
		Points: sortedCounts(buckets),
	}, nil
}

// UserReadingPatterns charts the recent reading history of userId by hour of
// day, category and day.
func (a *Analytics) UserReadingPatterns(userId uint) (map[string]*Chart, error) {
	history, err := a.activity.GetReadingHistory(userId, 0)
	if err != nil {
		Logger.Log.WithField("user_id", userId).Errorln("fail to load reading history: ", err)
		return map[string]*Chart{}, err
	}
	if len(history) == 0 {
		return map[string]*Chart{}, ErrNoData
	}

	hours := map[int]int{}
	categories := make([]string, 0, len(history))
	days := make([]string, 0, len(history))
	for _, entry := range history {
		ts := entry.ReadTimestamp.UTC()
		hours[ts.Hour()]++
		categories = append(categories, categoryOf(entry.Category))
		days = append(days, ts.Format(dayBucketLayout))
	}

	return map[string]*Chart{
		ReadingTimeDistribution: {
			Kind:   ChartBar,
			Title:  "Reading Time Distribution",
			XLabel: "Hour of Day",
			YLabel: "Number of Articles Read",
			Points: intCounts(hours),
		},
		ReadingCategories: {
			Kind:   ChartPie,
			Title:  "Category Preferences",
			Points: valueCounts(categories),
		},
		ReadingTrend: {
			Kind:   ChartLine,
			Title:  "Reading Trend",
			XLabel: "Date",
			YLabel: "Articles Read",
			Points: sortedCounts(days),
		},
	}, nil
}

// FeedbackAnalysis charts the feedback labels and ratings userId gave.
// Rows without a label or rating are left out of the respective chart.
func (a *Analytics) FeedbackAnalysis(userId uint) (map[string]*Chart, error) {
	feedback, err := a.activity.GetUserFeedback(userId)
	if err != nil {
		Logger.Log.WithField("user_id", userId).Errorln("fail to load feedback: ", err)
		return map[string]*Chart{}, err
	}
	if len(feedback) == 0 {
		return map[string]*Chart{}, ErrNoData
	}

	labels := []string{}
	ratings := map[int]int{}
	for _, row := range feedback {
		if row.Feedback != nil {
			labels = append(labels, *row.Feedback)
		}
		if row.Rating != nil {
			ratings[*row.Rating]++
		}
	}

	charts := map[string]*Chart{}
	if len(labels) > 0 {
		charts[FeedbackDistribution] = &Chart{
			Kind:   ChartPie,
			Title:  "Feedback Distribution",
			Points: valueCounts(labels),
		}
	}
	if len(ratings) > 0 {
		charts[RatingDistribution] = &Chart{
			Kind:   ChartBar,
			Title:  "Rating Distribution",
			XLabel: "Rating",
			YLabel: "Count",
			Points: intCounts(ratings),
		}
	}
	return charts, nil
}

// ArticleChart builds the named single article chart, the names are the ones
// served by the http api.
func (a *Analytics) ArticleChart(name string, articles []model.Article) (*Chart, error) {
	switch name {
	case "sentiment":
		return a.SentimentChart(articles)
	case "sources":
		return a.SourceDistribution(articles)
	case "categories":
		return a.CategoryDistribution(articles)
	case "wordcloud":
		return a.WordCloud(articles)
	case "trending":
		return a.TrendingTopics(articles, DefaultTrendingTopN)
	case "timeline":
		return a.PublicationTimeline(articles)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownChart, name)
	}
}

func categoryOf(category string) string {
	if strings.TrimSpace(category) == "" {
		return UncategorizedArticle
	}
	return category
}

func keywordPoints(keywords []model.Keyword) []Point {
	points := make([]Point, 0, len(keywords))
	for _, k := range keywords {
		points = append(points, Point{Label: k.Term, Value: float64(k.Count)})
	}
	return points
}

// intCounts orders integer keyed counts numerically.
func intCounts(counts map[int]int) []Point {
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	points := make([]Point, 0, len(keys))
	for _, k := range keys {
		points = append(points, Point{Label: strconv.Itoa(k), Value: float64(counts[k])})
	}
	return points
}

func logNoData(chart string) error {
	Logger.Log.WithField("chart", chart).Infoln(ErrNoData)
	return ErrNoData
}
