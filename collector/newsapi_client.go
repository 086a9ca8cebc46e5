package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/Luismorlan/newsdash/cache"
	"github.com/Luismorlan/newsdash/collector/clients"
	"github.com/Luismorlan/newsdash/model"
	Logger "github.com/Luismorlan/newsdash/utils/log"
	"github.com/Luismorlan/newsdash/utils/metrics"
)

const (
	DefaultNewsApiBaseUrl = "https://newsapi.org/v2"
	DefaultLanguage       = "en"

	EndpointHeadlines = "/top-headlines"
	EndpointSearch    = "/everything"
	EndpointSources   = "/sources"

	statusOk = "ok"
)

var (
	ErrMissingApiKey = errors.New("news api key is required")

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

type NewsApiConfig struct {
	ApiKey  string
	BaseUrl string
	Timeout time.Duration
	// Language used by search and sources when the caller sets none.
	DefaultLanguage string
}

// NewsApiConfigFromEnv reads NEWS_API_KEY and NEWS_API_BASE_URL.
func NewsApiConfigFromEnv(timeout time.Duration, defaultLanguage string) NewsApiConfig {
	return NewsApiConfig{
		ApiKey:          os.Getenv("NEWS_API_KEY"),
		BaseUrl:         os.Getenv("NEWS_API_BASE_URL"),
		Timeout:         timeout,
		DefaultLanguage: defaultLanguage,
	}
}

type newsApiResponse struct {
	Status       string             `json:"status"`
	Code         string             `json:"code,omitempty"`
	Message      string             `json:"message,omitempty"`
	TotalResults int                `json:"totalResults,omitempty"`
	Articles     []model.Article    `json:"articles,omitempty"`
	Sources      []model.NewsSource `json:"sources,omitempty"`
}

// NewsApiClient fetches headlines, search results and sources. Successful
// response bodies are cached by endpoint and query so that the same request
// within the cache ttl does not leave the process.
type NewsApiClient struct {
	apiKey          string
	baseUrl         string
	defaultLanguage string

	client        *clients.HttpClient
	responseCache cache.Cache[[]byte]
	enricher      ArticleEnricher
}

func NewNewsApiClient(config NewsApiConfig, enricher ArticleEnricher, responseCache cache.Cache[[]byte]) (*NewsApiClient, error) {
	if config.ApiKey == "" {
		return nil, ErrMissingApiKey
	}
	baseUrl := config.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultNewsApiBaseUrl
	}
	language := config.DefaultLanguage
	if language == "" {
		language = DefaultLanguage
	}
	return &NewsApiClient{
		apiKey:          config.ApiKey,
		baseUrl:         strings.TrimSuffix(baseUrl, "/"),
		defaultLanguage: language,
		client:          clients.NewDefaultHttpClient(config.Timeout),
		responseCache:   responseCache,
		enricher:        enricher,
	}, nil
}

// GetTopHeadlines returns enriched headlines. Articles without a category get
// the category of the filter.
func (c *NewsApiClient) GetTopHeadlines(ctx context.Context, q HeadlinesQuery) ([]model.Article, error) {
	q = q.normalized()
	res, err := c.request(ctx, EndpointHeadlines, q)
	if err != nil {
		return []model.Article{}, err
	}
	articles := nonNilArticles(res.Articles)
	if q.Category != "" {
		for i := range articles {
			if articles[i].Category == "" {
				articles[i].Category = q.Category
			}
		}
	}
	return c.enrich(ctx, articles), nil
}

// SearchEverything returns enriched articles matching q.
func (c *NewsApiClient) SearchEverything(ctx context.Context, q SearchQuery) ([]model.Article, error) {
	q = q.normalized(c.defaultLanguage)
	res, err := c.request(ctx, EndpointSearch, q)
	if err != nil {
		return []model.Article{}, err
	}
	return c.enrich(ctx, nonNilArticles(res.Articles)), nil
}

// GetSources lists the publishers known to the news api.
func (c *NewsApiClient) GetSources(ctx context.Context, q SourcesQuery) ([]model.NewsSource, error) {
	q = q.normalized(c.defaultLanguage)
	res, err := c.request(ctx, EndpointSources, q)
	if err != nil {
		return []model.NewsSource{}, err
	}
	if res.Sources == nil {
		return []model.NewsSource{}, nil
	}
	return res.Sources, nil
}

func (c *NewsApiClient) enrich(ctx context.Context, articles []model.Article) []model.Article {
	if c.enricher == nil {
		return articles
	}
	return c.enricher.EnrichArticles(ctx, articles)
}

// request returns the decoded response of endpoint for params, served from
// the response cache when possible. The api key is never part of the cache
// key.
func (c *NewsApiClient) request(ctx context.Context, endpoint string, params interface{}) (*newsApiResponse, error) {
	values, err := query.Values(params)
	if err != nil {
		return nil, err
	}
	cacheKey := endpoint + "_" + values.Encode()
	logger := Logger.Log.WithFields(logrus.Fields{"endpoint": endpoint, "query": values.Encode()})

	if body, ok := c.responseCache.Get(cacheKey); ok {
		var res newsApiResponse
		if err := json.Unmarshal(body, &res); err == nil {
			logger.Debugln("returning cached response")
			metrics.NewsApiRequests.WithLabelValues(endpoint, "cache_hit").Inc()
			return &res, nil
		}
	}

	values.Set("apiKey", c.apiKey)
	uri := c.baseUrl + endpoint + "?" + values.Encode()
	httpRes, err := c.client.Get(ctx, uri)
	if err != nil {
		logger.Errorln("news api request failed: ", redact(err, c.apiKey))
		metrics.NewsApiRequests.WithLabelValues(endpoint, "http_error").Inc()
		return nil, redact(err, c.apiKey)
	}
	defer httpRes.Body.Close()

	body, err := io.ReadAll(httpRes.Body)
	if err != nil {
		metrics.NewsApiRequests.WithLabelValues(endpoint, "http_error").Inc()
		return nil, err
	}
	var res newsApiResponse
	if err := json.Unmarshal(body, &res); err != nil {
		logger.Errorln("fail to decode news api response: ", err)
		metrics.NewsApiRequests.WithLabelValues(endpoint, "decode_error").Inc()
		return nil, err
	}
	if res.Status != statusOk {
		logger.Errorln("news api error: ", res.Message)
		metrics.NewsApiRequests.WithLabelValues(endpoint, "api_error").Inc()
		return nil, fmt.Errorf("news api error %s: %s", res.Code, res.Message)
	}

	c.responseCache.Put(cacheKey, body)
	metrics.NewsApiRequests.WithLabelValues(endpoint, statusOk).Inc()
	return &res, nil
}

// redact removes the api key from url errors.
func redact(err error, apiKey string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errors.New(strings.ReplaceAll(urlErr.Error(), apiKey, "REDACTED"))
	}
	return err
}

func nonNilArticles(articles []model.Article) []model.Article {
	if articles == nil {
		return []model.Article{}
	}
	return articles
}
