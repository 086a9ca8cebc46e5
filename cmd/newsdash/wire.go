package main

import (
	"os"

	"github.com/pkg/errors"

	"github.com/Luismorlan/newsdash/analytics"
	"github.com/Luismorlan/newsdash/app_config"
	"github.com/Luismorlan/newsdash/cache"
	"github.com/Luismorlan/newsdash/collector"
	"github.com/Luismorlan/newsdash/nlp"
	"github.com/Luismorlan/newsdash/server"
	"github.com/Luismorlan/newsdash/store"
	"github.com/Luismorlan/newsdash/utils"
	Logger "github.com/Luismorlan/newsdash/utils/log"
)

// services is everything a command may need, built once from config and env.
type services struct {
	store     *store.Store
	nlp       *nlp.Processor
	news      *collector.NewsApiClient
	feeds     *collector.RssCollector
	analytics *analytics.Analytics
}

func buildStore(config app_config.NewsdashAppConfig) (*store.Store, error) {
	db, err := utils.GetDBConnection()
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		return nil, errors.Wrap(err, "migrate database")
	}
	return store.New(db, store.WithArticleCacheTTL(config.ArticleCacheTTL())), nil
}

// newApiCache shares news api responses through redis when REDIS_HOST is set
// and falls back to an in process cache otherwise.
func newApiCache(config app_config.NewsdashAppConfig) cache.Cache[[]byte] {
	if os.Getenv("REDIS_HOST") != "" {
		redisCache, err := cache.GetRedisCache(cache.ApiCacheName, config.ApiCacheTTL())
		if err == nil {
			return redisCache
		}
		Logger.Log.Errorln("fail to connect to redis, using in memory api cache: ", err)
	}
	return cache.NewTTLCache[[]byte](cache.ApiCacheName, config.API_CACHE_SIZE, config.ApiCacheTTL())
}

func newProcessor(config app_config.NewsdashAppConfig) *nlp.Processor {
	options := []nlp.ProcessorOption{
		nlp.WithArticleExtractor(nlp.NewCollyExtractor(config.RequestTimeout())),
		nlp.WithDefaultLanguage(config.DEFAULT_LANGUAGE),
		nlp.WithSummarySentences(config.SUMMARY_SENTENCES),
	}
	if endpoint := os.Getenv("TRANSLATE_API_URL"); endpoint != "" {
		options = append(options, nlp.WithTranslator(nlp.NewLibreTranslator(endpoint, config.RequestTimeout())))
	}
	nlpCache := cache.NewTTLCache[any](cache.NlpCacheName, config.NLP_CACHE_SIZE, config.NlpCacheTTL())
	return nlp.NewProcessor(nlpCache, options...)
}

func buildServices(config app_config.NewsdashAppConfig) (*services, error) {
	st, err := buildStore(config)
	if err != nil {
		return nil, err
	}
	processor := newProcessor(config)
	enricher := collector.NewEnricher(processor, st, config.ENRICH_KEYWORDS)

	news, err := collector.NewNewsApiClient(
		collector.NewsApiConfigFromEnv(config.RequestTimeout(), config.DEFAULT_LANGUAGE),
		enricher,
		newApiCache(config),
	)
	if errors.Is(err, collector.ErrMissingApiKey) {
		Logger.Log.Warnln("NEWS_API_KEY is not set, news api endpoints are disabled")
	} else if err != nil {
		return nil, err
	}

	return &services{
		store:     st,
		nlp:       processor,
		news:      news,
		feeds:     collector.NewRssCollector(config.RequestTimeout(), enricher),
		analytics: analytics.New(processor, st),
	}, nil
}

func (s *services) requireNews() (*collector.NewsApiClient, error) {
	if s.news == nil {
		return nil, collector.ErrMissingApiKey
	}
	return s.news, nil
}

// dependencies leaves News unset rather than holding a nil client.
func (s *services) dependencies() server.Dependencies {
	deps := server.Dependencies{
		Feeds:     s.feeds,
		Store:     s.store,
		Analytics: s.analytics,
		Text:      s.nlp,
	}
	if s.news != nil {
		deps.News = s.news
	}
	return deps
}
