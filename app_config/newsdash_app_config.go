package app_config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// This is the app config for a newsdash process. Every field has a default,
// a missing key in the yaml file keeps the default value.
type NewsdashAppConfig struct {
	// Address the api server listens on.
	SERVER_ADDR string `yaml:"SERVER_ADDR"`
	// Timeout for every outbound http call (news api, article pages,
	// translation service).
	REQUEST_TIMEOUT_SECOND int64 `yaml:"REQUEST_TIMEOUT_SECOND"`
	// Capacity and time-to-live of the nlp result cache.
	NLP_CACHE_SIZE       int   `yaml:"NLP_CACHE_SIZE"`
	NLP_CACHE_TTL_SECOND int64 `yaml:"NLP_CACHE_TTL_SECOND"`
	// Capacity and time-to-live of the news api response cache.
	API_CACHE_SIZE       int   `yaml:"API_CACHE_SIZE"`
	API_CACHE_TTL_SECOND int64 `yaml:"API_CACHE_TTL_SECOND"`
	// Enriched articles older than this are invalid in the article cache.
	ARTICLE_CACHE_TTL_HOUR int64 `yaml:"ARTICLE_CACHE_TTL_HOUR"`
	// Sweep the article cache every other interval.
	CACHE_SWEEP_EVERY_SECOND int64 `yaml:"CACHE_SWEEP_EVERY_SECOND"`
	// Number of sentences kept in an article summary.
	SUMMARY_SENTENCES int `yaml:"SUMMARY_SENTENCES"`
	// Number of keywords attached to every enriched article.
	ENRICH_KEYWORDS int `yaml:"ENRICH_KEYWORDS"`
	// Translation into this language is a no-op.
	DEFAULT_LANGUAGE string `yaml:"DEFAULT_LANGUAGE"`
}

func DefaultNewsdashAppConfig() NewsdashAppConfig {
	return NewsdashAppConfig{
		SERVER_ADDR:              ":8080",
		REQUEST_TIMEOUT_SECOND:   10,
		NLP_CACHE_SIZE:           100,
		NLP_CACHE_TTL_SECOND:     300,
		API_CACHE_SIZE:           100,
		API_CACHE_TTL_SECOND:     1800,
		ARTICLE_CACHE_TTL_HOUR:   24,
		CACHE_SWEEP_EVERY_SECOND: 3600,
		SUMMARY_SENTENCES:        5,
		ENRICH_KEYWORDS:          5,
		DEFAULT_LANGUAGE:         "en",
	}
}

// ParseNewsdashAppConfig reads the yaml file at path on top of the defaults.
// An empty path or a missing file yields the defaults.
func ParseNewsdashAppConfig(path string) (NewsdashAppConfig, error) {
	c := DefaultNewsdashAppConfig()
	if path == "" {
		return c, nil
	}
	yamlFile, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, errors.Wrapf(err, "read app config %s", path)
	}
	if err = yaml.Unmarshal(yamlFile, &c); err != nil {
		return c, errors.Wrapf(err, "unmarshal app config %s", path)
	}
	return c, nil
}

func (c NewsdashAppConfig) RequestTimeout() time.Duration {
	return time.Duration(c.REQUEST_TIMEOUT_SECOND) * time.Second
}

func (c NewsdashAppConfig) NlpCacheTTL() time.Duration {
	return time.Duration(c.NLP_CACHE_TTL_SECOND) * time.Second
}

func (c NewsdashAppConfig) ApiCacheTTL() time.Duration {
	return time.Duration(c.API_CACHE_TTL_SECOND) * time.Second
}

func (c NewsdashAppConfig) ArticleCacheTTL() time.Duration {
	return time.Duration(c.ARTICLE_CACHE_TTL_HOUR) * time.Hour
}

func (c NewsdashAppConfig) SweepInterval() time.Duration {
	return time.Duration(c.CACHE_SWEEP_EVERY_SECOND) * time.Second
}
