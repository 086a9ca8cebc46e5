// Package metrics holds the process wide Prometheus registry and the counters
// shared by caches, the news api client, the nlp layer, the store and the
// engine modules.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "newsdash"

var (
	// Registry is served on /metrics. Go runtime and process collectors are
	// registered next to the application counters.
	Registry = prometheus.NewRegistry()

	CacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "Cache lookups partitioned by cache name and result (hit or miss).",
	}, []string{"cache", "result"})

	CachePuts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "puts_total",
		Help:      "Values written into a cache.",
	}, []string{"cache"})

	NewsApiRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "newsapi",
		Name:      "requests_total",
		Help:      "Outbound news api requests partitioned by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	NlpFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "nlp",
		Name:      "failures_total",
		Help:      "Nlp operations that fell back to their empty value.",
	}, []string{"operation"})

	ArticleReads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "articles",
		Name:      "reads_total",
		Help:      "Recorded article reads partitioned by category.",
	}, []string{"category"})

	ArticleCacheSwept = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "article_cache_swept_total",
		Help:      "Expired article cache rows deleted by the sweeper.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		CacheRequests,
		CachePuts,
		NewsApiRequests,
		NlpFailures,
		ArticleReads,
		ArticleCacheSwept,
	)
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
