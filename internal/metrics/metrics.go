// Package metrics объявляет prometheus-метрики сервиса.
// Метрики регистрируются в реестре по умолчанию и отдаются на /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения метки result для обращений к кешу.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	// CacheRequests считает обращения к кешу по виду ключа (user, list) и результату.
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_cache_requests_total",
			Help: "Number of cache lookups partitioned by key kind and result.",
		},
		[]string{"kind", "result"},
	)

	// HTTPRequests считает обработанные HTTP-запросы.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_http_requests_total",
			Help: "Number of HTTP requests partitioned by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration — длительность HTTP-запросов.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profile_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// EventsPublished считает попытки публикации событий.
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_events_published_total",
			Help: "Number of domain events publish attempts partitioned by result.",
		},
		[]string{"event", "result"},
	)
)
