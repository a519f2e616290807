// Package metrics declares the Prometheus collectors for the HTTP API and
// completion calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelFlow     = "flow"
	LabelProvider = "provider"
	LabelOutcome  = "outcome"
)

// Outcome label values for completion calls.
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeSchema      = "schema"
	OutcomeRateLimited = "rate_limited"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "herb_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "herb_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "herb_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Completion metrics
var (
	AIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "herb_ai_requests_total",
			Help: "Completion calls by flow, provider and outcome",
		},
		[]string{LabelFlow, LabelProvider, LabelOutcome},
	)

	AIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "herb_ai_request_duration_seconds",
			Help:    "Completion call latency in seconds",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{LabelFlow, LabelProvider},
	)

	AITokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "herb_ai_tokens_total",
			Help: "Tokens consumed by completion calls",
		},
		[]string{LabelFlow, LabelProvider, "direction"},
	)

	VerifyCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "herb_verify_cache_hits_total",
			Help: "Photo verifications answered from the cache",
		},
	)
)

// TranslationsAdded counts AI translations merged into the catalog.
var TranslationsAdded = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "herb_translations_added_total",
		Help: "Translations merged into the catalog by language",
	},
	[]string{"language"},
)
