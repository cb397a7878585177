package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Backend client metrics
var (
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBackendRequestsTotal,
			Help: HelpTextBackendRequestsTotal,
		},
		[]string{LabelMethod, LabelEndpoint, LabelStatus},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameBackendRequestDuration,
			Help:    HelpTextBackendRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelEndpoint},
	)

	BackendRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBackendRetries,
			Help: HelpTextBackendRetries,
		},
		[]string{LabelEndpoint},
	)
)

// Core metrics
var (
	SessionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionEvents,
			Help: HelpTextSessionEvents,
		},
		[]string{LabelType},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
	)

	NutritionRecomputes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNutritionRecomputes,
			Help: HelpTextNutritionRecomputes,
		},
		[]string{LabelOutcome},
	)

	RecipeSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipeSubmissions,
			Help: HelpTextRecipeSubmissions,
		},
		[]string{LabelOutcome},
	)

	ListItemsDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListItemsDeleted,
			Help: HelpTextListItemsDeleted,
		},
		[]string{LabelList},
	)

	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogCacheLookups,
			Help: HelpTextCatalogCacheLookups,
		},
		[]string{LabelResult},
	)
)
