package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SourceQueryOK          = "ok"
	SourceQueryUnavailable = "unavailable"
	SourceQueryNoData      = "no_data"
	SourceQueryTimeout     = "timeout"
	SourceQueryError       = "error"

	StreakBelowGoal   = "below_goal"
	StreakSameDay     = "same_day"
	StreakIncremented = "incremented"
	StreakReset       = "reset"
)

type Manager struct {
	// counters
	CounterRequests            *prometheus.CounterVec
	CounterHandleRequestPanic  *prometheus.CounterVec
	CounterRateLimitedRequests prometheus.Counter
	CounterSourceQueries       *prometheus.CounterVec
	CounterStreakUpdates       *prometheus.CounterVec
	CounterSettingsChanges     *prometheus.CounterVec
	CounterSamplesIngested     prometheus.Counter
	CounterSourceCacheHits     prometheus.Counter
	CounterSourceCacheMisses   prometheus.Counter

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge
	GaugeStreak     prometheus.Gauge
	GaugeWSClients  prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
	HistSourceQueryDuration  prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("backend", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("backend", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics, per route",
	}, []string{"route"})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})
	counterSourceQueries := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "pedometer_queries",
		Help:      "Pedometer window queries by result",
	}, []string{"result"})
	counterStreakUpdates := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "streak_updates",
		Help:      "Streak evaluations by outcome",
	}, []string{"outcome"})
	counterSettingsChanges := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "settings_changes",
		Help:      "Accepted settings changes by setting",
	}, []string{"setting"})
	counterSamplesIngested := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "pedometer_samples_ingested",
		Help:      "The total number of stored pedometer samples",
	})
	counterSourceCacheHits := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "pedometer_cache_hits",
		Help:      "Pedometer window queries served from cache",
	})
	counterSourceCacheMisses := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "pedometer_cache_misses",
		Help:      "Pedometer window queries not found in cache",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})
	gaugeStreak := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "steps_streak",
		Help:      "Current daily goal streak in days",
	})
	gaugeWSClients := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "websocket_clients",
		Help:      "Currently connected websocket clients",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})
	histSourceQueryDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "pedometer_query_duration_seconds",
		Help:      "Duration of a single pedometer window query in seconds",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	})

	return &Manager{
		CounterRequests:            counterRequests,
		CounterHandleRequestPanic:  counterHandleRequestPanic,
		CounterRateLimitedRequests: counterRateLimitedRequests,
		CounterSourceQueries:       counterSourceQueries,
		CounterStreakUpdates:       counterStreakUpdates,
		CounterSettingsChanges:     counterSettingsChanges,
		CounterSamplesIngested:     counterSamplesIngested,
		CounterSourceCacheHits:     counterSourceCacheHits,
		CounterSourceCacheMisses:   counterSourceCacheMisses,
		GaugeRequests:              gaugeRequests,
		GaugeLifeSignal:            gaugeLifeSignal,
		GaugeStreak:                gaugeStreak,
		GaugeWSClients:             gaugeWSClients,
		HistogramRequestDuration:   histogramRequestDuration,
		HistSourceQueryDuration:    histSourceQueryDuration,
	}
}
