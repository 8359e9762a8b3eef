package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Message client requests by outcome
	ClientRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ao_client_requests_total",
			Help: "Total number of message client requests",
		},
		[]string{"action", "kind", "outcome"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ao_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"action", "level"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ao_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"action"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ao_cache_errors_total",
			Help: "Total number of cache errors",
		},
		[]string{"level", "kind"},
	)

	// Network round trips (dispatch + result) and their retries
	RoundTrips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ao_round_trips_total",
			Help: "Total number of network round trips to the AO network",
		},
		[]string{"action", "error_type"},
	)

	Retries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ao_retries_total",
			Help: "Total number of retried round trips",
		},
		[]string{"action"},
	)

	InflightShared = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ao_inflight_shared_total",
			Help: "Total number of reads served by an in-flight identical request",
		},
		[]string{"action"},
	)

	CacheHitAge = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ao_cache_hit_age_seconds",
			Help:    "Age of cached responses when served",
			Buckets: []float64{1, 5, 15, 30, 60, 300, 900, 3600},
		},
		[]string{"level"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ao_request_duration_seconds",
			Help:    "Duration of message client requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action", "kind"},
	)

	PollerRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poller_refresh_total",
			Help: "Total number of poller refreshes",
		},
		[]string{"poller", "status"},
	)

	Operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pending_operations_total",
			Help: "Total number of tracked write operations by final status",
		},
		[]string{"kind", "status"},
	)

	// L1 capacity metrics only (if L1 is in-memory)
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity_bytes",
			Help: "L1 cache capacity in bytes",
		},
		[]string{"level"}, // only "l1"
	)

	CacheKeys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_keys",
			Help: "Number of keys held in cache",
		},
		[]string{"level"},
	)
)

// RecordClientRequest records a finished message client request
func RecordClientRequest(action, kind string, err error) {
	ClientRequests.WithLabelValues(action, kind, string(CategorizeError(err))).Inc()
}

// RecordCacheHit records a cache hit
func RecordCacheHit(action, level string) {
	CacheHits.WithLabelValues(action, level).Inc()
}

// ObserveCacheHitAge records how old a served cache entry was
func ObserveCacheHitAge(level string, age time.Duration) {
	CacheHitAge.WithLabelValues(level).Observe(age.Seconds())
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss(action string) {
	CacheMisses.WithLabelValues(action).Inc()
}

// RecordCacheError records a cache error with level and kind
func RecordCacheError(level, kind string) {
	CacheErrors.WithLabelValues(level, kind).Inc()
}

// RecordRoundTrip records a single network round trip attempt
func RecordRoundTrip(action string, err error) {
	RoundTrips.WithLabelValues(action, string(CategorizeError(err))).Inc()
}

// RecordRetry records a retried round trip
func RecordRetry(action string) {
	Retries.WithLabelValues(action).Inc()
}

// RecordInflightShared records a read that joined an in-flight request
func RecordInflightShared(action string) {
	InflightShared.WithLabelValues(action).Inc()
}

// RecordPollerRefresh records a poller refresh result
func RecordPollerRefresh(poller, status string) {
	PollerRefreshes.WithLabelValues(poller, status).Inc()
}

// RecordOperation records the final status of a tracked operation
func RecordOperation(kind, status string) {
	Operations.WithLabelValues(kind, status).Inc()
}

// UpdateL1CacheCapacity updates L1 cache capacity metrics only
func UpdateL1CacheCapacity(capacity int64) {
	CacheCapacity.WithLabelValues("l1").Set(float64(capacity))
}

// UpdateCacheKeys updates the number of keys in cache
func UpdateCacheKeys(level string, count int64) {
	CacheKeys.WithLabelValues(level).Set(float64(count))
}

// TimeRequest returns a timer function for measuring request duration
func TimeRequest(action, kind string) func() {
	timer := prometheus.NewTimer(RequestDuration.WithLabelValues(action, kind))
	return func() {
		timer.ObserveDuration()
	}
}
