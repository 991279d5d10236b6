package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviebuff_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Reviews and ratings
	ReviewsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviebuff_reviews_created_total",
			Help: "Total number of reviews accepted",
		},
	)

	// Recommendations
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moviebuff_recommendation_duration_seconds",
			Help:    "Time spent ranking the catalog for a user",
			Buckets: prometheus.DefBuckets,
		},
	)

	SimilarTitlesRefreshed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviebuff_similar_titles_refresh_total",
			Help: "Total number of similar-title recomputations",
		},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviebuff_cache_requests_total",
			Help: "Cache lookups by cache and result (hit, miss)",
		},
		[]string{"cache", "result"},
	)

	// Reminders and notifications
	RemindersProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviebuff_reminders_processed_total",
			Help: "Due reminders handled by the scheduler, by outcome (sent, failed)",
		},
		[]string{"outcome"},
	)

	ReminderRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moviebuff_reminder_run_duration_seconds",
			Help:    "Duration of a reminder scheduler run",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
		},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviebuff_notifications_sent_total",
			Help: "Notifications dispatched by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moviebuff_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Catalog import
	TMDBRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviebuff_tmdb_requests_total",
			Help: "Requests made to the TMDB API by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)
)

// ObserveHTTP records a finished request.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// CacheResult records a cache hit or miss.
func CacheResult(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheRequests.WithLabelValues(cache, result).Inc()
}

// Outcome maps an error to a metric label.
func Outcome(err error) string {
	if err != nil {
		return "failed"
	}
	return "sent"
}
