// Package observability registers the Prometheus collectors exposed on /metrics.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	activitiesLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecotrack",
		Subsystem: "activities",
		Name:      "logged_total",
		Help:      "Number of activities logged, labeled by category.",
	}, []string{"category"})

	emissionsLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecotrack",
		Subsystem: "activities",
		Name:      "emissions_kg_total",
		Help:      "Sum of positive estimated kg CO2e logged, labeled by category.",
	}, []string{"category"})

	recyclingCredits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ecotrack",
		Subsystem: "activities",
		Name:      "recycling_credit_kg_total",
		Help:      "Absolute kg CO2e credited by activities with a negative estimate.",
	})

	goalTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecotrack",
		Subsystem: "goals",
		Name:      "transitions_total",
		Help:      "Weekly goal status transitions, labeled by resulting status and cause.",
	}, []string{"status", "cause"})

	eventsPublishFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecotrack",
		Subsystem: "events",
		Name:      "publish_failed_total",
		Help:      "Domain events that could not be published, labeled by event type.",
	}, []string{"type"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ecotrack",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route, method and status code.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{"route", "method", "code"})
)

func init() {
	prometheus.MustRegister(activitiesLogged, emissionsLogged, recyclingCredits, goalTransitions, eventsPublishFailed, httpDuration)
}

// RecordActivityLogged counts a new activity and its emission.
func RecordActivityLogged(category string, co2e float64) {
	activitiesLogged.WithLabelValues(category).Inc()
	if co2e >= 0 {
		emissionsLogged.WithLabelValues(category).Add(co2e)
	} else {
		recyclingCredits.Add(-co2e)
	}
}

func RecordGoalTransition(status, cause string) {
	goalTransitions.WithLabelValues(status, cause).Inc()
}

func RecordPublishFailure(eventType string) {
	eventsPublishFailed.WithLabelValues(eventType).Inc()
}

func ObserveHTTPRequest(route, method string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpDuration.WithLabelValues(route, method, strconv.Itoa(code)).Observe(elapsed.Seconds())
}
