package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// TasksOverBudget is the number of tasks with negative slack found by the last planning pass.
	TasksOverBudget = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dayplan_tasks_over_budget",
			Help: "Tasks whose remaining slack was negative in the last planning pass",
		},
	)

	// PlanPassSeconds observes the duration of each background planning pass.
	PlanPassSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dayplan_plan_pass_seconds",
			Help:    "Duration of the background planning pass in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// PlanPassTotal counts planning passes by result (ok, error).
	PlanPassTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dayplan_plan_pass_total",
			Help: "Total number of background planning passes by result",
		},
		[]string{"result"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, TasksOverBudget, PlanPassSeconds, PlanPassTotal)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /schedules/123/split -> /schedules/{id}/split.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordPlanPass publishes the outcome of one planning pass.
func RecordPlanPass(overBudget int, durationSeconds float64, err error) {
	PlanPassSeconds.Observe(durationSeconds)
	if err != nil {
		PlanPassTotal.WithLabelValues("error").Inc()
		return
	}
	TasksOverBudget.Set(float64(overBudget))
	PlanPassTotal.WithLabelValues("ok").Inc()
}
