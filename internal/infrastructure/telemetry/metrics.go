package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "orbita"

// Metrics holds the Prometheus collectors of the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	MeetingTransitions *prometheus.CounterVec
	MinutesEmails      *prometheus.CounterVec
	RateLimited        *prometheus.CounterVec
	JobRuns            *prometheus.CounterVec
}

// NewMetrics creates unregistered collectors
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		MeetingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meeting_transitions_total",
			Help:      "Meeting status transitions by target status",
		}, []string{"status"}),
		MinutesEmails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "minutes_emails_total",
			Help:      "Minutes emails by outcome",
		}, []string{"result"}),
		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		}, []string{"route"}),
		JobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Scheduled job runs by outcome",
		}, []string{"job", "result"}),
	}
}

// RegisterCollectors registers every collector with reg
func (m *Metrics) RegisterCollectors(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.HTTPRequests, m.HTTPDuration, m.MeetingTransitions,
		m.MinutesEmails, m.RateLimited, m.JobRuns,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveHTTP records one finished request
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// MeetingTransition counts a transition into status
func (m *Metrics) MeetingTransition(status string) {
	if m == nil {
		return
	}
	m.MeetingTransitions.WithLabelValues(status).Inc()
}

// MinutesEmail counts a minutes delivery outcome: sent, failed or skipped
func (m *Metrics) MinutesEmail(result string) {
	if m == nil {
		return
	}
	m.MinutesEmails.WithLabelValues(result).Inc()
}

// RateLimit counts a rejected request
func (m *Metrics) RateLimit(route string) {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(route).Inc()
}

// JobRun counts a scheduled job run
func (m *Metrics) JobRun(job string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.JobRuns.WithLabelValues(job, result).Inc()
}
