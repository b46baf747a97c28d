package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/V4T54L/access-logger/internal/domain"
)

// AccessMetrics holds the Prometheus metrics fed by access log records.
type AccessMetrics struct {
	RecordsTotal    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewAccessMetrics creates the metrics and registers them with reg. A nil
// reg leaves them unregistered.
func NewAccessMetrics(reg prometheus.Registerer) *AccessMetrics {
	factory := promauto.With(reg)
	return &AccessMetrics{
		RecordsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "access_log",
			Name:      "records_total",
			Help:      "Total number of access log records by severity and status class.",
		}, []string{"severity", "code_class"}), // code_class: 2xx, 4xx, 5xx...
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "access_log",
			Name:      "request_duration_seconds",
			Help:      "Duration of logged requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"severity"}),
	}
}

// Instrument returns a domain.Logger that observes every record before
// passing it to next.
func (m *AccessMetrics) Instrument(next domain.Logger) domain.Logger {
	return &instrumentedLogger{next: next, m: m}
}

type instrumentedLogger struct {
	next domain.Logger
	m    *AccessMetrics
}

func (l *instrumentedLogger) Info(rec domain.Record) {
	l.observe("info", rec)
	l.next.Info(rec)
}

func (l *instrumentedLogger) Warn(rec domain.Record) {
	l.observe("warn", rec)
	l.next.Warn(rec)
}

func (l *instrumentedLogger) Error(rec domain.Record) {
	l.observe("error", rec)
	l.next.Error(rec)
}

func (l *instrumentedLogger) observe(severity string, rec domain.Record) {
	l.m.RecordsTotal.WithLabelValues(severity, codeClass(rec.ResponseCode)).Inc()
	l.m.RequestDuration.WithLabelValues(severity).Observe(rec.Duration.Seconds())
}

func codeClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}
