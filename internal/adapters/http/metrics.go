package http

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the instrumentation for the HTTP surface. All collectors are
// registered on a private registry so tests can build handlers repeatedly
// without duplicate-registration panics.
type metrics struct {
	programsParsed  *prometheus.CounterVec
	stepsExecuted   prometheus.Counter
	sessionsCreated prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		programsParsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tur_programs_parsed_total",
				Help: "Total number of parse attempts by outcome",
			},
			[]string{"outcome"},
		),
		stepsExecuted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tur_steps_executed_total",
				Help: "Total number of machine steps executed via the API",
			},
		),
		sessionsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tur_sessions_created_total",
				Help: "Total number of sessions created via the API",
			},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "tur_http_request_duration_seconds",
				Help: "Duration of HTTP requests",
			},
			[]string{"route"},
		),
	}
	reg.MustRegister(m.programsParsed, m.stepsExecuted, m.sessionsCreated, m.requestDuration)
	return m
}
