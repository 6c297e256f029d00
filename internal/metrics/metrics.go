package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Credential metrics

	TokensIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "tokens_issued_total",
		Help:      "Tokens minted, by API generation.",
	}, []string{"generation"})

	TokenVerificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "token_verifications_total",
		Help:      "Token checks, by result (ok, expired, invalid).",
	}, []string{"result"})

	// Admission metrics

	RateLimitDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "rate_limit_decisions_total",
		Help:      "Rate limiter outcomes, by route.",
	}, []string{"route", "outcome"})

	OriginDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "origin_decisions_total",
		Help:      "Cross-origin decisions (granted, denied, error).",
	}, []string{"outcome"})

	DeprecatedRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "deprecated_requests_total",
		Help:      "Requests answered 410 by a retired API generation.",
	}, []string{"generation"})

	// Janitor

	JanitorPurgedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "janitor_purged_windows_total",
		Help:      "Expired in-memory rate-limit windows dropped by the janitor.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gateway",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gateway",
		Name:      "http_requests_in_flight",
		Help:      "Requests currently being served.",
	})
)

func Register() {
	prometheus.MustRegister(
		TokensIssuedTotal,
		TokenVerificationsTotal,
		RateLimitDecisionsTotal,
		OriginDecisionsTotal,
		DeprecatedRequestsTotal,
		JanitorPurgedTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
		HTTPRequestsInFlight,
	)
}

// Probes is implemented by *health.Checker.
type Probes interface {
	LivenessHandler() http.Handler
	ReadinessHandler() http.Handler
}

// NewServer serves Prometheus metrics and the health probes on a port kept
// off the public router.
func NewServer(addr string, probes Probes) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", probes.LivenessHandler())
	mux.Handle("/readyz", probes.ReadinessHandler())
	return &http.Server{Addr: addr, Handler: mux}
}
