package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream outcomes recorded by ObserveUpstream.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Collectors owns the Prometheus registry for the process. A nil *Collectors
// is valid and records nothing.
type Collectors struct {
	registry         *prometheus.Registry
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	llmTokens        *prometheus.CounterVec
}

// NewCollectors registers every collector on a fresh registry.
func NewCollectors() *Collectors {
	reg := prometheus.NewRegistry()
	c := &Collectors{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fred_insights",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fred_insights",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fred_insights",
			Name:      "upstream_requests_total",
			Help:      "Outbound provider requests, by provider, endpoint and outcome.",
		}, []string{"provider", "endpoint", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fred_insights",
			Name:      "upstream_request_duration_seconds",
			Help:      "Outbound provider request latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"provider", "endpoint"}),
		llmTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fred_insights",
			Name:      "llm_tokens_total",
			Help:      "Tokens consumed by summarization, by provider and kind.",
		}, []string{"provider", "kind"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.httpRequests,
		c.httpLatency,
		c.upstreamRequests,
		c.upstreamLatency,
		c.llmTokens,
	)
	return c
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collectors) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one served request.
func (c *Collectors) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveUpstream records one outbound provider call.
func (c *Collectors) ObserveUpstream(provider, endpoint, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.upstreamRequests.WithLabelValues(provider, endpoint, outcome).Inc()
	c.upstreamLatency.WithLabelValues(provider, endpoint).Observe(elapsed.Seconds())
}

// ObserveTokens adds LLM token usage for a provider.
func (c *Collectors) ObserveTokens(provider string, usage TokenUsage) {
	if c == nil || usage.IsZero() {
		return
	}
	c.llmTokens.WithLabelValues(provider, "prompt").Add(float64(usage.PromptTokens))
	c.llmTokens.WithLabelValues(provider, "completion").Add(float64(usage.CompletionTokens))
}
