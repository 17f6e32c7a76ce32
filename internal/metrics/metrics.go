// Package metrics holds the prometheus collectors of the strategy server.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "coachassist"

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// WorkspacesActive is the number of open editing workspaces.
	WorkspacesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "workspaces_active",
		Help:      "Open editing workspaces",
	})

	WorkspacesEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "workspaces_evicted_total",
		Help:      "Workspaces closed by the idle worker",
	})

	// StrategyLoads counts .cas loads by result: ok, diagnostics or error.
	StrategyLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "strategy_loads_total",
		Help:      "Strategy documents loaded, by result",
	}, []string{"result"})

	ParseDiagnostics = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "parse_diagnostics_total",
		Help:      "Rejected .cas lines, by reason",
	}, []string{"reason"})

	// Generations counts rule documents served, by source: l1, l2 or generated.
	Generations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clang_generations_total",
		Help:      "CLang documents served, by source",
	}, []string{"source"})

	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "clang_generation_duration_seconds",
		Help:      "Time spent generating CLang",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	})

	WSClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_clients",
		Help:      "Connected websocket editors",
	})

	// EventsPublished counts model change events sent to editors.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Strategy change events published, by type",
	}, []string{"type"})
)

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
