package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the planning API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	generations     *prometheus.CounterVec
	warningsEmitted prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planning_cache_hits_total",
		Help: "Cache hits for generated plannings",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planning_cache_misses_total",
		Help: "Cache misses for generated plannings",
	})

	generations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planning_generations_total",
		Help: "Weekly plannings produced, labelled by source",
	}, []string{"source"})

	warningsEmitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planning_warnings_total",
		Help: "Soft warnings emitted by the schedule validator",
	})

	registry.MustRegister(requestDuration, requestTotal, cacheHits, cacheMisses, generations, warningsEmitted)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		generations:     generations,
		warningsEmitted: warningsEmitted,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// GinMiddleware records per-request metrics.
func (s *MetricsService) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		s.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		s.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// RecordCacheOperation counts a planning cache hit or miss.
func (s *MetricsService) RecordCacheOperation(hit bool) {
	if s == nil {
		return
	}
	if hit {
		s.cacheHits.Inc()
	} else {
		s.cacheMisses.Inc()
	}
}

// RecordGeneration counts a produced planning and its warning volume.
func (s *MetricsService) RecordGeneration(source string, warningCount int) {
	if s == nil {
		return
	}
	s.generations.WithLabelValues(source).Inc()
	s.warningsEmitted.Add(float64(warningCount))
}
