// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "figmabot"

// Result labels for FigmaRequests.
const (
	ResultSuccess   = "success"
	ResultError     = "error"
	ResultStatus    = "status"
	ResultMalformed = "malformed"
)

var (
	// FileListOutcomes counts pipeline runs by terminal outcome.
	FileListOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "file_list_outcomes_total",
		Help:      "Room file list requests by outcome",
	}, []string{"outcome"})

	// FigmaRequests counts single-file API requests by result.
	FigmaRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "figma_requests_total",
		Help:      "Figma file requests by result",
	}, []string{"result"})

	FigmaFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "figma_fetch_duration_seconds",
		Help:      "Latency of single Figma file requests",
		Buckets:   prometheus.DefBuckets,
	})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served by the command endpoint",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})
)
