// Package metrics provides Prometheus collectors shared by the study helper services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeQuota   = "quota"
)

var (
	// LLMRequests counts completion attempts per provider and outcome.
	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studyhelper",
		Name:      "llm_requests_total",
		Help:      "Completion requests sent to language model providers.",
	}, []string{"provider", "outcome"})

	// LLMFallbacks counts completions that had to leave the first provider.
	LLMFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "studyhelper",
		Name:      "llm_fallbacks_total",
		Help:      "Completions served by a fallback provider.",
	})

	// DocumentsExtracted counts text extraction attempts per format and outcome.
	DocumentsExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studyhelper",
		Name:      "documents_extracted_total",
		Help:      "Uploaded files processed by the text extractor.",
	}, []string{"format", "outcome"})

	// ReviewCacheHits counts reviews answered from the cache.
	ReviewCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "studyhelper",
		Name:      "review_cache_hits_total",
		Help:      "Document reviews served from the review cache.",
	})

	// HTTPRequests counts served REST requests per method and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studyhelper",
		Name:      "http_requests_total",
		Help:      "REST requests served.",
	}, []string{"method", "code"})

	// GRPCRequests counts served gRPC calls per method and status code.
	GRPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studyhelper",
		Name:      "grpc_requests_total",
		Help:      "gRPC calls served.",
	}, []string{"method", "code"})
)
