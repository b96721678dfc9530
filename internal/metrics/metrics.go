package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_requests_total",
			Help: "Total number of agent requests",
		},
		[]string{"status", "response_type"},
	)

	RequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "agent_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
	)

	ResponseTypeCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_response_type_total",
			Help: "Response types generated",
		},
		[]string{"response_type"},
	)

	DirectSubstitutionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_direct_substitution_total",
			Help: "Direct substitution attempts",
		},
		[]string{"status"}, // success, fallback_unfilled, fallback_low_score
	)

	TokensUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_tokens_used_total",
			Help: "Total tokens used",
		},
		[]string{"token_type"},
	)

	GuardrailTriggered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_guardrail_triggered_total",
			Help: "Guardrail triggers",
		},
		[]string{"guardrail_type"},
	)

	TopicFilterPath = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_topic_filter_path_total",
			Help: "Topic filter path taken",
		},
		[]string{"path"}, // fast_path or llm
	)

	PIIDetected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agent_pii_detected_total",
			Help: "PII detections in guest messages",
		},
	)

	CacheHit = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_cache_hit_total",
			Help: "Cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMiss = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_cache_miss_total",
			Help: "Cache misses",
		},
		[]string{"cache_type"},
	)
)
