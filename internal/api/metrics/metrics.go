// Package metrics defines and registers all custom Prometheus metrics for
// the coaching API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package load;
// the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coaching"

// ── Authentication metrics ────────────────────────────────────────────────────

// AuthAttemptsTotal counts identity resolutions.
// Labels:
//   - method: "bearer", "api_key", or "none" (no credential presented)
//   - result: "success", "unauthorized", "forbidden", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of identity resolution attempts.",
	},
	[]string{"method", "result"},
)

// TokensIssuedTotal counts issued tokens by kind.
// Label:
//   - type: "access", "refresh", or "reset"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, by token type.",
	},
	[]string{"type"},
)

// APIKeyValidationsTotal counts API key validation outcomes.
// Label:
//   - result: "success", "invalid"
var APIKeyValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_key_validations_total",
		Help:      "Total number of API key validations, by result.",
	},
	[]string{"result"},
)

// KeyUsageQueueDepth tracks pending last_used_at stamps per recorder worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var KeyUsageQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "key_usage_queue_depth",
		Help:      "Current number of pending last-used stamps per recorder worker.",
	},
	[]string{"worker_id"},
)

// AuthResolutionDuration measures how long credential resolution takes.
// Label:
//   - method: the winning scheme, or "none"
var AuthResolutionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_resolution_duration_seconds",
		Help:      "Duration of credential resolution per request.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)
