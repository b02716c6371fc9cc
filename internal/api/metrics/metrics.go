// Package metrics defines and registers all custom Prometheus metrics for the
// lead funnel API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry through
// promauto when the package is first imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "leadfunnel"

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsCreatedTotal counts newly stored applications.
// Label:
//   - kind: "renter" or "landlord"
var ApplicationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_created_total",
		Help:      "Total number of applications stored, by kind.",
	},
	[]string{"kind"},
)

// ApplicationsReplayedTotal counts submissions answered from a previous
// request with the same Idempotency-Key.
var ApplicationsReplayedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_replayed_total",
		Help:      "Total number of idempotent submission replays, by kind.",
	},
	[]string{"kind"},
)

// ── Alert metrics ─────────────────────────────────────────────────────────────

// AlertsSentTotal counts lead alerts delivered.
// Label:
//   - sender: the channel name (e.g. "sns", "log")
var AlertsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_sent_total",
		Help:      "Total number of lead alerts delivered, by sender.",
	},
	[]string{"sender"},
)

// AlertsFailedTotal counts lead alerts that could not be delivered.
var AlertsFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_failed_total",
		Help:      "Total number of lead alerts that failed delivery, by sender.",
	},
	[]string{"sender"},
)

// AlertsQueueDepth tracks the number of alerts waiting in each worker channel.
var AlertsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "alerts_queue_depth",
		Help:      "Current number of alerts pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Rate limit metrics ────────────────────────────────────────────────────────

// RateLimitTotal counts rate limiter decisions.
// Labels:
//   - limiter: "redis" or "memory"
//   - result: "allowed" or "rejected"
var RateLimitTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_total",
		Help:      "Total number of rate limiter decisions, by limiter and result.",
	},
	[]string{"limiter", "result"},
)
