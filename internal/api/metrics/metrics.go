// Package metrics defines and registers all custom Prometheus metrics for
// the Fashio styling API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fashio"

// ── Generative backend metrics ───────────────────────────────────────────────

// AIRequestsTotal counts round trips to the generative backend.
// Labels:
//   - kind: request kind ("advice", "rating", "rating_chat", "chat",
//     "chat_tool_result", "generate_image", "edit_image")
//   - outcome: "ok" or "error"
var AIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_requests_total",
		Help:      "Total number of generative backend requests, by kind and outcome.",
	},
	[]string{"kind", "outcome"},
)

// AIRequestDuration measures backend round-trip latency per request kind.
var AIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_request_duration_seconds",
		Help:      "Duration of generative backend requests.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
	},
	[]string{"kind"},
)

// ── Flow metrics ─────────────────────────────────────────────────────────────

// PolicyRedirectsTotal counts rating-chat messages answered with the fixed
// comparison redirection instead of the model.
var PolicyRedirectsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_redirects_total",
		Help:      "Total number of comparison-seeking messages redirected by the rating chat policy.",
	},
)

// OutfitsSavedTotal counts collection saves.
// Label:
//   - result: "created" or "replayed" (idempotent second save)
var OutfitsSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "outfits_saved_total",
		Help:      "Total number of outfit save requests, by result.",
	},
	[]string{"result"},
)

// ActionConflictsTotal counts submissions rejected because the same action
// was already in flight for the user.
var ActionConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "action_conflicts_total",
		Help:      "Total number of requests rejected by the per-action busy flag.",
	},
	[]string{"action"},
)
