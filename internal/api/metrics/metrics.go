// Package metrics defines and registers the custom Prometheus metrics of the
// FitFlow web frontend. It is the single source of truth for metric names,
// labels, and help strings.
//
// All metrics are registered with the default Prometheus registry on package
// initialisation; HTTP-level metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fitflow"

// ── Backend API client ───────────────────────────────────────────────────────

// BackendRequestsTotal counts calls issued to the FitFlow backend.
// Labels:
//   - method: HTTP method
//   - endpoint: backend path with numeric ids collapsed (e.g. "/clients/:id")
//   - outcome: "ok", "unauthorized", "rejected" or "unreachable"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of backend API calls, by outcome.",
	},
	[]string{"method", "endpoint", "outcome"},
)

// BackendRequestDuration measures backend round-trip latency.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "endpoint"},
)

// ── Sessions ─────────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes.
// Label:
//   - decision: "allowed" or "denied"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_guard_decisions_total",
		Help:      "Total number of protected route entries, by guard decision.",
	},
	[]string{"decision"},
)

// SessionsClearedTotal counts credentials removed from the session store.
// Label:
//   - reason: "logout" or "unauthorized"
var SessionsClearedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_cleared_total",
		Help:      "Total number of stored credentials cleared, by reason.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - role: "admin" or "client"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// ── Views ────────────────────────────────────────────────────────────────────

// SupersededReadsTotal counts reads discarded because a newer read for the same
// view was issued while they were in flight.
// Label:
//   - view: sequencer key prefix (e.g. "clients")
var SupersededReadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "superseded_reads_total",
		Help:      "Total number of stale view reads discarded.",
	},
	[]string{"view"},
)

// DuplicateSubmissionsTotal counts writes refused because an identical one was in flight.
// Label:
//   - action: e.g. "mark_cash_payment", "start_mobile_payment"
var DuplicateSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duplicate_submissions_total",
		Help:      "Total number of duplicate form submissions refused locally.",
	},
	[]string{"action"},
)

// ValidationFailuresTotal counts submissions blocked by local form validation.
// Label:
//   - form: form name (e.g. "add_client")
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_validation_failures_total",
		Help:      "Total number of form submissions blocked before reaching the backend.",
	},
	[]string{"form"},
)
