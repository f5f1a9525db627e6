// Package metrics defines and registers all custom Prometheus metrics for the
// AnimalGuard API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "animalguard"

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsSubmittedTotal counts newly filed reports.
// Labels:
//   - severity: low, medium, high or critical
//   - replay: "true" when an Idempotency-Key matched an earlier submission
var ReportsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_submitted_total",
		Help:      "Total number of reports submitted, by severity.",
	},
	[]string{"severity", "replay"},
)

// ReportTransitionsTotal counts applied lifecycle transitions.
// Label:
//   - status: the status the report moved to (e.g. "accepted")
var ReportTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_transitions_total",
		Help:      "Total number of report status transitions applied.",
	},
	[]string{"status"},
)

// ReportConflictsTotal counts refused case actions.
// Label:
//   - reason: "already_assigned" or "invalid_transition"
var ReportConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_conflicts_total",
		Help:      "Total number of case actions refused because of the report state.",
	},
	[]string{"reason"},
)

// MediaUploadedBytes sums the size of stored report attachments.
var MediaUploadedBytes = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_uploaded_bytes_total",
		Help:      "Total bytes of report media accepted for upload.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - role: the role of the login endpoint
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// NgoDecisionsTotal counts super-admin decisions on NGO registrations.
// Label:
//   - decision: "approve" or "reject"
var NgoDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ngo_decisions_total",
		Help:      "Total number of NGO approval decisions applied.",
	},
	[]string{"decision"},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuditEventsTotal counts audit events handled by the dispatcher.
// Labels:
//   - type: the report event type (e.g. "submitted")
//   - result: "stored", "failed" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of report audit events, by type and result.",
	},
	[]string{"type", "result"},
)

// AuditQueueDepth tracks the current number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteDuration measures how long persisting one audit event takes.
var AuditWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of audit event persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"type"},
)
