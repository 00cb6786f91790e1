// Package metrics defines and registers all custom Prometheus metrics for the
// timetrack API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at import time
// (promauto); the /metrics endpoint exposes them alongside the standard HTTP
// metrics added by the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timetrack"

// ── Timer metrics ─────────────────────────────────────────────────────────────

// TimersStartedTotal counts successfully opened entries.
var TimersStartedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "timers_started_total",
		Help:      "Total number of timers started.",
	},
)

// TimersStoppedTotal counts entries closed through Stop or Toggle.
var TimersStoppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "timers_stopped_total",
		Help:      "Total number of timers stopped.",
	},
)

// TimerStartConflictsTotal counts starts rejected because an open entry
// already existed. A nonzero rate usually means a client raced itself.
var TimerStartConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "timer_start_conflicts_total",
		Help:      "Total number of starts rejected by the single-open-entry guard.",
	},
)

// TogglesDebouncedTotal counts toggles suppressed while another start/stop
// for the same user was in flight.
var TogglesDebouncedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "toggles_debounced_total",
		Help:      "Total number of toggle requests debounced by the in-flight guard.",
	},
)

// ── Log maintenance metrics ───────────────────────────────────────────────────

// EntriesEditedTotal counts partial updates applied to closed entries.
var EntriesEditedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_edited_total",
		Help:      "Total number of closed entries edited.",
	},
)

// EntriesDeletedTotal counts deleted entries.
var EntriesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_deleted_total",
		Help:      "Total number of entries deleted.",
	},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportRequestsTotal counts dashboard report builds.
// Label:
//   - range: "today", "week", "month", or "all"
var ReportRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_requests_total",
		Help:      "Total number of reports built, by range.",
	},
	[]string{"range"},
)

// ReportBuildDuration measures how long a report takes from query to
// formatted rows.
// Label:
//   - range: "today", "week", "month", or "all"
var ReportBuildDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_build_duration_seconds",
		Help:      "Duration of report aggregation including the storage query.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"range"},
)
