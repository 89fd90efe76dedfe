// Package metrics defines and registers all custom Prometheus metrics for the
// EventTune web frontend. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// via promauto; HTTP request metrics come from echoprometheus in the router and
// backend call latency from the backend package.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventtune_web"

// ── Access control ────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard evaluations.
// Labels:
//   - route: the guarded path (e.g. "/admin/dashboard")
//   - outcome: "allow", "redirect_login" or "redirect_home"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by route and outcome.",
	},
	[]string{"route", "outcome"},
)

// LoginsTotal counts sign-in attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// ── Dashboards ────────────────────────────────────────────────────────────────

// DashboardRefreshesTotal counts dashboard refreshes.
// Labels:
//   - dashboard: "admin", "artist" or "user"
//   - result: "ok" or "error"
var DashboardRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_refreshes_total",
		Help:      "Total number of dashboard refreshes, by dashboard and result.",
	},
	[]string{"dashboard", "result"},
)

// DashboardActionsTotal counts dashboard mutations.
// Labels:
//   - dashboard: "admin" or "user"
//   - action: "approve", "reject" or "update_profile"
//   - result: "ok", "error" or "busy"
var DashboardActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_actions_total",
		Help:      "Total number of dashboard actions, by dashboard, action and result.",
	},
	[]string{"dashboard", "action", "result"},
)

// DashboardInstances tracks live per-session dashboard instances.
// Label:
//   - dashboard: "admin", "artist" or "user"
var DashboardInstances = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dashboard_instances",
		Help:      "Current number of per-session dashboard instances held in memory.",
	},
	[]string{"dashboard"},
)
