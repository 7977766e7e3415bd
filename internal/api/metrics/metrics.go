// Package metrics defines the custom Prometheus metrics of the places API.
// It is the single source of truth for metric names, labels and help strings.
//
// Call MustRegister once per registry before the HTTP server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "places"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "conflict", "invalid" or "error"
var RegistrationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "invalid" or "error"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer token checks on protected routes.
// Label:
//   - result: "valid", "missing", "malformed", "expired", "unknown_user" or "error"
var TokenVerificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// ── Saved places metrics ──────────────────────────────────────────────────────

// SavedPlaceWritesTotal counts save_place calls that reached the service.
// Label:
//   - result: "ok", "invalid" or "error"
var SavedPlaceWritesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "saved_place_writes_total",
		Help:      "Total number of save place requests, by result.",
	},
	[]string{"result"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts proxied provider lookups.
// Labels:
//   - provider: "weather" or "places"
//   - result: "ok", "invalid" (rejected before the call) or "error"
var UpstreamRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of proxied provider lookups, by provider and result.",
	},
	[]string{"provider", "result"},
)

// UpstreamRequestDuration measures proxied lookups end to end.
// Label:
//   - provider: "weather" or "places"
var UpstreamRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of proxied provider lookups.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"provider"},
)

// MustRegister adds every metric above to reg.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		RegistrationsTotal,
		LoginsTotal,
		TokenVerificationsTotal,
		SavedPlaceWritesTotal,
		UpstreamRequestsTotal,
		UpstreamRequestDuration,
	)
}
