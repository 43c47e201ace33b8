// Package metrics defines the custom Prometheus metrics of the service desk
// API. It is the single source of truth for metric names, labels, and help
// strings. HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "servicedesk"

// Record kinds used as label values.
const (
	KindServiceRequest = "service_request"
	KindReview         = "review"
	KindComplaint      = "complaint"
	KindContact        = "contact"
)

// SubmissionsTotal counts public submissions persisted, by record kind.
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of public submissions stored, by record kind.",
	},
	[]string{"kind"},
)

// LoginsTotal counts successful logins.
// Label:
//   - method: "local" or "external"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of sessions minted, by login method.",
	},
	[]string{"method"},
)

// AuthFailuresTotal counts rejected credentials, from the request guard and
// from refused logins.
// Label:
//   - reason: "unauthenticated", "invalid_session", "session_expired",
//     "identity_not_found", "invalid_credentials", "invalid_external_session"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of authentication failures, by reason.",
	},
	[]string{"reason"},
)

// SessionsReapedTotal counts expired sessions removed by the reaper.
var SessionsReapedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_reaped_total",
		Help:      "Total number of expired sessions deleted by the maintenance reaper.",
	},
)

// StatsCacheTotal counts stats cache lookups.
// Label:
//   - result: "hit" or "miss"
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Total number of stats cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
