package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for requestDuration.
const (
	outcomeOK             = "ok"
	outcomeHTTPError      = "http_error"
	outcomeTransportError = "transport_error"
	outcomeTooLarge       = "response_too_large"
)

// requestDuration measures each REST backend call.
// Labels:
//   - operation: client operation name (e.g. "login", "approve_application")
//   - outcome: "ok", "http_error", "transport_error" or "response_too_large"
var requestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "eventtune_web",
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of calls to the REST backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation", "outcome"},
)
