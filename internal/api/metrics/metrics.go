// Package metrics defines and registers all custom Prometheus metrics for
// the streaming API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ucspstream"

// RegistrationsTotal counts completed registrations.
// Label:
//   - role: "client" or "artist"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of completed user registrations, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success", "invalid_credentials", "inactive", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ContentCreatedTotal counts content records created.
// Labels:
//   - type: "music", "movie", "book"
//   - status: initial moderation status ("pending" or "approved")
var ContentCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_created_total",
		Help:      "Total number of content records created, by type and initial status.",
	},
	[]string{"type", "status"},
)

// ModerationDecisionsTotal counts admin moderation decisions.
// Label:
//   - status: "approved" or "rejected"
var ModerationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_decisions_total",
		Help:      "Total number of moderation decisions applied, by resulting status.",
	},
	[]string{"status"},
)

// UploadsRejectedTotal counts uploads refused by the gateway.
// Label:
//   - reason: "unsupported_media_type", "payload_too_large", "too_many_files"
var UploadsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_rejected_total",
		Help:      "Total number of uploads rejected by the gateway, by reason.",
	},
	[]string{"reason"},
)

// UploadBytes observes the size of accepted payloads.
var UploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_bytes",
		Help:      "Size distribution of accepted upload payloads.",
		Buckets:   prometheus.ExponentialBuckets(1<<10, 4, 10), // 1KiB … ~256MiB
	},
)
