// Package metrics defines and registers the custom Prometheus metrics of the
// bolão web app. It is the single source of truth for metric names, labels
// and help strings. All collectors register with the default registry on
// package init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bolao"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts sign-in and sign-up attempts.
// Labels:
//   - method: "password", "google" or "signup"
//   - result: "success" or the identity error code (e.g. "auth/wrong-password")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// SessionsRefreshedTotal counts sliding session cookie refreshes.
var SessionsRefreshedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_refreshed_total",
		Help:      "Total number of session tokens re-issued by the sliding refresh.",
	},
)

// RateLimitedTotal counts requests rejected by the per-client limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)

// ── Profile metrics ───────────────────────────────────────────────────────────

// ProfileUpdatesTotal counts profile changes.
// Labels:
//   - field: "name", "email", "password", "photo" or "photo_delete"
//   - result: "success" or "error"
var ProfileUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_updates_total",
		Help:      "Total number of profile updates, by field and result.",
	},
	[]string{"field", "result"},
)

// PhotoUploadBytes observes the size of accepted avatar uploads.
var PhotoUploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "photo_upload_bytes",
		Help:      "Size of uploaded avatar images in bytes.",
		Buckets:   prometheus.ExponentialBuckets(16*1024, 2, 8), // 16KiB .. 2MiB
	},
)

// ── Cleanup queue metrics ─────────────────────────────────────────────────────

// CleanupJobsTotal counts processed avatar cleanup jobs.
// Label:
//   - result: "deleted", "skipped" or "error"
var CleanupJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cleanup_jobs_total",
		Help:      "Total number of avatar cleanup jobs processed, by result.",
	},
	[]string{"result"},
)

// CleanupQueueDepth tracks the number of jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var CleanupQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cleanup_queue_depth",
		Help:      "Current number of jobs pending in each cleanup worker channel.",
	},
	[]string{"worker_id"},
)

// CleanupDuration measures how long a single cleanup job takes.
var CleanupDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cleanup_duration_seconds",
		Help:      "Duration of avatar cleanup from dequeue to completion.",
		Buckets:   prometheus.DefBuckets,
	},
)
