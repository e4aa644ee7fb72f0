// Package metrics defines and registers all custom Prometheus metrics for the
// recipe-book API. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto against
// the default registry, which echoprometheus exposes on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recipebook"

// ── Recipe metrics ────────────────────────────────────────────────────────────

// RecipesCreatedTotal counts successfully created recipes.
var RecipesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recipes_created_total",
		Help:      "Total number of recipes created.",
	},
)

// RecipeCacheTotal counts read-through cache decisions.
// Label:
//   - result: "hit" (served from cache) or "miss" (loaded from the store)
var RecipeCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recipe_cache_total",
		Help:      "Total number of recipe cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Share / notification metrics ──────────────────────────────────────────────

// SharesEnqueuedTotal counts mail jobs handed to the dispatcher.
var SharesEnqueuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shares_enqueued_total",
		Help:      "Total number of recipe share jobs accepted for background delivery.",
	},
)

// SharesDedupTotal counts repeat-share suppression decisions.
// Label:
//   - result: "hit" (repeat, skipped) or "miss" (new share, enqueued)
var SharesDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shares_dedup_total",
		Help:      "Total number of share dedup checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// MailDeliveriesTotal counts delivery attempts completed by the workers.
// Label:
//   - result: "ok" or "error"
var MailDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_deliveries_total",
		Help:      "Total number of mail delivery attempts, labelled by result.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks the number of jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of mail jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
