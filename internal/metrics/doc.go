// Package metrics defines the Prometheus metrics exposed by the gallery
// service: HTTP request accounting, organize pipeline throughput, cache
// hit rates and evictions, and library scanner activity.
//
// All metrics are registered at init via promauto and served on /metrics.
package metrics
