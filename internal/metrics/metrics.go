package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drive_gallery_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "drive_gallery_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "drive_gallery_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Organizer metrics
var (
	OrganizeRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drive_gallery_organize_runs_total",
			Help: "Total number of organize runs",
		},
		[]string{"mode"}, // "full", "fast"
	)

	OrganizeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "drive_gallery_organize_duration_seconds",
			Help:    "Organize run duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"mode"},
	)

	OrganizeFilesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drive_gallery_organize_files_processed_total",
			Help: "Total number of files that produced a record",
		},
		[]string{"mode"},
	)

	OrganizeFilesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drive_gallery_organize_files_skipped_total",
			Help: "Total number of files skipped during organize runs",
		},
		[]string{"mode", "reason"}, // reason: "missing", "undecodable"
	)

	TimeSourceSelectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drive_gallery_time_source_selected_total",
			Help: "Total number of timestamp resolutions by winning source",
		},
		[]string{"source"}, // "filename", "exif", "mtime"
	)
)

// Cache metrics
var (
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drive_gallery_cache_requests_total",
			Help: "Total number of rendition cache requests",
		},
		[]string{"kind", "result"}, // result: "hit", "miss", "error"
	)

	CacheEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "drive_gallery_cache_evictions_total",
			Help: "Total number of cache entries evicted",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "drive_gallery_cache_entries",
			Help: "Current number of cached renditions",
		},
	)
)

// Library scanner metrics
var (
	ScannerOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drive_gallery_scanner_operations_total",
			Help: "Total number of scanner operations",
		},
		[]string{"operation", "status"},
	)

	ScannerFilesFound = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "drive_gallery_scanner_files_found",
			Help:    "Number of image files returned per scan",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 10000},
		},
		[]string{"operation"},
	)

	WatcherEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drive_gallery_watcher_events_total",
			Help: "Total number of filesystem watcher events",
		},
		[]string{"type"},
	)

	WatcherErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "drive_gallery_watcher_errors_total",
			Help: "Total number of filesystem watcher errors",
		},
	)
)
