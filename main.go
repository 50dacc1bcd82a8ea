package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drive-gallery/internal/cache"
	"drive-gallery/internal/gallery"
	"drive-gallery/internal/handlers"
	"drive-gallery/internal/library"
	"drive-gallery/internal/logging"
	"drive-gallery/internal/middleware"
	"drive-gallery/internal/startup"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Initialize library scanner
	scanner := library.NewScanner(config.GalleryDir)

	// Initialize organizer
	organizer := gallery.New(gallery.DefaultConfig())

	// Initialize rendition cache
	cacheConfig := cache.DefaultConfig()
	cacheConfig.MaxEntries = config.CacheSize
	previews := cache.New(cacheConfig)

	// Watch the gallery for changes so stale renditions get dropped
	if config.WatchEnabled {
		go scanner.Watch(previews)
	} else {
		logging.Info("Gallery watching disabled")
	}

	// Initialize handlers
	h := handlers.New(scanner, organizer, previews, config)

	// Setup router
	router := setupRouter(h)

	// Log routes dynamically
	startup.LogHTTPRoutes(router)

	// Apply metrics middleware
	metricsHandler := middleware.Metrics(middleware.DefaultMetricsConfig())(router)

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler := middleware.Logger(loggingConfig)(metricsHandler)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Start graceful shutdown handler
	go handleShutdown(srv)

	// Start server
	startup.LogServerStarted(config.Port, time.Since(startTime))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")

	// Metrics
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/version", h.Version).Methods("GET")
	api.HandleFunc("/gallery", h.GetGallery).Methods("GET")
	api.HandleFunc("/gallery/stats", h.GetGalleryStats).Methods("GET")
	api.HandleFunc("/gallery/timeline", h.GetTimeline).Methods("GET")
	api.HandleFunc("/thumbnail/{path:.*}", h.GetThumbnail).Methods("GET")
	api.HandleFunc("/preview/{path:.*}", h.GetPreview).Methods("GET")
	api.HandleFunc("/image/{path:.*}", h.GetImage).Methods("GET")

	return r
}

func handleShutdown(srv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logging.Info("Received %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	}
	logging.Info("Shutdown complete")
}
