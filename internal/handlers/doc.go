// Package handlers implements the HTTP API of the gallery service:
// organized gallery listings with pagination, timeline navigation,
// aggregate statistics, cache-backed thumbnail/preview bytes, and
// health/version endpoints.
package handlers
