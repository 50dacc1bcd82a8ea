// Package startup handles process initialization for the gallery
// service: environment-driven configuration, the startup banner, build
// information, and route logging.
package startup
