// Package server holds the HTTP server configuration.
//
// The actual Fiber app is constructed in cmd/start.go; this package only
// carries the settings (listen port, API key) so that core/config can bind
// them from the environment.
package server
