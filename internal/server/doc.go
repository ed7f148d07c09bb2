// Package server runs the loopback HTTP server that exposes the sync
// engine to the UI process.
//
// It provides the server lifecycle: startup, serving requests, and
// graceful shutdown.
package server
