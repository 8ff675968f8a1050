// Package server runs the HTTP transport of go-community.
//
// It owns the server lifecycle: startup, signal handling and graceful
// shutdown within the configured request timeout.
package server
