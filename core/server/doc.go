// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber app from it: the listen port, the API
// key enforced by the auth middleware, the metrics path and the read and
// write timeouts.
package server
