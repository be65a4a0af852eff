// Package httpserver constructs the http.Server that serves the client
// registry API.
package httpserver

import (
	"net/http"
	"time"
)

// New builds the server for the given router. The header read timeout bounds
// slow clients; request-level timeouts are applied per route by the
// middleware chain, and shutdown is driven by main through Server.Shutdown.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
