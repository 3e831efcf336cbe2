package httpserver

import (
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
	writeHeadroom     = 15 * time.Second
)

// New builds the API server. requestTimeout is the per-request deadline the
// router enforces. The write timeout must stay above it.
func New(addr string, handler http.Handler, requestTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       requestTimeout / 2,
		WriteTimeout:      requestTimeout + writeHeadroom,
		IdleTimeout:       idleTimeout,
	}
}
