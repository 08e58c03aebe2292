package infra

import (
	"context"
	"net"
	"net/http"
	"time"
)

// HealthServer exposes the bot's only inbound HTTP surface: liveness and
// readiness probes for the hosting platform. Conversational traffic never
// arrives here; it flows through Telegram long polling.
type HealthServer struct {
	srv *http.Server
}

// NewHealthServer builds the probe server on the configured port.
func NewHealthServer(cfg *Config, handler http.Handler) *HealthServer {
	return &HealthServer{
		srv: &http.Server{
			Addr:    net.JoinHostPort("", cfg.Port),
			Handler: handler,
			// Probes are tiny GET requests; slow headers mean a broken peer.
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       cfg.HTTPReadTimeout,
			WriteTimeout:      cfg.HTTPWriteTimeout,
			IdleTimeout:       cfg.HTTPIdleTimeout,
		},
	}
}

// Start blocks serving probe requests until Shutdown or a listener failure.
func (s *HealthServer) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight probe requests and stops the listener.
func (s *HealthServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
