package infra

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNewHealthServerConfiguration(t *testing.T) {
	cfg := &Config{
		Port:             "3000",
		HTTPReadTimeout:  15 * time.Second,
		HTTPWriteTimeout: 30 * time.Second,
		HTTPIdleTimeout:  60 * time.Second,
	}
	s := NewHealthServer(cfg, http.NewServeMux())

	if s.srv.Addr != ":3000" {
		t.Fatalf("addr = %q, want :3000", s.srv.Addr)
	}
	if s.srv.ReadHeaderTimeout != 2*time.Second {
		t.Fatalf("read header timeout = %v, want 2s", s.srv.ReadHeaderTimeout)
	}
	if s.srv.ReadTimeout != cfg.HTTPReadTimeout || s.srv.WriteTimeout != cfg.HTTPWriteTimeout {
		t.Fatalf("timeouts = %v/%v, want %v/%v", s.srv.ReadTimeout, s.srv.WriteTimeout, cfg.HTTPReadTimeout, cfg.HTTPWriteTimeout)
	}
}

func TestHealthServerShutdownBeforeStart(t *testing.T) {
	s := NewHealthServer(&Config{Port: "0"}, http.NewServeMux())
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown of unstarted server: %v", err)
	}
}
