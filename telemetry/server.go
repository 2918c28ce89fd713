package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// NewHandler routes the feed and the status endpoints:
//
//	GET /events   websocket stream of Message values
//	GET /metrics  JSON counters
//	GET /healthz  "ok"
func NewHandler(hub *Hub, metrics *Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/events", hub)
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(metrics.Snapshot())
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Server serves the telemetry endpoints on their own goroutines.
type Server struct {
	Hub     *Hub
	Metrics *Metrics

	srv *http.Server
	ln  net.Listener
	log *zap.SugaredLogger
}

// Listen binds addr and starts serving in the background.
func Listen(addr string, log *zap.SugaredLogger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("telemetry listen %s: %w", addr, err)
	}

	metrics := &Metrics{}
	hub := NewHub(metrics, log)
	s := &Server{
		Hub:     hub,
		Metrics: metrics,
		srv: &http.Server{
			Handler:           NewHandler(hub, metrics),
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln:  ln,
		log: log,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("telemetry server stopped", "error", err)
		}
	}()
	log.Infow("telemetry listening", "addr", ln.Addr().String())
	return s, nil
}

// Addr is the bound address, useful when listening on port 0.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown disconnects feed clients and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Hub.Close()
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("telemetry shutdown: %w", err)
	}
	return nil
}
