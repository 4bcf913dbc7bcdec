package api

import (
	"context"
	"fmt"
	"net/http"

	"nft-market-gateway/internal/infrastructure/config"
	"nft-market-gateway/internal/infrastructure/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter wires the API surface
func NewRouter(
	compliance *ComplianceHandler,
	listings *ListingsHandler,
	purchase *PurchaseHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/compliance", compliance.Screen)
		r.Get("/compliance", compliance.Liveness)
		r.Post("/compliance/pair", compliance.ScreenPair)
		r.Get("/listings", listings.List)
		r.Get("/listings/multi", listings.ListMulti)
		r.Post("/purchase/eligibility", purchase.Eligibility)
	})

	return r
}

// Server is the gateway HTTP server
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

// NewServer creates a new gateway HTTP server
func NewServer(cfg *config.AppConfig, handler http.Handler, logger *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler: handler,
		},
		logger: logger.WithComponent("http-server"),
	}
}

// Start begins serving in the background
func (s *Server) Start() {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}
