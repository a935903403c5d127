package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"artha-pay/internal/api/middlew"
	"artha-pay/internal/metrics"
	"artha-pay/pkg/response"
)

type Server struct {
	httpServer *http.Server
	Router     *chi.Mux
}

// NewServer собирает роутер с общей цепочкой middleware; маршруты
// регистрируются слоями приложения.
func NewServer(port string, log *slog.Logger) *Server {
	return NewServerWithAddr(":"+port, log)
}

// NewServerWithAddr то же, что NewServer, но с полным адресом host:port.
func NewServerWithAddr(addr string, log *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlew.WithLogger(log))
	router.Use(middlew.LogRequests)
	router.Use(metrics.Middleware)
	router.Use(middleware.Recoverer)

	serv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return &Server{
		httpServer: serv,
		Router:     router,
	}
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// RegisterSwagger отдаёт UI по относительному пути doc.json, чтобы работать за любым хостом.
func (s *Server) RegisterSwagger() {
	s.Router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
}

func (s *Server) RegisterMetrics() {
	s.Router.Method(http.MethodGet, "/metrics", metrics.Handler())
}

func (s *Server) RegisterHealth() {
	s.Router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSONSuccess(w, middlew.GetLogger(r.Context()), http.StatusOK, map[string]string{"status": "ok"})
	})
}
