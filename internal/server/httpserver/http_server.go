// Package httpserver wires the sitebuilder API routes behind the shared middleware and runs
// them on a single listener.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	derrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/server/handlers"
	smw "git.home.luguber.info/inful/sitebuilder/internal/server/middleware"
)

// APIPrefix is the path prefix that receives CORS headers.
const APIPrefix = "/api/"

// Server manages the API HTTP endpoint.
type Server struct {
	addr         string
	opts         Options
	httpServer   *http.Server
	errorAdapter *derrors.HTTPErrorAdapter
	apiHandlers  *handlers.APIHandlers

	// middleware chain
	mchain func(http.Handler) http.Handler
}

// New constructs a server listening on addr once started.
func New(addr string, opts Options) *Server {
	s := &Server{
		addr:         addr,
		opts:         opts,
		errorAdapter: derrors.NewHTTPErrorAdapter(slog.Default()),
		apiHandlers:  handlers.NewAPIHandlers(opts.Generator, opts.Builder, opts.Inventory),
	}
	s.mchain = smw.Chain(slog.Default(), s.errorAdapter)
	return s
}

// Handler returns the fully wrapped route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate", s.apiHandlers.HandleGenerate)
	mux.HandleFunc("GET /api/build", s.apiHandlers.HandleBuild)
	mux.HandleFunc("GET /api/sites", s.apiHandlers.HandleSites)
	mux.HandleFunc("GET /api/status/{siteName}", s.apiHandlers.HandleStatus)
	mux.HandleFunc("GET /api/health", s.apiHandlers.HandleHealth)
	mux.HandleFunc("GET /api/deployment-info", s.apiHandlers.HandleDeploymentInfo)
	mux.HandleFunc("GET /api/section-types", s.apiHandlers.HandleSectionTypes)
	if s.opts.PrometheusHandler != nil {
		mux.Handle("GET /metrics", s.opts.PrometheusHandler)
	}
	return s.mchain(smw.CORS(APIPrefix, mux))
}

// Start binds the listen address and serves in the background. Bind errors are returned
// directly so callers fail fast.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("http startup failed: %w", err)
	}
	return s.StartWithListener(ln)
}

// StartWithListener serves on a pre-bound listener.
func (s *Server) StartWithListener(ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("api server error", logfields.Error(err))
		}
	}()
	slog.Info("HTTP server started", slog.String("addr", ln.Addr().String()))
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}
	slog.Info("HTTP server stopped")
	return nil
}
