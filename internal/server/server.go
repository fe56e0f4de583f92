package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/samvad-hq/skywatch-dashboard/internal/display"
	"github.com/samvad-hq/skywatch-dashboard/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// Server serves the latest published dashboard page.
type Server struct {
	addr    string
	board   *display.Board
	refresh time.Duration
	log     logger.Logger
}

// New builds a server for board. refresh is advertised to browsers so they reload the page.
func New(addr string, board *display.Board, refresh time.Duration, log logger.Logger) *Server {
	return &Server{
		addr:    addr,
		board:   board,
		refresh: refresh,
		log:     logger.Ensure(log),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/page.json", s.handlePageJSON)
	r.Get("/health", s.handleHealth)
	return r
}

// Run listens until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoObj("display server starting", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.InfoObj("display server stopped", "addr", s.addr)
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status      string     `json:"status"`
	LastRefresh *time.Time `json:"last_refresh,omitempty"`
	CycleID     string     `json:"cycle_id,omitempty"`
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	page := s.board.Latest()
	if page == nil {
		w.Header().Set("Retry-After", "5")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("dashboard is loading, first refresh in progress\n"))
		return
	}

	var buf bytes.Buffer
	if err := display.WriteHTML(&buf, page, s.refresh); err != nil {
		s.log.ErrorObj("page render failed", "error", err.Error())
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePageJSON(w http.ResponseWriter, _ *http.Request) {
	page := s.board.Latest()
	if page == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no page rendered yet"})
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	page := s.board.Latest()
	if page == nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "starting"})
		return
	}
	rendered := page.RenderedAt
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", LastRefresh: &rendered, CycleID: page.CycleID})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
