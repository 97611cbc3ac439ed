// Package api provides the HTTP REST API server for the analysis engine.
//
// It exposes endpoints to analyze ledger entries, import CSV exports and
// manage stored ledgers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/DJ03MT/FinanzasProyecto/internal/config"
	"github.com/DJ03MT/FinanzasProyecto/internal/importer"
	"github.com/DJ03MT/FinanzasProyecto/internal/ledger"
	"github.com/DJ03MT/FinanzasProyecto/internal/service"
	"github.com/DJ03MT/FinanzasProyecto/internal/store"
	"github.com/DJ03MT/FinanzasProyecto/pkg/models"
)

// Version is reported by the health endpoint. Set by the CLI at startup.
var Version = "dev"

const (
	maxBodyBytes   = 10 << 20
	requestTimeout = 60 * time.Second
)

// Problem kinds produced by the transport itself.
const (
	KindNotFound       models.ErrorKind = "not_found"
	KindInvalidRequest models.ErrorKind = "invalid_request"
)

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	cfgFile  string
	analyzer *service.Analyzer
	logger   zerolog.Logger
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config, analyzer *service.Analyzer, logger zerolog.Logger) *Server {
	srv := &Server{
		cfg:      cfg,
		analyzer: analyzer,
		logger:   logger,
	}
	srv.router = srv.buildRouter()
	return srv
}

// SetConfigFile records the path reported by GET /api/v1/config.
func (s *Server) SetConfigFile(path string) { s.cfgFile = path }

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server and shuts it down gracefully on
// SIGINT/SIGTERM or when ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * requestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	s.logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		// Analysis
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/analysis/{hash}", s.handleSnapshot)

		// Import
		r.Post("/upload-csv", s.handleUploadCSV)

		// Stored ledgers
		r.Get("/ledgers", s.handleListLedgers)
		r.Put("/ledgers/{id}", s.handlePutLedger)
		r.Get("/ledgers/{id}", s.handleGetLedger)
		r.Delete("/ledgers/{id}", s.handleDeleteLedger)
		r.Get("/ledgers/{id}/analysis", s.handleLedgerAnalysis)

		// Configuration
		r.Get("/config", s.handleGetConfig)
		r.Get("/config/keys", s.handleGetConfigKeys)
	})

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    any             `json:"data,omitempty"`
	Error   *models.Problem `json:"error,omitempty"`
}

// LedgerSummary is returned after a ledger is stored.
type LedgerSummary struct {
	ID      string `json:"id"`
	Entries int    `json:"entries"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"status":  "ok",
			"version": Version,
			"store":   s.cfg.Store.Driver,
			"time":    time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	entries, ok := s.readEntries(w, r)
	if !ok {
		return
	}
	pkg, err := s.analyzer.Analyze(r.Context(), entries)
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, APIResponse{Success: true, Data: pkg})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	pkg, err := s.analyzer.Snapshot(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, APIResponse{Success: true, Data: pkg})
}

func (s *Server) handleUploadCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, KindInvalidRequest, "invalid multipart body: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, KindInvalidRequest, "form field \"file\" is required")
		return
	}
	defer file.Close()

	entries, err := importer.ParseCSV(file)
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	zerolog.Ctx(r.Context()).Info().
		Str("filename", header.Filename).
		Int("entries", len(entries)).
		Msg("csv imported")
	writeJSON(w, r, http.StatusOK, APIResponse{Success: true, Data: entries})
}

func (s *Server) handleListLedgers(w http.ResponseWriter, r *http.Request) {
	ids, err := s.analyzer.Store().ListLedgers(r.Context())
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, APIResponse{Success: true, Data: ids})
}

func (s *Server) handlePutLedger(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entries, ok := s.readEntries(w, r)
	if !ok {
		return
	}
	if err := s.analyzer.SaveLedger(r.Context(), id, entries); err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, APIResponse{
		Success: true,
		Data:    LedgerSummary{ID: id, Entries: len(entries)},
	})
}

func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	entries, err := s.analyzer.Store().LoadLedger(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, APIResponse{Success: true, Data: entries})
}

func (s *Server) handleDeleteLedger(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.analyzer.Store().DeleteLedger(r.Context(), id); err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, APIResponse{Success: true, Data: LedgerSummary{ID: id}})
}

func (s *Server) handleLedgerAnalysis(w http.ResponseWriter, r *http.Request) {
	pkg, err := s.analyzer.AnalyzeLedger(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeProblem(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, APIResponse{Success: true, Data: pkg})
}

// readEntries decodes the entry array (or records wrapper) from the body.
// It writes the error response itself and reports whether decoding worked.
func (s *Server) readEntries(w http.ResponseWriter, r *http.Request) ([]models.LedgerEntry, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusRequestEntityTooLarge, KindInvalidRequest, "request body too large")
		return nil, false
	}
	entries, err := ledger.ParseEntries(body)
	if err != nil {
		writeProblem(w, r, err)
		return nil, false
	}
	return entries, true
}

// ============================================================
// Helpers
// ============================================================

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, kind models.ErrorKind, msg string) {
	writeJSON(w, r, status, APIResponse{
		Success: false,
		Error:   &models.Problem{Kind: kind, Message: msg},
	})
}

// writeProblem maps err to a status code and structured error body.
func writeProblem(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, KindNotFound, err.Error())
		return
	}
	p := models.ProblemFrom(err)
	status := http.StatusInternalServerError
	switch p.Kind {
	case models.KindClassification:
		status = http.StatusUnprocessableEntity
	case models.KindInsufficientPeriods:
		status = http.StatusUnprocessableEntity
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, r, status, APIResponse{Success: false, Error: &p})
}
