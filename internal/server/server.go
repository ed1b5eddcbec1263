// Package server exposes the lead analyze-and-capture HTTP service.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/lead"
	"github.com/leadscout/leadscout/internal/normalize"
	"github.com/leadscout/leadscout/internal/outreach"
	"github.com/leadscout/leadscout/internal/score"
	"github.com/leadscout/leadscout/internal/signals"
)

// AppendLeadRequest wraps the lead row to capture.
type AppendLeadRequest struct {
	Lead *lead.Row `json:"lead"`
}

// AppendLeadResponse reports the capture outcome.
type AppendLeadResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// Server wires the analyze and capture handlers to the store.
type Server struct {
	router chi.Router
	store  *CaptureStore
	logger *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(store *CaptureStore, logger *zap.Logger) *Server {
	s := &Server{store: store, logger: logger}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(timeoutMiddleware(30 * time.Second))

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/analyze", s.analyze)
	r.Post("/append-lead", s.appendLead)

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the given port until the context is canceled or SIGINT/SIGTERM
// arrives, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		s.logger.Info("http server started", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	s.logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("shutdown complete")
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// analyze merges the client's signals with what the service detects itself in
// the raw text and in the extracted field values, then scores and recommends.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req score.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.PageURL == "" || req.ExtractedFields == (lead.ExtractedFields{}) {
		s.writeError(w, http.StatusBadRequest, "missing extracted_fields or page_url")
		return
	}

	merged := mergeSignals(req.Signals, signals.Detect(req.RawTextSample))

	fieldText := strings.Join([]string{
		req.ExtractedFields.Name,
		req.ExtractedFields.Title,
		req.ExtractedFields.Company,
		req.ExtractedFields.Location,
	}, " ")
	merged = mergeSignals(merged, signals.Detect(fieldText))

	normalized := lead.ExtractedFields{
		Name:     normalize.CleanField(req.ExtractedFields.Name),
		Title:    normalize.CleanField(req.ExtractedFields.Title),
		Company:  normalize.CleanField(req.ExtractedFields.Company),
		Location: normalize.CleanField(req.ExtractedFields.Location),
		PageURL:  req.PageURL,
	}

	buckets := score.ComputeBuckets(merged, normalized)
	reco := outreach.Build(normalized, merged)

	s.writeJSON(w, http.StatusOK, score.AnalyzeResponse{
		NormalizedLead: normalized,
		Score:          buckets.Score,
		Tier:           buckets.Tier,
		Evidence:       buckets.Evidence,
		OutreachReco:   reco,
	})
}

func (s *Server) appendLead(w http.ResponseWriter, r *http.Request) {
	var req AppendLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Lead == nil {
		s.writeJSON(w, http.StatusBadRequest, AppendLeadResponse{
			Success: false,
			Message: "missing lead object",
		})
		return
	}

	dup, err := s.store.IsDuplicate(r.Context(), req.Lead.PageURL)
	if err != nil {
		s.logger.Error("duplicate check failed", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, AppendLeadResponse{
			Success: false,
			Message: "capture store unavailable",
		})
		return
	}
	if dup {
		s.writeJSON(w, http.StatusConflict, AppendLeadResponse{
			Success:   false,
			Message:   "already captured recently (within 7 days)",
			Duplicate: true,
		})
		return
	}

	if err := s.store.AppendLead(r.Context(), *req.Lead); err != nil {
		s.logger.Error("lead append failed", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, AppendLeadResponse{
			Success: false,
			Message: "failed to persist lead",
		})
		return
	}
	if err := s.store.RecordCapture(r.Context(), req.Lead.PageURL); err != nil {
		s.logger.Warn("capture record failed", zap.Error(err))
	}

	s.writeJSON(w, http.StatusOK, AppendLeadResponse{
		Success: true,
		Message: "lead captured",
	})
}

// mergeSignals unions two signal lists per category, deduplicating matched
// phrases and keeping first-seen order.
func mergeSignals(a, b []lead.SignalMatch) []lead.SignalMatch {
	var order []lead.Category
	byCategory := make(map[lead.Category][]string)
	seen := make(map[lead.Category]map[string]struct{})

	for _, list := range [][]lead.SignalMatch{a, b} {
		for _, sig := range list {
			if _, ok := byCategory[sig.Category]; !ok {
				order = append(order, sig.Category)
				seen[sig.Category] = make(map[string]struct{})
			}
			for _, m := range sig.Matched {
				if _, dup := seen[sig.Category][m]; dup {
					continue
				}
				seen[sig.Category][m] = struct{}{}
				byCategory[sig.Category] = append(byCategory[sig.Category], m)
			}
		}
	}

	merged := make([]lead.SignalMatch, 0, len(order))
	for _, cat := range order {
		merged = append(merged, lead.SignalMatch{Category: cat, Matched: byCategory[cat]})
	}
	return merged
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-ID", uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", zap.Any("error", rec))
				s.writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("write JSON failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
