// Package server exposes the evaluation engine over an in-process HTTP API.
// The server owns no state of its own: every request is evaluated from
// scratch against the facts it carries.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/buildtrack/evm-engine/internal/alerts"
	"github.com/buildtrack/evm-engine/internal/evm"
	"github.com/buildtrack/evm-engine/internal/forecast"
	"github.com/buildtrack/evm-engine/pkg/constants"
	"github.com/buildtrack/evm-engine/pkg/datetime"
	"github.com/buildtrack/evm-engine/pkg/validation"
)

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	now         func() time.Time
}

// NewHandler constructs the HTTP handler that serves the evaluation API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	return newHandler(logger, maxBodySize, version, time.Now)
}

func newHandler(logger *zap.Logger, maxBodySize int64, version string, now func() time.Time) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion, now: now}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.logRequests)

	r.Post("/api/evaluate", h.handleEvaluate)
	r.Get("/api/thresholds/defaults", h.handleDefaultThresholds)
	r.Get("/api/version", h.handleVersion)
	r.Get("/healthz", h.handleHealth)

	return r
}

// evaluateRequest is the JSON body accepted by the evaluate endpoint.
// Thresholds, the status date, and the freshness window are optional;
// defaults apply when absent.
type evaluateRequest struct {
	Project string          `json:"project"`
	Facts   evm.BudgetFacts `json:"facts"`

	Thresholds          *evm.Thresholds `json:"thresholds"`
	StatusDate          string          `json:"status_date"`
	StartDate           string          `json:"start_date"`
	PlannedFinishDate   string          `json:"planned_finish_date"`
	FreshnessWindowDays int             `json:"freshness_window_days"`

	ManagementEstimate *forecast.ManagementEstimate `json:"management_estimate"`
}

type evaluateResponse struct {
	Project   string             `json:"project"`
	Metrics   evm.Metrics        `json:"metrics"`
	Forecasts forecast.Scenarios `json:"forecasts"`
	Alerts    []alerts.Alert     `json:"alerts"`
	Duration  string             `json:"duration"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	start := h.now()

	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse request: %v", err))
		return
	}

	statusDate := h.now()
	if req.StatusDate != "" {
		parsed, err := time.Parse(datetime.DateLayout, req.StatusDate)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid status_date: %v", err))
			return
		}
		statusDate = parsed
	}

	var dates forecast.ProjectDates
	var err error
	if req.StartDate != "" {
		if dates.StartDate, err = time.Parse(datetime.DateLayout, req.StartDate); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid start_date: %v", err))
			return
		}
	}
	if req.PlannedFinishDate != "" {
		if dates.PlannedFinishDate, err = time.Parse(datetime.DateLayout, req.PlannedFinishDate); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid planned_finish_date: %v", err))
			return
		}
	}

	thresholds := evm.DefaultThresholds()
	if req.Thresholds != nil {
		thresholds = *req.Thresholds
	}

	window := req.FreshnessWindowDays
	if window <= 0 {
		window = constants.DefaultFreshnessWindowDays
	}

	metrics, err := evm.ComputeAt(req.Facts, thresholds, statusDate, h.now(), window)
	if err != nil {
		var factsErr *validation.FactsError
		if errors.As(err, &factsErr) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := evaluateResponse{
		Project:   req.Project,
		Metrics:   metrics,
		Forecasts: forecast.Build(metrics, dates, req.ManagementEstimate),
		Alerts:    alerts.Evaluate(metrics, thresholds, h.now()),
		Duration:  h.now().Sub(start).String(),
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *handler) handleDefaultThresholds(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, evm.DefaultThresholds())
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.respondJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, errorResponse{Error: msg})
}

// logRequests emits one structured log line per request.
func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Info("request",
			zap.String("op", "server.logRequests"),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
