package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mholloway/congresswatch/internal/domain"
)

// SyncRunner executes one guarded sync cycle.
type SyncRunner interface {
	Run(ctx context.Context) (domain.SyncReport, error)
}

// SyncHandler serves the sync trigger and last-report endpoints.
type SyncHandler struct {
	runner  SyncRunner
	reports domain.ReportCache // optional
	logger  *slog.Logger
}

// NewSyncHandler creates a SyncHandler. reports may be nil, in which case the
// last-report endpoint always answers 404.
func NewSyncHandler(runner SyncRunner, reports domain.ReportCache, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{
		runner:  runner,
		reports: reports,
		logger:  logger.With(slog.String("handler", "sync")),
	}
}

// TriggerSync runs one full sync cycle and returns its report. Callers always
// receive a well-formed JSON envelope: 200 on success, 409 when another run
// holds the lock, 500 on an orchestrator-level failure.
// GET|POST /api/sync
func (h *SyncHandler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "sync trigger requested")

	report, err := h.runner.Run(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, report)
	case errors.Is(err, domain.ErrLockHeld):
		writeJSON(w, http.StatusConflict, domain.NewErrorReport("sync already running"))
	default:
		if report.Status == "" {
			report = domain.NewErrorReport(err.Error())
		}
		writeJSON(w, http.StatusInternalServerError, report)
	}
}

// LastReport returns the report of the most recent run, if one is cached.
// GET /api/sync/last
func (h *SyncHandler) LastReport(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		writeJSON(w, http.StatusNotFound, domain.NewErrorReport("no report available"))
		return
	}

	report, err := h.reports.GetLast(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, domain.NewErrorReport("no report available"))
			return
		}
		h.logger.ErrorContext(r.Context(), "last report lookup failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, domain.NewErrorReport("report lookup failed"))
		return
	}

	writeJSON(w, http.StatusOK, report)
}
