package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mholloway/congresswatch/internal/domain"
)

// StatsHandler serves stored-row counts for dashboards.
type StatsHandler struct {
	members domain.MemberStore
	trades  domain.TradeStore
	logger  *slog.Logger
}

// NewStatsHandler creates a StatsHandler over the given stores.
func NewStatsHandler(members domain.MemberStore, trades domain.TradeStore, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		members: members,
		trades:  trades,
		logger:  logger.With(slog.String("handler", "stats")),
	}
}

// GetStats returns the number of stored members and trades.
// GET /api/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	memberCount, err := h.members.Count(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "member count failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stats unavailable"})
		return
	}

	tradeCount, err := h.trades.Count(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "trade count failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stats unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"members":   memberCount,
		"trades":    tradeCount,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
