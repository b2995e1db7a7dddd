package http

import (
	"net/http"
	"time"

	"equipme-backend/internal/service"
)

type SummaryHandler struct {
	summaries service.SummaryService
}

func NewSummaryHandler(summaries service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaries: summaries}
}

// dateRange parses the from/to query parameters, defaulting to the trailing
// thirty days when absent.
func dateRange(r *http.Request) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	from, to := now.AddDate(0, 0, -30), now

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, false
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, false
		}
		to = parsed
	}
	if to.Before(from) {
		return from, to, false
	}
	return from, to, true
}

func (h *SummaryHandler) ListSummaries(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid equipment id"})
		return
	}
	from, to, ok := dateRange(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date range"})
		return
	}

	rows, err := h.summaries.List(r.Context(), equipmentID, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *SummaryHandler) RebuildSummaries(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorFrom(r); !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	equipmentID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid equipment id"})
		return
	}
	from, to, ok := dateRange(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date range"})
		return
	}

	rows, err := h.summaries.Rebuild(r.Context(), equipmentID, from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
