package http

import (
	"net/http"

	"frostbar-backend/internal/availability"
	"frostbar-backend/internal/domain"
)

type AvailabilityHandler struct {
	checker *availability.Checker
}

func NewAvailabilityHandler(checker *availability.Checker) *AvailabilityHandler {
	return &AvailabilityHandler{checker: checker}
}

// HandleCheck answers GET /availability?tier=&start_date=&end_date=. A
// failed lookup responds 200 with a warning field, not an error status:
// the client decides whether to warn or block.
func (h *AvailabilityHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	tier := domain.MachineTier(r.URL.Query().Get("tier"))
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	if _, ok := domain.SpecForTier(tier); !ok {
		writeError(w, http.StatusBadRequest, "unknown machine tier")
		return
	}
	if startDate == "" || endDate == "" {
		writeError(w, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	result := h.checker.Check(r.Context(), tier, startDate, endDate)
	writeJSON(w, http.StatusOK, result)
}
