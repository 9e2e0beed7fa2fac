package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"frostbar-backend/internal/pricing"
	"frostbar-backend/internal/service"
)

// QuoteHandler serves live price breakdowns for the order form.
type QuoteHandler struct {
	quoteSvc service.QuoteService
}

func NewQuoteHandler(quoteSvc service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteSvc: quoteSvc}
}

// HandleQuote computes a breakdown without persisting anything. The form
// calls this on every input change, so bad dates quote permissively rather
// than erroring; only an unknown tier is a hard failure.
func (h *QuoteHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	var in pricing.QuoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	breakdown, err := h.quoteSvc.Quote(r.Context(), in)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownTier) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to compute quote")
		return
	}

	writeJSON(w, http.StatusOK, breakdown)
}
