package http

import (
	"net/http"

	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/service"
)

// CatalogHandler serves the rental catalog the order form renders from:
// machine tiers, mixers, and extras, priced from the live rate table.
type CatalogHandler struct {
	quoteSvc service.QuoteService
}

func NewCatalogHandler(quoteSvc service.QuoteService) *CatalogHandler {
	return &CatalogHandler{quoteSvc: quoteSvc}
}

type catalogResponse struct {
	Machines []domain.MachineSpec `json:"machines"`
	Mixers   []domain.Mixer       `json:"mixers"`
	Extras   []domain.Extra       `json:"extras"`
}

func (h *CatalogHandler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	rates := h.quoteSvc.CurrentRates(r.Context())

	machines := domain.AllMachineSpecs()
	for i := range machines {
		if price, err := rates.BasePrice(machines[i].Tier); err == nil {
			machines[i].PerDayPrice = price
		}
	}

	mixers := domain.MixerCatalog()
	for i := range mixers {
		mixers[i].PerDaySurcharge = rates.MixerSurcharge(mixers[i].ID)
	}

	extras := domain.ExtraCatalog()
	for i := range extras {
		if price, ok := rates.ExtraPrice(extras[i].ID); ok {
			extras[i].PerDayPrice = price
		}
	}

	writeJSON(w, http.StatusOK, catalogResponse{
		Machines: machines,
		Mixers:   mixers,
		Extras:   extras,
	})
}
