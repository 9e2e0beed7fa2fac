package http

import (
	"net/http"

	"frostbar-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter wires every storefront and admin route onto a gorilla router.
func NewRouter(
	catalogHandler *CatalogHandler,
	quoteHandler *QuoteHandler,
	availabilityHandler *AvailabilityHandler,
	orderHandler *OrderHandler,
	adminHandler *AdminHandler,
	tokens security.TokenManager,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestLogging)

	router.HandleFunc("/healthz", HandleHealth).Methods(http.MethodGet)

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/catalog", catalogHandler.HandleCatalog).Methods(http.MethodGet)
	v1.HandleFunc("/quotes", quoteHandler.HandleQuote).Methods(http.MethodPost)
	v1.HandleFunc("/availability", availabilityHandler.HandleCheck).Methods(http.MethodGet)
	v1.HandleFunc("/orders", orderHandler.HandlePlaceOrder).Methods(http.MethodPost)
	v1.HandleFunc("/orders/{orderNumber}", orderHandler.HandleGetOrder).Methods(http.MethodGet)
	v1.HandleFunc("/orders/{orderNumber}/cancel", orderHandler.HandleCancelOrder).Methods(http.MethodPost)

	v1.HandleFunc("/admin/login", adminHandler.HandleLogin).Methods(http.MethodPost)

	admin := v1.PathPrefix("/admin").Subrouter()
	admin.Use(AdminAuth(tokens))
	admin.HandleFunc("/orders", orderHandler.HandleListOrders).Methods(http.MethodGet)
	admin.HandleFunc("/settings", adminHandler.HandleGetSettings).Methods(http.MethodGet)
	admin.HandleFunc("/settings", adminHandler.HandleUpdateSettings).Methods(http.MethodPut)

	return router
}

// HandleHealth answers liveness probes.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
