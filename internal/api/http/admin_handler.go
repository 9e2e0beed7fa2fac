package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"frostbar-backend/internal/config"
	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/logger"
	"frostbar-backend/internal/security"
	"frostbar-backend/internal/service"
)

type AdminHandler struct {
	admin       config.AdminConfig
	tokens      security.TokenManager
	settingsSvc service.SettingsService
}

func NewAdminHandler(admin config.AdminConfig, tokens security.TokenManager, settingsSvc service.SettingsService) *AdminHandler {
	return &AdminHandler{admin: admin, tokens: tokens, settingsSvc: settingsSvc}
}

func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !strings.EqualFold(req.Email, h.admin.Email) ||
		!security.CheckPassword(h.admin.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.GenerateAccessToken(h.admin.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

func (h *AdminHandler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsSvc.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *AdminHandler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.PricingSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.settingsSvc.Update(r.Context(), &settings); err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, http.StatusBadRequest, validationErr.Error())
			return
		}
		logger.ErrorContext(r.Context(), "Failed to update pricing settings",
			"admin", adminEmail(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}

	logger.InfoContext(r.Context(), "Pricing settings updated", "admin", adminEmail(r.Context()))
	writeJSON(w, http.StatusOK, &settings)
}
