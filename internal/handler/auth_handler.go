package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/service"
)

type AuthHandler struct {
	base
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService, v *validator.Validate, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{base: newBase(v, logger), authService: authService}
}

// Token - выдача пары токенов с данными сотрудника в user_info
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.authService.Refresh(r.Context(), req.Refresh)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// Revoke - выход: refresh-токен больше не обменивается на access
func (h *AuthHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.authService.Logout(r.Context(), req.Refresh); err != nil {
		h.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
