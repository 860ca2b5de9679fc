package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/service"
)

type AreaHandler struct {
	base
	areaService service.AreaService
}

func NewAreaHandler(areaService service.AreaService, v *validator.Validate, logger *slog.Logger) *AreaHandler {
	return &AreaHandler{base: newBase(v, logger), areaService: areaService}
}

func (h *AreaHandler) List(w http.ResponseWriter, r *http.Request) {
	areas, err := h.areaService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, areas)
}

func (h *AreaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAreaRequest
	if !h.decode(w, r, &req) {
		return
	}

	area, err := h.areaService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, area)
}

func (h *AreaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "area")
	if !ok {
		return
	}

	area, err := h.areaService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, area)
}

func (h *AreaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "area")
	if !ok {
		return
	}

	var req dto.UpdateAreaRequest
	if !h.decode(w, r, &req) {
		return
	}

	area, err := h.areaService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, area)
}

func (h *AreaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "area")
	if !ok {
		return
	}

	if err := h.areaService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
