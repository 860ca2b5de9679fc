package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// CatalogStore - хранилище справочника (должности, грейды, образование, типы и этапы
// проектов, заказчики)
type CatalogStore[T any] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
}

// CatalogHandler - CRUD справочника. Тело запроса декодируется прямо в сущность:
// при обновлении поверх загруженной записи, поэтому PUT и PATCH частичные
type CatalogHandler[T any] struct {
	base
	store CatalogStore[T]
	name  string
	setID func(item *T, id int64)
}

func NewCatalogHandler[T any](
	store CatalogStore[T],
	name string,
	setID func(item *T, id int64),
	v *validator.Validate,
	logger *slog.Logger,
) *CatalogHandler[T] {
	return &CatalogHandler[T]{
		base:  newBase(v, logger),
		store: store,
		name:  name,
		setID: setID,
	}
}

func (h *CatalogHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	h.respondJSON(w, http.StatusOK, items)
}

func (h *CatalogHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	item := new(T)
	if !h.decode(w, r, item) {
		return
	}
	h.setID(item, 0)

	if err := h.store.Create(r.Context(), item); err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, item)
}

func (h *CatalogHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, h.name)
	if !ok {
		return
	}

	item, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, item)
}

func (h *CatalogHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, h.name)
	if !ok {
		return
	}

	item, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(item); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	h.setID(item, id)
	if err := h.validator.Struct(item); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	if err := h.store.Update(r.Context(), item); err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, item)
}

func (h *CatalogHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, h.name)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
