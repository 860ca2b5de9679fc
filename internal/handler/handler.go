package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/service"
)

var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

var cities = map[domain.City]bool{
	domain.CityDongguan:  true,
	domain.CityHefei:     true,
	domain.CitySuzhou:    true,
	domain.CityGuangzhou: true,
	domain.CityChengdu:   true,
	domain.CityShenzhen:  true,
}

// NewValidator создаёт валидатор с тегами phone, city и project_code
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("city", func(fl validator.FieldLevel) bool {
		return cities[domain.City(fl.Field().String())]
	})
	_ = v.RegisterValidation("project_code", func(fl validator.FieldLevel) bool {
		return service.ValidProjectCode(fl.Field().String())
	})
	return v
}

// base - общие для всех обработчиков ответы и разбор запросов
type base struct {
	validator *validator.Validate
	logger    *slog.Logger
}

func newBase(v *validator.Validate, logger *slog.Logger) base {
	return base{validator: v, logger: logger}
}

// decode читает JSON тела запроса в dst и проверяет его; при ошибке ответ уже отправлен
func (h *base) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return false
	}
	return true
}

// extractID возвращает id из пути; роутер кладёт его в PathValue("id")
func (h *base) extractID(w http.ResponseWriter, r *http.Request, entity string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid "+entity+" id", r.PathValue("id"))
		return 0, false
	}
	return id, true
}

func (h *base) handleServiceError(w http.ResponseWriter, err error) {
	var parseErr *time.ParseError
	switch {
	case errors.Is(err, domain.ErrAreaNotFound),
		errors.Is(err, domain.ErrDepartmentNotFound),
		errors.Is(err, domain.ErrPositionNotFound),
		errors.Is(err, domain.ErrEmployeeNotFound),
		errors.Is(err, domain.ErrProjectNotFound),
		errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrRecordNotFound):
		h.respondError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, domain.ErrDuplicateDepartmentName),
		errors.Is(err, domain.ErrDuplicateAreaCode),
		errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrDuplicateIDNumber),
		errors.Is(err, domain.ErrDuplicateEmployeeNo),
		errors.Is(err, domain.ErrDuplicateEmployee),
		errors.Is(err, domain.ErrDuplicateProjectCode),
		errors.Is(err, domain.ErrAreaCodeInUse):
		h.respondError(w, http.StatusConflict, err.Error(), "")
	case errors.Is(err, domain.ErrSelfReference):
		h.respondError(w, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, domain.ErrCyclicReference):
		h.respondError(w, http.StatusConflict, err.Error(), "")
	case errors.Is(err, domain.ErrProjectAreaRequired),
		errors.Is(err, domain.ErrMissingUploadFile):
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken):
		h.respondError(w, http.StatusUnauthorized, err.Error(), "")
	case errors.Is(err, domain.ErrMalformedProjectCode):
		h.logger.Error("project code sequence is corrupted", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "project code integrity error", err.Error())
	case errors.As(err, &parseErr):
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h *base) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *base) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}

// queryID разбирает необязательный числовой параметр запроса
func queryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
