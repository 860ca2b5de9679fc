package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/repository"
	"github.com/themis-api/internal/service"
	"github.com/themis-api/internal/storage"
)

type EmployeeHandler struct {
	base
	empService service.EmployeeService
	media      storage.URLResolver
}

func NewEmployeeHandler(
	empService service.EmployeeService,
	media storage.URLResolver,
	v *validator.Validate,
	logger *slog.Logger,
) *EmployeeHandler {
	return &EmployeeHandler{
		base:       newBase(v, logger),
		empService: empService,
		media:      media,
	}
}

// List поддерживает фильтры area_id, department_id, position_id
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter repository.EmployeeFilter
	var err error
	for name, dst := range map[string]**int64{
		"area_id":       &filter.AreaID,
		"department_id": &filter.DepartmentID,
		"position_id":   &filter.PositionID,
	} {
		if *dst, err = queryID(r, name); err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid "+name, err.Error())
			return
		}
	}

	employees, err := h.empService.List(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := make([]dto.EmployeeResponse, len(employees))
	for i := range employees {
		resp[i] = h.toEmployeeResponse(&employees[i], nil)
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, h.toEmployeeResponse(emp, req.WatchingProjectIDs))
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "employee")
	if !ok {
		return
	}

	emp, err := h.empService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	watching, err := h.empService.WatchingProjectIDs(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toEmployeeResponse(emp, watching))
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "employee")
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.empService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	watching, err := h.empService.WatchingProjectIDs(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toEmployeeResponse(emp, watching))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "employee")
	if !ok {
		return
	}

	if err := h.empService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BasicInfo - краткая карточка сотрудника
func (h *EmployeeHandler) BasicInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "employee")
	if !ok {
		return
	}

	info, err := h.empService.BasicInfo(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, info)
}

func (h *EmployeeHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "employee")
	if !ok {
		return
	}

	var req dto.SetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.empService.SetPassword(r.Context(), id, req.Password); err != nil {
		h.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EmployeeHandler) toEmployeeResponse(emp *domain.Employee, watching []int64) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:                   emp.ID,
		Username:             emp.Username,
		Name:                 emp.Name,
		EmployeeNumber:       emp.EmployeeNumber,
		Email:                emp.Email,
		Phone:                emp.Phone,
		Gender:               string(emp.Gender),
		Status:               emp.Status,
		Expertise:            emp.Expertise,
		Avatar:               h.media.Absolute(emp.Avatar),
		IDNumber:             emp.IDNumber,
		IDAddress:            emp.IDAddress,
		GraduatedFrom:        emp.GraduatedFrom,
		DegreeID:             emp.DegreeID,
		AreaID:               emp.AreaID,
		DepartmentID:         emp.DepartmentID,
		PositionID:           emp.PositionID,
		PositionLevelID:      emp.PositionLevelID,
		DateJoined:           service.FormatDate(emp.DateJoined),
		Salary:               emp.Salary,
		SalaryPlace:          cityString(emp.SalaryPlace),
		WorkPlace:            cityString(emp.WorkPlace),
		ContractPlace:        cityString(emp.ContractPlace),
		InsurancePlace:       cityString(emp.InsurancePlace),
		ContractRenewedTimes: emp.ContractRenewedTimes,
		ContractStartDate:    service.FormatDate(emp.ContractStartDate),
		ContractEndDate:      service.FormatDate(emp.ContractEndDate),
		BankNumber:           emp.BankNumber,
		BankAddress:          emp.BankAddress,
		IsStaff:              emp.IsStaff,
		IsSuperuser:          emp.IsSuperuser,
		WatchingProjectIDs:   watching,
		CreatedAt:            emp.CreatedAt,
	}
}

func cityString(c *domain.City) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}
