package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/service"
)

type DepartmentHandler struct {
	base
	deptService service.DepartmentService
}

func NewDepartmentHandler(deptService service.DepartmentService, v *validator.Validate, logger *slog.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		base:        newBase(v, logger),
		deptService: deptService,
	}
}

func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.deptService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := make([]dto.DepartmentResponse, len(departments))
	for i := range departments {
		resp[i] = h.toDepartmentResponse(&departments[i])
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepartmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	dept, err := h.deptService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, h.toDepartmentResponse(dept))
}

// Get возвращает подразделение с поддеревом глубины depth (0..5) и, по желанию, сотрудниками
func (h *DepartmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "department")
	if !ok {
		return
	}

	query := h.parseGetQuery(r)
	if err := h.validator.Struct(&query); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	dept, err := h.deptService.GetByID(r.Context(), id, &query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toDepartmentResponseWithChildren(dept, query.IncludeEmployees))
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "department")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	dept, err := h.deptService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, h.toDepartmentResponse(dept))
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "department")
	if !ok {
		return
	}

	if err := h.deptService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DepartmentHandler) parseGetQuery(r *http.Request) dto.GetDepartmentQuery {
	query := dto.GetDepartmentQuery{
		Depth:            1,
		IncludeEmployees: true,
	}

	if depthStr := r.URL.Query().Get("depth"); depthStr != "" {
		if depth, err := strconv.Atoi(depthStr); err == nil {
			query.Depth = depth
		}
	}

	if includeStr := r.URL.Query().Get("include_employees"); includeStr != "" {
		query.IncludeEmployees = includeStr == "true"
	}

	return query
}

func (h *DepartmentHandler) toDepartmentResponse(dept *domain.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:        dept.ID,
		Name:      dept.Name,
		ParentID:  dept.ParentID,
		AreaID:    dept.AreaID,
		CreatedAt: dept.CreatedAt,
	}
}

func (h *DepartmentHandler) toDepartmentResponseWithChildren(dept *domain.Department, includeEmployees bool) dto.DepartmentResponse {
	resp := h.toDepartmentResponse(dept)

	if includeEmployees && len(dept.Employees) > 0 {
		resp.Employees = make([]dto.EmployeeSummary, len(dept.Employees))
		for i, emp := range dept.Employees {
			resp.Employees[i] = dto.EmployeeSummary{
				ID:             emp.ID,
				Name:           emp.Name,
				EmployeeNumber: emp.EmployeeNumber,
				PositionID:     emp.PositionID,
			}
		}
	}

	if len(dept.Children) > 0 {
		resp.Children = make([]dto.DepartmentResponse, len(dept.Children))
		for i := range dept.Children {
			resp.Children[i] = h.toDepartmentResponseWithChildren(&dept.Children[i], includeEmployees)
		}
	}

	return resp
}
