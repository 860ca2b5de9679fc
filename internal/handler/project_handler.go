package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/service"
	"github.com/themis-api/internal/storage"
)

type ProjectHandler struct {
	base
	projectService service.ProjectService
	taskService    service.TaskService
	media          storage.URLResolver
}

func NewProjectHandler(
	projectService service.ProjectService,
	taskService service.TaskService,
	media storage.URLResolver,
	v *validator.Validate,
	logger *slog.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		base:           newBase(v, logger),
		projectService: projectService,
		taskService:    taskService,
		media:          media,
	}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := make([]dto.ProjectResponse, len(projects))
	for i := range projects {
		resp[i] = h.toProjectResponse(&projects[i])
	}
	h.respondJSON(w, http.StatusOK, resp)
}

// Create сохраняет проект; если код не передан, он генерируется из региона и даты начала
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if !h.decode(w, r, &req) {
		return
	}

	project, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, h.toProjectResponse(project))
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.toProjectResponse(project))
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "project")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !h.decode(w, r, &req) {
		return
	}

	project, err := h.projectService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.toProjectResponse(project))
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "project")
	if !ok {
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Detail - проект со справочниками и деревом команды
func (h *ProjectHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "project")
	if !ok {
		return
	}

	detail, err := h.projectService.GetDetail(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, detail)
}

func (h *ProjectHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "project")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByProject(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondJSON(w, http.StatusOK, tasks)
}

func (h *ProjectHandler) toProjectResponse(p *domain.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:                p.ID,
		Code:              p.Code,
		Snapshot:          h.media.Absolute(p.Snapshot),
		Name:              p.Name,
		AreaID:            p.AreaID,
		TypeID:            p.TypeID,
		StatusID:          p.StatusID,
		CustomerID:        p.CustomerID,
		TeamID:            p.TeamID,
		InitiationDate:    service.FormatDate(p.InitiationDate),
		CompletionDateEst: service.FormatDate(p.CompletionDateEst),
		CreatedAt:         p.CreatedAt,
	}
}
