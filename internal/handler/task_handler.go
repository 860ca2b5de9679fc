package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/middleware"
	"github.com/themis-api/internal/service"
)

type TaskHandler struct {
	base
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService, v *validator.Validate, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{base: newBase(v, logger), taskService: taskService}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if !h.decode(w, r, &req) {
		return
	}
	// по умолчанию задачу назначает текущий пользователь
	if req.AllocatorID == nil {
		if uid, ok := middleware.UserID(r.Context()); ok {
			req.AllocatorID = &uid
		}
	}

	task, err := h.taskService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "task")
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "task")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !h.decode(w, r, &req) {
		return
	}

	task, err := h.taskService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "task")
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
