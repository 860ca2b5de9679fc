package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/service"
)

type TeamHandler struct {
	base
	teamService service.TeamService
}

func NewTeamHandler(teamService service.TeamService, v *validator.Validate, logger *slog.Logger) *TeamHandler {
	return &TeamHandler{base: newBase(v, logger), teamService: teamService}
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := make([]dto.TeamResponse, len(teams))
	for i := range teams {
		resp[i] = toTeamResponse(&teams[i])
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TeamRequest
	if !h.decode(w, r, &req) {
		return
	}

	team, err := h.teamService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toTeamResponse(team))
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "team")
	if !ok {
		return
	}

	team, err := h.teamService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toTeamResponse(team))
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "team")
	if !ok {
		return
	}

	var req dto.UpdateTeamRequest
	if !h.decode(w, r, &req) {
		return
	}

	team, err := h.teamService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toTeamResponse(team))
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "team")
	if !ok {
		return
	}

	if err := h.teamService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Tree - дерево команды; для команды без руководителя проекта отдаётся null
func (h *TeamHandler) Tree(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r, "team")
	if !ok {
		return
	}

	tree, err := h.teamService.Tree(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, tree)
}

func toTeamResponse(team *domain.Team) dto.TeamResponse {
	return dto.TeamResponse{
		ID:                 team.ID,
		Name:               team.Name,
		ProjectDirectorID:  team.ProjectDirectorID,
		AlgorithmLeaderID:  team.AlgorithmLeaderID,
		VisionLeaderID:     team.VisionLeaderID,
		MechanicLeaderID:   team.MechanicLeaderID,
		EELeaderID:         team.EELeaderID,
		ProjectManagerID:   team.ProjectManagerID,
		BusinessManagerID:  team.BusinessManagerID,
		AlgorithmMembers:   memberIDs(team.AlgorithmMembers),
		VisionMembers:      memberIDs(team.VisionMembers),
		MechanicMembers:    memberIDs(team.MechanicMembers),
		EEMembers:          memberIDs(team.EEMembers),
		MaintenanceMembers: memberIDs(team.MaintenanceMembers),
	}
}

func memberIDs(members []domain.Employee) []int64 {
	ids := make([]int64, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return ids
}
