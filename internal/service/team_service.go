package service

import (
	"context"
	"strings"

	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/repository"
	"github.com/themis-api/internal/storage"
)

// TeamService определяет интерфейс бизнес-логики для команд
type TeamService interface {
	Create(ctx context.Context, req *dto.TeamRequest) (*domain.Team, error)
	GetByID(ctx context.Context, id int64) (*domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTeamRequest) (*domain.Team, error)
	Delete(ctx context.Context, id int64) error
	Tree(ctx context.Context, id int64) (*dto.TeamNode, error)
}

type teamService struct {
	teamRepo repository.TeamRepository
	empRepo  repository.EmployeeRepository
	media    storage.URLResolver
}

// NewTeamService создаёт новый экземпляр сервиса
func NewTeamService(teamRepo repository.TeamRepository, empRepo repository.EmployeeRepository, media storage.URLResolver) TeamService {
	return &teamService{teamRepo: teamRepo, empRepo: empRepo, media: media}
}

func (s *teamService) Create(ctx context.Context, req *dto.TeamRequest) (*domain.Team, error) {
	team := &domain.Team{
		Name:              strings.TrimSpace(req.Name),
		ProjectDirectorID: req.ProjectDirectorID,
		AlgorithmLeaderID: req.AlgorithmLeaderID,
		VisionLeaderID:    req.VisionLeaderID,
		MechanicLeaderID:  req.MechanicLeaderID,
		EELeaderID:        req.EELeaderID,
		ProjectManagerID:  req.ProjectManagerID,
		BusinessManagerID: req.BusinessManagerID,
	}
	members := repository.TeamMembers{
		Algorithm:   req.AlgorithmMembers,
		Vision:      req.VisionMembers,
		Mechanic:    req.MechanicMembers,
		EE:          req.EEMembers,
		Maintenance: req.MaintenanceMembers,
	}

	if err := s.checkEmployees(ctx, team, &members); err != nil {
		return nil, err
	}
	if err := s.teamRepo.Create(ctx, team, members); err != nil {
		return nil, err
	}
	return s.teamRepo.GetWithMembers(ctx, team.ID)
}

func (s *teamService) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	return s.teamRepo.GetWithMembers(ctx, id)
}

func (s *teamService) List(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	full := make([]domain.Team, 0, len(teams))
	for _, t := range teams {
		team, err := s.teamRepo.GetWithMembers(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		full = append(full, *team)
	}
	return full, nil
}

func (s *teamService) Update(ctx context.Context, id int64, req *dto.UpdateTeamRequest) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = strings.TrimSpace(*req.Name)
	}
	leaders := []struct {
		in  *int64
		out **int64
	}{
		{req.ProjectDirectorID, &team.ProjectDirectorID},
		{req.AlgorithmLeaderID, &team.AlgorithmLeaderID},
		{req.VisionLeaderID, &team.VisionLeaderID},
		{req.MechanicLeaderID, &team.MechanicLeaderID},
		{req.EELeaderID, &team.EELeaderID},
		{req.ProjectManagerID, &team.ProjectManagerID},
		{req.BusinessManagerID, &team.BusinessManagerID},
	}
	for _, l := range leaders {
		if l.in != nil {
			*l.out = l.in
		}
	}

	var members *repository.TeamMembers
	if req.AlgorithmMembers != nil || req.VisionMembers != nil || req.MechanicMembers != nil ||
		req.EEMembers != nil || req.MaintenanceMembers != nil {
		current, err := s.teamRepo.GetWithMembers(ctx, id)
		if err != nil {
			return nil, err
		}
		members = &repository.TeamMembers{
			Algorithm:   pickIDs(req.AlgorithmMembers, current.AlgorithmMembers),
			Vision:      pickIDs(req.VisionMembers, current.VisionMembers),
			Mechanic:    pickIDs(req.MechanicMembers, current.MechanicMembers),
			EE:          pickIDs(req.EEMembers, current.EEMembers),
			Maintenance: pickIDs(req.MaintenanceMembers, current.MaintenanceMembers),
		}
	}

	if err := s.checkEmployees(ctx, team, members); err != nil {
		return nil, err
	}
	if err := s.teamRepo.Update(ctx, team, members); err != nil {
		return nil, err
	}
	return s.teamRepo.GetWithMembers(ctx, id)
}

func (s *teamService) Delete(ctx context.Context, id int64) error {
	return s.teamRepo.Delete(ctx, id)
}

func (s *teamService) Tree(ctx context.Context, id int64) (*dto.TeamNode, error) {
	team, err := s.teamRepo.GetWithMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildTeamTree(team, s.media), nil
}

// checkEmployees проверяет, что все руководители и участники существуют
func (s *teamService) checkEmployees(ctx context.Context, team *domain.Team, members *repository.TeamMembers) error {
	var ids []int64
	for _, id := range []*int64{
		team.ProjectDirectorID, team.AlgorithmLeaderID, team.VisionLeaderID, team.MechanicLeaderID,
		team.EELeaderID, team.ProjectManagerID, team.BusinessManagerID,
	} {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	if members != nil {
		for _, group := range [][]int64{members.Algorithm, members.Vision, members.Mechanic, members.EE, members.Maintenance} {
			ids = append(ids, group...)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	unique := uniqueIDs(ids)
	set := make([]int64, 0, len(unique))
	for id := range unique {
		set = append(set, id)
	}
	count, err := s.empRepo.CountByIDs(ctx, set)
	if err != nil {
		return err
	}
	if count != int64(len(set)) {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func pickIDs(requested []int64, current []domain.Employee) []int64 {
	if requested != nil {
		return requested
	}
	ids := make([]int64, len(current))
	for i, e := range current {
		ids[i] = e.ID
	}
	return ids
}
