package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/repository"
	"github.com/themis-api/internal/storage"
)

// ProjectService определяет интерфейс бизнес-логики для проектов
type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	GetDetail(ctx context.Context, id int64) (*dto.ProjectDetailResponse, error)
	List(ctx context.Context) ([]domain.Project, error)
	Update(ctx context.Context, id int64, req *dto.UpdateProjectRequest) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	areaRepo    repository.AreaRepository
	teamRepo    repository.TeamRepository
	media       storage.URLResolver
}

// NewProjectService создаёт новый экземпляр сервиса
func NewProjectService(
	projectRepo repository.ProjectRepository,
	areaRepo repository.AreaRepository,
	teamRepo repository.TeamRepository,
	media storage.URLResolver,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		areaRepo:    areaRepo,
		teamRepo:    teamRepo,
		media:       media,
	}
}

func (s *projectService) Create(ctx context.Context, req *dto.CreateProjectRequest) (*domain.Project, error) {
	project := &domain.Project{
		Name:       strings.TrimSpace(req.Name),
		AreaID:     req.AreaID,
		TypeID:     req.TypeID,
		StatusID:   req.StatusID,
		CustomerID: req.CustomerID,
		TeamID:     req.TeamID,
	}
	if req.Code != nil {
		project.Code = strings.TrimSpace(*req.Code)
	}

	var err error
	if project.InitiationDate, err = parseDate(req.InitiationDate); err != nil {
		return nil, fmt.Errorf("parse initiation_date: %w", err)
	}
	if project.CompletionDateEst, err = parseDate(req.CompletionDateEst); err != nil {
		return nil, fmt.Errorf("parse completion_date_est: %w", err)
	}

	if err := s.checkTeam(ctx, project.TeamID); err != nil {
		return nil, err
	}

	if err := s.save(ctx, project, s.projectRepo.Create); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *projectService) GetDetail(ctx context.Context, id int64) (*dto.ProjectDetailResponse, error) {
	project, err := s.projectRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.ProjectDetailResponse{
		ID:                project.ID,
		Code:              project.Code,
		Snapshot:          s.media.Absolute(project.Snapshot),
		Name:              project.Name,
		Area:              project.Area,
		ProjectType:       project.Type,
		ProjectStatus:     project.Status,
		Customer:          project.Customer,
		InitiationDate:    FormatDate(project.InitiationDate),
		CompletionDateEst: FormatDate(project.CompletionDateEst),
		Team:              BuildTeamTree(project.Team, s.media),
	}, nil
}

func (s *projectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projectRepo.List(ctx)
}

func (s *projectService) Update(ctx context.Context, id int64, req *dto.UpdateProjectRequest) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = strings.TrimSpace(*req.Name)
	}
	if req.AreaID != nil {
		project.AreaID = req.AreaID
	}
	if req.TypeID != nil {
		project.TypeID = req.TypeID
	}
	if req.StatusID != nil {
		project.StatusID = req.StatusID
	}
	if req.CustomerID != nil {
		project.CustomerID = req.CustomerID
	}
	if req.TeamID != nil {
		if err := s.checkTeam(ctx, req.TeamID); err != nil {
			return nil, err
		}
		project.TeamID = req.TeamID
	}
	if req.InitiationDate != nil {
		if project.InitiationDate, err = parseDate(req.InitiationDate); err != nil {
			return nil, fmt.Errorf("parse initiation_date: %w", err)
		}
	}
	if req.CompletionDateEst != nil {
		if project.CompletionDateEst, err = parseDate(req.CompletionDateEst); err != nil {
			return nil, fmt.Errorf("parse completion_date_est: %w", err)
		}
	}

	if err := s.save(ctx, project, s.projectRepo.Update); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id int64) error {
	return s.projectRepo.Delete(ctx, id)
}

// save применяет правила сохранения проекта: срок завершения по умолчанию и
// генерация кода, если он ещё не назначен
func (s *projectService) save(
	ctx context.Context,
	project *domain.Project,
	persist func(context.Context, *domain.Project, repository.CodeFunc) error,
) error {
	if project.CompletionDateEst == nil {
		project.CompletionDateEst = DefaultCompletionDate(project.InitiationDate)
	}

	var assign repository.CodeFunc
	if project.Code == "" {
		if project.AreaID == nil {
			return domain.ErrProjectAreaRequired
		}
		area, err := s.areaRepo.GetByID(ctx, *project.AreaID)
		if err != nil {
			return err
		}
		assign = codeFor(area, project.InitiationDate)
	}

	return persist(ctx, project, assign)
}

func (s *projectService) checkTeam(ctx context.Context, teamID *int64) error {
	if teamID == nil {
		return nil
	}
	_, err := s.teamRepo.GetByID(ctx, *teamID)
	return err
}
