package service

import (
	"context"
	"strings"

	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/repository"
)

// AreaService определяет интерфейс бизнес-логики для регионов
type AreaService interface {
	Create(ctx context.Context, req *dto.CreateAreaRequest) (*domain.Area, error)
	GetByID(ctx context.Context, id int64) (*domain.Area, error)
	List(ctx context.Context) ([]domain.Area, error)
	Update(ctx context.Context, id int64, req *dto.UpdateAreaRequest) (*domain.Area, error)
	Delete(ctx context.Context, id int64) error
}

type areaService struct {
	areaRepo repository.AreaRepository
	empRepo  repository.EmployeeRepository
}

// NewAreaService создаёт новый экземпляр сервиса
func NewAreaService(areaRepo repository.AreaRepository, empRepo repository.EmployeeRepository) AreaService {
	return &areaService{areaRepo: areaRepo, empRepo: empRepo}
}

func (s *areaService) Create(ctx context.Context, req *dto.CreateAreaRequest) (*domain.Area, error) {
	area := &domain.Area{
		Name:      strings.TrimSpace(req.Name),
		Code:      strings.TrimSpace(req.Code),
		ManagerID: req.ManagerID,
	}

	if err := s.checkManager(ctx, req.ManagerID); err != nil {
		return nil, err
	}

	exists, err := s.areaRepo.ExistsByCode(ctx, area.Code, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateAreaCode
	}

	if err := s.areaRepo.Create(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}

func (s *areaService) GetByID(ctx context.Context, id int64) (*domain.Area, error) {
	return s.areaRepo.GetByID(ctx, id)
}

func (s *areaService) List(ctx context.Context) ([]domain.Area, error) {
	return s.areaRepo.List(ctx)
}

// Update изменяет регион. Код нельзя менять, пока на регион ссылаются проекты:
// он входит в их коды
func (s *areaService) Update(ctx context.Context, id int64, req *dto.UpdateAreaRequest) (*domain.Area, error) {
	area, err := s.areaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		area.Name = strings.TrimSpace(*req.Name)
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code != area.Code {
			used, err := s.areaRepo.HasProjects(ctx, id)
			if err != nil {
				return nil, err
			}
			if used {
				return nil, domain.ErrAreaCodeInUse
			}

			exists, err := s.areaRepo.ExistsByCode(ctx, code, &id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrDuplicateAreaCode
			}
			area.Code = code
		}
	}

	if req.ManagerID != nil {
		if err := s.checkManager(ctx, req.ManagerID); err != nil {
			return nil, err
		}
		area.ManagerID = req.ManagerID
	}

	if err := s.areaRepo.Update(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}

func (s *areaService) Delete(ctx context.Context, id int64) error {
	return s.areaRepo.Delete(ctx, id)
}

func (s *areaService) checkManager(ctx context.Context, managerID *int64) error {
	if managerID == nil {
		return nil
	}
	_, err := s.empRepo.GetByID(ctx, *managerID)
	return err
}
