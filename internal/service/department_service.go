package service

import (
	"context"
	"errors"
	"strings"

	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/repository"
)

// DepartmentService определяет интерфейс бизнес-логики для подразделений
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*domain.Department, error)
	GetByID(ctx context.Context, id int64, query *dto.GetDepartmentQuery) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*domain.Department, error)
	Delete(ctx context.Context, id int64) error
}

type departmentService struct {
	deptRepo repository.DepartmentRepository
	areaRepo repository.AreaRepository
}

// NewDepartmentService создаёт новый экземпляр сервиса
func NewDepartmentService(deptRepo repository.DepartmentRepository, areaRepo repository.AreaRepository) DepartmentService {
	return &departmentService{
		deptRepo: deptRepo,
		areaRepo: areaRepo,
	}
}

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest) (*domain.Department, error) {
	name := strings.TrimSpace(req.Name)

	// Проверяем существование родительского подразделения
	if req.ParentID != nil {
		if _, err := s.deptRepo.GetByID(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}
	if err := s.checkArea(ctx, req.AreaID); err != nil {
		return nil, err
	}

	// Проверяем уникальность имени в пределах родителя
	exists, err := s.deptRepo.ExistsByNameAndParent(ctx, name, req.ParentID, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateDepartmentName
	}

	dept := &domain.Department{
		Name:     name,
		ParentID: req.ParentID,
		AreaID:   req.AreaID,
	}

	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return nil, err
	}

	return dept, nil
}

func (s *departmentService) GetByID(ctx context.Context, id int64, query *dto.GetDepartmentQuery) (*domain.Department, error) {
	return s.deptRepo.GetByIDWithChildren(ctx, id, query.Depth, query.IncludeEmployees)
}

func (s *departmentService) List(ctx context.Context) ([]domain.Department, error) {
	return s.deptRepo.List(ctx)
}

func (s *departmentService) Update(ctx context.Context, id int64, req *dto.UpdateDepartmentRequest) (*domain.Department, error) {
	dept, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	parentID := dept.ParentID
	if req.ParentID != nil {
		newParentID := *req.ParentID

		// Нельзя сделать подразделение родителем самого себя
		if newParentID == id {
			return nil, domain.ErrSelfReference
		}

		// Новый родитель не может быть потомком: поднимаемся от него к корню
		ancestors, err := s.deptRepo.AncestorIDs(ctx, newParentID)
		if err != nil && !errors.Is(err, domain.ErrCyclicReference) {
			return nil, err
		}
		if err != nil || containsID(ancestors, id) {
			return nil, domain.ErrCyclicReference
		}

		parentID = &newParentID
	}

	name := dept.Name
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}

	if req.Name != nil || req.ParentID != nil {
		exists, err := s.deptRepo.ExistsByNameAndParent(ctx, name, parentID, &id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateDepartmentName
		}
	}

	if req.AreaID != nil {
		if err := s.checkArea(ctx, req.AreaID); err != nil {
			return nil, err
		}
		dept.AreaID = req.AreaID
	}

	dept.Name = name
	dept.ParentID = parentID

	if err := s.deptRepo.Update(ctx, dept); err != nil {
		return nil, err
	}

	return dept, nil
}

// Delete удаляет подразделение; дочерние подразделения, должности и сотрудники
// сохраняются без ссылки на него
func (s *departmentService) Delete(ctx context.Context, id int64) error {
	return s.deptRepo.Delete(ctx, id)
}

func (s *departmentService) checkArea(ctx context.Context, areaID *int64) error {
	if areaID == nil {
		return nil
	}
	_, err := s.areaRepo.GetByID(ctx, *areaID)
	return err
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
