package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/repository"
	"github.com/themis-api/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error)
	Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	BasicInfo(ctx context.Context, id int64) (*dto.BasicInfoResponse, error)
	WatchingProjectIDs(ctx context.Context, id int64) ([]int64, error)
	SetPassword(ctx context.Context, id int64, password string) error
}

type employeeService struct {
	empRepo     repository.EmployeeRepository
	projectRepo repository.ProjectRepository
	media       storage.URLResolver
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(
	empRepo repository.EmployeeRepository,
	projectRepo repository.ProjectRepository,
	media storage.URLResolver,
) EmployeeService {
	return &employeeService{
		empRepo:     empRepo,
		projectRepo: projectRepo,
		media:       media,
	}
}

// HashPassword возвращает bcrypt-хеш пароля
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	emp := &domain.Employee{
		Username: strings.TrimSpace(req.Username),
		Name:     strings.TrimSpace(req.Name),
		Phone:    req.Phone,
		Gender:   domain.GenderUndisclosed,
	}
	if err := applyEmployeeFields(emp, &req.EmployeeFields); err != nil {
		return nil, err
	}

	if req.Password != nil {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		emp.PasswordHash = hash
	}

	if err := s.checkUnique(ctx, emp, nil); err != nil {
		return nil, err
	}
	if err := s.checkProjects(ctx, req.WatchingProjectIDs); err != nil {
		return nil, err
	}

	if err := s.empRepo.Create(ctx, emp, req.WatchingProjectIDs); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	return s.empRepo.List(ctx, filter)
}

func (s *employeeService) Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	emp, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		emp.Username = strings.TrimSpace(*req.Username)
	}
	if req.Name != nil {
		emp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		emp.Phone = *req.Phone
	}
	if err := applyEmployeeFields(emp, &req.EmployeeFields); err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, emp, &id); err != nil {
		return nil, err
	}
	if err := s.checkProjects(ctx, req.WatchingProjectIDs); err != nil {
		return nil, err
	}

	if err := s.empRepo.Update(ctx, emp, req.WatchingProjectIDs); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	return s.empRepo.Delete(ctx, id)
}

func (s *employeeService) BasicInfo(ctx context.Context, id int64) (*dto.BasicInfoResponse, error) {
	emp, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := emp.PositionTitle()
	if title == "" {
		title = unknownPosition
	}

	return &dto.BasicInfoResponse{
		ID:        emp.ID,
		Name:      emp.Name,
		Avatar:    s.media.Absolute(emp.Avatar),
		Email:     emp.Email,
		Title:     title,
		Expertise: emp.Expertise,
	}, nil
}

func (s *employeeService) WatchingProjectIDs(ctx context.Context, id int64) ([]int64, error) {
	return s.empRepo.WatchingProjectIDs(ctx, id)
}

func (s *employeeService) SetPassword(ctx context.Context, id int64, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.empRepo.SetPassword(ctx, id, hash)
}

// checkUnique проверяет уникальные поля до записи, чтобы вернуть понятную ошибку
func (s *employeeService) checkUnique(ctx context.Context, emp *domain.Employee, excludeID *int64) error {
	exists, err := s.empRepo.ExistsByUsername(ctx, emp.Username, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateUsername
	}

	if emp.IDNumber != nil {
		exists, err := s.empRepo.ExistsByIDNumber(ctx, *emp.IDNumber, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateIDNumber
		}
	}

	if emp.EmployeeNumber != nil {
		exists, err := s.empRepo.ExistsByEmployeeNumber(ctx, *emp.EmployeeNumber, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateEmployeeNo
		}
	}

	return nil
}

func (s *employeeService) checkProjects(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := s.projectRepo.CountByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if count != int64(len(uniqueIDs(ids))) {
		return domain.ErrProjectNotFound
	}
	return nil
}

// applyEmployeeFields переносит переданные необязательные поля в сущность
func applyEmployeeFields(emp *domain.Employee, f *dto.EmployeeFields) error {
	if f.EmployeeNumber != nil {
		emp.EmployeeNumber = blankToNil(f.EmployeeNumber)
	}
	if f.Email != nil {
		emp.Email = *f.Email
	}
	if f.Gender != nil {
		emp.Gender = domain.Gender(*f.Gender)
	}
	if f.Status != nil {
		emp.Status = blankToNil(f.Status)
	}
	if f.Expertise != nil {
		emp.Expertise = *f.Expertise
	}
	if f.IDNumber != nil {
		emp.IDNumber = blankToNil(f.IDNumber)
	}
	if f.IDAddress != nil {
		emp.IDAddress = *f.IDAddress
	}
	if f.GraduatedFrom != nil {
		emp.GraduatedFrom = *f.GraduatedFrom
	}
	if f.DegreeID != nil {
		emp.DegreeID = f.DegreeID
	}
	if f.AreaID != nil {
		emp.AreaID = f.AreaID
	}
	if f.DepartmentID != nil {
		emp.DepartmentID = f.DepartmentID
	}
	if f.PositionID != nil {
		emp.PositionID = f.PositionID
		emp.Position = nil
	}
	if f.PositionLevelID != nil {
		emp.PositionLevelID = f.PositionLevelID
	}
	if f.Salary != nil {
		emp.Salary = f.Salary
	}
	if f.SalaryPlace != nil {
		emp.SalaryPlace = cityOf(f.SalaryPlace)
	}
	if f.WorkPlace != nil {
		emp.WorkPlace = cityOf(f.WorkPlace)
	}
	if f.ContractPlace != nil {
		emp.ContractPlace = cityOf(f.ContractPlace)
	}
	if f.InsurancePlace != nil {
		emp.InsurancePlace = cityOf(f.InsurancePlace)
	}
	if f.ContractRenewedTimes != nil {
		emp.ContractRenewedTimes = *f.ContractRenewedTimes
	}
	if f.BankNumber != nil {
		emp.BankNumber = *f.BankNumber
	}
	if f.BankAddress != nil {
		emp.BankAddress = *f.BankAddress
	}

	dates := []struct {
		field string
		in    *string
		out   **time.Time
	}{
		{"date_joined", f.DateJoined, &emp.DateJoined},
		{"contract_start_date", f.ContractStartDate, &emp.ContractStartDate},
		{"contract_end_date", f.ContractEndDate, &emp.ContractEndDate},
	}
	for _, d := range dates {
		if d.in == nil {
			continue
		}
		t, err := parseDate(d.in)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.field, err)
		}
		*d.out = t
	}

	return nil
}

func blankToNil(s *string) *string {
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func cityOf(s *string) *domain.City {
	if *s == "" {
		return nil
	}
	c := domain.City(*s)
	return &c
}

func uniqueIDs(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
