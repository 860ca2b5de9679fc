package repository

import (
	"context"

	"github.com/themis-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployeeFilter - фильтры списка сотрудников
type EmployeeFilter struct {
	AreaID       *int64
	DepartmentID *int64
	PositionID   *int64
}

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee, watchingProjectIDs []int64) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByUsername(ctx context.Context, username string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
	CountByIDs(ctx context.Context, ids []int64) (int64, error)
	Update(ctx context.Context, emp *domain.Employee, watchingProjectIDs []int64) error
	WatchingProjectIDs(ctx context.Context, id int64) ([]int64, error)
	UpdateAvatar(ctx context.Context, id int64, key string) error
	SetPassword(ctx context.Context, id int64, hash string) error
	Delete(ctx context.Context, id int64) error
	ExistsByUsername(ctx context.Context, username string, excludeID *int64) (bool, error)
	ExistsByIDNumber(ctx context.Context, idNumber string, excludeID *int64) (bool, error)
	ExistsByEmployeeNumber(ctx context.Context, number string, excludeID *int64) (bool, error)
}

const watchingTable = "employee_watching_projects"

var employeeRefs = []columnRef{
	{Table: "areas", Column: "manager_id"},
	{Table: "teams", Column: "project_director_id"},
	{Table: "teams", Column: "algorithm_leader_id"},
	{Table: "teams", Column: "vision_leader_id"},
	{Table: "teams", Column: "mechanic_leader_id"},
	{Table: "teams", Column: "ee_leader_id"},
	{Table: "teams", Column: "project_manager_id"},
	{Table: "teams", Column: "business_manager_id"},
	{Table: "tasks", Column: "dri_id"},
	{Table: "tasks", Column: "allocator_id"},
}

var employeeLinks = []columnRef{
	{Table: "team_algorithm_members", Column: "employee_id"},
	{Table: "team_vision_members", Column: "employee_id"},
	{Table: "team_mechanic_members", Column: "employee_id"},
	{Table: "team_ee_members", Column: "employee_id"},
	{Table: "team_maintenance_members", Column: "employee_id"},
	{Table: watchingTable, Column: "employee_id"},
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee, watchingProjectIDs []int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(emp).Error; err != nil {
			return err
		}
		return replaceLinks(tx, watchingTable, "employee_id", emp.ID, "project_id", watchingProjectIDs)
	})
	return duplicate(err, domain.ErrDuplicateEmployee)
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).Preload("Position").First(&emp, id).Error
	if err != nil {
		return nil, notFound(err, domain.ErrEmployeeNotFound)
	}
	return &emp, nil
}

func (r *employeeRepository) GetByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).Preload("Position").Where("username = ?", username).First(&emp).Error
	if err != nil {
		return nil, notFound(err, domain.ErrEmployeeNotFound)
	}
	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error) {
	query := r.db.WithContext(ctx).Model(&domain.Employee{})
	if filter.AreaID != nil {
		query = query.Where("area_id = ?", *filter.AreaID)
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.PositionID != nil {
		query = query.Where("position_id = ?", *filter.PositionID)
	}

	var employees []domain.Employee
	err := query.Order("id ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Employee{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// Update сохраняет поля сотрудника; nil watchingProjectIDs оставляет связи без изменений
func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee, watchingProjectIDs []int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(emp).Error; err != nil {
			return err
		}
		if watchingProjectIDs == nil {
			return nil
		}
		return replaceLinks(tx, watchingTable, "employee_id", emp.ID, "project_id", watchingProjectIDs)
	})
	return duplicate(err, domain.ErrDuplicateEmployee)
}

func (r *employeeRepository) WatchingProjectIDs(ctx context.Context, id int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Table(watchingTable).
		Where("employee_id = ?", id).
		Order("project_id ASC").
		Pluck("project_id", &ids).Error
	return ids, err
}

func (r *employeeRepository) UpdateAvatar(ctx context.Context, id int64, key string) error {
	return r.updateColumn(ctx, id, "avatar", key)
}

func (r *employeeRepository) SetPassword(ctx context.Context, id int64, hash string) error {
	return r.updateColumn(ctx, id, "password", hash)
}

func (r *employeeRepository) updateColumn(ctx context.Context, id int64, column string, value any) error {
	result := r.db.WithContext(ctx).Model(&domain.Employee{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// Delete удаляет сотрудника. Ссылки на него обнуляются, членство в командах
// и подписки на проекты удаляются
func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearRefs(tx, employeeRefs, id); err != nil {
			return err
		}
		if err := dropLinks(tx, employeeLinks, id); err != nil {
			return err
		}
		result := tx.Delete(&domain.Employee{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrEmployeeNotFound
		}
		return nil
	})
}

func (r *employeeRepository) ExistsByUsername(ctx context.Context, username string, excludeID *int64) (bool, error) {
	return r.existsBy(ctx, "username", username, excludeID)
}

func (r *employeeRepository) ExistsByIDNumber(ctx context.Context, idNumber string, excludeID *int64) (bool, error) {
	return r.existsBy(ctx, "id_number", idNumber, excludeID)
}

func (r *employeeRepository) ExistsByEmployeeNumber(ctx context.Context, number string, excludeID *int64) (bool, error) {
	return r.existsBy(ctx, "employee_number", number, excludeID)
}

func (r *employeeRepository) existsBy(ctx context.Context, column, value string, excludeID *int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Employee{}).Where(column+" = ?", value)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
