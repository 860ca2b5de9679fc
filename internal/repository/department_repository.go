package repository

import (
	"context"

	"github.com/themis-api/internal/domain"
	"gorm.io/gorm"
)

// DepartmentRepository определяет интерфейс для работы с подразделениями
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	GetByIDWithChildren(ctx context.Context, id int64, depth int, includeEmployees bool) (*domain.Department, error)
	GetOrCreate(ctx context.Context, name string, areaID *int64) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, id int64) error
	ExistsByNameAndParent(ctx context.Context, name string, parentID *int64, excludeID *int64) (bool, error)
	AncestorIDs(ctx context.Context, id int64) ([]int64, error)
}

var departmentRefs = []columnRef{
	{Table: "departments", Column: "parent_id"},
	{Table: "positions", Column: "department_id"},
	{Table: "employees", Column: "department_id"},
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository создаёт новый экземпляр репозитория
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	var dept domain.Department
	err := r.db.WithContext(ctx).First(&dept, id).Error
	if err != nil {
		return nil, notFound(err, domain.ErrDepartmentNotFound)
	}
	return &dept, nil
}

func (r *departmentRepository) GetByIDWithChildren(ctx context.Context, id int64, depth int, includeEmployees bool) (*domain.Department, error) {
	var dept domain.Department

	query := r.db.WithContext(ctx)

	if includeEmployees {
		query = query.Preload("Employees", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
	}

	err := query.First(&dept, id).Error
	if err != nil {
		return nil, notFound(err, domain.ErrDepartmentNotFound)
	}

	// Загружаем дочерние подразделения, не заходя повторно в уже посещённые
	visited := map[int64]bool{dept.ID: true}
	if depth > 0 {
		if err := r.loadChildren(ctx, &dept, depth, includeEmployees, visited); err != nil {
			return nil, err
		}
	}

	return &dept, nil
}

func (r *departmentRepository) loadChildren(ctx context.Context, dept *domain.Department, depth int, includeEmployees bool, visited map[int64]bool) error {
	if depth <= 0 {
		return nil
	}

	query := r.db.WithContext(ctx).Where("parent_id = ?", dept.ID).Order("id ASC")

	if includeEmployees {
		query = query.Preload("Employees", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
	}

	var children []domain.Department
	if err := query.Find(&children).Error; err != nil {
		return err
	}

	kept := children[:0]
	for i := range children {
		if visited[children[i].ID] {
			continue
		}
		visited[children[i].ID] = true
		if err := r.loadChildren(ctx, &children[i], depth-1, includeEmployees, visited); err != nil {
			return err
		}
		kept = append(kept, children[i])
	}

	dept.Children = kept
	return nil
}

func (r *departmentRepository) GetOrCreate(ctx context.Context, name string, areaID *int64) (*domain.Department, error) {
	dept := domain.Department{Name: name, AreaID: areaID}
	query := r.db.WithContext(ctx).Where("name = ?", name)
	if areaID != nil {
		query = query.Where("area_id = ?", *areaID)
	} else {
		query = query.Where("area_id IS NULL")
	}
	if err := query.FirstOrCreate(&dept).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	err := r.db.WithContext(ctx).Order("id ASC").Find(&departments).Error
	return departments, err
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	return r.db.WithContext(ctx).Omit("Parent", "Area", "Children", "Employees").Save(dept).Error
}

// Delete удаляет подразделение; дочерние подразделения, должности и сотрудники
// остаются, ссылка на подразделение обнуляется
func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearRefs(tx, departmentRefs, id); err != nil {
			return err
		}
		result := tx.Delete(&domain.Department{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrDepartmentNotFound
		}
		return nil
	})
}

func (r *departmentRepository) ExistsByNameAndParent(ctx context.Context, name string, parentID *int64, excludeID *int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Department{}).Where("name = ?", name)

	if parentID != nil {
		query = query.Where("parent_id = ?", *parentID)
	} else {
		query = query.Where("parent_id IS NULL")
	}

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	err := query.Count(&count).Error
	return count > 0, err
}

// AncestorIDs поднимается по parent_id от id к корню и возвращает цепочку предков.
// Если цепочка замыкается, возвращается ErrCyclicReference
func (r *departmentRepository) AncestorIDs(ctx context.Context, id int64) ([]int64, error) {
	var result []int64
	visited := map[int64]bool{id: true}
	current := id

	for {
		var dept domain.Department
		err := r.db.WithContext(ctx).Select("id", "parent_id").First(&dept, current).Error
		if err != nil {
			return nil, notFound(err, domain.ErrDepartmentNotFound)
		}
		if dept.ParentID == nil {
			return result, nil
		}
		parent := *dept.ParentID
		if visited[parent] {
			return result, domain.ErrCyclicReference
		}
		visited[parent] = true
		result = append(result, parent)
		current = parent
	}
}
