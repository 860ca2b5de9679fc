package repository

import (
	"context"

	"github.com/themis-api/internal/domain"
	"gorm.io/gorm"
)

// AreaRepository определяет интерфейс для работы с регионами
type AreaRepository interface {
	Create(ctx context.Context, area *domain.Area) error
	GetByID(ctx context.Context, id int64) (*domain.Area, error)
	GetByName(ctx context.Context, name string) (*domain.Area, error)
	List(ctx context.Context) ([]domain.Area, error)
	Update(ctx context.Context, area *domain.Area) error
	Delete(ctx context.Context, id int64) error
	ExistsByCode(ctx context.Context, code string, excludeID *int64) (bool, error)
	HasProjects(ctx context.Context, id int64) (bool, error)
}

var areaRefs = []columnRef{
	{Table: "departments", Column: "area_id"},
	{Table: "employees", Column: "area_id"},
	{Table: "projects", Column: "area_id"},
}

type areaRepository struct {
	db *gorm.DB
}

// NewAreaRepository создаёт новый экземпляр репозитория
func NewAreaRepository(db *gorm.DB) AreaRepository {
	return &areaRepository{db: db}
}

func (r *areaRepository) Create(ctx context.Context, area *domain.Area) error {
	err := r.db.WithContext(ctx).Create(area).Error
	return duplicate(err, domain.ErrDuplicateAreaCode)
}

func (r *areaRepository) GetByID(ctx context.Context, id int64) (*domain.Area, error) {
	var area domain.Area
	if err := r.db.WithContext(ctx).First(&area, id).Error; err != nil {
		return nil, notFound(err, domain.ErrAreaNotFound)
	}
	return &area, nil
}

func (r *areaRepository) GetByName(ctx context.Context, name string) (*domain.Area, error) {
	var area domain.Area
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&area).Error; err != nil {
		return nil, notFound(err, domain.ErrAreaNotFound)
	}
	return &area, nil
}

func (r *areaRepository) List(ctx context.Context) ([]domain.Area, error) {
	var areas []domain.Area
	err := r.db.WithContext(ctx).Order("id ASC").Find(&areas).Error
	return areas, err
}

func (r *areaRepository) Update(ctx context.Context, area *domain.Area) error {
	err := r.db.WithContext(ctx).Omit("Manager").Save(area).Error
	return duplicate(err, domain.ErrDuplicateAreaCode)
}

func (r *areaRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearRefs(tx, areaRefs, id); err != nil {
			return err
		}
		result := tx.Delete(&domain.Area{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrAreaNotFound
		}
		return nil
	})
}

func (r *areaRepository) ExistsByCode(ctx context.Context, code string, excludeID *int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Area{}).Where("code = ?", code)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *areaRepository) HasProjects(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).Where("area_id = ?", id).Count(&count).Error
	return count > 0, err
}
