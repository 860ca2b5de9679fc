package repository

import (
	"context"

	"github.com/themis-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository - репозиторий справочников: должности, грейды, образование,
// типы и этапы проектов, заказчики
type CatalogRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
	FirstOrCreate(ctx context.Context, attrs T) (*T, error)
}

type catalogRepository[T any] struct {
	db   *gorm.DB
	refs []columnRef
}

func newCatalogRepository[T any](db *gorm.DB, refs ...columnRef) CatalogRepository[T] {
	return &catalogRepository[T]{db: db, refs: refs}
}

func NewPositionRepository(db *gorm.DB) CatalogRepository[domain.Position] {
	return newCatalogRepository[domain.Position](db, columnRef{Table: "employees", Column: "position_id"})
}

func NewPositionLevelRepository(db *gorm.DB) CatalogRepository[domain.PositionLevel] {
	return newCatalogRepository[domain.PositionLevel](db, columnRef{Table: "employees", Column: "position_level_id"})
}

func NewDegreeRepository(db *gorm.DB) CatalogRepository[domain.Degree] {
	return newCatalogRepository[domain.Degree](db, columnRef{Table: "employees", Column: "degree_id"})
}

func NewProjectTypeRepository(db *gorm.DB) CatalogRepository[domain.ProjectType] {
	return newCatalogRepository[domain.ProjectType](db, columnRef{Table: "projects", Column: "type_id"})
}

func NewProjectStatusRepository(db *gorm.DB) CatalogRepository[domain.ProjectStatus] {
	return newCatalogRepository[domain.ProjectStatus](db, columnRef{Table: "projects", Column: "status_id"})
}

func NewCustomerRepository(db *gorm.DB) CatalogRepository[domain.Customer] {
	return newCatalogRepository[domain.Customer](db, columnRef{Table: "projects", Column: "customer_id"})
}

func (r *catalogRepository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *catalogRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err, domain.ErrRecordNotFound)
	}
	return &item, nil
}

func (r *catalogRepository[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *catalogRepository[T]) Update(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

func (r *catalogRepository[T]) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearRefs(tx, r.refs, id); err != nil {
			return err
		}
		result := tx.Delete(new(T), id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrRecordNotFound
		}
		return nil
	})
}

// FirstOrCreate находит запись по ненулевым полям attrs или создаёт её
func (r *catalogRepository[T]) FirstOrCreate(ctx context.Context, attrs T) (*T, error) {
	item := attrs
	if err := r.db.WithContext(ctx).Where(&attrs).FirstOrCreate(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
