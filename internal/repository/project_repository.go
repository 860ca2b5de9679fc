package repository

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/themis-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CodeFunc вычисляет код проекта по последнему проекту той же группы (регион, дата начала).
// last равен nil, если в группе ещё нет проектов
type CodeFunc func(last *domain.Project) (string, error)

// ProjectRepository определяет интерфейс для работы с проектами
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project, assign CodeFunc) error
	Update(ctx context.Context, project *domain.Project, assign CodeFunc) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	GetDetail(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	CountByIDs(ctx context.Context, ids []int64) (int64, error)
	UpdateSnapshot(ctx context.Context, id int64, key string) error
	Delete(ctx context.Context, id int64) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository создаёт новый экземпляр репозитория
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create сохраняет проект. Если код не задан, он вычисляется внутри той же транзакции
// под блокировкой группы (регион, дата начала)
func (r *projectRepository) Create(ctx context.Context, project *domain.Project, assign CodeFunc) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.assignCode(tx, project, assign); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(project).Error
	})
	return duplicate(err, domain.ErrDuplicateProjectCode)
}

// Update сохраняет проект. Непустой код не пересчитывается
func (r *projectRepository) Update(ctx context.Context, project *domain.Project, assign CodeFunc) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.assignCode(tx, project, assign); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(project).Error
	})
	return duplicate(err, domain.ErrDuplicateProjectCode)
}

func (r *projectRepository) assignCode(tx *gorm.DB, project *domain.Project, assign CodeFunc) error {
	if project.Code != "" {
		return nil
	}
	if project.AreaID == nil {
		return domain.ErrProjectAreaRequired
	}
	if assign == nil {
		return errors.New("project code generator is not configured")
	}

	if err := lockCodeGroup(tx, *project.AreaID, project.InitiationDate); err != nil {
		return fmt.Errorf("lock code sequence: %w", err)
	}

	query := tx.Where("area_id = ?", *project.AreaID)
	if project.InitiationDate != nil {
		query = query.Where("initiation_date = ?", *project.InitiationDate)
	} else {
		query = query.Where("initiation_date IS NULL")
	}
	if project.ID != 0 {
		query = query.Where("id != ?", project.ID)
	}

	var last []domain.Project
	if err := query.Order("id DESC").Limit(1).Find(&last).Error; err != nil {
		return err
	}

	var prev *domain.Project
	if len(last) > 0 {
		prev = &last[0]
	}

	code, err := assign(prev)
	if err != nil {
		return err
	}
	project.Code = code
	return nil
}

// lockCodeGroup сериализует выдачу кодов внутри группы (регион, дата).
// В PostgreSQL используется транзакционная advisory-блокировка; SQLite
// и так допускает только одну пишущую транзакцию
func lockCodeGroup(tx *gorm.DB, areaID int64, date *time.Time) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	day := "none"
	if date != nil {
		day = date.Format("20060102")
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "project_code:%d:%s", areaID, day)
	return tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(h.Sum64())).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, notFound(err, domain.ErrProjectNotFound)
	}
	return &project, nil
}

// GetDetail загружает проект вместе со справочниками и полным составом команды
func (r *projectRepository) GetDetail(ctx context.Context, id int64) (*domain.Project, error) {
	query := r.db.WithContext(ctx).
		Preload("Area").
		Preload("Type").
		Preload("Status").
		Preload("Customer")
	query = preloadTeam(query, "Team.")

	var project domain.Project
	if err := query.First(&project, id).Error; err != nil {
		return nil, notFound(err, domain.ErrProjectNotFound)
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).Order("id ASC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) CountByIDs(ctx context.Context, ids []int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *projectRepository) UpdateSnapshot(ctx context.Context, id int64, key string) error {
	result := r.db.WithContext(ctx).Model(&domain.Project{}).Where("id = ?", id).Update("snapshot", key)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Delete удаляет проект вместе с его задачами
func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projectTasks := tx.Model(&domain.Task{}).Select("id").Where("project_id = ?", id)
		err := tx.Model(&domain.Task{}).
			Where("parent_task_id IN (?) AND project_id != ?", projectTasks, id).
			Update("parent_task_id", gorm.Expr("NULL")).Error
		if err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&domain.Task{}).Error; err != nil {
			return err
		}
		if err := dropLinks(tx, []columnRef{{Table: watchingTable, Column: "project_id"}}, id); err != nil {
			return err
		}
		result := tx.Delete(&domain.Project{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrProjectNotFound
		}
		return nil
	})
}
