package repository

import (
	"context"

	"github.com/themis-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
	ParentOf(ctx context.Context, id int64) (*int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository создаёт новый экземпляр репозитория
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, notFound(err, domain.ErrTaskNotFound)
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).Order("id ASC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

// Delete удаляет задачу; подзадачи сохраняются без родителя
func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearRefs(tx, []columnRef{{Table: "tasks", Column: "parent_task_id"}}, id); err != nil {
			return err
		}
		result := tx.Delete(&domain.Task{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrTaskNotFound
		}
		return nil
	})
}

func (r *taskRepository) ParentOf(ctx context.Context, id int64) (*int64, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).Select("id", "parent_task_id").First(&task, id).Error
	if err != nil {
		return nil, notFound(err, domain.ErrTaskNotFound)
	}
	return task.ParentTaskID, nil
}
