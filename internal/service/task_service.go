package service

import (
	"context"
	"strings"
	"time"

	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/repository"
)

// TaskService определяет интерфейс бизнес-логики для задач
type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest) (*domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTaskRequest) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

type taskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	empRepo     repository.EmployeeRepository
	now         func() time.Time
}

// NewTaskService создаёт новый экземпляр сервиса
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	empRepo repository.EmployeeRepository,
) TaskService {
	return &taskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		empRepo:     empRepo,
		now:         time.Now,
	}
}

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest) (*domain.Task, error) {
	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:     strings.TrimSpace(req.Title),
		Status:    domain.TaskTodo,
		Priority:  domain.PriorityNormal,
		ProjectID: req.ProjectID,
	}
	if req.Status != nil {
		task.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.Tag != nil {
		task.Tag = *req.Tag
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	task.Deadline = req.Deadline
	task.CompletedTime = req.CompletedTime

	if err := s.assignPeople(ctx, task, req.DRIID, req.AllocatorID); err != nil {
		return nil, err
	}
	if req.ParentTaskID != nil {
		if _, err := s.taskRepo.GetByID(ctx, *req.ParentTaskID); err != nil {
			return nil, err
		}
		task.ParentTaskID = req.ParentTaskID
	}

	s.stampCompletion(task)

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return s.taskRepo.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.taskRepo.List(ctx)
}

func (s *taskService) ListByProject(ctx context.Context, projectID int64) ([]domain.Task, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListByProject(ctx, projectID)
}

func (s *taskService) Update(ctx context.Context, id int64, req *dto.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Status != nil {
		task.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.Tag != nil {
		task.Tag = *req.Tag
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}
	if req.CompletedTime != nil {
		task.CompletedTime = req.CompletedTime
	}

	if err := s.assignPeople(ctx, task, req.DRIID, req.AllocatorID); err != nil {
		return nil, err
	}

	if req.ParentTaskID != nil {
		if err := s.checkParent(ctx, id, *req.ParentTaskID); err != nil {
			return nil, err
		}
		task.ParentTaskID = req.ParentTaskID
	}

	s.stampCompletion(task)

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	return s.taskRepo.Delete(ctx, id)
}

func (s *taskService) assignPeople(ctx context.Context, task *domain.Task, driID, allocatorID *int64) error {
	if driID != nil {
		if _, err := s.empRepo.GetByID(ctx, *driID); err != nil {
			return err
		}
		task.DRIID = driID
	}
	if allocatorID != nil {
		if _, err := s.empRepo.GetByID(ctx, *allocatorID); err != nil {
			return err
		}
		task.AllocatorID = allocatorID
	}
	return nil
}

// checkParent поднимается от нового родителя к корню; встретив саму задачу
// или уже пройденную вершину, возвращает ErrCyclicReference
func (s *taskService) checkParent(ctx context.Context, id, parentID int64) error {
	if parentID == id {
		return domain.ErrSelfReference
	}

	visited := map[int64]bool{}
	current := &parentID
	for current != nil {
		if *current == id || visited[*current] {
			return domain.ErrCyclicReference
		}
		visited[*current] = true

		next, err := s.taskRepo.ParentOf(ctx, *current)
		if err != nil {
			return err
		}
		current = next
	}
	return nil
}

func (s *taskService) stampCompletion(task *domain.Task) {
	if task.Status == domain.TaskCompleted && task.CompletedTime == nil {
		now := s.now()
		task.CompletedTime = &now
	}
}
