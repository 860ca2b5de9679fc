package dto

import "time"

// CreateTaskRequest - запрос на создание задачи
type CreateTaskRequest struct {
	Title         string     `json:"title" validate:"required,min=1,max=200"`
	Status        *string    `json:"status" validate:"omitempty,oneof=todo in-progress paused cancelled delayed completed"`
	Priority      *string    `json:"priority" validate:"omitempty,oneof=0 1 2 3"`
	ProjectID     int64      `json:"project_id" validate:"required,min=1"`
	DRIID         *int64     `json:"dri_id" validate:"omitempty,min=1"`
	AllocatorID   *int64     `json:"allocator_id" validate:"omitempty,min=1"`
	ParentTaskID  *int64     `json:"parent_task_id" validate:"omitempty,min=1"`
	Deadline      *time.Time `json:"deadline"`
	CompletedTime *time.Time `json:"completed_time"`
	Tag           *string    `json:"tag" validate:"omitempty,max=50"`
	Description   *string    `json:"description" validate:"omitempty,max=2000"`
}

// UpdateTaskRequest - частичное обновление задачи
type UpdateTaskRequest struct {
	Title         *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Status        *string    `json:"status" validate:"omitempty,oneof=todo in-progress paused cancelled delayed completed"`
	Priority      *string    `json:"priority" validate:"omitempty,oneof=0 1 2 3"`
	DRIID         *int64     `json:"dri_id" validate:"omitempty,min=1"`
	AllocatorID   *int64     `json:"allocator_id" validate:"omitempty,min=1"`
	ParentTaskID  *int64     `json:"parent_task_id" validate:"omitempty,min=1"`
	Deadline      *time.Time `json:"deadline"`
	CompletedTime *time.Time `json:"completed_time"`
	Tag           *string    `json:"tag" validate:"omitempty,max=50"`
	Description   *string    `json:"description" validate:"omitempty,max=2000"`
}
