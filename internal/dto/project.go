package dto

import (
	"time"

	"github.com/themis-api/internal/domain"
)

// CreateProjectRequest - запрос на создание проекта. Code обычно не передаётся и
// вычисляется по региону и дате начала
type CreateProjectRequest struct {
	Code              *string `json:"code" validate:"omitempty,max=50,project_code"`
	Name              string  `json:"name" validate:"required,min=1,max=200"`
	AreaID            *int64  `json:"area_id" validate:"omitempty,min=1"`
	TypeID            *int64  `json:"type_id" validate:"omitempty,min=1"`
	StatusID          *int64  `json:"status_id" validate:"omitempty,min=1"`
	CustomerID        *int64  `json:"customer_id" validate:"omitempty,min=1"`
	TeamID            *int64  `json:"team_id" validate:"omitempty,min=1"`
	InitiationDate    *string `json:"initiation_date" validate:"omitempty,datetime=2006-01-02"`
	CompletionDateEst *string `json:"completion_date_est" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateProjectRequest - запрос на обновление проекта; код не меняется
type UpdateProjectRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=200"`
	AreaID            *int64  `json:"area_id" validate:"omitempty,min=1"`
	TypeID            *int64  `json:"type_id" validate:"omitempty,min=1"`
	StatusID          *int64  `json:"status_id" validate:"omitempty,min=1"`
	CustomerID        *int64  `json:"customer_id" validate:"omitempty,min=1"`
	TeamID            *int64  `json:"team_id" validate:"omitempty,min=1"`
	InitiationDate    *string `json:"initiation_date" validate:"omitempty,datetime=2006-01-02"`
	CompletionDateEst *string `json:"completion_date_est" validate:"omitempty,datetime=2006-01-02"`
}

// ProjectResponse - ответ с данными проекта
type ProjectResponse struct {
	ID                int64     `json:"id"`
	Code              string    `json:"code"`
	Snapshot          string    `json:"snapshot"`
	Name              string    `json:"name"`
	AreaID            *int64    `json:"area_id"`
	TypeID            *int64    `json:"type_id"`
	StatusID          *int64    `json:"status_id"`
	CustomerID        *int64    `json:"customer_id"`
	TeamID            *int64    `json:"team_id"`
	InitiationDate    *string   `json:"initiation_date"`
	CompletionDateEst *string   `json:"completion_date_est"`
	CreatedAt         time.Time `json:"created_at"`
}

// ProjectDetailResponse - проект со справочниками и деревом команды
type ProjectDetailResponse struct {
	ID                int64                 `json:"id"`
	Code              string                `json:"code"`
	Snapshot          string                `json:"snapshot"`
	Name              string                `json:"name"`
	Area              *domain.Area          `json:"area"`
	ProjectType       *domain.ProjectType   `json:"project_type"`
	ProjectStatus     *domain.ProjectStatus `json:"project_status"`
	Customer          *domain.Customer      `json:"customer"`
	InitiationDate    *string               `json:"initiation_date"`
	CompletionDateEst *string               `json:"completion_date_est"`
	Team              *TeamNode             `json:"team"`
}
