package dto

import (
	"time"
)

// CreateDepartmentRequest - запрос на создание подразделения
type CreateDepartmentRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	ParentID *int64 `json:"parent_id" validate:"omitempty,min=1"`
	AreaID   *int64 `json:"area_id" validate:"omitempty,min=1"`
}

// UpdateDepartmentRequest - запрос на обновление подразделения
type UpdateDepartmentRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	ParentID *int64  `json:"parent_id" validate:"omitempty,min=1"`
	AreaID   *int64  `json:"area_id" validate:"omitempty,min=1"`
}

// DepartmentResponse - ответ с данными подразделения
type DepartmentResponse struct {
	ID        int64                `json:"id"`
	Name      string               `json:"name"`
	ParentID  *int64               `json:"parent_id"`
	AreaID    *int64               `json:"area_id"`
	CreatedAt time.Time            `json:"created_at"`
	Employees []EmployeeSummary    `json:"employees,omitempty"`
	Children  []DepartmentResponse `json:"children,omitempty"`
}

// EmployeeSummary - сотрудник в составе подразделения
type EmployeeSummary struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	EmployeeNumber *string `json:"employee_number,omitempty"`
	PositionID     *int64  `json:"position_id"`
}

// GetDepartmentQuery - параметры запроса получения подразделения
type GetDepartmentQuery struct {
	Depth            int `validate:"min=0,max=5"`
	IncludeEmployees bool
}

// CreateAreaRequest - запрос на создание региона
type CreateAreaRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=50"`
	Code      string `json:"code" validate:"required,min=1,max=20,excludesall=- "`
	ManagerID *int64 `json:"manager_id" validate:"omitempty,min=1"`
}

// UpdateAreaRequest - запрос на обновление региона
type UpdateAreaRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=50"`
	Code      *string `json:"code" validate:"omitempty,min=1,max=20,excludesall=- "`
	ManagerID *int64  `json:"manager_id" validate:"omitempty,min=1"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
