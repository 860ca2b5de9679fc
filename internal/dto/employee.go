package dto

import "time"

// EmployeeFields - необязательные поля сотрудника, общие для создания и обновления
type EmployeeFields struct {
	EmployeeNumber       *string  `json:"employee_number" validate:"omitempty,max=20"`
	Email                *string  `json:"email" validate:"omitempty,email,max=254"`
	Gender               *string  `json:"gender" validate:"omitempty,oneof=男 女 未知"`
	Status               *string  `json:"status" validate:"omitempty,oneof=正式 试用期"`
	Expertise            *string  `json:"expertise" validate:"omitempty,max=300"`
	IDNumber             *string  `json:"id_number" validate:"omitempty,max=18"`
	IDAddress            *string  `json:"id_address" validate:"omitempty,max=200"`
	GraduatedFrom        *string  `json:"graduated_from" validate:"omitempty,max=30"`
	DegreeID             *int64   `json:"degree_id" validate:"omitempty,min=1"`
	AreaID               *int64   `json:"area_id" validate:"omitempty,min=1"`
	DepartmentID         *int64   `json:"department_id" validate:"omitempty,min=1"`
	PositionID           *int64   `json:"position_id" validate:"omitempty,min=1"`
	PositionLevelID      *int64   `json:"position_level_id" validate:"omitempty,min=1"`
	DateJoined           *string  `json:"date_joined" validate:"omitempty,datetime=2006-01-02"`
	Salary               *float64 `json:"salary" validate:"omitempty,min=0"`
	SalaryPlace          *string  `json:"salary_place" validate:"omitempty,city"`
	WorkPlace            *string  `json:"work_place" validate:"omitempty,city"`
	ContractPlace        *string  `json:"contract_place" validate:"omitempty,city"`
	InsurancePlace       *string  `json:"insurance_place" validate:"omitempty,city"`
	ContractRenewedTimes *int16   `json:"contract_renewed_times" validate:"omitempty,min=0"`
	ContractStartDate    *string  `json:"contract_start_date" validate:"omitempty,datetime=2006-01-02"`
	ContractEndDate      *string  `json:"contract_end_date" validate:"omitempty,datetime=2006-01-02"`
	BankNumber           *string  `json:"bank_number" validate:"omitempty,max=30"`
	BankAddress          *string  `json:"bank_address" validate:"omitempty,max=40"`
	WatchingProjectIDs   []int64  `json:"watching_projects" validate:"omitempty,dive,min=1"`
}

// CreateEmployeeRequest - запрос на создание сотрудника
type CreateEmployeeRequest struct {
	Username string  `json:"username" validate:"required,min=1,max=150"`
	Password *string `json:"password" validate:"omitempty,min=6,max=128"`
	Name     string  `json:"name" validate:"required,min=1,max=30"`
	Phone    string  `json:"phone" validate:"required,phone"`
	EmployeeFields
}

// UpdateEmployeeRequest - запрос на обновление сотрудника (PUT и PATCH)
type UpdateEmployeeRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=150"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=30"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
	EmployeeFields
}

// SetPasswordRequest - запрос на смену пароля
type SetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID                   int64     `json:"id"`
	Username             string    `json:"username"`
	Name                 string    `json:"name"`
	EmployeeNumber       *string   `json:"employee_number"`
	Email                string    `json:"email"`
	Phone                string    `json:"phone"`
	Gender               string    `json:"gender"`
	Status               *string   `json:"status"`
	Expertise            string    `json:"expertise"`
	Avatar               string    `json:"avatar"`
	IDNumber             *string   `json:"id_number"`
	IDAddress            string    `json:"id_address"`
	GraduatedFrom        string    `json:"graduated_from"`
	DegreeID             *int64    `json:"degree_id"`
	AreaID               *int64    `json:"area_id"`
	DepartmentID         *int64    `json:"department_id"`
	PositionID           *int64    `json:"position_id"`
	PositionLevelID      *int64    `json:"position_level_id"`
	DateJoined           *string   `json:"date_joined"`
	Salary               *float64  `json:"salary"`
	SalaryPlace          *string   `json:"salary_place"`
	WorkPlace            *string   `json:"work_place"`
	ContractPlace        *string   `json:"contract_place"`
	InsurancePlace       *string   `json:"insurance_place"`
	ContractRenewedTimes int16     `json:"contract_renewed_times"`
	ContractStartDate    *string   `json:"contract_start_date"`
	ContractEndDate      *string   `json:"contract_end_date"`
	BankNumber           string    `json:"bank_number"`
	BankAddress          string    `json:"bank_address"`
	IsStaff              bool      `json:"is_staff"`
	IsSuperuser          bool      `json:"is_superuser"`
	WatchingProjectIDs   []int64   `json:"watching_projects,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// BasicInfoResponse - сокращённая карточка сотрудника
type BasicInfoResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Email     string `json:"email"`
	Title     string `json:"title"`
	Expertise string `json:"expertise"`
}
