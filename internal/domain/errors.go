package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrAreaNotFound            = errors.New("area not found")
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrPositionNotFound        = errors.New("position not found")
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrProjectNotFound         = errors.New("project not found")
	ErrTeamNotFound            = errors.New("team not found")
	ErrTaskNotFound            = errors.New("task not found")
	ErrRecordNotFound          = errors.New("record not found")
	ErrDuplicateDepartmentName = errors.New("department with this name already exists in parent")
	ErrDuplicateAreaCode       = errors.New("area with this code already exists")
	ErrAreaCodeInUse           = errors.New("area code is referenced by projects and cannot change")
	ErrDuplicateUsername       = errors.New("employee with this username already exists")
	ErrDuplicateIDNumber       = errors.New("employee with this id number already exists")
	ErrDuplicateEmployeeNo     = errors.New("employee with this employee number already exists")
	ErrDuplicateEmployee       = errors.New("employee with these unique fields already exists")
	ErrDuplicateProjectCode    = errors.New("project with this code already exists")
	ErrSelfReference           = errors.New("entity cannot be its own parent")
	ErrCyclicReference         = errors.New("parent assignment would create a cycle")
	ErrProjectAreaRequired     = errors.New("project area is required to generate a code")
	ErrMalformedProjectCode    = errors.New("existing project code has a non-numeric sequence")
	ErrInvalidCredentials      = errors.New("invalid username or password")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrMissingUploadFile       = errors.New("upload file field is missing")
	ErrUnsupportedUploadKind   = errors.New("unsupported upload target")
)
