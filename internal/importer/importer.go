// Package importer загружает сотрудников и проекты из выгрузок Excel
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/repository"
	"github.com/themis-api/internal/service"
)

// RowError - ошибка импорта конкретной строки (нумерация как в Excel, заголовок - строка 1)
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// Report - итог импорта
type Report struct {
	Created int
	Skipped int
	Failed  []RowError
}

// Catalogs - справочники, которые импорт дополняет по мере необходимости
type Catalogs struct {
	Areas        repository.AreaRepository
	Departments  repository.DepartmentRepository
	Positions    repository.CatalogRepository[domain.Position]
	Degrees      repository.CatalogRepository[domain.Degree]
	ProjectTypes repository.CatalogRepository[domain.ProjectType]
	Statuses     repository.CatalogRepository[domain.ProjectStatus]
	Customers    repository.CatalogRepository[domain.Customer]
}

// Importer создаёт записи через сервисы, поэтому проверки и генерация кодов
// работают так же, как в API
type Importer struct {
	catalogs  Catalogs
	employees service.EmployeeService
	projects  service.ProjectService
	empRepo   repository.EmployeeRepository
	validator *validator.Validate
	logger    *slog.Logger
}

// New создаёт импортёр
func New(
	catalogs Catalogs,
	employees service.EmployeeService,
	projects service.ProjectService,
	empRepo repository.EmployeeRepository,
	v *validator.Validate,
	logger *slog.Logger,
) *Importer {
	return &Importer{
		catalogs:  catalogs,
		employees: employees,
		projects:  projects,
		empRepo:   empRepo,
		validator: v,
		logger:    logger,
	}
}

// ImportEmployees читает лист сотрудников. Строки без подразделения пропускаются
func (im *Importer) ImportEmployees(ctx context.Context, r io.Reader) (*Report, error) {
	rows, err := ReadSheet(r)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for i, row := range rows {
		if row.Get("department") == "" {
			report.Skipped++
			continue
		}
		emp, err := im.importEmployee(ctx, row)
		if err != nil {
			report.Failed = append(report.Failed, RowError{Row: i + 2, Err: err})
			im.logger.Warn("employee row rejected", "row", i+2, "error", err)
			continue
		}
		report.Created++
		im.logger.Info("employee imported", "id", emp.ID, "username", emp.Username)
	}
	return report, nil
}

func (im *Importer) importEmployee(ctx context.Context, row Row) (*domain.Employee, error) {
	req := &dto.CreateEmployeeRequest{
		Username: employeeUsername(row),
		Name:     row.Get("name"),
		Phone:    row.Get("phone"),
		EmployeeFields: dto.EmployeeFields{
			EmployeeNumber: row.Ptr("employee_number"),
			Email:          row.Ptr("email"),
			Status:         row.Ptr("status"),
			Expertise:      row.Ptr("expertise"),
			IDNumber:       row.Ptr("id_number"),
			IDAddress:      row.Ptr("id_address"),
			GraduatedFrom:  row.Ptr("graduated_from"),
			SalaryPlace:    row.Ptr("salary_place"),
			WorkPlace:      row.Ptr("work_place"),
			ContractPlace:  row.Ptr("contract_place"),
			InsurancePlace: row.Ptr("insurance_place"),
			BankNumber:     row.Ptr("bank_number"),
			BankAddress:    row.Ptr("bank_address"),
		},
	}

	gender := string(domain.GenderUndisclosed)
	switch row.Get("gender") {
	case string(domain.GenderMale):
		gender = string(domain.GenderMale)
	case string(domain.GenderFemale):
		gender = string(domain.GenderFemale)
	}
	req.Gender = &gender

	var err error
	if req.DateJoined, err = row.Date("date_joined"); err != nil {
		return nil, err
	}
	if req.ContractStartDate, err = row.Date("contract_start_date"); err != nil {
		return nil, err
	}
	if req.ContractEndDate, err = row.Date("contract_end_date"); err != nil {
		return nil, err
	}
	if v := row.Get("contract_renewed_times"); v != "" {
		n, err := strconv.ParseInt(v, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("column contract_renewed_times: %w", err)
		}
		times := int16(n)
		req.ContractRenewedTimes = &times
	}

	if name := row.Get("area"); name != "" {
		area, err := im.area(ctx, name, row.Get("area_code"))
		if err != nil {
			return nil, err
		}
		req.AreaID = &area.ID
	}

	dept, err := im.catalogs.Departments.GetOrCreate(ctx, row.Get("department"), req.AreaID)
	if err != nil {
		return nil, fmt.Errorf("department: %w", err)
	}
	req.DepartmentID = &dept.ID

	if title := row.Get("title"); title != "" {
		pos, err := im.catalogs.Positions.FirstOrCreate(ctx, domain.Position{Title: title, DepartmentID: &dept.ID})
		if err != nil {
			return nil, fmt.Errorf("position: %w", err)
		}
		req.PositionID = &pos.ID
	}
	if degree := row.Get("degree"); degree != "" {
		d, err := im.catalogs.Degrees.FirstOrCreate(ctx, domain.Degree{Degree: degree})
		if err != nil {
			return nil, fmt.Errorf("degree: %w", err)
		}
		req.DegreeID = &d.ID
	}

	if err := im.validator.Struct(req); err != nil {
		return nil, err
	}
	return im.employees.Create(ctx, req)
}

// employeeUsername берёт логин из столбца username, затем табельный номер, затем имя
func employeeUsername(row Row) string {
	for _, column := range []string{"username", "employee_number", "name"} {
		if v := row.Get(column); v != "" {
			return v
		}
	}
	return ""
}

// ImportProjects читает лист проектов. Проекты без кода получают его по региону и дате начала
func (im *Importer) ImportProjects(ctx context.Context, r io.Reader) (*Report, error) {
	rows, err := ReadSheet(r)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for i, row := range rows {
		if row.Get("name") == "" {
			report.Skipped++
			continue
		}
		project, err := im.importProject(ctx, row)
		if err != nil {
			report.Failed = append(report.Failed, RowError{Row: i + 2, Err: err})
			im.logger.Warn("project row rejected", "row", i+2, "error", err)
			continue
		}
		report.Created++
		im.logger.Info("project imported", "id", project.ID, "code", project.Code)
	}
	return report, nil
}

func (im *Importer) importProject(ctx context.Context, row Row) (*domain.Project, error) {
	req := &dto.CreateProjectRequest{
		Name: row.Get("name"),
		Code: row.Ptr("code"),
	}

	var err error
	if req.InitiationDate, err = row.Date(firstColumn(row, "initiation_date", "initiation")); err != nil {
		return nil, err
	}
	if req.CompletionDateEst, err = row.Date("completion_date_est"); err != nil {
		return nil, err
	}

	if name := row.Get("area"); name != "" {
		area, err := im.area(ctx, name, row.Get("area_code"))
		if err != nil {
			return nil, err
		}
		req.AreaID = &area.ID
	}
	if v := row.Get("type"); v != "" {
		t, err := im.catalogs.ProjectTypes.FirstOrCreate(ctx, domain.ProjectType{Type: v})
		if err != nil {
			return nil, fmt.Errorf("project type: %w", err)
		}
		req.TypeID = &t.ID
	}
	if v := row.Get("status"); v != "" {
		s, err := im.catalogs.Statuses.FirstOrCreate(ctx, domain.ProjectStatus{Status: v})
		if err != nil {
			return nil, fmt.Errorf("project status: %w", err)
		}
		req.StatusID = &s.ID
	}
	if v := row.Get("customer"); v != "" {
		name, location, _ := strings.Cut(v, "-")
		c, err := im.catalogs.Customers.FirstOrCreate(ctx, domain.Customer{
			Name:     strings.TrimSpace(name),
			Location: strings.TrimSpace(location),
		})
		if err != nil {
			return nil, fmt.Errorf("customer: %w", err)
		}
		req.CustomerID = &c.ID
	}

	if err := im.validator.Struct(req); err != nil {
		return nil, err
	}
	return im.projects.Create(ctx, req)
}

func firstColumn(row Row, columns ...string) string {
	for _, c := range columns {
		if row.Get(c) != "" {
			return c
		}
	}
	return columns[0]
}

// area находит регион по имени или создаёт его. Код нового региона берётся из
// столбца area_code, иначе совпадает с именем
func (im *Importer) area(ctx context.Context, name, code string) (*domain.Area, error) {
	area, err := im.catalogs.Areas.GetByName(ctx, name)
	if err == nil {
		return area, nil
	}
	if !errors.Is(err, domain.ErrAreaNotFound) {
		return nil, fmt.Errorf("area: %w", err)
	}

	if code == "" {
		code = name
	}
	area = &domain.Area{Name: name, Code: code}
	if err := im.catalogs.Areas.Create(ctx, area); err != nil {
		return nil, fmt.Errorf("create area %s: %w", name, err)
	}
	im.logger.Info("area created", "id", area.ID, "name", name, "code", code)
	return area, nil
}

// PasswordOptions - параметры выдачи начальных паролей
type PasswordOptions struct {
	Password  string
	Superuser string // логин, получающий права суперпользователя
	All       bool   // перезаписать пароли и тем, у кого они уже есть
}

// InitialPasswords выдаёт пароль сотрудникам без пароля и открывает им доступ к системе.
// Возвращает число обновлённых сотрудников
func (im *Importer) InitialPasswords(ctx context.Context, opts PasswordOptions) (int, error) {
	if opts.Password == "" {
		return 0, errors.New("password must not be empty")
	}

	employees, err := im.empRepo.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		return 0, fmt.Errorf("list employees: %w", err)
	}

	updated := 0
	for i := range employees {
		emp := &employees[i]
		if emp.PasswordHash != "" && !opts.All {
			continue
		}

		hash, err := service.HashPassword(opts.Password)
		if err != nil {
			return updated, err
		}
		emp.PasswordHash = hash
		emp.IsStaff = true
		if opts.Superuser != "" && emp.Username == opts.Superuser {
			emp.IsSuperuser = true
		}

		if err := im.empRepo.Update(ctx, emp, nil); err != nil {
			return updated, fmt.Errorf("update employee %d: %w", emp.ID, err)
		}
		updated++
		im.logger.Info("password set", "username", emp.Username)
	}
	return updated, nil
}
