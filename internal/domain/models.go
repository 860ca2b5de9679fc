package domain

import (
	"time"
)

// Area представляет операционный регион; код региона используется как префикс кода проекта
type Area struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string `json:"name" gorm:"type:varchar(50);not null"`
	Code      string `json:"code" gorm:"type:varchar(20);not null;uniqueIndex"`
	ManagerID *int64 `json:"manager_id" gorm:"index"`

	Manager *Employee `json:"-" gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL"`
}

// TableName задаёт имя таблицы для GORM
func (Area) TableName() string {
	return "areas"
}

// Department представляет подразделение организации
type Department struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	ParentID  *int64    `json:"parent_id" gorm:"index"`
	AreaID    *int64    `json:"area_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Parent    *Department  `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Area      *Area        `json:"-" gorm:"foreignKey:AreaID;constraint:OnDelete:SET NULL"`
	Children  []Department `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Employees []Employee   `json:"employees,omitempty" gorm:"foreignKey:DepartmentID"`
}

// TableName задаёт имя таблицы для GORM
func (Department) TableName() string {
	return "departments"
}

// Position - должность
type Position struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title        string `json:"title" gorm:"type:varchar(30);not null" validate:"required,max=30"`
	DepartmentID *int64 `json:"department_id" gorm:"index" validate:"omitempty,min=1"`

	Department *Department `json:"-" gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL"`
}

func (Position) TableName() string {
	return "positions"
}

// PositionLevel - грейд внутри профессиональной линейки
type PositionLevel struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Level string `json:"level" gorm:"type:varchar(5);not null" validate:"required,max=5"`
	Type  string `json:"type" gorm:"type:varchar(20);not null" validate:"required,max=20"`
}

func (PositionLevel) TableName() string {
	return "position_levels"
}

func (l PositionLevel) String() string {
	return l.Type + l.Level
}

type Degree struct {
	ID     int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Degree string `json:"degree" gorm:"type:varchar(30)" validate:"required,max=30"`
}

func (Degree) TableName() string {
	return "degrees"
}

// Employee представляет сотрудника
type Employee struct {
	ID                   int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username             string     `json:"username" gorm:"type:varchar(150);not null;uniqueIndex"`
	PasswordHash         string     `json:"-" gorm:"column:password;type:varchar(128)"`
	Name                 string     `json:"name" gorm:"type:varchar(30);not null"`
	EmployeeNumber       *string    `json:"employee_number" gorm:"type:varchar(20);uniqueIndex"`
	Email                string     `json:"email" gorm:"type:varchar(254)"`
	Phone                string     `json:"phone" gorm:"type:varchar(17)"`
	Gender               Gender     `json:"gender" gorm:"type:varchar(4);not null;default:'未知'"`
	Status               *string    `json:"status" gorm:"type:varchar(20)"`
	Expertise            string     `json:"expertise" gorm:"type:varchar(300)"`
	Avatar               string     `json:"avatar" gorm:"type:varchar(255)"`
	IDNumber             *string    `json:"id_number" gorm:"type:varchar(18);uniqueIndex"`
	IDAddress            string     `json:"id_address" gorm:"type:varchar(200)"`
	GraduatedFrom        string     `json:"graduated_from" gorm:"type:varchar(30)"`
	DegreeID             *int64     `json:"degree_id" gorm:"index"`
	AreaID               *int64     `json:"area_id" gorm:"index"`
	DepartmentID         *int64     `json:"department_id" gorm:"index"`
	PositionID           *int64     `json:"position_id" gorm:"index"`
	PositionLevelID      *int64     `json:"position_level_id" gorm:"index"`
	DateJoined           *time.Time `json:"date_joined" gorm:"type:date"`
	Salary               *float64   `json:"salary" gorm:"type:numeric(10,2)"`
	SalaryPlace          *City      `json:"salary_place" gorm:"type:varchar(40)"`
	WorkPlace            *City      `json:"work_place" gorm:"type:varchar(40)"`
	ContractPlace        *City      `json:"contract_place" gorm:"type:varchar(40)"`
	InsurancePlace       *City      `json:"insurance_place" gorm:"type:varchar(40)"`
	ContractRenewedTimes int16      `json:"contract_renewed_times" gorm:"not null;default:0"`
	ContractStartDate    *time.Time `json:"contract_start_date" gorm:"type:date"`
	ContractEndDate      *time.Time `json:"contract_end_date" gorm:"type:date"`
	BankNumber           string     `json:"bank_number" gorm:"type:varchar(30)"`
	BankAddress          string     `json:"bank_address" gorm:"type:varchar(40)"`
	IsStaff              bool       `json:"is_staff" gorm:"not null;default:false"`
	IsSuperuser          bool       `json:"is_superuser" gorm:"not null;default:false"`
	CreatedAt            time.Time  `json:"created_at" gorm:"autoCreateTime"`

	Degree           *Degree        `json:"-" gorm:"foreignKey:DegreeID;constraint:OnDelete:SET NULL"`
	Area             *Area          `json:"-" gorm:"foreignKey:AreaID;constraint:OnDelete:SET NULL"`
	Department       *Department    `json:"-" gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL"`
	Position         *Position      `json:"-" gorm:"foreignKey:PositionID;constraint:OnDelete:SET NULL"`
	PositionLevel    *PositionLevel `json:"-" gorm:"foreignKey:PositionLevelID;constraint:OnDelete:SET NULL"`
	WatchingProjects []Project      `json:"-" gorm:"many2many:employee_watching_projects;"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// PositionTitle возвращает название должности или пустую строку
func (e *Employee) PositionTitle() string {
	if e == nil || e.Position == nil {
		return ""
	}
	return e.Position.Title
}

type ProjectType struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Type string `json:"type" gorm:"type:varchar(200);not null" validate:"required,max=200"`
}

func (ProjectType) TableName() string {
	return "project_types"
}

// ProjectStatus - этап жизненного цикла проекта
type ProjectStatus struct {
	ID     int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Status string `json:"status" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Order  string `json:"order" gorm:"column:sort_order;type:varchar(20);not null;default:'-1'" validate:"max=20"`
}

func (ProjectStatus) TableName() string {
	return "project_statuses"
}

type Customer struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name" gorm:"type:varchar(50);not null" validate:"required,max=50"`
	Location string `json:"location" gorm:"type:varchar(50);not null" validate:"required,max=50"`
}

func (Customer) TableName() string {
	return "customers"
}

func (c Customer) String() string {
	return c.Name + "-" + c.Location
}

// Project представляет проект. Code назначается один раз и больше не меняется
type Project struct {
	ID                int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Code              string     `json:"code" gorm:"type:varchar(50);uniqueIndex"`
	Snapshot          string     `json:"snapshot" gorm:"type:varchar(255)"`
	Name              string     `json:"name" gorm:"type:varchar(200);not null"`
	AreaID            *int64     `json:"area_id" gorm:"index:idx_projects_area_initiation"`
	TypeID            *int64     `json:"type_id" gorm:"index"`
	StatusID          *int64     `json:"status_id" gorm:"index"`
	CustomerID        *int64     `json:"customer_id" gorm:"index"`
	TeamID            *int64     `json:"team_id" gorm:"index"`
	InitiationDate    *time.Time `json:"initiation_date" gorm:"type:date;index:idx_projects_area_initiation"`
	CompletionDateEst *time.Time `json:"completion_date_est" gorm:"type:date"`
	CreatedAt         time.Time  `json:"created_at" gorm:"autoCreateTime"`

	Area      *Area          `json:"-" gorm:"foreignKey:AreaID;constraint:OnDelete:SET NULL"`
	Type      *ProjectType   `json:"-" gorm:"foreignKey:TypeID;constraint:OnDelete:SET NULL"`
	Status    *ProjectStatus `json:"-" gorm:"foreignKey:StatusID;constraint:OnDelete:SET NULL"`
	Customer  *Customer      `json:"-" gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	Team      *Team          `json:"-" gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"`
	WatchedBy []Employee     `json:"-" gorm:"many2many:employee_watching_projects;"`
}

// TableName задаёт имя таблицы для GORM
func (Project) TableName() string {
	return "projects"
}

// Team - состав проектной команды: семь руководящих ролей и пять функциональных групп
type Team struct {
	ID                int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name              string `json:"name" gorm:"type:varchar(100);not null"`
	ProjectDirectorID *int64 `json:"project_director_id" gorm:"index"`
	AlgorithmLeaderID *int64 `json:"algorithm_leader_id" gorm:"index"`
	VisionLeaderID    *int64 `json:"vision_leader_id" gorm:"index"`
	MechanicLeaderID  *int64 `json:"mechanic_leader_id" gorm:"index"`
	EELeaderID        *int64 `json:"ee_leader_id" gorm:"column:ee_leader_id;index"`
	ProjectManagerID  *int64 `json:"project_manager_id" gorm:"index"`
	BusinessManagerID *int64 `json:"business_manager_id" gorm:"index"`

	ProjectDirector    *Employee  `json:"-" gorm:"foreignKey:ProjectDirectorID;constraint:OnDelete:SET NULL"`
	AlgorithmLeader    *Employee  `json:"-" gorm:"foreignKey:AlgorithmLeaderID;constraint:OnDelete:SET NULL"`
	VisionLeader       *Employee  `json:"-" gorm:"foreignKey:VisionLeaderID;constraint:OnDelete:SET NULL"`
	MechanicLeader     *Employee  `json:"-" gorm:"foreignKey:MechanicLeaderID;constraint:OnDelete:SET NULL"`
	EELeader           *Employee  `json:"-" gorm:"foreignKey:EELeaderID;constraint:OnDelete:SET NULL"`
	ProjectManager     *Employee  `json:"-" gorm:"foreignKey:ProjectManagerID;constraint:OnDelete:SET NULL"`
	BusinessManager    *Employee  `json:"-" gorm:"foreignKey:BusinessManagerID;constraint:OnDelete:SET NULL"`
	AlgorithmMembers   []Employee `json:"-" gorm:"many2many:team_algorithm_members;"`
	VisionMembers      []Employee `json:"-" gorm:"many2many:team_vision_members;"`
	MechanicMembers    []Employee `json:"-" gorm:"many2many:team_mechanic_members;"`
	EEMembers          []Employee `json:"-" gorm:"many2many:team_ee_members;"`
	MaintenanceMembers []Employee `json:"-" gorm:"many2many:team_maintenance_members;"`
}

// TableName задаёт имя таблицы для GORM
func (Team) TableName() string {
	return "teams"
}

// Task - задача проекта; удаляется вместе с проектом
type Task struct {
	ID            int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string       `json:"title" gorm:"type:varchar(200);not null"`
	Status        TaskStatus   `json:"status" gorm:"type:varchar(20);not null;default:'todo'"`
	Priority      TaskPriority `json:"priority" gorm:"type:varchar(20);not null;default:'0'"`
	ProjectID     int64        `json:"project_id" gorm:"not null;index"`
	DRIID         *int64       `json:"dri_id" gorm:"column:dri_id;index"`
	AllocatorID   *int64       `json:"allocator_id" gorm:"index"`
	ParentTaskID  *int64       `json:"parent_task_id" gorm:"index"`
	Deadline      *time.Time   `json:"deadline"`
	CompletedTime *time.Time   `json:"completed_time"`
	CreatedTime   time.Time    `json:"created_time" gorm:"autoCreateTime"`
	Tag           string       `json:"tag" gorm:"type:varchar(50)"`
	Description   string       `json:"description" gorm:"type:text"`

	Project    *Project  `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	DRI        *Employee `json:"-" gorm:"foreignKey:DRIID;constraint:OnDelete:SET NULL"`
	Allocator  *Employee `json:"-" gorm:"foreignKey:AllocatorID;constraint:OnDelete:SET NULL"`
	ParentTask *Task     `json:"-" gorm:"foreignKey:ParentTaskID;constraint:OnDelete:SET NULL"`
}

// TableName задаёт имя таблицы для GORM
func (Task) TableName() string {
	return "tasks"
}
