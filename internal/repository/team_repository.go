package repository

import (
	"context"

	"github.com/themis-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamMembers - состав функциональных групп команды (id сотрудников)
type TeamMembers struct {
	Algorithm   []int64
	Vision      []int64
	Mechanic    []int64
	EE          []int64
	Maintenance []int64
}

// TeamRepository определяет интерфейс для работы с командами
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team, members TeamMembers) error
	GetByID(ctx context.Context, id int64) (*domain.Team, error)
	GetWithMembers(ctx context.Context, id int64) (*domain.Team, error)
	List(ctx context.Context) ([]domain.Team, error)
	Update(ctx context.Context, team *domain.Team, members *TeamMembers) error
	Delete(ctx context.Context, id int64) error
}

var teamLeaders = []string{
	"ProjectDirector",
	"AlgorithmLeader",
	"VisionLeader",
	"MechanicLeader",
	"EELeader",
	"ProjectManager",
	"BusinessManager",
}

var teamGroups = []string{
	"AlgorithmMembers",
	"VisionMembers",
	"MechanicMembers",
	"EEMembers",
	"MaintenanceMembers",
}

var teamLinks = []columnRef{
	{Table: "team_algorithm_members", Column: "team_id"},
	{Table: "team_vision_members", Column: "team_id"},
	{Table: "team_mechanic_members", Column: "team_id"},
	{Table: "team_ee_members", Column: "team_id"},
	{Table: "team_maintenance_members", Column: "team_id"},
}

// preloadTeam подгружает руководителей и участников команды вместе с должностями.
// prefix задаёт путь до команды, например "Team." для проекта
func preloadTeam(db *gorm.DB, prefix string) *gorm.DB {
	for _, leader := range teamLeaders {
		db = db.Preload(prefix + leader + ".Position")
	}
	byID := func(db *gorm.DB) *gorm.DB {
		return db.Order("employees.id ASC")
	}
	for _, group := range teamGroups {
		db = db.Preload(prefix+group, byID).Preload(prefix + group + ".Position")
	}
	return db
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository создаёт новый экземпляр репозитория
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team, members TeamMembers) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(team).Error; err != nil {
			return err
		}
		return writeMembers(tx, team.ID, members)
	})
}

func (r *teamRepository) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	var team domain.Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, notFound(err, domain.ErrTeamNotFound)
	}
	return &team, nil
}

func (r *teamRepository) GetWithMembers(ctx context.Context, id int64) (*domain.Team, error) {
	var team domain.Team
	if err := preloadTeam(r.db.WithContext(ctx), "").First(&team, id).Error; err != nil {
		return nil, notFound(err, domain.ErrTeamNotFound)
	}
	return &team, nil
}

func (r *teamRepository) List(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	err := r.db.WithContext(ctx).Order("id ASC").Find(&teams).Error
	return teams, err
}

// Update сохраняет поля команды; nil members оставляет составы групп без изменений
func (r *teamRepository) Update(ctx context.Context, team *domain.Team, members *TeamMembers) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(team).Error; err != nil {
			return err
		}
		if members == nil {
			return nil
		}
		return writeMembers(tx, team.ID, *members)
	})
}

func (r *teamRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearRefs(tx, []columnRef{{Table: "projects", Column: "team_id"}}, id); err != nil {
			return err
		}
		if err := dropLinks(tx, teamLinks, id); err != nil {
			return err
		}
		result := tx.Delete(&domain.Team{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrTeamNotFound
		}
		return nil
	})
}

func writeMembers(tx *gorm.DB, teamID int64, members TeamMembers) error {
	groups := []struct {
		table string
		ids   []int64
	}{
		{"team_algorithm_members", members.Algorithm},
		{"team_vision_members", members.Vision},
		{"team_mechanic_members", members.Mechanic},
		{"team_ee_members", members.EE},
		{"team_maintenance_members", members.Maintenance},
	}
	for _, g := range groups {
		if err := replaceLinks(tx, g.table, "team_id", teamID, "employee_id", g.ids); err != nil {
			return err
		}
	}
	return nil
}
