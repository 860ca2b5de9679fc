package service

import (
	"sort"
	"strconv"

	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/storage"
)

const (
	personNode      = "person"
	unknownPosition = "未知职位"
)

// Коды ролей в команде
const (
	RoleProjectDirector    = "project_director"
	RoleAlgorithmLeader    = "algorithm_leader"
	RoleVisionLeader       = "vision_leader"
	RoleMechanicLeader     = "mechanic_leader"
	RoleEELeader           = "ee_leader"
	RoleProjectManager     = "project_manager"
	RoleBusinessManager    = "business_manager"
	RoleAlgorithmMembers   = "algorithm_members"
	RoleVisionMembers      = "vision_members"
	RoleMechanicMembers    = "mechanic_members"
	RoleEEMembers          = "ee_members"
	RoleMaintenanceMembers = "maintenance_members"
)

var roleLabels = map[string]string{
	RoleProjectDirector:    "项目总负责",
	RoleAlgorithmLeader:    "算法负责人",
	RoleVisionLeader:       "视觉负责人",
	RoleMechanicLeader:     "机械负责人",
	RoleEELeader:           "电控负责人",
	RoleProjectManager:     "项目经理",
	RoleBusinessManager:    "商务经理",
	RoleAlgorithmMembers:   "算法成员",
	RoleVisionMembers:      "视觉成员",
	RoleMechanicMembers:    "机械成员",
	RoleEEMembers:          "电控成员",
	RoleMaintenanceMembers: "维护成员",
}

// RoleLabel возвращает подпись роли или пустую строку для неизвестного кода
func RoleLabel(role string) string {
	return roleLabels[role]
}

// RoleTitle выбирает подпись узла. Сотрудник без должности всегда получает "未知职位",
// иначе берётся подпись роли, а для неизвестной роли - название должности
func RoleTitle(role string, emp *domain.Employee) string {
	if emp == nil || emp.Position == nil {
		return unknownPosition
	}
	if label := RoleLabel(role); label != "" {
		return label
	}
	return emp.Position.Title
}

// teamSlot - руководящая роль и группа, чьи участники висят под этим руководителем.
// Номер слота задаёт ключ узла: директор занимает слот 1, руководители - слоты 2..7
type teamSlot struct {
	slot       int
	role       string
	leader     func(*domain.Team) *domain.Employee
	memberRole string
	members    func(*domain.Team) []domain.Employee
}

var leaderSlots = []teamSlot{
	{
		slot:       2,
		role:       RoleAlgorithmLeader,
		leader:     func(t *domain.Team) *domain.Employee { return t.AlgorithmLeader },
		memberRole: RoleAlgorithmMembers,
		members:    func(t *domain.Team) []domain.Employee { return t.AlgorithmMembers },
	},
	{
		slot:       3,
		role:       RoleVisionLeader,
		leader:     func(t *domain.Team) *domain.Employee { return t.VisionLeader },
		memberRole: RoleVisionMembers,
		members:    func(t *domain.Team) []domain.Employee { return t.VisionMembers },
	},
	{
		slot:       4,
		role:       RoleMechanicLeader,
		leader:     func(t *domain.Team) *domain.Employee { return t.MechanicLeader },
		memberRole: RoleMechanicMembers,
		members:    func(t *domain.Team) []domain.Employee { return t.MechanicMembers },
	},
	{
		slot:       5,
		role:       RoleEELeader,
		leader:     func(t *domain.Team) *domain.Employee { return t.EELeader },
		memberRole: RoleEEMembers,
		members:    func(t *domain.Team) []domain.Employee { return t.EEMembers },
	},
	{
		slot:       6,
		role:       RoleProjectManager,
		leader:     func(t *domain.Team) *domain.Employee { return t.ProjectManager },
		memberRole: RoleMaintenanceMembers,
		members:    func(t *domain.Team) []domain.Employee { return t.MaintenanceMembers },
	},
	{
		slot:   7,
		role:   RoleBusinessManager,
		leader: func(t *domain.Team) *domain.Employee { return t.BusinessManager },
	},
}

// BuildTeamTree строит дерево команды для отображения. Без руководителя проекта
// дерево пустое и возвращается nil. Участники групп упорядочены по id.
// Результат зависит только от состояния команды и media
func BuildTeamTree(team *domain.Team, media storage.URLResolver) *dto.TeamNode {
	if team == nil || team.ProjectDirector == nil {
		return nil
	}

	root := personTreeNode("0", RoleProjectDirector, team.ProjectDirector, media)
	for _, s := range leaderSlots {
		leader := s.leader(team)
		if leader == nil {
			continue
		}

		key := "0_" + strconv.Itoa(s.slot)
		node := personTreeNode(key, s.role, leader, media)
		if s.members != nil {
			for i, member := range sortedByID(s.members(team)) {
				node.Children = append(node.Children,
					personTreeNode(key+"_"+strconv.Itoa(i+1), s.memberRole, &member, media))
			}
		}
		root.Children = append(root.Children, node)
	}

	return &root
}

func personTreeNode(key, role string, emp *domain.Employee, media storage.URLResolver) dto.TeamNode {
	return dto.TeamNode{
		Key:  key,
		Type: personNode,
		Data: dto.TeamNodeData{
			Image: media.Absolute(emp.Avatar),
			Name:  emp.Name,
			Title: RoleTitle(role, emp),
		},
		Children: []dto.TeamNode{},
	}
}

func sortedByID(members []domain.Employee) []domain.Employee {
	sorted := make([]domain.Employee, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return sorted
}
