package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
)

func person(id int64, name string) *domain.Employee {
	return &domain.Employee{ID: id, Name: name, Position: &domain.Position{Title: "工程师"}}
}

func keys(nodes []dto.TeamNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Key)
	}
	return out
}

func TestBuildTeamTree_NoDirector(t *testing.T) {
	assert.Nil(t, BuildTeamTree(nil, testMedia))
	assert.Nil(t, BuildTeamTree(&domain.Team{AlgorithmLeader: person(2, "Li")}, testMedia))
}

func TestBuildTeamTree_DirectorOnly(t *testing.T) {
	director := person(1, "Wang")
	director.Avatar = "avatars/wang.png"

	tree := BuildTeamTree(&domain.Team{ProjectDirector: director}, testMedia)
	require.NotNil(t, tree)

	assert.Equal(t, "0", tree.Key)
	assert.Equal(t, "person", tree.Type)
	assert.Equal(t, "Wang", tree.Data.Name)
	assert.Equal(t, "项目总负责", tree.Data.Title)
	assert.Equal(t, "http://media.test/media/avatars/wang.png", tree.Data.Image)
	assert.NotNil(t, tree.Children)
	assert.Empty(t, tree.Children)
}

func TestBuildTeamTree_Full(t *testing.T) {
	team := &domain.Team{
		ProjectDirector:    person(1, "Director"),
		AlgorithmLeader:    person(2, "Algo"),
		VisionLeader:       person(3, "Vision"),
		EELeader:           person(5, "EE"),
		ProjectManager:     person(6, "PM"),
		BusinessManager:    person(7, "BM"),
		AlgorithmMembers:   []domain.Employee{*person(12, "B"), *person(11, "A")},
		MechanicMembers:    []domain.Employee{*person(20, "Orphan")},
		MaintenanceMembers: []domain.Employee{*person(30, "Ops")},
	}

	tree := BuildTeamTree(team, testMedia)
	require.NotNil(t, tree)

	// Механик не назначен, поэтому его участники не попадают в дерево
	assert.Equal(t, []string{"0_2", "0_3", "0_5", "0_6", "0_7"}, keys(tree.Children))

	algo := tree.Children[0]
	assert.Equal(t, "算法负责人", algo.Data.Title)
	assert.Equal(t, []string{"0_2_1", "0_2_2"}, keys(algo.Children))
	assert.Equal(t, "A", algo.Children[0].Data.Name)
	assert.Equal(t, "B", algo.Children[1].Data.Name)
	assert.Equal(t, "算法成员", algo.Children[0].Data.Title)

	assert.Empty(t, tree.Children[1].Children)

	pm := tree.Children[3]
	assert.Equal(t, "项目经理", pm.Data.Title)
	require.Len(t, pm.Children, 1)
	assert.Equal(t, "0_6_1", pm.Children[0].Key)
	assert.Equal(t, "维护成员", pm.Children[0].Data.Title)

	bm := tree.Children[4]
	assert.Equal(t, "商务经理", bm.Data.Title)
	assert.Empty(t, bm.Children)
	assert.Equal(t, "", bm.Data.Image)
}

func TestBuildTeamTree_DoesNotReorderInput(t *testing.T) {
	members := []domain.Employee{*person(9, "Z"), *person(3, "Y")}
	team := &domain.Team{
		ProjectDirector: person(1, "D"),
		VisionLeader:    person(2, "V"),
		VisionMembers:   members,
	}

	first := BuildTeamTree(team, testMedia)
	second := BuildTeamTree(team, testMedia)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(9), team.VisionMembers[0].ID)
}

func TestBuildTeamTree_WithoutPosition(t *testing.T) {
	team := &domain.Team{
		ProjectDirector:  &domain.Employee{ID: 1, Name: "D"},
		AlgorithmLeader:  person(2, "Algo"),
		AlgorithmMembers: []domain.Employee{{ID: 3, Name: "M"}},
	}

	tree := BuildTeamTree(team, testMedia)
	require.NotNil(t, tree)

	assert.Equal(t, "未知职位", tree.Data.Title)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "算法负责人", tree.Children[0].Data.Title)
	require.Len(t, tree.Children[0].Children, 1)
	assert.Equal(t, "未知职位", tree.Children[0].Children[0].Data.Title)
}

func TestRoleTitle(t *testing.T) {
	emp := &domain.Employee{Position: &domain.Position{Title: "工程师"}}

	assert.Equal(t, "视觉负责人", RoleTitle(RoleVisionLeader, emp))
	assert.Equal(t, "工程师", RoleTitle("unknown_role", emp))
	assert.Equal(t, "未知职位", RoleTitle(RoleVisionLeader, &domain.Employee{}))
	assert.Equal(t, "未知职位", RoleTitle("unknown_role", &domain.Employee{}))
	assert.Equal(t, "未知职位", RoleTitle("", nil))
}
