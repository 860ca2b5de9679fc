package handler_test

import (
	"net/http"
	"testing"

	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
)

func TestCreateEmployee_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	p := createProject(t, ts, map[string]any{"name": "Alpha", "code": "A-20240101-001"})

	resp, err := ts.postJSON("/api/employees/", map[string]any{
		"username":          "zhang",
		"name":              "张三",
		"phone":             "+8613800138000",
		"gender":            "男",
		"work_place":        "深圳",
		"date_joined":       "2023-07-01",
		"watching_projects": []int64{p.ID},
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	result := decode[dto.EmployeeResponse](t, resp)
	if result.Gender != "男" || result.WorkPlace == nil || *result.WorkPlace != "深圳" {
		t.Errorf("unexpected employee: %+v", result)
	}
	if result.DateJoined == nil || *result.DateJoined != "2023-07-01" {
		t.Errorf("expected date_joined 2023-07-01, got %v", result.DateJoined)
	}

	get, err := ts.get("/api/employees/" + itoa(result.ID) + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer get.Body.Close()
	if got := decode[dto.EmployeeResponse](t, get); len(got.WatchingProjectIDs) != 1 || got.WatchingProjectIDs[0] != p.ID {
		t.Errorf("expected watching_projects [%d], got %v", p.ID, got.WatchingProjectIDs)
	}
}

func TestCreateEmployee_Invalid(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"bad phone", map[string]any{"username": "u1", "name": "N", "phone": "12-34"}, http.StatusBadRequest},
		{"missing phone", map[string]any{"username": "u1", "name": "N"}, http.StatusBadRequest},
		{"unknown city", map[string]any{"username": "u1", "name": "N", "phone": "13800138000", "work_place": "北京"}, http.StatusBadRequest},
		{"bad gender", map[string]any{"username": "u1", "name": "N", "phone": "13800138000", "gender": "M"}, http.StatusBadRequest},
		{"unknown project", map[string]any{"username": "u1", "name": "N", "phone": "13800138000", "watching_projects": []int64{99}}, http.StatusNotFound},
		{"duplicate username", map[string]any{"username": "admin", "name": "N", "phone": "13800138000"}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ts.postJSON("/api/employees/", tt.body)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.status {
				t.Errorf("expected %d, got %d", tt.status, resp.StatusCode)
			}
		})
	}
}

func TestEmployeeBasicInfo(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	resp, err := ts.get("/api/employees/" + itoa(ts.adminID) + "/basicInfo/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, resp.StatusCode)
	}
	info := decode[dto.BasicInfoResponse](t, resp)
	if info.Title != "未知职位" || info.Avatar != "" {
		t.Errorf("expected fallback title and empty avatar, got %+v", info)
	}

	positionID := ts.mustPost(t, "/api/positions/", map[string]any{"title": "工程师"})
	empID := ts.mustPost(t, "/api/employees/", map[string]any{
		"username": "eng", "name": "工程师甲", "phone": "13800138000", "position_id": positionID, "expertise": "视觉",
	})

	withTitle, err := ts.get("/api/employees/" + itoa(empID) + "/basicInfo/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer withTitle.Body.Close()
	info = decode[dto.BasicInfoResponse](t, withTitle)
	if info.Title != "工程师" || info.Expertise != "视觉" {
		t.Errorf("unexpected basic info: %+v", info)
	}

	missing, err := ts.get("/api/employees/999/basicInfo/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, missing.StatusCode)
	}
}

func TestEmployeeSetPassword(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	empID := ts.mustPost(t, "/api/employees/", map[string]any{"username": "li", "name": "李四", "phone": "13800138000"})

	resp, err := ts.postJSON("/api/employees/"+itoa(empID)+"/password/", map[string]any{"password": "newpass1"})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected %d, got %d", http.StatusNoContent, resp.StatusCode)
	}

	ts.token = ""
	login, err := ts.postJSON("/api/token/", map[string]any{"username": "li", "password": "newpass1"})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer login.Body.Close()
	if login.StatusCode != http.StatusOK {
		t.Errorf("expected login to succeed, got %d", login.StatusCode)
	}
}

func TestListEmployees_Filter(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	deptID := ts.mustPost(t, "/api/departments/", map[string]any{"name": "视觉部"})
	ts.mustPost(t, "/api/employees/", map[string]any{"username": "a", "name": "A", "phone": "13800138000", "department_id": deptID})
	ts.mustPost(t, "/api/employees/", map[string]any{"username": "b", "name": "B", "phone": "13800138001"})

	resp, err := ts.get("/api/employees/?department_id=" + itoa(deptID))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	list := decode[[]dto.EmployeeResponse](t, resp)
	if len(list) != 1 || list[0].Username != "a" {
		t.Errorf("expected only employee a, got %+v", list)
	}

	bad, err := ts.get("/api/employees/?department_id=abc")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, bad.StatusCode)
	}
}

func TestDeleteEmployee_ClearsTeamRoles(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	director := ts.mustPost(t, "/api/employees/", map[string]any{"username": "d", "name": "D", "phone": "13800138000"})
	member := ts.mustPost(t, "/api/employees/", map[string]any{"username": "m", "name": "M", "phone": "13800138001"})
	teamID := ts.mustPost(t, "/api/teams/", map[string]any{
		"name":                "T",
		"project_director_id": director,
		"project_manager_id":  director,
		"maintenance_members": []int64{member},
	})

	resp, err := ts.deleteRequest("/api/employees/" + itoa(director) + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected %d, got %d", http.StatusNoContent, resp.StatusCode)
	}

	team, err := ts.get("/api/teams/" + itoa(teamID) + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer team.Body.Close()
	got := decode[dto.TeamResponse](t, team)
	if got.ProjectDirectorID != nil || got.ProjectManagerID != nil {
		t.Errorf("expected leader roles to be cleared, got %+v", got)
	}
	if len(got.MaintenanceMembers) != 1 || got.MaintenanceMembers[0] != member {
		t.Errorf("expected member to stay, got %v", got.MaintenanceMembers)
	}

	tree, err := ts.get("/api/teams/" + itoa(teamID) + "/tree/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer tree.Body.Close()
	if node := decode[*dto.TeamNode](t, tree); node != nil {
		t.Errorf("expected null tree without a director, got %+v", node)
	}

	var links int64
	ts.db.Table("team_maintenance_members").Where("employee_id = ?", director).Count(&links)
	if links != 0 {
		t.Errorf("expected no membership rows for deleted employee, got %d", links)
	}
	var count int64
	ts.db.Model(&domain.Employee{}).Where("id = ?", director).Count(&count)
	if count != 0 {
		t.Error("expected employee to be deleted")
	}
}

func TestCatalogs(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	levelID := ts.mustPost(t, "/api/position-levels/", map[string]any{"level": "3", "type": "P"})
	ts.mustPost(t, "/api/degrees/", map[string]any{"degree": "硕士"})
	ts.mustPost(t, "/api/project-statuses/", map[string]any{"status": "执行中", "order": "2"})

	resp, err := ts.patchJSON("/api/position-levels/"+itoa(levelID)+"/", map[string]any{"level": "4"})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	level := decode[domain.PositionLevel](t, resp)
	if level.Level != "4" || level.Type != "P" || level.ID != levelID {
		t.Errorf("unexpected level after update: %+v", level)
	}

	invalid, err := ts.postJSON("/api/customers/", map[string]any{"name": "only name"})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	invalid.Body.Close()
	if invalid.StatusCode != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, invalid.StatusCode)
	}

	del, err := ts.deleteRequest("/api/degrees/999/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	del.Body.Close()
	if del.StatusCode != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, del.StatusCode)
	}
}
