package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
)

func createProject(t *testing.T, ts *testServer, body map[string]any) dto.ProjectResponse {
	t.Helper()
	resp, err := ts.postJSON("/api/projects/", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	return decode[dto.ProjectResponse](t, resp)
}

func TestCreateProject_GeneratesCode(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	areaID := ts.mustPost(t, "/api/areas/", map[string]any{"name": "深圳", "code": "SZ"})

	first := createProject(t, ts, map[string]any{"name": "Alpha", "area_id": areaID, "initiation_date": "2024-01-01"})
	second := createProject(t, ts, map[string]any{"name": "Beta", "area_id": areaID, "initiation_date": "2024-01-01"})
	undated := createProject(t, ts, map[string]any{"name": "Gamma", "area_id": areaID})

	if first.Code != "SZ-20240101-001" {
		t.Errorf("expected SZ-20240101-001, got %s", first.Code)
	}
	if second.Code != "SZ-20240101-002" {
		t.Errorf("expected SZ-20240101-002, got %s", second.Code)
	}
	if undated.Code != "SZ-99991231-001" {
		t.Errorf("expected SZ-99991231-001, got %s", undated.Code)
	}
	if first.CompletionDateEst == nil || *first.CompletionDateEst != "2024-03-31" {
		t.Errorf("expected completion_date_est 2024-03-31, got %v", first.CompletionDateEst)
	}
	if undated.CompletionDateEst != nil {
		t.Errorf("expected no completion_date_est, got %s", *undated.CompletionDateEst)
	}
}

func TestCreateProject_Invalid(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"no area for generated code", map[string]any{"name": "X"}, http.StatusBadRequest},
		{"unknown area", map[string]any{"name": "X", "area_id": 42}, http.StatusNotFound},
		{"bad date", map[string]any{"name": "X", "area_id": 1, "initiation_date": "2024/01/01"}, http.StatusBadRequest},
		{"missing name", map[string]any{"code": "X-20240101-001"}, http.StatusBadRequest},
		{"code without sequence", map[string]any{"name": "X", "code": "ABC"}, http.StatusBadRequest},
		{"code with short sequence", map[string]any{"name": "X", "code": "SZ-20240101-7"}, http.StatusBadRequest},
		{"code with letters in sequence", map[string]any{"name": "X", "code": "SZ-20240101-x01"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ts.postJSON("/api/projects/", tt.body)
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

func TestCreateProject_MalformedSequence(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	areaID := ts.mustPost(t, "/api/areas/", map[string]any{"name": "深圳", "code": "SZ"})
	// такой код API не примет, он мог остаться только от старых данных
	day := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	legacy := &domain.Project{Name: "Legacy", Code: "SZ-20240101-x1", AreaID: &areaID, InitiationDate: &day}
	if err := ts.db.Create(legacy).Error; err != nil {
		t.Fatalf("seed legacy project: %v", err)
	}

	resp, err := ts.postJSON("/api/projects/", map[string]any{"name": "Next", "area_id": areaID, "initiation_date": "2024-01-01"})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}
	if got := decode[dto.ErrorResponse](t, resp); got.Error != "project code integrity error" {
		t.Errorf("expected explicit integrity error, got %q", got.Error)
	}
}

func TestProjectDates_PlainDateEverywhere(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	areaID := ts.mustPost(t, "/api/areas/", map[string]any{"name": "深圳", "code": "SZ"})
	p := createProject(t, ts, map[string]any{"name": "Alpha", "area_id": areaID, "initiation_date": "2024-01-01"})

	check := func(where string, got dto.ProjectResponse) {
		t.Helper()
		if got.InitiationDate == nil || *got.InitiationDate != "2024-01-01" {
			t.Errorf("%s: expected initiation_date 2024-01-01, got %v", where, got.InitiationDate)
		}
		if got.CompletionDateEst == nil || *got.CompletionDateEst != "2024-03-31" {
			t.Errorf("%s: expected completion_date_est 2024-03-31, got %v", where, got.CompletionDateEst)
		}
	}
	check("create", p)

	one, err := ts.get("/api/projects/" + itoa(p.ID) + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer one.Body.Close()
	check("get", decode[dto.ProjectResponse](t, one))

	list, err := ts.get("/api/projects/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer list.Body.Close()
	all := decode[[]dto.ProjectResponse](t, list)
	if len(all) != 1 {
		t.Fatalf("expected 1 project, got %d", len(all))
	}
	check("list", all[0])

	upd, err := ts.patchJSON("/api/projects/"+itoa(p.ID)+"/", map[string]any{"name": "Renamed"})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer upd.Body.Close()
	check("update", decode[dto.ProjectResponse](t, upd))
}

func TestCreateProject_ExplicitCodeContinuesSequence(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	areaID := ts.mustPost(t, "/api/areas/", map[string]any{"name": "深圳", "code": "SZ"})
	createProject(t, ts, map[string]any{"name": "Imported", "code": "SZ-20240101-007", "area_id": areaID, "initiation_date": "2024-01-01"})

	next := createProject(t, ts, map[string]any{"name": "Next", "area_id": areaID, "initiation_date": "2024-01-01"})
	if next.Code != "SZ-20240101-008" {
		t.Errorf("expected SZ-20240101-008, got %s", next.Code)
	}
}

func TestUpdateProject_KeepsCode(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	areaID := ts.mustPost(t, "/api/areas/", map[string]any{"name": "深圳", "code": "SZ"})
	p := createProject(t, ts, map[string]any{"name": "Alpha", "area_id": areaID, "initiation_date": "2024-01-01"})

	resp, err := ts.patchJSON("/api/projects/"+itoa(p.ID)+"/", map[string]any{"name": "Renamed", "initiation_date": "2024-02-02"})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, resp.StatusCode)
	}
	result := decode[dto.ProjectResponse](t, resp)
	if result.Code != p.Code {
		t.Errorf("expected code %s to stay, got %s", p.Code, result.Code)
	}
	if result.Name != "Renamed" {
		t.Errorf("expected name Renamed, got %s", result.Name)
	}
}

func TestAreaCodeLockedByProjects(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	areaID := ts.mustPost(t, "/api/areas/", map[string]any{"name": "深圳", "code": "SZ"})
	createProject(t, ts, map[string]any{"name": "Alpha", "area_id": areaID})

	resp, err := ts.patchJSON("/api/areas/"+itoa(areaID)+"/", map[string]any{"code": "SH"})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected %d, got %d", http.StatusConflict, resp.StatusCode)
	}

	rename, err := ts.patchJSON("/api/areas/"+itoa(areaID)+"/", map[string]any{"name": "深圳湾"})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	rename.Body.Close()
	if rename.StatusCode != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, rename.StatusCode)
	}
}

func TestProjectDetail_WithTeamTree(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	positionID := ts.mustPost(t, "/api/positions/", map[string]any{"title": "总监"})
	director := ts.mustPost(t, "/api/employees/", map[string]any{
		"username": "director", "name": "张总", "phone": "13800000001", "position_id": positionID,
	})
	algo := ts.mustPost(t, "/api/employees/", map[string]any{"username": "algo", "name": "算法甲", "phone": "13800000002"})
	m2 := ts.mustPost(t, "/api/employees/", map[string]any{"username": "m2", "name": "成员乙", "phone": "13800000003"})
	m1 := ts.mustPost(t, "/api/employees/", map[string]any{"username": "m1", "name": "成员甲", "phone": "13800000004"})

	teamID := ts.mustPost(t, "/api/teams/", map[string]any{
		"name":                "Alpha Team",
		"project_director_id": director,
		"algorithm_leader_id": algo,
		"algorithm_members":   []int64{m1, m2},
	})
	areaID := ts.mustPost(t, "/api/areas/", map[string]any{"name": "合肥", "code": "HF"})
	typeID := ts.mustPost(t, "/api/project-types/", map[string]any{"type": "视觉检测"})
	customerID := ts.mustPost(t, "/api/customers/", map[string]any{"name": "比亚迪", "location": "深圳"})

	p := createProject(t, ts, map[string]any{
		"name":            "Alpha",
		"area_id":         areaID,
		"type_id":         typeID,
		"customer_id":     customerID,
		"team_id":         teamID,
		"initiation_date": "2024-05-06",
	})

	resp, err := ts.get("/api/projects/" + itoa(p.ID) + "/detail/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, resp.StatusCode)
	}

	detail := decode[dto.ProjectDetailResponse](t, resp)
	if detail.Code != "HF-20240506-001" {
		t.Errorf("expected code HF-20240506-001, got %s", detail.Code)
	}
	if detail.Area == nil || detail.Area.Code != "HF" {
		t.Errorf("expected area HF, got %+v", detail.Area)
	}
	if detail.ProjectType == nil || detail.ProjectType.Type != "视觉检测" {
		t.Errorf("expected project type, got %+v", detail.ProjectType)
	}
	if detail.Customer == nil || detail.Customer.Name != "比亚迪" {
		t.Errorf("expected customer, got %+v", detail.Customer)
	}
	if detail.ProjectStatus != nil {
		t.Errorf("expected null project_status, got %+v", detail.ProjectStatus)
	}

	tree := detail.Team
	if tree == nil {
		t.Fatal("expected team tree")
	}
	if tree.Key != "0" || tree.Data.Name != "张总" || tree.Data.Title != "项目总负责" {
		t.Errorf("unexpected root: %+v", tree)
	}
	if len(tree.Children) != 1 || tree.Children[0].Key != "0_2" {
		t.Fatalf("expected a single 0_2 child, got %+v", tree.Children)
	}
	if tree.Children[0].Data.Title != "未知职位" {
		t.Errorf("expected leader without position to be 未知职位, got %s", tree.Children[0].Data.Title)
	}
	members := tree.Children[0].Children
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if members[0].Key != "0_2_1" || members[0].Data.Name != "成员乙" {
		t.Errorf("expected first member by id to be 成员乙, got %+v", members[0])
	}
	if members[1].Key != "0_2_2" || members[1].Data.Name != "成员甲" {
		t.Errorf("expected second member by id to be 成员甲, got %+v", members[1])
	}
}

func TestProjectDetail_NoTeam(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	p := createProject(t, ts, map[string]any{"name": "Solo", "code": "SOLO-20240101-001"})

	resp, err := ts.get("/api/projects/" + itoa(p.ID) + "/detail/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	detail := decode[map[string]any](t, resp)
	if team, ok := detail["team"]; !ok || team != nil {
		t.Errorf("expected team to be null, got %v", team)
	}

	missing, err := ts.get("/api/projects/999/detail/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("expected %d, got %d", http.StatusNotFound, missing.StatusCode)
	}
}

func TestProjectTasks(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	p := createProject(t, ts, map[string]any{"name": "Alpha", "code": "A-20240101-001"})
	other := createProject(t, ts, map[string]any{"name": "Beta", "code": "B-20240101-001"})

	parent := ts.mustPost(t, "/api/tasks/", map[string]any{"title": "Design", "project_id": p.ID})
	ts.mustPost(t, "/api/tasks/", map[string]any{"title": "Review", "project_id": p.ID, "parent_task_id": parent, "priority": "2"})
	ts.mustPost(t, "/api/tasks/", map[string]any{"title": "Other", "project_id": other.ID})

	resp, err := ts.get("/api/projects/" + itoa(p.ID) + "/tasks/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	tasks := decode[[]domain.Task](t, resp)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Status != domain.TaskTodo || tasks[0].Priority != domain.PriorityNormal {
		t.Errorf("expected defaults todo/0, got %s/%s", tasks[0].Status, tasks[0].Priority)
	}
	if tasks[0].AllocatorID == nil || *tasks[0].AllocatorID != ts.adminID {
		t.Errorf("expected allocator to default to the caller %d, got %v", ts.adminID, tasks[0].AllocatorID)
	}
	if tasks[1].ParentTaskID == nil || *tasks[1].ParentTaskID != parent {
		t.Errorf("expected parent %d, got %v", parent, tasks[1].ParentTaskID)
	}

	del, err := ts.deleteRequest("/api/projects/" + itoa(p.ID) + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	del.Body.Close()

	gone, err := ts.get("/api/tasks/" + itoa(parent) + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	gone.Body.Close()
	if gone.StatusCode != http.StatusNotFound {
		t.Errorf("expected task to be deleted with project, got %d", gone.StatusCode)
	}
}

func TestUpdateTask_Cycle(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	p := createProject(t, ts, map[string]any{"name": "Alpha", "code": "A-20240101-001"})
	a := ts.mustPost(t, "/api/tasks/", map[string]any{"title": "A", "project_id": p.ID})
	b := ts.mustPost(t, "/api/tasks/", map[string]any{"title": "B", "project_id": p.ID, "parent_task_id": a})

	resp, err := ts.patchJSON("/api/tasks/"+itoa(a)+"/", map[string]any{"parent_task_id": b})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected %d, got %d", http.StatusConflict, resp.StatusCode)
	}

	done, err := ts.patchJSON("/api/tasks/"+itoa(b)+"/", map[string]any{"status": "completed"})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer done.Body.Close()
	if task := decode[domain.Task](t, done); task.CompletedTime == nil {
		t.Error("expected completed_time to be stamped")
	}
}
