package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themis-api/internal/config"
	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/repository"
	"github.com/themis-api/internal/storage"
	"github.com/themis-api/internal/testutil"
	"gorm.io/gorm"
)

var testMedia = storage.NewURLResolver(config.MediaConfig{Host: "http://media.test", URLPrefix: "/media/"})

func newProjectService(t *testing.T) (ProjectService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := NewProjectService(
		repository.NewProjectRepository(db),
		repository.NewAreaRepository(db),
		repository.NewTeamRepository(db),
		testMedia,
	)
	return svc, db
}

func createArea(t *testing.T, db *gorm.DB, name, code string) *domain.Area {
	t.Helper()
	area := &domain.Area{Name: name, Code: code}
	require.NoError(t, db.Create(area).Error)
	return area
}

func TestProjectService_CreateGeneratesSequentialCodes(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	sz := createArea(t, db, "Shenzhen", "SZ")
	hf := createArea(t, db, "Hefei", "HF")

	create := func(areaID int64, initiation *string) *domain.Project {
		p, err := svc.Create(ctx, &dto.CreateProjectRequest{Name: "p", AreaID: &areaID, InitiationDate: initiation})
		require.NoError(t, err)
		return p
	}

	first := create(sz.ID, testutil.Ptr("2024-01-01"))
	second := create(sz.ID, testutil.Ptr("2024-01-01"))
	otherDay := create(sz.ID, testutil.Ptr("2024-01-02"))
	otherArea := create(hf.ID, testutil.Ptr("2024-01-01"))
	third := create(sz.ID, testutil.Ptr("2024-01-01"))

	assert.Equal(t, "SZ-20240101-001", first.Code)
	assert.Equal(t, "SZ-20240101-002", second.Code)
	assert.Equal(t, "SZ-20240102-001", otherDay.Code)
	assert.Equal(t, "HF-20240101-001", otherArea.Code)
	assert.Equal(t, "SZ-20240101-003", third.Code)
}

func TestProjectService_CreateWithoutInitiationDate(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	sz := createArea(t, db, "Shenzhen", "SZ")

	first, err := svc.Create(ctx, &dto.CreateProjectRequest{Name: "a", AreaID: &sz.ID})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &dto.CreateProjectRequest{Name: "b", AreaID: &sz.ID})
	require.NoError(t, err)

	assert.Equal(t, "SZ-99991231-001", first.Code)
	assert.Equal(t, "SZ-99991231-002", second.Code)
	assert.Nil(t, first.CompletionDateEst)
}

func TestProjectService_DefaultCompletionDate(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	sz := createArea(t, db, "Shenzhen", "SZ")

	p, err := svc.Create(ctx, &dto.CreateProjectRequest{Name: "a", AreaID: &sz.ID, InitiationDate: testutil.Ptr("2024-01-01")})
	require.NoError(t, err)
	require.NotNil(t, p.CompletionDateEst)
	assert.Equal(t, "2024-03-31", *FormatDate(p.CompletionDateEst))

	p, err = svc.Create(ctx, &dto.CreateProjectRequest{
		Name:              "b",
		AreaID:            &sz.ID,
		InitiationDate:    testutil.Ptr("2024-01-01"),
		CompletionDateEst: testutil.Ptr("2024-06-30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-30", *FormatDate(p.CompletionDateEst))
}

func TestProjectService_CodeRequiresArea(t *testing.T) {
	svc, _ := newProjectService(t)

	_, err := svc.Create(context.Background(), &dto.CreateProjectRequest{Name: "a"})
	assert.ErrorIs(t, err, domain.ErrProjectAreaRequired)
}

func TestProjectService_ExplicitCodeIsKept(t *testing.T) {
	svc, _ := newProjectService(t)

	p, err := svc.Create(context.Background(), &dto.CreateProjectRequest{Name: "a", Code: testutil.Ptr("LEGACY-1")})
	require.NoError(t, err)
	assert.Equal(t, "LEGACY-1", p.Code)

	_, err = svc.Create(context.Background(), &dto.CreateProjectRequest{Name: "b", Code: testutil.Ptr("LEGACY-1")})
	assert.ErrorIs(t, err, domain.ErrDuplicateProjectCode)
}

func TestProjectService_CodeIsImmutable(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	sz := createArea(t, db, "Shenzhen", "SZ")
	hf := createArea(t, db, "Hefei", "HF")

	p, err := svc.Create(ctx, &dto.CreateProjectRequest{Name: "a", AreaID: &sz.ID, InitiationDate: testutil.Ptr("2024-01-01")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, &dto.UpdateProjectRequest{
		Name:           testutil.Ptr("renamed"),
		AreaID:         &hf.ID,
		InitiationDate: testutil.Ptr("2025-05-05"),
	})
	require.NoError(t, err)
	assert.Equal(t, "SZ-20240101-001", updated.Code)
	assert.Equal(t, "renamed", updated.Name)

	stored, err := svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "SZ-20240101-001", stored.Code)
}

func TestProjectService_MalformedSequence(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()
	sz := createArea(t, db, "Shenzhen", "SZ")

	_, err := svc.Create(ctx, &dto.CreateProjectRequest{
		Name:           "legacy",
		Code:           testutil.Ptr("SZ-20240101-abc"),
		AreaID:         &sz.ID,
		InitiationDate: testutil.Ptr("2024-01-01"),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &dto.CreateProjectRequest{Name: "next", AreaID: &sz.ID, InitiationDate: testutil.Ptr("2024-01-01")})
	if !errors.Is(err, domain.ErrMalformedProjectCode) {
		t.Fatalf("expected ErrMalformedProjectCode, got %v", err)
	}

	var count int64
	db.Model(&domain.Project{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestProjectService_UnknownTeam(t *testing.T) {
	svc, _ := newProjectService(t)
	teamID := int64(42)

	_, err := svc.Create(context.Background(), &dto.CreateProjectRequest{Name: "a", Code: testutil.Ptr("X"), TeamID: &teamID})
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}

func TestProjectService_DeleteRemovesTasks(t *testing.T) {
	svc, db := newProjectService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, &dto.CreateProjectRequest{Name: "a", Code: testutil.Ptr("X-1")})
	require.NoError(t, err)
	other, err := svc.Create(ctx, &dto.CreateProjectRequest{Name: "b", Code: testutil.Ptr("X-2")})
	require.NoError(t, err)

	parent := &domain.Task{Title: "parent", ProjectID: p.ID, Status: domain.TaskTodo, Priority: domain.PriorityNormal}
	require.NoError(t, db.Create(parent).Error)
	child := &domain.Task{Title: "child", ProjectID: other.ID, ParentTaskID: &parent.ID, Status: domain.TaskTodo, Priority: domain.PriorityNormal}
	require.NoError(t, db.Create(child).Error)

	require.NoError(t, svc.Delete(ctx, p.ID))

	var remaining []domain.Task
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, child.ID, remaining[0].ID)
	assert.Nil(t, remaining[0].ParentTaskID)

	assert.ErrorIs(t, svc.Delete(ctx, p.ID), domain.ErrProjectNotFound)
}
