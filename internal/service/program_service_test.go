package service

import (
	"context"
	"testing"

	"program_hub_backend/internal/model"
	"program_hub_backend/internal/repository"
	"program_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func programTestEnv() *ProgramService {
	gw := repository.NewGateway(repository.NewMemoryStore(), repository.NewMemorySnapshotCache())
	return NewProgramService(repository.NewProgramRepository(gw), NewElementFactory())
}

func TestCreateProgramDerivesSlug(t *testing.T) {
	svc := programTestEnv()
	ctx := context.Background()

	program, err := svc.CreateProgram(ctx, CreateProgramRequest{
		Title: "New Employee Onboarding 2026",
		Tags:  []string{"hr", "hr", "onboarding"},
	})
	require.NoError(t, err)
	assert.Equal(t, "new-employee-onboarding-2026", program.Slug)
	assert.Equal(t, []string{"hr", "onboarding"}, program.Tags, "重复标签应去重")
	assert.NotEmpty(t, program.ID)
	assert.Empty(t, program.Weeks)
}

func TestCreateProgramRejectsDuplicateSlug(t *testing.T) {
	svc := programTestEnv()
	ctx := context.Background()

	_, err := svc.CreateProgram(ctx, CreateProgramRequest{Title: "Leadership Basics"})
	require.NoError(t, err)

	_, err = svc.CreateProgram(ctx, CreateProgramRequest{Title: "Leadership Basics"})
	assert.ErrorIs(t, err, util.ErrSlugTaken)
}

func TestUpdateProgramOptimisticLocking(t *testing.T) {
	svc := programTestEnv()
	ctx := context.Background()

	program, err := svc.CreateProgram(ctx, CreateProgramRequest{Title: "Safety Training"})
	require.NoError(t, err)

	_, version, err := svc.GetProgram(ctx, program.ID)
	require.NoError(t, err)

	title := "Safety Training 2026"
	_, err = svc.UpdateProgram(ctx, program.ID, UpdateProgramRequest{Version: version, Title: &title})
	require.NoError(t, err)

	// 旧版本号重放被拒绝
	stale := "Stale Title"
	_, err = svc.UpdateProgram(ctx, program.ID, UpdateProgramRequest{Version: version, Title: &stale})
	require.Error(t, err)
	assert.True(t, repository.IsConflict(err))

	got, _, err := svc.GetProgram(ctx, program.ID)
	require.NoError(t, err)
	assert.Equal(t, "Safety Training 2026", got.Title)
}

func TestAddWeekOutOfOrder(t *testing.T) {
	svc := programTestEnv()
	ctx := context.Background()

	program, err := svc.CreateProgram(ctx, CreateProgramRequest{Title: "Compliance"})
	require.NoError(t, err)

	version := int64(1)
	for _, n := range []int{2, 1, 3} {
		updated, addErr := svc.AddWeek(ctx, program.ID, WeekRequest{
			Version: version, WeekNumber: n, Title: "周", Summary: "",
		})
		require.NoError(t, addErr)
		version++
		_ = updated
	}

	got, _, err := svc.GetProgram(ctx, program.ID)
	require.NoError(t, err)
	require.Len(t, got.Weeks, 3)
	assert.Equal(t, 1, got.Weeks[0].WeekNumber)
	assert.Equal(t, 2, got.Weeks[1].WeekNumber)
	assert.Equal(t, 3, got.Weeks[2].WeekNumber)

	// 周序号重复被拒绝
	_, err = svc.AddWeek(ctx, program.ID, WeekRequest{Version: version, WeekNumber: 2, Title: "又一周"})
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestAddPlaceholderThenUpdateElement(t *testing.T) {
	svc := programTestEnv()
	ctx := context.Background()

	program, err := svc.CreateProgram(ctx, CreateProgramRequest{Title: "Sales 101"})
	require.NoError(t, err)

	program, err = svc.AddWeek(ctx, program.ID, WeekRequest{Version: 1, WeekNumber: 1, Title: "第一周"})
	require.NoError(t, err)
	weekID := program.Weeks[0].ID

	program, err = svc.AddPlaceholder(ctx, program.ID, weekID, 2, model.ElementVideo)
	require.NoError(t, err)
	require.Len(t, program.Weeks[0].LearningElements, 1)

	placeholder := program.Weeks[0].LearningElements[0]
	assert.Equal(t, model.ElementVideo, placeholder.Type)

	edited := placeholder
	edited.Title = "产品演示视频"
	edited.Payload = &model.VideoPayload{URL: "https://cdn.example.com/demo.mp4"}

	program, err = svc.UpdateElement(ctx, program.ID, weekID, 3, edited)
	require.NoError(t, err)
	assert.Equal(t, "产品演示视频", program.Weeks[0].LearningElements[0].Title)

	// 不存在的元素更新报错
	ghost := edited
	ghost.ID = "ghost"
	_, err = svc.UpdateElement(ctx, program.ID, weekID, 4, ghost)
	assert.ErrorIs(t, err, util.ErrElementNotFound)
}

func TestRemoveElementAndWeek(t *testing.T) {
	svc := programTestEnv()
	ctx := context.Background()

	program, err := svc.CreateProgram(ctx, CreateProgramRequest{Title: "Ops Handbook"})
	require.NoError(t, err)
	program, err = svc.AddWeek(ctx, program.ID, WeekRequest{Version: 1, WeekNumber: 1, Title: "一"})
	require.NoError(t, err)
	weekID := program.Weeks[0].ID

	program, err = svc.AddPlaceholder(ctx, program.ID, weekID, 2, model.ElementChecklist)
	require.NoError(t, err)
	elementID := program.Weeks[0].LearningElements[0].ID

	program, err = svc.RemoveElement(ctx, program.ID, weekID, elementID, 3)
	require.NoError(t, err)
	assert.Empty(t, program.Weeks[0].LearningElements)

	_, err = svc.RemoveElement(ctx, program.ID, weekID, elementID, 4)
	assert.ErrorIs(t, err, util.ErrElementNotFound)

	program, err = svc.RemoveWeek(ctx, program.ID, weekID, 4)
	require.NoError(t, err)
	assert.Empty(t, program.Weeks)

	_, err = svc.RemoveWeek(ctx, program.ID, weekID, 5)
	assert.ErrorIs(t, err, util.ErrWeekNotFound)
}

func TestAttachCompanyDocument(t *testing.T) {
	svc := programTestEnv()
	ctx := context.Background()

	program, err := svc.CreateProgram(ctx, CreateProgramRequest{Title: "Client Playbook"})
	require.NoError(t, err)

	program, err = svc.AttachCompanyDocument(ctx, program.ID, 1, "保密协议", "https://files.example.com/nda.pdf")
	require.NoError(t, err)
	require.Len(t, program.CompanySpecificDocuments, 1)
	assert.Equal(t, "保密协议", program.CompanySpecificDocuments[0].Title)
	assert.NotEmpty(t, program.CompanySpecificDocuments[0].ID)
}
