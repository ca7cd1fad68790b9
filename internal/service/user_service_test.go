package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"program_hub_backend/internal/model"
	"program_hub_backend/internal/repository"
	"program_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userTestEnv(t *testing.T) (*UserService, *repository.UserRepository, *model.Program) {
	t.Helper()

	gw := repository.NewGateway(repository.NewMemoryStore(), repository.NewMemorySnapshotCache())
	users := repository.NewUserRepository(gw)
	programs := repository.NewProgramRepository(gw)

	program := &model.Program{ID: "p1", Slug: "onboarding", Title: "入职培训"}
	week := model.Week{ID: "w1", WeekNumber: 1, Title: "一"}
	require.NoError(t, week.AddElement(model.LearningElement{
		ID: "el-1", Type: model.ElementQASession, Title: "反思问答",
		Payload: &model.QASessionPayload{Prompts: []model.QAPrompt{{ID: "q1", Question: "你的目标?"}}},
	}))
	require.NoError(t, program.InsertWeek(week))
	_, err := programs.Save(context.Background(), program, repository.VersionNew)
	require.NoError(t, err)

	require.NoError(t, users.Save(context.Background(), &model.User{
		ID: "u1", Email: "lee@example.com", Name: "李雷", Role: model.Learner,
	}))

	return NewUserService(users, programs), users, program
}

func TestSubmitCompletionReplacesPrevious(t *testing.T) {
	svc, users, _ := userTestEnv(t)
	ctx := context.Background()

	three := 3
	_, err := svc.SubmitCompletion(ctx, "u1", "p1", &three, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	five := 5
	_, err = svc.SubmitCompletion(ctx, "u1", "p1", &five, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	user, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, user.ProgramCompletions, 1, "同课程重复提交是替换不是追加")
	assert.Equal(t, 5, *user.ProgramCompletions[0].SatisfactionScore)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), user.ProgramCompletions[0].CompletionDate)
}

func TestSubmitCompletionScoreRange(t *testing.T) {
	svc, _, _ := userTestEnv(t)
	ctx := context.Background()

	six := 6
	_, err := svc.SubmitCompletion(ctx, "u1", "p1", &six, time.Now())
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))

	// 无评分也是合法的完成记录
	_, err = svc.SubmitCompletion(ctx, "u1", "p1", nil, time.Now())
	assert.NoError(t, err)
}

func TestSubmitCompletionUnknownProgram(t *testing.T) {
	svc, _, _ := userTestEnv(t)

	_, err := svc.SubmitCompletion(context.Background(), "u1", "ghost", nil, time.Now())
	assert.True(t, repository.IsNotFound(err))
}

func TestMarkElementCompleteRequiresMembership(t *testing.T) {
	svc, users, _ := userTestEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.MarkElementComplete(ctx, "u1", "p1", "el-1"))
	// 重复标记幂等
	require.NoError(t, svc.MarkElementComplete(ctx, "u1", "p1", "el-1"))

	user, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, user.CompletedElementCount("p1"))

	err = svc.MarkElementComplete(ctx, "u1", "p1", "not-in-program")
	assert.ErrorIs(t, err, util.ErrElementNotFound)
}

func TestSubmitResponseOverwrites(t *testing.T) {
	svc, users, _ := userTestEnv(t)
	ctx := context.Background()

	first := json.RawMessage(`{"answer":"初稿"}`)
	require.NoError(t, svc.SubmitResponse(ctx, "u1", "p1", "el-1", ResponseQuiz, first))

	second := json.RawMessage(`{"answer":"终稿"}`)
	require.NoError(t, svc.SubmitResponse(ctx, "u1", "p1", "el-1", ResponseQuiz, second))

	user, err := users.FindByID(ctx, "u1")
	require.NoError(t, err)
	require.Contains(t, user.QuizResponses, "el-1")
	assert.JSONEq(t, `{"answer":"终稿"}`, string(user.QuizResponses["el-1"]))
	assert.Empty(t, user.ScenarioResponses, "不同 kind 写入不同集合")
}

func TestSubmitResponseUnknownKind(t *testing.T) {
	svc, _, _ := userTestEnv(t)

	err := svc.SubmitResponse(context.Background(), "u1", "p1", "el-1", ResponseKind("poll"), json.RawMessage(`{}`))
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}
