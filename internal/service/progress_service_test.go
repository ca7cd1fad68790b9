package service

import (
	"fmt"
	"testing"
	"time"

	"program_hub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsFixture() ([]model.User, *model.Program) {
	program := &model.Program{ID: "p1", Slug: "onboarding", Title: "入职培训"}

	users := make([]model.User, 0, 10)
	for i := 0; i < 10; i++ {
		users = append(users, model.User{
			ID:    fmt.Sprintf("u%d", i),
			Email: fmt.Sprintf("u%d@example.com", i),
			Name:  fmt.Sprintf("学员%d", i),
			Role:  model.Learner,
		})
	}

	// 4 人完成，评分分别为 4、5、无、3
	scores := []*int{intPtr(4), intPtr(5), nil, intPtr(3)}
	for i, score := range scores {
		users[i].SetCompletion(model.ProgramCompletion{
			ProgramID:         "p1",
			CompletionDate:    time.Date(2024, 5, 1+i, 0, 0, 0, 0, time.UTC),
			SatisfactionScore: score,
		})
	}
	return users, program
}

func intPtr(v int) *int { return &v }

func TestPerProgramStats(t *testing.T) {
	svc := NewProgressService(nil, nil)
	users, program := statsFixture()

	stats := svc.PerProgramStats(users, program)

	assert.Equal(t, 10, stats.ParticipantCount)
	assert.Equal(t, 4, stats.CompletedCount)
	assert.Equal(t, 40.0, stats.CompletionRate)
	// 平均满意度只对有评分的完成记录求均值：(4+5+3)/3
	require.NotNil(t, stats.AverageSatisfaction)
	assert.Equal(t, 4.0, *stats.AverageSatisfaction)
}

func TestPerProgramStatsNoScores(t *testing.T) {
	svc := NewProgressService(nil, nil)
	program := &model.Program{ID: "p1", Slug: "s", Title: "t"}
	users := []model.User{
		{ID: "u1", Email: "a@b.c", Name: "甲", Role: model.Learner},
	}
	users[0].SetCompletion(model.ProgramCompletion{ProgramID: "p1", CompletionDate: time.Now()})

	stats := svc.PerProgramStats(users, program)
	assert.Equal(t, 1, stats.CompletedCount)
	assert.Nil(t, stats.AverageSatisfaction, "无评分时平均满意度为 null 而不是 0")
}

func TestPerUserProgressStatuses(t *testing.T) {
	svc := NewProgressService(nil, nil)

	program := model.Program{ID: "p1", Slug: "s", Title: "t"}
	week := model.Week{ID: "w1", WeekNumber: 1, Title: "一"}
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, week.AddElement(model.LearningElement{
			ID: id, Type: model.ElementVideo, Title: "视频",
			Payload: &model.VideoPayload{URL: "https://v/" + id},
		}))
	}
	require.NoError(t, program.InsertWeek(week))

	done := model.User{ID: "done", Email: "d@x.c", Name: "完", Role: model.Learner}
	done.SetCompletion(model.ProgramCompletion{ProgramID: "p1", CompletionDate: time.Now()})

	partial := model.User{ID: "partial", Email: "p@x.c", Name: "半", Role: model.Learner}
	partial.MarkElementComplete("p1", "a")
	partial.MarkElementComplete("p1", "b")
	partial.MarkElementComplete("p1", "c")

	idle := model.User{ID: "idle", Email: "i@x.c", Name: "未", Role: model.Learner}

	rows := svc.PerUserProgress([]model.User{done, partial, idle}, []model.Program{program})
	require.Len(t, rows, 3)

	byUser := map[string]model.UserProgressRow{}
	for _, r := range rows {
		byUser[r.UserID] = r
	}

	assert.Equal(t, model.StatusCompleted, byUser["done"].Status)
	assert.Equal(t, 100.0, byUser["done"].ProgressPercent)
	require.NotNil(t, byUser["done"].CompletionDate)

	assert.Equal(t, model.StatusInProgress, byUser["partial"].Status)
	assert.Equal(t, 75.0, byUser["partial"].ProgressPercent)

	assert.Equal(t, model.StatusNotStarted, byUser["idle"].Status)
	assert.Equal(t, 0.0, byUser["idle"].ProgressPercent)
}

func TestPerUserProgressRoundsToOneDecimal(t *testing.T) {
	svc := NewProgressService(nil, nil)

	program := model.Program{ID: "p1", Slug: "s", Title: "t"}
	week := model.Week{ID: "w1", WeekNumber: 1, Title: "一"}
	for i := 0; i < 3; i++ {
		require.NoError(t, week.AddElement(model.LearningElement{
			ID: fmt.Sprintf("e%d", i), Type: model.ElementVideo, Title: "视频",
			Payload: &model.VideoPayload{URL: "https://v"},
		}))
	}
	require.NoError(t, program.InsertWeek(week))

	user := model.User{ID: "u", Email: "u@x.c", Name: "测", Role: model.Learner}
	user.MarkElementComplete("p1", "e0")

	rows := svc.PerUserProgress([]model.User{user}, []model.Program{program})
	require.Len(t, rows, 1)
	// 1/3 => 33.333... 保留一位小数
	assert.Equal(t, 33.3, rows[0].ProgressPercent)
}

func TestProgressNeverExceedsHundred(t *testing.T) {
	svc := NewProgressService(nil, nil)

	program := model.Program{ID: "p1", Slug: "s", Title: "t"}
	week := model.Week{ID: "w1", WeekNumber: 1, Title: "一"}
	require.NoError(t, week.AddElement(model.LearningElement{
		ID: "a", Type: model.ElementVideo, Title: "视频",
		Payload: &model.VideoPayload{URL: "https://v"},
	}))
	require.NoError(t, program.InsertWeek(week))

	// 完成记录里带有课程中已被删除的元素
	user := model.User{ID: "u", Email: "u@x.c", Name: "测", Role: model.Learner}
	user.MarkElementComplete("p1", "a")
	user.MarkElementComplete("p1", "removed-element")

	rows := svc.PerUserProgress([]model.User{user}, []model.Program{program})
	require.Len(t, rows, 1)
	assert.Equal(t, 100.0, rows[0].ProgressPercent)
	assert.Equal(t, model.StatusInProgress, rows[0].Status)
}
