package service

import (
	"context"
	"math"

	"program_hub_backend/internal/model"
	"program_hub_backend/internal/repository"
)

// ProgressService 把原始完成记录聚合为课程/学习者两个维度的统计。
// 聚合对缺失数据（无评分、未参与）一律以 null/0 表达，绝不报错
type ProgressService struct {
	Users    *repository.UserRepository
	Programs *repository.ProgramRepository
}

func NewProgressService(users *repository.UserRepository, programs *repository.ProgramRepository) *ProgressService {
	return &ProgressService{Users: users, Programs: programs}
}

// PerUserProgress 为每个 (user, program) 组合产出一行进度。
// 有完成记录 => Completed/100；否则按已完成元素数加权：
// percent = completed/total*100，0<percent<100 判为 In Progress
func (s *ProgressService) PerUserProgress(users []model.User, programs []model.Program) []model.UserProgressRow {
	rows := make([]model.UserProgressRow, 0, len(users)*len(programs))

	for ui := range users {
		user := &users[ui]
		for pi := range programs {
			program := &programs[pi]
			row := model.UserProgressRow{
				UserID:    user.ID,
				ProgramID: program.ID,
			}

			if completion := user.CompletionFor(program.ID); completion != nil {
				row.ProgressPercent = 100
				row.Status = model.StatusCompleted
				row.SatisfactionScore = completion.SatisfactionScore
				date := completion.CompletionDate
				row.CompletionDate = &date
			} else {
				row.ProgressPercent = elementProgress(user, program)
				if row.ProgressPercent > 0 {
					row.Status = model.StatusInProgress
				} else {
					row.Status = model.StatusNotStarted
				}
			}

			rows = append(rows, row)
		}
	}
	return rows
}

// PerProgramStats 课程维度汇总。participantCount 以全部已知用户为分母
// （无显式报名记录时人人都是潜在参与者）
func (s *ProgressService) PerProgramStats(users []model.User, program *model.Program) model.ProgramStats {
	stats := model.ProgramStats{
		ProgramID:        program.ID,
		ParticipantCount: len(users),
	}

	scoreSum := 0
	scoreCount := 0
	for i := range users {
		completion := users[i].CompletionFor(program.ID)
		if completion == nil {
			continue
		}
		stats.CompletedCount++
		if completion.SatisfactionScore != nil {
			scoreSum += *completion.SatisfactionScore
			scoreCount++
		}
	}

	if stats.ParticipantCount > 0 {
		stats.CompletionRate = round1(float64(stats.CompletedCount) / float64(stats.ParticipantCount) * 100)
	}
	if scoreCount > 0 {
		avg := round1(float64(scoreSum) / float64(scoreCount))
		stats.AverageSatisfaction = &avg
	}
	return stats
}

// ProgramStats 读取存储后的汇总入口
func (s *ProgressService) ProgramStats(ctx context.Context, programID string) (model.ProgramStats, error) {
	program, _, err := s.Programs.FindByID(ctx, programID)
	if err != nil {
		return model.ProgramStats{}, err
	}

	users, err := s.Users.FindAll(ctx)
	if err != nil {
		return model.ProgramStats{}, err
	}
	return s.PerProgramStats(users, program), nil
}

// ProgressMatrix 全量 (user, program) 进度矩阵，供报表视图消费
func (s *ProgressService) ProgressMatrix(ctx context.Context) ([]model.UserProgressRow, error) {
	users, err := s.Users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	programs, err := s.Programs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.PerUserProgress(users, programs), nil
}

// UserProgress 单个学习者的全部进度行
func (s *ProgressService) UserProgress(ctx context.Context, userID string) ([]model.UserProgressRow, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	programs, err := s.Programs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.PerUserProgress([]model.User{*user}, programs), nil
}

func elementProgress(user *model.User, program *model.Program) float64 {
	total := program.TotalElementCount()
	if total == 0 {
		return 0
	}

	completed := user.CompletedElementCount(program.ID)
	if completed > total {
		completed = total
	}
	return round1(float64(completed) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
