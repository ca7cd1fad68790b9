package model

import "time"

type ProgressStatus string

const (
	StatusCompleted  ProgressStatus = "Completed"
	StatusInProgress ProgressStatus = "In Progress"
	StatusNotStarted ProgressStatus = "Not Started"
)

// UserProgressRow 单个 (user, program) 的进度行
type UserProgressRow struct {
	UserID            string         `json:"userId"`
	ProgramID         string         `json:"programId"`
	ProgressPercent   float64        `json:"progressPercent"`
	Status            ProgressStatus `json:"status"`
	SatisfactionScore *int           `json:"satisfactionScore,omitempty"`
	CompletionDate    *time.Time     `json:"completionDate,omitempty"`
}

// ProgramStats 课程维度的汇总统计
// AverageSatisfaction 在没有任何满意度评分时为 null，绝不以 0 顶替
type ProgramStats struct {
	ProgramID           string   `json:"programId"`
	ParticipantCount    int      `json:"participantCount"`
	CompletedCount      int      `json:"completedCount"`
	CompletionRate      float64  `json:"completionRate"`
	AverageSatisfaction *float64 `json:"averageSatisfaction"`
}
