package model

import (
	"encoding/json"
	"time"
)

type UserRole string

const (
	Learner UserRole = "learner"
	Admin   UserRole = "admin"
)

// User 学习者档案。完成记录/凭证/作答集合由该用户会话独占写入；
// 课程内容仅以 id 引用，不持有反向指针
type User struct {
	ID                 string              `json:"id"`
	Email              string              `json:"email"`
	Name               string              `json:"name"`
	PasswordHash       string              `json:"passwordHash,omitempty"`
	Role               UserRole            `json:"role"`
	Language           string              `json:"language,omitempty"`
	ProgramCompletions []ProgramCompletion `json:"programCompletions,omitempty"`
	Vouchers           []Voucher           `json:"vouchers,omitempty"`
	// 自由作答集合，均以元素 id 为键
	ScenarioResponses map[string]json.RawMessage `json:"scenarioResponses,omitempty"`
	QuizResponses     map[string]json.RawMessage `json:"quizResponses,omitempty"`
	TestResponses     map[string]json.RawMessage `json:"testResponses,omitempty"`
	// programId -> 已完成的元素 id 集合，用于加权进度计算
	ElementCompletions map[string][]string `json:"elementCompletions,omitempty"`
	LastSeen           time.Time           `json:"lastSeen"`
	CreatedAt          time.Time           `json:"createdAt"`
}

// ProgramCompletion 每个 (user, program) 至多一条；重复提交满意度为替换而非追加
type ProgramCompletion struct {
	ProgramID         string    `json:"programId"`
	CompletionDate    time.Time `json:"completionDate"`
	SatisfactionScore *int      `json:"satisfactionScore,omitempty"`
}

func (c *ProgramCompletion) Validate() error {
	if c.ProgramID == "" {
		return NewValidationError("programId", "programId is required")
	}
	if c.SatisfactionScore != nil {
		if *c.SatisfactionScore < 1 || *c.SatisfactionScore > 5 {
			return NewValidationError("satisfactionScore", "satisfactionScore must be between 1 and 5")
		}
	}
	return nil
}

func (u *User) Validate() error {
	if u.ID == "" {
		return NewValidationError("id", "id is required")
	}
	if u.Email == "" {
		return NewValidationError("email", "email is required")
	}
	switch u.Role {
	case Learner, Admin:
	default:
		return NewValidationError("role", "role must be learner or admin")
	}
	for i := range u.ProgramCompletions {
		if err := u.ProgramCompletions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CompletionFor 返回指定课程的完成记录（无则 nil）
func (u *User) CompletionFor(programID string) *ProgramCompletion {
	for i := range u.ProgramCompletions {
		if u.ProgramCompletions[i].ProgramID == programID {
			return &u.ProgramCompletions[i]
		}
	}
	return nil
}

// SetCompletion 落一条完成记录；同课程已有记录时整体替换
func (u *User) SetCompletion(c ProgramCompletion) {
	for i := range u.ProgramCompletions {
		if u.ProgramCompletions[i].ProgramID == c.ProgramID {
			u.ProgramCompletions[i] = c
			return
		}
	}
	u.ProgramCompletions = append(u.ProgramCompletions, c)
}

// ActiveVoucherFor 返回首个匹配课程且状态为 active 的凭证
// 多张可用时不保证取哪一张，调用方不得依赖顺序
func (u *User) ActiveVoucherFor(programID string) *Voucher {
	for i := range u.Vouchers {
		if u.Vouchers[i].ProgramID == programID && u.Vouchers[i].Status == VoucherActive {
			return &u.Vouchers[i]
		}
	}
	return nil
}

// MarkElementComplete 记录元素完成；重复标记幂等
func (u *User) MarkElementComplete(programID, elementID string) {
	if u.ElementCompletions == nil {
		u.ElementCompletions = map[string][]string{}
	}
	for _, id := range u.ElementCompletions[programID] {
		if id == elementID {
			return
		}
	}
	u.ElementCompletions[programID] = append(u.ElementCompletions[programID], elementID)
}

// CompletedElementCount 指定课程内已完成元素数
func (u *User) CompletedElementCount(programID string) int {
	return len(u.ElementCompletions[programID])
}
