package service

import (
	"context"
	"encoding/json"
	"time"

	"program_hub_backend/internal/model"
	"program_hub_backend/internal/repository"
	"program_hub_backend/internal/util"
)

// ResponseKind 自由作答集合的种类
type ResponseKind string

const (
	ResponseScenario ResponseKind = "scenario"
	ResponseQuiz     ResponseKind = "quiz"
	ResponseTest     ResponseKind = "test"
)

// UserService 学习者档案的独占写入口：完成记录、元素完成标记、作答集合
type UserService struct {
	Users    *repository.UserRepository
	Programs *repository.ProgramRepository
}

func NewUserService(users *repository.UserRepository, programs *repository.ProgramRepository) *UserService {
	return &UserService{Users: users, Programs: programs}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*model.User, error) {
	return s.Users.FindByID(ctx, userID)
}

// SubmitCompletion 落完成记录；同课程重复提交为替换（含满意度），不追加
func (s *UserService) SubmitCompletion(ctx context.Context, userID, programID string, score *int, now time.Time) (*model.ProgramCompletion, error) {
	// 外键存在性检查
	if _, _, err := s.Programs.FindByID(ctx, programID); err != nil {
		return nil, err
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	completion := model.ProgramCompletion{
		ProgramID:         programID,
		CompletionDate:    now,
		SatisfactionScore: score,
	}
	if err := completion.Validate(); err != nil {
		return nil, err
	}

	user.SetCompletion(completion)
	if err := s.Users.Save(ctx, user); err != nil {
		return nil, err
	}
	return &completion, nil
}

// MarkElementComplete 标记元素完成（幂等）；元素必须属于该课程
func (s *UserService) MarkElementComplete(ctx context.Context, userID, programID, elementID string) error {
	program, _, err := s.Programs.FindByID(ctx, programID)
	if err != nil {
		return err
	}
	if !program.ContainsElement(elementID) {
		return util.ErrElementNotFound
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	user.MarkElementComplete(programID, elementID)
	return s.Users.Save(ctx, user)
}

// SubmitResponse 按元素 id 记录作答；重复提交覆盖旧值
func (s *UserService) SubmitResponse(ctx context.Context, userID, programID, elementID string, kind ResponseKind, payload json.RawMessage) error {
	program, _, err := s.Programs.FindByID(ctx, programID)
	if err != nil {
		return err
	}
	if !program.ContainsElement(elementID) {
		return util.ErrElementNotFound
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	switch kind {
	case ResponseScenario:
		if user.ScenarioResponses == nil {
			user.ScenarioResponses = map[string]json.RawMessage{}
		}
		user.ScenarioResponses[elementID] = payload
	case ResponseQuiz:
		if user.QuizResponses == nil {
			user.QuizResponses = map[string]json.RawMessage{}
		}
		user.QuizResponses[elementID] = payload
	case ResponseTest:
		if user.TestResponses == nil {
			user.TestResponses = map[string]json.RawMessage{}
		}
		user.TestResponses[elementID] = payload
	default:
		return model.NewValidationError("kind", "kind must be scenario, quiz or test")
	}

	return s.Users.Save(ctx, user)
}
