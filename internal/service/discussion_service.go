package service

import (
	"context"
	"time"

	"program_hub_backend/internal/model"
	"program_hub_backend/internal/repository"
	"program_hub_backend/internal/util"
)

// DiscussionService 课程讨论区；发帖前复用访问判定，未解锁课程不可见
type DiscussionService struct {
	Discussions *repository.DiscussionRepository
	Users       *repository.UserRepository
	Access      *AccessService
}

func NewDiscussionService(discussions *repository.DiscussionRepository, users *repository.UserRepository, access *AccessService) *DiscussionService {
	return &DiscussionService{Discussions: discussions, Users: users, Access: access}
}

func (s *DiscussionService) Post(ctx context.Context, userID, programID, content string) (*model.Discussion, error) {
	decision, err := s.Access.CanAccessProgram(ctx, userID, programID, time.Now())
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, util.ErrPermissionDenied
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	message := &model.Discussion{
		ID:         util.NewEntityID(),
		ProgramID:  programID,
		UserID:     userID,
		AuthorName: user.Name,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	if err := s.Discussions.Save(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *DiscussionService) List(ctx context.Context, userID, programID string) ([]model.Discussion, error) {
	decision, err := s.Access.CanAccessProgram(ctx, userID, programID, time.Now())
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, util.ErrPermissionDenied
	}
	return s.Discussions.FindByProgram(ctx, programID)
}

// Delete 仅作者本人或管理员可删
func (s *DiscussionService) Delete(ctx context.Context, userID string, role model.UserRole, messageID string) error {
	message, err := s.Discussions.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.UserID != userID && role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.Discussions.Delete(ctx, messageID)
}
