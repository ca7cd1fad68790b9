package service

import (
	"context"
	"time"

	"program_hub_backend/internal/model"
	"program_hub_backend/internal/repository"
)

type AccessReason string

const (
	ReasonCompleted       AccessReason = "completed"
	ReasonActiveVoucher   AccessReason = "active_voucher"
	ReasonNoActiveVoucher AccessReason = "no_active_voucher"
	ReasonVoucherExpired  AccessReason = "voucher_expired"
)

// AccessDecision 访问判定结果。拒绝是常态而非异常，因此不用 error 表达；
// reason 仅含本人凭证状态，不泄露他人信息
type AccessDecision struct {
	Allowed bool         `json:"allowed"`
	Reason  AccessReason `json:"reason"`
}

type AccessService struct {
	Users    *repository.UserRepository
	Programs *repository.ProgramRepository
}

func NewAccessService(users *repository.UserRepository, programs *repository.ProgramRepository) *AccessService {
	return &AccessService{Users: users, Programs: programs}
}

// CanAccess 纯判定，无任何副作用；凭证状态流转由调用方另行显式触发。
// 顺序：已完成放行 → 无可用凭证拒绝 → 按日历日比较过期（边界日含当天）
func (s *AccessService) CanAccess(user *model.User, program *model.Program, now time.Time) AccessDecision {
	if user.CompletionFor(program.ID) != nil {
		return AccessDecision{Allowed: true, Reason: ReasonCompleted}
	}

	voucher := user.ActiveVoucherFor(program.ID)
	if voucher == nil {
		return AccessDecision{Allowed: false, Reason: ReasonNoActiveVoucher}
	}

	if voucher.ExpiredAt(now) {
		return AccessDecision{Allowed: false, Reason: ReasonVoucherExpired}
	}
	return AccessDecision{Allowed: true, Reason: ReasonActiveVoucher}
}

// CanAccessProgram 在边界处做外键存在性检查后调用纯判定。
// 课程不存在时返回 NotFoundError，而不是默默拒绝
func (s *AccessService) CanAccessProgram(ctx context.Context, userID, programID string, now time.Time) (AccessDecision, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return AccessDecision{}, err
	}

	program, _, err := s.Programs.FindByID(ctx, programID)
	if err != nil {
		return AccessDecision{}, err
	}

	return s.CanAccess(user, program, now), nil
}
