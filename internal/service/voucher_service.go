package service

import (
	"context"
	"time"

	"program_hub_backend/internal/model"
	"program_hub_backend/internal/repository"
	"program_hub_backend/internal/util"
)

const bulkCreateMax = 500

// VoucherService 凭证的批量发放与显式状态流转。
// 访问判定（AccessService）绝不在内部改凭证状态，所有流转都从这里走
type VoucherService struct {
	Vouchers *repository.VoucherRepository
	Programs *repository.ProgramRepository
	Users    *repository.UserRepository
}

func NewVoucherService(vouchers *repository.VoucherRepository, programs *repository.ProgramRepository, users *repository.UserRepository) *VoucherService {
	return &VoucherService{Vouchers: vouchers, Programs: programs, Users: users}
}

type BulkCreateRequest struct {
	ProgramID  string `json:"programId" binding:"required"`
	Count      int    `json:"count" binding:"required"`
	ExpiryDate string `json:"expiryDate" binding:"required"`
}

// BulkCreate 一次铸造 count 张凭证：同一课程、同一过期日、各自独立 id、
// 初始状态 active。programId 必须真实存在
func (s *VoucherService) BulkCreate(ctx context.Context, req BulkCreateRequest) ([]model.Voucher, error) {
	if req.Count < 1 || req.Count > bulkCreateMax {
		return nil, util.ErrVoucherCountRange
	}
	if _, err := time.Parse(util.DateFormat, req.ExpiryDate); err != nil {
		return nil, model.NewValidationError("expiryDate", "expiryDate must be an ISO date (2006-01-02)")
	}

	// 外键存在性检查：课程必须存在
	if _, _, err := s.Programs.FindByID(ctx, req.ProgramID); err != nil {
		return nil, err
	}

	now := time.Now()
	vouchers := make([]model.Voucher, req.Count)
	for i := range vouchers {
		vouchers[i] = model.Voucher{
			ID:                util.NewEntityID(),
			ProgramID:         req.ProgramID,
			Status:            model.VoucherActive,
			AccessExpiresDate: req.ExpiryDate,
			CreatedAt:         now,
		}
	}

	if err := s.Vouchers.SaveAll(ctx, vouchers); err != nil {
		return nil, err
	}
	return vouchers, nil
}

func (s *VoucherService) ListByProgram(ctx context.Context, programID string) ([]model.Voucher, error) {
	return s.Vouchers.FindByProgram(ctx, programID)
}

// Redeem 学习者兑换一张未分配的 active 凭证，副本并入本人档案
func (s *VoucherService) Redeem(ctx context.Context, userID, voucherID string) (*model.Voucher, error) {
	voucher, err := s.Vouchers.FindByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.Status != model.VoucherActive {
		return nil, util.ErrVoucherNotActive
	}
	if voucher.UserID != "" && voucher.UserID != userID {
		return nil, util.ErrVoucherAssigned
	}

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	voucher.UserID = userID
	if err := s.Vouchers.Save(ctx, voucher); err != nil {
		return nil, err
	}

	replaceUserVoucher(user, *voucher)
	if err := s.Users.Save(ctx, user); err != nil {
		return nil, err
	}
	return voucher, nil
}

// MarkUsed 显式标记已使用；凭证访问校验中绝不隐式调用
func (s *VoucherService) MarkUsed(ctx context.Context, voucherID string) (*model.Voucher, error) {
	return s.transition(ctx, voucherID, model.VoucherUsed)
}

// Void 作废凭证（如企业合同终止）
func (s *VoucherService) Void(ctx context.Context, voucherID string) (*model.Voucher, error) {
	return s.transition(ctx, voucherID, model.VoucherVoid)
}

func (s *VoucherService) transition(ctx context.Context, voucherID string, status model.VoucherStatus) (*model.Voucher, error) {
	voucher, err := s.Vouchers.FindByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}

	voucher.Status = status
	if err := s.Vouchers.Save(ctx, voucher); err != nil {
		return nil, err
	}

	// 已兑换的凭证同步更新持有人档案里的副本
	if voucher.UserID != "" {
		user, err := s.Users.FindByID(ctx, voucher.UserID)
		if err == nil {
			replaceUserVoucher(user, *voucher)
			if sErr := s.Users.Save(ctx, user); sErr != nil {
				return nil, sErr
			}
		} else if !repository.IsNotFound(err) {
			return nil, err
		}
	}
	return voucher, nil
}

func replaceUserVoucher(user *model.User, voucher model.Voucher) {
	for i := range user.Vouchers {
		if user.Vouchers[i].ID == voucher.ID {
			user.Vouchers[i] = voucher
			return
		}
	}
	user.Vouchers = append(user.Vouchers, voucher)
}
