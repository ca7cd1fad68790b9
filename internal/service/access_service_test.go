package service

import (
	"testing"
	"time"

	"program_hub_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func accessFixture(vouchers ...model.Voucher) (*model.User, *model.Program) {
	user := &model.User{
		ID:       "u1",
		Email:    "lee@example.com",
		Name:     "李雷",
		Role:     model.Learner,
		Vouchers: vouchers,
	}
	program := &model.Program{ID: "p1", Slug: "onboarding", Title: "入职培训"}
	return user, program
}

func TestAccessDeniedWithoutVoucher(t *testing.T) {
	svc := NewAccessService(nil, nil)
	user, program := accessFixture()

	decision := svc.CanAccess(user, program, time.Now())
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonNoActiveVoucher, decision.Reason)
}

func TestAccessVoucherBoundaryDay(t *testing.T) {
	svc := NewAccessService(nil, nil)
	user, program := accessFixture(model.Voucher{
		ID:                "v1",
		ProgramID:         "p1",
		Status:            model.VoucherActive,
		AccessExpiresDate: "2024-01-10",
	})

	// 过期日当天（即使是深夜）仍可访问
	onBoundary := svc.CanAccess(user, program, time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC))
	assert.True(t, onBoundary.Allowed)
	assert.Equal(t, ReasonActiveVoucher, onBoundary.Reason)

	// 次日凌晨起拒绝
	afterBoundary := svc.CanAccess(user, program, time.Date(2024, 1, 11, 0, 30, 0, 0, time.UTC))
	assert.False(t, afterBoundary.Allowed)
	assert.Equal(t, ReasonVoucherExpired, afterBoundary.Reason)
}

func TestAccessIgnoresNonActiveVouchers(t *testing.T) {
	svc := NewAccessService(nil, nil)
	user, program := accessFixture(
		model.Voucher{ID: "v1", ProgramID: "p1", Status: model.VoucherVoid, AccessExpiresDate: "2099-01-01"},
		model.Voucher{ID: "v2", ProgramID: "p1", Status: model.VoucherUsed, AccessExpiresDate: "2099-01-01"},
	)

	decision := svc.CanAccess(user, program, time.Now())
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonNoActiveVoucher, decision.Reason)
}

func TestCompletionOverridesVoucherState(t *testing.T) {
	svc := NewAccessService(nil, nil)
	user, program := accessFixture(model.Voucher{
		ID: "v1", ProgramID: "p1", Status: model.VoucherVoid, AccessExpiresDate: "2020-01-01",
	})
	user.SetCompletion(model.ProgramCompletion{
		ProgramID:      "p1",
		CompletionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	// 已完成课程永久可访问，凭证状态无关紧要
	decision := svc.CanAccess(user, program, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, decision.Allowed)
	assert.Equal(t, ReasonCompleted, decision.Reason)
}

func TestAccessIsPure(t *testing.T) {
	svc := NewAccessService(nil, nil)
	user, program := accessFixture(model.Voucher{
		ID: "v1", ProgramID: "p1", Status: model.VoucherActive, AccessExpiresDate: "2024-01-10",
	})

	// 过期后的判定不得改写凭证状态
	svc.CanAccess(user, program, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, model.VoucherActive, user.Vouchers[0].Status)
}
