package model

import (
	"time"
)

type VoucherStatus string

const (
	VoucherActive VoucherStatus = "active"
	VoucherUsed   VoucherStatus = "used"
	VoucherVoid   VoucherStatus = "void"
)

// Voucher 绑定单个课程的限时访问凭证
// AccessExpiresDate 为日历日（"2006-01-02"），过期判断按日比较、边界日含当天
type Voucher struct {
	ID                string        `json:"id"`
	ProgramID         string        `json:"programId"`
	UserID            string        `json:"userId,omitempty"`
	Status            VoucherStatus `json:"status"`
	AccessExpiresDate string        `json:"accessExpiresDate"`
	CreatedAt         time.Time     `json:"createdAt"`
}

func (v *Voucher) Validate() error {
	if v.ID == "" {
		return NewValidationError("id", "id is required")
	}
	if v.ProgramID == "" {
		return NewValidationError("programId", "programId is required")
	}
	switch v.Status {
	case VoucherActive, VoucherUsed, VoucherVoid:
	default:
		return NewValidationError("status", "status must be active, used or void")
	}
	if _, err := time.Parse("2006-01-02", v.AccessExpiresDate); err != nil {
		return NewValidationError("accessExpiresDate", "accessExpiresDate must be an ISO date (2006-01-02)")
	}
	return nil
}

// ExpiresAfter 判断 now 是否严格晚于过期日（按日历日，边界日仍有效）
func (v *Voucher) ExpiredAt(now time.Time) bool {
	expiry, err := time.Parse("2006-01-02", v.AccessExpiresDate)
	if err != nil {
		// 无法解析的过期日按已过期处理，防止放行
		return true
	}
	ny, nm, nd := now.Date()
	nowDate := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return nowDate.After(expiry)
}
