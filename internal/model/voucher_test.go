package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVoucherExpiryIsCalendarInclusive(t *testing.T) {
	v := Voucher{
		ID:                "v1",
		ProgramID:         "p1",
		Status:            VoucherActive,
		AccessExpiresDate: "2024-01-10",
	}

	// 过期日当天任意时刻仍然有效
	assert.False(t, v.ExpiredAt(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.False(t, v.ExpiredAt(time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC)))

	// 次日起过期
	assert.True(t, v.ExpiredAt(time.Date(2024, 1, 11, 0, 0, 0, 1, time.UTC)))
	assert.True(t, v.ExpiredAt(time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)))
}

func TestVoucherUnparseableExpiryTreatedAsExpired(t *testing.T) {
	v := Voucher{ID: "v1", ProgramID: "p1", Status: VoucherActive, AccessExpiresDate: "nonsense"}
	assert.True(t, v.ExpiredAt(time.Now()))
}

func TestVoucherValidate(t *testing.T) {
	v := Voucher{ID: "v1", ProgramID: "p1", Status: VoucherActive, AccessExpiresDate: "2024-06-30"}
	assert.NoError(t, v.Validate())

	v.Status = "paused"
	assert.Error(t, v.Validate())

	v.Status = VoucherActive
	v.AccessExpiresDate = "30/06/2024"
	assert.Error(t, v.Validate())
}
