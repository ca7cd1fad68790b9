package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrSlugTaken          = errors.New("program slug already in use")
	ErrWeekNotFound       = errors.New("week not found")
	ErrElementNotFound    = errors.New("learning element not found")
	ErrVoucherNotActive   = errors.New("voucher is not active")
	ErrVoucherAssigned    = errors.New("voucher already redeemed by another user")
	ErrVoucherCountRange  = errors.New("voucher count must be between 1 and 500")
)
